package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/raids-lab/projecthub/internal/resputil"
	"github.com/raids-lab/projecthub/pkg/apperror"
	"github.com/raids-lab/projecthub/pkg/events"
	"github.com/raids-lab/projecthub/pkg/logutils"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewInngestMgr)
}

// maxEventBody caps a webhook body.
const maxEventBody = 1 << 20

type InngestMgr struct {
	name       string
	signingKey string
	handler    events.Handler
}

func NewInngestMgr(conf *RegisterConfig) Manager {
	if conf.Config.Inngest.SigningKey == "" {
		logutils.Log.Warn("inngest.signingKey is empty: webhooks are accepted unsigned in debug mode and rejected in release mode")
	}
	return &InngestMgr{
		name:       "inngest",
		signingKey: conf.Config.Inngest.SigningKey,
		handler:    conf.Syncer,
	}
}

func (mgr *InngestMgr) GetName() string { return mgr.name }

func (mgr *InngestMgr) RegisterPublic(g *gin.RouterGroup) {
	g.POST("/api/inngest", mgr.Receive)
}

func (mgr *InngestMgr) RegisterProtected(_ *gin.RouterGroup) {}

// verify checks the request signature. Unsigned webhooks are only accepted
// outside release mode when no signing key is configured.
func (mgr *InngestMgr) verify(c *gin.Context, body []byte) error {
	if mgr.signingKey == "" && gin.Mode() != gin.ReleaseMode {
		return nil
	}
	return events.Verify(mgr.signingKey, c.GetHeader(events.SignatureHeader), body, time.Now())
}

// Receive godoc
// @Summary 接收身份提供方与内部事件
// @Description 校验签名后按事件名同步用户、工作区与成员，或处理任务指派通知；重复投递会被直接确认
// @Tags Inngest
// @Accept json
// @Produce json
// @Param X-Inngest-Signature header string false "t=<unix>&s=<hmac>"
// @Success 200 {object} resputil.Response[any] "{received: n}"
// @Failure 400 {object} resputil.Response[any] "事件格式错误"
// @Failure 401 {object} resputil.Response[any] "签名无效"
// @Failure 500 {object} resputil.Response[any] "处理失败，等待重试"
// @Router /api/inngest [post]
func (mgr *InngestMgr) Receive(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEventBody))
	if err != nil {
		resputil.BadRequestError(c, "cannot read body")
		return
	}
	if err = mgr.verify(c, body); err != nil {
		resputil.Error(c, err)
		return
	}
	evs, err := events.Parse(body)
	if err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	for _, ev := range evs {
		if err = mgr.handler.Handle(c.Request.Context(), ev); err != nil {
			if !errors.Is(err, apperror.ErrValidation) {
				err = apperror.Internal(err)
			}
			logutils.WithEvent(ev.Name, ev.Key()).WithError(err).Warn("event rejected")
			resputil.Error(c, err)
			return
		}
	}
	resputil.SuccessWithMessage(c, http.StatusOK, gin.H{"received": len(evs)}, "")
}

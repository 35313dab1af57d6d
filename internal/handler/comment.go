package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/raids-lab/projecthub/internal/resputil"
	"github.com/raids-lab/projecthub/internal/util"
	"github.com/raids-lab/projecthub/pkg/service"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewCommentMgr)
}

type CommentMgr struct {
	name    string
	service *service.Service
}

type CommentTaskReq struct {
	TaskID string `uri:"taskId" binding:"required"`
}

func NewCommentMgr(conf *RegisterConfig) Manager {
	return &CommentMgr{
		name:    "comments",
		service: conf.Service,
	}
}

func (mgr *CommentMgr) GetName() string { return mgr.name }

func (mgr *CommentMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *CommentMgr) RegisterProtected(g *gin.RouterGroup) {
	g.POST("/", mgr.AddComment)
	g.GET("/:taskId", mgr.ListComments)
}

// AddComment godoc
// @Summary 发表评论
// @Description 只有项目成员可以评论任务
// @Tags Comment
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body service.AddCommentInput true "评论内容"
// @Success 201 {object} resputil.Response[any] "{comment: {...}}"
// @Failure 400 {object} resputil.Response[any] "请求参数错误"
// @Failure 403 {object} resputil.Response[any] "不是项目成员"
// @Failure 404 {object} resputil.Response[any] "任务不存在"
// @Router /api/comments/ [post]
func (mgr *CommentMgr) AddComment(c *gin.Context) {
	var req service.AddCommentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, "invalid request body")
		return
	}
	comment, err := mgr.service.AddComment(c.Request.Context(), util.GetCaller(c), &req)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, gin.H{"comment": comment}, "")
}

// ListComments godoc
// @Summary 获取任务评论
// @Description 按时间正序返回评论及作者
// @Tags Comment
// @Produce json
// @Security Bearer
// @Param taskId path string true "任务ID"
// @Success 200 {object} resputil.Response[any] "{comments: [...]}"
// @Failure 403 {object} resputil.Response[any] "不是工作区成员"
// @Failure 404 {object} resputil.Response[any] "任务不存在"
// @Router /api/comments/{taskId} [get]
func (mgr *CommentMgr) ListComments(c *gin.Context) {
	var uri CommentTaskReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, "task id is required")
		return
	}
	comments, err := mgr.service.ListComments(c.Request.Context(), util.GetCaller(c), uri.TaskID)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, gin.H{"comments": comments})
}

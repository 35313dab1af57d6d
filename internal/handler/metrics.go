package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/internal/resputil"
	"github.com/raids-lab/projecthub/pkg/db"
	"github.com/raids-lab/projecthub/pkg/metrics"
)

type MetricsMgr struct {
	name  string
	store *db.Store
}

func NewMetricsMgr(conf *RegisterConfig) Manager {
	return &MetricsMgr{
		name:  "metrics",
		store: conf.Service.Store(),
	}
}

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewMetricsMgr)
}

func (mgr *MetricsMgr) GetName() string { return mgr.name }

func (mgr *MetricsMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("/metrics", mgr.GetMetrics)
}

func (mgr *MetricsMgr) RegisterProtected(_ *gin.RouterGroup) {}

// GetMetrics godoc
// @Summary 获取服务指标
// @Description 返回 Prometheus 能够识别的信息，包括每种状态的任务数量
// @Tags Metrics
// @Produce plain
// @Success 200 {string} string "Prometheus 文本格式"
// @Failure 500 {object} resputil.Response[any] "其他错误"
// @Router /metrics [get]
func (mgr *MetricsMgr) GetMetrics(c *gin.Context) {
	counts, err := mgr.store.CountTasksByStatus(c.Request.Context())
	if err != nil {
		resputil.Error(c, err)
		return
	}
	for _, status := range []model.TaskStatus{model.TaskTodo, model.TaskInProgress, model.TaskDone} {
		metrics.TasksByStatus.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
	metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

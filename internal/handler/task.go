package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/raids-lab/projecthub/internal/resputil"
	"github.com/raids-lab/projecthub/internal/util"
	"github.com/raids-lab/projecthub/pkg/service"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewTaskMgr)
}

type TaskMgr struct {
	name    string
	service *service.Service
}

type TaskIDReq struct {
	ID string `uri:"id" binding:"required"`
}

func NewTaskMgr(conf *RegisterConfig) Manager {
	return &TaskMgr{
		name:    "tasks",
		service: conf.Service,
	}
}

func (mgr *TaskMgr) GetName() string { return mgr.name }

func (mgr *TaskMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *TaskMgr) RegisterProtected(g *gin.RouterGroup) {
	g.POST("/", mgr.CreateTask)
	g.PUT("/:id", mgr.UpdateTask)
	g.POST("/delete", mgr.DeleteTasks)
}

// origin is the web app the request came from; assignment mails link back
// to it.
func origin(c *gin.Context) string {
	return c.GetHeader("Origin")
}

// CreateTask godoc
// @Summary 创建任务
// @Description 项目负责人创建任务，指派人必须是项目成员；指派后会发送通知
// @Tags Task
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body service.CreateTaskInput true "任务信息"
// @Success 201 {object} resputil.Response[any] "{task: {...}}"
// @Failure 400 {object} resputil.Response[any] "请求参数错误"
// @Failure 403 {object} resputil.Response[any] "不是项目负责人或指派人不是成员"
// @Failure 404 {object} resputil.Response[any] "项目不存在"
// @Router /api/tasks/ [post]
func (mgr *TaskMgr) CreateTask(c *gin.Context) {
	var req service.CreateTaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, "invalid request body")
		return
	}
	task, err := mgr.service.CreateTask(c.Request.Context(), util.GetCaller(c), &req, origin(c))
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, gin.H{"task": task}, "Task created successfully")
}

// UpdateTask godoc
// @Summary 更新任务
// @Description 项目负责人更新任务，未提供的字段保持不变
// @Tags Task
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "任务ID"
// @Param data body service.UpdateTaskInput true "更新内容"
// @Success 200 {object} resputil.Response[any] "{task: {...}}"
// @Failure 400 {object} resputil.Response[any] "请求参数错误"
// @Failure 403 {object} resputil.Response[any] "无权限"
// @Failure 404 {object} resputil.Response[any] "任务不存在"
// @Router /api/tasks/{id} [put]
func (mgr *TaskMgr) UpdateTask(c *gin.Context) {
	var uri TaskIDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, "task id is required")
		return
	}
	var req service.UpdateTaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, "invalid request body")
		return
	}
	task, err := mgr.service.UpdateTask(c.Request.Context(), util.GetCaller(c), uri.ID, &req, origin(c))
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, gin.H{"task": task})
}

// DeleteTasks godoc
// @Summary 批量删除任务
// @Description 由第一个任务所属项目的负责人授权，开启 strictBatchDelete 后检查所有项目
// @Tags Task
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body service.DeleteTasksInput true "任务ID列表"
// @Success 200 {object} resputil.Response[any] "{deleted: n}"
// @Failure 400 {object} resputil.Response[any] "请求参数错误"
// @Failure 403 {object} resputil.Response[any] "不是项目负责人"
// @Failure 404 {object} resputil.Response[any] "任务不存在"
// @Router /api/tasks/delete [post]
func (mgr *TaskMgr) DeleteTasks(c *gin.Context) {
	var req service.DeleteTasksInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, "invalid request body")
		return
	}
	deleted, err := mgr.service.DeleteTasks(c.Request.Context(), util.GetCaller(c), &req)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, gin.H{"deleted": deleted})
}

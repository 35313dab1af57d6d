package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/raids-lab/projecthub/internal/resputil"
	"github.com/raids-lab/projecthub/internal/util"
	"github.com/raids-lab/projecthub/pkg/service"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewWorkspaceMgr)
}

type WorkspaceMgr struct {
	name    string
	service *service.Service
}

func NewWorkspaceMgr(conf *RegisterConfig) Manager {
	return &WorkspaceMgr{
		name:    "workspaces",
		service: conf.Service,
	}
}

func (mgr *WorkspaceMgr) GetName() string { return mgr.name }

func (mgr *WorkspaceMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *WorkspaceMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/", mgr.ListWorkspaces)
	g.POST("/add-member", mgr.AddMember)
}

// ListWorkspaces godoc
// @Summary 获取当前用户所在的工作区
// @Description 返回工作区及其成员、项目、任务和评论
// @Tags Workspace
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[any] "{workspaces: [...]}"
// @Failure 401 {object} resputil.Response[any] "未登录"
// @Failure 500 {object} resputil.Response[any] "其他错误"
// @Router /api/workspaces/ [get]
func (mgr *WorkspaceMgr) ListWorkspaces(c *gin.Context) {
	workspaces, err := mgr.service.ListWorkspaces(c.Request.Context(), util.GetCaller(c))
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, gin.H{"workspaces": workspaces})
}

// AddMember godoc
// @Summary 向工作区添加成员
// @Description 仅工作区管理员可以按邮箱添加已存在的用户
// @Tags Workspace
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body service.AddWorkspaceMemberInput true "成员信息"
// @Success 201 {object} resputil.Response[any] "{member: {...}}"
// @Failure 400 {object} resputil.Response[any] "请求参数错误"
// @Failure 403 {object} resputil.Response[any] "不是工作区管理员"
// @Failure 404 {object} resputil.Response[any] "用户或工作区不存在"
// @Failure 409 {object} resputil.Response[any] "已经是成员"
// @Router /api/workspaces/add-member [post]
func (mgr *WorkspaceMgr) AddMember(c *gin.Context) {
	var req service.AddWorkspaceMemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, "invalid request body")
		return
	}
	member, err := mgr.service.AddWorkspaceMember(c.Request.Context(), util.GetCaller(c), &req)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, gin.H{"member": member}, "Member added successfully")
}

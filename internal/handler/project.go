package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raids-lab/projecthub/internal/resputil"
	"github.com/raids-lab/projecthub/internal/util"
	"github.com/raids-lab/projecthub/pkg/service"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewProjectMgr)
}

type ProjectMgr struct {
	name    string
	service *service.Service
}

type (
	ProjectIDReq struct {
		ID string `uri:"id" binding:"required"`
	}
	AddProjectMemberURI struct {
		ProjectID string `uri:"projectId" binding:"required"`
	}
	AddProjectMemberReq struct {
		Email string `json:"email"`
	}
)

func NewProjectMgr(conf *RegisterConfig) Manager {
	return &ProjectMgr{
		name:    "projects",
		service: conf.Service,
	}
}

func (mgr *ProjectMgr) GetName() string { return mgr.name }

func (mgr *ProjectMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ProjectMgr) RegisterProtected(g *gin.RouterGroup) {
	g.POST("/", mgr.CreateProject)
	g.PUT("/:id", mgr.UpdateProject)
	g.POST("/:projectId/addMember", mgr.AddMember)
}

// CreateProject godoc
// @Summary 创建项目
// @Description 工作区管理员创建项目，team_lead 和 team_members 使用邮箱
// @Tags Project
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body service.CreateProjectInput true "项目信息"
// @Success 201 {object} resputil.Response[any] "{project: {...}}"
// @Failure 400 {object} resputil.Response[any] "请求参数错误"
// @Failure 403 {object} resputil.Response[any] "不是工作区管理员"
// @Failure 404 {object} resputil.Response[any] "工作区或负责人不存在"
// @Router /api/projects/ [post]
func (mgr *ProjectMgr) CreateProject(c *gin.Context) {
	var req service.CreateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, "invalid request body")
		return
	}
	project, err := mgr.service.CreateProject(c.Request.Context(), util.GetCaller(c), &req)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, gin.H{"project": project}, "Project created successfully")
}

// UpdateProject godoc
// @Summary 更新项目
// @Description 工作区管理员或项目负责人更新项目，未提供的字段保持不变
// @Tags Project
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "项目ID"
// @Param data body service.UpdateProjectInput true "更新内容"
// @Success 200 {object} resputil.Response[any] "{project: {...}}"
// @Failure 400 {object} resputil.Response[any] "请求参数错误"
// @Failure 403 {object} resputil.Response[any] "无权限"
// @Failure 404 {object} resputil.Response[any] "项目不存在"
// @Router /api/projects/{id} [put]
func (mgr *ProjectMgr) UpdateProject(c *gin.Context) {
	var uri ProjectIDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, "project id is required")
		return
	}
	var req service.UpdateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, "invalid request body")
		return
	}
	project, err := mgr.service.UpdateProject(c.Request.Context(), util.GetCaller(c), uri.ID, &req)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.SuccessWithMessage(c, http.StatusOK, gin.H{"project": project}, "Project updated successfully")
}

// AddMember godoc
// @Summary 添加项目成员
// @Description 项目负责人按邮箱添加工作区成员
// @Tags Project
// @Accept json
// @Produce json
// @Security Bearer
// @Param projectId path string true "项目ID"
// @Param data body AddProjectMemberReq true "成员邮箱"
// @Success 201 {object} resputil.Response[any] "{member: {...}}"
// @Failure 403 {object} resputil.Response[any] "不是项目负责人或用户不在工作区"
// @Failure 404 {object} resputil.Response[any] "项目或用户不存在"
// @Failure 409 {object} resputil.Response[any] "已经是项目成员"
// @Router /api/projects/{projectId}/addMember [post]
func (mgr *ProjectMgr) AddMember(c *gin.Context) {
	var uri AddProjectMemberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, "project id is required")
		return
	}
	var req AddProjectMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, "invalid request body")
		return
	}
	member, err := mgr.service.AddProjectMember(c.Request.Context(), util.GetCaller(c), uri.ProjectID, req.Email)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, gin.H{"member": member}, "Member added to project")
}

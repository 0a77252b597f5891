package controller

import (
	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// TeacherOverview godoc
// @Summary 教师仪表盘
// @Description 考试、题目、学生和提交的全局聚合
// @Tags 数据分析
// @Produce  json
// @Success 200 {object} util.Response{data=model.TeacherOverview} "成功"
// @Security BearerAuth
// @Router /api/dashboard/teacher [get]
func (c *AnalyticsController) TeacherOverview(ctx *gin.Context) {
	overview, err := c.AnalyticsService.GetTeacherOverview()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// StudentDashboard godoc
// @Summary 学生仪表盘
// @Description 可参加的考试和近期提交
// @Tags 数据分析
// @Produce  json
// @Success 200 {object} util.Response{data=model.StudentDashboard} "成功"
// @Security BearerAuth
// @Router /api/dashboard/student [get]
func (c *AnalyticsController) StudentDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	// 仪表盘挂在档案上，没有档案的账号返回空数据而不是报错
	profileID := uint(0)
	if profile, err := c.AnalyticsService.UserRepo.FindProfileByUserID(claims.UserID); err == nil {
		profileID = profile.ID
	}

	dashboard, err := c.AnalyticsService.GetStudentDashboard(profileID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

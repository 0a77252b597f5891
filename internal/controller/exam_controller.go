package controller

import (
	"errors"

	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// CreateExam godoc
// @Summary 创建考试
// @Tags 考试管理
// @Accept  json
// @Produce  json
// @Param   body body service.CreateExamRequest true "考试信息"
// @Success 201 {object} util.Response{data=model.Exam} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Security BearerAuth
// @Router /api/exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req service.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.CreateExam(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// ListExams godoc
// @Summary 考试列表
// @Tags 考试管理
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Exam} "成功"
// @Security BearerAuth
// @Router /api/exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	exams, err := c.ExamService.ListExams()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// GetExam godoc
// @Summary 考试详情
// @Tags 考试管理
// @Produce  json
// @Param   id path int true "考试ID"
// @Success 200 {object} util.Response{data=model.Exam} "成功"
// @Failure 404 {object} util.Response "考试不存在"
// @Security BearerAuth
// @Router /api/exams/{id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	exam, err := c.ExamService.GetExam(util.PathID(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, exam)
}

// UpdateExam godoc
// @Summary 更新考试
// @Tags 考试管理
// @Accept  json
// @Produce  json
// @Param   id path int true "考试ID"
// @Param   body body service.CreateExamRequest true "考试信息"
// @Success 200 {object} util.Response{data=model.Exam} "成功"
// @Failure 404 {object} util.Response "考试不存在"
// @Security BearerAuth
// @Router /api/exams/{id} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	var req service.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.UpdateExam(util.PathID(ctx.Param("id")), &req)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, exam)
}

// DeleteExam godoc
// @Summary 删除考试
// @Tags 考试管理
// @Produce  json
// @Param   id path int true "考试ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "考试不存在"
// @Security BearerAuth
// @Router /api/exams/{id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	if err := c.ExamService.DeleteExam(util.PathID(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// CreatePaper godoc
// @Summary 创建试卷
// @Description 建卷并批量录题，新卷默认激活
// @Tags 考试管理
// @Accept  json
// @Produce  json
// @Param   id path int true "考试ID"
// @Param   body body service.CreatePaperRequest true "试卷与题目"
// @Success 201 {object} util.Response{data=model.TestPaper} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "考试不存在"
// @Security BearerAuth
// @Router /api/exams/{id}/papers [post]
func (c *ExamController) CreatePaper(ctx *gin.Context) {
	var req service.CreatePaperRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	paper, err := c.ExamService.CreatePaper(util.PathID(ctx.Param("id")), &req)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, paper)
}

// ListPapers godoc
// @Summary 试卷列表
// @Tags 考试管理
// @Produce  json
// @Param   id path int true "考试ID"
// @Success 200 {object} util.Response{data=[]model.TestPaper} "成功"
// @Failure 404 {object} util.Response "考试不存在"
// @Security BearerAuth
// @Router /api/exams/{id}/papers [get]
func (c *ExamController) ListPapers(ctx *gin.Context) {
	papers, err := c.ExamService.ListPapers(util.PathID(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, papers)
}

// ActivatePaper godoc
// @Summary 激活试卷
// @Description 激活指定试卷并停用同考试的其他试卷
// @Tags 考试管理
// @Produce  json
// @Param   id path int true "考试ID"
// @Param   paperId path int true "试卷ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Security BearerAuth
// @Router /api/exams/{id}/papers/{paperId}/activate [post]
func (c *ExamController) ActivatePaper(ctx *gin.Context) {
	examID := util.PathID(ctx.Param("id"))
	paperID := util.PathID(ctx.Param("paperId"))
	if err := c.ExamService.ActivatePaper(examID, paperID); err != nil {
		if errors.Is(err, util.ErrPaperNotFound) || errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// GetStudentPaper godoc
// @Summary 获取考试题目
// @Description 学生考试页数据，激活试卷的题目，不含答案
// @Tags 考试作答
// @Produce  json
// @Param   id path int true "考试ID"
// @Success 200 {object} util.Response{data=service.StudentPaperView} "成功"
// @Failure 404 {object} util.Response "考试不存在或无激活试卷"
// @Security BearerAuth
// @Router /api/exams/{id}/questions [get]
func (c *ExamController) GetStudentPaper(ctx *gin.Context) {
	view, err := c.ExamService.GetStudentPaper(ctx.Request.Context(), util.PathID(ctx.Param("id")))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNoActivePaper):
			util.Error(ctx, 404, "exam has no active test paper")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

package controller

import (
	"errors"
	"fmt"

	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"
	"exam_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// SubmitExam godoc
// @Summary 交卷判分
// @Description 对提交的答案判分并记录一次考试提交
// @Tags 考试作答
// @Accept  json
// @Produce  json
// @Param   id path int true "考试ID"
// @Param   body body service.SubmissionPayload true "答案载荷"
// @Success 201 {object} util.Response{data=object} "判分成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "考试不存在或无激活试卷"
// @Failure 409 {object} util.Response "重复提交"
// @Security BearerAuth
// @Router /api/exams/{id}/submit [post]
func (c *AttemptController) SubmitExam(ctx *gin.Context) {
	var payload service.SubmissionPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	examID := util.PathID(ctx.Param("id"))
	result, err := c.AttemptService.SubmitExam(ctx.Request.Context(), claims.UserID, examID, &payload)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound), errors.Is(err, util.ErrNoActivePaper):
			monitoring.SubmissionCounter.WithLabelValues("not_found").Inc()
			util.NotFound(ctx)
		case errors.Is(err, util.ErrProfileNotFound):
			monitoring.SubmissionCounter.WithLabelValues("not_found").Inc()
			util.Error(ctx, 404, "student profile not found")
		case errors.Is(err, util.ErrDuplicateAttempt):
			monitoring.SubmissionCounter.WithLabelValues("conflict").Inc()
			util.Error(ctx, 409, "attempt already recorded")
		case errors.Is(err, util.ErrMaxAttemptsExceed):
			monitoring.SubmissionCounter.WithLabelValues("conflict").Inc()
			util.Error(ctx, 409, "max attempts for this exam reached")
		default:
			monitoring.SubmissionCounter.WithLabelValues("error").Inc()
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.SubmissionCounter.WithLabelValues("ok").Inc()
	util.Created(ctx, gin.H{
		"success":   true,
		"attemptId": result.AttemptID,
		"result":    result,
		"redirect":  fmt.Sprintf("/api/exams/%d/results/%d", examID, result.AttemptID),
	})
}

// GetResult godoc
// @Summary 查看成绩
// @Description 一次提交的得分、每题明细和主题统计，只能看自己的
// @Tags 考试作答
// @Produce  json
// @Param   id path int true "考试ID"
// @Param   attemptId path int true "提交ID"
// @Success 200 {object} util.Response{data=service.AttemptResult} "成功"
// @Failure 404 {object} util.Response "提交不存在"
// @Security BearerAuth
// @Router /api/exams/{id}/results/{attemptId} [get]
func (c *AttemptController) GetResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	examID := util.PathID(ctx.Param("id"))
	attemptID := util.PathID(ctx.Param("attemptId"))

	result, err := c.AttemptService.GetResult(claims.UserID, examID, attemptID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound), errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrProfileNotFound):
			util.Error(ctx, 404, "student profile not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// ListAttempts godoc
// @Summary 历史提交
// @Tags 考试作答
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.ExamAttempt} "成功"
// @Security BearerAuth
// @Router /api/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.AttemptService.ListAttempts(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.Error(ctx, 404, "student profile not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, attempts)
}

package service

import (
	"context"
	"encoding/json"
	"errors"

	"exam_portal_backend/internal/config"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"

	"gorm.io/gorm"
)

type AttemptService struct {
	ExamService *ExamService
	AttemptRepo *repository.AttemptRepository
	UserRepo    *repository.UserRepository
	Cfg         *config.Config
}

func NewAttemptService(
	examService *ExamService,
	attemptRepo *repository.AttemptRepository,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *AttemptService {
	return &AttemptService{
		ExamService: examService,
		AttemptRepo: attemptRepo,
		UserRepo:    userRepo,
		Cfg:         cfg,
	}
}

// SubmitResult 交卷响应
type SubmitResult struct {
	AttemptID     uint    `json:"attemptId"`
	AttemptNumber int     `json:"attemptNumber"`
	Score         float64 `json:"score"`
	TotalMarks    float64 `json:"totalMarks"`
	Percentage    float64 `json:"percentage"`
}

// SubmitExam 对一次交卷判分并持久化。判分本身是纯计算，
// 落库走可串行化事务，重复提交由唯一索引兜底。
func (s *AttemptService) SubmitExam(ctx context.Context, userID, examID uint, payload *SubmissionPayload) (*SubmitResult, error) {
	profile, err := s.UserRepo.FindProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}

	if max := s.Cfg.Exam.MaxAttempts; max > 0 {
		count, err := s.AttemptRepo.CountByStudentAndExam(profile.ID, examID)
		if err != nil {
			return nil, err
		}
		if count >= int64(max) {
			return nil, util.ErrMaxAttemptsExceed
		}
	}

	bank, err := s.ExamService.LoadQuestionBank(ctx, examID)
	if err != nil {
		return nil, err
	}

	result := bank.Score(payload)

	answersRaw, _ := json.Marshal(payload.Answers)
	timeRaw, _ := json.Marshal(payload.TimeSpent)

	attempt := &model.ExamAttempt{
		StudentProfileID: profile.ID,
		ExamID:           examID,
		TestPaperID:      bank.Paper.ID,
		Score:            result.Score,
		TotalMarks:       result.TotalMarks,
		Percentage:       result.Percentage,
		TimeTakenSeconds: payload.TimeTakenSeconds,
		AnswersRaw:       string(answersRaw),
		TimeSpentRaw:     string(timeRaw),
	}

	if err := s.AttemptRepo.RecordAttempt(attempt, result.Outcomes); err != nil {
		return nil, err
	}

	return &SubmitResult{
		AttemptID:     attempt.ID,
		AttemptNumber: attempt.AttemptNumber,
		Score:         attempt.Score,
		TotalMarks:    attempt.TotalMarks,
		Percentage:    attempt.Percentage,
	}, nil
}

// AttemptResult 结果页：提交概要、每题明细和主题统计
type AttemptResult struct {
	Attempt   *model.ExamAttempt      `json:"attempt"`
	Exam      *model.Exam             `json:"exam"`
	Outcomes  []model.QuestionOutcome `json:"outcomes"`
	Analytics *model.AttemptAnalytics `json:"analytics"`
}

// GetResult 学生只能查看自己的提交，每次请求现算主题统计
func (s *AttemptService) GetResult(userID, examID, attemptID uint) (*AttemptResult, error) {
	profile, err := s.UserRepo.FindProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}

	attempt, err := s.AttemptRepo.FindByIDForStudent(attemptID, profile.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.ExamID != examID {
		return nil, util.ErrAttemptNotFound
	}

	exam, err := s.ExamService.GetExam(attempt.ExamID)
	if err != nil {
		return nil, err
	}

	outcomes, err := s.AttemptRepo.GetOutcomes(attempt.ID)
	if err != nil {
		return nil, err
	}

	return &AttemptResult{
		Attempt:  attempt,
		Exam:     exam,
		Outcomes: outcomes,
		// 主题统计按考试总分均摊，沿用结果页口径
		Analytics: ComputeAttemptAnalytics(outcomes, exam.TotalMarks),
	}, nil
}

// ListAttempts 学生的历史提交
func (s *AttemptService) ListAttempts(userID uint) ([]model.ExamAttempt, error) {
	profile, err := s.UserRepo.FindProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}
	return s.AttemptRepo.FindByStudent(profile.ID, 0)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"exam_portal_backend/internal/config"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type ExamService struct {
	ExamRepo *repository.ExamRepository
	Redis    *redis.Client
	Cfg      *config.Config
}

func NewExamService(examRepo *repository.ExamRepository, rdb *redis.Client, cfg *config.Config) *ExamService {
	return &ExamService{
		ExamRepo: examRepo,
		Redis:    rdb,
		Cfg:      cfg,
	}
}

type CreateExamRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"durationMinutes" binding:"required,gt=0"`
	TotalMarks      float64 `json:"totalMarks"`
	Language        string  `json:"language"`
}

type QuestionInput struct {
	Kind           model.QuestionKind `json:"kind" binding:"required,oneof=mcq msq numerical"`
	QuestionNumber int                `json:"questionNumber" binding:"required,gt=0"`
	QuestionText   string             `json:"questionText" binding:"required"`
	QuestionImage  string             `json:"questionImage"`
	OptionA        string             `json:"optionA"`
	OptionB        string             `json:"optionB"`
	OptionC        string             `json:"optionC"`
	OptionD        string             `json:"optionD"`
	CorrectOption  string             `json:"correctOption"`
	CorrectOptions string             `json:"correctOptions"`
	CorrectAnswer  float64            `json:"correctAnswer"`
	Marks          float64            `json:"marks"`
	NegativeMarks  float64            `json:"negativeMarks"`
	Topic          string             `json:"topic"`
}

type CreatePaperRequest struct {
	PaperCode string          `json:"paperCode"`
	Questions []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

func (s *ExamService) CreateExam(req *CreateExamRequest) (*model.Exam, error) {
	exam := &model.Exam{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      req.TotalMarks,
		Language:        req.Language,
	}
	if exam.Language == "" {
		exam.Language = "English"
	}
	return exam, s.ExamRepo.Create(exam)
}

func (s *ExamService) GetExam(id uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExamNotFound
	}
	return exam, err
}

func (s *ExamService) ListExams() ([]model.Exam, error) {
	return s.ExamRepo.FindAll()
}

func (s *ExamService) UpdateExam(id uint, req *CreateExamRequest) (*model.Exam, error) {
	exam, err := s.GetExam(id)
	if err != nil {
		return nil, err
	}
	exam.Name = req.Name
	exam.Description = req.Description
	exam.DurationMinutes = req.DurationMinutes
	exam.TotalMarks = req.TotalMarks
	if req.Language != "" {
		exam.Language = req.Language
	}
	return exam, s.ExamRepo.Update(exam)
}

func (s *ExamService) DeleteExam(id uint) error {
	if _, err := s.GetExam(id); err != nil {
		return err
	}
	return s.ExamRepo.Delete(id)
}

// CreatePaper 建卷和建题放在同一个事务里，卷码不传时自动生成。
// 新卷默认激活并停用同考试的旧卷。
func (s *ExamService) CreatePaper(examID uint, req *CreatePaperRequest) (*model.TestPaper, error) {
	if _, err := s.GetExam(examID); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.PaperCode)
	if code == "" {
		code = strings.ToUpper(model.GenerateUUID()[:8])
	}

	now := time.Now()
	paper := &model.TestPaper{
		ExamID:         examID,
		PaperCode:      code,
		IsActive:       true,
		TotalQuestions: len(req.Questions),
		ActivatedAt:    &now,
	}

	err := s.ExamRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.TestPaper{}).
			Where("exam_id = ?", examID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		if err := s.ExamRepo.CreatePaper(tx, paper); err != nil {
			return err
		}
		for _, q := range req.Questions {
			marks := q.Marks
			if marks == 0 {
				marks = 1
			}
			switch q.Kind {
			case model.KindMCQ:
				mcq := model.QuestionMCQ{
					TestPaperID:    paper.ID,
					QuestionNumber: q.QuestionNumber,
					QuestionText:   q.QuestionText,
					QuestionImage:  q.QuestionImage,
					OptionA:        q.OptionA,
					OptionB:        q.OptionB,
					OptionC:        q.OptionC,
					OptionD:        q.OptionD,
					CorrectOption:  q.CorrectOption,
					Marks:          marks,
					NegativeMarks:  q.NegativeMarks,
					Topic:          q.Topic,
				}
				if err := s.ExamRepo.CreateMCQ(tx, &mcq); err != nil {
					return err
				}
			case model.KindMSQ:
				msq := model.QuestionMSQ{
					TestPaperID:    paper.ID,
					QuestionNumber: q.QuestionNumber,
					QuestionText:   q.QuestionText,
					QuestionImage:  q.QuestionImage,
					OptionA:        q.OptionA,
					OptionB:        q.OptionB,
					OptionC:        q.OptionC,
					OptionD:        q.OptionD,
					CorrectOptions: q.CorrectOptions,
					Marks:          marks,
					NegativeMarks:  q.NegativeMarks,
					Topic:          q.Topic,
				}
				if err := s.ExamRepo.CreateMSQ(tx, &msq); err != nil {
					return err
				}
			case model.KindNumerical:
				num := model.QuestionNumerical{
					TestPaperID:    paper.ID,
					QuestionNumber: q.QuestionNumber,
					QuestionText:   q.QuestionText,
					QuestionImage:  q.QuestionImage,
					CorrectAnswer:  q.CorrectAnswer,
					Marks:          marks,
					NegativeMarks:  q.NegativeMarks,
					Topic:          q.Topic,
				}
				if err := s.ExamRepo.CreateNumerical(tx, &num); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBankCache(examID)
	return paper, nil
}

func (s *ExamService) ListPapers(examID uint) ([]model.TestPaper, error) {
	if _, err := s.GetExam(examID); err != nil {
		return nil, err
	}
	return s.ExamRepo.FindPapersByExam(examID)
}

func (s *ExamService) ActivatePaper(examID, paperID uint) error {
	paper, err := s.ExamRepo.FindPaperByID(paperID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrPaperNotFound
	}
	if err != nil {
		return err
	}
	if paper.ExamID != examID {
		return util.ErrPaperNotFound
	}
	if err := s.ExamRepo.ActivatePaper(examID, paperID); err != nil {
		return err
	}
	s.invalidateBankCache(examID)
	return nil
}

// LoadQuestionBank 组装一场考试当前激活试卷的全部题目。
// 结果在 Redis 里缓存一段时间，换卷和改卷时失效。
func (s *ExamService) LoadQuestionBank(ctx context.Context, examID uint) (*QuestionBank, error) {
	cacheKey := bankCacheKey(examID)
	if s.bankCacheEnabled() {
		if cached, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var bank QuestionBank
			if json.Unmarshal(cached, &bank) == nil {
				return &bank, nil
			}
		}
	}

	exam, err := s.GetExam(examID)
	if err != nil {
		return nil, err
	}
	paper, err := s.ExamRepo.FindActivePaper(examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNoActivePaper
	}
	if err != nil {
		return nil, err
	}

	bank := &QuestionBank{Exam: *exam, Paper: *paper}
	if bank.MCQs, err = s.ExamRepo.FindMCQsByPaper(paper.ID); err != nil {
		return nil, err
	}
	if bank.MSQs, err = s.ExamRepo.FindMSQsByPaper(paper.ID); err != nil {
		return nil, err
	}
	if bank.Numericals, err = s.ExamRepo.FindNumericalsByPaper(paper.ID); err != nil {
		return nil, err
	}

	if s.bankCacheEnabled() {
		if data, err := json.Marshal(bank); err == nil {
			ttl := time.Duration(s.Cfg.Exam.BankCacheTTL) * time.Second
			s.Redis.Set(ctx, cacheKey, data, ttl)
		}
	}
	return bank, nil
}

// StudentQuestionView 学生视角的题目，不带答案字段
type StudentQuestionView struct {
	ID             uint               `json:"id"`
	Kind           model.QuestionKind `json:"kind"`
	QuestionNumber int                `json:"questionNumber"`
	QuestionText   string             `json:"questionText"`
	QuestionImage  string             `json:"questionImage,omitempty"`
	OptionA        string             `json:"optionA,omitempty"`
	OptionB        string             `json:"optionB,omitempty"`
	OptionC        string             `json:"optionC,omitempty"`
	OptionD        string             `json:"optionD,omitempty"`
	Marks          float64            `json:"marks"`
	NegativeMarks  float64            `json:"negativeMarks"`
	Topic          string             `json:"topic,omitempty"`
}

type StudentPaperView struct {
	Exam      model.Exam            `json:"exam"`
	PaperCode string                `json:"paperCode"`
	Questions []StudentQuestionView `json:"questions"`
}

// GetStudentPaper 考试页数据：激活试卷的题目，剥掉所有答案字段
func (s *ExamService) GetStudentPaper(ctx context.Context, examID uint) (*StudentPaperView, error) {
	bank, err := s.LoadQuestionBank(ctx, examID)
	if err != nil {
		return nil, err
	}

	view := &StudentPaperView{
		Exam:      bank.Exam,
		PaperCode: bank.Paper.PaperCode,
		Questions: make([]StudentQuestionView, 0, bank.QuestionCount()),
	}
	for _, q := range bank.MCQs {
		view.Questions = append(view.Questions, StudentQuestionView{
			ID: q.ID, Kind: model.KindMCQ, QuestionNumber: q.QuestionNumber,
			QuestionText: q.QuestionText, QuestionImage: q.QuestionImage,
			OptionA: q.OptionA, OptionB: q.OptionB, OptionC: q.OptionC, OptionD: q.OptionD,
			Marks: q.Marks, NegativeMarks: q.NegativeMarks, Topic: q.Topic,
		})
	}
	for _, q := range bank.MSQs {
		view.Questions = append(view.Questions, StudentQuestionView{
			ID: q.ID, Kind: model.KindMSQ, QuestionNumber: q.QuestionNumber,
			QuestionText: q.QuestionText, QuestionImage: q.QuestionImage,
			OptionA: q.OptionA, OptionB: q.OptionB, OptionC: q.OptionC, OptionD: q.OptionD,
			Marks: q.Marks, NegativeMarks: q.NegativeMarks, Topic: q.Topic,
		})
	}
	for _, q := range bank.Numericals {
		view.Questions = append(view.Questions, StudentQuestionView{
			ID: q.ID, Kind: model.KindNumerical, QuestionNumber: q.QuestionNumber,
			QuestionText: q.QuestionText, QuestionImage: q.QuestionImage,
			Marks: q.Marks, NegativeMarks: q.NegativeMarks, Topic: q.Topic,
		})
	}
	return view, nil
}

func (s *ExamService) bankCacheEnabled() bool {
	return s.Redis != nil && s.Cfg.Exam.BankCacheTTL > 0
}

func bankCacheKey(examID uint) string {
	return "exam:bank:" + strconv.FormatUint(uint64(examID), 10)
}

func (s *ExamService) invalidateBankCache(examID uint) {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), bankCacheKey(examID))
	}
}

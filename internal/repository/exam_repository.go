package repository

import (
	"time"

	"exam_portal_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.First(&exam, id).Error
	return &exam, err
}

func (r *ExamRepository) FindAll() ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Order("created_at DESC").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Exam{}, id).Error
}

func (r *ExamRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Exam{}).Count(&count).Error
	return count, err
}

// ---- 试卷 ----

func (r *ExamRepository) CreatePaper(tx *gorm.DB, paper *model.TestPaper) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(paper).Error
}

func (r *ExamRepository) FindPaperByID(id uint) (*model.TestPaper, error) {
	var paper model.TestPaper
	err := r.DB.First(&paper, id).Error
	return &paper, err
}

func (r *ExamRepository) FindPapersByExam(examID uint) ([]model.TestPaper, error) {
	var papers []model.TestPaper
	err := r.DB.Where("exam_id = ?", examID).Order("created_at DESC").Find(&papers).Error
	return papers, err
}

// FindActivePaper 评分只认当前激活的试卷，一场考试同一时刻最多一套激活
func (r *ExamRepository) FindActivePaper(examID uint) (*model.TestPaper, error) {
	var paper model.TestPaper
	err := r.DB.Where("exam_id = ? AND is_active = ?", examID, true).
		Order("created_at DESC").
		First(&paper).Error
	return &paper, err
}

// ActivatePaper 激活指定试卷并停用同一场考试的其他试卷，放在一个事务里
func (r *ExamRepository) ActivatePaper(examID, paperID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.TestPaper{}).
			Where("exam_id = ? AND id <> ?", examID, paperID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&model.TestPaper{}).
			Where("id = ? AND exam_id = ?", paperID, examID).
			Updates(map[string]interface{}{"is_active": true, "activated_at": &now}).
			Error
	})
}

func (r *ExamRepository) CountPapers() (int64, error) {
	var count int64
	err := r.DB.Model(&model.TestPaper{}).Count(&count).Error
	return count, err
}

// ---- 题目，三种题型各自一张表 ----

func (r *ExamRepository) CreateMCQ(tx *gorm.DB, q *model.QuestionMCQ) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(q).Error
}

func (r *ExamRepository) CreateMSQ(tx *gorm.DB, q *model.QuestionMSQ) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(q).Error
}

func (r *ExamRepository) CreateNumerical(tx *gorm.DB, q *model.QuestionNumerical) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(q).Error
}

func (r *ExamRepository) FindMCQsByPaper(paperID uint) ([]model.QuestionMCQ, error) {
	var questions []model.QuestionMCQ
	err := r.DB.Where("test_paper_id = ?", paperID).Order("question_number ASC").Find(&questions).Error
	return questions, err
}

func (r *ExamRepository) FindMSQsByPaper(paperID uint) ([]model.QuestionMSQ, error) {
	var questions []model.QuestionMSQ
	err := r.DB.Where("test_paper_id = ?", paperID).Order("question_number ASC").Find(&questions).Error
	return questions, err
}

func (r *ExamRepository) FindNumericalsByPaper(paperID uint) ([]model.QuestionNumerical, error) {
	var questions []model.QuestionNumerical
	err := r.DB.Where("test_paper_id = ?", paperID).Order("question_number ASC").Find(&questions).Error
	return questions, err
}

func (r *ExamRepository) CountQuestions() (mcq, msq, numerical int64, err error) {
	if err = r.DB.Model(&model.QuestionMCQ{}).Count(&mcq).Error; err != nil {
		return
	}
	if err = r.DB.Model(&model.QuestionMSQ{}).Count(&msq).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.QuestionNumerical{}).Count(&numerical).Error
	return
}

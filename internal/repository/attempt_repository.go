package repository

import (
	"database/sql"
	"errors"

	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/util"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// RecordAttempt 在一个可串行化事务里确定 attempt_number 并写入提交与每题结果。
// 并发提交同一场考试时，两个事务会算出同一个 attempt_number，
// 复合唯一索引让后提交的一方失败，由上层重试或报 409。
func (r *AttemptRepository) RecordAttempt(attempt *model.ExamAttempt, outcomes []model.QuestionOutcome) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.ExamAttempt{}).
			Where("student_profile_id = ? AND exam_id = ?", attempt.StudentProfileID, attempt.ExamID).
			Count(&count).Error; err != nil {
			return err
		}
		attempt.AttemptNumber = int(count) + 1

		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		for i := range outcomes {
			outcomes[i].AttemptID = attempt.ID
		}
		if len(outcomes) > 0 {
			if err := tx.Create(&outcomes).Error; err != nil {
				return err
			}
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrDuplicateAttempt
	}
	return err
}

func (r *AttemptRepository) FindByID(id uint) (*model.ExamAttempt, error) {
	var a model.ExamAttempt
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByIDForStudent 结果页只能看自己的提交
func (r *AttemptRepository) FindByIDForStudent(id, studentProfileID uint) (*model.ExamAttempt, error) {
	var a model.ExamAttempt
	err := r.DB.Where("id = ? AND student_profile_id = ?", id, studentProfileID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) CountByStudentAndExam(studentProfileID, examID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamAttempt{}).
		Where("student_profile_id = ? AND exam_id = ?", studentProfileID, examID).
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) GetOutcomes(attemptID uint) ([]model.QuestionOutcome, error) {
	var outcomes []model.QuestionOutcome
	err := r.DB.Where("attempt_id = ?", attemptID).
		Order("question_number ASC").
		Find(&outcomes).Error
	return outcomes, err
}

func (r *AttemptRepository) FindByStudent(studentProfileID uint, limit int) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	q := r.DB.Where("student_profile_id = ?", studentProfileID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) FindRecent(limit int) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamAttempt{}).Count(&count).Error
	return count, err
}

func (r *AttemptRepository) AvgPercentage() (float64, error) {
	var avg sql.NullFloat64
	err := r.DB.Model(&model.ExamAttempt{}).
		Select("AVG(percentage)").
		Scan(&avg).Error
	if err != nil || !avg.Valid {
		return 0, err
	}
	return avg.Float64, nil
}

func (r *AttemptRepository) AvgPercentageByStudent(studentProfileID uint) (float64, error) {
	var avg sql.NullFloat64
	err := r.DB.Model(&model.ExamAttempt{}).
		Select("AVG(percentage)").
		Where("student_profile_id = ?", studentProfileID).
		Scan(&avg).Error
	if err != nil || !avg.Valid {
		return 0, err
	}
	return avg.Float64, nil
}

// AttemptedExamIDs 学生至少提交过一次的考试
func (r *AttemptRepository) AttemptedExamIDs(studentProfileID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.ExamAttempt{}).
		Where("student_profile_id = ?", studentProfileID).
		Distinct("exam_id").
		Pluck("exam_id", &ids).Error
	return ids, err
}

func (r *AttemptRepository) CountDistinctExamsByStudent(studentProfileID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamAttempt{}).
		Where("student_profile_id = ?", studentProfileID).
		Distinct("exam_id").
		Count(&count).Error
	return count, err
}

// TopExamsByAttempts 教师总览里按提交量排序的考试聚合
func (r *AttemptRepository) TopExamsByAttempts(limit int) ([]model.ExamStat, error) {
	var stats []model.ExamStat
	err := r.DB.Model(&model.ExamAttempt{}).
		Select("exam_attempts.exam_id AS exam_id, exams.name AS exam_name, COUNT(*) AS attempt_count, AVG(exam_attempts.percentage) AS avg_percentage").
		Joins("JOIN exams ON exams.id = exam_attempts.exam_id").
		Group("exam_attempts.exam_id, exams.name").
		Order("attempt_count DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

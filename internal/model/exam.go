package model

import "time"

// swagger:model Exam
type Exam struct {
	BaseModel
	Name            string  `gorm:"size:100;not null" json:"name"`
	Description     string  `gorm:"type:text" json:"description"`
	DurationMinutes int     `gorm:"default:0" json:"durationMinutes"`
	TotalMarks      float64 `gorm:"default:0" json:"totalMarks"`
	Language        string  `gorm:"size:50;default:'English'" json:"language"`
}

func (Exam) TableName() string {
	return "exams"
}

// TestPaper 一场考试可以有多套试卷，评分时只认当前激活的那一套
type TestPaper struct {
	BaseModel
	ExamID         uint       `gorm:"index;type:bigint unsigned" json:"examId"`
	PaperCode      string     `gorm:"size:20;uniqueIndex" json:"paperCode"`
	IsActive       bool       `gorm:"default:true" json:"isActive"`
	TotalQuestions int        `gorm:"default:0" json:"totalQuestions"`
	ActivatedAt    *time.Time `json:"activatedAt,omitempty"`
}

func (TestPaper) TableName() string {
	return "test_papers"
}

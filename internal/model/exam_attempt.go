package model

// ExamAttempt 一次已判分的提交。attempt_number 在 (student, exam) 内从 1 递增，
// 复合唯一索引兜底并发重复提交。
type ExamAttempt struct {
	BaseModel
	StudentProfileID uint    `gorm:"uniqueIndex:uniq_student_exam_attempt;type:bigint unsigned" json:"studentProfileId"`
	ExamID           uint    `gorm:"uniqueIndex:uniq_student_exam_attempt;type:bigint unsigned" json:"examId"`
	TestPaperID      uint    `gorm:"index;type:bigint unsigned" json:"testPaperId"`
	AttemptNumber    int     `gorm:"uniqueIndex:uniq_student_exam_attempt;not null" json:"attemptNumber"`
	Score            float64 `json:"score"`
	TotalMarks       float64 `json:"totalMarks"`
	Percentage       float64 `json:"percentage"`
	TimeTakenSeconds int     `gorm:"default:0" json:"timeTakenSeconds"`
	AnswersRaw       string  `gorm:"type:json" json:"-"` // 原始答案载荷，审计/回放用
	TimeSpentRaw     string  `gorm:"type:json" json:"-"` // 原始每题耗时载荷
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

// QuestionOutcome 一次提交中单题的判分结果，试卷里每道题都有一行（未作答也算）
type QuestionOutcome struct {
	BaseModel
	AttemptID        uint         `gorm:"index;type:bigint unsigned" json:"attemptId"`
	QuestionID       uint         `gorm:"type:bigint unsigned" json:"questionId"`
	QuestionKind     QuestionKind `gorm:"size:10" json:"questionKind"`
	QuestionNumber   int          `json:"questionNumber"`
	UserAnswer       *string      `gorm:"size:255" json:"userAnswer"`
	IsCorrect        bool         `gorm:"default:false" json:"isCorrect"`
	MarksObtained    float64      `json:"marksObtained"`
	TimeSpentSeconds int          `gorm:"default:0" json:"timeSpentSeconds"`
	Topic            string       `gorm:"size:100" json:"topic"`
}

func (QuestionOutcome) TableName() string {
	return "question_outcomes"
}

package model

// QuestionKind 题型标识，同时也是答案键的类型前缀（如 "mcq-7"）
type QuestionKind string

const (
	KindMCQ       QuestionKind = "mcq"
	KindMSQ       QuestionKind = "msq"
	KindNumerical QuestionKind = "numerical"
)

// QuestionMCQ 单选题，correct_option 为 A/B/C/D 中的一个字母
type QuestionMCQ struct {
	BaseModel
	TestPaperID    uint    `gorm:"index;type:bigint unsigned" json:"testPaperId"`
	QuestionNumber int     `gorm:"not null" json:"questionNumber"`
	QuestionText   string  `gorm:"type:text;not null" json:"questionText"`
	QuestionImage  string  `gorm:"size:255" json:"questionImage,omitempty"`
	OptionA        string  `gorm:"size:255" json:"optionA"`
	OptionB        string  `gorm:"size:255" json:"optionB"`
	OptionC        string  `gorm:"size:255" json:"optionC"`
	OptionD        string  `gorm:"size:255" json:"optionD"`
	CorrectOption  string  `gorm:"size:1" json:"correctOption"`
	Marks          float64 `gorm:"default:1" json:"marks"`
	NegativeMarks  float64 `gorm:"default:0" json:"negativeMarks"`
	Topic          string  `gorm:"size:100" json:"topic,omitempty"`
}

func (QuestionMCQ) TableName() string {
	return "question_type_mcq"
}

// QuestionMSQ 多选题，correct_options 为若干字母拼接（如 "ACD"），不关心顺序
type QuestionMSQ struct {
	BaseModel
	TestPaperID    uint    `gorm:"index;type:bigint unsigned" json:"testPaperId"`
	QuestionNumber int     `gorm:"not null" json:"questionNumber"`
	QuestionText   string  `gorm:"type:text;not null" json:"questionText"`
	QuestionImage  string  `gorm:"size:255" json:"questionImage,omitempty"`
	OptionA        string  `gorm:"size:255" json:"optionA"`
	OptionB        string  `gorm:"size:255" json:"optionB"`
	OptionC        string  `gorm:"size:255" json:"optionC"`
	OptionD        string  `gorm:"size:255" json:"optionD"`
	CorrectOptions string  `gorm:"size:4" json:"correctOptions"`
	Marks          float64 `gorm:"default:1" json:"marks"`
	NegativeMarks  float64 `gorm:"default:0" json:"negativeMarks"`
	Topic          string  `gorm:"size:100" json:"topic,omitempty"`
}

func (QuestionMSQ) TableName() string {
	return "question_type_msq"
}

// QuestionNumerical 数值题，按固定容差判分
type QuestionNumerical struct {
	BaseModel
	TestPaperID    uint    `gorm:"index;type:bigint unsigned" json:"testPaperId"`
	QuestionNumber int     `gorm:"not null" json:"questionNumber"`
	QuestionText   string  `gorm:"type:text;not null" json:"questionText"`
	QuestionImage  string  `gorm:"size:255" json:"questionImage,omitempty"`
	CorrectAnswer  float64 `gorm:"not null" json:"correctAnswer"`
	Marks          float64 `gorm:"default:1" json:"marks"`
	NegativeMarks  float64 `gorm:"default:0" json:"negativeMarks"`
	Topic          string  `gorm:"size:100" json:"topic,omitempty"`
}

func (QuestionNumerical) TableName() string {
	return "question_type_numerical"
}

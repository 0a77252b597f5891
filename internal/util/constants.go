package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// 答案键的题型前缀，如 "mcq-7"
const (
	KeyPrefixMCQ       = "mcq"
	KeyPrefixMSQ       = "msq"
	KeyPrefixNumerical = "numerical"
)

package model

// TopicStat 按主题聚合一次提交的判分结果，只做派生计算，不落库。
// totalMarks 是把考试总分在所有题目间均摊后的份额，不是该主题题目分值之和，
// 结果页一直按均摊口径展示，保持不变。
type TopicStat struct {
	Topic            string  `json:"topic"`
	Total            int     `json:"total"`
	Correct          int     `json:"correct"`
	Incorrect        int     `json:"incorrect"`
	Unanswered       int     `json:"unanswered"`
	MarksObtained    float64 `json:"marksObtained"`
	TotalMarks       float64 `json:"totalMarks"`
	TimeSpentSeconds int     `json:"timeSpentSeconds"`
}

// Accuracy 正确率，total 为 0 时返回 0
func (t TopicStat) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total)
}

// WeakTopic 正确率低于 50% 的主题
type WeakTopic struct {
	Topic    string  `json:"topic"`
	Accuracy float64 `json:"accuracy"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
}

// MissedTopic 存在未作答题目的主题
type MissedTopic struct {
	Topic      string `json:"topic"`
	Unanswered int    `json:"unanswered"`
	Total      int    `json:"total"`
}

// AttemptAnalytics 结果页需要的全部派生统计
type AttemptAnalytics struct {
	TopicStats         []TopicStat   `json:"topicStats"`
	WeakTopics         []WeakTopic   `json:"weakTopics"`
	MissedTopics       []MissedTopic `json:"missedTopics"`
	AvgTimePerQuestion float64       `json:"avgTimePerQuestion"`
}

// ExamStat 教师总览里单场考试的聚合数据
type ExamStat struct {
	ExamID        uint    `json:"examId"`
	ExamName      string  `json:"examName"`
	AttemptCount  int64   `json:"attemptCount"`
	AvgPercentage float64 `json:"avgPercentage"`
}

// TeacherOverview 教师仪表盘
type TeacherOverview struct {
	TotalExams      int64         `json:"totalExams"`
	TotalTestPapers int64         `json:"totalTestPapers"`
	TotalQuestions  int64         `json:"totalQuestions"`
	MCQCount        int64         `json:"mcqCount"`
	MSQCount        int64         `json:"msqCount"`
	NumericalCount  int64         `json:"numericalCount"`
	TotalStudents   int64         `json:"totalStudents"`
	TotalAttempts   int64         `json:"totalAttempts"`
	AvgPercentage   float64       `json:"avgPercentage"`
	RecentAttempts  []ExamAttempt `json:"recentAttempts"`
	TopExams        []ExamStat    `json:"topExams"`
}

// StudentDashboard 学生仪表盘
type StudentDashboard struct {
	UpcomingExams  []Exam        `json:"upcomingExams"`
	RecentAttempts []ExamAttempt `json:"recentAttempts"`
	ExamsTaken     int64         `json:"examsTaken"`
	AvgPercentage  float64       `json:"avgPercentage"`
}

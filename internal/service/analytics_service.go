package service

import (
	"sort"

	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
)

// weakTopicThreshold 正确率低于 50% 的主题算薄弱主题
const weakTopicThreshold = 0.5

type AnalyticsService struct {
	ExamRepo    *repository.ExamRepository
	AttemptRepo *repository.AttemptRepository
	UserRepo    *repository.UserRepository
}

func NewAnalyticsService(
	examRepo *repository.ExamRepository,
	attemptRepo *repository.AttemptRepository,
	userRepo *repository.UserRepository,
) *AnalyticsService {
	return &AnalyticsService{
		ExamRepo:    examRepo,
		AttemptRepo: attemptRepo,
		UserRepo:    userRepo,
	}
}

// ComputeAttemptAnalytics 从一次提交的每题结果派生主题统计，纯计算、可重复执行。
// totalMarks 在主题间按题目数量均摊，不按各主题题目的实际分值累加，
// 这是结果页沿用已久的口径。
func ComputeAttemptAnalytics(outcomes []model.QuestionOutcome, totalMarks float64) *model.AttemptAnalytics {
	analytics := &model.AttemptAnalytics{
		TopicStats:   []model.TopicStat{},
		WeakTopics:   []model.WeakTopic{},
		MissedTopics: []model.MissedTopic{},
	}
	if len(outcomes) == 0 {
		return analytics
	}

	marksShare := totalMarks / float64(len(outcomes))

	byTopic := make(map[string]*model.TopicStat)
	totalTime := 0
	for _, o := range outcomes {
		topic := o.Topic
		if topic == "" {
			topic = "General"
		}
		stat, ok := byTopic[topic]
		if !ok {
			stat = &model.TopicStat{Topic: topic}
			byTopic[topic] = stat
		}
		stat.Total++
		stat.TotalMarks += marksShare
		stat.MarksObtained += o.MarksObtained
		stat.TimeSpentSeconds += o.TimeSpentSeconds
		totalTime += o.TimeSpentSeconds
		switch {
		case o.UserAnswer == nil:
			stat.Unanswered++
		case o.IsCorrect:
			stat.Correct++
		default:
			stat.Incorrect++
		}
	}

	topics := make([]string, 0, len(byTopic))
	for topic := range byTopic {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		stat := byTopic[topic]
		analytics.TopicStats = append(analytics.TopicStats, *stat)
		if stat.Accuracy() < weakTopicThreshold {
			analytics.WeakTopics = append(analytics.WeakTopics, model.WeakTopic{
				Topic:    stat.Topic,
				Accuracy: stat.Accuracy(),
				Correct:  stat.Correct,
				Total:    stat.Total,
			})
		}
		if stat.Unanswered > 0 {
			analytics.MissedTopics = append(analytics.MissedTopics, model.MissedTopic{
				Topic:      stat.Topic,
				Unanswered: stat.Unanswered,
				Total:      stat.Total,
			})
		}
	}

	// 薄弱主题按正确率升序，最弱的排最前
	sort.SliceStable(analytics.WeakTopics, func(i, j int) bool {
		return analytics.WeakTopics[i].Accuracy < analytics.WeakTopics[j].Accuracy
	})

	analytics.AvgTimePerQuestion = float64(totalTime) / float64(len(outcomes))
	return analytics
}

// GetTeacherOverview 教师仪表盘聚合
func (s *AnalyticsService) GetTeacherOverview() (*model.TeacherOverview, error) {
	overview := &model.TeacherOverview{}

	var err error
	if overview.TotalExams, err = s.ExamRepo.Count(); err != nil {
		return nil, err
	}
	if overview.TotalTestPapers, err = s.ExamRepo.CountPapers(); err != nil {
		return nil, err
	}
	mcq, msq, numerical, err := s.ExamRepo.CountQuestions()
	if err != nil {
		return nil, err
	}
	overview.MCQCount = mcq
	overview.MSQCount = msq
	overview.NumericalCount = numerical
	overview.TotalQuestions = mcq + msq + numerical

	if overview.TotalStudents, err = s.UserRepo.CountByRole(model.Student); err != nil {
		return nil, err
	}
	if overview.TotalAttempts, err = s.AttemptRepo.Count(); err != nil {
		return nil, err
	}
	if overview.AvgPercentage, err = s.AttemptRepo.AvgPercentage(); err != nil {
		return nil, err
	}
	if overview.RecentAttempts, err = s.AttemptRepo.FindRecent(10); err != nil {
		return nil, err
	}
	if overview.TopExams, err = s.AttemptRepo.TopExamsByAttempts(5); err != nil {
		return nil, err
	}
	return overview, nil
}

// GetStudentDashboard 学生仪表盘聚合
func (s *AnalyticsService) GetStudentDashboard(studentProfileID uint) (*model.StudentDashboard, error) {
	dashboard := &model.StudentDashboard{}

	exams, err := s.ExamRepo.FindAll()
	if err != nil {
		return nil, err
	}
	attemptedIDs, err := s.AttemptRepo.AttemptedExamIDs(studentProfileID)
	if err != nil {
		return nil, err
	}
	attempted := make(map[uint]bool, len(attemptedIDs))
	for _, id := range attemptedIDs {
		attempted[id] = true
	}
	// 没考过的才算待考
	dashboard.UpcomingExams = make([]model.Exam, 0, len(exams))
	for _, exam := range exams {
		if !attempted[exam.ID] {
			dashboard.UpcomingExams = append(dashboard.UpcomingExams, exam)
		}
	}
	if dashboard.RecentAttempts, err = s.AttemptRepo.FindByStudent(studentProfileID, 10); err != nil {
		return nil, err
	}
	if dashboard.ExamsTaken, err = s.AttemptRepo.CountDistinctExamsByStudent(studentProfileID); err != nil {
		return nil, err
	}
	if dashboard.AvgPercentage, err = s.AttemptRepo.AvgPercentageByStudent(studentProfileID); err != nil {
		return nil, err
	}
	return dashboard, nil
}

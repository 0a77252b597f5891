package service

import (
	"math"
	"reflect"
	"testing"

	"exam_portal_backend/internal/model"
)

func strPtr(s string) *string { return &s }

func sampleOutcomes() []model.QuestionOutcome {
	return []model.QuestionOutcome{
		{QuestionID: 1, QuestionKind: model.KindMCQ, Topic: "Algebra", UserAnswer: strPtr("A"), IsCorrect: true, MarksObtained: 2, TimeSpentSeconds: 30},
		{QuestionID: 2, QuestionKind: model.KindMCQ, Topic: "Algebra", UserAnswer: strPtr("B"), IsCorrect: false, MarksObtained: -0.5, TimeSpentSeconds: 50},
		{QuestionID: 3, QuestionKind: model.KindMSQ, Topic: "Geometry", UserAnswer: nil, TimeSpentSeconds: 0},
		{QuestionID: 4, QuestionKind: model.KindNumerical, Topic: "", UserAnswer: strPtr("4.0"), IsCorrect: true, MarksObtained: 3, TimeSpentSeconds: 40},
	}
}

func TestComputeAttemptAnalytics(t *testing.T) {
	analytics := ComputeAttemptAnalytics(sampleOutcomes(), 12)

	if len(analytics.TopicStats) != 3 {
		t.Fatalf("topicStats = %d, want 3", len(analytics.TopicStats))
	}

	// 按主题名排序：Algebra, General, Geometry
	algebra := analytics.TopicStats[0]
	if algebra.Topic != "Algebra" || algebra.Total != 2 || algebra.Correct != 1 || algebra.Incorrect != 1 {
		t.Errorf("algebra stat = %+v", algebra)
	}
	if algebra.MarksObtained != 1.5 {
		t.Errorf("algebra marksObtained = %v, want 1.5", algebra.MarksObtained)
	}
	// 满分按题目数均摊：12 分 4 题，每题 3 分，Algebra 占两题
	if math.Abs(algebra.TotalMarks-6) > 1e-9 {
		t.Errorf("algebra totalMarks = %v, want 6", algebra.TotalMarks)
	}
	if algebra.TimeSpentSeconds != 80 {
		t.Errorf("algebra time = %d, want 80", algebra.TimeSpentSeconds)
	}

	general := analytics.TopicStats[1]
	if general.Topic != "General" || general.Total != 1 || general.Correct != 1 {
		t.Errorf("untagged question should fall under General: %+v", general)
	}

	geometry := analytics.TopicStats[2]
	if geometry.Topic != "Geometry" || geometry.Unanswered != 1 {
		t.Errorf("geometry stat = %+v", geometry)
	}

	if analytics.AvgTimePerQuestion != 30 {
		t.Errorf("avgTimePerQuestion = %v, want 30", analytics.AvgTimePerQuestion)
	}
}

func TestWeakTopicsAscendingAccuracy(t *testing.T) {
	outcomes := []model.QuestionOutcome{
		// Geometry 0/2
		{QuestionID: 1, Topic: "Geometry", UserAnswer: strPtr("A"), IsCorrect: false},
		{QuestionID: 2, Topic: "Geometry", UserAnswer: nil},
		// Algebra 1/3
		{QuestionID: 3, Topic: "Algebra", UserAnswer: strPtr("A"), IsCorrect: true},
		{QuestionID: 4, Topic: "Algebra", UserAnswer: strPtr("B"), IsCorrect: false},
		{QuestionID: 5, Topic: "Algebra", UserAnswer: strPtr("C"), IsCorrect: false},
		// Calculus 1/1，不是薄弱主题
		{QuestionID: 6, Topic: "Calculus", UserAnswer: strPtr("D"), IsCorrect: true},
	}

	analytics := ComputeAttemptAnalytics(outcomes, 6)

	var got []string
	for _, w := range analytics.WeakTopics {
		got = append(got, w.Topic)
	}
	want := []string{"Geometry", "Algebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("weakTopics = %v, want %v", got, want)
	}

	if len(analytics.MissedTopics) != 1 || analytics.MissedTopics[0].Topic != "Geometry" {
		t.Errorf("missedTopics = %+v, want only Geometry", analytics.MissedTopics)
	}
}

// 同一份 outcome 重复计算必须得到完全一致的结果
func TestComputeAttemptAnalyticsIdempotent(t *testing.T) {
	outcomes := sampleOutcomes()
	first := ComputeAttemptAnalytics(outcomes, 12)
	second := ComputeAttemptAnalytics(outcomes, 12)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("analytics differ between runs:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestComputeAttemptAnalyticsEmpty(t *testing.T) {
	analytics := ComputeAttemptAnalytics(nil, 0)
	if len(analytics.TopicStats) != 0 || len(analytics.WeakTopics) != 0 || len(analytics.MissedTopics) != 0 {
		t.Errorf("empty outcomes should yield empty analytics: %+v", analytics)
	}
	if analytics.AvgTimePerQuestion != 0 {
		t.Errorf("avgTimePerQuestion = %v, want 0", analytics.AvgTimePerQuestion)
	}
}

package service

import (
	"encoding/json"
	"math"
	"testing"

	"exam_portal_backend/internal/model"
)

func newBank() *QuestionBank {
	mcq := model.QuestionMCQ{
		TestPaperID:    1,
		QuestionNumber: 1,
		QuestionText:   "2+2=?",
		OptionA:        "3",
		OptionB:        "4",
		OptionC:        "5",
		OptionD:        "6",
		CorrectOption:  "B",
		Marks:          2,
		NegativeMarks:  0.5,
		Topic:          "Arithmetic",
	}
	mcq.ID = 11

	msq := model.QuestionMSQ{
		TestPaperID:    1,
		QuestionNumber: 2,
		QuestionText:   "Select primes",
		OptionA:        "2",
		OptionB:        "4",
		OptionC:        "5",
		OptionD:        "7",
		CorrectOptions: "ACD",
		Marks:          4,
		NegativeMarks:  1,
		Topic:          "Number Theory",
	}
	msq.ID = 21

	num := model.QuestionNumerical{
		TestPaperID:    1,
		QuestionNumber: 3,
		QuestionText:   "sqrt(16.04)?",
		CorrectAnswer:  4.005,
		Marks:          3,
		NegativeMarks:  0,
		Topic:          "Arithmetic",
	}
	num.ID = 31

	return &QuestionBank{
		Exam:       model.Exam{Name: "Sample", TotalMarks: 9},
		Paper:      model.TestPaper{PaperCode: "SAMPLE01", IsActive: true, TotalQuestions: 3},
		MCQs:       []model.QuestionMCQ{mcq},
		MSQs:       []model.QuestionMSQ{msq},
		Numericals: []model.QuestionNumerical{num},
	}
}

func TestScoreFullMarks(t *testing.T) {
	bank := newBank()
	result := bank.Score(&SubmissionPayload{
		Answers: map[string]interface{}{
			"mcq-11":       "B",
			"msq-21":       "D,A,C",
			"numerical-31": "4.005",
		},
	})

	if result.Score != 9 {
		t.Errorf("score = %v, want 9", result.Score)
	}
	if result.TotalMarks != 9 {
		t.Errorf("totalMarks = %v, want 9", result.TotalMarks)
	}
	if result.Percentage != 100 {
		t.Errorf("percentage = %v, want 100", result.Percentage)
	}
	if result.Correct != 3 || result.Incorrect != 0 || result.Unanswered != 0 {
		t.Errorf("counts = %d/%d/%d, want 3/0/0", result.Correct, result.Incorrect, result.Unanswered)
	}
	if len(result.Outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3", len(result.Outcomes))
	}
}

func TestScoreMCQ(t *testing.T) {
	tests := []struct {
		name      string
		answer    interface{}
		wantMarks float64
		wantRight bool
	}{
		{"correct letter", "B", 2, true},
		{"wrong letter", "A", -0.5, false},
		{"case sensitive", "b", -0.5, false},
		{"empty string counts as answered", "", -0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := newBank()
			result := bank.Score(&SubmissionPayload{
				Answers: map[string]interface{}{"mcq-11": tt.answer},
			})
			outcome := findOutcome(t, result, model.KindMCQ, 11)
			if outcome.IsCorrect != tt.wantRight {
				t.Errorf("isCorrect = %v, want %v", outcome.IsCorrect, tt.wantRight)
			}
			if outcome.MarksObtained != tt.wantMarks {
				t.Errorf("marksObtained = %v, want %v", outcome.MarksObtained, tt.wantMarks)
			}
			if outcome.UserAnswer == nil {
				t.Error("userAnswer should be recorded for answered question")
			}
		})
	}
}

func TestScoreMSQ(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		wantRight bool
	}{
		{"exact order", "A,C,D", true},
		{"shuffled order", "D,A,C", true},
		{"no whitespace normalization", " A , C , D ", false},
		{"trailing comma", "A,C,D,", false},
		{"subset", "A,C", false},
		{"superset", "A,B,C,D", false},
		{"wrong set", "A,B,D", false},
		{"empty selection", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := newBank()
			result := bank.Score(&SubmissionPayload{
				Answers: map[string]interface{}{"msq-21": tt.answer},
			})
			outcome := findOutcome(t, result, model.KindMSQ, 21)
			if outcome.IsCorrect != tt.wantRight {
				t.Errorf("answer %q: isCorrect = %v, want %v", tt.answer, outcome.IsCorrect, tt.wantRight)
			}
			wantMarks := -1.0
			if tt.wantRight {
				wantMarks = 4
			}
			if outcome.MarksObtained != wantMarks {
				t.Errorf("answer %q: marksObtained = %v, want %v", tt.answer, outcome.MarksObtained, wantMarks)
			}
		})
	}
}

func TestScoreNumerical(t *testing.T) {
	tests := []struct {
		name      string
		answer    interface{}
		wantRight bool
	}{
		{"exact", "4.005", true},
		{"within tolerance", "4.01", true},
		{"outside tolerance", "4.02", false},
		{"just under boundary", "4.0149", true},
		{"numeric json value", 4.005, true},
		{"unparseable", "four", false},
		{"empty string", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := newBank()
			result := bank.Score(&SubmissionPayload{
				Answers: map[string]interface{}{"numerical-31": tt.answer},
			})
			outcome := findOutcome(t, result, model.KindNumerical, 31)
			if outcome.IsCorrect != tt.wantRight {
				t.Errorf("answer %v: isCorrect = %v, want %v", tt.answer, outcome.IsCorrect, tt.wantRight)
			}
		})
	}
}

func TestScoreUnanswered(t *testing.T) {
	bank := newBank()
	result := bank.Score(&SubmissionPayload{Answers: map[string]interface{}{}})

	if result.Score != 0 {
		t.Errorf("score = %v, want 0", result.Score)
	}
	if result.Unanswered != 3 {
		t.Errorf("unanswered = %d, want 3", result.Unanswered)
	}
	if len(result.Outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3: unanswered questions must still be recorded", len(result.Outcomes))
	}
	for _, o := range result.Outcomes {
		if o.UserAnswer != nil {
			t.Errorf("question %d: userAnswer should be nil when unanswered", o.QuestionID)
		}
		if o.MarksObtained != 0 {
			t.Errorf("question %d: marksObtained = %v, want 0", o.QuestionID, o.MarksObtained)
		}
	}
	if result.TotalMarks != 9 {
		t.Errorf("totalMarks = %v, want 9: full marks do not depend on answers", result.TotalMarks)
	}
}

func TestScoreNegativeTotal(t *testing.T) {
	bank := newBank()
	result := bank.Score(&SubmissionPayload{
		Answers: map[string]interface{}{
			"mcq-11": "A",
			"msq-21": "B",
		},
	})
	if result.Score != -1.5 {
		t.Errorf("score = %v, want -1.5", result.Score)
	}
	wantPct := -1.5 / 9 * 100
	if math.Abs(result.Percentage-wantPct) > 1e-9 {
		t.Errorf("percentage = %v, want %v", result.Percentage, wantPct)
	}
}

func TestScoreEmptyPaper(t *testing.T) {
	bank := &QuestionBank{}
	result := bank.Score(&SubmissionPayload{
		Answers: map[string]interface{}{"mcq-11": "B"},
	})
	if result.Score != 0 || result.TotalMarks != 0 || result.Percentage != 0 {
		t.Errorf("empty paper: got score=%v total=%v pct=%v, want all 0",
			result.Score, result.TotalMarks, result.Percentage)
	}
	if len(result.Outcomes) != 0 {
		t.Errorf("outcomes = %d, want 0", len(result.Outcomes))
	}
}

func TestReconcileAnswerKeys(t *testing.T) {
	bank := newBank()
	tests := []struct {
		name     string
		key      string
		wantKind model.QuestionKind
		wantID   uint
		wantOK   bool
	}{
		{"typed mcq key", "mcq-11", model.KindMCQ, 11, true},
		{"typed msq key", "msq-21", model.KindMSQ, 21, true},
		{"typed numerical key", "numerical-31", model.KindNumerical, 31, true},
		{"bare id resolves to mcq", "11", model.KindMCQ, 11, true},
		{"bare id resolves to msq", "21", model.KindMSQ, 21, true},
		{"bare id resolves to numerical", "31", model.KindNumerical, 31, true},
		{"bare id not on paper", "99", "", 0, false},
		{"unknown prefix", "essay-11", "", 0, false},
		{"non numeric suffix", "mcq-abc", "", 0, false},
		{"garbage", "hello", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := bank.ReconcileAnswers(map[string]interface{}{tt.key: "A"})
			if !tt.wantOK {
				if len(resolved) != 0 {
					t.Errorf("key %q should be discarded, got %v", tt.key, resolved)
				}
				return
			}
			if len(resolved) != 1 {
				t.Fatalf("key %q: resolved %d entries, want 1", tt.key, len(resolved))
			}
			for ak := range resolved {
				if ak.Kind != tt.wantKind || ak.ID != tt.wantID {
					t.Errorf("key %q resolved to %v/%d, want %v/%d",
						tt.key, ak.Kind, ak.ID, tt.wantKind, tt.wantID)
				}
			}
		})
	}
}

// 同一 id 同时出现在多张题型表里时，裸数字键按 MCQ > MSQ > 数值题 的顺序取第一个命中
func TestBareKeyPrecedence(t *testing.T) {
	mcq := model.QuestionMCQ{QuestionNumber: 1, CorrectOption: "A", Marks: 1}
	mcq.ID = 7
	msq := model.QuestionMSQ{QuestionNumber: 2, CorrectOptions: "AB", Marks: 1}
	msq.ID = 7
	bank := &QuestionBank{
		MCQs: []model.QuestionMCQ{mcq},
		MSQs: []model.QuestionMSQ{msq},
	}

	resolved := bank.ReconcileAnswers(map[string]interface{}{"7": "A"})
	if len(resolved) != 1 {
		t.Fatalf("resolved %d entries, want 1", len(resolved))
	}
	for ak := range resolved {
		if ak.Kind != model.KindMCQ {
			t.Errorf("bare key resolved to %v, want mcq", ak.Kind)
		}
	}
}

func TestScoreKeyForMissingQuestionIgnored(t *testing.T) {
	bank := newBank()
	result := bank.Score(&SubmissionPayload{
		Answers: map[string]interface{}{
			"mcq-11":  "B",
			"mcq-999": "A", // 不在本卷里
		},
	})
	if len(result.Outcomes) != 3 {
		t.Errorf("outcomes = %d, want 3", len(result.Outcomes))
	}
	if result.Score != 2 {
		t.Errorf("score = %v, want 2", result.Score)
	}
}

func TestScoreTimeSpent(t *testing.T) {
	bank := newBank()
	result := bank.Score(&SubmissionPayload{
		Answers: map[string]interface{}{"mcq-11": "B"},
		TimeSpent: map[string]int{
			"mcq-11": 42,
			"21":     30, // 裸键同样参与耗时归并
		},
	})
	if o := findOutcome(t, result, model.KindMCQ, 11); o.TimeSpentSeconds != 42 {
		t.Errorf("mcq time = %d, want 42", o.TimeSpentSeconds)
	}
	if o := findOutcome(t, result, model.KindMSQ, 21); o.TimeSpentSeconds != 30 {
		t.Errorf("msq time = %d, want 30", o.TimeSpentSeconds)
	}
}

// 交卷载荷的字段名是 time_spent/start_time/total_time，旧客户端的驼峰写法同样要能解析
func TestSubmissionPayloadDecode(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			"snake_case fields",
			`{"answers":{"mcq-11":"B"},"time_spent":{"mcq-11":42},"start_time":"2026-08-28T10:00:00Z","total_time":600}`,
		},
		{
			"legacy camelCase fields",
			`{"answers":{"mcq-11":"B"},"timeSpent":{"mcq-11":42},"startTime":"2026-08-28T10:00:00Z","totalTime":600}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload SubmissionPayload
			if err := json.Unmarshal([]byte(tt.body), &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := payload.Answers["mcq-11"]; got != "B" {
				t.Errorf("answers[mcq-11] = %v, want B", got)
			}
			if got := payload.TimeSpent["mcq-11"]; got != 42 {
				t.Errorf("timeSpent[mcq-11] = %d, want 42", got)
			}
			if payload.StartTime != "2026-08-28T10:00:00Z" {
				t.Errorf("startTime = %q", payload.StartTime)
			}
			if payload.TimeTakenSeconds != 600 {
				t.Errorf("totalTime = %d, want 600", payload.TimeTakenSeconds)
			}
		})
	}
}

// 解码后的耗时数据要一路落到每题 outcome 上
func TestSubmissionPayloadTimeFlowsIntoOutcomes(t *testing.T) {
	bank := newBank()
	var payload SubmissionPayload
	body := `{"answers":{"mcq-11":"B"},"time_spent":{"mcq-11":42},"total_time":600}`
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	result := bank.Score(&payload)
	if o := findOutcome(t, result, model.KindMCQ, 11); o.TimeSpentSeconds != 42 {
		t.Errorf("mcq time = %d, want 42", o.TimeSpentSeconds)
	}
	if payload.TimeTakenSeconds != 600 {
		t.Errorf("totalTime = %d, want 600", payload.TimeTakenSeconds)
	}
}

func findOutcome(t *testing.T, result *ScoreResult, kind model.QuestionKind, id uint) *model.QuestionOutcome {
	t.Helper()
	for i := range result.Outcomes {
		if result.Outcomes[i].QuestionKind == kind && result.Outcomes[i].QuestionID == id {
			return &result.Outcomes[i]
		}
	}
	t.Fatalf("no outcome for %v/%d", kind, id)
	return nil
}

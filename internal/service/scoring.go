package service

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/util"
)

// numericalTolerance 数值题判分容差，|提交值-标准答案| 小于它才算对
const numericalTolerance = 0.01

// QuestionBank 一套激活试卷的全部题目，判分的唯一依据
type QuestionBank struct {
	Exam       model.Exam
	Paper      model.TestPaper
	MCQs       []model.QuestionMCQ
	MSQs       []model.QuestionMSQ
	Numericals []model.QuestionNumerical
}

// QuestionCount 试卷题目总数
func (b *QuestionBank) QuestionCount() int {
	return len(b.MCQs) + len(b.MSQs) + len(b.Numericals)
}

// TotalMarks 满分为全部题目分值之和，与是否作答无关
func (b *QuestionBank) TotalMarks() float64 {
	var total float64
	for _, q := range b.MCQs {
		total += q.Marks
	}
	for _, q := range b.MSQs {
		total += q.Marks
	}
	for _, q := range b.Numericals {
		total += q.Marks
	}
	return total
}

// SubmissionPayload 前端交卷时的原始载荷，对外字段是
// answers / time_spent / start_time / total_time。
// Answers 的键形如 "mcq-7"，历史客户端会送裸数字 "7"，值统一当字符串处理。
// StartTime 原样透传，不与服务器时间校验。
type SubmissionPayload struct {
	Answers          map[string]interface{} `json:"answers"`
	TimeSpent        map[string]int         `json:"time_spent"`
	StartTime        string                 `json:"start_time"`
	TimeTakenSeconds int                    `json:"total_time"`
}

// UnmarshalJSON 同时接受旧客户端的驼峰字段名（timeSpent/startTime/totalTime），
// 下划线写法优先
func (p *SubmissionPayload) UnmarshalJSON(data []byte) error {
	type wire struct {
		Answers      map[string]interface{} `json:"answers"`
		TimeSpent    map[string]int         `json:"time_spent"`
		StartTime    string                 `json:"start_time"`
		TotalTime    int                    `json:"total_time"`
		TimeSpentAlt map[string]int         `json:"timeSpent"`
		StartTimeAlt string                 `json:"startTime"`
		TotalTimeAlt int                    `json:"totalTime"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	p.Answers = w.Answers
	p.TimeSpent = w.TimeSpent
	if p.TimeSpent == nil {
		p.TimeSpent = w.TimeSpentAlt
	}
	p.StartTime = w.StartTime
	if p.StartTime == "" {
		p.StartTime = w.StartTimeAlt
	}
	p.TimeTakenSeconds = w.TotalTime
	if p.TimeTakenSeconds == 0 {
		p.TimeTakenSeconds = w.TotalTimeAlt
	}
	return nil
}

// ScoreResult 一次判分的完整产物，试卷里每道题恰好对应一条 outcome
type ScoreResult struct {
	Score      float64
	TotalMarks float64
	Percentage float64
	Correct    int
	Incorrect  int
	Unanswered int
	Outcomes   []model.QuestionOutcome
}

// answerKey 解析后的答案键
type answerKey struct {
	Kind model.QuestionKind
	ID   uint
}

// parseAnswerKey 解析 "<type>-<id>" 形式的键。
// 前缀未知或 id 不是整数时返回 ok=false，调用方直接丢弃该条目。
func parseAnswerKey(key string) (answerKey, bool) {
	prefix, idPart, found := strings.Cut(key, "-")
	if !found {
		return answerKey{}, false
	}
	id, err := strconv.ParseUint(idPart, 10, 32)
	if err != nil {
		return answerKey{}, false
	}
	switch prefix {
	case util.KeyPrefixMCQ:
		return answerKey{Kind: model.KindMCQ, ID: uint(id)}, true
	case util.KeyPrefixMSQ:
		return answerKey{Kind: model.KindMSQ, ID: uint(id)}, true
	case util.KeyPrefixNumerical:
		return answerKey{Kind: model.KindNumerical, ID: uint(id)}, true
	}
	return answerKey{}, false
}

// resolveBareKey 裸数字键只给 id 不给题型，按 MCQ > MSQ > Numerical 的顺序
// 在本卷题目里探测；都不命中则丢弃
func (b *QuestionBank) resolveBareKey(key string) (answerKey, bool) {
	id64, err := strconv.ParseUint(key, 10, 32)
	if err != nil {
		return answerKey{}, false
	}
	id := uint(id64)
	for _, q := range b.MCQs {
		if q.ID == id {
			return answerKey{Kind: model.KindMCQ, ID: id}, true
		}
	}
	for _, q := range b.MSQs {
		if q.ID == id {
			return answerKey{Kind: model.KindMSQ, ID: id}, true
		}
	}
	for _, q := range b.Numericals {
		if q.ID == id {
			return answerKey{Kind: model.KindNumerical, ID: id}, true
		}
	}
	return answerKey{}, false
}

// answerToString JSON 反序列化后值可能是 string 或 float64，统一转成字符串再判分
func answerToString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ReconcileAnswers 把原始答案载荷归一化成 (题型,题目ID) -> 答案 的映射。
// 无法解析的键、不在本卷里的题目一律静默丢弃，判分只看卷内题目。
func (b *QuestionBank) ReconcileAnswers(raw map[string]interface{}) map[answerKey]string {
	resolved := make(map[answerKey]string, len(raw))
	for key, value := range raw {
		ak, ok := parseAnswerKey(key)
		if !ok {
			ak, ok = b.resolveBareKey(key)
		}
		if !ok {
			continue
		}
		resolved[ak] = answerToString(value)
	}
	return resolved
}

// reconcileTimeSpent 每题耗时载荷用同一套键规则归一化
func (b *QuestionBank) reconcileTimeSpent(raw map[string]int) map[answerKey]int {
	resolved := make(map[answerKey]int, len(raw))
	for key, seconds := range raw {
		ak, ok := parseAnswerKey(key)
		if !ok {
			ak, ok = b.resolveBareKey(key)
		}
		if !ok {
			continue
		}
		resolved[ak] = seconds
	}
	return resolved
}

// scoreMCQ 单选题严格匹配正确选项字母，区分大小写
func scoreMCQ(q *model.QuestionMCQ, answer string) bool {
	return answer == q.CorrectOption
}

// scoreMSQ 多选题要求选项集合完全一致，顺序无关。
// 提交值是逗号分隔的字母串（如 "D,A,C"），标准答案是拼接的字母串（如 "ACD"）。
// 按逗号原样切分，不做去空格之类的归一化，空串视为空选择。
func scoreMSQ(q *model.QuestionMSQ, answer string) bool {
	var selected []string
	if answer != "" {
		selected = strings.Split(answer, ",")
	}
	correct := strings.Split(q.CorrectOptions, "")
	if len(selected) != len(correct) {
		return false
	}
	sort.Strings(selected)
	sort.Strings(correct)
	for i := range selected {
		if selected[i] != correct[i] {
			return false
		}
	}
	return true
}

// scoreNumerical 数值题按容差判分，提交值解析失败按答错处理
func scoreNumerical(q *model.QuestionNumerical, answer string) bool {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	if err != nil {
		return false
	}
	return math.Abs(parsed-q.CorrectAnswer) < numericalTolerance
}

// Score 对一次提交判分。满分取全卷分值之和；答对得满分值、
// 答错扣该题负分、未作答记 0 分；每道题都会生成一条 outcome。
func (b *QuestionBank) Score(payload *SubmissionPayload) *ScoreResult {
	answers := b.ReconcileAnswers(payload.Answers)
	times := b.reconcileTimeSpent(payload.TimeSpent)

	result := &ScoreResult{
		TotalMarks: b.TotalMarks(),
		Outcomes:   make([]model.QuestionOutcome, 0, b.QuestionCount()),
	}

	appendOutcome := func(ak answerKey, number int, topic string, marks, negative float64, grade func(string) bool) {
		outcome := model.QuestionOutcome{
			QuestionID:       ak.ID,
			QuestionKind:     ak.Kind,
			QuestionNumber:   number,
			TimeSpentSeconds: times[ak],
			Topic:            topic,
		}
		answer, answered := answers[ak]
		if !answered {
			result.Unanswered++
		} else {
			userAnswer := answer
			outcome.UserAnswer = &userAnswer
			if grade(answer) {
				outcome.IsCorrect = true
				outcome.MarksObtained = marks
				result.Correct++
			} else {
				outcome.MarksObtained = -negative
				result.Incorrect++
			}
		}
		result.Score += outcome.MarksObtained
		result.Outcomes = append(result.Outcomes, outcome)
	}

	for i := range b.MCQs {
		q := &b.MCQs[i]
		appendOutcome(answerKey{model.KindMCQ, q.ID}, q.QuestionNumber, q.Topic, q.Marks, q.NegativeMarks,
			func(a string) bool { return scoreMCQ(q, a) })
	}
	for i := range b.MSQs {
		q := &b.MSQs[i]
		appendOutcome(answerKey{model.KindMSQ, q.ID}, q.QuestionNumber, q.Topic, q.Marks, q.NegativeMarks,
			func(a string) bool { return scoreMSQ(q, a) })
	}
	for i := range b.Numericals {
		q := &b.Numericals[i]
		appendOutcome(answerKey{model.KindNumerical, q.ID}, q.QuestionNumber, q.Topic, q.Marks, q.NegativeMarks,
			func(a string) bool { return scoreNumerical(q, a) })
	}

	if result.TotalMarks > 0 {
		result.Percentage = result.Score / result.TotalMarks * 100
	}
	return result
}

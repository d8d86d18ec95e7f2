package report

import (
	"encoding/json"
	"fmt"
	"math"
)

// Level selects the question set, the coaching tone, and which report
// schema variant applies. It is fixed for the lifetime of a session.
type Level int

const (
	LevelElementary Level = iota
	LevelMiddle
	LevelHigh
)

// AllLevels lists the levels in menu order.
var AllLevels = []Level{LevelElementary, LevelMiddle, LevelHigh}

// String returns the stable identifier used in config and logs.
func (l Level) String() string {
	switch l {
	case LevelElementary:
		return "elementary"
	case LevelMiddle:
		return "middle"
	case LevelHigh:
		return "high"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Label returns the learner-facing Korean label, which is also the label
// the coaching prompts are written around.
func (l Level) Label() string {
	switch l {
	case LevelElementary:
		return "초등학생"
	case LevelMiddle:
		return "중학생"
	case LevelHigh:
		return "고등학생"
	}
	return "?"
}

// ParseLevel maps a stable identifier back to a Level.
func ParseLevel(s string) (Level, error) {
	for _, l := range AllLevels {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// Score is a 0-100 rating. The model is asked for a JSON number and
// sometimes sends a fractional one, so decoding rounds to the nearest
// integer instead of rejecting the report.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Score(math.Round(v))
	return nil
}

// Answer is one finalized question/answer pair. Created once when a capture
// is submitted, never mutated afterwards.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnswerReport is the structured feedback for a single answer. The display
// form of the evaluation varies by level (stars, points, letter grade) but
// Score is always a plain 0-100 number; it is the only field the growth
// series may rely on.
type AnswerReport struct {
	Title           string `json:"title"`
	EvaluationTitle string `json:"evaluationTitle"`
	EvaluationValue string `json:"evaluationValue"`
	PraiseTitle     string `json:"praiseTitle"`
	Praise          string `json:"praise"`
	GrowthTipTitle  string `json:"growthTipTitle"`
	GrowthTip       string `json:"growthTip"`
	ButtonText      string `json:"buttonText"`
	Score           Score  `json:"score"`
}

// RadarPoint is one axis of the competency radar.
type RadarPoint struct {
	Label string `json:"label"`
	Score Score  `json:"score"`
}

// GrowthPoint is one entry of the per-question score series. Question is
// 1-based and positional: entry i always refers to the i-th question asked,
// whether or not it was answered.
type GrowthPoint struct {
	Question int   `json:"question"`
	Score    Score `json:"score"`
}

// AnalysisItem is one category of the detailed analysis. Comment is used by
// the younger tiers; Quote and Analysis only appear for the high tier.
type AnalysisItem struct {
	Category string `json:"category"`
	Score    Score  `json:"score"`
	Comment  string `json:"comment,omitempty"`
	Quote    string `json:"quote,omitempty"`
	Analysis string `json:"analysis,omitempty"`
}

// Utilization carries the high-tier advice on applying the analysis.
type Utilization struct {
	InterviewStrategy string `json:"interviewStrategy"`
	StudentRecordTips string `json:"studentRecordTips"`
}

// DiagnosisAndGuide is the high-tier diagnosis section.
type DiagnosisAndGuide struct {
	Profiling   string      `json:"profiling"`
	Utilization Utilization `json:"utilization"`
}

// Simulation is the high-tier mock follow-up section.
type Simulation struct {
	FollowUpQuestions    []string `json:"followUpQuestions"`
	LogicEnhancement     string   `json:"logicEnhancement"`
	AnswerExtensionGuide string   `json:"answerExtensionGuide"`
}

// FinalReport is the cross-answer report. The core fields are populated for
// every level; the optional sections belong to specific levels and are never
// referenced by the other levels' renderers.
type FinalReport struct {
	Title            string         `json:"title"`
	DetailedAnalysis []AnalysisItem `json:"detailedAnalysis"`
	RadarChartData   []RadarPoint   `json:"radarChartData"`
	GrowthGraphData  []GrowthPoint  `json:"growthGraphData"`
	GrowthGraphTitle string         `json:"growthGraphTitle,omitempty"`

	// Elementary and middle tiers.
	OverallScore      Score  `json:"overallScore,omitempty"`
	OverallGrade      string `json:"overallGrade,omitempty"`
	Persona           string `json:"persona,omitempty"`
	FinalCommentTitle string `json:"finalCommentTitle,omitempty"`
	FinalComment      string `json:"finalComment,omitempty"`

	// High tier.
	OverallTier       string             `json:"overallTier,omitempty"`
	StrengthKeywords  []string           `json:"strengthKeywords,omitempty"`
	DiagnosisAndGuide *DiagnosisAndGuide `json:"diagnosisAndGuide,omitempty"`
	Simulation        *Simulation        `json:"simulation,omitempty"`
	FutureStrategy    string             `json:"futureStrategy,omitempty"`
}

package interview

import (
	"github.com/google/uuid"

	"github.com/ssupark/oratio/internal/report"
)

// State is the session's single active screen/state.
type State int

const (
	StateStart State = iota
	StateInterviewing
	StateAwaitingAnswerReport
	StateAnswerReport
	StateAwaitingFinalReport
	StateFinalResults
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateInterviewing:
		return "interviewing"
	case StateAwaitingAnswerReport:
		return "awaiting-answer-report"
	case StateAnswerReport:
		return "answer-report"
	case StateAwaitingFinalReport:
		return "awaiting-final-report"
	case StateFinalResults:
		return "final-results"
	}
	return "unknown"
}

// Session is the full session record. Transitions are pure functions that
// return a new value; nothing mutates a Session in place, so the rendered
// view is always a function of one consistent record.
//
// Epoch identifies the current run of the machine. Async report results
// carry the epoch they were issued under; a result whose epoch no longer
// matches is a leftover from a restarted or re-leveled session and is
// dropped.
type Session struct {
	State State
	Level report.Level

	Questions []string
	Cursor    int

	Answers []report.Answer
	Scores  []int // per-answer mini-report scores; 0 where the report was absent

	AnswerReport *report.AnswerReport
	FinalReport  *report.FinalReport

	Epoch string
}

// New returns a fresh session at the start screen.
func New() Session {
	return Session{
		State: StateStart,
		Epoch: uuid.NewString(),
	}
}

// SelectLevel starts an interview: fixes the level and question set, clears
// all accumulated answers and reports, and opens a new epoch. Only valid
// from the start state.
func (s Session) SelectLevel(level report.Level, questions []string) Session {
	if s.State != StateStart || len(questions) == 0 {
		return s
	}
	return Session{
		State:     StateInterviewing,
		Level:     level,
		Questions: questions,
		Epoch:     uuid.NewString(),
	}
}

// SubmitAnswer appends the finalized answer for the current question and
// moves to the awaiting state. Ignored outside StateInterviewing, which is
// what makes submission exactly-once: the first submission leaves
// StateInterviewing, so a racing duplicate is a no-op.
func (s Session) SubmitAnswer(text string) Session {
	if s.State != StateInterviewing {
		return s
	}
	answers := make([]report.Answer, len(s.Answers), len(s.Answers)+1)
	copy(answers, s.Answers)
	s.Answers = append(answers, report.Answer{
		Question: s.CurrentQuestion(),
		Answer:   text,
	})
	s.State = StateAwaitingAnswerReport
	return s
}

// ResolveAnswerReport records the mini report (nil on failure, which the
// screen shows as the degraded view) and the answer's score for the growth
// series.
// Stale-epoch or out-of-state results are dropped.
func (s Session) ResolveAnswerReport(epoch string, r *report.AnswerReport) Session {
	if epoch != s.Epoch || s.State != StateAwaitingAnswerReport {
		return s
	}
	score := 0
	if r != nil {
		score = int(r.Score)
	}
	scores := make([]int, len(s.Scores), len(s.Scores)+1)
	copy(scores, s.Scores)
	s.Scores = append(scores, score)
	s.AnswerReport = r
	s.State = StateAnswerReport
	return s
}

// Advance dismisses the current mini report: on to the next question, or to
// the final-report wait when the last question's report was just dismissed.
func (s Session) Advance() Session {
	if s.State != StateAnswerReport {
		return s
	}
	s.AnswerReport = nil
	if s.Cursor < len(s.Questions)-1 {
		s.Cursor++
		s.State = StateInterviewing
	} else {
		s.State = StateAwaitingFinalReport
	}
	return s
}

// ResolveFinalReport records the comprehensive report (nil on failure).
// The growth series is always rebuilt from the session's own recorded
// per-answer scores: the numeric score is the one field downstream
// aggregation may rely on, so the model's version of the series is not
// trusted. Stale-epoch or out-of-state results are dropped.
func (s Session) ResolveFinalReport(epoch string, r *report.FinalReport) Session {
	if epoch != s.Epoch || s.State != StateAwaitingFinalReport {
		return s
	}
	if r != nil {
		clone := *r
		clone.GrowthGraphData = s.GrowthSeries()
		r = &clone
	}
	s.FinalReport = r
	s.State = StateFinalResults
	return s
}

// Restart returns to the start screen with everything cleared. Valid from
// any state; the new epoch orphans any in-flight report request.
func (s Session) Restart() Session {
	return New()
}

// CurrentQuestion returns the active question text, or "" outside a run.
func (s Session) CurrentQuestion() string {
	if s.Cursor < 0 || s.Cursor >= len(s.Questions) {
		return ""
	}
	return s.Questions[s.Cursor]
}

// QuestionNumber is the 1-based position of the active question.
func (s Session) QuestionNumber() int { return s.Cursor + 1 }

// TotalQuestions is the length of the fixed question set.
func (s Session) TotalQuestions() int { return len(s.Questions) }

// OnLastQuestion reports whether the cursor sits on the final question.
func (s Session) OnLastQuestion() bool {
	return len(s.Questions) > 0 && s.Cursor == len(s.Questions)-1
}

// SnapshotAnswers returns a copy of the answer list. The final-report
// request is built from this snapshot so a late mutation can never race
// with the aggregate call.
func (s Session) SnapshotAnswers() []report.Answer {
	out := make([]report.Answer, len(s.Answers))
	copy(out, s.Answers)
	return out
}

// GrowthSeries derives the per-question score series from the recorded
// mini-report scores, indexed 1..N in question order.
func (s Session) GrowthSeries() []report.GrowthPoint {
	out := make([]report.GrowthPoint, len(s.Scores))
	for i, score := range s.Scores {
		out[i] = report.GrowthPoint{Question: i + 1, Score: report.Score(score)}
	}
	return out
}

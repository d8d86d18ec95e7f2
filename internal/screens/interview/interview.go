// Package interview implements the interview screen: question delivery,
// answer capture, and the per-answer mini report phase.
package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	session "github.com/ssupark/oratio/internal/interview"
	"github.com/ssupark/oratio/internal/report"
	"github.com/ssupark/oratio/internal/router"
	"github.com/ssupark/oratio/internal/screen"
	"github.com/ssupark/oratio/internal/screens/results"
	"github.com/ssupark/oratio/internal/speech"
	"github.com/ssupark/oratio/internal/ui/components"
	"github.com/ssupark/oratio/internal/ui/layout"
)

const (
	transcriptRefresh = 300 * time.Millisecond
	playbackRefresh   = 100 * time.Millisecond
)

// InterviewScreen runs one interview session from the first question to the
// hand-off into the results screen.
type InterviewScreen struct {
	sess    session.Session
	reports *report.Service
	recog   speech.Recognizer
	synth   speech.Synthesizer

	input   components.TextInput
	spinner components.Spinner

	// typing is true when answers come from the keyboard, either because
	// voice capture is unavailable or because the user switched.
	typing bool

	// pendingSubmit is set between the submit keypress and the
	// captureIdleMsg that carries the drained transcript. While set,
	// further submit keys are ignored.
	pendingSubmit bool

	transcript string
	notice     string
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.BadgeProvider = (*InterviewScreen)(nil)

// New creates the interview screen for a freshly started session.
func New(sess session.Session, reports *report.Service, recog speech.Recognizer, synth speech.Synthesizer) *InterviewScreen {
	return &InterviewScreen{
		sess:    sess,
		reports: reports,
		recog:   recog,
		synth:   synth,
		typing:  !recog.Supported(),
		input:   components.NewTextInput("답변을 입력하세요...", 0),
		spinner: components.NewSpinner(),
	}
}

func (s *InterviewScreen) Init() tea.Cmd {
	return s.askQuestion()
}

func (s *InterviewScreen) Title() string {
	return "면접 진행 중"
}

func (s *InterviewScreen) Badge() string {
	return fmt.Sprintf("%s · Q %d/%d",
		s.sess.Level.Label(), s.sess.QuestionNumber(), s.sess.TotalQuestions())
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	switch s.sess.State {
	case session.StateInterviewing:
		if s.typing {
			return []layout.KeyHint{
				{Key: "Enter", Description: "답변 제출"},
				{Key: "Esc", Description: "그만두기"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "답변 끝내기"},
			{Key: "T", Description: "키보드로 입력"},
			{Key: "Esc", Description: "그만두기"},
		}
	case session.StateAnswerReport:
		return []layout.KeyHint{
			{Key: "Enter", Description: "계속"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "종료"},
	}
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionSpokenMsg:
		return s.handleQuestionSpoken()

	case playbackTickMsg:
		return s.handleQuestionSpoken()

	case captureStartedMsg:
		return s.handleCaptureStarted(msg)

	case transcriptTickMsg:
		return s.handleTranscriptTick()

	case captureIdleMsg:
		return s.handleCaptureIdle(msg)

	case answerReportMsg:
		s.sess = s.sess.ResolveAnswerReport(msg.Epoch, msg.Report)
		return s, nil

	case finalReportMsg:
		return s.handleFinalReport(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Spinner animation while a report request is in flight.
	if s.sess.State == session.StateAwaitingAnswerReport || s.sess.State == session.StateAwaitingFinalReport {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	if s.typing && s.sess.State == session.StateInterviewing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.sess.State {
	case session.StateInterviewing:
		switch key {
		case "enter":
			return s.requestSubmit()
		case "t":
			if !s.typing {
				return s.switchToTyping()
			}
		}
		if s.typing {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil

	case session.StateAnswerReport:
		if key == "enter" {
			return s.dismissReport()
		}
		return s, nil
	}

	return s, nil
}

// requestSubmit finalizes the current answer. In typing mode the text is
// submitted directly; in voice mode the capture is stopped first and the
// actual submission waits for captureIdleMsg.
func (s *InterviewScreen) requestSubmit() (screen.Screen, tea.Cmd) {
	// No answering over the interviewer. Submission waits until the
	// question has finished playing.
	if s.synth.Speaking() {
		return s, nil
	}

	if s.typing {
		text := strings.TrimSpace(s.input.Value())
		if text == "" {
			return s, nil
		}
		s.input.Reset()
		return s.submit(text)
	}

	if s.pendingSubmit {
		return s, nil
	}
	s.pendingSubmit = true

	recog := s.recog
	return s, func() tea.Msg {
		_ = recog.Stop()
		return captureIdleMsg{Transcript: recog.Transcript()}
	}
}

func (s *InterviewScreen) handleCaptureIdle(msg captureIdleMsg) (screen.Screen, tea.Cmd) {
	if !s.pendingSubmit {
		return s, nil
	}
	s.pendingSubmit = false
	s.transcript = ""
	return s.submit(msg.Transcript)
}

func (s *InterviewScreen) submit(text string) (screen.Screen, tea.Cmd) {
	s.sess = s.sess.SubmitAnswer(text)
	if s.sess.State != session.StateAwaitingAnswerReport {
		return s, nil
	}
	return s, tea.Batch(s.requestAnswerReport(), s.spinner.Init())
}

// dismissReport advances past the mini report: next question or the final
// analysis.
func (s *InterviewScreen) dismissReport() (screen.Screen, tea.Cmd) {
	s.sess = s.sess.Advance()

	switch s.sess.State {
	case session.StateInterviewing:
		return s, s.askQuestion()
	case session.StateAwaitingFinalReport:
		return s, tea.Batch(s.requestFinalReport(), s.spinner.Init())
	}
	return s, nil
}

func (s *InterviewScreen) handleFinalReport(msg finalReportMsg) (screen.Screen, tea.Cmd) {
	s.sess = s.sess.ResolveFinalReport(msg.Epoch, msg.Report)
	if s.sess.State != session.StateFinalResults {
		return s, nil
	}
	level := s.sess.Level
	final := s.sess.FinalReport
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: results.New(level, final)}
	}
}

// askQuestion speaks the current question and opens the answer channel for
// the active input mode.
func (s *InterviewScreen) askQuestion() tea.Cmd {
	question := s.sess.CurrentQuestion()
	s.transcript = ""
	s.notice = ""

	var speak tea.Cmd
	if s.synth.Supported() {
		synth := s.synth
		speak = func() tea.Msg {
			_ = synth.Speak(context.Background(), question)
			return questionSpokenMsg{}
		}
	}

	if s.typing {
		s.input.Reset()
		if speak != nil {
			return tea.Batch(speak, s.input.Init())
		}
		return s.input.Init()
	}

	// The mic stays closed until the question has finished playing, so the
	// synthesized voice never ends up in the transcript.
	if speak != nil {
		return speak
	}
	return s.startCapture()
}

// handleQuestionSpoken opens the capture once playback is over, polling
// while the interviewer is still talking.
func (s *InterviewScreen) handleQuestionSpoken() (screen.Screen, tea.Cmd) {
	if s.typing || s.sess.State != session.StateInterviewing {
		return s, nil
	}
	if s.synth.Speaking() {
		return s, playbackTick()
	}
	return s, s.startCapture()
}

// startCapture opens a fresh voice capture. A leftover capture from an
// abandoned question is stopped first.
func (s *InterviewScreen) startCapture() tea.Cmd {
	recog := s.recog
	return func() tea.Msg {
		_ = recog.Stop()
		return captureStartedMsg{Err: recog.Start(context.Background())}
	}
}

func (s *InterviewScreen) handleCaptureStarted(msg captureStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err == nil {
		return s, transcriptTick()
	}
	// Capture failed; drop to the keyboard so the interview can continue.
	s.typing = true
	s.notice = "음성 인식을 시작하지 못해 키보드 입력으로 전환했어요."
	s.input.Reset()
	return s, s.input.Init()
}

func (s *InterviewScreen) handleTranscriptTick() (screen.Screen, tea.Cmd) {
	if s.typing || s.sess.State != session.StateInterviewing {
		return s, nil
	}
	s.transcript = s.recog.Transcript()
	return s, transcriptTick()
}

// switchToTyping hands the answer over to the keyboard, carrying whatever
// the recognizer heard so far.
func (s *InterviewScreen) switchToTyping() (screen.Screen, tea.Cmd) {
	s.typing = true
	s.input.Model.SetValue(s.recog.Transcript())
	s.transcript = ""

	recog := s.recog
	stop := func() tea.Msg {
		_ = recog.Stop()
		return nil
	}
	return s, tea.Batch(stop, s.input.Init())
}

// requestAnswerReport issues the mini-report request for the answer just
// submitted. The result carries the epoch so a stale reply after a restart
// is dropped by the session.
func (s *InterviewScreen) requestAnswerReport() tea.Cmd {
	sess := s.sess
	reports := s.reports
	last := sess.Answers[len(sess.Answers)-1]
	return func() tea.Msg {
		r, err := reports.AnswerFeedback(context.Background(), sess.Level, last.Question, last.Answer)
		if err != nil {
			r = nil
		}
		return answerReportMsg{Epoch: sess.Epoch, Report: r}
	}
}

// requestFinalReport issues the comprehensive analysis over a snapshot of
// the full answer list.
func (s *InterviewScreen) requestFinalReport() tea.Cmd {
	sess := s.sess
	reports := s.reports
	answers := sess.SnapshotAnswers()
	return func() tea.Msg {
		r, err := reports.FinalAnalysis(context.Background(), sess.Level, answers)
		if err != nil {
			r = nil
		}
		return finalReportMsg{Epoch: sess.Epoch, Report: r}
	}
}

func transcriptTick() tea.Cmd {
	return tea.Tick(transcriptRefresh, func(t time.Time) tea.Msg {
		return transcriptTickMsg(t)
	})
}

func playbackTick() tea.Cmd {
	return tea.Tick(playbackRefresh, func(t time.Time) tea.Msg {
		return playbackTickMsg(t)
	})
}

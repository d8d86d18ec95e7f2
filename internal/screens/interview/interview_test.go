package interview

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	session "github.com/ssupark/oratio/internal/interview"
	"github.com/ssupark/oratio/internal/llm"
	"github.com/ssupark/oratio/internal/report"
	"github.com/ssupark/oratio/internal/router"
	"github.com/ssupark/oratio/internal/screens/results"
	"github.com/ssupark/oratio/internal/speech"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testScreen(recog speech.Recognizer) *InterviewScreen {
	sess := session.New().SelectLevel(report.LevelMiddle, session.Questions(report.LevelMiddle))
	svc := report.NewService(llm.NewMockProvider())
	return New(sess, svc, recog, speech.NewScriptSynthesizer())
}

func TestTypedAnswer_Submit(t *testing.T) {
	s := testScreen(speech.NoRecognizer{})
	if !s.typing {
		t.Fatal("unsupported recognizer must start in typing mode")
	}

	s.input.Model.SetValue("제 장점은 꾸준함입니다")
	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*InterviewScreen)

	if s.sess.State != session.StateAwaitingAnswerReport {
		t.Fatalf("State = %s, want awaiting-answer-report", s.sess.State)
	}
	if len(s.sess.Answers) != 1 || s.sess.Answers[0].Answer != "제 장점은 꾸준함입니다" {
		t.Errorf("Answers = %v", s.sess.Answers)
	}
	if cmd == nil {
		t.Error("submission must issue the report request")
	}
	if s.input.Value() != "" {
		t.Error("input must be cleared after submit")
	}
}

func TestTypedAnswer_EmptyIgnored(t *testing.T) {
	s := testScreen(speech.NoRecognizer{})
	s.input.Model.SetValue("   ")

	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*InterviewScreen)

	if s.sess.State != session.StateInterviewing {
		t.Errorf("State = %s, blank answer must not submit", s.sess.State)
	}
	if cmd != nil {
		t.Error("blank answer must not issue a report request")
	}
}

func TestVoiceSubmit_ExactlyOnce(t *testing.T) {
	recog := speech.NewScriptRecognizer("안녕하세요 저는")
	s := testScreen(recog)
	if s.typing {
		t.Fatal("supported recognizer must start in voice mode")
	}

	// Capture opens.
	scr, _ := s.Update(s.startCapture()())
	s = scr.(*InterviewScreen)
	if !recog.Listening() {
		t.Fatal("capture should be active")
	}

	// First Enter requests the submit and stops the capture.
	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*InterviewScreen)
	if cmd == nil {
		t.Fatal("first submit must produce a stop command")
	}

	// A racing second Enter while the capture drains is ignored.
	scr, dup := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*InterviewScreen)
	if dup != nil {
		t.Error("second submit during drain must be a no-op")
	}

	// The drained transcript arrives and the answer is submitted once.
	idle := cmd()
	msg, ok := idle.(captureIdleMsg)
	if !ok {
		t.Fatalf("stop command returned %T", idle)
	}
	scr, _ = s.Update(msg)
	s = scr.(*InterviewScreen)

	if len(s.sess.Answers) != 1 {
		t.Fatalf("recorded %d answers, want 1", len(s.sess.Answers))
	}
	if s.sess.Answers[0].Answer != "안녕하세요 저는" {
		t.Errorf("Answer = %q", s.sess.Answers[0].Answer)
	}

	// A leftover duplicate idle message changes nothing.
	scr, _ = s.Update(captureIdleMsg{Transcript: "유령 답변"})
	s = scr.(*InterviewScreen)
	if len(s.sess.Answers) != 1 {
		t.Error("duplicate idle message must not submit again")
	}
}

// heldSynth stays in the speaking state until the test releases it.
type heldSynth struct {
	speaking bool
	spoken   []string
}

func (h *heldSynth) Supported() bool { return true }
func (h *heldSynth) Speaking() bool  { return h.speaking }
func (h *heldSynth) Stop() error     { h.speaking = false; return nil }
func (h *heldSynth) Speak(_ context.Context, text string) error {
	h.spoken = append(h.spoken, text)
	h.speaking = true
	return nil
}

func TestVoiceCapture_WaitsForQuestionPlayback(t *testing.T) {
	recog := speech.NewScriptRecognizer("답변")
	synth := &heldSynth{}
	sess := session.New().SelectLevel(report.LevelMiddle, session.Questions(report.LevelMiddle))
	s := New(sess, report.NewService(llm.NewMockProvider()), recog, synth)

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init must speak the question")
	}
	msg := cmd()
	if _, ok := msg.(questionSpokenMsg); !ok {
		t.Fatalf("Init command returned %T", msg)
	}

	// Playback still running: the mic stays closed so the question's own
	// audio cannot end up in the transcript.
	scr, next := s.Update(msg)
	s = scr.(*InterviewScreen)
	if recog.Listening() {
		t.Fatal("mic opened while the question was playing")
	}
	if next == nil {
		t.Fatal("screen must keep polling for the end of playback")
	}

	scr, next = s.Update(playbackTickMsg(time.Now()))
	s = scr.(*InterviewScreen)
	if recog.Listening() {
		t.Fatal("mic opened while the question was still playing")
	}

	// Playback ends; the next poll opens the capture.
	synth.speaking = false
	scr, next = s.Update(playbackTickMsg(time.Now()))
	s = scr.(*InterviewScreen)
	if next == nil {
		t.Fatal("end of playback must open the capture")
	}
	started := next()
	if _, ok := started.(captureStartedMsg); !ok {
		t.Fatalf("capture command returned %T", started)
	}
	if !recog.Listening() {
		t.Error("capture should be active once playback ended")
	}
	if len(synth.spoken) != 1 {
		t.Errorf("spoke %d questions, want 1", len(synth.spoken))
	}
}

func TestCaptureFailure_FallsBackToTyping(t *testing.T) {
	recog := speech.NewScriptRecognizer()
	s := testScreen(recog)

	scr, _ := s.Update(captureStartedMsg{Err: errTest})
	s = scr.(*InterviewScreen)

	if !s.typing {
		t.Error("capture failure must switch to typing mode")
	}
	if s.notice == "" {
		t.Error("user should be told about the fallback")
	}
}

var errTest = errFake{}

type errFake struct{}

func (errFake) Error() string { return "capture failed" }

func TestAnswerReport_StaleEpochIgnored(t *testing.T) {
	s := testScreen(speech.NoRecognizer{})
	s.input.Model.SetValue("답변")
	scr, _ := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*InterviewScreen)

	scr, _ = s.Update(answerReportMsg{Epoch: "stale", Report: &report.AnswerReport{Score: 50}})
	s = scr.(*InterviewScreen)
	if s.sess.State != session.StateAwaitingAnswerReport {
		t.Error("stale report must be dropped")
	}

	scr, _ = s.Update(answerReportMsg{Epoch: s.sess.Epoch, Report: &report.AnswerReport{Score: 50}})
	s = scr.(*InterviewScreen)
	if s.sess.State != session.StateAnswerReport {
		t.Error("live report must be applied")
	}
}

func TestDismissReport_AdvancesThroughInterview(t *testing.T) {
	s := testScreen(speech.NoRecognizer{})
	total := s.sess.TotalQuestions()

	for i := 0; i < total; i++ {
		s.input.Model.SetValue("답변")
		scr, _ := s.Update(specialKey(tea.KeyEnter))
		s = scr.(*InterviewScreen)
		scr, _ = s.Update(answerReportMsg{Epoch: s.sess.Epoch, Report: &report.AnswerReport{Score: 70}})
		s = scr.(*InterviewScreen)
		scr, cmd := s.Update(specialKey(tea.KeyEnter))
		s = scr.(*InterviewScreen)
		if i < total-1 {
			if s.sess.State != session.StateInterviewing {
				t.Fatalf("question %d: State = %s", i+1, s.sess.State)
			}
		} else if s.sess.State != session.StateAwaitingFinalReport {
			t.Fatalf("after last dismiss State = %s", s.sess.State)
		}
		if cmd == nil {
			t.Fatalf("question %d: dismiss must produce a command", i+1)
		}
	}
}

func TestFinalReport_ReplacesWithResults(t *testing.T) {
	s := testScreen(speech.NoRecognizer{})

	// Fast-forward the session to the final wait.
	for i := 0; i < s.sess.TotalQuestions(); i++ {
		s.sess = s.sess.SubmitAnswer("답변")
		s.sess = s.sess.ResolveAnswerReport(s.sess.Epoch, &report.AnswerReport{Score: 80})
		s.sess = s.sess.Advance()
	}
	if s.sess.State != session.StateAwaitingFinalReport {
		t.Fatalf("State = %s", s.sess.State)
	}

	scr, cmd := s.Update(finalReportMsg{
		Epoch:  s.sess.Epoch,
		Report: &report.FinalReport{Title: "리포트"},
	})
	s = scr.(*InterviewScreen)

	if s.sess.State != session.StateFinalResults {
		t.Fatalf("State = %s, want final-results", s.sess.State)
	}
	if cmd == nil {
		t.Fatal("final report must trigger navigation")
	}
	msg := cmd()
	rep, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("navigation message is %T, want ReplaceScreenMsg", msg)
	}
	if _, ok := rep.Screen.(*results.ResultsScreen); !ok {
		t.Errorf("replacement screen is %T", rep.Screen)
	}
}

func TestFinalReport_NilStillEndsSession(t *testing.T) {
	s := testScreen(speech.NoRecognizer{})
	for i := 0; i < s.sess.TotalQuestions(); i++ {
		s.sess = s.sess.SubmitAnswer("답변")
		s.sess = s.sess.ResolveAnswerReport(s.sess.Epoch, nil)
		s.sess = s.sess.Advance()
	}

	scr, cmd := s.Update(finalReportMsg{Epoch: s.sess.Epoch, Report: nil})
	s = scr.(*InterviewScreen)

	if s.sess.State != session.StateFinalResults {
		t.Fatal("a failed final report still ends the interview")
	}
	if cmd == nil {
		t.Fatal("navigation must still happen")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected replacement with the results screen")
	}
}

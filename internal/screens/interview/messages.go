package interview

import (
	"time"

	"github.com/ssupark/oratio/internal/report"
)

// questionSpokenMsg arrives once the question's synthesis call has returned.
// Playback may still be running; the capture waits for it to finish.
type questionSpokenMsg struct{}

// playbackTickMsg polls for the end of question playback.
type playbackTickMsg time.Time

// captureStartedMsg reports the outcome of opening the voice capture.
type captureStartedMsg struct {
	Err error
}

// transcriptTickMsg drives the live transcript refresh while listening.
type transcriptTickMsg time.Time

// captureIdleMsg is sent once the capture has fully stopped and the final
// transcript is available. Submission happens only on this message, which
// joins "stop observed" with "submit requested".
type captureIdleMsg struct {
	Transcript string
}

// answerReportMsg delivers the mini report result for one answer. Epoch is
// the session epoch the request was issued under.
type answerReportMsg struct {
	Epoch  string
	Report *report.AnswerReport
}

// finalReportMsg delivers the comprehensive report result.
type finalReportMsg struct {
	Epoch  string
	Report *report.FinalReport
}

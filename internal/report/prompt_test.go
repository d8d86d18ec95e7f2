package report

import (
	"strings"
	"testing"
)

func TestBuildAnswerPrompt_Deterministic(t *testing.T) {
	for _, level := range AllLevels {
		a := BuildAnswerPrompt(level, "왜 그렇게 생각하나요?", "제 생각에는...")
		b := BuildAnswerPrompt(level, "왜 그렇게 생각하나요?", "제 생각에는...")
		if a != b {
			t.Errorf("level %s: identical inputs produced different prompts", level)
		}
	}
}

func TestBuildAnswerPrompt_Content(t *testing.T) {
	p := BuildAnswerPrompt(LevelMiddle, "질문입니다", "답변입니다")

	if !strings.Contains(p, "Level: 중학생") {
		t.Error("missing level label")
	}
	if !strings.Contains(p, `Question: "질문입니다"`) {
		t.Error("missing question text")
	}
	if !strings.Contains(p, `Answer: "답변입니다"`) {
		t.Error("missing answer text")
	}
	if !strings.Contains(p, `"score": "number"`) {
		t.Error("missing score field in instruction block")
	}
}

func TestBuildAnswerPrompt_LevelBlocksDiffer(t *testing.T) {
	q, a := "q", "a"
	elem := BuildAnswerPrompt(LevelElementary, q, a)
	mid := BuildAnswerPrompt(LevelMiddle, q, a)
	high := BuildAnswerPrompt(LevelHigh, q, a)

	if elem == mid || mid == high || elem == high {
		t.Error("expected distinct persona blocks per level")
	}
	if !strings.Contains(elem, "5-star rating") {
		t.Error("elementary block should ask for star ratings")
	}
	if !strings.Contains(high, "letter grade") {
		t.Error("high block should ask for letter grades")
	}
}

func TestBuildFinalPrompt_Deterministic(t *testing.T) {
	answers := []Answer{
		{Question: "Q one", Answer: "A one"},
		{Question: "Q two", Answer: "A two"},
	}
	a := BuildFinalPrompt(LevelHigh, answers)
	b := BuildFinalPrompt(LevelHigh, answers)
	if a != b {
		t.Error("identical inputs produced different prompts")
	}
}

func TestBuildFinalPrompt_PreservesPositions(t *testing.T) {
	answers := []Answer{
		{Question: "first question", Answer: "first answer"},
		{Question: "second question", Answer: ""},
		{Question: "third question", Answer: "third answer"},
	}
	p := BuildFinalPrompt(LevelElementary, answers)

	if !strings.Contains(p, "Q1: first question") {
		t.Error("missing Q1")
	}
	if !strings.Contains(p, "A2: (No answer provided)") {
		t.Error("empty answer should render as an explicit placeholder")
	}
	if !strings.Contains(p, "Q3: third question") {
		t.Error("missing Q3: positions must be preserved, not compacted")
	}
	if strings.Index(p, "Q2:") < strings.Index(p, "Q1:") {
		t.Error("pairs out of order")
	}
}

func TestBuildFinalPrompt_HighTierSections(t *testing.T) {
	p := BuildFinalPrompt(LevelHigh, []Answer{{Question: "q", Answer: "a"}})

	for _, want := range []string{"diagnosisAndGuide", "simulation", "futureStrategy", "strengthKeywords"} {
		if !strings.Contains(p, want) {
			t.Errorf("high-tier prompt missing %q section", want)
		}
	}
}

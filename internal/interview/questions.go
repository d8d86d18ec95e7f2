package interview

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ssupark/oratio/internal/report"
)

//go:embed questions.yaml
var questionsYAML []byte

type questionFile struct {
	Levels []struct {
		Level     string   `yaml:"level"`
		Questions []string `yaml:"questions"`
	} `yaml:"levels"`
}

var (
	questionSetsOnce sync.Once
	questionSets     map[report.Level][]string
	questionSetsErr  error
)

// LoadQuestionSets parses the embedded question file. Every level must be
// present with at least one question; the set is fixed for the lifetime of
// the process.
func LoadQuestionSets() (map[report.Level][]string, error) {
	questionSetsOnce.Do(func() {
		questionSets, questionSetsErr = parseQuestionSets(questionsYAML)
	})
	return questionSets, questionSetsErr
}

// Questions returns the fixed, ordered question list for a level. It panics
// only if the embedded file is malformed, which a build would not survive
// review anyway; callers that want the error use LoadQuestionSets.
func Questions(level report.Level) []string {
	sets, err := LoadQuestionSets()
	if err != nil {
		panic(err)
	}
	return sets[level]
}

func parseQuestionSets(data []byte) (map[report.Level][]string, error) {
	var file questionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}

	sets := make(map[report.Level][]string, len(file.Levels))
	for _, entry := range file.Levels {
		level, err := report.ParseLevel(entry.Level)
		if err != nil {
			return nil, fmt.Errorf("parse questions: %w", err)
		}
		if len(entry.Questions) == 0 {
			return nil, fmt.Errorf("parse questions: level %s has no questions", level)
		}
		if _, dup := sets[level]; dup {
			return nil, fmt.Errorf("parse questions: duplicate level %s", level)
		}
		sets[level] = entry.Questions
	}

	for _, level := range report.AllLevels {
		if _, ok := sets[level]; !ok {
			return nil, fmt.Errorf("parse questions: level %s missing", level)
		}
	}
	return sets, nil
}

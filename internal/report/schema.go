package report

// Schema pairs a name with a JSON Schema definition. The name keys the
// compiled-schema cache.
type Schema struct {
	Name       string
	Definition map[string]any
}

// AnswerReportSchema is the shape of a single-answer mini report. The field
// set is the same for every level; only the display form of
// evaluationValue differs. Unknown extra fields are tolerated.
var AnswerReportSchema = &Schema{
	Name: "answer-report",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":           map[string]any{"type": "string"},
			"evaluationTitle": map[string]any{"type": "string"},
			"evaluationValue": map[string]any{"type": "string"},
			"praiseTitle":     map[string]any{"type": "string"},
			"praise":          map[string]any{"type": "string"},
			"growthTipTitle":  map[string]any{"type": "string"},
			"growthTip":       map[string]any{"type": "string"},
			"buttonText":      map[string]any{"type": "string"},
			"score":           map[string]any{"type": "number"},
		},
		"required": []any{
			"title", "evaluationTitle", "evaluationValue",
			"praiseTitle", "praise", "growthTipTitle", "growthTip",
			"buttonText", "score",
		},
	},
}

var radarSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"label": map[string]any{"type": "string"},
			"score": map[string]any{"type": "number"},
		},
		"required": []any{"label", "score"},
	},
}

var growthSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "integer"},
			"score":    map[string]any{"type": "number"},
		},
		"required": []any{"question", "score"},
	},
}

// juniorFinalSchema covers the elementary and middle tiers: shared core
// plus overall score/grade, persona, and final comment.
var juniorFinalSchema = &Schema{
	Name: "final-report-junior",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":          map[string]any{"type": "string"},
			"overallScore":   map[string]any{"type": "number"},
			"overallGrade":   map[string]any{"type": "string"},
			"persona":        map[string]any{"type": "string"},
			"radarChartData": radarSchema,
			"detailedAnalysis": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"category": map[string]any{"type": "string"},
						"score":    map[string]any{"type": "number"},
						"comment":  map[string]any{"type": "string"},
					},
					"required": []any{"category", "score", "comment"},
				},
			},
			"finalCommentTitle": map[string]any{"type": "string"},
			"finalComment":      map[string]any{"type": "string"},
			"growthGraphTitle":  map[string]any{"type": "string"},
			"growthGraphData":   growthSchema,
		},
		"required": []any{
			"title", "overallScore", "overallGrade", "persona",
			"radarChartData", "detailedAnalysis", "finalComment",
			"growthGraphData",
		},
	},
}

// highFinalSchema covers the high tier: shared core plus tiered diagnosis,
// quoted-evidence analysis, simulation, and strategy sections.
var highFinalSchema = &Schema{
	Name: "final-report-high",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":            map[string]any{"type": "string"},
			"overallTier":      map[string]any{"type": "string"},
			"strengthKeywords": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"radarChartData":   radarSchema,
			"detailedAnalysis": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"category": map[string]any{"type": "string"},
						"score":    map[string]any{"type": "number"},
						"quote":    map[string]any{"type": "string"},
						"analysis": map[string]any{"type": "string"},
					},
					"required": []any{"category", "score", "quote", "analysis"},
				},
			},
			"diagnosisAndGuide": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"profiling": map[string]any{"type": "string"},
					"utilization": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"interviewStrategy": map[string]any{"type": "string"},
							"studentRecordTips": map[string]any{"type": "string"},
						},
						"required": []any{"interviewStrategy", "studentRecordTips"},
					},
				},
				"required": []any{"profiling", "utilization"},
			},
			"simulation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"followUpQuestions":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"logicEnhancement":     map[string]any{"type": "string"},
					"answerExtensionGuide": map[string]any{"type": "string"},
				},
				"required": []any{"followUpQuestions", "logicEnhancement", "answerExtensionGuide"},
			},
			"futureStrategy":   map[string]any{"type": "string"},
			"growthGraphTitle": map[string]any{"type": "string"},
			"growthGraphData":  growthSchema,
		},
		"required": []any{
			"title", "overallTier", "strengthKeywords", "radarChartData",
			"detailedAnalysis", "diagnosisAndGuide", "simulation",
			"futureStrategy", "growthGraphData",
		},
	},
}

// FinalReportSchema returns the schema variant for the given level. Only
// the fields that level's renderer needs are required.
func FinalReportSchema(level Level) *Schema {
	if level == LevelHigh {
		return highFinalSchema
	}
	return juniorFinalSchema
}

package quizgen

import "physiq/internal/llm"

// QuestionListSchema is the structured-output contract for a batch of
// generated questions: a JSON array of question objects with all keys
// required.
var QuestionListSchema = &llm.Schema{
	Name:        "physics-question-list",
	Description: "A list of multiple-choice questions derived from an image",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question_text": map[string]any{"type": "string"},
				"image_path":    map[string]any{"type": "string"},
				"option_text": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
				"correct_answer_index": map[string]any{
					"type":    "integer",
					"minimum": 0,
					"maximum": 3,
				},
				"difficulty_level": map[string]any{
					"type": "string",
					"enum": []any{"Easy", "Medium", "Hard"},
				},
				"explanation": map[string]any{"type": "string"},
				"topic":       map[string]any{"type": "string"},
				"subtopic":    map[string]any{"type": "string"},
			},
			"required": []any{
				"question_text", "image_path", "option_text",
				"correct_answer_index", "difficulty_level",
				"explanation", "topic", "subtopic",
			},
			"additionalProperties": false,
		},
	},
}

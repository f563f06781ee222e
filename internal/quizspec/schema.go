package quizspec

import "fmt"

// buildSchema returns the JSON schema of the quiz payload. The strict form is
// model-facing (closed objects, fixed enums); the lenient form only checks
// shape and types so that counts and membership are reported by name.
func buildSchema(c Contract, strict bool) map[string]any {
	question := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type": stringProp(strict, "Question type", c.QuestionType),
			"question": map[string]any{
				"type":        "string",
				"description": "The question text",
			},
			"choices": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": fmt.Sprintf("Exactly %d distinct options", c.ChoiceCount),
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "Exact copy of the correct option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Brief explanation of why the answer is correct",
			},
		},
		"required": []any{"type", "question", "choices", "answer", "explanation"},
	}

	root := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":    map[string]any{"type": "string", "description": "Short quiz title"},
			"language": stringProp(strict, "Language code", c.Language),
			"questions": map[string]any{
				"type":        "array",
				"items":       question,
				"description": fmt.Sprintf("Exactly %d questions", c.QuestionCount),
			},
		},
		"required": []any{"title", "language", "questions"},
	}

	if strict {
		question["additionalProperties"] = false
		root["additionalProperties"] = false
	} else {
		// title and language are repaired during normalization
		question["required"] = []any{"question", "choices", "answer", "explanation"}
		root["required"] = []any{"questions"}
	}
	return root
}

func stringProp(strict bool, desc, fixed string) map[string]any {
	p := map[string]any{"type": "string", "description": desc}
	if strict {
		p["enum"] = []any{fixed}
	}
	return p
}

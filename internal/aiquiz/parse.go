package aiquiz

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// cleanOutput strips markdown fences and any prose around the outermost JSON
// object.
func cleanOutput(raw string) (string, bool) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return clean[start : end+1], true
}

// parseOutput checks raw against the validation schema before decoding it.
func parseOutput(schema *gojsonschema.Schema, raw string) (*payload, error) {
	clean, ok := cleanOutput(raw)
	if !ok {
		return nil, &FormatError{Reason: "no JSON object found"}
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(clean))
	if err != nil {
		return nil, &FormatError{Reason: "invalid JSON: " + err.Error()}
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, &FormatError{Reason: strings.Join(msgs, "; ")}
	}

	var p payload
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return nil, &FormatError{Reason: err.Error()}
	}
	return &p, nil
}

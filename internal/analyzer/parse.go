// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseAnalysis decodes a model response into a structured analysis.
// Markdown code fences around the JSON body are tolerated and stripped.
// A response that does not decode to a JSON object is an error; callers
// treat that invocation as failed.
func ParseAnalysis(text string) (map[string]any, error) {
	body := stripFences(text)
	if body == "" {
		return nil, fmt.Errorf("parse analysis: empty response")
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	return out, nil
}

// stripFences removes a leading ```json (or bare ```) fence and the
// matching trailing fence, returning the trimmed interior.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

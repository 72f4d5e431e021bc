package intent

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// extractJSON parses JSON from completion output that may contain:
// - Pure JSON
// - JSON wrapped in markdown code blocks
// - JSON with surrounding prose
func extractJSON(input string, target interface{}) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("empty input")
	}

	// Try direct parsing first (most common case)
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	// Try to extract JSON from markdown code blocks
	if extracted := extractFromFence(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	// Try to find a balanced JSON object in surrounding text
	if extracted := extractBalancedObject(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no parseable JSON object in input")
}

var (
	jsonFenceRe  = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	plainFenceRe = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
)

// extractFromFence extracts JSON from markdown code blocks
func extractFromFence(input string) string {
	if matches := jsonFenceRe.FindStringSubmatch(input); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	if matches := plainFenceRe.FindStringSubmatch(input); len(matches) > 1 {
		content := strings.TrimSpace(matches[1])
		if strings.HasPrefix(content, "{") {
			return content
		}
	}

	return ""
}

// extractBalancedObject returns the first brace-balanced object in the
// input, respecting string literals and escapes.
func extractBalancedObject(input string) string {
	start := strings.Index(input, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(input); i++ {
		c := input[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return input[start : i+1]
				}
			}
		}
	}

	return ""
}

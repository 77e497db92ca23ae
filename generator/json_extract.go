package generator

import (
	"github.com/pkg/errors"
)

// ErrNoJsonObject is returned when the capability's response carries no
// balanced JSON object at all.
var ErrNoJsonObject = errors.New("no JSON object found in response")

// ExtractJsonObject cuts the outermost balanced brace region out of text.
// Models routinely wrap their JSON in prose or markdown fences; this strips
// the wrapping without guessing at the content. String literals and escape
// sequences are honored so braces inside values don't unbalance the scan.
func ExtractJsonObject(text string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", ErrNoJsonObject
}

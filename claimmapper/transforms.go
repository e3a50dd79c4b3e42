package claimmapper

import (
	"strings"
	"unicode/utf8"
)

// TransformFunc is a function that transforms claim values
type TransformFunc func(value string) string

// ToLower transforms a value to lowercase
func ToLower(value string) string {
	return strings.ToLower(value)
}

// TrimSpace trims whitespace from a value
func TrimSpace(value string) string {
	return strings.TrimSpace(value)
}

// RemovePrefix removes a prefix from a value
func RemovePrefix(prefix string) TransformFunc {
	return func(value string) string {
		return strings.TrimPrefix(value, prefix)
	}
}

// ExtractBearerToken extracts the token from "Bearer <token>" format
func ExtractBearerToken(value string) string {
	const bearerPrefix = "Bearer "
	if strings.HasPrefix(value, bearerPrefix) {
		return strings.TrimSpace(value[len(bearerPrefix):])
	}
	return value
}

// Truncate truncates the value to at most maxLength bytes without splitting
// a UTF-8 sequence
func Truncate(maxLength int) TransformFunc {
	return func(value string) string {
		if maxLength < 0 || len(value) <= maxLength {
			return value
		}
		end := maxLength
		for end > 0 && !utf8.RuneStart(value[end]) {
			end--
		}
		return value[:end]
	}
}

// MaskSensitive masks a value, showing only the first and last few characters
func MaskSensitive(showChars int) TransformFunc {
	showChars = max(showChars, 0)
	return func(value string) string {
		if len(value) <= showChars*2 {
			return strings.Repeat("*", len(value))
		}
		return value[:showChars] + strings.Repeat("*", len(value)-showChars*2) + value[len(value)-showChars:]
	}
}

// ChainTransforms chains multiple transformation functions
func ChainTransforms(transforms ...TransformFunc) TransformFunc {
	return func(value string) string {
		result := value
		for _, transform := range transforms {
			if transform != nil {
				result = transform(result)
			}
		}
		return result
	}
}

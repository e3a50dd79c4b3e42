package claimmapper

import (
	"testing"
	"unicode/utf8"
)

func TestTransformFunctions(t *testing.T) {
	tests := []struct {
		name      string
		transform TransformFunc
		input     string
		expected  string
	}{
		{"ToLower", ToLower, "BEARER", "bearer"},
		{"TrimSpace", TrimSpace, "  hello  ", "hello"},
		{"RemovePrefix", RemovePrefix("Bearer "), "Bearer token", "token"},
		{"ExtractBearerToken", ExtractBearerToken, "Bearer  abc ", "abc"},
		{"ExtractBearerToken without prefix", ExtractBearerToken, "Basic abc", "Basic abc"},
		{"Truncate", Truncate(3), "abcdef", "abc"},
		{"Truncate short", Truncate(10), "abc", "abc"},
		{"Truncate negative", Truncate(-1), "abc", "abc"},
		{"Truncate multibyte boundary", Truncate(4), "abcé", "abc"},
		{"Truncate keeps whole rune", Truncate(5), "abcéd", "abcé"},
		{"Truncate inside first rune", Truncate(1), "日本", ""},
		{"MaskSensitive", MaskSensitive(2), "secret-value", "se********ue"},
		{"MaskSensitive short", MaskSensitive(2), "abcd", "****"},
		{"MaskSensitive negative", MaskSensitive(-3), "abc", "***"},
		{"MaskSensitive zero", MaskSensitive(0), "ab", "**"},
		{
			"ChainTransforms",
			ChainTransforms(TrimSpace, nil, RemovePrefix("Bearer "), ToLower),
			"  Bearer TOKEN  ",
			"token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transform(tt.input)
			if got != tt.expected {
				t.Errorf("Transform(%s) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncate_ValidUTF8(t *testing.T) {
	value := "ключ-日本語-🔑"
	for n := 0; n <= len(value); n++ {
		got := Truncate(n)(value)
		if !utf8.ValidString(got) {
			t.Errorf("Truncate(%d) = %q, not valid UTF-8", n, got)
		}
		if len(got) > n {
			t.Errorf("Truncate(%d) = %q, longer than limit", n, got)
		}
	}

	claims := map[string]any{"c": Truncate(3)("aé日")}
	if _, err := ClaimsStruct(claims); err != nil {
		t.Errorf("ClaimsStruct() on truncated value error = %v", err)
	}
}

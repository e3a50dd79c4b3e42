package claimmapper

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"google.golang.org/grpc/metadata"
)

func TestHTTPHeaders_Values(t *testing.T) {
	tests := []struct {
		name     string
		headers  http.Header
		lookup   string
		expected []string
	}{
		{"canonical key", http.Header{"X-User-Id": {"1"}}, "x-user-id", []string{"1"}},
		{"upper case lookup", http.Header{"X-User-Id": {"1"}}, "X-USER-ID", []string{"1"}},
		{"non-canonical key", http.Header{"x-user-id": {"1"}}, "X-User-Id", []string{"1"}},
		{"arrival order kept", http.Header{"X-Id": {"a", "b"}}, "x-id", []string{"a", "b"}},
		{"missing", http.Header{"X-Id": {"a"}}, "X-Other", nil},
		{"empty name", http.Header{"X-Id": {"a"}}, "", nil},
		{"nil header", nil, "X-Id", nil},
		{
			"non-canonical keys are scanned in sorted order",
			http.Header{"x-id": {"lower"}, "X-ID": {"upper"}},
			"x-id",
			[]string{"upper"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTTPHeaders(tt.headers).Values(tt.lookup)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Values(%q) = %v, want %v", tt.lookup, got, tt.expected)
			}
		})
	}
}

func TestHTTPHeaders_FromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/token", nil)
	req.Header.Add("X-Id", "first")
	req.Header.Add("x-id", "second")

	got := HTTPHeaders(req.Header).Values("X-ID")
	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}

func TestMetadataHeaders_Values(t *testing.T) {
	md := metadata.Pairs("x-id", "a", "X-Id", "b", "x-token-type", "bearer")

	tests := []struct {
		lookup   string
		expected []string
	}{
		{"X-Id", []string{"a", "b"}},
		{"x-token-type", []string{"bearer"}},
		{"X-Missing", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.lookup, func(t *testing.T) {
			got := MetadataHeaders(md).Values(tt.lookup)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Values(%q) = %v, want %v", tt.lookup, got, tt.expected)
			}
		})
	}

	if got := MetadataHeaders(nil).Values("x-id"); got != nil {
		t.Errorf("nil metadata Values() = %v, want nil", got)
	}
}

func TestMetadataHeaders_MixedCaseKeys(t *testing.T) {
	md := metadata.MD{
		"X-Id":         {"abc"},
		"X-TOKEN-TYPE": {"bearer"},
	}

	tests := []struct {
		lookup   string
		expected []string
	}{
		{"x-id", []string{"abc"}},
		{"X-Id", []string{"abc"}},
		{"x-token-type", []string{"bearer"}},
		{"x-other", nil},
	}

	for _, tt := range tests {
		t.Run(tt.lookup, func(t *testing.T) {
			got := MetadataHeaders(md).Values(tt.lookup)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Values(%q) = %v, want %v", tt.lookup, got, tt.expected)
			}
		})
	}

	writes := Project(MetadataHeaders(md), MapperConfig{
		IdentifierHeader: "x-id",
		TokenTypeHeader:  "X-Token-Type",
		ClaimName:        "custom_claim",
		IncludeIn:        AccessToken,
	})
	want := []ClaimWrite{
		{Name: "custom_claim", Value: "abc", IncludeIn: AccessToken},
		{Name: "custom_claim", Value: "bearer", IncludeIn: AccessToken},
	}
	if !reflect.DeepEqual(writes, want) {
		t.Errorf("Project() = %+v, want %+v", writes, want)
	}
}

func TestHeaderSetFunc(t *testing.T) {
	set := HeaderSetFunc(func(name string) []string {
		if name == "X-Id" {
			return []string{"abc"}
		}
		return nil
	})

	value, ok := firstValue(set, "X-Id")
	if !ok || value != "abc" {
		t.Errorf("firstValue() = %q, %v", value, ok)
	}
	if _, ok := firstValue(set, "X-Other"); ok {
		t.Error("firstValue() found a missing header")
	}
}

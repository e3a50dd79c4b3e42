package claimmapper

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/protobuf/types/known/structpb"
)

// TokenSet holds the claims of the artifacts issued for one request.
// Signing and serialization belong to the host.
type TokenSet struct {
	Access   jwt.MapClaims `json:"access_token"`
	ID       jwt.MapClaims `json:"id_token"`
	UserInfo jwt.MapClaims `json:"userinfo"`
}

// NewTokenSet creates a TokenSet with empty claim maps
func NewTokenSet() *TokenSet {
	return &TokenSet{
		Access:   jwt.MapClaims{},
		ID:       jwt.MapClaims{},
		UserInfo: jwt.MapClaims{},
	}
}

// Claims returns the claim map for a single placement flag, creating it if
// needed. It returns nil for combined or unknown placements.
func (t *TokenSet) Claims(p TokenPlacement) jwt.MapClaims {
	if t == nil {
		return nil
	}
	var target *jwt.MapClaims
	switch p {
	case AccessToken:
		target = &t.Access
	case IDToken:
		target = &t.ID
	case UserInfo:
		target = &t.UserInfo
	default:
		return nil
	}
	if *target == nil {
		*target = jwt.MapClaims{}
	}
	return *target
}

// ClaimMerger writes a claim value into the tokens selected by placement
type ClaimMerger interface {
	MergeClaim(tokens *TokenSet, name string, value any, placement TokenPlacement)
}

// ClaimMergerFunc adapts a function into a ClaimMerger
type ClaimMergerFunc func(tokens *TokenSet, name string, value any, placement TokenPlacement)

// MergeClaim satisfies the ClaimMerger interface.
func (f ClaimMergerFunc) MergeClaim(tokens *TokenSet, name string, value any, placement TokenPlacement) {
	if f == nil {
		return
	}
	f(tokens, name, value, placement)
}

// NestedClaimMerger treats unescaped dots in a claim name as nesting, so
// "address.city" writes {"address": {"city": value}}. A literal dot is
// written as `\.`. Existing values are overwritten.
type NestedClaimMerger struct{}

// MergeClaim satisfies the ClaimMerger interface.
func (NestedClaimMerger) MergeClaim(tokens *TokenSet, name string, value any, placement TokenPlacement) {
	if tokens == nil || name == "" || value == nil {
		return
	}
	path := SplitClaimPath(name)
	if len(path) == 0 {
		return
	}
	for _, flag := range placement.Flags() {
		setNested(tokens.Claims(flag), path, value)
	}
}

func setNested(claims map[string]any, path []string, value any) {
	current := claims
	for _, key := range path[:len(path)-1] {
		nested, ok := current[key].(map[string]any)
		if !ok {
			// Missing or not an object: replace with a fresh object.
			nested = make(map[string]any)
			current[key] = nested
		}
		current = nested
	}
	current[path[len(path)-1]] = value
}

// SplitClaimPath splits a claim name on unescaped dots
func SplitClaimPath(name string) []string {
	var (
		path []string
		part strings.Builder
	)
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '\\' && i+1 < len(name) && name[i+1] == '.':
			part.WriteByte('.')
			i++
		case c == '.':
			path = append(path, part.String())
			part.Reset()
		default:
			part.WriteByte(c)
		}
	}
	path = append(path, part.String())

	for _, p := range path {
		if p == "" {
			return nil
		}
	}
	return path
}

// Apply merges writes into tokens in order. When two writes share a claim
// name the later one wins.
func Apply(tokens *TokenSet, writes []ClaimWrite, merger ClaimMerger) {
	if merger == nil {
		merger = NestedClaimMerger{}
	}
	for _, w := range writes {
		merger.MergeClaim(tokens, w.Name, w.Value, w.IncludeIn)
	}
}

// ClaimsStruct encodes claims as a protobuf Struct
func ClaimsStruct(claims jwt.MapClaims) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(map[string]any(claims))
	if err != nil {
		return nil, fmt.Errorf("failed to encode claims: %w", err)
	}
	return s, nil
}

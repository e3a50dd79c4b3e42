package claimmapper

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TokenPlacement is a set of issued token artifacts that receive a claim
type TokenPlacement uint8

const (
	// AccessToken places the claim in the access token
	AccessToken TokenPlacement = 1 << iota
	// IDToken places the claim in the ID token
	IDToken
	// UserInfo places the claim in the userinfo response
	UserInfo

	// AllTokens places the claim everywhere
	AllTokens = AccessToken | IDToken | UserInfo
)

var placementNames = []struct {
	flag TokenPlacement
	name string
}{
	{AccessToken, "access_token"},
	{IDToken, "id_token"},
	{UserInfo, "userinfo"},
}

// Has reports whether every flag in other is set in p
func (p TokenPlacement) Has(other TokenPlacement) bool {
	return other != 0 && p&other == other
}

// Flags returns the individual flags set in p in declaration order
func (p TokenPlacement) Flags() []TokenPlacement {
	var flags []TokenPlacement
	for _, pn := range placementNames {
		if p&pn.flag != 0 {
			flags = append(flags, pn.flag)
		}
	}
	return flags
}

// Names returns the names of the flags set in p
func (p TokenPlacement) Names() []string {
	names := make([]string, 0, len(placementNames))
	for _, pn := range placementNames {
		if p&pn.flag != 0 {
			names = append(names, pn.name)
		}
	}
	return names
}

func (p TokenPlacement) String() string {
	if p == 0 {
		return "none"
	}
	return strings.Join(p.Names(), "|")
}

// ParseTokenPlacement parses a single placement name (case-insensitive)
func ParseTokenPlacement(name string) (TokenPlacement, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, pn := range placementNames {
		if pn.name == normalized {
			return pn.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown token placement: %q", name)
}

func placementFromNames(names []string) (TokenPlacement, error) {
	var p TokenPlacement
	for _, name := range names {
		flag, err := ParseTokenPlacement(name)
		if err != nil {
			return 0, err
		}
		p |= flag
	}
	return p, nil
}

// MarshalJSON encodes the placement as a list of names
func (p TokenPlacement) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Names())
}

// UnmarshalJSON accepts a list of names
func (p *TokenPlacement) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("token placement must be a list of names: %w", err)
	}
	parsed, err := placementFromNames(names)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML encodes the placement as a list of names
func (p TokenPlacement) MarshalYAML() (interface{}, error) {
	return p.Names(), nil
}

// UnmarshalYAML accepts a list of names or a single name
func (p *TokenPlacement) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	switch value.Kind {
	case yaml.ScalarNode:
		names = []string{value.Value}
	default:
		if err := value.Decode(&names); err != nil {
			return fmt.Errorf("token placement must be a list of names: %w", err)
		}
	}
	parsed, err := placementFromNames(names)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

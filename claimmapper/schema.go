package claimmapper

import (
	"slices"
	"strconv"
	"strings"
)

// ProviderID identifies the header mapper to a host's provider registry
const ProviderID = "oidc-custom-42-mapper"

// Static descriptive metadata shown by the host's admin surface
const (
	DisplayType     = "Custom 42 mapper"
	DisplayCategory = "Token mapper"
	HelpText        = "Add custom header value to token."
)

// Keys of the raw host configuration map
const (
	ClaimNameKey         = "claim.name"
	IdentifierHeaderKey  = ProviderID + ".id_header"
	TokenTypeHeaderKey   = ProviderID + ".tt_header"
	IncludeInIDKey       = "id.token.claim"
	IncludeInAccessKey   = "access.token.claim"
	IncludeInUserInfoKey = "userinfo.token.claim"
)

// PropertyType is the type of a configuration property
type PropertyType string

const (
	StringType  PropertyType = "String"
	BooleanType PropertyType = "boolean"
)

// ConfigProperty describes one option of the mapper's configuration surface
type ConfigProperty struct {
	Name         string       `json:"name" yaml:"name"`
	Label        string       `json:"label" yaml:"label"`
	Type         PropertyType `json:"type" yaml:"type"`
	HelpText     string       `json:"help_text" yaml:"help_text"`
	DefaultValue string       `json:"default_value,omitempty" yaml:"default_value,omitempty"`
}

var configProperties = []ConfigProperty{
	{
		Name:     ClaimNameKey,
		Label:    "Token Claim Name",
		Type:     StringType,
		HelpText: "Name of the claim to insert into the token. Dots nest the claim; use '\\.' for a literal dot.",
	},
	{
		Name:     IdentifierHeaderKey,
		Label:    "Identifier Header name",
		Type:     StringType,
		HelpText: "Header name which will be passed",
	},
	{
		Name:     TokenTypeHeaderKey,
		Label:    "Token type Header name",
		Type:     StringType,
		HelpText: "Token type which will be passed",
	},
	{
		Name:         IncludeInIDKey,
		Label:        "Add to ID token",
		Type:         BooleanType,
		HelpText:     "Should the claim be added to the ID token?",
		DefaultValue: "true",
	},
	{
		Name:         IncludeInAccessKey,
		Label:        "Add to access token",
		Type:         BooleanType,
		HelpText:     "Should the claim be added to the access token?",
		DefaultValue: "true",
	},
	{
		Name:         IncludeInUserInfoKey,
		Label:        "Add to userinfo",
		Type:         BooleanType,
		HelpText:     "Should the claim be added to the userinfo?",
		DefaultValue: "true",
	},
}

// ConfigProperties returns the configuration schema of the header mapper
func ConfigProperties() []ConfigProperty {
	return slices.Clone(configProperties)
}

var placementKeys = []struct {
	key  string
	flag TokenPlacement
}{
	{IncludeInIDKey, IDToken},
	{IncludeInAccessKey, AccessToken},
	{IncludeInUserInfoKey, UserInfo},
}

// FromProviderConfig parses a raw host configuration map. Include-in flags
// count only when set to "true".
func FromProviderConfig(raw map[string]string) MapperConfig {
	cfg := MapperConfig{
		IdentifierHeader: raw[IdentifierHeaderKey],
		TokenTypeHeader:  raw[TokenTypeHeaderKey],
		ClaimName:        raw[ClaimNameKey],
	}
	for _, pk := range placementKeys {
		if strings.EqualFold(strings.TrimSpace(raw[pk.key]), "true") {
			cfg.IncludeIn |= pk.flag
		}
	}
	return cfg
}

// ProviderConfig renders cfg as a raw host configuration map
func (c MapperConfig) ProviderConfig() map[string]string {
	raw := map[string]string{
		ClaimNameKey:        c.ClaimName,
		IdentifierHeaderKey: c.IdentifierHeader,
		TokenTypeHeaderKey:  c.TokenTypeHeader,
	}
	for _, pk := range placementKeys {
		raw[pk.key] = strconv.FormatBool(c.IncludeIn&pk.flag != 0)
	}
	return raw
}

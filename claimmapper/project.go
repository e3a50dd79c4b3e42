package claimmapper

// MapperConfig is the administrator-defined configuration of a header mapper
type MapperConfig struct {
	// IdentifierHeader is the header read for the primary value (case-insensitive)
	IdentifierHeader string `json:"identifier_header" yaml:"identifier_header" validate:"omitempty,header_name"`
	// TokenTypeHeader is the header read for the secondary value (case-insensitive)
	TokenTypeHeader string `json:"token_type_header" yaml:"token_type_header" validate:"omitempty,header_name"`
	// ClaimName is the destination claim key; dots denote nesting
	ClaimName string `json:"claim_name" yaml:"claim_name" validate:"required"`
	// IncludeIn selects the tokens that receive the claim
	IncludeIn TokenPlacement `json:"include_in" yaml:"include_in" validate:"gt=0"`
}

// ClaimWrite is a single claim value destined for one or more tokens
type ClaimWrite struct {
	Name      string
	Value     string
	IncludeIn TokenPlacement
}

// Projector computes the claim writes for one token issuance request.
// Implementations must not mutate headers or cfg.
type Projector interface {
	Project(headers HeaderSet, cfg MapperConfig) []ClaimWrite
}

// ProjectorFunc adapts a function into a Projector
type ProjectorFunc func(headers HeaderSet, cfg MapperConfig) []ClaimWrite

// Project satisfies the Projector interface.
func (f ProjectorFunc) Project(headers HeaderSet, cfg MapperConfig) []ClaimWrite {
	if f == nil {
		return nil
	}
	return f(headers, cfg)
}

// Project reads the identifier header and then the token type header and
// emits one write per header present, both under cfg.ClaimName. Only the
// first value of a header is used. It never fails; absent or unset headers
// are skipped.
func Project(headers HeaderSet, cfg MapperConfig) []ClaimWrite {
	var writes []ClaimWrite
	for _, name := range []string{cfg.IdentifierHeader, cfg.TokenTypeHeader} {
		value, ok := firstValue(headers, name)
		if !ok {
			continue
		}
		writes = append(writes, ClaimWrite{
			Name:      cfg.ClaimName,
			Value:     value,
			IncludeIn: cfg.IncludeIn,
		})
	}
	return writes
}

// HeaderProjector is the Projector registered under ProviderID
type HeaderProjector struct {
	logger Logger
	mask   TransformFunc
}

// NewHeaderProjector creates a HeaderProjector. Header values are masked
// before they reach the logger.
func NewHeaderProjector(logger Logger) *HeaderProjector {
	return &HeaderProjector{
		logger: normalizeLogger(logger),
		mask:   MaskSensitive(2),
	}
}

// Project satisfies the Projector interface.
func (p *HeaderProjector) Project(headers HeaderSet, cfg MapperConfig) []ClaimWrite {
	logger := normalizeLogger(p.logger)
	mask := p.mask
	if mask == nil {
		mask = MaskSensitive(2)
	}

	logger.Debug("Header keys:", cfg.IdentifierHeader, cfg.TokenTypeHeader)

	writes := Project(headers, cfg)
	for _, w := range writes {
		logger.Debug("Projected claim:", w.Name, "=", mask(w.Value), "into", w.IncludeIn)
	}
	return writes
}

package claimmapper

// Mapper binds a projection configuration to request transports
type Mapper struct {
	config    MapperConfig
	projector Projector
	merger    ClaimMerger
	transform TransformFunc
	skipPaths map[string]bool
	debug     bool
	logger    Logger
}

// NewMapper creates a Mapper for cfg using the header projector
func NewMapper(cfg MapperConfig) *Mapper {
	return &Mapper{
		config:    cfg,
		projector: NewHeaderProjector(NoOpLogger{}),
		merger:    NestedClaimMerger{},
		skipPaths: make(map[string]bool),
		logger:    NoOpLogger{},
	}
}

// NewMapperFromConfig creates a Mapper from a file configuration, resolving
// the projector through DefaultRegistry
func NewMapperFromConfig(config *Config, logger Logger) (*Mapper, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	logger = normalizeLogger(logger)
	providerID := config.Provider
	if providerID == "" {
		providerID = ProviderID
	}
	projector, err := NewProjector(providerID, debugLogger(logger, config.Debug))
	if err != nil {
		return nil, err
	}

	m := NewMapper(config.Mapper)
	m.projector = projector
	m.logger = logger
	m.debug = config.Debug
	for _, path := range config.SkipPaths {
		m.skipPaths[path] = true
	}
	return m, nil
}

// SetLogger sets a custom logger
func (m *Mapper) SetLogger(logger Logger) {
	m.logger = normalizeLogger(logger)
}

// Config returns the bound configuration
func (m *Mapper) Config() MapperConfig {
	return m.config
}

// Validate validates the bound configuration
func (m *Mapper) Validate() error {
	return m.config.Validate()
}

// Project computes the claim writes for headers, applying the value
// transform when one is set
func (m *Mapper) Project(headers HeaderSet) []ClaimWrite {
	writes := m.projector.Project(headers, m.config)
	if m.transform == nil || len(writes) == 0 {
		return writes
	}

	transformed := make([]ClaimWrite, len(writes))
	for i, w := range writes {
		w.Value = m.transform(w.Value)
		transformed[i] = w
	}
	return transformed
}

// Tokens projects headers into a fresh TokenSet
func (m *Mapper) Tokens(headers HeaderSet) *TokenSet {
	writes := m.Project(headers)
	tokens := NewTokenSet()
	Apply(tokens, writes, m.merger)

	if m.debug {
		m.logger.Debug("Applied claim writes:", len(writes))
	}
	return tokens
}

// debugLogger returns the logger handed to projectors, which only log at
// debug level
func debugLogger(logger Logger, debug bool) Logger {
	if !debug {
		return NoOpLogger{}
	}
	return normalizeLogger(logger)
}

func (m *Mapper) skip(path string) bool {
	return m.skipPaths[path]
}

// Builder helps build Mapper configurations
type Builder struct {
	config    MapperConfig
	projector Projector
	merger    ClaimMerger
	transform TransformFunc
	skipPaths []string
	debug     bool
	logger    Logger
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{}
}

// IdentifierHeader sets the header read for the primary value
func (b *Builder) IdentifierHeader(name string) *Builder {
	b.config.IdentifierHeader = name
	return b
}

// TokenTypeHeader sets the header read for the secondary value
func (b *Builder) TokenTypeHeader(name string) *Builder {
	b.config.TokenTypeHeader = name
	return b
}

// ClaimName sets the destination claim
func (b *Builder) ClaimName(name string) *Builder {
	b.config.ClaimName = name
	return b
}

// IncludeIn sets the tokens that receive the claim
func (b *Builder) IncludeIn(placement TokenPlacement) *Builder {
	b.config.IncludeIn = placement
	return b
}

// WithConfig replaces the whole mapper configuration
func (b *Builder) WithConfig(cfg MapperConfig) *Builder {
	b.config = cfg
	return b
}

// WithTransform sets a transformation applied to every projected value
func (b *Builder) WithTransform(transform TransformFunc) *Builder {
	b.transform = transform
	return b
}

// WithMerger sets the claim merger
func (b *Builder) WithMerger(merger ClaimMerger) *Builder {
	b.merger = merger
	return b
}

// WithProjector replaces the header projector
func (b *Builder) WithProjector(projector Projector) *Builder {
	b.projector = projector
	return b
}

// WithLogger sets the logger
func (b *Builder) WithLogger(logger Logger) *Builder {
	b.logger = logger
	return b
}

// SkipPaths sets gRPC methods or HTTP paths to skip
func (b *Builder) SkipPaths(paths ...string) *Builder {
	b.skipPaths = paths
	return b
}

// Debug enables the projector's debug logging
func (b *Builder) Debug(debug bool) *Builder {
	b.debug = debug
	return b
}

// Build creates the Mapper
func (b *Builder) Build() *Mapper {
	m := NewMapper(b.config)
	m.logger = normalizeLogger(b.logger)
	m.projector = NewHeaderProjector(debugLogger(m.logger, b.debug))
	if b.projector != nil {
		m.projector = b.projector
	}
	if b.merger != nil {
		m.merger = b.merger
	}
	m.transform = b.transform
	m.debug = b.debug
	for _, path := range b.skipPaths {
		m.skipPaths[path] = true
	}
	return m
}

package claimmapper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every configuration validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the file form of a mapper configuration
type Config struct {
	// Provider selects the registered provider; empty means ProviderID
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
	// Mapper is the claim projection configuration
	Mapper MapperConfig `json:"mapper" yaml:"mapper"`
	// SkipPaths defines gRPC methods or HTTP paths to skip
	SkipPaths []string `json:"skip_paths,omitempty" yaml:"skip_paths,omitempty"`
	// Debug enables debug logging
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty"`
}

// LoadConfigFromFile loads configuration from a file (JSON or YAML)
func LoadConfigFromFile(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML or JSON configuration data
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, &config); err != nil {
		config = Config{}
		if jsonErr := json.Unmarshal(data, &config); jsonErr != nil {
			return nil, fmt.Errorf("failed to parse config file as YAML or JSON: %w", errors.Join(err, jsonErr))
		}
	}

	return &config, nil
}

// SaveConfigToFile saves configuration to a file
func SaveConfigToFile(config *Config, filename string, format string) error {
	var data []byte
	var err error

	switch format {
	case "yaml", "yml":
		data, err = yaml.Marshal(config)
	case "json":
		data, err = json.MarshalIndent(config, "", "  ")
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filename, data, 0644)
}

// headerNamePattern matches an RFC 7230 token
var headerNamePattern = regexp.MustCompile("^[!#$%&'*+\\-.^_`|~0-9A-Za-z]+$")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("header_name", func(fl validator.FieldLevel) bool {
			return headerNamePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Validate checks the mapper configuration. Projection never requires it;
// it is offered to hosts that validate administrator input.
func (c MapperConfig) Validate() error {
	if err := configValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ValidateConfig performs comprehensive configuration validation
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: configuration is nil", ErrInvalidConfig)
	}

	if config.Provider != "" {
		if _, err := Lookup(config.Provider); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if err := config.Mapper.Validate(); err != nil {
		return fmt.Errorf("mapper: %w", err)
	}

	for i, path := range config.SkipPaths {
		if path == "" {
			return fmt.Errorf("%w: skip path %d cannot be empty", ErrInvalidConfig, i)
		}
	}

	return nil
}

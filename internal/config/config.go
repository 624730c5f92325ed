package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Providers ProvidersConfig `mapstructure:"providers" validate:"required"`

	// EnvFile is an optional dotenv file holding provider credentials.
	// Process environment variables take precedence over its values.
	EnvFile string `mapstructure:"env_file"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// ProvidersConfig selects and tunes the text-analysis backends.
type ProvidersConfig struct {
	// Default is the provider used when a caller does not name one.
	Default string `mapstructure:"default" validate:"required"`

	// Transport is "simulated" for the offline backend stand-in or "live"
	// for real HTTP/SDK calls.
	Transport string `mapstructure:"transport" validate:"required,oneof=simulated live"`

	Simulation SimulationConfig `mapstructure:"simulation"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`

	// Overrides adjusts built-in variant parameters by provider name.
	Overrides map[string]VariantOverride `mapstructure:"overrides" validate:"dive"`
}

// SimulationConfig tunes the simulated transport.
type SimulationConfig struct {
	MinLatencyMillis int     `mapstructure:"min_latency_ms" validate:"gte=0"`
	MaxLatencyMillis int     `mapstructure:"max_latency_ms" validate:"gtefield=MinLatencyMillis"`
	FailureRate      float64 `mapstructure:"failure_rate"   validate:"gte=0,lte=1"`
	Seed             int64   `mapstructure:"seed"`
}

// GeminiConfig contains settings for the Gemini-backed provider.
type GeminiConfig struct {
	ModelName string `mapstructure:"model_name" validate:"required"`
}

// VariantOverride replaces selected parameters of a built-in provider
// variant. Zero values leave the built-in value untouched.
type VariantOverride struct {
	CredentialKey    string `mapstructure:"credential_key"`
	MinLength        int    `mapstructure:"min_length"        validate:"gte=0"`
	SummarySentences int    `mapstructure:"summary_sentences" validate:"gte=0"`
	FlashcardCap     int    `mapstructure:"flashcard_cap"     validate:"gte=0"`
	QuestionStyle    string `mapstructure:"question_style"    validate:"omitempty,oneof=detailed compact"`
	MaxRetries       int    `mapstructure:"max_retries"       validate:"gte=0"`
	RetryDelayMillis int    `mapstructure:"retry_delay_ms"    validate:"gte=0"`
	SummaryEndpoint  string `mapstructure:"summary_endpoint"  validate:"omitempty,url"`
	QuestionEndpoint string `mapstructure:"question_endpoint" validate:"omitempty,url"`
}

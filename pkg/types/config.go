package types

import (
	"errors"
	"time"
)

// Config holds backend selection and parameters for Store.Attach, plus the
// settings of the recipe and notification collaborators.
type Config struct {
	Backend     string         `mapstructure:"backend" yaml:"backend"`
	DataDir     string         `mapstructure:"data_dir" yaml:"data_dir"`
	HorizonDays int            `mapstructure:"horizon_days" yaml:"horizon_days"`
	Sheets      SheetsConfig   `mapstructure:"sheets" yaml:"sheets"`
	S3          S3Config       `mapstructure:"s3" yaml:"s3"`
	Postgres    PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
	Recipes     RecipesConfig  `mapstructure:"recipes" yaml:"recipes"`
	Notify      NotifyConfig   `mapstructure:"notify" yaml:"notify"`
}

// SheetsConfig locates the Google spreadsheet holding the pantry.
type SheetsConfig struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id" yaml:"spreadsheet_id"`
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
	Worksheet       string `mapstructure:"worksheet" yaml:"worksheet"`
}

// S3Config locates the CSV object holding the pantry.
type S3Config struct {
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	Key       string `mapstructure:"key" yaml:"key"`
	Region    string `mapstructure:"region" yaml:"region"`
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	PathStyle bool   `mapstructure:"path_style" yaml:"path_style"`
}

// PostgresConfig holds the connection string of the postgres backend.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}

// RecipesConfig configures the recipe search API client.
type RecipesConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string        `mapstructure:"api_key" yaml:"api_key"`
	Limit   int           `mapstructure:"limit" yaml:"limit"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// NotifyConfig selects and configures the email transport.
type NotifyConfig struct {
	Transport string `mapstructure:"transport" yaml:"transport"`
	SMTPHost  string `mapstructure:"smtp_host" yaml:"smtp_host"`
	SMTPPort  int    `mapstructure:"smtp_port" yaml:"smtp_port"`
	Region    string `mapstructure:"region" yaml:"region"`
}

// Supported backend names.
const (
	BackendJSONL    = "jsonl"
	BackendSQLite   = "sqlite"
	BackendSheets   = "sheets"
	BackendS3       = "s3"
	BackendPostgres = "postgres"
)

// Supported notification transports.
const (
	TransportSMTP = "smtp"
	TransportSES  = "ses"
)

// Defaults applied by the CLI when the config file leaves a key unset.
const (
	DefaultBackend        = BackendJSONL
	DefaultHorizonDays    = 3
	DefaultRecipeLimit    = 5
	DefaultRecipesBaseURL = "https://api.spoonacular.com"
	DefaultRecipesTimeout = 10 * time.Second
	DefaultSMTPHost       = "smtp.gmail.com"
	DefaultSMTPPort       = 465
	DefaultWorksheet      = "Sheet1"
	DefaultS3Key          = "pantry.csv"
	DefaultCredentials    = "credentials.json"
)

// Config validation errors.
var (
	ErrBackendEmpty     = errors.New("backend must not be empty")
	ErrBackendUnknown   = errors.New("unknown backend")
	ErrTransportUnknown = errors.New("unknown notify transport")
	ErrHorizonInvalid   = errors.New("horizon_days must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSONL:    true,
	BackendSQLite:   true,
	BackendSheets:   true,
	BackendS3:       true,
	BackendPostgres: true,
}

// Validate checks that the Config is well-formed. Backend-specific settings
// (bucket, spreadsheet id, DSN) are checked by the backend on Attach.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.HorizonDays < 0 {
		return ErrHorizonInvalid
	}
	switch c.Notify.Transport {
	case "", TransportSMTP, TransportSES:
	default:
		return ErrTransportUnknown
	}
	return nil
}

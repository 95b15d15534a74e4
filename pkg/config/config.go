package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/objectfs/ocifs/pkg/errors"
	"github.com/objectfs/ocifs/pkg/types"
)

// Settings represents the complete client configuration. Values are
// immutable once the client is constructed; use WithOverrides to derive
// a modified copy.
type Settings struct {
	Auth    AuthConfig    `yaml:"auth"`
	Bucket  BucketConfig  `yaml:"bucket"`
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
}

// AuthConfig identifies the signing principal. Exactly one of KeyFile
// and PrivateKey must be set; KeyFile wins when both are present.
type AuthConfig struct {
	TenancyID   string `yaml:"tenancy_id"`
	UserID      string `yaml:"user_id"`
	Fingerprint string `yaml:"key_fingerprint"`
	KeyFile     string `yaml:"key_file"`
	PrivateKey  string `yaml:"private_key"`
}

// BucketConfig locates the bucket and sets storage defaults.
type BucketConfig struct {
	Namespace   string `yaml:"namespace"`
	Region      string `yaml:"region"`
	Bucket      string `yaml:"bucket"`
	StorageTier string `yaml:"storage_tier"`
	PathPrefix  string `yaml:"path_prefix"`

	// Endpoint overrides the derived service URL. Used for private
	// deployments and tests; leaves Region free-form when set.
	Endpoint string `yaml:"endpoint"`
}

// HTTPConfig represents transport settings.
type HTTPConfig struct {
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig represents timeout settings.
type TimeoutConfig struct {
	Connect time.Duration `yaml:"connect"`
	Request time.Duration `yaml:"request"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// regionPattern matches service region identifiers like us-phoenix-1.
var regionPattern = regexp.MustCompile(`^[a-z]{2,3}-[a-z]+-[0-9]+$`)

// NewDefault returns a configuration with sensible defaults.
func NewDefault() *Settings {
	return &Settings{
		HTTP: HTTPConfig{
			Timeouts: TimeoutConfig{
				Connect: 10 * time.Second,
				Request: 60 * time.Second,
			},
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "json",
		},
	}
}

// LoadFromFile loads configuration from a YAML file.
func (s *Settings) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// LoadFromEnv loads configuration from environment variables.
func (s *Settings) LoadFromEnv() error {
	// Auth settings
	if val := os.Getenv("OCIFS_TENANCY_ID"); val != "" {
		s.Auth.TenancyID = val
	}
	if val := os.Getenv("OCIFS_USER_ID"); val != "" {
		s.Auth.UserID = val
	}
	if val := os.Getenv("OCIFS_KEY_FINGERPRINT"); val != "" {
		s.Auth.Fingerprint = val
	}
	if val := os.Getenv("OCIFS_KEY_FILE"); val != "" {
		s.Auth.KeyFile = val
	}
	if val := os.Getenv("OCIFS_PRIVATE_KEY"); val != "" {
		s.Auth.PrivateKey = val
	}

	// Bucket settings
	if val := os.Getenv("OCIFS_NAMESPACE"); val != "" {
		s.Bucket.Namespace = val
	}
	if val := os.Getenv("OCIFS_REGION"); val != "" {
		s.Bucket.Region = val
	}
	if val := os.Getenv("OCIFS_BUCKET"); val != "" {
		s.Bucket.Bucket = val
	}
	if val := os.Getenv("OCIFS_STORAGE_TIER"); val != "" {
		s.Bucket.StorageTier = val
	}
	if val := os.Getenv("OCIFS_PATH_PREFIX"); val != "" {
		s.Bucket.PathPrefix = val
	}
	if val := os.Getenv("OCIFS_ENDPOINT"); val != "" {
		s.Bucket.Endpoint = val
	}

	// Transport settings
	if val := os.Getenv("OCIFS_CONNECT_TIMEOUT"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			s.HTTP.Timeouts.Connect = duration
		}
	}
	if val := os.Getenv("OCIFS_REQUEST_TIMEOUT"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			s.HTTP.Timeouts.Request = duration
		}
	}

	// Logging settings
	if val := os.Getenv("OCIFS_LOG_LEVEL"); val != "" {
		s.Logging.Level = val
	}
	if val := os.Getenv("OCIFS_LOG_FORMAT"); val != "" {
		s.Logging.Format = val
	}

	return nil
}

// SaveToFile saves the configuration to a YAML file.
func (s *Settings) SaveToFile(filename string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration. Every missing required key is
// reported in a single error so a misconfigured deployment is fixed in
// one round trip, not one key at a time.
func (s *Settings) Validate() error {
	var missing []string

	if s.Auth.TenancyID == "" {
		missing = append(missing, "auth.tenancy_id")
	}
	if s.Auth.UserID == "" {
		missing = append(missing, "auth.user_id")
	}
	if s.Auth.Fingerprint == "" {
		missing = append(missing, "auth.key_fingerprint")
	}
	if s.Auth.KeyFile == "" && s.Auth.PrivateKey == "" {
		missing = append(missing, "auth.key_file or auth.private_key")
	}
	if s.Bucket.Namespace == "" {
		missing = append(missing, "bucket.namespace")
	}
	if s.Bucket.Bucket == "" {
		missing = append(missing, "bucket.bucket")
	}
	if s.Bucket.Region == "" && s.Bucket.Endpoint == "" {
		missing = append(missing, "bucket.region")
	}

	if len(missing) > 0 {
		return errors.NewMissingConfig(missing...)
	}

	if s.Auth.Fingerprint != "" && !validFingerprint(s.Auth.Fingerprint) {
		return errors.Newf(errors.ErrCodeInvalidFingerprint,
			"fingerprint %q is not 16 colon-separated hex byte pairs", s.Auth.Fingerprint)
	}

	// The endpoint override bypasses region-based URL construction, so
	// the region shape only matters without one.
	if s.Bucket.Endpoint == "" && !regionPattern.MatchString(s.Bucket.Region) {
		return errors.Newf(errors.ErrCodeInvalidRegion, "region %q does not match <country>-<city>-<n>", s.Bucket.Region)
	}

	if _, err := types.ParseStorageTier(s.Bucket.StorageTier); err != nil {
		return err
	}

	return nil
}

var fingerprintPattern = regexp.MustCompile(`^([0-9a-fA-F]{2}:){15}[0-9a-fA-F]{2}$`)

func validFingerprint(fp string) bool {
	return fingerprintPattern.MatchString(fp)
}

// WithOverrides returns a copy of s with every non-zero field of o
// applied on top. The receiver is never modified.
func (s Settings) WithOverrides(o Settings) Settings {
	out := s

	if o.Auth.TenancyID != "" {
		out.Auth.TenancyID = o.Auth.TenancyID
	}
	if o.Auth.UserID != "" {
		out.Auth.UserID = o.Auth.UserID
	}
	if o.Auth.Fingerprint != "" {
		out.Auth.Fingerprint = o.Auth.Fingerprint
	}
	if o.Auth.KeyFile != "" {
		out.Auth.KeyFile = o.Auth.KeyFile
	}
	if o.Auth.PrivateKey != "" {
		out.Auth.PrivateKey = o.Auth.PrivateKey
	}
	if o.Bucket.Namespace != "" {
		out.Bucket.Namespace = o.Bucket.Namespace
	}
	if o.Bucket.Region != "" {
		out.Bucket.Region = o.Bucket.Region
	}
	if o.Bucket.Bucket != "" {
		out.Bucket.Bucket = o.Bucket.Bucket
	}
	if o.Bucket.StorageTier != "" {
		out.Bucket.StorageTier = o.Bucket.StorageTier
	}
	if o.Bucket.PathPrefix != "" {
		out.Bucket.PathPrefix = o.Bucket.PathPrefix
	}
	if o.Bucket.Endpoint != "" {
		out.Bucket.Endpoint = o.Bucket.Endpoint
	}
	if o.HTTP.Timeouts.Connect != 0 {
		out.HTTP.Timeouts.Connect = o.HTTP.Timeouts.Connect
	}
	if o.HTTP.Timeouts.Request != 0 {
		out.HTTP.Timeouts.Request = o.HTTP.Timeouts.Request
	}
	if o.Logging.Level != "" {
		out.Logging.Level = o.Logging.Level
	}
	if o.Logging.Format != "" {
		out.Logging.Format = o.Logging.Format
	}

	return out
}

// NewLogger builds a slog.Logger from the logging settings. Unknown
// levels fall back to info rather than failing startup.
func (l LoggingConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(l.Level) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(l.Format) == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

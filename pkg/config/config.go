package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/tourcms"
	ConfigFileName    = "tourcms.yml"

	// DefaultMaxUploadBytes matches the 5 MB cap applied to every upload.
	DefaultMaxUploadBytes = 5 << 20
)

// Config holds all tourcms settings.
type Config struct {
	// DatabaseURL is the database connection URL
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// BindAddress is the address the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the HTTP server port
	Port int `yaml:"port" json:"port"`

	// UploadsRoot is the directory uploaded images are stored under
	UploadsRoot string `yaml:"uploads_root" json:"uploads_root"`

	// PublicBaseURL prefixes stored image paths when building public URLs
	PublicBaseURL string `yaml:"public_base_url" json:"public_base_url"`

	// MaxUploadBytes is the per-file upload size limit
	MaxUploadBytes int64 `yaml:"max_upload_bytes" json:"max_upload_bytes"`

	// ListLimitMax caps the limit query parameter on list endpoints
	ListLimitMax int `yaml:"list_limit_max" json:"list_limit_max"`

	// AdminTokenSecret signs admin JWTs
	AdminTokenSecret string `yaml:"admin_token_secret" json:"admin_token_secret"`

	// AdminTokenTTLMinutes is the admin JWT lifetime
	AdminTokenTTLMinutes int `yaml:"admin_token_ttl_minutes" json:"admin_token_ttl_minutes"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		BindAddress:          "0.0.0.0",
		Port:                 8000,
		UploadsRoot:          "./uploads",
		MaxUploadBytes:       DefaultMaxUploadBytes,
		ListLimitMax:         1000,
		AdminTokenTTLMinutes: 480,
		LogLevel:             "info",
		sources:              make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("TOURCMS_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

// FilePath returns the path of the config file this config was loaded from.
func (c *Config) FilePath() string {
	return c.configFilePath
}

// Addr returns the bind address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.Port)
}

func attributeNames() []string {
	return []string{
		"database_url", "bind_address", "port", "uploads_root",
		"public_base_url", "max_upload_bytes", "list_limit_max",
		"admin_token_secret", "admin_token_ttl_minutes", "log_level",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = "file"
	}
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.UploadsRoot != "" {
		c.UploadsRoot = file.UploadsRoot
		c.sources["uploads_root"] = "file"
	}
	if file.PublicBaseURL != "" {
		c.PublicBaseURL = file.PublicBaseURL
		c.sources["public_base_url"] = "file"
	}
	if file.MaxUploadBytes != 0 {
		c.MaxUploadBytes = file.MaxUploadBytes
		c.sources["max_upload_bytes"] = "file"
	}
	if file.ListLimitMax != 0 {
		c.ListLimitMax = file.ListLimitMax
		c.sources["list_limit_max"] = "file"
	}
	if file.AdminTokenSecret != "" {
		c.AdminTokenSecret = file.AdminTokenSecret
		c.sources["admin_token_secret"] = "file"
	}
	if file.AdminTokenTTLMinutes != 0 {
		c.AdminTokenTTLMinutes = file.AdminTokenTTLMinutes
		c.sources["admin_token_ttl_minutes"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
		c.sources["database_url"] = "env"
	}
	if v := os.Getenv("TOURCMS_BIND_ADDRESS"); v != "" {
		c.BindAddress = v
		c.sources["bind_address"] = "env"
	}
	if v := os.Getenv("TOURCMS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
			c.sources["port"] = "env"
		}
	}
	if v := os.Getenv("TOURCMS_UPLOADS_ROOT"); v != "" {
		c.UploadsRoot = v
		c.sources["uploads_root"] = "env"
	}
	if v := os.Getenv("TOURCMS_PUBLIC_BASE_URL"); v != "" {
		c.PublicBaseURL = v
		c.sources["public_base_url"] = "env"
	}
	if v := os.Getenv("TOURCMS_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxUploadBytes = n
			c.sources["max_upload_bytes"] = "env"
		}
	}
	if v := os.Getenv("TOURCMS_LIST_LIMIT_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ListLimitMax = n
			c.sources["list_limit_max"] = "env"
		}
	}
	if v := os.Getenv("TOURCMS_ADMIN_TOKEN_SECRET"); v != "" {
		c.AdminTokenSecret = v
		c.sources["admin_token_secret"] = "env"
	}
	if v := os.Getenv("TOURCMS_ADMIN_TOKEN_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.AdminTokenTTLMinutes = n
			c.sources["admin_token_ttl_minutes"] = "env"
		}
	}
	if v := os.Getenv("TOURCMS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
		c.sources["log_level"] = "env"
	}
}

// Attributes returns every attribute with its effective value and source,
// for the config show command. Secrets are redacted.
func (c *Config) Attributes() []Attribute {
	value := func(name string) string {
		switch name {
		case "database_url":
			return redact(c.DatabaseURL)
		case "bind_address":
			return c.BindAddress
		case "port":
			return strconv.Itoa(c.Port)
		case "uploads_root":
			return c.UploadsRoot
		case "public_base_url":
			return c.PublicBaseURL
		case "max_upload_bytes":
			return strconv.FormatInt(c.MaxUploadBytes, 10)
		case "list_limit_max":
			return strconv.Itoa(c.ListLimitMax)
		case "admin_token_secret":
			return redact(c.AdminTokenSecret)
		case "admin_token_ttl_minutes":
			return strconv.Itoa(c.AdminTokenTTLMinutes)
		case "log_level":
			return c.LogLevel
		}
		return ""
	}

	var attrs []Attribute
	for _, name := range attributeNames() {
		attrs = append(attrs, Attribute{
			Name:   name,
			Value:  value(name),
			Source: c.sources[name],
		})
	}
	return attrs
}

func redact(v string) string {
	if v == "" {
		return ""
	}
	return "[REDACTED]"
}

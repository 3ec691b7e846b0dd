package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/julianstephens/norton/internal/constants"
	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/keyring"
	"github.com/julianstephens/norton/internal/logger"
)

const (
	EnvStore     = "NORTON_STORE"
	EnvLang      = "NORTON_LANG"
	EnvAPIKey    = "NORTON_AI_API_KEY"
	EnvOpenAIKey = "OPENAI_API_KEY"
	EnvBaseURL   = "NORTON_AI_BASE_URL"
	EnvModel     = "NORTON_AI_MODEL"
	EnvDebug     = "NORTON_DEBUG"
)

// Config holds all norton configuration.
type Config struct {
	General   GeneralConfig   `toml:"general"`
	Assistant AssistantConfig `toml:"assistant"`
}

type GeneralConfig struct {
	Language string `toml:"language"`
	Store    string `toml:"store"`
	Debug    bool   `toml:"debug"`
}

// AssistantConfig configures the OpenAI-compatible endpoint. The API key
// is never written to the file; it comes from the environment or keyring.
type AssistantConfig struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url,omitempty"`
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"`
}

func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Language: string(i18n.DefaultLanguage),
			Store:    constants.DefaultConfigPath,
		},
		Assistant: AssistantConfig{
			Enabled: true,
			Model:   constants.DefaultAssistantModel,
			Timeout: constants.DefaultAssistantTimeout.String(),
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, constants.AppName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", constants.AppName)
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path, returning defaults if it doesn't
// exist. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// LoadDotEnv reads .env from the working directory. A missing file is not
// an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to load .env", "error", err)
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvStore); v != "" {
		c.General.Store = v
	}
	if v := os.Getenv(EnvLang); v != "" {
		c.General.Language = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Assistant.BaseURL = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.Assistant.Model = v
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvDebug)); err == nil {
		c.General.Debug = v
	}
}

func (c Config) Validate() error {
	if _, err := i18n.ParseLanguage(c.General.Language); err != nil {
		return fmt.Errorf("invalid language %q: %w", c.General.Language, err)
	}
	if strings.TrimSpace(c.General.Store) == "" {
		return errors.New("store location cannot be empty")
	}
	if c.Assistant.Timeout != "" {
		d, err := time.ParseDuration(c.Assistant.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid assistant timeout %q", c.Assistant.Timeout)
		}
	}
	return nil
}

func (c Config) Language() i18n.Language {
	lang, err := i18n.ParseLanguage(c.General.Language)
	if err != nil {
		return i18n.DefaultLanguage
	}
	return lang
}

func (c Config) AssistantTimeout() time.Duration {
	d, err := time.ParseDuration(c.Assistant.Timeout)
	if err != nil || d <= 0 {
		return constants.DefaultAssistantTimeout
	}
	return d
}

// Save writes the config to path, or the default location if path is empty.
func Save(path string, cfg Config) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	if path == "" {
		path = ConfigPath()
	}
	_, err := os.Stat(path)
	return err == nil
}

// KeySource names where an API key was found.
type KeySource string

const (
	KeySourceNone    KeySource = ""
	KeySourceEnv     KeySource = "env"
	KeySourceKeyring KeySource = "keyring"
)

// APIKey returns the assistant key from the environment or the OS keyring,
// in that order.
func APIKey() (string, KeySource) {
	for _, name := range []string{EnvAPIKey, EnvOpenAIKey} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, KeySourceEnv
		}
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "error", err)
		}
		return "", KeySourceNone
	}
	return key, KeySourceKeyring
}

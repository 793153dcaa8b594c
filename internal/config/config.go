package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the immutable process configuration, loaded once at startup.
type Config struct {
	BotToken string

	APIID   int
	APIHash string
	// Session is a Telethon-format string session. When empty, the client
	// falls back to the sqlite session store at SessionPath and interactive
	// authentication.
	Session     string
	SessionPath string

	TimezoneName string
	BotName      string
	Developer    string
	Description  string
	Language     string

	LogLevel              string
	PollTimeoutSeconds    int
	ResolveTimeoutSeconds int
	CardLayoutPath        string
}

func Load() (Config, error) {
	apiID, err := getInt("API_ID", 0)
	if err != nil {
		return Config{}, err
	}
	pollTimeout, err := getInt("POLL_TIMEOUT_SECONDS", 30)
	if err != nil {
		return Config{}, err
	}
	resolveTimeout, err := getInt("RESOLVE_TIMEOUT_SECONDS", 0)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BotToken:              strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		APIID:                 apiID,
		APIHash:               strings.TrimSpace(os.Getenv("API_HASH")),
		Session:               strings.TrimSpace(os.Getenv("SESSION")),
		SessionPath:           getString("SESSION_PATH", DefaultSessionPath()),
		TimezoneName:          getString("TIMEZONE", "Asia/Dhaka"),
		BotName:               getString("BOT_NAME", "InfoGram BOT"),
		Developer:             getString("DEVELOPER", "@Luizzsec"),
		Description:           getString("DESCRIPTION", "A Telegram bot that shows public profile details of any user."),
		Language:              getString("BOT_LANGUAGE", "English"),
		LogLevel:              getString("LOG_LEVEL", "info"),
		PollTimeoutSeconds:    pollTimeout,
		ResolveTimeoutSeconds: resolveTimeout,
		CardLayoutPath:        getString("CARD_LAYOUT", ""),
	}

	if cfg.PollTimeoutSeconds <= 0 {
		cfg.PollTimeoutSeconds = 30
	}
	if cfg.ResolveTimeoutSeconds < 0 {
		cfg.ResolveTimeoutSeconds = 0
	}

	return cfg, nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimezoneName)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.TimezoneName, err)
	}
	return loc, nil
}

type cardLayoutFile struct {
	Fields []string `yaml:"fields"`
}

// CardLayout reads the optional YAML card layout file. A missing path means
// the default layout (nil field list).
func (c Config) CardLayout() ([]string, error) {
	if c.CardLayoutPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.CardLayoutPath)
	if err != nil {
		return nil, fmt.Errorf("read card layout: %w", err)
	}

	var layout cardLayoutFile
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse card layout: %w", err)
	}

	return layout.Fields, nil
}

func ConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	if runtime.GOOS == "windows" {
		return filepath.Join(homeDir, "AppData", "Local", "infogram")
	}
	return filepath.Join(homeDir, ".config", "infogram")
}

func DefaultSessionPath() string {
	return filepath.Join(ConfigDir(), "session.db")
}

func getString(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

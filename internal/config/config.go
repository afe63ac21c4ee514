// Package config loads tracker settings from json5 files and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/qepting91/cs2-market-tracker/internal/ingest"
	"github.com/titanous/json5"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "tracker.json5"

var ErrMissingCookie = errors.New("no Steam cookie provided: use --cookie-file, --cookie or STEAM_COOKIE")

type EmailConfig struct {
	User     string `json:"user"`
	Password string `json:"password"`
	To       string `json:"to"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
}

type Config struct {
	Cookie        string      `json:"cookie"`
	CookieFile    string      `json:"cookie_file"`
	Delay         float64     `json:"delay"`
	MaxPages      int         `json:"max_pages"`
	Output        string      `json:"output"`
	Records       string      `json:"records"`
	CollectorMode string      `json:"collector_mode"`
	Email         EmailConfig `json:"email"`
	Port          string      `json:"port"`
}

func Default() Config {
	return Config{
		Delay:         0.8,
		Output:        "market_history.csv",
		Records:       filepath.Join("data", "trades.json"),
		CollectorMode: "live",
		Email: EmailConfig{
			Host: "smtp.gmail.com",
			Port: 465,
		},
		Port: "8080",
	}
}

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

// ReadConfig reads name and merges <name>.local.<ext> over it.
// os.ErrNotExist is returned when neither file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	allNotFound := true

	prefixname, ext := splitExt(filepath.Base(name))

	defaultFile, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(defaultFile) > 0 {
		if err = json5.Unmarshal(defaultFile, &out); err != nil {
			return out, fmt.Errorf("parse %s: %w", name, err)
		}
		allNotFound = false
	}

	localFilepath := filepath.Join(filepath.Dir(name), fmt.Sprintf("%s.local.%s", prefixname, ext))
	localFile, err := os.ReadFile(localFilepath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(localFile) > 0 {
		var override T
		if err = json5.Unmarshal(localFile, &override); err != nil {
			return out, fmt.Errorf("parse %s: %w", localFilepath, err)
		}
		if err = mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localFilepath)
		allNotFound = false
	}

	if allNotFound {
		return out, os.ErrNotExist
	}
	return out, nil
}

// Load layers the environment over the config files over the defaults.
// A missing config file is not an error.
func Load(path string) (Config, error) {
	cfg, err := ReadConfig[Config](path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	if err := mergo.Merge(&cfg, Default()); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("STEAM_COOKIE", &cfg.Cookie)
	setString("COLLECTOR_MODE", &cfg.CollectorMode)
	setString("EMAIL_USER", &cfg.Email.User)
	setString("EMAIL_PASS", &cfg.Email.Password)
	setString("EMAIL_TO", &cfg.Email.To)
	setString("SMTP_HOST", &cfg.Email.Host)
	setString("PORT", &cfg.Port)

	if v := os.Getenv("TRACKER_DELAY"); v != "" {
		delay, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("TRACKER_DELAY: %w", err)
		}
		cfg.Delay = delay
	}
	for key, dst := range map[string]*int{"TRACKER_MAX_PAGES": &cfg.MaxPages, "SMTP_PORT": &cfg.Email.Port} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}
	return nil
}

// ResolveCookie returns the cookie header, preferring the cookie file over an
// inline value.
func (c Config) ResolveCookie() (string, error) {
	if c.CookieFile != "" {
		header, err := ingest.ReadCookieFile(c.CookieFile)
		if err != nil {
			return "", err
		}
		return header, nil
	}
	if strings.TrimSpace(c.Cookie) == "" {
		return "", ErrMissingCookie
	}
	return strings.TrimSpace(c.Cookie), nil
}

func (c Config) DelayDuration() time.Duration {
	return time.Duration(c.Delay * float64(time.Second))
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Port        string `validate:"required,numeric"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	CatalogFile string `validate:"omitempty,file"`

	MetricsEnabled bool
	MetricsToken   string `validate:"required_if=MetricsEnabled true"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	env := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:         env("PORT", "3000"),
		LogLevel:     strings.ToLower(env("LOG_LEVEL", "info")),
		CatalogFile:  env("CATALOG_FILE", ""),
		MetricsToken: env("METRICS_TOKEN", ""),
	}

	enabled, err := strconv.ParseBool(env("METRICS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("METRICS_ENABLED: %w", err)
	}
	cfg.MetricsEnabled = enabled

	if err := validate.Struct(cfg); err != nil {
		return Config{}, describe(err)
	}
	return cfg, nil
}

var envNames = map[string]string{
	"Port":         "PORT",
	"LogLevel":     "LOG_LEVEL",
	"CatalogFile":  "CATALOG_FILE",
	"MetricsToken": "METRICS_TOKEN",
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := envNames[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		msgs = append(msgs, fmt.Sprintf("%s: failed %q check (value %q)", name, fe.Tag(), fe.Value()))
	}
	return errors.New("invalid config: " + strings.Join(msgs, "; "))
}

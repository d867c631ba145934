package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays the GOPHAUTH_* environment variables named in the Config
// tags. Unset variables leave the field untouched; durations use Go syntax.
func parseEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays variables named by the env tags on Config. Unset
// variables leave the field untouched.
func parseEnv(config *Config) error {
	return env.Parse(config)
}

package config

import (
	"fmt"
	"os"
	"strings"

	"cloudeng.io/errors"
	"github.com/joho/godotenv"
)

const (
	// EnvPrefix is prepended to the upper-cased config key to form the
	// name of its environment variable, e.g. PRAYER_TIMES_LATITUDE.
	EnvPrefix = "PRAYER_TIMES_"

	// EnvFileVar names an alternative .env file. When unset, ./.env is
	// read if it exists.
	EnvFileVar = "PRAYER_TIMES_ENV_FILE"

	defaultEnvFile = ".env"
)

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// Environ collects the config overrides visible to the process. Values from
// the .env file are read first and the real environment wins over them.
// The .env file is parsed without modifying the process environment.
func Environ() (map[string]string, error) {
	env := map[string]string{}

	path := os.Getenv(EnvFileVar)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	fileVars, err := godotenv.Read(path)
	switch {
	case err == nil:
		for k, v := range fileVars {
			if strings.HasPrefix(k, EnvPrefix) {
				env[k] = v
			}
		}
	case explicit || !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	for _, key := range ValidKeys {
		name := EnvName(key)
		if v, ok := os.LookupEnv(name); ok {
			env[name] = v
		}
	}
	return env, nil
}

// ApplyEnv sets every key that has an override in env. All invalid values
// are reported together; valid ones are still applied.
func (c *Config) ApplyEnv(env map[string]string) error {
	var errs errors.M
	for _, key := range ValidKeys {
		v, ok := env[EnvName(key)]
		if !ok || v == "" {
			continue
		}
		if err := c.Set(key, v); err != nil {
			errs.Append(fmt.Errorf("%s: %w", EnvName(key), err))
		}
	}
	return errs.Err()
}

// Validate checks every value that is set, as `config set` would, and
// reports all problems at once. It catches hand-edited config files.
func (c *Config) Validate() error {
	var errs errors.M
	for _, key := range ValidKeys {
		v, err := c.Get(key)
		if err != nil {
			errs.Append(err)
			continue
		}
		if v == "" {
			continue
		}
		var probe Config
		errs.Append(probe.Set(key, v))
	}
	return errs.Err()
}

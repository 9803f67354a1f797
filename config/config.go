// Package config loads compiler settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ossrs/go-oryx-lib/errors"
)

const (
	EnvMatching       = "SFC_MATCHING"
	EnvNoColor        = "SFC_NO_COLOR"
	EnvSampleBankRoot = "SFC_SAMPLEBANK_ROOT"
)

// DefaultEnvFile is loaded from the working directory when present and no
// file is given explicitly.
const DefaultEnvFile = ".env"

type Config struct {
	// Matching keeps the compatibility quirks needed to reproduce the
	// historical binary layout. It is on unless SFC_MATCHING says otherwise.
	Matching bool
	NoColor  bool
	// SampleBankRoot is prepended to relative sample bank paths.
	SampleBankRoot string
}

// Load reads envFile into the process environment, without overriding
// variables that are already set, and builds the configuration from it. An
// empty envFile loads DefaultEnvFile if it exists.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "load %v", envFile)
		}
	} else if _, err := os.Stat(DefaultEnvFile); err == nil {
		if err := godotenv.Load(DefaultEnvFile); err != nil {
			return nil, errors.Wrapf(err, "load %v", DefaultEnvFile)
		}
	}

	return FromEnv()
}

func FromEnv() (*Config, error) {
	var conf Config
	var err error

	if conf.Matching, err = envBool(EnvMatching, true); err != nil {
		return nil, err
	}

	if conf.NoColor, err = envBool(EnvNoColor, false); err != nil {
		return nil, err
	}

	conf.SampleBankRoot = os.Getenv(EnvSampleBankRoot)

	return &conf, nil
}

func envBool(key string, fallback bool) (bool, error) {
	var value = strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Wrapf(err, "parse %v=%v", key, value)
	}

	return parsed, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

type Config struct {
	// Dataset
	DataPath      string
	DataDelimiter string
	DataEncoding  string

	// Training
	TestFraction    float64
	Seed            int64
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int
	MinImpurity     float64
	NJobs           int

	// Logging
	LogLevel  string
	LogFormat string

	// env values that could not be parsed
	malformed []string
}

// Load reads an optional .env file and then the environment.
func Load(envFiles ...string) *Config {
	_ = godotenv.Load(envFiles...)

	c := &Config{
		DataPath:      getEnv("HOUSE_DATA_PATH", "Taipei_house.csv"),
		DataDelimiter: getEnv("HOUSE_DATA_DELIMITER", ","),
		DataEncoding:  getEnv("HOUSE_DATA_ENCODING", "utf-8"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "tint"),
	}
	c.TestFraction = c.getEnvFloat("HOUSE_TEST_FRACTION", 0.2)
	c.Seed = int64(c.getEnvInt("HOUSE_SEED", 0))
	c.NEstimators = c.getEnvInt("HOUSE_N_ESTIMATORS", 100)
	c.MaxDepth = c.getEnvInt("HOUSE_MAX_DEPTH", 0)
	c.MinSamplesSplit = c.getEnvInt("HOUSE_MIN_SAMPLES_SPLIT", 2)
	c.MinSamplesLeaf = c.getEnvInt("HOUSE_MIN_SAMPLES_LEAF", 1)
	c.MaxFeatures = c.getEnvInt("HOUSE_MAX_FEATURES", 0)
	c.MinImpurity = c.getEnvFloat("HOUSE_MIN_IMPURITY_DECREASE", 0)
	c.NJobs = c.getEnvInt("HOUSE_N_JOBS", 0)
	return c
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	errors := append([]string(nil), c.malformed...)

	if c.DataPath == "" {
		errors = append(errors, "data path cannot be empty")
	}
	if utf8.RuneCountInString(c.DataDelimiter) != 1 {
		errors = append(errors, fmt.Sprintf("invalid delimiter %q: must be a single character", c.DataDelimiter))
	}
	switch strings.ToLower(c.DataEncoding) {
	case "utf-8", "utf8", "big5":
	default:
		errors = append(errors, fmt.Sprintf("invalid data encoding '%s': must be one of [utf-8 big5]", c.DataEncoding))
	}

	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		errors = append(errors, fmt.Sprintf("invalid test fraction %v: must be between 0 and 1 exclusive", c.TestFraction))
	}
	if c.NEstimators < 1 {
		errors = append(errors, fmt.Sprintf("invalid number of trees %d: must be at least 1", c.NEstimators))
	}
	if c.MaxDepth < 0 {
		errors = append(errors, fmt.Sprintf("invalid max depth %d: must be 0 (unlimited) or positive", c.MaxDepth))
	}
	if c.MinSamplesSplit < 2 {
		errors = append(errors, fmt.Sprintf("invalid min samples split %d: must be at least 2", c.MinSamplesSplit))
	}
	if c.MinSamplesLeaf < 1 {
		errors = append(errors, fmt.Sprintf("invalid min samples leaf %d: must be at least 1", c.MinSamplesLeaf))
	}
	if c.MaxFeatures < 0 {
		errors = append(errors, fmt.Sprintf("invalid max features %d: must be 0 (all) or positive", c.MaxFeatures))
	}
	if c.MinImpurity < 0 {
		errors = append(errors, fmt.Sprintf("invalid min impurity decrease %v: must not be negative", c.MinImpurity))
	}
	if c.NJobs < 0 {
		errors = append(errors, fmt.Sprintf("invalid job count %d: must be 0 (all cores) or positive", c.NJobs))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}
	switch c.LogFormat {
	case "tint", "json", "text":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of [tint json text]", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// Delimiter returns the configured delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.DataDelimiter)
	return r
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to defaultValue when key is unset. A value that does
// not parse is recorded and reported by Validate.
func (c *Config) getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		c.malformed = append(c.malformed, fmt.Sprintf("invalid %s '%s': not an integer", key, value))
		return defaultValue
	}
	return i
}

func (c *Config) getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		c.malformed = append(c.malformed, fmt.Sprintf("invalid %s '%s': not a number", key, value))
		return defaultValue
	}
	return f
}

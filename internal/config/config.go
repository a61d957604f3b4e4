package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/amosWeiskopf/wordcrawl/pkg/utils"
)

// Config holds all application configuration
type Config struct {
	StartPages             []string `mapstructure:"startPages"`
	IgnoredURLs            []string `mapstructure:"ignoredUrls"`
	IgnoredWords           []string `mapstructure:"ignoredWords"`
	Parallelism            int      `mapstructure:"parallelism"`
	ImplementationOverride string   `mapstructure:"implementationOverride"`
	MaxDepth               int      `mapstructure:"maxDepth"`
	TimeoutSeconds         int      `mapstructure:"timeoutSeconds"`
	PopularWordCount       int      `mapstructure:"popularWordCount"`
	ProfileOutputPath      string   `mapstructure:"profileOutputPath"`
	ResultPath             string   `mapstructure:"resultPath"`
	ResultFormat           string   `mapstructure:"resultFormat"`

	// Page fetching configuration
	Fetch FetchConfig `mapstructure:"fetch"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// FetchConfig holds page source configuration
type FetchConfig struct {
	UserAgent           string  `mapstructure:"userAgent"`
	ParserTimeoutMillis int     `mapstructure:"parserTimeoutMillis"`
	RequestsPerSecond   float64 `mapstructure:"requestsPerSecond"`
	RespectRobotsTxt    bool    `mapstructure:"respectRobotsTxt"`
	MainContentOnly     bool    `mapstructure:"mainContentOnly"`
	MaxBodyBytes        int64   `mapstructure:"maxBodyBytes"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // "json" or "console"
	OutputPath string `mapstructure:"outputPath"`
}

var (
	implementations = map[string]bool{"": true, "parallel": true, "sequential": true}
	resultFormats   = map[string]bool{"json": true, "markdown": true, "html": true}
)

// Load reads the configuration file at path. Environment variables prefixed
// with WORDCRAWL_ override file values, e.g. WORDCRAWL_MAXDEPTH or
// WORDCRAWL_LOGGING_LEVEL.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	setDefaults(v)
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("startPages", []string{})
	v.SetDefault("ignoredUrls", []string{})
	v.SetDefault("ignoredWords", []string{})
	v.SetDefault("parallelism", runtime.NumCPU())
	v.SetDefault("implementationOverride", "")
	v.SetDefault("maxDepth", 0)
	v.SetDefault("timeoutSeconds", 1)
	v.SetDefault("popularWordCount", 0)
	v.SetDefault("profileOutputPath", "")
	v.SetDefault("resultPath", "")
	v.SetDefault("resultFormat", "json")

	// Fetch defaults
	v.SetDefault("fetch.userAgent", "wordcrawl/1.0")
	v.SetDefault("fetch.parserTimeoutMillis", 0)
	v.SetDefault("fetch.requestsPerSecond", 0)
	v.SetDefault("fetch.respectRobotsTxt", false)
	v.SetDefault("fetch.mainContentOnly", false)
	v.SetDefault("fetch.maxBodyBytes", 10*1024*1024)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputPath", "stderr")
}

// bindEnvVars binds environment variables
func bindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("WORDCRAWL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxDepth, c.MaxDepth)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTimeout, c.TimeoutSeconds)
	}
	if c.PopularWordCount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPopularWordCount, c.PopularWordCount)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidParallelism, c.Parallelism)
	}
	if !implementations[c.ImplementationOverride] {
		return fmt.Errorf("%w: %q", ErrUnknownImplementation, c.ImplementationOverride)
	}
	if !resultFormats[c.ResultFormat] {
		return fmt.Errorf("%w: %q", ErrUnknownResultFormat, c.ResultFormat)
	}
	if c.Fetch.ParserTimeoutMillis < 0 || c.Fetch.RequestsPerSecond < 0 || c.Fetch.MaxBodyBytes < 0 {
		return ErrInvalidFetchSettings
	}
	if _, err := c.IgnoredURLPatterns(); err != nil {
		return err
	}
	if _, err := c.IgnoredWordPatterns(); err != nil {
		return err
	}
	return nil
}

// Timeout is the crawl budget
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ParserTimeout is the per-page fetch budget; zero means none
func (c *Config) ParserTimeout() time.Duration {
	return time.Duration(c.Fetch.ParserTimeoutMillis) * time.Millisecond
}

// IgnoredURLPatterns compiles ignoredUrls. Each pattern must match the whole URL.
func (c *Config) IgnoredURLPatterns() ([]*regexp.Regexp, error) {
	res, err := utils.CompileFullMatch(c.IgnoredURLs)
	if err != nil {
		return nil, fmt.Errorf("%w in ignoredUrls: %v", ErrInvalidPattern, err)
	}
	return res, nil
}

// IgnoredWordPatterns compiles ignoredWords. Each pattern must match the whole word.
func (c *Config) IgnoredWordPatterns() ([]*regexp.Regexp, error) {
	res, err := utils.CompileFullMatch(c.IgnoredWords)
	if err != nil {
		return nil, fmt.Errorf("%w in ignoredWords: %v", ErrInvalidPattern, err)
	}
	return res, nil
}

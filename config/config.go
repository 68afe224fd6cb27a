package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultRemoteBucket   = "opentransit-data"
	defaultRemoteEndpoint = ""
	defaultVersion        = "v1b"
	defaultCacheDir       = "data"
	defaultMemoryCache    = true
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultLogFileEnabled = false
	defaultLogDirectory   = "log"
	defaultLogFilename    = "waitstats.log"
	defaultLogMaxSizeMB   = 100
	defaultLogMaxBackups  = 3
	defaultLogMaxAgeDays  = 7

	envPrefix = "WAITSTATS"
)

var (
	ErrReadingConfigFile   = errors.New("failed to read config file")
	ErrUnmarshallingConfig = errors.New("failed to unmarshal config")
	ErrEmptyRemoteBucket   = errors.New("remote.bucket must not be empty")
	ErrEmptyCacheDir       = errors.New("cache.directory must not be empty")
)

type Config struct {
	Remote RemoteConfig `mapstructure:"remote"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Log    LogConfig    `mapstructure:"log"`
}

type RemoteConfig struct {
	// Endpoint overrides the bucket-derived URL when set; otherwise
	// the default S3 website endpoint for Bucket is used.
	Endpoint string `mapstructure:"endpoint"`
	Bucket   string `mapstructure:"bucket"`
	Version  string `mapstructure:"version"`
}

// URL returns the base URL blobs are fetched from.
func (r RemoteConfig) URL() string {
	if r.Endpoint != "" {
		return r.Endpoint
	}
	return fmt.Sprintf("http://%s.s3.amazonaws.com", r.Bucket)
}

type CacheConfig struct {
	Directory     string `mapstructure:"directory"`
	MemoryEnabled bool   `mapstructure:"memoryEnabled"`
}

type LogConfig struct {
	Level              string `mapstructure:"level"`
	Format             string `mapstructure:"format"`
	FileLoggingEnabled bool   `mapstructure:"fileLoggingEnabled"`
	Directory          string `mapstructure:"directory"`
	Filename           string `mapstructure:"filename"`
	MaxSize            int    `mapstructure:"maxSize"`
	MaxBackups         int    `mapstructure:"maxBackups"`
	MaxAge             int    `mapstructure:"maxAge"`
	Compress           bool   `mapstructure:"compress"`
}

// Load reads configuration from an optional YAML file and WAITSTATS_*
// environment variables, applies defaults and validates.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	configureViper(v, configPath)
	setDefaults(v)

	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadingConfigFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshallingConfig, err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func configureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("remote.endpoint", defaultRemoteEndpoint)
	v.SetDefault("remote.bucket", defaultRemoteBucket)
	v.SetDefault("remote.version", defaultVersion)
	v.SetDefault("cache.directory", defaultCacheDir)
	v.SetDefault("cache.memoryEnabled", defaultMemoryCache)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("log.fileLoggingEnabled", defaultLogFileEnabled)
	v.SetDefault("log.directory", defaultLogDirectory)
	v.SetDefault("log.filename", defaultLogFilename)
	v.SetDefault("log.maxSize", defaultLogMaxSizeMB)
	v.SetDefault("log.maxBackups", defaultLogMaxBackups)
	v.SetDefault("log.maxAge", defaultLogMaxAgeDays)
}

func validateConfig(cfg *Config) error {
	if cfg.Remote.Endpoint == "" && cfg.Remote.Bucket == "" {
		return ErrEmptyRemoteBucket
	}
	if cfg.Cache.Directory == "" {
		return ErrEmptyCacheDir
	}
	return nil
}

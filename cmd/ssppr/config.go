package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vertex-lab/ssppr/pkg/models"
	"github.com/vertex-lab/ssppr/pkg/ppr"
	"github.com/vertex-lab/ssppr/pkg/utils/logger"
)

const (
	OutputDisplay = "display"
	OutputSave    = "save"
	OutputNone    = "none"

	CacheNone  = "none"
	CacheRedis = "redis"
)

// The configuration parameters of a run. They are read, in decreasing priority, from
// the flags, from the SSPPR_* environment variables (optionally set in a .env file) and from the defaults.
type Config struct {
	Logs         string        `mapstructure:"logs"`
	LogLevel     string        `mapstructure:"log_level"`
	RedisAddress string        `mapstructure:"redis_address"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`

	ppr.Params `mapstructure:",squash"`
	Seed       uint64 `mapstructure:"seed"`

	Output    string `mapstructure:"output"`
	SavePath  string `mapstructure:"save_path"`
	Top       int    `mapstructure:"top"`
	Report    string `mapstructure:"report"`
	Symmetric bool   `mapstructure:"symmetric"`
	FromRedis bool   `mapstructure:"from_redis"`
	Cache     string `mapstructure:"cache"`
	Metrics   string `mapstructure:"metrics"`
}

func (c *Config) Print() {
	fmt.Println("System:")
	fmt.Printf("  Logs: %q\n", c.Logs)
	fmt.Printf("  LogLevel: %s\n", c.LogLevel)
	fmt.Printf("  RedisAddress: %s\n", c.RedisAddress)
	fmt.Printf("  CacheTTL: %v\n", c.CacheTTL)
	fmt.Println("Estimation:")
	fmt.Printf("  Alpha: %v\n", c.Alpha)
	fmt.Printf("  Eps: %v\n", c.Eps)
	fmt.Printf("  Delta: %v\n", c.Delta)
	fmt.Printf("  Pf: %v\n", c.Pf)
	fmt.Printf("  Rmax: %v\n", c.Rmax)
	fmt.Printf("  RWNum: %d\n", c.RWNum)
	fmt.Printf("  PiNum: %d\n", c.PiNum)
	fmt.Printf("  SampleSize: %d\n", c.SampleSize)
	fmt.Printf("  BatchSize: %d\n", c.BatchSize)
	fmt.Printf("  Seed: %d\n", c.Seed)
	fmt.Println("Output:")
	fmt.Printf("  Output: %s\n", c.Output)
	fmt.Printf("  SavePath: %q\n", c.SavePath)
	fmt.Printf("  Top: %d\n", c.Top)
	fmt.Printf("  Report: %q\n", c.Report)
	fmt.Printf("  Symmetric: %t\n", c.Symmetric)
	fmt.Printf("  FromRedis: %t\n", c.FromRedis)
	fmt.Printf("  Cache: %s\n", c.Cache)
	fmt.Printf("  Metrics: %q\n", c.Metrics)
}

// Validate() returns an error that lists every invalid setting of the run.
// The estimation params are validated later, once the graph size is known.
func (c *Config) Validate() error {
	var err error
	switch c.Output {
	case OutputDisplay, OutputNone:
	case OutputSave:
		if c.SavePath == "" {
			err = multierror.Append(err, fmt.Errorf("%w: output %q requires a save path", models.ErrInvalidArgument, OutputSave))
		}
	default:
		err = multierror.Append(err, fmt.Errorf("%w: unsupported output %q", models.ErrInvalidArgument, c.Output))
	}

	switch c.Cache {
	case CacheNone, CacheRedis:
	default:
		err = multierror.Append(err, fmt.Errorf("%w: unsupported cache %q", models.ErrInvalidArgument, c.Cache))
	}

	if _, levelErr := logger.ParseLevel(c.LogLevel); levelErr != nil {
		err = multierror.Append(err, fmt.Errorf("%w: %v", models.ErrInvalidArgument, levelErr))
	}

	if c.Top < 0 {
		err = multierror.Append(err, fmt.Errorf("%w: top must be non-negative, got %d", models.ErrInvalidArgument, c.Top))
	}

	if c.CacheTTL < 0 {
		err = multierror.Append(err, fmt.Errorf("%w: cache_ttl must be non-negative, got %v", models.ErrInvalidArgument, c.CacheTTL))
	}

	return err
}

// Logger() returns the logger of the config, and the log file to close (if any).
func (c *Config) Logger() (*logger.Aggregate, *os.File, error) {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return logger.Init(c.Logs, level)
}

// setDefaults() sets the defaults of the settings that are not flags.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logs", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("redis_address", "localhost:6379")
	v.SetDefault("cache_ttl", 24*time.Hour)
	v.SetDefault("output", OutputDisplay)
	v.SetDefault("cache", CacheNone)
}

// LoadConfig() loads the .env file (if any), then reads the settings of cmd from its flags,
// the environment and the defaults, and parses them into a config struct.
func LoadConfig(cmd *cobra.Command) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load the .env file: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SSPPR")
	v.AutomaticEnv()
	setDefaults(v)

	var err error
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		// flags are dash-separated, while the config keys (and env variables) use underscores
		key := strings.ReplaceAll(flag.Name, "-", "_")
		if bindErr := v.BindPFlag(key, flag); bindErr != nil {
			err = multierror.Append(err, bindErr)
		}
	})

	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse the config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

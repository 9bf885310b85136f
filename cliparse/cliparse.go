package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	DatabaseURL  string
	DatabaseType string
	Member       string
	Output       string
	Retries      int
	Verbose      bool

	// Args holds the subcommand and its arguments.
	Args []string
}

// ParseFlags parses global flags, loads the env file, and fills anything
// still unset from the environment.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("decide", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres, redis, or memory)")
	fs.StringVar(&cfg.Member, "m", "", "Acting member id")
	fs.StringVar(&cfg.Output, "o", "", "Output format (text or json)")
	fs.IntVar(&cfg.Retries, "retries", -1, "Retries on write contention")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	fs.StringVar(&envFile, "env", ".env", "Env file to load")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()

	// Existing environment variables win over the file.
	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	switch cfg.DatabaseType {
	case "sqlite", "postgres", "redis", "memory":
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case "sqlite":
			cfg.DatabaseURL = "decide.db" // default
		case "redis":
			cfg.DatabaseURL = "redis://localhost:6379/0"
		case "postgres":
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	}

	if cfg.Member == "" {
		cfg.Member = os.Getenv("DECIDE_MEMBER")
	}

	if cfg.Output == "" {
		cfg.Output = os.Getenv("DECIDE_OUTPUT")
		if cfg.Output == "" {
			cfg.Output = OutputText
		}
	}
	if cfg.Output != OutputText && cfg.Output != OutputJSON {
		return Config{}, fmt.Errorf("unsupported output format %q", cfg.Output)
	}

	if cfg.Retries < 0 {
		if retriesStr := os.Getenv("DECIDE_RETRIES"); retriesStr != "" {
			retries, err := strconv.Atoi(retriesStr)
			if err != nil || retries < 0 {
				return Config{}, errors.New("invalid DECIDE_RETRIES env variable")
			}
			cfg.Retries = retries
		} else {
			cfg.Retries = 3
		}
	}

	return cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

// Package config parses the finder configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/riposo/finder/pkg/params"
	"gopkg.in/yaml.v3"
)

// Config configures the finder.
type Config struct {
	Database struct {
		// URL is the database URL, e.g. postgres://localhost/app.
		URL string `yaml:"url"`
	} `yaml:"database"`

	// Dialect is used for compilation, when no database is connected.
	Dialect string `yaml:"dialect"`
	// Entities is the path of the YAML entity definitions file.
	Entities string `yaml:"entities"`
	// Where configures the treatment of null and absent where values.
	Where params.ValuePolicy `yaml:"where"`

	Query struct {
		Log     bool          `yaml:"log"`
		Timeout time.Duration `yaml:"timeout"`
		// MaxTake caps the number of records returned via HTTP.
		MaxTake int `yaml:"max_take" split_words:"true"`
	} `yaml:"query"`

	Batch struct {
		MaxRequests int `yaml:"max_requests" split_words:"true"`
	} `yaml:"batch"`

	Auth struct {
		// Users maps user names to password hashes. Authentication is
		// disabled when blank.
		Users map[string]string `yaml:"users"`
	} `yaml:"auth"`

	Server struct {
		Address         string        `yaml:"address"`
		ReadTimeout     time.Duration `yaml:"read_timeout" split_words:"true"`
		WriteTimeout    time.Duration `yaml:"write_timeout" split_words:"true"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`

		// RequestID is the request ID generator, either nanoid or uuid.
		// Request IDs are disabled when blank.
		RequestID string `yaml:"request_id" split_words:"true"`
	} `yaml:"server"`

	CORS struct {
		Origins []string      `yaml:"origins"`
		MaxAge  time.Duration `yaml:"max_age" split_words:"true"`
	} `yaml:"cors"`
}

func defaults() *Config {
	c := new(Config)
	c.Database.URL = "sqlite3::memory:"
	c.Dialect = "postgres"
	c.Entities = "entities.yml"
	c.Query.Timeout = 30 * time.Second
	c.Query.MaxTake = 10_000
	c.Batch.MaxRequests = 25
	c.Server.Address = ":8888"
	c.Server.RequestID = "nanoid"
	c.Server.ReadTimeout = 60 * time.Second
	c.Server.WriteTimeout = 60 * time.Second
	c.Server.ShutdownTimeout = 5 * time.Second
	c.CORS.Origins = []string{"*"}
	c.CORS.MaxAge = time.Hour
	return c
}

// Parse parses the config from file and environment. Environment
// variables use the FINDER_ prefix and take precedence.
func Parse(configFile string) (*Config, error) {
	c := defaults()

	if err := parseYAML(configFile, c); err != nil {
		return nil, err
	}
	if err := envconfig.Process("FINDER", c); err != nil {
		return nil, err
	}
	return c, nil
}

func parseYAML(fname string, v interface{}) error {
	if fname == "" {
		return nil
	}

	f, err := os.Open(fname)
	if err != nil {
		return fmt.Errorf("unable to read config file %q: %w", fname, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("unable to parse config file %q: %w", fname, err)
	}
	return nil
}

// Package configuration loads the YAML configuration of the adddefault command.
package configuration

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/url"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/marianatek/adddefault/defaultvalue"
	"github.com/marianatek/adddefault/migrations"
	"github.com/marianatek/adddefault/parse"
	"gopkg.in/yaml.v2"
)

// PasswordEnv overrides Database.Password when set.
const PasswordEnv = "ADDDEFAULT_DATABASE_PASSWORD"

// Configuration is the top-level configuration.
type Configuration struct {
	// Vendor is the connection vendor string, e.g. "postgresql".
	Vendor string `yaml:"vendor"`
	// LowercaseBooleans renders boolean defaults as 'true'/'false' instead of 'True'/'False'.
	LowercaseBooleans bool `yaml:"lowercasebooleans"`

	Log        Log               `yaml:"log"`
	Metrics    Metrics           `yaml:"metrics"`
	Database   Database          `yaml:"database"`
	Migrations Migrations        `yaml:"migrations"`
	Models     map[string]string `yaml:"models"`
	Plans      []Plan            `yaml:"plans"`
}

// Log configures logging.
type Log struct {
	Level     string `yaml:"level"`
	Formatter string `yaml:"formatter"`
}

// Metrics configures metrics export.
type Metrics struct {
	// PushGateway is the base URL of a Prometheus pushgateway that migrate up/down push to when they
	// finish. Empty disables pushing.
	PushGateway string `yaml:"pushgateway"`
}

// Database configures the PostgreSQL connection.
type Database struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	DBName         string        `yaml:"dbname"`
	SSLMode        string        `yaml:"sslmode"`
	ConnectTimeout time.Duration `yaml:"connecttimeout"`
	Alias          string        `yaml:"alias"`
	Pool           Pool          `yaml:"pool"`
}

// Pool configures the connection pool.
type Pool struct {
	MaxIdle     int           `yaml:"maxidle"`
	MaxOpen     int           `yaml:"maxopen"`
	MaxLifetime time.Duration `yaml:"maxlifetime"`
}

// Migrations configures sql-migrate bookkeeping.
type Migrations struct {
	Table string `yaml:"table"`
	// Aliases restricts operations to the listed database aliases. Empty allows every alias.
	Aliases []string `yaml:"aliases"`
}

// Plan is a group of operations applied as one migration.
type Plan struct {
	ID             string      `yaml:"id"`
	PostDeployment bool        `yaml:"postdeployment"`
	Operations     []Operation `yaml:"operations"`
}

// Operation is a single default value operation.
type Operation struct {
	Model string      `yaml:"model"`
	Name  string      `yaml:"name"`
	Value interface{} `yaml:"value"`
	// Type selects how Value is interpreted. Empty keeps the YAML type.
	Type string `yaml:"type"`
}

// Parse reads, defaults and validates a configuration.
func Parse(r io.Reader) (*Configuration, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	config := new(Configuration)
	if err := yaml.UnmarshalStrict(b, config); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	config.applyDefaults()
	if v, ok := os.LookupEnv(PasswordEnv); ok {
		config.Database.Password = v
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ParseFile parses the configuration file at path.
func ParseFile(path string) (*Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening configuration: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

func (c *Configuration) applyDefaults() {
	if c.Vendor == "" {
		c.Vendor = "postgresql"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Formatter == "" {
		c.Log.Formatter = "text"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "prefer"
	}
	if c.Database.Alias == "" {
		c.Database.Alias = "default"
	}
	if c.Migrations.Table == "" {
		c.Migrations.Table = "adddefault_migrations"
	}
}

// Validate reports every problem found in c.
func (c *Configuration) Validate() error {
	var result *multierror.Error

	if c.Log.Formatter != "text" && c.Log.Formatter != "json" {
		result = multierror.Append(result, fmt.Errorf("log.formatter: unsupported formatter %q", c.Log.Formatter))
	}

	if gw := c.Metrics.PushGateway; gw != "" {
		if u, err := url.Parse(gw); err != nil || u.Scheme == "" || u.Host == "" {
			result = multierror.Append(result, fmt.Errorf("metrics.pushgateway: invalid URL %q", gw))
		}
	}

	seen := make(map[string]bool, len(c.Plans))
	for i, p := range c.Plans {
		if p.ID == "" {
			result = multierror.Append(result, fmt.Errorf("plans[%d]: id is required", i))
		} else if seen[p.ID] {
			result = multierror.Append(result, fmt.Errorf("plans[%d]: duplicate id %q", i, p.ID))
		}
		seen[p.ID] = true

		for j, op := range p.Operations {
			prefix := fmt.Sprintf("plans[%d].operations[%d]", i, j)
			if op.Model == "" {
				result = multierror.Append(result, fmt.Errorf("%s: model is required", prefix))
			} else if _, ok := c.Models[op.Model]; !ok {
				result = multierror.Append(result, fmt.Errorf("%s: model %q has no table in models", prefix, op.Model))
			}
			if op.Name == "" {
				result = multierror.Append(result, fmt.Errorf("%s: name is required", prefix))
			}
			if _, err := parse.Value(prefix+".value", op.Value, op.Type); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", prefix, err))
			}
		}
	}

	return result.ErrorOrNil()
}

// State returns the project state described by the models mapping.
func (c *Configuration) State() migrations.StaticState {
	return migrations.StaticState{Tables: c.Models, Aliases: c.Migrations.Aliases}
}

// BuildPlans converts the configured plans into migration plans, sorted by ID.
func (c *Configuration) BuildPlans() ([]*migrations.Plan, error) {
	renderer := defaultvalue.Renderer{LowercaseBooleans: c.LowercaseBooleans}

	plans := make([]*migrations.Plan, 0, len(c.Plans))
	for _, p := range c.Plans {
		plan := &migrations.Plan{ID: p.ID, PostDeployment: p.PostDeployment}
		for _, op := range p.Operations {
			v, err := parse.Value(op.Name, op.Value, op.Type)
			if err != nil {
				return nil, fmt.Errorf("plan %s: %w", p.ID, err)
			}
			o := migrations.NewAddDefaultValue(op.Model, op.Name, v)
			o.Renderer = renderer
			plan.Operations = append(plan.Operations, o)
		}
		plans = append(plans, plan)
	}
	migrations.SortPlans(plans)

	return plans, nil
}

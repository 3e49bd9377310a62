package typesense

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type fileNode struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Path     string `mapstructure:"path"`
	Protocol string `mapstructure:"protocol"`
}

type fileConfig struct {
	APIKey                     string            `mapstructure:"api_key"`
	Nodes                      []fileNode        `mapstructure:"nodes"`
	NearestNode                *fileNode         `mapstructure:"nearest_node"`
	ConnectionTimeoutSeconds   float64           `mapstructure:"connection_timeout_seconds"`
	NumRetries                 int               `mapstructure:"num_retries"`
	RetryIntervalSeconds       float64           `mapstructure:"retry_interval_seconds"`
	HealthcheckIntervalSeconds int               `mapstructure:"healthcheck_interval_seconds"`
	AdditionalHeaders          map[string]string `mapstructure:"additional_headers"`
}

// LoadConfig reads a client configuration from a YAML, JSON or TOML file.
// Scalar settings can be overridden through TYPESENSE_* environment
// variables, e.g. TYPESENSE_API_KEY.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("typesense")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register scalar keys so env-only overrides are visible to Unmarshal.
	v.SetDefault("api_key", "")
	v.SetDefault("connection_timeout_seconds", 0)
	v.SetDefault("num_retries", 0)
	v.SetDefault("retry_interval_seconds", 0)
	v.SetDefault("healthcheck_interval_seconds", 0)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%w: reading %q: %s", ErrConfig, path, err)
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("%w: parsing %q: %s", ErrConfig, path, err)
	}

	cfg := Config{
		APIKey:              raw.APIKey,
		ConnectionTimeout:   time.Duration(raw.ConnectionTimeoutSeconds * float64(time.Second)),
		NumRetries:          raw.NumRetries,
		RetryInterval:       time.Duration(raw.RetryIntervalSeconds * float64(time.Second)),
		HealthcheckInterval: time.Duration(raw.HealthcheckIntervalSeconds) * time.Second,
		AdditionalHeaders:   raw.AdditionalHeaders,
	}
	for _, fn := range raw.Nodes {
		node, err := fn.toNode()
		if err != nil {
			return Config{}, err
		}
		cfg.Nodes = append(cfg.Nodes, node)
	}
	if raw.NearestNode != nil {
		node, err := raw.NearestNode.toNode()
		if err != nil {
			return Config{}, err
		}
		cfg.NearestNode = &node
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (fn fileNode) toNode() (Node, error) {
	if fn.URL != "" {
		return NodeFromURL(fn.URL)
	}
	node := Node{
		Host:     fn.Host,
		Port:     fn.Port,
		Path:     fn.Path,
		Protocol: fn.Protocol,
	}
	return node, node.validate()
}

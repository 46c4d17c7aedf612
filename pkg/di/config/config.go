package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BACKEND_FILE = "file"
	BACKEND_BOLT = "bolt"
)

type StoreConfig struct {
	Backend  string
	BoltPath string
}

type SearchConfig struct {
	DefaultThreshold float64
}

type APIConfig struct {
	Port    int
	Timeout time.Duration
}

type CacheConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

type Config struct {
	// root of every relative data & index path
	DataRoot string
	Store    StoreConfig
	Search   SearchConfig
	API      APIConfig
	Cache    CacheConfig
	Metrics  MetricsConfig
	Catalog  []catalog.Partition
}

type partitionConfig struct {
	Country string `mapstructure:"country"`
	Kind    string `mapstructure:"kind"`
	Data    string `mapstructure:"data"`
	Index   string `mapstructure:"index"`
}

// Path of the config file, empty for config.yaml in the working directory.
type Path string

// New reads config.yaml from the working directory if there is one.
func New() (*Config, error) {
	return Load("")
}

func FromPath(path Path) (*Config, error) {
	return Load(string(path))
}

// Load reads the config file at path (config.yaml in the working directory when path is empty),
// a .env file and the environment. environment variables win: cache.addr is CACHE_ADDR.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("data_root", ".")
	viper.SetDefault("store.backend", BACKEND_FILE)
	viper.SetDefault("store.bolt_path", "indexes/settlement_index.db")
	viper.SetDefault("search.default_threshold", 0.3)
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.addr", "localhost:6379")
	viper.SetDefault("cache.password", "")
	viper.SetDefault("cache.db", 0)
	viper.SetDefault("cache.ttl", "10m")
	viper.SetDefault("metrics.enabled", true)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		DataRoot: viper.GetString("data_root"),
		Store: StoreConfig{
			Backend:  viper.GetString("store.backend"),
			BoltPath: viper.GetString("store.bolt_path"),
		},
		Search: SearchConfig{
			DefaultThreshold: viper.GetFloat64("search.default_threshold"),
		},
		API: APIConfig{
			Port:    viper.GetInt("API_PORT"),
			Timeout: viper.GetDuration("API_TIMEOUT"),
		},
		Cache: CacheConfig{
			Enabled:  viper.GetBool("cache.enabled"),
			Addr:     viper.GetString("cache.addr"),
			Password: viper.GetString("cache.password"),
			DB:       viper.GetInt("cache.db"),
			TTL:      viper.GetDuration("cache.ttl"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("metrics.enabled"),
		},
	}

	var partitions []partitionConfig
	if err := viper.UnmarshalKey("catalog", &partitions); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	for _, p := range partitions {
		cfg.Catalog = append(cfg.Catalog, catalog.NewPartition(
			catalog.NewPartitionID(catalog.Country(p.Country), catalog.Kind(p.Kind)), p.Data, p.Index))
	}
	if len(cfg.Catalog) == 0 {
		cfg.Catalog = catalog.DefaultPartitions()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Store.Backend != BACKEND_FILE && c.Store.Backend != BACKEND_BOLT {
		return fmt.Errorf("store.backend must be %q or %q, got %q", BACKEND_FILE, BACKEND_BOLT, c.Store.Backend)
	}
	if c.Store.Backend == BACKEND_BOLT && c.Store.BoltPath == "" {
		return errors.New("store.bolt_path is required for the bolt backend")
	}
	if c.Search.DefaultThreshold < 0 || c.Search.DefaultThreshold > 1 {
		return fmt.Errorf("search.default_threshold must be within [0, 1], got %v", c.Search.DefaultThreshold)
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("invalid API_PORT %d", c.API.Port)
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return errors.New("cache.addr is required when the cache is enabled")
	}
	return nil
}

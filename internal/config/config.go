package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-yaml/yaml"

	"github.com/totegamma/iiifas/internal/domain"
)

const (
	StoreMemory     = "memory"
	StoreFilesystem = "filesystem"
	StoreRedis      = "redis"
	StoreMemcached  = "memcached"
	StorePostgres   = "postgres"
)

type Config struct {
	Collection         string `yaml:"collection"`
	Verb               string `yaml:"verb"`
	Actor              string `yaml:"actor"`
	Instrument         string `yaml:"instrument"`
	PageSize           int    `yaml:"pageSize"`
	CheckLastModified  bool   `yaml:"checkLastModified"`
	EventIDs           bool   `yaml:"eventIds"`
	ServiceBaseAddress string `yaml:"serviceBaseAddress"`
	Verbose            bool   `yaml:"verbose"`
	OutputFile         string `yaml:"outputFile"`

	Server Server `yaml:"server"`
	Store  Store  `yaml:"store"`
}

type Server struct {
	Listen               string  `yaml:"listen"`
	CacheTimeout         int     `yaml:"cacheTimeout"`         // seconds, 0 disables the page cache
	CacheRequests        bool    `yaml:"cacheRequests"`        // cache remote responses
	CacheRequestsTimeout int     `yaml:"cacheRequestsTimeout"` // seconds
	FetchTimeout         int     `yaml:"fetchTimeout"`         // seconds, collection download
	DereferenceTimeout   int     `yaml:"dereferenceTimeout"`   // seconds
	DereferenceRate      float64 `yaml:"dereferenceRate"`      // requests per second, 0 = unlimited
	EnableTrace          bool    `yaml:"enableTrace"`
	TraceEndpoint        string  `yaml:"traceEndpoint"`
}

type Store struct {
	Backend       string `yaml:"backend"` // memory, filesystem, redis, memcached, postgres
	Path          string `yaml:"path"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       *int   `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	PostgresDsn   string `yaml:"postgresDsn"`
	Prefix        string `yaml:"prefix"`
	TTL           int    `yaml:"ttl"` // seconds, 0 = no expiry
}

// RedisDatabase returns the configured redis database, 1 when unset.
func (s Store) RedisDatabase() int {
	if s.RedisDB == nil {
		return 1
	}
	return *s.RedisDB
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	config.applyDefaults()

	err = config.Validate()
	if err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Verb == "" {
		c.Verb = "Update"
	}
	if c.PageSize == 0 {
		c.PageSize = 25
	}
	if c.OutputFile == "" {
		c.OutputFile = "output.json"
	}
	if c.Server.Listen == "" {
		c.Server.Listen = ":8000"
	}
	if c.Server.CacheRequestsTimeout == 0 {
		c.Server.CacheRequestsTimeout = 600
	}
	if c.Server.FetchTimeout == 0 {
		c.Server.FetchTimeout = 120
	}
	if c.Server.DereferenceTimeout == 0 {
		c.Server.DereferenceTimeout = 3
	}
	if c.Store.Backend == "" {
		c.Store.Backend = StoreFilesystem
	}
	if c.Store.Path == "" {
		c.Store.Path = "./data"
	}
	if c.Store.RedisAddr == "" {
		c.Store.RedisAddr = "localhost:6379"
	}
	if c.Store.RedisDB == nil {
		db := 1
		c.Store.RedisDB = &db
	}
	if c.Store.MemcachedAddr == "" {
		c.Store.MemcachedAddr = "localhost:11211"
	}
}

func (c Config) Validate() error {
	if c.Collection == "" {
		return fmt.Errorf("collection is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("pageSize must be positive, got %d", c.PageSize)
	}
	if c.Store.TTL < 0 || c.Server.CacheTimeout < 0 || c.Server.FetchTimeout < 0 || c.Server.DereferenceTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	switch c.Store.Backend {
	case StoreMemory, StoreFilesystem, StoreRedis, StoreMemcached:
	case StorePostgres:
		if c.Store.PostgresDsn == "" {
			return fmt.Errorf("store.postgresDsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Server.EnableTrace && c.Server.TraceEndpoint == "" {
		return fmt.Errorf("server.traceEndpoint is required when tracing is enabled")
	}
	return nil
}

// Feed returns the engine configuration.
func (c Config) Feed() domain.FeedConfig {
	return domain.FeedConfig{
		CollectionURI:      c.Collection,
		Verb:               c.Verb,
		Actor:              c.Actor,
		Instrument:         c.Instrument,
		PageSize:           c.PageSize,
		CheckLastModified:  c.CheckLastModified,
		EventIDs:           c.EventIDs,
		EventTTL:           time.Duration(c.Store.TTL) * time.Second,
		ServiceBaseAddress: c.ServiceBaseAddress,
	}
}

// LocalRoot returns the site root used when no request is available to derive
// it from, as in offline export. serviceBaseAddress wins; otherwise the root
// points at the listen address, with unspecified hosts mapped to localhost.
func (c Config) LocalRoot() (string, error) {
	if c.ServiceBaseAddress != "" {
		return c.ServiceBaseAddress, nil
	}

	host, port, err := net.SplitHostPort(c.Server.Listen)
	if err != nil {
		return "", fmt.Errorf("cannot derive a service base from listen %q, set serviceBaseAddress: %w", c.Server.Listen, err)
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/", nil
}

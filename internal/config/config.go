package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"sync"
	"time"
)

var cfg *Config
var once sync.Once

// Config is the configuration for the application
type Config struct {
	Server
	Cache
	Duplicate
	Process
}

// Server is the configuration for the server
type Server struct {
	Port string `env:"PORT" envDefault:"8080"`
}

// Addr returns the address for the server
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%s", "0.0.0.0", s.Port)
}

// Cache is the configuration for the response caches
type Cache struct {
	MaxEntries string `env:"CACHE_MAX_ENTRIES" envDefault:"1000"`
	TTLMinutes string `env:"CACHE_TTL_MINUTES" envDefault:"30"`
}

// Capacity returns the maximum number of entries per cache
func (c Cache) Capacity() uint64 {
	v, err := strconv.ParseUint(c.MaxEntries, 10, 64)
	if err != nil {
		return 1000
	}
	return v
}

// TTL returns the expire-after-write duration for cache entries
func (c Cache) TTL() time.Duration {
	v, err := strconv.Atoi(c.TTLMinutes)
	if err != nil {
		return 30 * time.Minute
	}
	return time.Duration(v) * time.Minute
}

// Duplicate is the configuration for the duplicate detection policy
type Duplicate struct {
	WindowSeconds string `env:"DUPLICATE_WINDOW_SECONDS" envDefault:"10"`
}

// Window returns the duplicate detection window in seconds
func (d Duplicate) Window() int64 {
	v, err := strconv.ParseInt(d.WindowSeconds, 10, 64)
	if err != nil {
		return 10
	}
	return v
}

// Process is the configuration for background processes
type Process struct {
	StatsInterval string `env:"CACHE_STATS_INTERVAL" envDefault:"5"`
}

// Load loads the configuration from environment variables
func Load() *Config {
	once.Do(func() {
		cfg = &Config{}
		cfgType := reflect.TypeOf(*cfg)
		cfgValue := reflect.ValueOf(cfg).Elem()

		for i := 0; i < cfgType.NumField(); i++ {
			field := cfgType.Field(i)
			fieldValue := cfgValue.Field(i)
			for j := 0; j < field.Type.NumField(); j++ {
				subField := field.Type.Field(j)
				envVar := subField.Tag.Get("env")
				envDefault := subField.Tag.Get("envDefault")
				value := getEnv(envVar, envDefault)

				fieldValue.Field(j).SetString(value)
			}
		}
	})

	return cfg
}

// getEnv retrieves the value of the environment variable named by the key or returns the defaultValue if not set
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
	}
	return value
}

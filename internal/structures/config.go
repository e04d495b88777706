package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Size           int           `yaml:"size"`
	TTL            time.Duration `yaml:"ttl"`
	ReportInterval time.Duration `yaml:"reportInterval"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// UploadConfig bounds a single uploaded document, compressed or not.
type UploadConfig struct {
	MaxBytes int `yaml:"maxBytes" validate:"required|int|min:1"`
}

type DisplayConfig struct {
	Locale         string `yaml:"locale" validate:"required"`
	Timezone       string `yaml:"timezone"`
	DateLayout     string `yaml:"dateLayout" validate:"required"`
	DateTimeLayout string `yaml:"dateTimeLayout" validate:"required"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
	Upload    UploadConfig  `yaml:"upload"`
	Display   DisplayConfig `yaml:"display"`
}

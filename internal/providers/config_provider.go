package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"esv/internal/structures"
	"esv/internal/viewmodel"

	"github.com/spf13/viper"
)

const AppName = "EasyStatsVisualizer"

var envBindings = map[string]string{
	"logger.level":     "ESV_LOG_LEVEL",
	"webServer.port":   "ESV_PORT",
	"cache.enabled":    "ESV_CACHE_ENABLED",
	"cache.size":       "ESV_CACHE_SIZE",
	"upload.maxBytes":  "ESV_UPLOAD_MAX_BYTES",
	"metrics.enabled":  "ESV_METRICS_ENABLED",
	"display.locale":   "ESV_LOCALE",
	"display.timezone": "ESV_TIMEZONE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 128)
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.reportInterval", time.Minute)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("upload.maxBytes", 8<<20)
	v.SetDefault("display.locale", viewmodel.DefaultLocale)
	v.SetDefault("display.timezone", "UTC")
	v.SetDefault("display.dateLayout", viewmodel.DefaultDateLayout)
	v.SetDefault("display.dateTimeLayout", viewmodel.DefaultDateTimeLayout)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("unable to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if err := NewCnfValidator(&conf).Validate(); err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

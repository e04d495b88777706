package providers

import (
	"errors"
	"fmt"

	"esv/internal/structures"

	"github.com/gookit/validate"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks every section of the config against its struct tags.
func (c *CnfValidator) Validate() error {
	sections := []interface{}{
		&c.conf.WebServer,
		&c.conf.Logger,
		&c.conf.Upload,
		&c.conf.Display,
	}
	for _, section := range sections {
		v := validate.Struct(section)
		if !v.Validate() {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, v.Errors.One())
		}
	}
	if c.conf.Cache.Enabled && c.conf.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache ttl must not be negative", ErrInvalidConfig)
	}
	if c.conf.Cache.Enabled && c.conf.Cache.Size > 0 && CacheEntryLimit(c.conf.Cache.Size) < MinCacheEntryBytes {
		return fmt.Errorf("%w: cache size %dMB holds entries up to %d bytes, at least %dMB is required",
			ErrInvalidConfig, c.conf.Cache.Size, CacheEntryLimit(c.conf.Cache.Size), MinCacheSizeMB)
	}
	return nil
}

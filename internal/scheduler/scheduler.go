package scheduler

import (
	"sync"

	"esv/internal/providers"
	"esv/internal/structures"

	"github.com/roylee0704/gron"
)

type SchedulerInterface interface {
	Init()
	Stop()
	Report()
}

// Scheduler periodically reports dashboard cache occupancy to the app log.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	cache    providers.CacheProviderInterface
	cron     *gron.Cron
	opsMu    sync.Mutex
	reported int64
}

func (s *Scheduler) Init() {
	interval := s.config.Cache.ReportInterval
	if !s.config.Cache.Enabled || interval <= 0 {
		s.logger.Debugf(providers.TypeApp, "Cache reporting disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), s.Report)
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Reporting cache occupancy every %s", interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Report logs the cached dashboard count. Unchanged counts are logged at debug level.
func (s *Scheduler) Report() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	entries := s.cache.EntryCount()
	if entries == s.reported {
		s.logger.Debugf(providers.TypeApp, "Dashboard cache unchanged at %d entries", entries)
		return
	}
	s.reported = entries
	s.logger.Infof(providers.TypeApp, "Dashboard cache holds %d entries", entries)
}

func NewScheduler(config *structures.Config, logger providers.Logger, cache providers.CacheProviderInterface) SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		cache:  cache,
	}
}

package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"esv/internal/providers"
	"esv/internal/structures"
	"esv/internal/validation"
	"esv/internal/viewmodel"

	"github.com/cespare/xxhash/v2"
	"github.com/gabriel-vasile/mimetype"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const zstdMime = "application/zstd"

var (
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrCorruptFrame    = errors.New("corrupt zstd frame")
)

// Session is one loaded document and the dashboard derived from it.
type Session struct {
	ID        string               `json:"id"`
	FileName  string               `json:"fileName"`
	Size      int                  `json:"size"`
	Digest    string               `json:"digest"`
	LoadedAt  time.Time            `json:"loadedAt"`
	Cached    bool                 `json:"cached"`
	Dashboard *viewmodel.Dashboard `json:"dashboard"`
}

type DashboardServiceInterface interface {
	Load(name string, data []byte) (*Session, error)
	Check(data []byte) error
}

type DashboardService struct {
	conf       *structures.Config
	logger     providers.Logger
	cache      providers.CacheProviderInterface
	compressor providers.CompressorInterface
	metrics    providers.MetricsProviderInterface
	builder    *viewmodel.Builder
}

func NewDashboardService(conf *structures.Config, logger providers.Logger, cache providers.CacheProviderInterface, compressor providers.CompressorInterface, metrics providers.MetricsProviderInterface, builder *viewmodel.Builder) DashboardServiceInterface {
	return &DashboardService{
		conf:       conf,
		logger:     logger,
		cache:      cache,
		compressor: compressor,
		metrics:    metrics,
		builder:    builder,
	}
}

// Outcome classifies a Load or Check error for metrics and logs.
func Outcome(err error) string {
	var schemaErr *validation.Error
	switch {
	case err == nil:
		return providers.OutcomeAccepted
	case errors.Is(err, ErrPayloadTooLarge):
		return providers.OutcomeTooLarge
	case errors.As(err, &schemaErr):
		return providers.OutcomeSchemaError
	default:
		return providers.OutcomeParseError
	}
}

// Load validates data and builds its dashboard. Dashboards of documents seen
// before are served from the cache by content digest.
func (ds *DashboardService) Load(name string, data []byte) (*Session, error) {
	payload, err := ds.readDocument(data)
	if err != nil {
		ds.reject(name, len(data), err)
		return nil, err
	}

	digest := strconv.FormatUint(xxhash.Sum64(payload), 16)
	session := &Session{
		ID:       uuid.NewString(),
		FileName: name,
		Size:     len(payload),
		Digest:   digest,
		LoadedAt: time.Now().UTC(),
	}

	if dashboard, ok := ds.cached(digest); ok {
		session.Cached = true
		session.Dashboard = dashboard
		ds.accept(session)
		return session, nil
	}

	start := time.Now()
	export, err := validation.Parse(payload)
	if err != nil {
		ds.reject(name, len(payload), err)
		return nil, err
	}
	session.Dashboard = ds.builder.Build(export)
	ds.metrics.ObserveBuildDuration(time.Since(start))

	ds.store(digest, session.Dashboard)
	ds.accept(session)
	return session, nil
}

// Check runs the validation half of Load without building a dashboard.
func (ds *DashboardService) Check(data []byte) error {
	payload, err := ds.readDocument(data)
	if err == nil {
		_, err = validation.Parse(payload)
	}
	ds.metrics.IncUploads(Outcome(err))
	if err != nil {
		ds.logger.Infof(providers.TypeValidation, "check failed (%s): %s", Outcome(err), err)
	}
	return err
}

// readDocument enforces the size limit and inflates zstd input.
func (ds *DashboardService) readDocument(data []byte) ([]byte, error) {
	limit := ds.conf.Upload.MaxBytes
	if limit > 0 && len(data) > limit {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(data), limit)
	}
	if !mimetype.Detect(data).Is(zstdMime) {
		return data, nil
	}

	payload, err := ds.compressor.Decompress(data)
	switch {
	case errors.Is(err, providers.ErrDecompressedTooLarge):
		return nil, fmt.Errorf("%w: %w", ErrPayloadTooLarge, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
	}
	if limit > 0 && len(payload) > limit {
		return nil, fmt.Errorf("%w: %d bytes after decompression, limit %d", ErrPayloadTooLarge, len(payload), limit)
	}
	return payload, nil
}

func (ds *DashboardService) cached(digest string) (*viewmodel.Dashboard, bool) {
	blob, ok := ds.cache.Get(digest)
	if !ok {
		return nil, false
	}
	raw, err := ds.compressor.Decompress(blob)
	if err != nil {
		ds.logger.Warnf(providers.TypeApp, "dropping cached dashboard %s: %s", digest, err)
		return nil, false
	}
	var dashboard viewmodel.Dashboard
	if err := json.Unmarshal(raw, &dashboard); err != nil {
		ds.logger.Warnf(providers.TypeApp, "dropping cached dashboard %s: %s", digest, err)
		return nil, false
	}
	return &dashboard, true
}

func (ds *DashboardService) store(digest string, dashboard *viewmodel.Dashboard) {
	raw, err := json.Marshal(dashboard)
	if err != nil {
		ds.logger.Errorf(providers.TypeApp, "unable to encode dashboard %s: %s", digest, err)
		return
	}
	blob, err := ds.compressor.Compress(raw)
	if err != nil {
		ds.logger.Errorf(providers.TypeApp, "unable to compress dashboard %s: %s", digest, err)
		return
	}
	if err := ds.cache.Set(digest, blob); err != nil {
		ds.logger.Errorf(providers.TypeApp, "unable to cache dashboard %s: %s", digest, err)
	}
}

func (ds *DashboardService) accept(s *Session) {
	ds.metrics.IncUploads(providers.OutcomeAccepted)
	ds.metrics.ObserveUploadSize(s.Size)
	ds.logger.Infof(providers.TypePost, "loaded %s as session %s (%d bytes, digest %s, cached %t)", s.FileName, s.ID, s.Size, s.Digest, s.Cached)
}

func (ds *DashboardService) reject(name string, size int, err error) {
	outcome := Outcome(err)
	ds.metrics.IncUploads(outcome)
	ds.logger.Warnf(providers.TypeValidation, "rejected %s (%d bytes, %s): %s", name, size, outcome, err)
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"seogen/internal/catalog"
	"seogen/internal/domain"
	"seogen/internal/enrich"
	"seogen/internal/extract"
	"seogen/internal/port"
)

// LaneConfig holds the tunables of a lane.
type LaneConfig struct {
	// CompletedReset is how long a lane shows its completed state before going
	// back to idle. Zero keeps the completed state until the next batch or reset.
	CompletedReset time.Duration
	// Archive is optional; when set, uploaded documents are archived before
	// extraction.
	Archive *Archive
}

// LaneState is a point-in-time view of a lane.
type LaneState struct {
	Vertical  domain.Vertical         `json:"vertical"`
	Status    domain.ProcessingStatus `json:"status"`
	Error     string                  `json:"error,omitempty"`
	Count     int                     `json:"count"`
	LastBatch int                     `json:"lastBatch"`
}

// Lane runs the pipeline of one vertical and holds its in-memory records.
// Each batch captures the lane epoch when it starts; a Reset bumps the epoch
// so that a batch finishing afterwards leaves the lane untouched. A lane runs
// at most one batch at a time, detached ones included.
type Lane[B domain.Record, F domain.Record] struct {
	spec      *catalog.Spec[B, F]
	extractor *extract.Extractor[B, F]
	enricher  *enrich.Enricher[B, F]
	store     port.RecordStore[F]
	cfg       LaneConfig
	logger    *zap.Logger
	now       func() time.Time

	mu        sync.Mutex
	status    domain.ProcessingStatus
	errMsg    string
	records   []F
	lastBatch int
	epoch     uint64
	running   int
	timer     *time.Timer

	inflight sync.WaitGroup
}

// NewLane creates a Lane. extractor is nil for verticals without a document
// phase.
func NewLane[B domain.Record, F domain.Record](
	spec *catalog.Spec[B, F],
	extractor *extract.Extractor[B, F],
	enricher *enrich.Enricher[B, F],
	store port.RecordStore[F],
	cfg LaneConfig,
	logger *zap.Logger,
) *Lane[B, F] {
	return &Lane[B, F]{
		spec:      spec,
		extractor: extractor,
		enricher:  enricher,
		store:     store,
		cfg:       cfg,
		logger:    logger.Named("lane." + string(spec.Vertical)),
		now:       time.Now,
		status:    domain.StatusIdle,
		records:   []F{},
	}
}

// Vertical returns the vertical served by the lane.
func (l *Lane[B, F]) Vertical() domain.Vertical {
	return l.spec.Vertical
}

// Copy returns the UI copy of the lane's tab.
func (l *Lane[B, F]) Copy() catalog.Copy {
	return l.spec.Copy
}

// Messages returns the user-facing failure copy of the lane's vertical.
func (l *Lane[B, F]) Messages() domain.Messages {
	return l.spec.Messages
}

// AcceptsUploads reports whether the lane has a document phase.
func (l *Lane[B, F]) AcceptsUploads() bool {
	return l.extractor != nil
}

// State returns the current status, error message and record count.
func (l *Lane[B, F]) State() LaneState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LaneState{
		Vertical:  l.spec.Vertical,
		Status:    l.status,
		Error:     l.errMsg,
		Count:     len(l.records),
		LastBatch: l.lastBatch,
	}
}

// Records returns a copy of the in-memory records, newest first.
func (l *Lane[B, F]) Records() []F {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]F, len(l.records))
	copy(out, l.records)
	return out
}

// Find returns the in-memory record with the given id.
func (l *Lane[B, F]) Find(id string) (F, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.RecordID() == id {
			return r, nil
		}
	}
	var zero F
	return zero, domain.ErrNotFound
}

// Reload replaces the in-memory records with the store contents.
func (l *Lane[B, F]) Reload(ctx context.Context) {
	records := l.store.FetchAll(ctx)
	l.mu.Lock()
	l.records = records
	l.mu.Unlock()
	l.logger.Debug("records reloaded", zap.Int("count", len(records)))
}

// Reset puts the lane back to idle, clears its error and detaches any running
// batch. A detached batch still holds the lane until it returns.
func (l *Lane[B, F]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.epoch++
	l.status = domain.StatusIdle
	l.errMsg = ""
	l.stopTimer()
}

// Wait blocks until every batch started on the lane has finished.
func (l *Lane[B, F]) Wait() {
	l.inflight.Wait()
}

// ProcessDocument extracts every record of doc, enriches and saves them one by
// one and prepends the batch to the in-memory list. The batch is not bound to
// ctx cancellation. On error the lane returns to idle with a user-facing
// message and none of the batch is kept in memory.
func (l *Lane[B, F]) ProcessDocument(ctx context.Context, doc domain.SourceDocument, model domain.Model) ([]F, error) {
	epoch, err := l.beginDocument()
	if err != nil {
		return nil, err
	}
	return l.runDocument(context.WithoutCancel(ctx), epoch, doc, model)
}

// StartDocument claims the lane and runs ProcessDocument in the background.
// It fails immediately when the lane is busy.
func (l *Lane[B, F]) StartDocument(ctx context.Context, doc domain.SourceDocument, model domain.Model) error {
	epoch, err := l.beginDocument()
	if err != nil {
		return err
	}
	go func() {
		_, _ = l.runDocument(context.WithoutCancel(ctx), epoch, doc, model)
	}()
	return nil
}

// Generate enriches hand-made seeds directly, skipping extraction.
func (l *Lane[B, F]) Generate(ctx context.Context, seeds []B, model domain.Model) ([]F, error) {
	epoch, err := l.begin(domain.StatusGenerating)
	if err != nil {
		return nil, err
	}
	return l.runSeeds(context.WithoutCancel(ctx), epoch, seeds, model)
}

// StartGenerate runs Generate in the background.
func (l *Lane[B, F]) StartGenerate(ctx context.Context, seeds []B, model domain.Model) error {
	epoch, err := l.begin(domain.StatusGenerating)
	if err != nil {
		return err
	}
	go func() {
		_, _ = l.runSeeds(context.WithoutCancel(ctx), epoch, seeds, model)
	}()
	return nil
}

func (l *Lane[B, F]) beginDocument() (uint64, error) {
	if l.extractor == nil {
		return 0, fmt.Errorf("%w: %s takes no document", domain.ErrUnsupportedFileType, l.spec.Vertical)
	}
	return l.begin(domain.StatusExtracting)
}

// begin claims the lane for a new batch and returns the batch epoch.
func (l *Lane[B, F]) begin(status domain.ProcessingStatus) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running > 0 {
		return 0, domain.ErrBatchInProgress
	}
	l.stopTimer()
	l.status = status
	l.errMsg = ""
	l.running++
	l.inflight.Add(1)
	return l.epoch, nil
}

// end releases the lane claimed by begin.
func (l *Lane[B, F]) end() {
	l.mu.Lock()
	l.running--
	l.mu.Unlock()
	l.inflight.Done()
}

func (l *Lane[B, F]) runDocument(ctx context.Context, epoch uint64, doc domain.SourceDocument, model domain.Model) ([]F, error) {
	defer l.end()

	if l.cfg.Archive != nil && len(doc.Data) > 0 {
		key, err := l.cfg.Archive.Store(ctx, l.spec.Vertical, doc, l.now())
		if err != nil {
			l.logger.Warn("source document not archived", zap.String("file", doc.Name), zap.Error(err))
		} else {
			l.logger.Info("source document archived", zap.String("key", key))
		}
	}

	basics, err := l.extractor.Extract(ctx, doc, model)
	if err != nil {
		return nil, l.fail(epoch, err)
	}
	l.logger.Info("records extracted", zap.String("file", doc.Name), zap.Int("count", len(basics)))

	l.setStatus(epoch, domain.StatusGenerating)
	return l.enrichAll(ctx, epoch, basics, model)
}

func (l *Lane[B, F]) runSeeds(ctx context.Context, epoch uint64, seeds []B, model domain.Model) ([]F, error) {
	defer l.end()
	return l.enrichAll(ctx, epoch, seeds, model)
}

// enrichAll enriches and saves basics sequentially in input order. A failed
// save is logged and the record is kept; an enrichment error aborts the batch.
func (l *Lane[B, F]) enrichAll(ctx context.Context, epoch uint64, basics []B, model domain.Model) ([]F, error) {
	batch := make([]F, 0, len(basics))
	for _, basic := range basics {
		full, err := l.enricher.Enrich(ctx, basic, model)
		if err != nil {
			if len(batch) > 0 {
				l.logger.Warn("batch aborted, enriched records dropped from memory",
					zap.Int("dropped", len(batch)))
			}
			return nil, l.fail(epoch, err)
		}
		if !l.store.Save(ctx, full) {
			l.logger.Warn("record not persisted", zap.String("id", full.RecordID()))
		}
		batch = append(batch, full)
	}

	l.complete(epoch, batch)
	return batch, nil
}

func (l *Lane[B, F]) setStatus(epoch uint64, status domain.ProcessingStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.epoch == epoch {
		l.status = status
	}
}

func (l *Lane[B, F]) fail(epoch uint64, err error) error {
	msg := domain.UserMessage(err, l.spec.Messages)
	l.logger.Error("batch failed", zap.String("message", msg), zap.Error(err))

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.epoch == epoch {
		l.status = domain.StatusIdle
		l.errMsg = msg
	}
	return err
}

// reject records a request refused before any batch started.
func (l *Lane[B, F]) reject(err error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running > 0 {
		return domain.ErrBatchInProgress
	}
	l.status = domain.StatusIdle
	l.errMsg = domain.UserMessage(err, l.spec.Messages)
	return err
}

func (l *Lane[B, F]) complete(epoch uint64, batch []F) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.epoch != epoch {
		l.logger.Info("stale batch finished after reset, results dropped", zap.Int("count", len(batch)))
		return
	}

	records := make([]F, 0, len(batch)+len(l.records))
	records = append(records, batch...)
	l.records = append(records, l.records...)
	l.lastBatch = len(batch)
	l.status = domain.StatusCompleted
	l.logger.Info("batch completed", zap.Int("count", len(batch)))

	if l.cfg.CompletedReset > 0 {
		l.timer = time.AfterFunc(l.cfg.CompletedReset, func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if l.epoch == epoch && l.status == domain.StatusCompleted {
				l.status = domain.StatusIdle
			}
		})
	}
}

// stopTimer must be called with mu held.
func (l *Lane[B, F]) stopTimer() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

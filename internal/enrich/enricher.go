// Package enrich expands a basic record into its full SEO form.
package enrich

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"seogen/internal/catalog"
	"seogen/internal/domain"
	"seogen/internal/llm"
)

// Enricher runs the generation call of a vertical and joins the answer with
// the basic record.
type Enricher[B domain.Record, F domain.Record] struct {
	spec      *catalog.Spec[B, F]
	primary   llm.Generator
	alternate llm.Generator
	logger    *zap.Logger
	now       func() time.Time
}

// New creates an Enricher. alternate serves domain.ModelDeepSeek requests and
// is expected to fall back to the primary backend on its own; when nil, every
// request goes to primary.
func New[B domain.Record, F domain.Record](spec *catalog.Spec[B, F], primary, alternate llm.Generator, logger *zap.Logger) *Enricher[B, F] {
	return &Enricher[B, F]{
		spec:      spec,
		primary:   primary,
		alternate: alternate,
		logger:    logger.Named("enrich." + string(spec.Vertical)),
		now:       time.Now,
	}
}

// Enrich generates the long-form content and SEO metadata for basic. The
// returned record carries every field of basic unchanged.
func (e *Enricher[B, F]) Enrich(ctx context.Context, basic B, model domain.Model) (F, error) {
	var zero F

	generator := e.primary
	if model == domain.ModelDeepSeek && e.alternate != nil {
		generator = e.alternate
	}

	start := time.Now()
	resp, err := generator.Generate(ctx, llm.Request{
		System: e.spec.Enrichment.System,
		Prompt: e.spec.Enrichment.Prompt(basic),
		Schema: e.spec.Enrichment.Schema,
	})
	if err != nil {
		return zero, fmt.Errorf("enrich %s: %w", basic.RecordID(), err)
	}

	full, err := e.spec.Assemble(basic, resp.JSON, e.now())
	if err != nil {
		return zero, fmt.Errorf("enrich %s: %w", basic.RecordID(), err)
	}

	e.logger.Debug("record enriched",
		zap.String("id", basic.RecordID()),
		zap.String("requested", string(model)),
		zap.String("model", resp.Model),
		zap.Duration("elapsed", time.Since(start)),
	)
	return full, nil
}

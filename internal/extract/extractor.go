// Package extract reads basic records off an uploaded document with a
// vision-capable model.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"seogen/internal/catalog"
	"seogen/internal/domain"
	"seogen/internal/llm"
)

// Extractor turns one document into the basic records of a vertical.
type Extractor[B domain.Record, F domain.Record] struct {
	spec      *catalog.Spec[B, F]
	schema    *llm.Schema
	generator llm.Generator
	logger    *zap.Logger
	now       func() time.Time
}

// New creates an Extractor for spec. generator must accept attachments.
func New[B domain.Record, F domain.Record](spec *catalog.Spec[B, F], generator llm.Generator, logger *zap.Logger) (*Extractor[B, F], error) {
	if spec.Extraction == nil {
		return nil, fmt.Errorf("vertical %s has no extraction step", spec.Vertical)
	}
	return &Extractor[B, F]{
		spec:      spec,
		schema:    spec.Extraction.Schema(),
		generator: generator,
		logger:    logger.Named("extract." + string(spec.Vertical)),
		now:       time.Now,
	}, nil
}

// Extract sends doc to the vision model and returns every record it lists,
// each with a fresh id and default dates. The model choice only affects
// enrichment; extraction always runs on the primary vision backend.
func (e *Extractor[B, F]) Extract(ctx context.Context, doc domain.SourceDocument, model domain.Model) ([]B, error) {
	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("extract %s: %w", doc.Name, domain.ErrLocalIO)
	}
	if model != domain.ModelGemini {
		e.logger.Info("extraction runs on the primary vision model", zap.String("requested", string(model)))
	}

	start := time.Now()
	resp, err := e.generator.Generate(ctx, llm.Request{
		Prompt: e.spec.Extraction.Prompt,
		Schema: e.schema,
		Attachment: &llm.Attachment{
			Data:     doc.Data,
			MIMEType: doc.ContentType,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", doc.Name, err)
	}

	var items []B
	if err := json.Unmarshal(resp.JSON, &items); err != nil {
		return nil, fmt.Errorf("extract %s: %w: %v", doc.Name, domain.ErrFormat, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("extract %s: %w", doc.Name, domain.ErrEmptyResult)
	}

	now := e.now()
	for i := range items {
		e.spec.Stamp(&items[i], now)
	}

	e.logger.Info("document extracted",
		zap.String("document", doc.Name),
		zap.String("model", resp.Model),
		zap.Int("records", len(items)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return items, nil
}

package service

import (
	"context"

	"seogen/internal/catalog"
	"seogen/internal/domain"
)

// Tab is the vertical-independent face of a lane, used by the web UI and the
// JSON API.
type Tab interface {
	Vertical() domain.Vertical
	Copy() catalog.Copy
	Messages() domain.Messages
	AcceptsUploads() bool
	State() LaneState
	Cards() []catalog.Card
	Card(id string) (catalog.Card, error)
	// List returns the records as their concrete slice type.
	List() any
	// Get returns one record as its concrete type.
	Get(id string) (any, error)
	// Table returns the export header and one row per record.
	Table() (header []string, rows [][]string)
	StartDocument(ctx context.Context, doc domain.SourceDocument, model domain.Model) error
	// Process runs a document batch to completion and returns the new records.
	Process(ctx context.Context, doc domain.SourceDocument, model domain.Model) (any, error)
	Reset()
	Reload(ctx context.Context)
	Wait()
}

var (
	_ Tab = (*Lane[domain.JobBasic, domain.JobOffer])(nil)
	_ Tab = (*Lane[domain.AdviceSeed, domain.AdviceArticle])(nil)
)

// Cards renders every record as a card, newest first.
func (l *Lane[B, F]) Cards() []catalog.Card {
	records := l.Records()
	cards := make([]catalog.Card, len(records))
	for i, r := range records {
		cards[i] = l.spec.Card(r)
	}
	return cards
}

// Card renders the record with the given id.
func (l *Lane[B, F]) Card(id string) (catalog.Card, error) {
	r, err := l.Find(id)
	if err != nil {
		return catalog.Card{}, err
	}
	return l.spec.Card(r), nil
}

func (l *Lane[B, F]) List() any {
	return l.Records()
}

func (l *Lane[B, F]) Get(id string) (any, error) {
	r, err := l.Find(id)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (l *Lane[B, F]) Table() ([]string, [][]string) {
	records := l.Records()
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = l.spec.Export.Row(r)
	}
	return l.spec.Export.Header, rows
}

func (l *Lane[B, F]) Process(ctx context.Context, doc domain.SourceDocument, model domain.Model) (any, error) {
	batch, err := l.ProcessDocument(ctx, doc, model)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// Package catalog holds the per-vertical configuration: prompts and response
// schemas for both model calls, the table mapping, export columns and the copy
// shown in the UI. The pipeline itself is written once against Spec.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"seogen/internal/domain"
	"seogen/internal/llm"
)

// Extraction describes the document-reading call of a vertical.
type Extraction struct {
	Prompt string
	// Item is the schema of one record; the model answers with an array of them.
	Item *llm.Schema
}

// Schema returns the array schema sent with the extraction call.
func (e *Extraction) Schema() *llm.Schema {
	return llm.ArrayOf(e.Item)
}

// Enrichment describes the generation call of a vertical.
type Enrichment[B any] struct {
	System string
	Prompt func(B) string
	Schema *llm.Schema
}

// Table maps a full record onto its storage table. Columns are insert columns
// in db tag form; created_at is filled by the database.
type Table struct {
	Name    string
	Columns []string
}

// InsertQuery returns the named insert statement for the table.
func (t Table) InsertQuery() string {
	named := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		named[i] = ":" + c
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.Name, strings.Join(t.Columns, ", "), strings.Join(named, ", "))
}

// Copy is the French UI copy of one tab.
type Copy struct {
	Label          string
	Title          string
	Subtitle       string
	UploadLabel    string
	SuccessMessage string
	EmptyMessage   string
	EmptyAction    string
	CountLabel     string
	Accent         string
}

// Fact is a labelled scalar shown on a record's detail view.
type Fact struct {
	Label string
	Value string
}

// Section is a labelled list shown on a record's detail view.
type Section struct {
	Label string
	Items []string
}

// Card is the vertical-independent view of a full record.
type Card struct {
	ID       string
	Title    string
	Subtitle string
	Badge    string
	Date     string
	Keywords []string
	Meta     string
	Slug     string
	// Body is Markdown.
	Body     string
	Facts    []Fact
	Sections []Section
}

// Export is a tabular rendering of a vertical's records.
type Export[F any] struct {
	Header []string
	Row    func(F) []string
}

// Spec is the full configuration of one vertical over its basic type B and
// full type F.
type Spec[B domain.Record, F domain.Record] struct {
	Vertical domain.Vertical
	IDPrefix string
	// Extraction is nil for verticals seeded by hand (advice articles).
	Extraction *Extraction
	Enrichment Enrichment[B]
	// Stamp assigns a fresh id and the default dates to a basic record.
	Stamp func(b *B, now time.Time)
	// Assemble joins a basic record with the generated JSON.
	Assemble func(b B, generated json.RawMessage, now time.Time) (F, error)
	Card     func(F) Card
	Export   Export[F]
	Table    Table
	Messages domain.Messages
	Copy     Copy
}

// decodeEnrichment unmarshals generated JSON into dst, reporting failures as format errors.
func decodeEnrichment(generated json.RawMessage, dst any) error {
	if err := json.Unmarshal(generated, dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// blankToNil drops optional values the model filled with an empty string.
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}

func formatCreated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

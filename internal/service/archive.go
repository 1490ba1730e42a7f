package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"seogen/internal/domain"
	"seogen/internal/port"
)

// Archive stores uploaded source documents in an object store before they
// are processed.
type Archive struct {
	Storage port.ObjectStorage
	Bucket  string
	Prefix  string
}

// Store uploads doc under a fresh key and returns that key.
func (a *Archive) Store(ctx context.Context, vertical domain.Vertical, doc domain.SourceDocument, now time.Time) (string, error) {
	key := ArchiveKey(a.Prefix, vertical, doc.Name, now)
	_, err := a.Storage.Upload(ctx, port.UploadInput{
		Bucket:      a.Bucket,
		Key:         key,
		Body:        bytes.NewReader(doc.Data),
		ContentType: doc.ContentType,
		Size:        int64(len(doc.Data)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	return key, nil
}

// ArchiveKey builds the object key of an uploaded source document:
// <prefix>/<vertical>/<YYYY-MM-DD>/<uuid>-<name>.
func ArchiveKey(prefix string, vertical domain.Vertical, name string, now time.Time) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		if r == ' ' || r < 0x20 {
			return '_'
		}
		return r
	}, name)
	if name == "." || name == "/" || name == "" {
		name = "document"
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = "uploads"
	}
	return fmt.Sprintf("%s/%s/%s/%s-%s", prefix, vertical, now.Format("2006-01-02"), uuid.New(), name)
}

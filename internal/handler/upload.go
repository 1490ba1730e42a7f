package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"seogen/internal/domain"
)

// ReadUpload reads a multipart file into a SourceDocument, enforcing the size
// limit and the accepted types. The content type comes from the declared
// type or the extension; when neither is accepted the bytes are sniffed.
func ReadUpload(file multipart.File, header *multipart.FileHeader, maxBytes int64) (domain.SourceDocument, error) {
	if header.Size > maxBytes {
		return domain.SourceDocument{}, fmt.Errorf("%w: %d bytes", domain.ErrFileTooLarge, header.Size)
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return domain.SourceDocument{}, fmt.Errorf("%w: %v", domain.ErrLocalIO, err)
	}
	if int64(len(data)) > maxBytes {
		return domain.SourceDocument{}, fmt.Errorf("%w: more than %d bytes", domain.ErrFileTooLarge, maxBytes)
	}
	if len(data) == 0 {
		return domain.SourceDocument{}, fmt.Errorf("%w: %s is empty", domain.ErrLocalIO, header.Filename)
	}

	contentType, err := domain.ResolveContentType(header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		sniffed := mimetype.Detect(data)
		for _, allowed := range domain.AllowedFileTypes {
			if sniffed.Is(allowed) {
				contentType, err = allowed, nil
				break
			}
		}
		if err != nil {
			return domain.SourceDocument{}, fmt.Errorf("%w (detected %s)", err, sniffed.String())
		}
	}

	return domain.SourceDocument{Name: header.Filename, ContentType: contentType, Data: data}, nil
}

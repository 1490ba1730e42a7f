package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Vertical identifies one of the four content families handled by the service.
type Vertical string

const (
	VerticalOffres      Vertical = "offres"
	VerticalEntreprises Vertical = "entreprises"
	VerticalEcoles      Vertical = "ecoles"
	VerticalConseils    Vertical = "conseils"
)

// Verticals lists every vertical in navigation order.
var Verticals = []Vertical{VerticalOffres, VerticalEntreprises, VerticalEcoles, VerticalConseils}

// ParseVertical validates a vertical name.
func ParseVertical(s string) (Vertical, error) {
	v := Vertical(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Verticals {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVertical, s)
}

// AcceptsUploads reports whether records of this vertical are extracted from documents.
// Advice articles are generated from a typed title instead.
func (v Vertical) AcceptsUploads() bool {
	return v != VerticalConseils
}

// Model selects the generation backend for a batch.
type Model string

const (
	ModelGemini   Model = "gemini"
	ModelDeepSeek Model = "deepseek"
)

// ParseModel validates a model name. An empty string selects the primary backend.
func ParseModel(s string) (Model, error) {
	switch Model(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModelGemini:
		return ModelGemini, nil
	case ModelDeepSeek:
		return ModelDeepSeek, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
	}
}

// ProcessingStatus is the lifecycle state of a vertical's batch.
type ProcessingStatus string

const (
	StatusIdle       ProcessingStatus = "idle"
	StatusExtracting ProcessingStatus = "extracting"
	StatusGenerating ProcessingStatus = "generating"
	StatusCompleted  ProcessingStatus = "completed"
)

// FileType represents the allowed source document types.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeWEBP FileType = "webp"
	FileTypeGIF  FileType = "gif"
	FileTypeXLSX FileType = "xlsx"
	FileTypeXLS  FileType = "xls"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeWEBP: "image/webp",
	FileTypeGIF:  "image/gif",
	FileTypeXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FileTypeXLS:  "application/vnd.ms-excel",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"webp": FileTypeWEBP,
	"gif":  FileTypeGIF,
	"xlsx": FileTypeXLSX,
	"xls":  FileTypeXLS,
}

// ResolveContentType returns the MIME type for an uploaded file, preferring the
// declared type when it is one we accept and falling back to the file extension.
func ResolveContentType(filename, declared string) (string, error) {
	declared = strings.ToLower(strings.TrimSpace(strings.SplitN(declared, ";", 2)[0]))
	for _, mime := range AllowedFileTypes {
		if declared == mime {
			return mime, nil
		}
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ft, ok := AllowedExtensions[ext]; ok {
		return AllowedFileTypes[ft], nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, filename)
}

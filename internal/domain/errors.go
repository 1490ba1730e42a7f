package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrNotConfigured       = errors.New("service not configured")
	ErrEmptyResult         = errors.New("no readable record in document")
	ErrFormat              = errors.New("model output is not in the expected format")
	ErrLocalIO             = errors.New("local file could not be read")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrMissingTitle        = errors.New("article title is required")
	ErrBatchInProgress     = errors.New("a batch is already running for this vertical")
	ErrUnknownVertical     = errors.New("unknown vertical")
	ErrUnknownModel        = errors.New("unknown model")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)

// ConfigurationError reports a capability that cannot run because a setting is absent.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Setting)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrNotConfigured
}

// UpstreamError is a non-success answer from a generation backend.
// Message carries the provider's own error text when it sent one.
type UpstreamError struct {
	Provider string
	Status   int
	Message  string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// Messages carries the user-facing copy for one vertical's failure modes.
type Messages struct {
	Empty   string
	Format  string
	Generic string
}

const (
	msgUnknown = "Une erreur inconnue est survenue lors de l'appel aux services IA."
	msgLocalIO = "Erreur de lecture du fichier local."
	msgFile    = "Impossible de traiter ce fichier."
	msgTitle   = "Veuillez saisir un titre ou une thématique pour l'article."
	msgBusy    = "Un traitement est déjà en cours pour cet onglet."
)

// UserMessage flattens err into the single French sentence shown to the user.
func UserMessage(err error, m Messages) string {
	if err == nil {
		return ""
	}

	var cfgErr *ConfigurationError
	var upErr *UpstreamError
	switch {
	case errors.As(err, &cfgErr):
		return fmt.Sprintf("Clé API (%s) non configurée dans le fichier .env", cfgErr.Setting)
	case errors.As(err, &upErr):
		if upErr.Message != "" {
			return upErr.Message
		}
		return fmt.Sprintf("Erreur %s: HTTP %d", upErr.Provider, upErr.Status)
	case errors.Is(err, ErrEmptyResult):
		return m.Empty
	case errors.Is(err, ErrFormat):
		return m.Format
	case errors.Is(err, ErrLocalIO):
		return msgLocalIO
	case errors.Is(err, ErrUnsupportedFileType), errors.Is(err, ErrFileTooLarge):
		return msgFile
	case errors.Is(err, ErrMissingTitle):
		return msgTitle
	case errors.Is(err, ErrBatchInProgress):
		return msgBusy
	}
	if m.Generic != "" {
		return m.Generic
	}
	return msgUnknown
}

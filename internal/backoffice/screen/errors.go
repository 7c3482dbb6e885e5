package screen

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrStaleVersion: a linha mudou (ou sumiu) desde que o formulário foi aberto
	ErrStaleVersion = errors.New("row changed since it was opened")
	// ErrNotConfirmed: remoção sem confirmação explícita
	ErrNotConfirmed = errors.New("delete requires confirmation")
	ErrNotFound     = errors.New("row not found")
	ErrUnsupported  = errors.New("operation not supported on this screen")
)

// ValidationError é detectado antes de qualquer chamada ao backend
type ValidationError struct {
	Message string
	Fields  map[string]string // campo -> problema
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + " " + e.Fields[n]
	}
	return e.Message + ": " + strings.Join(parts, ", ")
}

// AddFieldError acrescenta um problema de campo a um erro de validação
// (ou cria um). Erros de outro tipo passam intactos.
func AddFieldError(err error, field, problem string) error {
	if err == nil {
		return &ValidationError{Message: "Invalid values", Fields: map[string]string{field: problem}}
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	if verr.Fields == nil {
		verr.Fields = map[string]string{}
	}
	verr.Fields[field] = problem
	return verr
}

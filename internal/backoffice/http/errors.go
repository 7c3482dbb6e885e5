package http

import (
	"errors"
	"net/http"

	"github.com/radieske/betting-backoffice/internal/backoffice/api"
	"github.com/radieske/betting-backoffice/internal/backoffice/query"
	"github.com/radieske/betting-backoffice/internal/backoffice/screen"
)

// statusFor concentra o mapeamento erro -> status HTTP
func statusFor(err error) int {
	var (
		verr *screen.ValidationError
		aerr *api.Error
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, screen.ErrStaleVersion), errors.Is(err, query.ErrRowBusy):
		return http.StatusConflict
	case errors.Is(err, screen.ErrNotConfirmed):
		return http.StatusBadRequest
	case errors.Is(err, screen.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, screen.ErrUnsupported):
		return http.StatusMethodNotAllowed
	case errors.As(err, &aerr) && aerr.Status >= 400 && aerr.Status < 500:
		return aerr.Status
	default:
		return http.StatusBadGateway
	}
}

// alertFor é o texto mostrado no diálogo; erros do backend usam o detail dele
func alertFor(err error, fallback string) string {
	var verr *screen.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, screen.ErrStaleVersion):
		return "This row changed since it was opened. Reload and try again."
	case errors.Is(err, query.ErrRowBusy):
		return "Another change to this row is still in progress."
	case errors.Is(err, screen.ErrNotConfirmed):
		return "Confirm the deletion first."
	case errors.Is(err, screen.ErrNotFound):
		return "Row not found on this page."
	default:
		return api.DetailOf(err, fallback)
	}
}

// markInvalid copia os problemas de validação para os campos
func markInvalid(fields []screen.Field, err error) []screen.Field {
	var verr *screen.ValidationError
	if !errors.As(err, &verr) {
		return fields
	}
	for i := range fields {
		if p, ok := verr.Fields[fields[i].Name]; ok {
			fields[i].Invalid = p
		}
	}
	return fields
}

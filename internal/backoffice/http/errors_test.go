package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radieske/betting-backoffice/internal/backoffice/api"
	"github.com/radieske/betting-backoffice/internal/backoffice/query"
	"github.com/radieske/betting-backoffice/internal/backoffice/screen"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{&screen.ValidationError{Message: "Fill required fields"}, http.StatusUnprocessableEntity},
		{screen.ErrStaleVersion, http.StatusConflict},
		{fmt.Errorf("delete: %w", query.ErrRowBusy), http.StatusConflict},
		{screen.ErrNotConfirmed, http.StatusBadRequest},
		{screen.ErrNotFound, http.StatusNotFound},
		{&api.Error{Status: 409, Detail: "in use"}, http.StatusConflict},
		{&api.Error{Status: 500, Detail: "boom"}, http.StatusBadGateway},
		{errors.New("dial tcp: refused"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), "%v", tc.err)
	}
}

func TestAlertFor(t *testing.T) {
	assert.Equal(t, "Bookie in use", alertFor(&api.Error{Status: 400, Detail: "Bookie in use"}, "Delete failed"))
	assert.Equal(t, "Delete failed", alertFor(errors.New("dial tcp: refused"), "Delete failed"))
	assert.Contains(t, alertFor(screen.ErrStaleVersion, "x"), "changed")
}

func TestMarkInvalid(t *testing.T) {
	fields := []screen.Field{{Name: "username"}, {Name: "currency"}}
	err := &screen.ValidationError{Fields: map[string]string{"username": "is required"}}
	out := markInvalid(fields, err)
	assert.Equal(t, "is required", out[0].Invalid)
	assert.Empty(t, out[1].Invalid)
}

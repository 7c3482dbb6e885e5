// Package screens instancia as quatro telas do console sobre o controlador genérico
package screens

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/radieske/betting-backoffice/internal/backoffice/api"
	"github.com/radieske/betting-backoffice/internal/backoffice/api/dto"
	"github.com/radieske/betting-backoffice/internal/backoffice/query"
	"github.com/radieske/betting-backoffice/internal/backoffice/screen"
)

// Deps são as dependências comuns a todas as telas
type Deps struct {
	API           *api.Client
	Query         *query.Client
	PageSize      int
	PickerWait    time.Duration
	DefaultBookie string
	Now           func() time.Time
}

// Set reúne os schemas prontos para virarem controladores
type Set struct {
	Bets      screen.Schema[dto.Bet]
	Bookies   screen.Schema[dto.Bookie]
	Customers screen.Schema[dto.Customer]
	Events    screen.Schema[dto.Event]
}

func Build(d Deps) Set {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.DefaultBookie == "" {
		d.DefaultBookie = "BetMaster"
	}
	p := pickers{d: d}
	return Set{
		Bets:      bets(d, p),
		Bookies:   bookies(d),
		Customers: customers(d),
		Events:    events(d, p),
	}
}

// set copia o valor postado para dst só quando o campo veio no formulário
func set(v url.Values, key string, dst *string) {
	if vals, ok := v[key]; ok && len(vals) > 0 {
		*dst = strings.TrimSpace(vals[0])
	}
}

// parseID só roda depois de Validate, que já garantiu um int64 válido via checkID
func parseID(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

// checkID pega o que o validator "number" deixa passar: dígitos que não cabem em int64
func checkID(err error, field, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || hasFieldError(err, field) {
		return err
	}
	if _, perr := strconv.ParseInt(raw, 10, 64); perr != nil {
		return screen.AddFieldError(err, field, "is not a valid id")
	}
	return err
}

func hasFieldError(err error, field string) bool {
	var verr *screen.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	_, ok := verr.Fields[field]
	return ok
}

func formatID(n int64) string { return strconv.FormatInt(n, 10) }

func contains(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func statusOptions(values []string) []screen.Option {
	out := []screen.Option{{Value: "", Label: "All statuses"}}
	for _, v := range values {
		out = append(out, screen.Option{Value: v, Label: strings.ToUpper(v[:1]) + v[1:]})
	}
	return out
}

func choices(values []string, selected string) []screen.Option {
	out := make([]screen.Option, len(values))
	for i, v := range values {
		out[i] = screen.Option{Value: v, Label: v, Selected: v == selected}
	}
	return out
}

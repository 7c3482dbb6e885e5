package screens

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/radieske/betting-backoffice/internal/backoffice/api"
	"github.com/radieske/betting-backoffice/internal/backoffice/api/dto"
	"github.com/radieske/betting-backoffice/internal/backoffice/query"
	"github.com/radieske/betting-backoffice/internal/backoffice/screen"
)

// pickers leem as listas completas que alimentam os selects. Cada uma tem
// chave própria sob o prefixo da entidade, então uma escrita na entidade
// também invalida o picker.
type pickers struct{ d Deps }

func (p pickers) customers(ctx context.Context) query.Result[[]dto.Customer] {
	return query.Observe(ctx, p.d.Query, query.NewKey("customers", "all"), p.d.PickerWait, p.loadCustomers)
}

func (p pickers) loadCustomers(ctx context.Context) ([]dto.Customer, error) {
	page, err := p.d.API.ListCustomers(ctx, api.ListParams{})
	return page.Items, err
}

func (p pickers) events(ctx context.Context) query.Result[[]dto.Event] {
	return query.Observe(ctx, p.d.Query, query.NewKey("events", "all"), p.d.PickerWait, p.loadEvents)
}

func (p pickers) loadEvents(ctx context.Context) ([]dto.Event, error) {
	page, err := p.d.API.ListEvents(ctx, api.ListParams{})
	return page.Items, err
}

func (p pickers) bookies(ctx context.Context) query.Result[[]dto.Bookie] {
	return query.Observe(ctx, p.d.Query, query.NewKey("bookies", "all"), p.d.PickerWait, p.loadBookies)
}

func (p pickers) loadBookies(ctx context.Context) ([]dto.Bookie, error) {
	page, err := p.d.API.ListBookies(ctx, api.ListParams{})
	return page.Items, err
}

func (p pickers) competitions(ctx context.Context) query.Result[[]dto.Competition] {
	return query.Observe(ctx, p.d.Query, query.NewKey("competitions"), p.d.PickerWait, p.d.API.ListCompetitions)
}

func (p pickers) teams(ctx context.Context) query.Result[[]dto.Team] {
	return query.Observe(ctx, p.d.Query, query.NewKey("teams"), p.d.PickerWait, p.d.API.ListTeams)
}

// pickerField monta o select a partir do resultado; cada picker tem seu
// próprio loading/erro e não bloqueia os outros
func pickerField[T any](name, label string, required bool, r query.Result[[]T], fail string, opts func([]T) []screen.Option) screen.Field {
	f := screen.Field{Name: name, Label: label, Kind: screen.FieldSelect, Required: required, Loading: r.Loading}
	switch {
	case r.Err != nil:
		f.Error = fail
	case !r.Loading:
		f.Options = opts(r.Data)
	}
	return f
}

func CustomerOptions(cs []dto.Customer, selected string) []screen.Option {
	out := make([]screen.Option, len(cs))
	for i, c := range cs {
		label := "@" + c.Username
		if c.RealName != nil && *c.RealName != "" {
			label = *c.RealName + " (@" + c.Username + ")"
		}
		v := formatID(c.ID)
		out[i] = screen.Option{Value: v, Label: label, Selected: v == selected}
	}
	return out
}

// EventOptions mantém eventos encerrados na lista, mas desabilitados
func EventOptions(evs []dto.Event, selected string) []screen.Option {
	out := make([]screen.Option, len(evs))
	for i, e := range evs {
		v := formatID(e.ID)
		out[i] = screen.Option{
			Value:    v,
			Label:    "#" + v + " • " + e.Date.Display() + " • " + e.Status,
			Disabled: e.Status == dto.EventFinished,
			Selected: v == selected,
		}
	}
	return out
}

func BookieOptions(bs []dto.Bookie, selected string) []screen.Option {
	out := make([]screen.Option, len(bs))
	for i, b := range bs {
		label := b.Name
		if b.Description != "" {
			label += " - " + b.Description
		}
		out[i] = screen.Option{Value: b.Name, Label: label, Selected: b.Name == selected}
	}
	return out
}

func CompetitionOptions(cs []dto.Competition, selected string) []screen.Option {
	out := make([]screen.Option, len(cs))
	for i, c := range cs {
		v := formatID(c.ID)
		out[i] = screen.Option{Value: v, Label: c.Name, Selected: v == selected}
	}
	return out
}

// TeamOptions restringe os times ao esporte da competição; sport vazio = todos
func TeamOptions(ts []dto.Team, sport, selected string) []screen.Option {
	out := make([]screen.Option, 0, len(ts))
	for _, t := range ts {
		if sport != "" && t.Sport != sport {
			continue
		}
		v := formatID(t.ID)
		out = append(out, screen.Option{Value: v, Label: t.Name, Selected: v == selected})
	}
	return out
}

func sportOf(cs []dto.Competition, competitionID string) string {
	for _, c := range cs {
		if formatID(c.ID) == competitionID {
			return c.Sport
		}
	}
	return ""
}

func nullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return "—"
	}
	return d.Decimal.String()
}

func optionalID(n *int64) string {
	if n == nil {
		return "—"
	}
	return strconv.FormatInt(*n, 10)
}

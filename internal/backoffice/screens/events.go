package screens

import (
	"context"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/radieske/betting-backoffice/internal/backoffice/api/dto"
	"github.com/radieske/betting-backoffice/internal/backoffice/query"
	"github.com/radieske/betting-backoffice/internal/backoffice/screen"
)

const dateInputLayout = "2006-01-02T15:04"

type EventForm struct {
	Date          string `form:"date" validate:"required"`
	CompetitionID string `form:"competition_id" validate:"required,number"`
	TeamAID       string `form:"team_a_id" validate:"required,number"`
	TeamBID       string `form:"team_b_id" validate:"required,number"`
	Status        string `form:"status" validate:"required,oneof=prematch live finished"`
}

// NewEventForm começa uma hora à frente, em prematch
func NewEventForm(now time.Time) *EventForm {
	return &EventForm{Date: now.UTC().Add(time.Hour).Format(dateInputLayout), Status: dto.EventPrematch}
}

// Bind parte da competição que o diálogo mostrava (competition_prev);
// se a escolhida for outra, os times são limpos
func (f *EventForm) Bind(v url.Values) {
	set(v, "date", &f.Date)
	set(v, "status", &f.Status)
	set(v, "competition_prev", &f.CompetitionID)
	set(v, "team_a_id", &f.TeamAID)
	set(v, "team_b_id", &f.TeamBID)
	if c, ok := v["competition_id"]; ok && len(c) > 0 {
		f.SelectCompetition(c[0])
	}
}

func (f *EventForm) SelectCompetition(id string) {
	if id == f.CompetitionID {
		return
	}
	f.CompetitionID = id
	f.TeamAID = ""
	f.TeamBID = ""
}

func (f *EventForm) Validate() error {
	err := screen.ValidateForm(f)
	if f.Date != "" {
		if _, perr := dto.ParseTime(f.Date); perr != nil {
			err = screen.AddFieldError(err, "date", "must be a date")
		}
	}
	err = checkID(err, "competition_id", f.CompetitionID)
	err = checkID(err, "team_a_id", f.TeamAID)
	return checkID(err, "team_b_id", f.TeamBID)
}

func (f *EventForm) Request() dto.CreateEventRequest {
	date, _ := dto.ParseTime(f.Date)
	return dto.CreateEventRequest{
		Date:          date,
		CompetitionID: parseID(f.CompetitionID),
		TeamAID:       parseID(f.TeamAID),
		TeamBID:       parseID(f.TeamBID),
		Status:        f.Status,
	}
}

// lookups carrega competições e times em paralelo
func lookups(ctx context.Context, p pickers) (query.Result[[]dto.Competition], query.Result[[]dto.Team]) {
	var (
		g     errgroup.Group
		comps query.Result[[]dto.Competition]
		teams query.Result[[]dto.Team]
	)
	g.Go(func() error { comps = p.competitions(ctx); return nil })
	g.Go(func() error { teams = p.teams(ctx); return nil })
	_ = g.Wait()
	return comps, teams
}

// EventCells resolve nomes de competição e times; sem a lista, mostra o id
func EventCells(rows []dto.Event, comps []dto.Competition, teams []dto.Team) [][]string {
	compNames := make(map[int64]string, len(comps))
	for _, c := range comps {
		compNames[c.ID] = c.Name
	}
	teamNames := make(map[int64]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}
	name := func(m map[int64]string, id int64) string {
		if n, ok := m[id]; ok && n != "" {
			return n
		}
		return formatID(id)
	}

	out := make([][]string, len(rows))
	for i, e := range rows {
		out[i] = []string{
			formatID(e.ID),
			e.Date.Display(),
			name(compNames, e.CompetitionID),
			name(teamNames, e.TeamAID),
			name(teamNames, e.TeamBID),
			e.Status,
		}
	}
	return out
}

func events(d Deps, p pickers) screen.Schema[dto.Event] {
	return screen.Schema[dto.Event]{
		Entity:   "events",
		Title:    "Events",
		Singular: "event",
		PageSize: d.PageSize,
		Filter:   &screen.FilterSpec{Label: "Status", Options: statusOptions(dto.EventStatuses)},

		List: d.API.ListEvents,
		ID:   func(e dto.Event) string { return formatID(e.ID) },
		Match: func(e dto.Event, q string) bool {
			return contains(q, formatID(e.ID), formatID(e.CompetitionID), formatID(e.TeamAID), formatID(e.TeamBID), e.Status)
		},

		Headers: []string{"ID", "Date", "Competition", "Team A", "Team B", "Status"},
		Cells: func(ctx context.Context, rows []dto.Event) [][]string {
			comps, teams := lookups(ctx, p)
			return EventCells(rows, comps.Data, teams.Data)
		},

		NewForm: func() screen.Form { return NewEventForm(d.Now()) },
		Fields: func(ctx context.Context, f screen.Form) []screen.Field {
			return eventFields(ctx, p, f.(*EventForm))
		},
		Create: func(ctx context.Context, f screen.Form) error {
			return d.API.CreateEvent(ctx, f.(*EventForm).Request())
		},
		Delete: func(ctx context.Context, e dto.Event, version string) error {
			return d.API.DeleteEvent(ctx, e.ID, version)
		},

		Prefetch: func(ctx context.Context) {
			query.Prefetch(ctx, d.Query, query.NewKey("competitions"), d.API.ListCompetitions)
			query.Prefetch(ctx, d.Query, query.NewKey("teams"), d.API.ListTeams)
		},
	}
}

func eventFields(ctx context.Context, p pickers, f *EventForm) []screen.Field {
	comps, teams := lookups(ctx, p)
	sport := sportOf(comps.Data, f.CompetitionID)

	compField := pickerField("competition_id", "Competition", true, comps, "Failed to load competitions",
		func(cs []dto.Competition) []screen.Option { return CompetitionOptions(cs, f.CompetitionID) })
	compField.Value = f.CompetitionID
	compField.Refresh = true

	team := func(name, label, selected string) screen.Field {
		tf := pickerField(name, label, true, teams, "Failed to load teams",
			func(ts []dto.Team) []screen.Option { return TeamOptions(ts, sport, selected) })
		tf.Value = selected
		tf.Disabled = f.CompetitionID == ""
		return tf
	}

	return []screen.Field{
		{Name: "date", Label: "Date", Kind: screen.FieldDateTime, Required: true, Value: f.Date},
		compField,
		{Name: "competition_prev", Kind: screen.FieldHidden, Value: f.CompetitionID},
		team("team_a_id", "Team A", f.TeamAID),
		team("team_b_id", "Team B", f.TeamBID),
		{Name: "status", Label: "Status", Kind: screen.FieldSelect, Required: true,
			Value: f.Status, Options: choices(dto.EventStatuses, f.Status)},
	}
}

package screens

import (
	"context"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/radieske/betting-backoffice/internal/backoffice/api/dto"
	"github.com/radieske/betting-backoffice/internal/backoffice/query"
	"github.com/radieske/betting-backoffice/internal/backoffice/screen"
)

// BetForm guarda os valores como texto; a conversão acontece só depois de validar
type BetForm struct {
	CustomerID      string `form:"customer_id" validate:"required,number"`
	EventID         string `form:"event_id" validate:"required,number"`
	PlacementStatus string `form:"placement_status" validate:"required,oneof=placed failed"`
	StakeAmount     string `form:"stake_amount" validate:"required,numeric"`
	StakeCurrency   string `form:"stake_currency" validate:"required,oneof=USD EUR GBP"`
	Odds            string `form:"odds" validate:"required,numeric"`
	Bookie          string `form:"bookie"`
}

func NewBetForm() *BetForm {
	return &BetForm{PlacementStatus: dto.PlacementPlaced, StakeCurrency: "USD"}
}

func (f *BetForm) Bind(v url.Values) {
	set(v, "customer_id", &f.CustomerID)
	set(v, "event_id", &f.EventID)
	set(v, "placement_status", &f.PlacementStatus)
	set(v, "stake_amount", &f.StakeAmount)
	set(v, "stake_currency", &f.StakeCurrency)
	set(v, "odds", &f.Odds)
	set(v, "bookie", &f.Bookie)
}

func (f *BetForm) Validate() error {
	err := screen.ValidateForm(f)
	err = checkID(err, "customer_id", f.CustomerID)
	return checkID(err, "event_id", f.EventID)
}

// Request monta o corpo do POST; bookie vazio usa o padrão
func (f *BetForm) Request(defaultBookie string) dto.CreateBetRequest {
	bookie := f.Bookie
	if bookie == "" {
		bookie = defaultBookie
	}
	return dto.CreateBetRequest{
		Bookie:          bookie,
		CustomerID:      parseID(f.CustomerID),
		EventID:         parseID(f.EventID),
		PlacementStatus: f.PlacementStatus,
		StakeAmount:     screen.Decimal(f.StakeAmount),
		StakeCurrency:   f.StakeCurrency,
		Odds:            screen.Decimal(f.Odds),
	}
}

// BetEditForm só permite mudar status e resultado
type BetEditForm struct {
	PlacementStatus string `form:"placement_status" validate:"required,oneof=placed failed"`
	Outcome         string `form:"outcome" validate:"omitempty,oneof=win lose void"`
}

func (f *BetEditForm) Bind(v url.Values) {
	set(v, "placement_status", &f.PlacementStatus)
	set(v, "outcome", &f.Outcome)
}

func (f *BetEditForm) Validate() error { return screen.ValidateForm(f) }

func (f *BetEditForm) Request() dto.UpdateBetRequest {
	req := dto.UpdateBetRequest{PlacementStatus: f.PlacementStatus}
	if f.Outcome != "" {
		outcome := f.Outcome
		req.Outcome = &outcome
	}
	return req
}

func customerLabel(b dto.Bet) string {
	if b.CustomerName != nil && *b.CustomerName != "" {
		return *b.CustomerName
	}
	return optionalID(b.CustomerID)
}

func stake(b dto.Bet) string {
	return nullDecimal(b.StakeAmount) + " " + b.StakeCurrency
}

func bets(d Deps, p pickers) screen.Schema[dto.Bet] {
	return screen.Schema[dto.Bet]{
		Entity:   "bets",
		Title:    "Bets",
		Singular: "bet",
		PageSize: d.PageSize,
		Filter:   &screen.FilterSpec{Label: "Status", Options: statusOptions(dto.PlacementStatuses)},

		List: d.API.ListBets,
		ID:   func(b dto.Bet) string { return formatID(b.ID) },
		Match: func(b dto.Bet, q string) bool {
			return contains(q, b.Bookie, customerLabel(b), b.Sport, b.PlacementStatus)
		},

		Headers: []string{"Bookie", "Customer", "Sport", "Odds", "Stake", "Status", "Date"},
		Cells: func(_ context.Context, rows []dto.Bet) [][]string {
			out := make([][]string, len(rows))
			for i, b := range rows {
				out[i] = []string{b.Bookie, customerLabel(b), b.Sport, nullDecimal(b.Odds), stake(b), b.PlacementStatus, b.CreatedAt.Display()}
			}
			return out
		},
		Details: func(b dto.Bet) []screen.Detail {
			return []screen.Detail{
				{Label: "ID", Value: formatID(b.ID)},
				{Label: "Bookie", Value: b.Bookie},
				{Label: "Customer", Value: customerLabel(b)},
				{Label: "Sport", Value: b.Sport},
				{Label: "Odds", Value: nullDecimal(b.Odds)},
				{Label: "Stake", Value: stake(b)},
				{Label: "Status", Value: b.PlacementStatus},
				{Label: "Outcome", Value: dto.Str(b.Outcome)},
				{Label: "Date", Value: b.CreatedAt.Display()},
			}
		},

		NewForm: func() screen.Form { return NewBetForm() },
		Fields: func(ctx context.Context, f screen.Form) []screen.Field {
			return betFields(ctx, p, f.(*BetForm))
		},
		Create: func(ctx context.Context, f screen.Form) error {
			return d.API.CreateBet(ctx, f.(*BetForm).Request(d.DefaultBookie))
		},

		Edit: &screen.EditSpec[dto.Bet]{
			NewForm: func(b dto.Bet) screen.Form {
				f := &BetEditForm{PlacementStatus: b.PlacementStatus}
				if b.Outcome != nil {
					f.Outcome = *b.Outcome
				}
				return f
			},
			Fields: func(_ context.Context, f screen.Form) []screen.Field {
				ef := f.(*BetEditForm)
				return []screen.Field{
					{Name: "placement_status", Label: "Status", Kind: screen.FieldSelect, Required: true,
						Value: ef.PlacementStatus, Options: choices(dto.PlacementStatuses, ef.PlacementStatus)},
					{Name: "outcome", Label: "Outcome", Kind: screen.FieldSelect,
						Value: ef.Outcome, Options: choices(dto.Outcomes, ef.Outcome)},
				}
			},
			Submit: func(ctx context.Context, b dto.Bet, f screen.Form, version string) error {
				return d.API.UpdateBet(ctx, b.ID, f.(*BetEditForm).Request(), version)
			},
		},
		Delete: func(ctx context.Context, b dto.Bet, version string) error {
			return d.API.DeleteBet(ctx, b.ID, version)
		},

		Prefetch: func(ctx context.Context) {
			query.Prefetch(ctx, d.Query, query.NewKey("customers", "all"), p.loadCustomers)
			query.Prefetch(ctx, d.Query, query.NewKey("events", "all"), p.loadEvents)
			query.Prefetch(ctx, d.Query, query.NewKey("bookies", "all"), p.loadBookies)
		},
	}
}

// betFields carrega os três pickers em paralelo
func betFields(ctx context.Context, p pickers, f *BetForm) []screen.Field {
	var (
		g         errgroup.Group
		customers query.Result[[]dto.Customer]
		evs       query.Result[[]dto.Event]
		bookies   query.Result[[]dto.Bookie]
	)
	g.Go(func() error { customers = p.customers(ctx); return nil })
	g.Go(func() error { evs = p.events(ctx); return nil })
	g.Go(func() error { bookies = p.bookies(ctx); return nil })
	_ = g.Wait()

	customerField := pickerField("customer_id", "Customer", true, customers, "Failed to load customers",
		func(cs []dto.Customer) []screen.Option { return CustomerOptions(cs, f.CustomerID) })
	customerField.Value = f.CustomerID
	eventField := pickerField("event_id", "Event", true, evs, "Failed to load events",
		func(es []dto.Event) []screen.Option { return EventOptions(es, f.EventID) })
	eventField.Value = f.EventID
	bookieField := pickerField("bookie", "Bookie", false, bookies, "Failed to load bookies",
		func(bs []dto.Bookie) []screen.Option { return BookieOptions(bs, f.Bookie) })
	bookieField.Value = f.Bookie

	return []screen.Field{
		customerField,
		eventField,
		{Name: "placement_status", Label: "Status", Kind: screen.FieldSelect, Required: true,
			Value: f.PlacementStatus, Options: choices(dto.PlacementStatuses, f.PlacementStatus)},
		{Name: "stake_amount", Label: "Stake amount", Kind: screen.FieldNumber, Required: true, Value: f.StakeAmount},
		{Name: "stake_currency", Label: "Currency", Kind: screen.FieldSelect, Required: true,
			Value: f.StakeCurrency, Options: choices(dto.Currencies, f.StakeCurrency)},
		{Name: "odds", Label: "Odds", Kind: screen.FieldNumber, Required: true, Value: f.Odds},
		bookieField,
	}
}

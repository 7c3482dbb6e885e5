package dto

import (
	"github.com/shopspring/decimal"
)

func init() {
	// o backend espera números, não strings, em stake/odds/balance
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	PlacementPlaced = "placed"
	PlacementFailed = "failed"

	OutcomeWin  = "win"
	OutcomeLose = "lose"
	OutcomeVoid = "void"

	EventPrematch = "prematch"
	EventLive     = "live"
	EventFinished = "finished"
)

var (
	PlacementStatuses = []string{PlacementPlaced, PlacementFailed}
	Outcomes          = []string{OutcomeWin, OutcomeLose, OutcomeVoid}
	EventStatuses     = []string{EventPrematch, EventLive, EventFinished}
	Currencies        = []string{"USD", "EUR", "GBP"}
)

// Bet espelha o registro do backend; campos nulos chegam como zero/nil
type Bet struct {
	ID              int64               `json:"id"`
	Bookie          string              `json:"bookie"`
	CustomerID      *int64              `json:"customer_id"`
	CustomerName    *string             `json:"customer_name,omitempty"`
	EventID         *int64              `json:"event_id"`
	Sport           string              `json:"sport"`
	PlacementStatus string              `json:"placement_status"`
	Outcome         *string             `json:"outcome"`
	StakeAmount     decimal.NullDecimal `json:"stake_amount"`
	StakeCurrency   string              `json:"stake_currency"`
	Odds            decimal.NullDecimal `json:"odds"`
	CreatedAt       Time                `json:"created_at"`
}

type Bookie struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Customer struct {
	ID            int64           `json:"id"`
	Username      string          `json:"username"`
	RealName      *string         `json:"real_name"`
	Currency      string          `json:"currency"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
}

type BalanceChange struct {
	ID            int64           `json:"id"`
	ChangeType    string          `json:"change_type"`
	DeltaAmount   decimal.Decimal `json:"delta_amount"`
	DeltaCurrency string          `json:"delta_currency"`
	ReferenceID   *string         `json:"reference_id"`
	Description   *string         `json:"description"`
	CreatedAt     Time            `json:"created_at"`
}

type Event struct {
	ID            int64  `json:"id"`
	Date          Time   `json:"date"`
	CompetitionID int64  `json:"competition_id"`
	TeamAID       int64  `json:"team_a_id"`
	TeamBID       int64  `json:"team_b_id"`
	Status        string `json:"status"`
	Sport         string `json:"sport,omitempty"`
}

type Competition struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Sport string `json:"sport"`
}

type Team struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Sport string `json:"sport"`
}

// Str devolve o valor ou o placeholder usado nas tabelas
func Str(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}

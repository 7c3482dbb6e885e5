package dto

import "github.com/shopspring/decimal"

type CreateBetRequest struct {
	Bookie          string          `json:"bookie"`
	CustomerID      int64           `json:"customer_id"`
	EventID         int64           `json:"event_id"`
	PlacementStatus string          `json:"placement_status"`
	StakeAmount     decimal.Decimal `json:"stake_amount"`
	StakeCurrency   string          `json:"stake_currency"`
	Odds            decimal.Decimal `json:"odds"`
}

// UpdateBetRequest só carrega os dois campos editáveis; outcome vazio vai como null
type UpdateBetRequest struct {
	PlacementStatus string  `json:"placement_status"`
	Outcome         *string `json:"outcome"`
}

type CreateBookieRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateCustomerRequest struct {
	Username      string          `json:"username"`
	RealName      *string         `json:"real_name"`
	Currency      string          `json:"currency"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
}

type CreateEventRequest struct {
	Date          Time   `json:"date"`
	CompetitionID int64  `json:"competition_id"`
	TeamAID       int64  `json:"team_a_id"`
	TeamBID       int64  `json:"team_b_id"`
	Status        string `json:"status"`
}

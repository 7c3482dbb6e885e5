package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/radieske/betting-backoffice/internal/backoffice/api/dto"
)

// ListParams vira search/status/limit/offset; Limit 0 pede a lista completa
type ListParams struct {
	Search string
	Status string
	Limit  int
	Offset int
}

func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	return v
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

// Bets

func (c *Client) ListBets(ctx context.Context, p ListParams) (dto.Page[dto.Bet], error) {
	var out dto.Page[dto.Bet]
	err := c.Get(ctx, "/bets/", p.Values(), &out)
	return out, err
}

func (c *Client) CreateBet(ctx context.Context, req dto.CreateBetRequest) error {
	return c.Post(ctx, "/bets/", req, nil)
}

func (c *Client) UpdateBet(ctx context.Context, betID int64, req dto.UpdateBetRequest, version string) error {
	return c.Put(ctx, "/bets/"+id(betID), req, nil, IfMatch(version))
}

func (c *Client) DeleteBet(ctx context.Context, betID int64, version string) error {
	return c.Delete(ctx, "/bets/"+id(betID), nil, IfMatch(version))
}

// Bookies

func (c *Client) ListBookies(ctx context.Context, p ListParams) (dto.Page[dto.Bookie], error) {
	var out dto.Page[dto.Bookie]
	err := c.Get(ctx, "/bookies/", p.Values(), &out)
	return out, err
}

func (c *Client) CreateBookie(ctx context.Context, req dto.CreateBookieRequest) error {
	return c.Post(ctx, "/bookies/", req, nil)
}

// DeleteBookie usa o nome como chave; não há checagem de apostas que o referenciam
func (c *Client) DeleteBookie(ctx context.Context, name, version string) error {
	return c.Delete(ctx, "/bookies/"+url.PathEscape(name), nil, IfMatch(version))
}

// Customers

func (c *Client) ListCustomers(ctx context.Context, p ListParams) (dto.Page[dto.Customer], error) {
	var out dto.Page[dto.Customer]
	err := c.Get(ctx, "/customers/", p.Values(), &out)
	return out, err
}

func (c *Client) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) error {
	return c.Post(ctx, "/customers/", req, nil)
}

func (c *Client) DeleteCustomer(ctx context.Context, customerID int64, version string) error {
	return c.Delete(ctx, "/customers/"+id(customerID), nil, IfMatch(version))
}

func (c *Client) ListBalanceChanges(ctx context.Context, customerID int64) ([]dto.BalanceChange, error) {
	var out dto.Page[dto.BalanceChange]
	err := c.Get(ctx, "/customers/"+id(customerID)+"/balance-changes", nil, &out)
	return out.Items, err
}

// Events

func (c *Client) ListEvents(ctx context.Context, p ListParams) (dto.Page[dto.Event], error) {
	var out dto.Page[dto.Event]
	err := c.Get(ctx, "/events/", p.Values(), &out)
	return out, err
}

func (c *Client) CreateEvent(ctx context.Context, req dto.CreateEventRequest) error {
	return c.Post(ctx, "/events/", req, nil)
}

func (c *Client) DeleteEvent(ctx context.Context, eventID int64, version string) error {
	return c.Delete(ctx, "/events/"+id(eventID), nil, IfMatch(version))
}

// Lookups

func (c *Client) ListCompetitions(ctx context.Context) ([]dto.Competition, error) {
	var out dto.Page[dto.Competition]
	err := c.Get(ctx, "/competitions/", nil, &out)
	return out.Items, err
}

func (c *Client) ListTeams(ctx context.Context) ([]dto.Team, error) {
	var out dto.Page[dto.Team]
	err := c.Get(ctx, "/teams/", nil, &out)
	return out.Items, err
}

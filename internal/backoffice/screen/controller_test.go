package screen

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/betting-backoffice/internal/backoffice/api"
	"github.com/radieske/betting-backoffice/internal/backoffice/api/dto"
	"github.com/radieske/betting-backoffice/internal/backoffice/query"
	"github.com/radieske/betting-backoffice/pkg/contracts/events"
)

type item struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type itemForm struct {
	Name   string `form:"name" validate:"required"`
	Amount string `form:"amount" validate:"required,numeric"`
	Status string `form:"status" validate:"omitempty,oneof=open closed"`
}

func (f *itemForm) Bind(v url.Values) {
	f.Name = strings.TrimSpace(v.Get("name"))
	f.Amount = v.Get("amount")
	f.Status = v.Get("status")
}

func (f *itemForm) Validate() error { return ValidateForm(f) }

type fakeBackend struct {
	rows    []item
	paged   bool
	lists   []api.ListParams
	creates int32
	deletes int32
	fail    error
}

func (b *fakeBackend) list(_ context.Context, p api.ListParams) (dto.Page[item], error) {
	b.lists = append(b.lists, p)
	if b.fail != nil {
		return dto.Page[item]{}, b.fail
	}
	if !b.paged {
		return dto.Page[item]{Items: b.rows, Total: len(b.rows)}, nil
	}
	end := p.Offset + p.Limit
	if end > len(b.rows) {
		end = len(b.rows)
	}
	return dto.Page[item]{Items: b.rows[p.Offset:end], Total: len(b.rows), Paged: true}, nil
}

type captureRecorder struct{ events []events.BackofficeMutation }

func (c *captureRecorder) Record(_ context.Context, e events.BackofficeMutation) error {
	c.events = append(c.events, e)
	return nil
}

func newItems(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{ID: i + 1, Name: "row" + strconv.Itoa(i+1), Status: "open"}
	}
	return out
}

func newTestController(t *testing.T, b *fakeBackend) (*Controller[item], *captureRecorder) {
	t.Helper()
	q := query.NewClient(query.NewMemoryStore(), query.Options{TTL: time.Minute}, zap.NewNop(), query.Hooks{})
	rec := &captureRecorder{}
	s := Schema[item]{
		Entity:  "items",
		List:    b.list,
		ID:      func(it item) string { return strconv.Itoa(it.ID) },
		Match:   func(it item, q string) bool { return strings.Contains(it.Name, q) },
		Headers: []string{"Name"},
		Cells: func(_ context.Context, rows []item) [][]string {
			out := make([][]string, len(rows))
			for i, r := range rows {
				out[i] = []string{r.Name}
			}
			return out
		},
		NewForm: func() Form { return &itemForm{} },
		Create: func(context.Context, Form) error {
			atomic.AddInt32(&b.creates, 1)
			return nil
		},
		Edit: &EditSpec[item]{
			NewForm: func(it item) Form { return &itemForm{Name: it.Name} },
			Submit: func(_ context.Context, it item, f Form, _ string) error {
				for i := range b.rows {
					if b.rows[i].ID == it.ID {
						b.rows[i].Name = f.(*itemForm).Name
					}
				}
				return nil
			},
		},
		Delete: func(_ context.Context, it item, _ string) error {
			atomic.AddInt32(&b.deletes, 1)
			for i := range b.rows {
				if b.rows[i].ID == it.ID {
					b.rows = append(b.rows[:i], b.rows[i+1:]...)
					break
				}
			}
			return nil
		},
		History: &HistorySpec[item]{
			Title: "Changes",
			Key:   func(it item) query.Key { return query.NewKey("items", it.ID, "history") },
			Load: func(_ context.Context, it item) (Table, error) {
				return Table{Headers: []string{"What"}, Rows: [][]string{{"created " + it.Name}}}, nil
			},
		},
	}
	return NewController(s, q, rec, zap.NewNop()), rec
}

func TestListServerPaged(t *testing.T) {
	b := &fakeBackend{rows: newItems(25), paged: true}
	c, _ := newTestController(t, b)

	v := c.List(context.Background(), State{Page: 3, Filter: "open", Search: "row"})
	require.NoError(t, v.Err)
	assert.Equal(t, "ready", v.Phase)
	assert.Len(t, v.Rows, 5)
	assert.Equal(t, 25, v.Total)
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, "21", v.Rows[0].ID)
	assert.Equal(t, []string{"row21"}, v.Rows[0].Cells)
	assert.Len(t, v.Rows[0].Version, 24)

	require.Len(t, b.lists, 1)
	assert.Equal(t, api.ListParams{Search: "row", Status: "open", Limit: 10, Offset: 20}, b.lists[0])
}

func TestListBareArrayFiltersLocally(t *testing.T) {
	b := &fakeBackend{rows: newItems(12)}
	c, _ := newTestController(t, b)

	v := c.List(context.Background(), State{Page: 1, Search: "row1"})
	// row1, row10, row11, row12
	assert.Equal(t, 4, v.Total)
	assert.Equal(t, 1, v.TotalPages)
	assert.Len(t, v.Rows, 4)

	v = c.List(context.Background(), State{Page: 2})
	assert.Equal(t, 12, v.Total)
	assert.Equal(t, 2, v.TotalPages)
	assert.Len(t, v.Rows, 2)

	// página além do fim não quebra
	v = c.List(context.Background(), State{Page: 9})
	assert.Empty(t, v.Rows)
}

func TestListErrorClearsRows(t *testing.T) {
	b := &fakeBackend{fail: &api.Error{Status: 500, Detail: "boom"}}
	c, _ := newTestController(t, b)

	v := c.List(context.Background(), NewState())
	assert.Equal(t, "error", v.Phase)
	assert.Empty(t, v.Rows)
	assert.Equal(t, 1, v.TotalPages)
}

func TestCreateValidationSkipsBackend(t *testing.T) {
	b := &fakeBackend{rows: newItems(1)}
	c, rec := newTestController(t, b)

	_, err := c.Create(context.Background(), url.Values{"name": {""}, "amount": {"abc"}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Fill required fields", verr.Message)
	assert.Equal(t, "is required", verr.Fields["name"])
	assert.Equal(t, "must be a number", verr.Fields["amount"])

	_, err = c.Create(context.Background(), url.Values{"name": {"x"}, "amount": {"NaN"}})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid values", verr.Message)

	_, err = c.Create(context.Background(), url.Values{"name": {"x"}, "amount": {"1"}, "status": {"weird"}})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["status"], "open, closed")

	assert.Equal(t, int32(0), b.creates)
	assert.Empty(t, rec.events)
}

func TestCreateInvalidatesAndAudits(t *testing.T) {
	b := &fakeBackend{rows: newItems(2), paged: true}
	c, rec := newTestController(t, b)
	ctx := context.Background()

	c.List(ctx, NewState())
	c.List(ctx, NewState())
	assert.Len(t, b.lists, 1) // cache

	_, err := c.Create(ctx, url.Values{"name": {"new"}, "amount": {"10.50"}})
	require.NoError(t, err)
	assert.Equal(t, int32(1), b.creates)

	c.List(ctx, NewState())
	assert.Len(t, b.lists, 2)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "items", rec.events[0].Entity)
	assert.Equal(t, "create", rec.events[0].Operation)
	assert.JSONEq(t, `{"Name":"new","Amount":"10.50","Status":""}`, string(rec.events[0].Payload))
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	b := &fakeBackend{rows: newItems(3), paged: true}
	c, _ := newTestController(t, b)
	ctx := context.Background()
	row := c.List(ctx, NewState()).Rows[1]

	err := c.Delete(ctx, NewState(), row.ID, row.Version, false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, int32(0), b.deletes)

	require.NoError(t, c.Delete(ctx, NewState(), row.ID, row.Version, true))
	assert.Equal(t, int32(1), b.deletes)

	v := c.List(ctx, NewState())
	assert.Len(t, v.Rows, 2)
}

func TestDeleteStaleVersion(t *testing.T) {
	b := &fakeBackend{rows: newItems(3), paged: true}
	c, rec := newTestController(t, b)
	ctx := context.Background()
	row := c.List(ctx, NewState()).Rows[0]

	// alguém alterou a linha fora deste console
	b.rows[0].Status = "closed"
	err := c.Delete(ctx, NewState(), row.ID, row.Version, true)
	assert.ErrorIs(t, err, ErrStaleVersion)
	assert.Equal(t, int32(0), b.deletes)

	// linha que sumiu também é versão velha
	err = c.Delete(ctx, NewState(), "99", row.Version, true)
	assert.ErrorIs(t, err, ErrStaleVersion)
	assert.Empty(t, rec.events)
}

func TestVersionCheckSkipsCells(t *testing.T) {
	b := &fakeBackend{rows: newItems(2), paged: true}
	c, _ := newTestController(t, b)
	ctx := context.Background()
	row := c.List(ctx, NewState()).Rows[0]

	var cellCalls int32
	c.S.Cells = func(_ context.Context, rows []item) [][]string {
		atomic.AddInt32(&cellCalls, 1)
		return nil
	}
	require.NoError(t, c.Delete(ctx, NewState(), row.ID, row.Version, true))
	assert.Equal(t, int32(0), atomic.LoadInt32(&cellCalls))
	assert.Equal(t, int32(1), b.deletes)
}

func TestUpdateChecksVersionThenSubmits(t *testing.T) {
	b := &fakeBackend{rows: newItems(2), paged: true}
	c, rec := newTestController(t, b)
	ctx := context.Background()
	row := c.List(ctx, NewState()).Rows[0]

	_, err := c.Update(ctx, NewState(), row.ID, row.Version, url.Values{"name": {"renamed"}, "amount": {"1"}})
	require.NoError(t, err)
	assert.Equal(t, "renamed", c.List(ctx, NewState()).Rows[0].Item.Name)

	// o token antigo não vale mais
	_, err = c.Update(ctx, NewState(), row.ID, row.Version, url.Values{"name": {"again"}, "amount": {"1"}})
	assert.ErrorIs(t, err, ErrStaleVersion)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "update", rec.events[0].Operation)
	assert.Equal(t, row.ID, rec.events[0].TargetID)
	assert.Equal(t, row.Version, rec.events[0].Version)
}

func TestMutationFailureKeepsList(t *testing.T) {
	b := &fakeBackend{rows: newItems(2), paged: true}
	c, _ := newTestController(t, b)
	c.S.Delete = func(context.Context, item, string) error {
		return &api.Error{Status: 400, Detail: "Bookie in use"}
	}
	ctx := context.Background()
	row := c.List(ctx, NewState()).Rows[0]

	err := c.Delete(ctx, NewState(), row.ID, row.Version, true)
	assert.Equal(t, "Bookie in use", api.DetailOf(err, "Delete failed"))
	assert.Len(t, c.List(ctx, NewState()).Rows, 2)
}

func TestHistoryAndFind(t *testing.T) {
	b := &fakeBackend{rows: newItems(2), paged: true}
	c, _ := newTestController(t, b)
	ctx := context.Background()

	row, h, err := c.History(ctx, NewState(), "2")
	require.NoError(t, err)
	assert.Equal(t, "row2", row.Item.Name)
	assert.Equal(t, "ready", h.Phase)
	assert.Equal(t, [][]string{{"created row2"}}, h.Table.Rows)

	_, err = c.Find(ctx, NewState(), "42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnsupportedOperations(t *testing.T) {
	b := &fakeBackend{rows: newItems(1), paged: true}
	c, _ := newTestController(t, b)
	c.S.Edit = nil
	c.S.History = nil

	_, err := c.Update(context.Background(), NewState(), "1", "v", nil)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, _, err = c.History(context.Background(), NewState(), "1")
	assert.True(t, errors.Is(err, ErrUnsupported))
}

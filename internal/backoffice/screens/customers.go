package screens

import (
	"context"
	"net/url"

	"github.com/radieske/betting-backoffice/internal/backoffice/api/dto"
	"github.com/radieske/betting-backoffice/internal/backoffice/query"
	"github.com/radieske/betting-backoffice/internal/backoffice/screen"
)

type CustomerForm struct {
	Username      string `form:"username" validate:"required"`
	RealName      string `form:"real_name"`
	Currency      string `form:"currency" validate:"required,oneof=USD EUR GBP"`
	BalanceAmount string `form:"balance_amount" validate:"omitempty,numeric"`
}

func NewCustomerForm() *CustomerForm {
	return &CustomerForm{Currency: "USD", BalanceAmount: "0"}
}

func (f *CustomerForm) Bind(v url.Values) {
	set(v, "username", &f.Username)
	set(v, "real_name", &f.RealName)
	set(v, "currency", &f.Currency)
	set(v, "balance_amount", &f.BalanceAmount)
}

func (f *CustomerForm) Validate() error { return screen.ValidateForm(f) }

// Request: nome real vazio vai como null, saldo vazio como zero
func (f *CustomerForm) Request() dto.CreateCustomerRequest {
	req := dto.CreateCustomerRequest{
		Username:      f.Username,
		Currency:      f.Currency,
		BalanceAmount: screen.Decimal(f.BalanceAmount),
	}
	if f.RealName != "" {
		name := f.RealName
		req.RealName = &name
	}
	return req
}

func balanceTable(changes []dto.BalanceChange) screen.Table {
	t := screen.Table{Headers: []string{"ID", "Type", "Delta", "Reference", "Description", "Date"}}
	for _, c := range changes {
		t.Rows = append(t.Rows, []string{
			formatID(c.ID),
			c.ChangeType,
			c.DeltaAmount.String() + " " + c.DeltaCurrency,
			dto.Str(c.ReferenceID),
			dto.Str(c.Description),
			c.CreatedAt.Display(),
		})
	}
	return t
}

func customers(d Deps) screen.Schema[dto.Customer] {
	return screen.Schema[dto.Customer]{
		Entity:   "customers",
		Title:    "Customers",
		Singular: "customer",
		PageSize: d.PageSize,

		List: d.API.ListCustomers,
		ID:   func(c dto.Customer) string { return formatID(c.ID) },
		Match: func(c dto.Customer, q string) bool {
			realName := ""
			if c.RealName != nil {
				realName = *c.RealName
			}
			return contains(q, c.Username, realName)
		},

		Headers: []string{"ID", "Username", "Real name", "Currency", "Balance"},
		Cells: func(_ context.Context, rows []dto.Customer) [][]string {
			out := make([][]string, len(rows))
			for i, c := range rows {
				out[i] = []string{formatID(c.ID), c.Username, dto.Str(c.RealName), c.Currency, c.BalanceAmount.String()}
			}
			return out
		},

		NewForm: func() screen.Form { return NewCustomerForm() },
		Fields: func(_ context.Context, f screen.Form) []screen.Field {
			cf := f.(*CustomerForm)
			return []screen.Field{
				{Name: "username", Label: "Username", Kind: screen.FieldText, Required: true, Value: cf.Username},
				{Name: "real_name", Label: "Real name", Kind: screen.FieldText, Value: cf.RealName},
				{Name: "currency", Label: "Currency", Kind: screen.FieldSelect, Required: true,
					Value: cf.Currency, Options: choices(dto.Currencies, cf.Currency)},
				{Name: "balance_amount", Label: "Balance amount", Kind: screen.FieldNumber, Value: cf.BalanceAmount},
			}
		},
		Create: func(ctx context.Context, f screen.Form) error {
			return d.API.CreateCustomer(ctx, f.(*CustomerForm).Request())
		},
		Delete: func(ctx context.Context, c dto.Customer, version string) error {
			return d.API.DeleteCustomer(ctx, c.ID, version)
		},

		History: &screen.HistorySpec[dto.Customer]{
			Title: "Balance history",
			Key: func(c dto.Customer) query.Key {
				return query.NewKey("customers", c.ID, "balance-changes")
			},
			Load: func(ctx context.Context, c dto.Customer) (screen.Table, error) {
				changes, err := d.API.ListBalanceChanges(ctx, c.ID)
				if err != nil {
					return screen.Table{}, err
				}
				return balanceTable(changes), nil
			},
		},
	}
}

package screens

import (
	"context"
	"net/url"

	"github.com/radieske/betting-backoffice/internal/backoffice/api/dto"
	"github.com/radieske/betting-backoffice/internal/backoffice/screen"
)

type BookieForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description"`
}

func (f *BookieForm) Bind(v url.Values) {
	set(v, "name", &f.Name)
	set(v, "description", &f.Description)
}

func (f *BookieForm) Validate() error { return screen.ValidateForm(f) }

func bookies(d Deps) screen.Schema[dto.Bookie] {
	return screen.Schema[dto.Bookie]{
		Entity:   "bookies",
		Title:    "Bookies",
		Singular: "bookie",
		PageSize: d.PageSize,

		List:  d.API.ListBookies,
		ID:    func(b dto.Bookie) string { return b.Name },
		Match: func(b dto.Bookie, q string) bool { return contains(q, b.Name, b.Description) },

		Headers: []string{"Name", "Description"},
		Cells: func(_ context.Context, rows []dto.Bookie) [][]string {
			out := make([][]string, len(rows))
			for i, b := range rows {
				out[i] = []string{b.Name, b.Description}
			}
			return out
		},

		NewForm: func() screen.Form { return &BookieForm{} },
		Fields: func(_ context.Context, f screen.Form) []screen.Field {
			bf := f.(*BookieForm)
			return []screen.Field{
				{Name: "name", Label: "Name", Kind: screen.FieldText, Required: true, Value: bf.Name},
				{Name: "description", Label: "Description", Kind: screen.FieldText, Value: bf.Description},
			}
		},
		Create: func(ctx context.Context, f screen.Form) error {
			bf := f.(*BookieForm)
			return d.API.CreateBookie(ctx, dto.CreateBookieRequest{Name: bf.Name, Description: bf.Description})
		},
		// o backend decide se um bookie referenciado por apostas pode sair
		Delete: func(ctx context.Context, b dto.Bookie, version string) error {
			return d.API.DeleteBookie(ctx, b.Name, version)
		},
	}
}

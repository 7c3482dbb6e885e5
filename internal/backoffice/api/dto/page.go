package dto

import (
	"bytes"
	"encoding/json"
)

// Page é a resposta de listagem. O backend responde {items, total} quando
// filtra/pagina, ou um array puro nas rotas antigas; Paged diferencia os dois.
type Page[T any] struct {
	Items []T  `json:"items"`
	Total int  `json:"total"`
	Paged bool `json:"-"`
}

func (p *Page[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = Page[T]{}
		return nil
	}

	if b[0] == '[' {
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*p = Page[T]{Items: items, Total: len(items)}
		return nil
	}

	var wire struct {
		Items []T  `json:"items"`
		Total *int `json:"total"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*p = Page[T]{Items: wire.Items, Total: len(wire.Items), Paged: true}
	if wire.Total != nil {
		p.Total = *wire.Total
	}
	return nil
}

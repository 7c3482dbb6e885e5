package screen

import (
	"context"
	"net/url"

	"github.com/radieske/betting-backoffice/internal/backoffice/api"
	"github.com/radieske/betting-backoffice/internal/backoffice/api/dto"
	"github.com/radieske/betting-backoffice/internal/backoffice/query"
)

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldNumber   FieldKind = "number"
	FieldSelect   FieldKind = "select"
	FieldDateTime FieldKind = "datetime-local"
	FieldHidden   FieldKind = "hidden"
)

type Option struct {
	Value    string
	Label    string
	Disabled bool
	Selected bool
}

// Field é um campo de formulário já resolvido para renderização.
// Loading/Error pertencem ao picker que alimenta Options.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Value    string
	Required bool
	Options  []Option
	Loading  bool
	Error    string // falha ao carregar o picker
	Invalid  string // problema de validação
	Disabled bool
	Refresh  bool // mudar o valor re-renderiza o diálogo (ex.: competição)
}

type Detail struct {
	Label string
	Value string
}

// Table é uma tabela já formatada (histórico de saldo, por exemplo)
type Table struct {
	Headers []string
	Rows    [][]string
}

type FilterSpec struct {
	Label   string
	Options []Option // Value "" = todos
}

// Form é o formulário de uma tela. Bind lê os valores postados, Validate
// roda sem rede.
type Form interface {
	Bind(v url.Values)
	Validate() error
}

type EditSpec[T any] struct {
	NewForm func(row T) Form
	Fields  func(ctx context.Context, f Form) []Field
	Submit  func(ctx context.Context, row T, f Form, version string) error
}

type HistorySpec[T any] struct {
	Title string
	Key   func(row T) query.Key
	Load  func(ctx context.Context, row T) (Table, error)
}

// Schema descreve uma tela: como listar, criar, editar e remover T
type Schema[T any] struct {
	Entity   string // chave do cache e prefixo das rotas
	Title    string
	Singular string
	PageSize int
	Filter   *FilterSpec

	List  func(ctx context.Context, p api.ListParams) (dto.Page[T], error)
	ID    func(row T) string
	Match func(row T, search string) bool // só para respostas sem paginação

	Headers []string
	Cells   func(ctx context.Context, rows []T) [][]string
	Details func(row T) []Detail // nil = sem diálogo de visualização

	NewForm func() Form
	Fields  func(ctx context.Context, f Form) []Field
	Create  func(ctx context.Context, f Form) error

	Edit    *EditSpec[T]
	History *HistorySpec[T]
	Delete  func(ctx context.Context, row T, version string) error

	// Prefetch aquece os pickers ao abrir a tela, antes do diálogo
	Prefetch func(ctx context.Context)

	// Invalidates: vazio = a entidade inteira
	Invalidates []query.Key
}

package screen

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/radieske/betting-backoffice/internal/backoffice/api"
	"github.com/radieske/betting-backoffice/internal/backoffice/api/dto"
	"github.com/radieske/betting-backoffice/internal/backoffice/audit"
	"github.com/radieske/betting-backoffice/internal/backoffice/query"
)

const defaultPageSize = 10

// Controller executa as operações de uma tela sobre o cache de consultas
type Controller[T any] struct {
	S     Schema[T]
	q     *query.Client
	audit audit.Recorder
	log   *zap.Logger
}

func NewController[T any](s Schema[T], q *query.Client, rec audit.Recorder, log *zap.Logger) *Controller[T] {
	if s.PageSize <= 0 {
		s.PageSize = defaultPageSize
	}
	if rec == nil {
		rec = audit.Multi{}
	}
	return &Controller[T]{S: s, q: q, audit: rec, log: log.With(zap.String("screen", s.Entity))}
}

type Row[T any] struct {
	Item    T
	ID      string
	Version string
	Cells   []string
}

type ListView[T any] struct {
	State      State
	Rows       []Row[T]
	Total      int
	TotalPages int
	Phase      string
	Err        error
}

func (c *Controller[T]) listKey(st State) query.Key {
	return query.NewKey(c.S.Entity, st.Filter, st.Search, st.Page)
}

func (c *Controller[T]) listFn(st State) func(context.Context) (dto.Page[T], error) {
	size := c.S.PageSize
	return func(ctx context.Context) (dto.Page[T], error) {
		return c.S.List(ctx, api.ListParams{
			Search: st.Search,
			Status: st.Filter,
			Limit:  size,
			Offset: st.Offset(size),
		})
	}
}

// List lê a página do estado. Erro de leitura esvazia as linhas.
func (c *Controller[T]) List(ctx context.Context, st State) ListView[T] {
	res := query.Fetch(ctx, c.q, c.listKey(st), c.listFn(st))
	return c.view(ctx, st, res)
}

func (c *Controller[T]) view(ctx context.Context, st State, res query.Result[dto.Page[T]]) ListView[T] {
	v := ListView[T]{State: st, Phase: res.Phase(), Err: res.Err, TotalPages: 1}
	if res.Err != nil {
		return v
	}

	items, total := c.page(st, res.Data)
	v.Total = total
	v.TotalPages = TotalPages(total, c.S.PageSize)
	v.Rows = make([]Row[T], len(items))

	var cells [][]string
	if c.S.Cells != nil {
		cells = c.S.Cells(ctx, items)
	}
	for i, it := range items {
		v.Rows[i] = Row[T]{Item: it, ID: c.S.ID(it), Version: query.Token(it)}
		if i < len(cells) {
			v.Rows[i].Cells = cells[i]
		}
	}
	return v
}

// page aplica busca e paginação locais quando o backend devolveu um array puro
func (c *Controller[T]) page(st State, p dto.Page[T]) ([]T, int) {
	if p.Paged {
		return p.Items, p.Total
	}
	items := p.Items
	if st.Search != "" && c.S.Match != nil {
		filtered := make([]T, 0, len(items))
		for _, it := range items {
			if c.S.Match(it, st.Search) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	total := len(items)
	from := st.Offset(c.S.PageSize)
	if from > total {
		from = total
	}
	to := from + c.S.PageSize
	if to > total {
		to = total
	}
	return items[from:to], total
}

// Find procura a linha na página atual (o diálogo só abre a partir dela)
func (c *Controller[T]) Find(ctx context.Context, st State, id string) (Row[T], error) {
	v := c.List(ctx, st)
	if v.Err != nil {
		return Row[T]{}, v.Err
	}
	return findRow(v.Rows, id)
}

func findRow[T any](rows []Row[T], id string) (Row[T], error) {
	for _, r := range rows {
		if r.ID == id {
			return r, nil
		}
	}
	return Row[T]{}, ErrNotFound
}

// verify relê a página ignorando o cache e confere a versão da linha
func (c *Controller[T]) verify(ctx context.Context, st State, id, version string) (Row[T], error) {
	res := query.Refresh(ctx, c.q, c.listKey(st), c.listFn(st))
	if res.Err != nil {
		return Row[T]{}, res.Err
	}
	// só ID e versão; Cells pode esperar por lookups e aqui a linha está travada
	items, _ := c.page(st, res.Data)
	for _, it := range items {
		if c.S.ID(it) != id {
			continue
		}
		row := Row[T]{Item: it, ID: id, Version: query.Token(it)}
		if row.Version != version {
			return Row[T]{}, ErrStaleVersion
		}
		return row, nil
	}
	return Row[T]{}, ErrStaleVersion
}

// Draft devolve o formulário preenchido com o que foi postado, sem validar
func (c *Controller[T]) Draft(values url.Values) Form {
	f := c.S.NewForm()
	if values != nil {
		f.Bind(values)
	}
	return f
}

// Create valida sem rede e só então chama o backend, uma única vez
func (c *Controller[T]) Create(ctx context.Context, values url.Values) (Form, error) {
	f := c.Draft(values)
	if err := f.Validate(); err != nil {
		return f, err
	}

	m := query.Mutation{Entity: c.S.Entity, Op: "create", Invalidates: c.S.Invalidates}
	if err := c.q.Mutate(ctx, m, func(ctx context.Context) error { return c.S.Create(ctx, f) }); err != nil {
		return f, err
	}
	c.record(ctx, "create", "", "", f)
	return f, nil
}

// EditDraft é o formulário de edição preenchido com a linha atual
func (c *Controller[T]) EditDraft(row T, values url.Values) (Form, error) {
	if c.S.Edit == nil {
		return nil, ErrUnsupported
	}
	f := c.S.Edit.NewForm(row)
	if values != nil {
		f.Bind(values)
	}
	return f, nil
}

func (c *Controller[T]) Update(ctx context.Context, st State, id, version string, values url.Values) (Form, error) {
	var zero T
	f, err := c.EditDraft(zero, values)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return f, err
	}

	m := query.Mutation{Entity: c.S.Entity, Op: "update", Row: id, Invalidates: c.S.Invalidates}
	err = c.q.Mutate(ctx, m, func(ctx context.Context) error {
		row, err := c.verify(ctx, st, id, version)
		if err != nil {
			return err
		}
		return c.S.Edit.Submit(ctx, row.Item, f, version)
	})
	if err != nil {
		return f, err
	}
	c.record(ctx, "update", id, version, f)
	return f, nil
}

// Delete exige confirmação; sem ela nenhuma chamada é feita
func (c *Controller[T]) Delete(ctx context.Context, st State, id, version string, confirmed bool) error {
	if c.S.Delete == nil {
		return ErrUnsupported
	}
	if !confirmed {
		return ErrNotConfirmed
	}

	m := query.Mutation{Entity: c.S.Entity, Op: "delete", Row: id, Invalidates: c.S.Invalidates}
	err := c.q.Mutate(ctx, m, func(ctx context.Context) error {
		row, err := c.verify(ctx, st, id, version)
		if err != nil {
			return err
		}
		return c.S.Delete(ctx, row.Item, version)
	})
	if err != nil {
		return err
	}
	c.record(ctx, "delete", id, version, nil)
	return nil
}

type HistoryView struct {
	Title string
	Table Table
	Phase string
	Err   error
}

// History carrega, sob demanda, a tabela secundária de uma linha.
// Tem fase e erro próprios, independentes da listagem.
func (c *Controller[T]) History(ctx context.Context, st State, id string) (Row[T], HistoryView, error) {
	if c.S.History == nil {
		return Row[T]{}, HistoryView{}, ErrUnsupported
	}
	row, err := c.Find(ctx, st, id)
	if err != nil {
		return row, HistoryView{}, err
	}
	h := c.S.History
	res := query.Fetch(ctx, c.q, h.Key(row.Item), func(ctx context.Context) (Table, error) {
		return h.Load(ctx, row.Item)
	})
	return row, HistoryView{Title: h.Title, Table: res.Data, Phase: res.Phase(), Err: res.Err}, nil
}

// record não falha a operação: a escrita já aconteceu no backend
func (c *Controller[T]) record(ctx context.Context, op, target, version string, payload any) {
	e := audit.NewEvent(c.S.Entity, op, target, version, payload)
	if err := c.audit.Record(context.WithoutCancel(ctx), e); err != nil {
		c.log.Warn("audit record failed", zap.String("op", op), zap.String("target", target), zap.Error(err))
	}
}

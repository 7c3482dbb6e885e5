package screen

import (
	"net/url"
	"strconv"
	"strings"
)

type DialogKind string

const (
	DialogClosed   DialogKind = ""
	DialogCreating DialogKind = "creating"
	DialogEditing  DialogKind = "editing"
	DialogViewing  DialogKind = "viewing"
	DialogHistory  DialogKind = "history"
	DialogDeleting DialogKind = "deleting"
)

type Dialog struct {
	Kind   DialogKind
	Target string // id (ou nome, para bookies) da linha
}

// State é o estado de uma tela: filtros, página e diálogo aberto.
// Trafega na query string (GET) e em campos hidden (POST).
type State struct {
	Search string
	Filter string
	Page   int
	Dialog Dialog
}

func NewState() State { return State{Page: 1} }

// WithSearch volta para a página 1 sempre que o texto muda
func (s State) WithSearch(q string) State {
	q = strings.TrimSpace(q)
	if q != s.Search {
		s.Search = q
		s.Page = 1
	}
	return s
}

// WithFilter volta para a página 1 sempre que o filtro muda
func (s State) WithFilter(f string) State {
	if f != s.Filter {
		s.Filter = f
		s.Page = 1
	}
	return s
}

func (s State) WithPage(p int) State {
	if p < 1 {
		p = 1
	}
	s.Page = p
	return s
}

func (s State) Open(kind DialogKind, target string) State {
	s.Dialog = Dialog{Kind: kind, Target: target}
	return s
}

func (s State) Close() State {
	s.Dialog = Dialog{}
	return s
}

func (s State) Offset(size int) int {
	if size <= 0 {
		return 0
	}
	return (s.Page - 1) * size
}

// ParseState lê search/status/page. Se o formulário de filtro mandar os valores
// anteriores (prev_search/prev_status) e algum mudou, a página volta para 1.
func ParseState(q url.Values) State {
	s := State{
		Search: strings.TrimSpace(q.Get("prev_search")),
		Filter: q.Get("prev_status"),
		Page:   1,
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil {
		s = s.WithPage(p)
	}
	if _, ok := q["prev_search"]; !ok {
		s.Search = strings.TrimSpace(q.Get("search"))
		s.Filter = q.Get("status")
		return s
	}
	return s.WithSearch(q.Get("search")).WithFilter(q.Get("status"))
}

// Values é a forma serializada, sem os defaults
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	if s.Filter != "" {
		v.Set("status", s.Filter)
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	return v
}

// URL monta base + query do estado
func (s State) URL(base string) string {
	if q := s.Values().Encode(); q != "" {
		return base + "?" + q
	}
	return base
}

// TotalPages = ceil(total/size), mínimo 1
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

package http

import (
	"embed"
	"html/template"
	"io"
	"net/url"

	"github.com/radieske/betting-backoffice/internal/backoffice/screen"
)

//go:embed templates/*.html
var templateFS embed.FS

type Tab struct {
	Title string
	Path  string
}

type RowView struct {
	ID      string
	Version string
	Cells   []string
}

type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// DialogView é o diálogo aberto sobre a tabela
type DialogView struct {
	Kind        screen.DialogKind
	Title       string
	Action      string // POST; vazio = só leitura
	Fields      []screen.Field
	Details     []screen.Detail
	Table       *screen.Table
	Phase       string
	Alert       string
	Message     string
	Target      string
	Version     string
	SubmitLabel string
	Danger      bool
}

// PageView é tudo que o template precisa para uma tela
type PageView struct {
	Tabs   []Tab
	Active string

	Title    string
	Base     string
	Singular string
	State    screen.State
	Hidden   url.Values // estado da lista nos links (GET)
	Posted   url.Values // estado da lista nos formulários (POST), com prefixo list_
	Filter   *screen.FilterSpec

	Headers    []string
	Rows       []RowView
	Phase      string
	Banner     string
	Total      int
	Pages      []PageLink
	CanView    bool
	CanEdit    bool
	CanHistory bool

	Dialog *DialogView
}

// Link monta base/segmentos?estado; segmentos são escapados (nomes de bookie)
func (v PageView) Link(segments ...string) string {
	u := v.Base
	for _, s := range segments {
		u += "/" + url.PathEscape(s)
	}
	if q := v.Hidden.Encode(); q != "" {
		u += "?" + q
	}
	return u
}

type renderer struct {
	tpl *template.Template
}

func newRenderer() (*renderer, error) {
	tpl, err := template.New("console").Funcs(template.FuncMap{
		"selected": func(o screen.Option, value string) bool { return o.Selected || (value != "" && o.Value == value) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &renderer{tpl: tpl}, nil
}

func (r *renderer) page(w io.Writer, v PageView) error {
	return r.tpl.ExecuteTemplate(w, "layout", v)
}

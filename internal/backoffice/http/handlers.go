package http

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/betting-backoffice/internal/backoffice/api"
	"github.com/radieske/betting-backoffice/internal/backoffice/screen"
)

// screenHandler expõe um Controller[T] como páginas HTML. O estado da lista
// vai na query string dos GETs e em campos list_* dos POSTs.
type screenHandler[T any] struct {
	srv  *Server
	ctl  *screen.Controller[T]
	base string
	log  *zap.Logger
}

func (h *screenHandler[T]) mount(r chi.Router) {
	s := h.ctl.S
	r.Get("/", h.list)
	r.Get("/new", h.newForm)
	r.Post("/", h.create)
	r.Get("/{id}/delete", h.confirmDelete)
	r.Post("/{id}/delete", h.delete)
	if s.Details != nil {
		r.Get("/{id}", h.view)
	}
	if s.Edit != nil {
		r.Get("/{id}/edit", h.editForm)
		r.Post("/{id}", h.update)
	}
	if s.History != nil {
		r.Get("/{id}/history", h.history)
	}
}

// rowID: o chi só devolve o segmento ainda escapado quando a URL tem RawPath
// (ex: nome com "/"); sem RawPath o valor já vem decodificado
func rowID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id
	}
	if u, err := url.PathUnescape(id); err == nil {
		return u
	}
	return id
}

func postedValues(st screen.State) url.Values {
	out := url.Values{}
	for k, vs := range st.Values() {
		out["list_"+k] = vs
	}
	return out
}

func postedState(form url.Values) screen.State {
	q := url.Values{}
	for _, k := range []string{"search", "status", "page"} {
		if vs, ok := form["list_"+k]; ok {
			q[k] = vs
		}
	}
	return screen.ParseState(q)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (h *screenHandler[T]) pageView(ctx context.Context, st screen.State) PageView {
	s := h.ctl.S
	if s.Prefetch != nil {
		s.Prefetch(ctx)
	}

	lv := h.ctl.List(ctx, st)
	v := PageView{
		Tabs:       h.srv.tabs,
		Active:     h.base,
		Title:      s.Title,
		Base:       h.base,
		Singular:   s.Singular,
		State:      st,
		Hidden:     st.Values(),
		Posted:     postedValues(st),
		Filter:     s.Filter,
		Headers:    s.Headers,
		Phase:      lv.Phase,
		Total:      lv.Total,
		CanView:    s.Details != nil,
		CanEdit:    s.Edit != nil,
		CanHistory: s.History != nil,
	}
	if lv.Err != nil {
		h.log.Warn("list failed", zap.Error(lv.Err))
		v.Banner = "Failed to load " + strings.ToLower(s.Title) + ": " + api.DetailOf(lv.Err, "request failed")
		return v
	}

	v.Rows = make([]RowView, len(lv.Rows))
	for i, row := range lv.Rows {
		v.Rows[i] = RowView{ID: row.ID, Version: row.Version, Cells: row.Cells}
	}
	v.Pages = make([]PageLink, lv.TotalPages)
	for i := range v.Pages {
		n := i + 1
		v.Pages[i] = PageLink{Number: n, URL: st.WithPage(n).URL(h.base), Current: n == st.Page}
	}
	return v
}

func (h *screenHandler[T]) write(w http.ResponseWriter, status int, v PageView) {
	var buf bytes.Buffer
	if err := h.srv.rd.page(&buf, v); err != nil {
		h.log.Error("render failed", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// withDialog renderiza a lista com o diálogo por cima
func (h *screenHandler[T]) withDialog(w http.ResponseWriter, r *http.Request, st screen.State, status int, d *DialogView) {
	v := h.pageView(r.Context(), st)
	v.Dialog = d
	h.write(w, status, v)
}

func (h *screenHandler[T]) fail(w http.ResponseWriter, r *http.Request, st screen.State, kind screen.DialogKind, err error, fallback string) {
	h.withDialog(w, r, st, statusFor(err), &DialogView{Kind: kind, Title: capitalize(h.ctl.S.Singular), Alert: alertFor(err, fallback)})
}

func (h *screenHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	st := screen.ParseState(r.URL.Query())
	v := h.pageView(r.Context(), st)
	// página além do fim (ex.: depois de remover a última linha)
	if v.Phase == "ready" && st.Page > len(v.Pages) && len(v.Pages) > 0 {
		http.Redirect(w, r, st.WithPage(len(v.Pages)).URL(h.base), http.StatusSeeOther)
		return
	}
	h.write(w, http.StatusOK, v)
}

// Criação

func (h *screenHandler[T]) newForm(w http.ResponseWriter, r *http.Request) {
	st := screen.ParseState(r.URL.Query())
	h.renderCreate(w, r, st, h.ctl.Draft(nil), nil)
}

func (h *screenHandler[T]) renderCreate(w http.ResponseWriter, r *http.Request, st screen.State, f screen.Form, err error) {
	s := h.ctl.S
	d := &DialogView{
		Kind:        screen.DialogCreating,
		Title:       "Add " + s.Singular,
		Action:      h.base,
		Fields:      markInvalid(s.Fields(r.Context(), f), err),
		SubmitLabel: "Create",
	}
	if err != nil {
		d.Alert = alertFor(err, "Failed to create "+s.Singular)
	}
	h.withDialog(w, r, st, statusFor(err), d)
}

func (h *screenHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	st := postedState(r.PostForm)

	// troca de competição etc.: re-renderiza sem validar nem enviar
	if r.PostForm.Get("action") == "refresh" {
		h.renderCreate(w, r, st, h.ctl.Draft(r.PostForm), nil)
		return
	}

	f, err := h.ctl.Create(r.Context(), r.PostForm)
	if err != nil {
		h.log.Info("create rejected", zap.Error(err))
		h.renderCreate(w, r, st, f, err)
		return
	}
	st = screen.State{Search: st.Search, Filter: st.Filter, Page: 1}
	http.Redirect(w, r, st.URL(h.base), http.StatusSeeOther)
}

// Visualização e histórico

func (h *screenHandler[T]) view(w http.ResponseWriter, r *http.Request) {
	st := screen.ParseState(r.URL.Query())
	row, err := h.ctl.Find(r.Context(), st, rowID(r))
	if err != nil {
		h.fail(w, r, st, screen.DialogViewing, err, "Failed to load "+h.ctl.S.Singular)
		return
	}
	h.withDialog(w, r, st, http.StatusOK, &DialogView{
		Kind:    screen.DialogViewing,
		Title:   capitalize(h.ctl.S.Singular) + " details",
		Details: h.ctl.S.Details(row.Item),
		Target:  row.ID,
	})
}

func (h *screenHandler[T]) history(w http.ResponseWriter, r *http.Request) {
	st := screen.ParseState(r.URL.Query())
	row, hv, err := h.ctl.History(r.Context(), st, rowID(r))
	if err != nil {
		h.fail(w, r, st, screen.DialogHistory, err, "Failed to load history")
		return
	}
	d := &DialogView{
		Kind:   screen.DialogHistory,
		Title:  hv.Title + " #" + row.ID,
		Table:  &hv.Table,
		Phase:  hv.Phase,
		Target: row.ID,
	}
	status := http.StatusOK
	if hv.Err != nil {
		h.log.Warn("history failed", zap.String("row", row.ID), zap.Error(hv.Err))
		d.Alert = api.DetailOf(hv.Err, "Failed to load history")
		status = statusFor(hv.Err)
	}
	h.withDialog(w, r, st, status, d)
}

// Edição

func (h *screenHandler[T]) editForm(w http.ResponseWriter, r *http.Request) {
	st := screen.ParseState(r.URL.Query())
	row, err := h.ctl.Find(r.Context(), st, rowID(r))
	if err != nil {
		h.fail(w, r, st, screen.DialogEditing, err, "Failed to load "+h.ctl.S.Singular)
		return
	}
	f, err := h.ctl.EditDraft(row.Item, nil)
	if err != nil {
		h.fail(w, r, st, screen.DialogEditing, err, "Update failed")
		return
	}
	h.renderEdit(w, r, st, row.ID, row.Version, f, nil)
}

func (h *screenHandler[T]) renderEdit(w http.ResponseWriter, r *http.Request, st screen.State, id, version string, f screen.Form, err error) {
	s := h.ctl.S
	d := &DialogView{
		Kind:        screen.DialogEditing,
		Title:       "Edit " + s.Singular,
		Action:      h.base + "/" + url.PathEscape(id),
		Fields:      markInvalid(s.Edit.Fields(r.Context(), f), err),
		Target:      id,
		Version:     version,
		SubmitLabel: "Save",
	}
	if err != nil {
		d.Alert = alertFor(err, "Update failed")
	}
	h.withDialog(w, r, st, statusFor(err), d)
}

func (h *screenHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	st := postedState(r.PostForm)
	id := rowID(r)
	version := r.PostForm.Get("version")

	f, err := h.ctl.Update(r.Context(), st, id, version, r.PostForm)
	if err != nil {
		h.log.Info("update rejected", zap.String("row", id), zap.Error(err))
		if f == nil {
			h.fail(w, r, st, screen.DialogEditing, err, "Update failed")
			return
		}
		h.renderEdit(w, r, st, id, version, f, err)
		return
	}
	http.Redirect(w, r, st.URL(h.base), http.StatusSeeOther)
}

// Remoção

func (h *screenHandler[T]) deleteDialog(id, version string) *DialogView {
	s := h.ctl.S
	return &DialogView{
		Kind:        screen.DialogDeleting,
		Title:       "Delete " + s.Singular,
		Message:     "Delete " + s.Singular + " " + id + "?",
		Action:      h.base + "/" + url.PathEscape(id) + "/delete",
		Target:      id,
		Version:     version,
		SubmitLabel: "Delete",
		Danger:      true,
	}
}

func (h *screenHandler[T]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	st := screen.ParseState(r.URL.Query())
	row, err := h.ctl.Find(r.Context(), st, rowID(r))
	if err != nil {
		h.fail(w, r, st, screen.DialogDeleting, err, "Delete failed")
		return
	}
	h.withDialog(w, r, st, http.StatusOK, h.deleteDialog(row.ID, row.Version))
}

func (h *screenHandler[T]) delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	st := postedState(r.PostForm)
	id := rowID(r)
	version := r.PostForm.Get("version")

	err := h.ctl.Delete(r.Context(), st, id, version, r.PostForm.Get("confirm") == "yes")
	if err != nil {
		h.log.Info("delete rejected", zap.String("row", id), zap.Error(err))
		d := h.deleteDialog(id, version)
		d.Alert = alertFor(err, "Delete failed")
		h.withDialog(w, r, st, statusFor(err), d)
		return
	}
	http.Redirect(w, r, st.URL(h.base), http.StatusSeeOther)
}

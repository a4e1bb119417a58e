// Package fixture serves an embedded mock of the search UI so the harness
// can be exercised without a live deployment. The page imitates the real
// UI's asynchronous hint popup, including the "?" placeholder entry shown
// before real suggestions arrive.
package fixture

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/probelab/uiprobe/session"
)

//go:embed page.html
var pageHTML []byte

// Handler returns the fixture router: the mock page at / and a health
// endpoint at /healthz.
func Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(pageHTML)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	return r
}

// Selectors returns the selector table matching the fixture page layout.
func Selectors() *session.Table {
	return &session.Table{
		Version: "fixture-v1",
		Selectors: map[string]session.Selector{
			session.ElemPageReady:      {Kind: session.KindCSS, Expr: "#query"},
			session.ElemQueryInput:     {Kind: session.KindCSS, Expr: "#query"},
			session.ElemHintPopup:      {Kind: session.KindCSS, Expr: "#hints"},
			session.ElemHintItem:       {Kind: session.KindCSS, Expr: ".autocomplete-hint"},
			session.ElemExamplesButton: {Kind: session.KindCSS, Expr: "#examples-btn"},
			session.ElemExamplesMenu:   {Kind: session.KindCSS, Expr: "#examples-menu"},
			session.ElemExampleEntry:   {Kind: session.KindXPath, Expr: `//ul[@id='examples-menu']//span[contains(text(), '%s')]`},
			session.ElemResultPanel:    {Kind: session.KindCSS, Expr: "#result"},
			session.ElemResultLine:     {Kind: session.KindXPath, Expr: `//div[@id='result']//span[@role]`},
		},
	}
}

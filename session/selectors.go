package session

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Selector kinds.
const (
	KindCSS   = "css"
	KindXPath = "xpath"
)

// Symbolic element names used by the verification core. Adapters resolve
// them through their Table so the core never depends on a rendering
// structure.
const (
	ElemPageReady      = "page_ready"
	ElemQueryInput     = "query_input"
	ElemHintPopup      = "hint_popup"
	ElemHintItem       = "hint_item"
	ElemExamplesButton = "examples_button"
	ElemExamplesMenu   = "examples_menu"
	ElemExampleEntry   = "example_entry"
	ElemResultPanel    = "result_panel"
	ElemResultLine     = "result_line"
)

// Selector locates one UI element. Expr may contain a %s placeholder that
// Resolve fills from its args (label lookups in menus).
type Selector struct {
	Kind string `yaml:"kind"`
	Expr string `yaml:"expr"`
}

// Table is a named, versioned selector table: one symbolic name per UI
// element of the page under test.
type Table struct {
	Version   string              `yaml:"version"`
	Selectors map[string]Selector `yaml:"selectors"`
}

// Resolve returns the selector registered under name, with args applied
// to its expression template.
func (t *Table) Resolve(name string, args ...any) (Selector, error) {
	sel, ok := t.Selectors[name]
	if !ok {
		return Selector{}, fmt.Errorf("session: no selector named %q in table %q", name, t.Version)
	}
	if len(args) > 0 {
		sel.Expr = fmt.Sprintf(sel.Expr, args...)
	}
	return sel, nil
}

// DefaultTable returns the selector table for the stock QLever UI layout.
func DefaultTable() *Table {
	return &Table{
		Version: "qlever-ui-v1",
		Selectors: map[string]Selector{
			ElemPageReady:      {Kind: KindCSS, Expr: "#query"},
			ElemQueryInput:     {Kind: KindXPath, Expr: "/html/body/div[1]/div[5]/div/div[1]/div/div[1]/textarea"},
			ElemHintPopup:      {Kind: KindXPath, Expr: "/html/body/ul"},
			ElemHintItem:       {Kind: KindCSS, Expr: ".CodeMirror-hint"},
			ElemExamplesButton: {Kind: KindXPath, Expr: "/html/body/div[1]/div[5]/div/div[3]/div[2]/button[4]"},
			ElemExamplesMenu:   {Kind: KindXPath, Expr: "/html/body/div[1]/div[5]/div/div[3]/div[2]/ul"},
			ElemExampleEntry:   {Kind: KindXPath, Expr: `//span[contains(text(), '%s')]`},
			ElemResultPanel:    {Kind: KindXPath, Expr: "/html/body/div[1]/div[5]/div/div[1]/div/div[6]/div[1]/div/div/div/div[5]"},
			ElemResultLine:     {Kind: KindXPath, Expr: `//span[@role]`},
		},
	}
}

// CoreNames lists every symbolic name the verification core resolves. A
// custom table must cover all of them.
func CoreNames() []string {
	return []string{
		ElemPageReady, ElemQueryInput, ElemHintPopup, ElemHintItem,
		ElemExamplesButton, ElemExamplesMenu, ElemExampleEntry,
		ElemResultPanel, ElemResultLine,
	}
}

// LoadTableFile reads a YAML selector table and verifies it covers every
// name the core uses.
func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session: read selector table: %w", err)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("session: parse selector table: %w", err)
	}

	for _, name := range CoreNames() {
		if _, ok := t.Selectors[name]; !ok {
			return nil, fmt.Errorf("session: selector table %q is missing %q", t.Version, name)
		}
	}
	return &t, nil
}

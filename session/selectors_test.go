package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTable_CoversCoreNames(t *testing.T) {
	table := DefaultTable()
	for _, name := range CoreNames() {
		if _, err := table.Resolve(name); err != nil {
			t.Errorf("default table missing %q: %v", name, err)
		}
	}
}

func TestResolve_Templating(t *testing.T) {
	table := DefaultTable()
	sel, err := table.Resolve(ElemExampleEntry, "All Plants")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.Contains(sel.Expr, "All Plants") {
		t.Errorf("Expr = %q, want the label substituted", sel.Expr)
	}
	// The table itself must stay untouched.
	again, _ := table.Resolve(ElemExampleEntry, "Other")
	if !strings.Contains(again.Expr, "Other") {
		t.Errorf("second Resolve = %q", again.Expr)
	}
}

func TestResolve_UnknownName(t *testing.T) {
	table := DefaultTable()
	if _, err := table.Resolve("no_such_element"); err == nil {
		t.Fatal("Resolve of an unknown name should error")
	}
}

func TestLoadTableFile(t *testing.T) {
	const doc = `
version: custom-v2
selectors:
  page_ready: {kind: css, expr: "#q"}
  query_input: {kind: css, expr: "#q"}
  hint_popup: {kind: css, expr: "#hints"}
  hint_item: {kind: css, expr: ".hint"}
  examples_button: {kind: css, expr: "#examples"}
  examples_menu: {kind: css, expr: "#examples-menu"}
  example_entry: {kind: xpath, expr: "//span[contains(text(), '%s')]"}
  result_panel: {kind: css, expr: "#result"}
  result_line: {kind: xpath, expr: "//span[@role]"}
`
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTableFile(path)
	if err != nil {
		t.Fatalf("LoadTableFile: %v", err)
	}
	if table.Version != "custom-v2" {
		t.Errorf("Version = %q", table.Version)
	}
	sel, err := table.Resolve(ElemPageReady)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sel.Kind != KindCSS || sel.Expr != "#q" {
		t.Errorf("page_ready = %+v", sel)
	}
}

func TestLoadTableFile_IncompleteTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("version: v0\nselectors:\n  page_ready: {kind: css, expr: \"#q\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTableFile(path); err == nil {
		t.Fatal("incomplete table should be rejected")
	}
}

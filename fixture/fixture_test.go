package fixture

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/probelab/uiprobe/session"
)

func TestHandler_ServesPage(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	for _, marker := range []string{`id="query"`, `id="hints"`, `id="examples-btn"`, "?loading"} {
		if !strings.Contains(string(body), marker) {
			t.Errorf("page missing %q", marker)
		}
	}
}

func TestHandler_Health(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestSelectors_CoverCoreNames(t *testing.T) {
	table := Selectors()
	for _, name := range session.CoreNames() {
		if _, err := table.Resolve(name); err != nil {
			t.Errorf("fixture table missing %q: %v", name, err)
		}
	}
}

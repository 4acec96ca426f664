package feed

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := NewServer(NewGenerator(7, 4), log.New(io.Discard))
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func getPage(t *testing.T, url string) (Page, int) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	var page Page
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return page, resp.StatusCode
}

func TestServerFirstPage(t *testing.T) {
	srv := newTestServer(t)

	page, status := getPage(t, srv.URL+"/cards")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if page.GroupKey != "page-0" || len(page.Cards) != 4 {
		t.Errorf("unexpected first page: key=%s cards=%d", page.GroupKey, len(page.Cards))
	}
}

func TestServerPaging(t *testing.T) {
	srv := newTestServer(t)

	page, _ := getPage(t, srv.URL+"/cards?after=page-1")
	if page.GroupKey != "page-2" {
		t.Errorf("after=page-1: expected page-2, got %s", page.GroupKey)
	}

	page, _ = getPage(t, srv.URL+"/cards?before=page-2")
	if page.GroupKey != "page-1" {
		t.Errorf("before=page-2: expected page-1, got %s", page.GroupKey)
	}

	_, status := getPage(t, srv.URL+"/cards?before=page-0")
	if status != http.StatusNotFound {
		t.Errorf("before=page-0: expected 404, got %d", status)
	}
}

func TestServerValidation(t *testing.T) {
	srv := newTestServer(t)

	if _, status := getPage(t, srv.URL+"/cards?after=page-1&before=page-2"); status != http.StatusBadRequest {
		t.Errorf("mutually exclusive params: expected 400, got %d", status)
	}
	if _, status := getPage(t, srv.URL+"/cards?after=garbage"); status != http.StatusBadRequest {
		t.Errorf("malformed key: expected 400, got %d", status)
	}
	if _, status := getPage(t, srv.URL+"/cards?count=zero"); status != http.StatusBadRequest {
		t.Errorf("bad count: expected 400, got %d", status)
	}
}

func TestServerCountLimit(t *testing.T) {
	srv := newTestServer(t)

	page, _ := getPage(t, srv.URL+"/cards?count=2")
	if len(page.Cards) != 2 {
		t.Errorf("expected 2 cards, got %d", len(page.Cards))
	}
}

func TestServerHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

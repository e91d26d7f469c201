package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func searchRequest(t *testing.T, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/services/search", NewHandler(New()).Search)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/services/search?q="+query, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestSearchKnownService(t *testing.T) {
	w := searchRequest(t, "netflix")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Results []SearchResult `json:"results"`
		Count   int            `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if resp.Count == 0 {
		t.Fatal("expected results")
	}
	if resp.Results[0].Name != "Netflix" || resp.Results[0].Domain != "netflix.com" {
		t.Errorf("first result = %+v", resp.Results[0])
	}
	if len(resp.Results[0].LogoURLs) == 0 {
		t.Error("expected logo URL chain")
	}
}

func TestSearchUnknownNameDerivesDomain(t *testing.T) {
	w := searchRequest(t, "My+Fancy+Service")

	var resp struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	last := resp.Results[len(resp.Results)-1]
	if last.Domain != "myfancyservice.com" {
		t.Errorf("derived domain = %q, want myfancyservice.com", last.Domain)
	}
	if last.Category != CategoryOther {
		t.Errorf("category = %q, want OTHER", last.Category)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	w := searchRequest(t, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

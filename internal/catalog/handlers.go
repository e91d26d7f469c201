package catalog

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hashiroii/tiyin-server/internal/logo"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

// SearchResult is one service candidate with its logo URL chain.
type SearchResult struct {
	Name           string   `json:"name"`
	Domain         string   `json:"domain"`
	Category       Category `json:"category"`
	PrimaryColor   int64    `json:"primaryColor"`
	SecondaryColor int64    `json:"secondaryColor"`
	LogoURLs       []string `json:"logoUrls"`
}

// Search returns catalog services matching a query, plus a derived candidate
// for unknown names so any service can be added manually
// GET /api/v1/services/search?q=netflix.
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q required"})
		return
	}

	lowered := strings.ToLower(query)
	var results []SearchResult
	exact := false
	for _, s := range h.catalog.Services() {
		if !strings.Contains(strings.ToLower(s.Name), lowered) {
			continue
		}
		if strings.EqualFold(s.Name, query) {
			exact = true
		}
		results = append(results, SearchResult{
			Name:           s.Name,
			Domain:         s.Domain,
			Category:       s.Category,
			PrimaryColor:   s.PrimaryColor,
			SecondaryColor: s.SecondaryColor,
			LogoURLs:       logo.URLs(s.Domain),
		})
	}

	// Unknown names still get a candidate with a guessed domain
	if !exact {
		domain := derivedDomain(query)
		results = append(results, SearchResult{
			Name:           query,
			Domain:         domain,
			Category:       CategoryOther,
			PrimaryColor:   DefaultPrimaryColor,
			SecondaryColor: DefaultSecondaryColor,
			LogoURLs:       logo.URLs(domain),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}

// derivedDomain guesses a domain from a display name by stripping everything
// but letters and digits.
func derivedDomain(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return b.String() + ".com"
}

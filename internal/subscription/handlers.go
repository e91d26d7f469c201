package subscription

import (
	"errors"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/hashiroii/tiyin-server/internal/auth"
	"github.com/hashiroii/tiyin-server/internal/catalog"
	"github.com/hashiroii/tiyin-server/internal/logo"
)

type Handler struct {
	service *Service
	catalog *catalog.Catalog
}

func NewHandler(service *Service, catalog *catalog.Catalog) *Handler {
	return &Handler{
		service: service,
		catalog: catalog,
	}
}

// SubscriptionRequest is the body for creating or updating a subscription.
type SubscriptionRequest struct {
	ServiceName        string `json:"serviceName" binding:"required"`
	ServiceDomain      string `json:"serviceDomain"`
	Amount             string `json:"amount" binding:"required"`
	Currency           string `json:"currency"`
	Period             string `json:"period"`
	Category           string `json:"category"`
	NextPaymentDate    string `json:"nextPaymentDate"`
	CurrentPaymentDate string `json:"currentPaymentDate"`
}

func (r *SubscriptionRequest) toSubscription(cat *catalog.Catalog, today civil.Date) (Subscription, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil || amount.IsNegative() {
		return Subscription{}, errInvalidAmount
	}

	currency := r.Currency
	if currency == "" {
		currency = "USD"
	}

	service := ServiceInfo{
		Name:           r.ServiceName,
		Domain:         r.ServiceDomain,
		PrimaryColor:   catalog.DefaultPrimaryColor,
		SecondaryColor: catalog.DefaultSecondaryColor,
		Category:       catalog.CategoryOther,
	}
	// A known service fills in domain, colors and category
	if known, ok := cat.MatchName(r.ServiceName); ok {
		if service.Domain == "" {
			service.Domain = known.Domain
		}
		service.PrimaryColor = known.PrimaryColor
		service.SecondaryColor = known.SecondaryColor
		service.Category = known.Category
	}
	if r.Category != "" {
		service.Category = catalog.ParseCategory(r.Category)
	}

	next := today.AddDays(30)
	if r.NextPaymentDate != "" {
		if next, err = civil.ParseDate(r.NextPaymentDate); err != nil {
			return Subscription{}, errInvalidDate
		}
	}
	current := today.AddDays(-15)
	if r.CurrentPaymentDate != "" {
		if current, err = civil.ParseDate(r.CurrentPaymentDate); err != nil {
			return Subscription{}, errInvalidDate
		}
	}

	return Subscription{
		Service:            service,
		LogoURL:            logo.PrimaryURL(service.Domain),
		Amount:             amount,
		Currency:           currency,
		Period:             ParsePeriod(r.Period),
		NextPaymentDate:    next,
		CurrentPaymentDate: current,
	}, nil
}

var (
	errInvalidAmount = errors.New("amount must be a non-negative decimal")
	errInvalidDate   = errors.New("dates must use YYYY-MM-DD")
)

// listItem decorates a subscription with the derived cycle fields clients
// render alongside it.
type listItem struct {
	Subscription
	DaysUntilNextPayment int     `json:"days_until_next_payment"`
	CycleProgress        float64 `json:"cycle_progress"`
}

func presentList(subs []Subscription, today civil.Date) []listItem {
	items := make([]listItem, 0, len(subs))
	for _, sub := range subs {
		items = append(items, listItem{
			Subscription:         sub,
			DaysUntilNextPayment: sub.DaysUntilNextPayment(today),
			CycleProgress:        sub.CycleProgress(today),
		})
	}
	return items
}

// List returns the user's subscriptions
// GET /api/v1/subscriptions?sort=EXPIRY_DATE|COST|ALPHABET.
func (h *Handler) List(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	order := ParseSortOrder(c.Query("sort"))
	subs := h.service.List(c.Request.Context(), userID, order)

	c.JSON(http.StatusOK, gin.H{
		"subscriptions": presentList(subs, civil.DateOf(time.Now().UTC())),
		"count":         len(subs),
	})
}

// Create adds a subscription manually
// POST /api/v1/subscriptions.
func (h *Handler) Create(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serviceName & amount required"})
		return
	}

	sub, err := req.toSubscription(h.catalog, civil.DateOf(time.Now().UTC()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created := h.service.Create(c.Request.Context(), userID, sub)
	c.JSON(http.StatusCreated, created)
}

// Update overwrites an existing subscription
// PUT /api/v1/subscriptions/:id.
func (h *Handler) Update(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id := c.Param("id")

	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serviceName & amount required"})
		return
	}

	sub, err := req.toSubscription(h.catalog, civil.DateOf(time.Now().UTC()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), userID, id, sub)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete removes a subscription
// DELETE /api/v1/subscriptions/:id.
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Refresh re-pulls the list from the remote store
// POST /api/v1/subscriptions/refresh.
func (h *Handler) Refresh(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	subs, err := h.service.Refresh(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh subscriptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscriptions": presentList(subs, civil.DateOf(time.Now().UTC())),
		"count":         len(subs),
	})
}

// Summary returns the monthly-equivalent aggregate
// GET /api/v1/subscriptions/summary?currency=KZT.
func (h *Handler) Summary(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	summary := h.service.Summarize(c.Request.Context(), userID, c.Query("currency"))
	c.JSON(http.StatusOK, summary)
}

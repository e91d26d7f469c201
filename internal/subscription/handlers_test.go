package subscription

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashiroii/tiyin-server/internal/auth"
	"github.com/hashiroii/tiyin-server/internal/catalog"
	"github.com/hashiroii/tiyin-server/internal/config"
	"github.com/hashiroii/tiyin-server/internal/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{
		SyncWorkerPoolSize: 1,
		SyncBufferSize:     16,
		SyncTimeoutSeconds: 1,
	}

	log := logger.New(logger.Config{Level: slog.LevelError})
	store := NewStore(nil)
	syncer := NewSyncer(store, log)
	t.Cleanup(syncer.Shutdown)
	service := NewService(NewManager(), store, syncer, nil, log)
	handler := NewHandler(service, catalog.New())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(string(auth.UserIDKey), "user-1")
	})
	router.GET("/subscriptions", handler.List)
	router.POST("/subscriptions", handler.Create)
	router.GET("/subscriptions/summary", handler.Summary)
	router.PUT("/subscriptions/:id", handler.Update)
	router.DELETE("/subscriptions/:id", handler.Delete)

	return router, service
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndListSubscriptions(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(t, router, "/subscriptions", SubscriptionRequest{
		ServiceName: "Netflix",
		Amount:      "15.99",
		Currency:    "USD",
		Period:      "MONTHLY",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created Subscription
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	// Catalog fills in the brand metadata for a known name
	assert.Equal(t, "netflix.com", created.Service.Domain)
	assert.Equal(t, catalog.CategoryStreaming, created.Service.Category)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subscriptions", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Subscriptions []struct {
			Subscription
			DaysUntilNextPayment int `json:"days_until_next_payment"`
		} `json:"subscriptions"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 1, listed.Count)
	assert.Equal(t, "Netflix", listed.Subscriptions[0].Service.Name)
	// Default next payment date is 30 days out
	assert.Equal(t, 30, listed.Subscriptions[0].DaysUntilNextPayment)
}

func TestCreateRejectsBadAmount(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(t, router, "/subscriptions", SubscriptionRequest{
		ServiceName: "Netflix",
		Amount:      "not-a-number",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/subscriptions", SubscriptionRequest{
		ServiceName: "Netflix",
		Amount:      "-5",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMissingSubscription(t *testing.T) {
	router, _ := newTestRouter(t)

	raw, _ := json.Marshal(SubscriptionRequest{ServiceName: "Netflix", Amount: "15.99"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/subscriptions/does-not-exist", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSubscription(t *testing.T) {
	router, service := newTestRouter(t)

	w := postJSON(t, router, "/subscriptions", SubscriptionRequest{
		ServiceName: "Spotify",
		Amount:      "9.99",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	subs := service.Sessions().Session("user-1").Snapshot()
	require.Len(t, subs, 1)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/subscriptions/"+subs[0].ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, service.Sessions().Session("user-1").Len())
}

func TestSummaryEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	postJSON(t, router, "/subscriptions", SubscriptionRequest{
		ServiceName: "Netflix",
		Amount:      "12",
		Currency:    "USD",
		Period:      "MONTHLY",
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subscriptions/summary?currency=USD", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var summary Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.ActiveCount)
	assert.Equal(t, "$12", summary.FormattedTotal)
}

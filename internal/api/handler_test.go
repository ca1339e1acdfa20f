package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore-service/internal/service"
	"bookstore-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := &Handler{}
	router.GET("/health", h.healthCheck)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"order finalized", store.ErrOrderFinalized, http.StatusNotFound},
		{"conflict", store.ErrConflict, http.StatusConflict},
		{"insufficient funds", store.ErrInsufficientFunds, http.StatusPaymentRequired},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad quantity", service.ErrInvalidQuantity, http.StatusBadRequest},
		{"empty content", service.ErrEmptyContent, http.StatusBadRequest},
		{"password mismatch", service.ErrPasswordMismatch, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tc.err)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

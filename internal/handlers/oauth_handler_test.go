package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesboard/internal/models"
)

func newOAuthRouter(tokens *fakeTokenService, crm *fakeCRMService) *gin.Engine {
	h := NewOAuthHandler(tokens, crm, fakeURLs{}, nil, nil, "http://front.test/auth/success")
	r := gin.New()
	r.GET("/oauth/hubspot", h.Authorize)
	r.GET("/oauth/hubspot/callback", h.Callback)
	return r
}

func TestOAuthCallback_NoCode(t *testing.T) {
	tokens := &fakeTokenService{}
	r := newOAuthRouter(tokens, &fakeCRMService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/oauth/hubspot/callback", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no code provided")
	// без кода — ни обмена, ни записи
	assert.Zero(t, tokens.exchanges)
	assert.Empty(t, tokens.stores)
}

func TestOAuthCallback_Success(t *testing.T) {
	tokens := &fakeTokenService{
		exchangeTok: &models.TokenData{AccessToken: "at-1", RefreshToken: "rt-1", ExpiresIn: 1800},
	}
	crm := &fakeCRMService{account: &models.AccountInfo{HubID: 42}}
	r := newOAuthRouter(tokens, crm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/oauth/hubspot/callback?code=code-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://front.test/auth/success?portalId=42", w.Header().Get("Location"))
	assert.Equal(t, []int64{42}, tokens.stores)
}

func TestOAuthCallback_StoreFailureStillRedirects(t *testing.T) {
	tokens := &fakeTokenService{
		exchangeTok: &models.TokenData{AccessToken: "at-1", RefreshToken: "rt-1", ExpiresIn: 1800},
		storeErr:    assert.AnError,
	}
	crm := &fakeCRMService{account: &models.AccountInfo{HubID: 42}}
	r := newOAuthRouter(tokens, crm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/oauth/hubspot/callback?code=code-1", nil)
	r.ServeHTTP(w, req)

	// сбой записи не валит установку: пользователь всё равно на success
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "portalId=42")
}

func TestOAuthCallback_ExchangeRejected(t *testing.T) {
	tokens := &fakeTokenService{exchangeErr: assert.AnError}
	r := newOAuthRouter(tokens, &fakeCRMService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/oauth/hubspot/callback?code=expired", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "authentication failed")
	assert.Empty(t, tokens.stores)
}

func TestOAuthAuthorize_Redirects(t *testing.T) {
	r := newOAuthRouter(&fakeTokenService{}, &fakeCRMService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/oauth/hubspot", nil)
	req.Host = "bridge.test"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "http://bridge.test/oauth/hubspot/callback")
}

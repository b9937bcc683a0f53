package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newWebhookRouter(tokens *fakeTokenService) *gin.Engine {
	h := NewWebhookHandler(tokens, nil)
	r := gin.New()
	r.POST("/webhooks/hubspot", h.Handle)
	return r
}

func postWebhook(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/hubspot", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestWebhook_KnownEventAcknowledged(t *testing.T) {
	tokens := &fakeTokenService{accessTokens: map[int64]string{42: "at-1"}}
	r := newWebhookRouter(tokens)

	w := postWebhook(r, `{"eventType":"deal.propertyChange","portalId":42,"objectId":7,"propertyName":"dealstage","propertyValue":"closedwon"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestWebhook_UnknownEventTypeIsNoOp(t *testing.T) {
	tokens := &fakeTokenService{accessTokens: map[int64]string{42: "at-1"}}
	r := newWebhookRouter(tokens)

	w := postWebhook(r, `{"eventType":"ticket.creation","portalId":42,"objectId":7}`)

	// неизвестный тип принимается, а не отклоняется
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestWebhook_NoTokenForPortal(t *testing.T) {
	tokens := &fakeTokenService{accessTokens: map[int64]string{}}
	r := newWebhookRouter(tokens)

	w := postWebhook(r, `{"eventType":"deal.propertyChange","portalId":999,"objectId":7}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no valid token")
}

func TestWebhook_BadPayload(t *testing.T) {
	tokens := &fakeTokenService{accessTokens: map[int64]string{42: "at-1"}}
	r := newWebhookRouter(tokens)

	w := postWebhook(r, `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

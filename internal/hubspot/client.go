package hubspot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"salesboard/internal/models"
)

var (
	// ErrAuthExchange — OAuth-эндпоинт отклонил code или refresh token.
	ErrAuthExchange = errors.New("hubspot: auth exchange rejected")
	// ErrUpstream — любой неуспешный ответ CRM API.
	ErrUpstream = errors.New("hubspot: upstream request failed")
)

// Права, которые запрашивает приложение при установке.
var Scopes = []string{
	"crm.objects.contacts.read",
	"crm.objects.deals.read",
	"crm.objects.owners.read",
}

type Client struct {
	clientID     string
	clientSecret string
	apiBaseURL   string
	authBaseURL  string
	http         *http.Client
}

func NewClient(clientID, clientSecret, apiBaseURL, authBaseURL string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		apiBaseURL:   strings.TrimRight(apiBaseURL, "/"),
		authBaseURL:  strings.TrimRight(authBaseURL, "/"),
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthorizeURL — адрес страницы авторизации HubSpot для данного redirect URI.
func (c *Client) AuthorizeURL(redirectURI string) string {
	q := url.Values{
		"client_id":    {c.clientID},
		"redirect_uri": {redirectURI},
		"scope":        {strings.Join(Scopes, " ")},
	}
	return c.authBaseURL + "/oauth/authorize?" + q.Encode()
}

// ExchangeCode — одноразовый обмен authorization code на пару токенов.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*models.TokenData, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {redirectURI},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	return c.tokenRequest(ctx, form)
}

// RefreshToken — обмен refresh token на новую пару. Отказ здесь терминален
// для установки: поможет только повторная авторизация портала.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenData, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	return c.tokenRequest(ctx, form)
}

func (c *Client) tokenRequest(ctx context.Context, form url.Values) (*models.TokenData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiBaseURL+"/oauth/v1/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrAuthExchange, resp.StatusCode, truncate(body))
	}

	var token models.TokenData
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("token response: %w", err)
	}
	return &token, nil
}

// AccountInfo — метаданные аккаунта по access token (в т.ч. hub_id портала).
func (c *Client) AccountInfo(ctx context.Context, accessToken string) (*models.AccountInfo, error) {
	var info models.AccountInfo
	path := "/oauth/v1/access-tokens/" + url.PathEscape(accessToken)
	if err := c.getJSON(ctx, path, "", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

type dealsPage struct {
	Results []models.Deal `json:"results"`
}

// Deals — одна страница сделок без автоматической пагинации.
func (c *Client) Deals(ctx context.Context, accessToken string, limit int) ([]models.Deal, error) {
	q := url.Values{
		"limit":      {strconv.Itoa(limit)},
		"properties": {"amount,closedate,dealname,dealstage,hubspot_owner_id"},
	}
	var page dealsPage
	if err := c.getJSON(ctx, "/crm/v3/objects/deals", accessToken, q, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

type contactsPage struct {
	Results []models.Contact `json:"results"`
}

func (c *Client) Contacts(ctx context.Context, accessToken string, limit int) ([]models.Contact, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var page contactsPage
	if err := c.getJSON(ctx, "/crm/v3/objects/contacts", accessToken, q, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

type ownersPage struct {
	Results []models.Owner `json:"results"`
}

func (c *Client) Owners(ctx context.Context, accessToken string) ([]models.Owner, error) {
	var page ownersPage
	if err := c.getJSON(ctx, "/crm/v3/owners", accessToken, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (c *Client) getJSON(ctx context.Context, path, accessToken string, q url.Values, out any) error {
	u := c.apiBaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("hubspot GET %s: %w", path, err)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("hubspot GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s status=%d body=%s", ErrUpstream, path, resp.StatusCode, truncate(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("hubspot GET %s: decode: %w", path, err)
	}
	return nil
}

func truncate(b []byte) string {
	const max = 256
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}

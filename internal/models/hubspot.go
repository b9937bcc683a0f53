package models

// Ответы HubSpot API (v3). Храним только те поля, которые реально читаем.

type TokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type AccountInfo struct {
	HubID    int64    `json:"hub_id"`
	HubName  string   `json:"hub_domain"`
	UserID   int64    `json:"user_id"`
	User     string   `json:"user"`
	Scopes   []string `json:"scopes"`
	TokenTTL int      `json:"expires_in"`
}

type DealProperties struct {
	Amount         string `json:"amount"`
	CloseDate      string `json:"closedate"`
	DealName       string `json:"dealname"`
	DealStage      string `json:"dealstage"`
	HubspotOwnerID string `json:"hubspot_owner_id"`
}

type Deal struct {
	ID         string         `json:"id"`
	Properties DealProperties `json:"properties"`
}

type ContactProperties struct {
	Email     string `json:"email"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

type Contact struct {
	ID         string            `json:"id"`
	Properties ContactProperties `json:"properties"`
}

type Owner struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// WebhookEvent — конверт входящего события HubSpot.
type WebhookEvent struct {
	EventType     string `json:"eventType"`
	PortalID      int64  `json:"portalId"`
	ObjectID      int64  `json:"objectId"`
	PropertyName  string `json:"propertyName,omitempty"`
	PropertyValue string `json:"propertyValue,omitempty"`
}

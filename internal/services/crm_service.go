package services

import (
	"context"
	"fmt"

	"salesboard/internal/models"
)

// CRMReader — часть HubSpot-клиента с выборками CRM.
type CRMReader interface {
	AccountInfo(ctx context.Context, accessToken string) (*models.AccountInfo, error)
	Deals(ctx context.Context, accessToken string, limit int) ([]models.Deal, error)
	Contacts(ctx context.Context, accessToken string, limit int) ([]models.Contact, error)
	Owners(ctx context.Context, accessToken string) ([]models.Owner, error)
}

type CRMService interface {
	GetDeals(ctx context.Context, portalID int64, limit int) ([]models.Deal, error)
	GetContacts(ctx context.Context, portalID int64, limit int) ([]models.Contact, error)
	GetOwners(ctx context.Context, portalID int64) ([]models.Owner, error)
	GetAccountInfo(ctx context.Context, accessToken string) (*models.AccountInfo, error)
}

type crmService struct {
	tokens TokenService
	hub    CRMReader
}

func NewCRMService(tokens TokenService, hub CRMReader) CRMService {
	return &crmService{tokens: tokens, hub: hub}
}

// Каждая выборка сначала получает валидный токен портала, затем делает
// одностраничный запрос. limit ограничивает одну страницу, полноты нет.
func (s *crmService) GetDeals(ctx context.Context, portalID int64, limit int) ([]models.Deal, error) {
	token, err := s.token(ctx, portalID)
	if err != nil {
		return nil, err
	}
	return s.hub.Deals(ctx, token, limit)
}

func (s *crmService) GetContacts(ctx context.Context, portalID int64, limit int) ([]models.Contact, error) {
	token, err := s.token(ctx, portalID)
	if err != nil {
		return nil, err
	}
	return s.hub.Contacts(ctx, token, limit)
}

func (s *crmService) GetOwners(ctx context.Context, portalID int64) ([]models.Owner, error) {
	token, err := s.token(ctx, portalID)
	if err != nil {
		return nil, err
	}
	return s.hub.Owners(ctx, token)
}

func (s *crmService) GetAccountInfo(ctx context.Context, accessToken string) (*models.AccountInfo, error) {
	return s.hub.AccountInfo(ctx, accessToken)
}

func (s *crmService) token(ctx context.Context, portalID int64) (string, error) {
	token, err := s.tokens.GetValidAccessToken(ctx, portalID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingToken, err)
	}
	return token, nil
}

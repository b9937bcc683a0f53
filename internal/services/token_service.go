package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"salesboard/internal/cache"
	"salesboard/internal/models"
	"salesboard/internal/repositories"
)

var (
	// ErrInstallNotFound — для портала нет установки (401/404 на границе).
	ErrInstallNotFound = errors.New("install not found")
	// ErrMissingToken — валидный access token получить не удалось.
	ErrMissingToken = errors.New("no valid access token")
)

// OAuthExchanger — часть HubSpot-клиента, нужная жизненному циклу токенов.
type OAuthExchanger interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (*models.TokenData, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenData, error)
}

type TokenService interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (*models.TokenData, error)
	StoreInstall(ctx context.Context, portalID int64, accessToken, refreshToken string, expiresIn int) (*models.Install, error)
	GetValidAccessToken(ctx context.Context, portalID int64) (string, error)
}

type tokenService struct {
	repo  repositories.InstallRepository
	cache *cache.InstallCache
	oauth OAuthExchanger
	now   func() time.Time
}

func NewTokenService(repo repositories.InstallRepository, c *cache.InstallCache, oauth OAuthExchanger) TokenService {
	return &tokenService{repo: repo, cache: c, oauth: oauth, now: time.Now}
}

func (s *tokenService) ExchangeCode(ctx context.Context, code, redirectURI string) (*models.TokenData, error) {
	return s.oauth.ExchangeCode(ctx, code, redirectURI)
}

// StoreInstall — upsert установки с абсолютным сроком истечения now+expiresIn.
// Кэш сбрасывается и прогревается заново на каждую запись.
func (s *tokenService) StoreInstall(ctx context.Context, portalID int64, accessToken, refreshToken string, expiresIn int) (*models.Install, error) {
	install := &models.Install{
		PortalID:     portalID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    s.now().Add(time.Duration(expiresIn) * time.Second),
	}
	stored, err := s.repo.Upsert(ctx, install)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, portalID)
	s.cache.Set(ctx, stored)
	return stored, nil
}

// GetValidAccessToken — ленивое синхронное обновление: просроченный токен
// меняется по refresh token прямо в этом вызове и сохраняется до возврата.
// Single-flight не гарантируется: параллельные обновления одного портала
// допустимы, побеждает последняя запись.
func (s *tokenService) GetValidAccessToken(ctx context.Context, portalID int64) (string, error) {
	install := s.cache.Get(ctx, portalID)
	if install == nil {
		var err error
		install, err = s.repo.GetByPortalID(ctx, portalID)
		if err != nil {
			return "", err
		}
		if install == nil {
			return "", fmt.Errorf("portal_id=%d: %w", portalID, ErrInstallNotFound)
		}
		s.cache.Set(ctx, install)
	}

	now := s.now()
	if !install.Expired(now) {
		return install.AccessToken, nil
	}

	log.Printf("[tokens] portal_id=%d: токен истёк %s назад, обновляем",
		portalID, now.Sub(install.ExpiresAt).Truncate(time.Second))
	token, err := s.oauth.RefreshToken(ctx, install.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh portal_id=%d: %w", portalID, err)
	}

	if _, err := s.StoreInstall(ctx, portalID, token.AccessToken, token.RefreshToken, token.ExpiresIn); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

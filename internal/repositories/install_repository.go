package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"salesboard/internal/models"
)

type InstallRepository interface {
	Upsert(ctx context.Context, install *models.Install) (*models.Install, error)
	GetByPortalID(ctx context.Context, portalID int64) (*models.Install, error)
	List(ctx context.Context) ([]models.Install, error)
	Delete(ctx context.Context, portalID int64) error
}

type installRepository struct {
	db *sql.DB
}

func NewInstallRepository(db *sql.DB) InstallRepository {
	return &installRepository{db: db}
}

// Upsert — одна установка на портал, ключ portal_id.
func (r *installRepository) Upsert(ctx context.Context, install *models.Install) (*models.Install, error) {
	query := `
        INSERT INTO hubspot_installs (portal_id, access_token, refresh_token, expires_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        ON CONFLICT (portal_id) DO UPDATE SET
            access_token  = EXCLUDED.access_token,
            refresh_token = EXCLUDED.refresh_token,
            expires_at    = EXCLUDED.expires_at,
            updated_at    = NOW()
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRowContext(ctx, query,
		install.PortalID,
		install.AccessToken,
		install.RefreshToken,
		install.ExpiresAt,
	).Scan(&install.ID, &install.CreatedAt, &install.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("сохранение установки portal_id=%d: %w", install.PortalID, err)
	}
	return install, nil
}

// Получение установки по portal_id; (nil, nil) если записи нет.
func (r *installRepository) GetByPortalID(ctx context.Context, portalID int64) (*models.Install, error) {
	query := `
        SELECT id, portal_id, access_token, refresh_token, expires_at, created_at, updated_at
        FROM hubspot_installs
        WHERE portal_id = $1
    `
	install := &models.Install{}
	err := r.db.QueryRowContext(ctx, query, portalID).Scan(
		&install.ID,
		&install.PortalID,
		&install.AccessToken,
		&install.RefreshToken,
		&install.ExpiresAt,
		&install.CreatedAt,
		&install.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("получение установки portal_id=%d: %w", portalID, err)
	}
	return install, nil
}

func (r *installRepository) List(ctx context.Context) ([]models.Install, error) {
	query := `
        SELECT id, portal_id, access_token, refresh_token, expires_at, created_at, updated_at
        FROM hubspot_installs
        ORDER BY created_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("список установок: %w", err)
	}
	defer rows.Close()

	var installs []models.Install
	for rows.Next() {
		var in models.Install
		if err := rows.Scan(
			&in.ID,
			&in.PortalID,
			&in.AccessToken,
			&in.RefreshToken,
			&in.ExpiresAt,
			&in.CreatedAt,
			&in.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("чтение строки установки: %w", err)
		}
		installs = append(installs, in)
	}
	return installs, rows.Err()
}

// Удаление — административная операция, автоматически установки не удаляются.
func (r *installRepository) Delete(ctx context.Context, portalID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hubspot_installs WHERE portal_id = $1`, portalID)
	if err != nil {
		return fmt.Errorf("удаление установки portal_id=%d: %w", portalID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("проверка удаления: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("установка portal_id=%d не найдена", portalID)
	}
	return nil
}

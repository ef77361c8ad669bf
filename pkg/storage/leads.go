package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/leadmarket/leadmarket/pkg/apis/models"
)

// LeadStore persists marketplace leads. Deletes are soft so claimed leads
// stay resolvable.
type LeadStore interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Lead, error)
	ListWithOwners(ctx context.Context) ([]models.LeadWithOwner, error)
	Update(ctx context.Context, lead *models.Lead) error
	Delete(ctx context.Context, id, userID string) error
}

type leadStore struct {
	db *sqlx.DB
}

// NewLeadStore returns a LeadStore backed by the given database handle.
func NewLeadStore(db *sqlx.DB) LeadStore {
	return &leadStore{db: db}
}

func (s *leadStore) Create(ctx context.Context, lead *models.Lead) error {
	query := `
		INSERT INTO leads (
			id, user_id, country_region, state_province, city, postal_code,
			category, sub_category, full_name, offer_type, payouts,
			is_merchant_allowed_to_refuse_leads, leads_limit, material_moderation,
			tools, image_url, created_at, updated_at
		) VALUES (
			:id, :user_id, :country_region, :state_province, :city, :postal_code,
			:category, :sub_category, :full_name, :offer_type, :payouts,
			:is_merchant_allowed_to_refuse_leads, :leads_limit, :material_moderation,
			:tools, :image_url, :created_at, :updated_at
		)`

	if _, err := s.db.NamedExecContext(ctx, query, lead); err != nil {
		return fmt.Errorf("inserting lead: %w", err)
	}
	return nil
}

func (s *leadStore) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	var lead models.Lead
	err := s.db.GetContext(ctx, &lead,
		`SELECT * FROM leads WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying lead: %w", err)
	}
	return &lead, nil
}

func (s *leadStore) ListByOwner(ctx context.Context, userID string) ([]models.Lead, error) {
	leads := []models.Lead{}
	err := s.db.SelectContext(ctx, &leads,
		`SELECT * FROM leads WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	return leads, nil
}

func (s *leadStore) ListWithOwners(ctx context.Context) ([]models.LeadWithOwner, error) {
	leads := []models.LeadWithOwner{}
	query := `
		SELECT l.*, u.username AS owner_username, u.email AS owner_email
		FROM leads l
		JOIN users u ON u.id = l.user_id
		WHERE l.deleted_at IS NULL
		ORDER BY l.created_at DESC`

	if err := s.db.SelectContext(ctx, &leads, query); err != nil {
		return nil, fmt.Errorf("listing leads with owners: %w", err)
	}
	return leads, nil
}

func (s *leadStore) Update(ctx context.Context, lead *models.Lead) error {
	query := `
		UPDATE leads SET
			country_region = :country_region,
			state_province = :state_province,
			city = :city,
			postal_code = :postal_code,
			category = :category,
			sub_category = :sub_category,
			full_name = :full_name,
			offer_type = :offer_type,
			payouts = :payouts,
			is_merchant_allowed_to_refuse_leads = :is_merchant_allowed_to_refuse_leads,
			leads_limit = :leads_limit,
			material_moderation = :material_moderation,
			tools = :tools,
			image_url = :image_url,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id AND deleted_at IS NULL`

	res, err := s.db.NamedExecContext(ctx, query, lead)
	if err != nil {
		return fmt.Errorf("updating lead: %w", err)
	}
	return requireRow(res)
}

func (s *leadStore) Delete(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		id, userID)
	if err != nil {
		return fmt.Errorf("deleting lead: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"

	appErrors "github.com/tshekom8206/staybotplatform-sub005/internal/errors"
	"github.com/tshekom8206/staybotplatform-sub005/internal/model"
)

type TenantRepositoryInterface interface {
	GetByID(ctx context.Context, id int) (*model.Tenant, error)
}

type TenantRepository struct {
	DB *sql.DB
}

func (r *TenantRepository) GetByID(ctx context.Context, id int) (*model.Tenant, error) {
	query := `SELECT id, name, slug, created_at FROM tenants WHERE id=$1`
	var t model.Tenant
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewTenantNotFound(id)
		}
		return nil, err
	}
	return &t, nil
}

var _ TenantRepositoryInterface = (*TenantRepository)(nil)

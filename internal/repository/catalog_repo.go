package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/tender-pricing-engine/internal/model"
)

// CatalogRepository reads the master lists that populate the simulator
// lookups. Each query tolerates its backing table being absent and then
// reports an empty category; any other failure is a hard error.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) Methods(ctx context.Context) ([]model.PaymentMethod, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, name, enabled FROM payment_methods WHERE enabled ORDER BY name`)
	if err != nil {
		if isUndefinedTable(err) {
			return []model.PaymentMethod{}, nil
		}
		return nil, dataUnavailable("query payment methods", err)
	}
	defer rows.Close()

	methods := []model.PaymentMethod{}
	for rows.Next() {
		var m model.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Enabled); err != nil {
			return nil, dataUnavailable("scan payment method", err)
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, dataUnavailable("read payment methods", err)
	}
	return methods, nil
}

func (r *CatalogRepository) Brands(ctx context.Context) ([]model.CardBrand, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, enabled FROM card_brands
		WHERE enabled AND TRIM(name) <> '' ORDER BY name`)
	if err != nil {
		if isUndefinedTable(err) {
			return []model.CardBrand{}, nil
		}
		return nil, dataUnavailable("query card brands", err)
	}
	defer rows.Close()

	brands := []model.CardBrand{}
	for rows.Next() {
		var b model.CardBrand
		if err := rows.Scan(&b.ID, &b.Name, &b.Enabled); err != nil {
			return nil, dataUnavailable("scan card brand", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dataUnavailable("read card brands", err)
	}
	return brands, nil
}

func (r *CatalogRepository) Banks(ctx context.Context) ([]model.Bank, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, name, COALESCE(commercial_name, '') AS commercial_name, enabled
		FROM banks WHERE enabled ORDER BY COALESCE(NULLIF(commercial_name, ''), name)`)
	if err != nil {
		if isUndefinedTable(err) {
			return []model.Bank{}, nil
		}
		return nil, dataUnavailable("query banks", err)
	}
	defer rows.Close()

	banks := []model.Bank{}
	for rows.Next() {
		var b model.Bank
		if err := rows.Scan(&b.ID, &b.Code, &b.Name, &b.CommercialName, &b.Enabled); err != nil {
			return nil, dataUnavailable("scan bank", err)
		}
		banks = append(banks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dataUnavailable("read banks", err)
	}
	return banks, nil
}

func (r *CatalogRepository) Acquirers(ctx context.Context) ([]model.Acquirer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, name, enabled FROM acquirers WHERE enabled ORDER BY name`)
	if err != nil {
		if isUndefinedTable(err) {
			return []model.Acquirer{}, nil
		}
		return nil, dataUnavailable("query acquirers", err)
	}
	defer rows.Close()

	acquirers := []model.Acquirer{}
	for rows.Next() {
		var a model.Acquirer
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Enabled); err != nil {
			return nil, dataUnavailable("scan acquirer", err)
		}
		acquirers = append(acquirers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dataUnavailable("read acquirers", err)
	}
	return acquirers, nil
}

// SetEnabled flips the enabled flag on one catalog row. This is the only
// administrative write the engine carries; full catalog CRUD lives in the
// back-office application.
func (r *CatalogRepository) SetEnabled(ctx context.Context, table string, id int64, enabled bool) error {
	allowed := map[string]string{
		"payment_methods":        "UPDATE payment_methods SET enabled = $1 WHERE id = $2",
		"card_brands":            "UPDATE card_brands SET enabled = $1 WHERE id = $2",
		"banks":                  "UPDATE banks SET enabled = $1 WHERE id = $2",
		"acquirers":              "UPDATE acquirers SET enabled = $1 WHERE id = $2",
		"card_types":             "UPDATE card_types SET enabled = $1 WHERE id = $2",
		"discount_rules":         "UPDATE discount_rules SET enabled = $1 WHERE id = $2",
		"financing_plan_headers": "UPDATE financing_plan_headers SET enabled = $1 WHERE id = $2",
		"financing_plan_rates":   "UPDATE financing_plan_rates SET enabled = $1 WHERE id = $2",
	}
	query, ok := allowed[table]
	if !ok {
		return fmt.Errorf("unknown catalog table %q", table)
	}
	if _, err := r.pool.Exec(ctx, query, enabled, id); err != nil {
		return dataUnavailable("toggle "+table, err)
	}
	return nil
}

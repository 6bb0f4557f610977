package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/tender-pricing-engine/internal/model"
	"github.com/anyulbade/tender-pricing-engine/internal/pricing"
)

type PlanFilter struct {
	MethodCode      string
	Brand           string
	BankCode        string
	AcquirerCode    string
	UnitCoefficient bool // restrict to interest-free rows (coefficient = 1)
}

type PlanRepository struct {
	pool *pgxpool.Pool
}

func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

// FindPlans lists enabled rates under enabled, currently valid headers,
// narrowed by the optional filter attributes.
func (r *PlanRepository) FindPlans(ctx context.Context, f PlanFilter) ([]model.PlanOffer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, h.code, h.name, r.installments, r.coefficient,
			COALESCE(c.brand, '') AS brand,
			COALESCE(c.card_code, '') AS card_code,
			COALESCE(b.code, '') AS bank_code
		FROM financing_plan_rates r
		JOIN financing_plan_headers h ON h.id = r.plan_id
		LEFT JOIN payment_methods m ON m.id = h.method_id
		LEFT JOIN card_types c ON c.id = r.card_type_id
		LEFT JOIN banks b ON b.id = c.bank_id
		LEFT JOIN acquirers a ON a.id = c.acquirer_id
		WHERE r.enabled
			AND h.enabled
			AND (h.valid_from IS NULL OR h.valid_from <= NOW())
			AND (h.valid_to IS NULL OR h.valid_to >= NOW())
			AND ($1 = '' OR m.code = $1)
			AND ($2 = '' OR LOWER(c.brand) = LOWER($2))
			AND ($3 = '' OR b.code = $3)
			AND ($4 = '' OR a.code = $4)
			AND (NOT $5::boolean OR r.coefficient = 1)
		ORDER BY h.code, r.installments`,
		f.MethodCode, f.Brand, f.BankCode, f.AcquirerCode, f.UnitCoefficient)
	if err != nil {
		return nil, dataUnavailable("query financing plans", err)
	}
	defer rows.Close()

	offers := []model.PlanOffer{}
	for rows.Next() {
		var o model.PlanOffer
		if err := rows.Scan(&o.RateID, &o.Code, &o.Name, &o.Installments, &o.Coefficient, &o.Brand, &o.CardCode, &o.BankCode); err != nil {
			return nil, dataUnavailable("scan financing plan", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, dataUnavailable("read financing plans", err)
	}
	return offers, nil
}

// FindRate resolves one rate chosen by the customer. A rate that is
// disabled, or whose header is disabled or out of its validity window,
// does not resolve.
func (r *PlanRepository) FindRate(ctx context.Context, rateID int64) (*model.FinancingPlanRate, error) {
	var rate model.FinancingPlanRate
	err := r.pool.QueryRow(ctx, `
		SELECT r.id, r.plan_id, r.installments, r.coefficient, r.enabled
		FROM financing_plan_rates r
		JOIN financing_plan_headers h ON h.id = r.plan_id
		WHERE r.id = $1
			AND r.enabled
			AND h.enabled
			AND (h.valid_from IS NULL OR h.valid_from <= NOW())
			AND (h.valid_to IS NULL OR h.valid_to >= NOW())`,
		rateID).Scan(&rate.ID, &rate.PlanID, &rate.Installments, &rate.Coefficient, &rate.Enabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pricing.ErrPlanNotFound
	}
	if err != nil {
		return nil, dataUnavailable("query plan rate", err)
	}
	return &rate, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/tender-pricing-engine/internal/model"
)

type DiscountRepository struct {
	pool *pgxpool.Pool
}

func NewDiscountRepository(pool *pgxpool.Pool) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

// FindRules returns the discount rules eligible for one payment line:
// enabled, validity window containing now, matching the method, and —
// when the rule is bound to a card type — matching the given brand and
// bank. Rules without a card type apply to the method broadly.
//
// Ordered by percentage descending, then id ascending, so the first row
// is the winning rule and ties break deterministically toward the oldest
// rule.
func (r *DiscountRepository) FindRules(ctx context.Context, methodCode, brand, bankCode string) ([]model.DiscountRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.method_id, d.card_type_id, d.percentage, d.valid_from, d.valid_to, d.enabled
		FROM discount_rules d
		JOIN payment_methods m ON m.id = d.method_id
		LEFT JOIN card_types c ON c.id = d.card_type_id
		LEFT JOIN banks b ON b.id = c.bank_id
		WHERE d.enabled
			AND m.enabled
			AND m.code = $1
			AND (d.valid_from IS NULL OR d.valid_from <= NOW())
			AND (d.valid_to IS NULL OR d.valid_to >= NOW())
			AND (d.card_type_id IS NULL OR (
				c.enabled
				AND ($2 = '' OR LOWER(c.brand) = LOWER($2))
				AND ($3 = '' OR b.code = $3)
			))
		ORDER BY d.percentage DESC, d.id ASC`,
		methodCode, brand, bankCode)
	if err != nil {
		return nil, dataUnavailable("query discount rules", err)
	}
	defer rows.Close()

	rules := []model.DiscountRule{}
	for rows.Next() {
		var d model.DiscountRule
		if err := rows.Scan(&d.ID, &d.MethodID, &d.CardTypeID, &d.Percentage, &d.ValidFrom, &d.ValidTo, &d.Enabled); err != nil {
			return nil, dataUnavailable("scan discount rule", err)
		}
		rules = append(rules, d)
	}
	if err := rows.Err(); err != nil {
		return nil, dataUnavailable("read discount rules", err)
	}
	return rules, nil
}

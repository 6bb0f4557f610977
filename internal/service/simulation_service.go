package service

import (
	"context"
	"fmt"

	"github.com/anyulbade/tender-pricing-engine/internal/pricing"
	"github.com/anyulbade/tender-pricing-engine/internal/tax"
)

// SimulationLine is one payment instrument applied against part of the
// cart total, as chosen by the cashier.
type SimulationLine struct {
	Amount               float64
	MethodCode           string
	Brand                string
	BankCode             string
	PlanID               *int64
	ForceUnitCoefficient bool
}

type SimulationService struct {
	discounts DiscountFinder
	plans     PlanFinder
	tax       tax.Provider
}

func NewSimulationService(discounts DiscountFinder, plans PlanFinder, taxProvider tax.Provider) *SimulationService {
	return &SimulationService{discounts: discounts, plans: plans, tax: taxProvider}
}

// Simulate prices every line and folds the results into cart totals. It
// is all-or-nothing: any line that fails to validate or resolve fails the
// whole call with no partial breakdown.
func (s *SimulationService) Simulate(ctx context.Context, cartAmount float64, lines []SimulationLine) (*pricing.CartSummary, error) {
	if cartAmount < 0 {
		return nil, fmt.Errorf("%w: cart_amount must not be negative, got %v", pricing.ErrInvalidInput, cartAmount)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: at least one payment line is required", pricing.ErrInvalidInput)
	}
	for i, ln := range lines {
		if ln.Amount < 0 {
			return nil, fmt.Errorf("%w: line %d: amount must not be negative, got %v", pricing.ErrInvalidInput, i, ln.Amount)
		}
		if ln.MethodCode == "" {
			return nil, fmt.Errorf("%w: line %d: method_code is required", pricing.ErrInvalidInput, i)
		}
	}

	items := make([]pricing.LineBreakdown, 0, len(lines))
	for i, ln := range lines {
		input, err := s.resolveLine(ctx, ln)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		breakdown, err := pricing.PriceLine(input)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		items = append(items, breakdown)
	}

	summary, err := pricing.Aggregate(cartAmount, items)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// resolveLine turns one request line into a pricing input: the best
// applicable discount percentage, the coefficient of the chosen financing
// plan and the VAT rate for the line.
func (s *SimulationService) resolveLine(ctx context.Context, ln SimulationLine) (pricing.LineInput, error) {
	rules, err := s.discounts.FindRules(ctx, ln.MethodCode, ln.Brand, ln.BankCode)
	if err != nil {
		return pricing.LineInput{}, err
	}
	// Best available discount wins; rules do not stack. Rows arrive
	// ordered by percentage descending with ties broken by lowest id.
	discountPct := 0.0
	if len(rules) > 0 {
		discountPct = rules[0].Percentage
	}

	coefficient := 1.0
	if ln.PlanID != nil {
		rate, err := s.plans.FindRate(ctx, *ln.PlanID)
		if err != nil {
			return pricing.LineInput{}, err
		}
		coefficient = rate.Coefficient
	}
	if ln.ForceUnitCoefficient {
		coefficient = 1
	}

	return pricing.LineInput{
		MethodCode:  ln.MethodCode,
		Amount:      ln.Amount,
		DiscountPct: discountPct,
		VATRate:     s.tax.RateForLine(ln.MethodCode, ln.Brand, ln.BankCode),
		Coefficient: coefficient,
		PlanID:      ln.PlanID,
	}, nil
}

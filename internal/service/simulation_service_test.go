package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/tender-pricing-engine/internal/model"
	"github.com/anyulbade/tender-pricing-engine/internal/pricing"
	"github.com/anyulbade/tender-pricing-engine/internal/repository"
	"github.com/anyulbade/tender-pricing-engine/internal/tax"
)

type fakeDiscounts struct {
	rules map[string][]model.DiscountRule // keyed by method code
	err   error
}

func (f *fakeDiscounts) FindRules(ctx context.Context, methodCode, brand, bankCode string) ([]model.DiscountRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rules[methodCode], nil
}

type fakePlans struct {
	rates  map[int64]model.FinancingPlanRate
	offers []model.PlanOffer
	err    error
}

func (f *fakePlans) FindPlans(ctx context.Context, filter repository.PlanFilter) ([]model.PlanOffer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.offers, nil
}

func (f *fakePlans) FindRate(ctx context.Context, rateID int64) (*model.FinancingPlanRate, error) {
	if f.err != nil {
		return nil, f.err
	}
	rate, ok := f.rates[rateID]
	if !ok {
		return nil, pricing.ErrPlanNotFound
	}
	return &rate, nil
}

func newTestService(discounts *fakeDiscounts, plans *fakePlans) *SimulationService {
	return NewSimulationService(discounts, plans, tax.FlatRate{Rate: 0.21})
}

func TestSimulate_CashDiscountScenario(t *testing.T) {
	discounts := &fakeDiscounts{rules: map[string][]model.DiscountRule{
		"efectivo": {{ID: 1, Percentage: 10}},
	}}
	svc := newTestService(discounts, &fakePlans{})

	summary, err := svc.Simulate(context.Background(), 1089, []SimulationLine{
		{Amount: 1000, MethodCode: "efectivo"},
	})
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)

	item := summary.Items[0]
	assert.InDelta(t, 100.00, item.DiscountAmount, 0.001)
	assert.InDelta(t, 900.00, item.NetAfterDiscount, 0.001)
	assert.InDelta(t, 189.00, item.VATAmount, 0.001)
	assert.Equal(t, 1.0, item.Coefficient)
	assert.InDelta(t, 1089.00, item.AmountFinal, 0.001)

	assert.InDelta(t, 1089.00, summary.TotalToCharge, 0.001)
	assert.Equal(t, 0.0, summary.Remaining)
	assert.Equal(t, 0.0, summary.ChangeAmount)
}

func TestSimulate_CreditPlanScenario(t *testing.T) {
	plans := &fakePlans{rates: map[int64]model.FinancingPlanRate{
		7: {ID: 7, PlanID: 2, Installments: 3, Coefficient: 1.15, Enabled: true},
	}}
	svc := newTestService(&fakeDiscounts{}, plans)

	planID := int64(7)
	summary, err := svc.Simulate(context.Background(), 1360, []SimulationLine{
		{Amount: 1000, MethodCode: "credito", Brand: "Visa", PlanID: &planID},
	})
	require.NoError(t, err)

	item := summary.Items[0]
	assert.InDelta(t, 1000.00, item.NetAfterDiscount, 0.001)
	assert.InDelta(t, 210.00, item.VATAmount, 0.001)
	assert.InDelta(t, 1360.00, item.AmountFinal, 0.001)
	assert.InDelta(t, 150.00, item.InterestAmount, 0.001)
	assert.InDelta(t, 150.00, summary.TotalInterest, 0.001)
}

func TestSimulate_BestDiscountWins(t *testing.T) {
	// Rows arrive ordered by percentage descending; the resolver takes
	// the first and never stacks.
	discounts := &fakeDiscounts{rules: map[string][]model.DiscountRule{
		"credito": {
			{ID: 3, Percentage: 15},
			{ID: 9, Percentage: 15},
			{ID: 1, Percentage: 5},
		},
	}}
	svc := newTestService(discounts, &fakePlans{})

	summary, err := svc.Simulate(context.Background(), 0, []SimulationLine{
		{Amount: 200, MethodCode: "credito"},
	})
	require.NoError(t, err)
	assert.Equal(t, 15.0, summary.Items[0].DiscountPct)
	assert.InDelta(t, 30.00, summary.Items[0].DiscountAmount, 0.001)
}

func TestSimulate_ForceUnitCoefficientOverridesPlan(t *testing.T) {
	plans := &fakePlans{rates: map[int64]model.FinancingPlanRate{
		7: {ID: 7, Coefficient: 1.49, Installments: 12, Enabled: true},
	}}
	svc := newTestService(&fakeDiscounts{}, plans)

	planID := int64(7)
	summary, err := svc.Simulate(context.Background(), 0, []SimulationLine{
		{Amount: 1000, MethodCode: "credito", PlanID: &planID, ForceUnitCoefficient: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, summary.Items[0].Coefficient)
	assert.InDelta(t, 1210.00, summary.Items[0].AmountFinal, 0.001)
}

func TestSimulate_FullySubsidizedPlanKeepsZeroCoefficient(t *testing.T) {
	plans := &fakePlans{rates: map[int64]model.FinancingPlanRate{
		7: {ID: 7, Coefficient: 0, Installments: 3, Enabled: true},
	}}
	svc := newTestService(&fakeDiscounts{}, plans)

	planID := int64(7)
	summary, err := svc.Simulate(context.Background(), 0, []SimulationLine{
		{Amount: 1000, MethodCode: "credito", PlanID: &planID},
	})
	require.NoError(t, err)

	item := summary.Items[0]
	assert.Equal(t, 0.0, item.Coefficient)
	assert.InDelta(t, 210.00, item.AmountFinal, 0.001, "only VAT is due on the fully subsidized base")
	assert.InDelta(t, -1000.00, item.InterestAmount, 0.001)
}

func TestSimulate_UnknownPlanFailsWholeCart(t *testing.T) {
	svc := newTestService(&fakeDiscounts{}, &fakePlans{})

	planID := int64(404)
	summary, err := svc.Simulate(context.Background(), 1000, []SimulationLine{
		{Amount: 500, MethodCode: "efectivo"},
		{Amount: 500, MethodCode: "credito", PlanID: &planID},
	})
	assert.ErrorIs(t, err, pricing.ErrPlanNotFound)
	assert.Nil(t, summary, "no partial breakdown on failure")
}

func TestSimulate_NoPlanChosenDefaultsCoefficient(t *testing.T) {
	svc := newTestService(&fakeDiscounts{}, &fakePlans{})

	summary, err := svc.Simulate(context.Background(), 0, []SimulationLine{
		{Amount: 100, MethodCode: "credito"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, summary.Items[0].Coefficient)
	assert.Nil(t, summary.Items[0].PlanID)
}

func TestSimulate_InputValidation(t *testing.T) {
	svc := newTestService(&fakeDiscounts{}, &fakePlans{})
	ctx := context.Background()

	t.Run("negative cart amount", func(t *testing.T) {
		_, err := svc.Simulate(ctx, -1, []SimulationLine{{Amount: 10, MethodCode: "efectivo"}})
		assert.ErrorIs(t, err, pricing.ErrInvalidInput)
	})

	t.Run("negative line amount", func(t *testing.T) {
		_, err := svc.Simulate(ctx, 100, []SimulationLine{{Amount: -10, MethodCode: "efectivo"}})
		assert.ErrorIs(t, err, pricing.ErrInvalidInput)
	})

	t.Run("missing method code", func(t *testing.T) {
		_, err := svc.Simulate(ctx, 100, []SimulationLine{{Amount: 10}})
		assert.ErrorIs(t, err, pricing.ErrInvalidInput)
	})

	t.Run("no lines", func(t *testing.T) {
		_, err := svc.Simulate(ctx, 100, nil)
		assert.ErrorIs(t, err, pricing.ErrInvalidInput)
	})
}

func TestSimulate_CatalogFailurePropagates(t *testing.T) {
	discounts := &fakeDiscounts{err: pricing.ErrDataUnavailable}
	svc := newTestService(discounts, &fakePlans{})

	_, err := svc.Simulate(context.Background(), 100, []SimulationLine{
		{Amount: 100, MethodCode: "efectivo"},
	})
	assert.ErrorIs(t, err, pricing.ErrDataUnavailable)
}

func TestSimulate_Idempotent(t *testing.T) {
	discounts := &fakeDiscounts{rules: map[string][]model.DiscountRule{
		"efectivo": {{ID: 1, Percentage: 10}},
	}}
	plans := &fakePlans{rates: map[int64]model.FinancingPlanRate{
		7: {ID: 7, Coefficient: 1.15, Installments: 3, Enabled: true},
	}}
	svc := newTestService(discounts, plans)

	planID := int64(7)
	lines := []SimulationLine{
		{Amount: 1000, MethodCode: "efectivo"},
		{Amount: 2500.50, MethodCode: "credito", PlanID: &planID},
	}

	first, err := svc.Simulate(context.Background(), 4000, lines)
	require.NoError(t, err)
	second, err := svc.Simulate(context.Background(), 4000, lines)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

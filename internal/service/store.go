package service

import (
	"context"

	"github.com/anyulbade/tender-pricing-engine/internal/model"
	"github.com/anyulbade/tender-pricing-engine/internal/repository"
)

// The services take the catalog store behind narrow interfaces so the
// pricing decision logic is exercisable without a database. The pgx
// repositories are the production implementations.

type MasterLister interface {
	Methods(ctx context.Context) ([]model.PaymentMethod, error)
	Brands(ctx context.Context) ([]model.CardBrand, error)
	Banks(ctx context.Context) ([]model.Bank, error)
	Acquirers(ctx context.Context) ([]model.Acquirer, error)
}

type DiscountFinder interface {
	FindRules(ctx context.Context, methodCode, brand, bankCode string) ([]model.DiscountRule, error)
}

type PlanFinder interface {
	FindPlans(ctx context.Context, f repository.PlanFilter) ([]model.PlanOffer, error)
	FindRate(ctx context.Context, rateID int64) (*model.FinancingPlanRate, error)
}

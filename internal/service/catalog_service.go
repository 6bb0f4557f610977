package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/tender-pricing-engine/internal/model"
	"github.com/anyulbade/tender-pricing-engine/internal/repository"
	"github.com/anyulbade/tender-pricing-engine/internal/tax"
)

type CatalogService struct {
	catalog   MasterLister
	discounts DiscountFinder
	plans     PlanFinder
	tax       tax.Provider
}

func NewCatalogService(catalog MasterLister, discounts DiscountFinder, plans PlanFinder, taxProvider tax.Provider) *CatalogService {
	return &CatalogService{catalog: catalog, discounts: discounts, plans: plans, tax: taxProvider}
}

type Masters struct {
	Methods   []model.PaymentMethod
	Brands    []model.CardBrand
	Banks     []model.Bank
	Acquirers []model.Acquirer
	VATRate   float64
}

// GetMasters loads the four lookup categories concurrently. Categories
// whose backing table is missing come back empty rather than failing the
// whole call; a connectivity failure still fails it.
func (s *CatalogService) GetMasters(ctx context.Context) (*Masters, error) {
	var masters Masters

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		masters.Methods, err = s.catalog.Methods(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		masters.Brands, err = s.catalog.Brands(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		masters.Banks, err = s.catalog.Banks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		masters.Acquirers, err = s.catalog.Acquirers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	masters.VATRate = s.tax.RateForLine("", "", "")
	return &masters, nil
}

// GetDiscounts lists the percentages currently applicable to the given
// method/brand/bank combination, best first.
func (s *CatalogService) GetDiscounts(ctx context.Context, methodCode, brand, bankCode string) ([]model.DiscountRule, error) {
	return s.discounts.FindRules(ctx, methodCode, brand, bankCode)
}

func (s *CatalogService) GetPlans(ctx context.Context, f repository.PlanFilter) ([]model.PlanOffer, error) {
	return s.plans.FindPlans(ctx, f)
}

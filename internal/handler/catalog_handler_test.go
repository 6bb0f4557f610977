package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/tender-pricing-engine/internal/dto"
	"github.com/anyulbade/tender-pricing-engine/internal/middleware"
	"github.com/anyulbade/tender-pricing-engine/internal/model"
	"github.com/anyulbade/tender-pricing-engine/internal/pricing"
	"github.com/anyulbade/tender-pricing-engine/internal/service"
	"github.com/anyulbade/tender-pricing-engine/internal/tax"
)

type stubCatalog struct {
	methods   []model.PaymentMethod
	brands    []model.CardBrand
	banks     []model.Bank
	acquirers []model.Acquirer
	err       error
}

func (s *stubCatalog) Methods(ctx context.Context) ([]model.PaymentMethod, error) {
	return s.methods, s.err
}

func (s *stubCatalog) Brands(ctx context.Context) ([]model.CardBrand, error) {
	return s.brands, s.err
}

func (s *stubCatalog) Banks(ctx context.Context) ([]model.Bank, error) {
	return s.banks, s.err
}

func (s *stubCatalog) Acquirers(ctx context.Context) ([]model.Acquirer, error) {
	return s.acquirers, s.err
}

func newCatalogRouter(catalog *stubCatalog, discounts *stubDiscounts, plans *stubPlans) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewCatalogService(catalog, discounts, plans, tax.FlatRate{Rate: 0.21})
	h := NewCatalogHandler(svc)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/api/v1/simulator/masters", h.GetMasters)
	router.GET("/api/v1/simulator/discounts", h.GetDiscounts)
	router.GET("/api/v1/simulator/plans", h.GetPlans)
	return router
}

func getJSON(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetMasters(t *testing.T) {
	catalog := &stubCatalog{
		methods: []model.PaymentMethod{
			{ID: 1, Code: "efectivo", Name: "Efectivo", Enabled: true},
			{ID: 2, Code: "credito", Name: "Tarjeta de crédito", Enabled: true},
		},
		brands: []model.CardBrand{{ID: 1, Name: "Visa"}, {ID: 2, Name: "Mastercard"}},
		banks: []model.Bank{
			{ID: 1, Code: "011", Name: "Banco de la Nación Argentina", CommercialName: "Banco Nación"},
			{ID: 2, Code: "285", Name: "Banco Macro"},
		},
		acquirers: []model.Acquirer{{ID: 1, Code: "PRISMA", Name: "Prisma Medios de Pago"}},
	}
	router := newCatalogRouter(catalog, &stubDiscounts{}, &stubPlans{})

	w := getJSON(router, "/api/v1/simulator/masters")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.MastersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Methods, 2)
	assert.Equal(t, "efectivo", resp.Methods[0].Code)
	assert.Equal(t, []string{"Visa", "Mastercard"}, resp.Brands)
	assert.Equal(t, 0.21, resp.VATRate)

	require.Len(t, resp.Banks, 2)
	assert.Equal(t, "Banco Nación", resp.Banks[0].Name, "commercial name preferred when set")
	assert.Equal(t, "Banco Macro", resp.Banks[1].Name, "legal name used as fallback")

	require.Len(t, resp.Acquirers, 1)
	assert.Equal(t, "PRISMA", resp.Acquirers[0].Code)
}

func TestGetMasters_EmptyCatalog(t *testing.T) {
	router := newCatalogRouter(&stubCatalog{}, &stubDiscounts{}, &stubPlans{})

	w := getJSON(router, "/api/v1/simulator/masters")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.MastersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Methods)
	assert.Empty(t, resp.Brands)
	assert.Equal(t, 0.21, resp.VATRate)
}

func TestGetMasters_CatalogOutageReturns503(t *testing.T) {
	catalog := &stubCatalog{err: pricing.ErrDataUnavailable}
	router := newCatalogRouter(catalog, &stubDiscounts{}, &stubPlans{})

	w := getJSON(router, "/api/v1/simulator/masters")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetDiscounts(t *testing.T) {
	discounts := &stubDiscounts{rules: []model.DiscountRule{
		{ID: 3, Percentage: 15},
		{ID: 1, Percentage: 5.125},
	}}
	router := newCatalogRouter(&stubCatalog{}, discounts, &stubPlans{})

	w := getJSON(router, "/api/v1/simulator/discounts?method=credito&brand=Visa")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []dto.DiscountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, 15.00, resp[0].Percentage)
	assert.Equal(t, 5.13, resp[1].Percentage, "percentages rounded half-up")
}

func TestGetPlans(t *testing.T) {
	plans := &stubPlans{offers: []model.PlanOffer{
		{RateID: 7, Code: "P3SI", Name: "3 cuotas sin interés", Installments: 3, Coefficient: 1, Brand: "Visa", BankCode: "011"},
		{RateID: 9, Code: "P12", Name: "12 cuotas", Installments: 12, Coefficient: 1.49},
	}}
	router := newCatalogRouter(&stubCatalog{}, &stubDiscounts{}, plans)

	w := getJSON(router, "/api/v1/simulator/plans?method=credito&unit_coefficient=true")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []dto.PlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, int64(7), resp[0].PlanID)
	assert.Equal(t, "P3SI", resp[0].Code)
	assert.Equal(t, 3, resp[0].Installments)
	assert.Equal(t, "Visa", resp[0].Brand)
	assert.Equal(t, "011", resp[0].Bank)
	assert.Equal(t, 1.49, resp[1].Coefficient)
}

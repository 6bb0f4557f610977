package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/tender-pricing-engine/internal/dto"
	"github.com/anyulbade/tender-pricing-engine/internal/pricing"
	"github.com/anyulbade/tender-pricing-engine/internal/repository"
	"github.com/anyulbade/tender-pricing-engine/internal/service"
)

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) GetMasters(c *gin.Context) {
	masters, err := h.svc.GetMasters(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	resp := dto.MastersResponse{
		Methods:   make([]dto.MethodResponse, len(masters.Methods)),
		Brands:    make([]string, len(masters.Brands)),
		Banks:     make([]dto.BankResponse, len(masters.Banks)),
		Acquirers: make([]dto.AcquirerResponse, len(masters.Acquirers)),
		VATRate:   masters.VATRate,
	}
	for i, m := range masters.Methods {
		resp.Methods[i] = dto.MethodResponse{Code: m.Code, Name: m.Name}
	}
	for i, b := range masters.Brands {
		resp.Brands[i] = b.Name
	}
	for i, b := range masters.Banks {
		name := b.CommercialName
		if name == "" {
			name = b.Name
		}
		resp.Banks[i] = dto.BankResponse{Code: b.Code, Name: name}
	}
	for i, a := range masters.Acquirers {
		resp.Acquirers[i] = dto.AcquirerResponse{Code: a.Code, Name: a.Name}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) GetDiscounts(c *gin.Context) {
	rules, err := h.svc.GetDiscounts(c.Request.Context(),
		c.Query("method"), c.Query("brand"), c.Query("bank"))
	if err != nil {
		c.Error(err)
		return
	}

	resp := make([]dto.DiscountResponse, len(rules))
	for i, r := range rules {
		resp[i] = dto.DiscountResponse{Percentage: pricing.Round2(r.Percentage)}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) GetPlans(c *gin.Context) {
	filter := repository.PlanFilter{
		MethodCode:      c.Query("method"),
		Brand:           c.Query("brand"),
		BankCode:        c.Query("bank"),
		AcquirerCode:    c.Query("acquirer"),
		UnitCoefficient: c.Query("unit_coefficient") == "true",
	}

	offers, err := h.svc.GetPlans(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	resp := make([]dto.PlanResponse, len(offers))
	for i, o := range offers {
		resp[i] = dto.PlanResponse{
			PlanID:       o.RateID,
			Code:         o.Code,
			Name:         o.Name,
			Installments: o.Installments,
			Coefficient:  o.Coefficient,
			Brand:        o.Brand,
			Card:         o.CardCode,
			Bank:         o.BankCode,
		}
	}
	c.JSON(http.StatusOK, resp)
}

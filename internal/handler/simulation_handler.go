package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/tender-pricing-engine/internal/dto"
	"github.com/anyulbade/tender-pricing-engine/internal/pricing"
	"github.com/anyulbade/tender-pricing-engine/internal/service"
)

type SimulationHandler struct {
	svc *service.SimulationService
}

func NewSimulationHandler(svc *service.SimulationService) *SimulationHandler {
	return &SimulationHandler{svc: svc}
}

func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req dto.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	lines := make([]service.SimulationLine, len(req.Lines))
	for i, ln := range req.Lines {
		lines[i] = service.SimulationLine{
			Amount:               ln.Amount,
			MethodCode:           ln.MethodCode,
			Brand:                ln.Brand,
			BankCode:             ln.BankCode,
			PlanID:               ln.PlanID,
			ForceUnitCoefficient: ln.ForceUnitCoefficient,
		}
	}

	summary, err := h.svc.Simulate(c.Request.Context(), req.CartAmount, lines)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, toSimulateResponse(summary))
}

// toSimulateResponse rounds every monetary figure half-up to 2 decimals.
// This is the only place rounding happens; the summary itself accumulates
// unrounded values.
func toSimulateResponse(s *pricing.CartSummary) dto.SimulateResponse {
	items := make([]dto.LineBreakdownResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = dto.LineBreakdownResponse{
			Method:           it.Method,
			AmountBase:       pricing.Round2(it.AmountBase),
			DiscountPct:      pricing.Round2(it.DiscountPct),
			DiscountAmount:   pricing.Round2(it.DiscountAmount),
			NetAfterDiscount: pricing.Round2(it.NetAfterDiscount),
			VATRate:          it.VATRate,
			VATAmount:        pricing.Round2(it.VATAmount),
			Coefficient:      it.Coefficient,
			InterestAmount:   pricing.Round2(it.InterestAmount),
			AmountFinal:      pricing.Round2(it.AmountFinal),
			PlanID:           it.PlanID,
		}
	}
	return dto.SimulateResponse{
		Items:         items,
		SubtotalBase:  pricing.Round2(s.SubtotalBase),
		TotalInterest: pricing.Round2(s.TotalInterest),
		TotalToCharge: pricing.Round2(s.TotalToCharge),
		ChangeAmount:  pricing.Round2(s.ChangeAmount),
		Remaining:     pricing.Round2(s.Remaining),
	}
}

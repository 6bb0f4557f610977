package dto

type SimulateLineRequest struct {
	Amount               float64 `json:"amount" binding:"gte=0"`
	MethodCode           string  `json:"method_code" binding:"required"`
	Brand                string  `json:"brand"`
	BankCode             string  `json:"bank_code"`
	PlanID               *int64  `json:"plan_id"`
	ForceUnitCoefficient bool    `json:"force_unit_coefficient"`
}

type SimulateRequest struct {
	CartAmount float64               `json:"cart_amount" binding:"gte=0"`
	Lines      []SimulateLineRequest `json:"lines" binding:"required,min=1,dive"`
}

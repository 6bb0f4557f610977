package dto

type MethodResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type BankResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type AcquirerResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type MastersResponse struct {
	Methods   []MethodResponse   `json:"methods"`
	Brands    []string           `json:"brands"`
	Banks     []BankResponse     `json:"banks"`
	Acquirers []AcquirerResponse `json:"acquirers"`
	VATRate   float64            `json:"vat_rate"`
}

type DiscountResponse struct {
	Percentage float64 `json:"percentage"`
}

type PlanResponse struct {
	PlanID       int64   `json:"plan_id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Installments int     `json:"installments"`
	Coefficient  float64 `json:"coefficient"`
	Brand        string  `json:"brand,omitempty"`
	Card         string  `json:"card,omitempty"`
	Bank         string  `json:"bank,omitempty"`
}

// LineBreakdownResponse carries the per-line figures rounded half-up to
// 2 decimals; aggregation happened on the unrounded values.
type LineBreakdownResponse struct {
	Method           string  `json:"method"`
	AmountBase       float64 `json:"amount_base"`
	DiscountPct      float64 `json:"discount_pct"`
	DiscountAmount   float64 `json:"discount_amount"`
	NetAfterDiscount float64 `json:"net_after_discount"`
	VATRate          float64 `json:"vat_rate"`
	VATAmount        float64 `json:"vat_amount"`
	Coefficient      float64 `json:"coefficient_applied"`
	InterestAmount   float64 `json:"interest_amount"`
	AmountFinal      float64 `json:"amount_final"`
	PlanID           *int64  `json:"plan_id,omitempty"`
}

type SimulateResponse struct {
	Items         []LineBreakdownResponse `json:"items"`
	SubtotalBase  float64                 `json:"subtotal_base"`
	TotalInterest float64                 `json:"total_interest"`
	TotalToCharge float64                 `json:"total_to_charge"`
	ChangeAmount  float64                 `json:"change_amount"`
	Remaining     float64                 `json:"remaining"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

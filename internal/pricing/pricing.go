// Package pricing holds the pure money math of the payment simulator:
// per-line discount, VAT and installment-coefficient application, and the
// cart-level fold. It performs no I/O; rule and coefficient resolution
// happens in the service layer before these functions run.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineInput is one payment line with its resolution already done: the
// discount percentage and financing coefficient have been picked by the
// rule resolver, the VAT rate by the tax provider.
type LineInput struct {
	MethodCode  string
	Amount      float64
	DiscountPct float64
	VATRate     float64
	Coefficient float64
	PlanID      *int64
}

// LineBreakdown carries unrounded figures; rounding happens only at the
// presentation boundary so that cart totals accumulate exactly.
type LineBreakdown struct {
	Method           string
	AmountBase       float64
	DiscountPct      float64
	DiscountAmount   float64
	NetAfterDiscount float64
	VATRate          float64
	VATAmount        float64
	Coefficient      float64
	// InterestAmount is signed: a coefficient below 1 yields a negative
	// value, a subsidized rate, and is not clamped per line.
	InterestAmount float64
	AmountFinal    float64
	PlanID         *int64
}

// CartSummary is the aggregate over all line breakdowns.
type CartSummary struct {
	Items         []LineBreakdown
	SubtotalBase  float64
	TotalInterest float64
	TotalToCharge float64
	ChangeAmount  float64
	Remaining     float64
}

// PriceLine computes the monetary breakdown for one payment line.
func PriceLine(in LineInput) (LineBreakdown, error) {
	if in.Amount < 0 {
		return LineBreakdown{}, fmt.Errorf("%w: amount must not be negative, got %v", ErrInvalidInput, in.Amount)
	}
	if in.MethodCode == "" {
		return LineBreakdown{}, fmt.Errorf("%w: method_code is required", ErrInvalidInput)
	}

	if in.Coefficient < 0 {
		return LineBreakdown{}, fmt.Errorf("%w: coefficient must not be negative, got %v", ErrInvalidInput, in.Coefficient)
	}

	discountAmount := in.Amount * (in.DiscountPct / 100)
	netAfterDiscount := in.Amount - discountAmount
	if netAfterDiscount < 0 {
		netAfterDiscount = 0
	}
	vatAmount := netAfterDiscount * in.VATRate
	amountFinal := netAfterDiscount*in.Coefficient + vatAmount

	return LineBreakdown{
		Method:           in.MethodCode,
		AmountBase:       in.Amount,
		DiscountPct:      in.DiscountPct,
		DiscountAmount:   discountAmount,
		NetAfterDiscount: netAfterDiscount,
		VATRate:          in.VATRate,
		VATAmount:        vatAmount,
		Coefficient:      in.Coefficient,
		InterestAmount:   amountFinal - netAfterDiscount - vatAmount,
		AmountFinal:      amountFinal,
		PlanID:           in.PlanID,
	}, nil
}

// Aggregate folds line breakdowns into cart totals. Lines are independent;
// there is no order-dependent allocation. Aggregate interest floors each
// line's contribution at 0 while the per-line figure stays signed, which
// mirrors the legacy simulator and awaits a product decision.
func Aggregate(cartAmount float64, items []LineBreakdown) (CartSummary, error) {
	if cartAmount < 0 {
		return CartSummary{}, fmt.Errorf("%w: cart_amount must not be negative, got %v", ErrInvalidInput, cartAmount)
	}

	var summary CartSummary
	summary.Items = items
	for _, it := range items {
		summary.SubtotalBase += it.AmountBase
		if it.InterestAmount > 0 {
			summary.TotalInterest += it.InterestAmount
		}
		summary.TotalToCharge += it.AmountFinal
	}

	// Overpayment and underpayment are mutually exclusive by
	// construction: at most one of the two is nonzero.
	if summary.TotalToCharge > cartAmount {
		summary.ChangeAmount = summary.TotalToCharge - cartAmount
	} else {
		summary.Remaining = cartAmount - summary.TotalToCharge
	}

	return summary, nil
}

// Round2 rounds to 2 decimal places half-up, for presentation only.
func Round2(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}

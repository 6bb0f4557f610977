package model

import (
	"time"
)

type PaymentMethod struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

type CardBrand struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

type Bank struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	CommercialName string `json:"commercial_name,omitempty"`
	Enabled        bool   `json:"enabled"`
}

type Acquirer struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// CardType links a brand instance to a concrete bank/acquirer pairing.
// Bank and acquirer are optional: a row may describe a brand issued
// without a specific bank agreement.
type CardType struct {
	ID         int64  `json:"id"`
	Brand      string `json:"brand"`
	CardCode   string `json:"card_code"`
	BankID     *int64 `json:"bank_id,omitempty"`
	AcquirerID *int64 `json:"acquirer_id,omitempty"`
	Enabled    bool   `json:"enabled"`
}

// DiscountRule grants a percentage off for a tender, optionally narrowed
// to one card type. A NULL card type means the rule applies to the
// method broadly.
type DiscountRule struct {
	ID         int64      `json:"id"`
	MethodID   int64      `json:"method_id"`
	CardTypeID *int64     `json:"card_type_id,omitempty"`
	Percentage float64    `json:"percentage"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidTo    *time.Time `json:"valid_to,omitempty"`
	Enabled    bool       `json:"enabled"`
}

type FinancingPlanHeader struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	MethodID  *int64     `json:"method_id,omitempty"`
	ValidFrom *time.Time `json:"valid_from,omitempty"`
	ValidTo   *time.Time `json:"valid_to,omitempty"`
	Enabled   bool       `json:"enabled"`
}

type FinancingPlanRate struct {
	ID           int64   `json:"id"`
	PlanID       int64   `json:"plan_id"`
	Installments int     `json:"installments"`
	Coefficient  float64 `json:"coefficient"`
	Enabled      bool    `json:"enabled"`
}

// PlanOffer is a rate joined with its header and optional card type,
// the shape the simulator UI consumes when listing available plans.
type PlanOffer struct {
	RateID       int64   `json:"plan_id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Installments int     `json:"installments"`
	Coefficient  float64 `json:"coefficient"`
	Brand        string  `json:"brand,omitempty"`
	CardCode     string  `json:"card,omitempty"`
	BankCode     string  `json:"bank,omitempty"`
}

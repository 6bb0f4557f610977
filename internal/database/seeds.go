package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type cardTypeSeed struct {
	Brand    string
	CardCode string
	BankCode string // empty means no bank agreement
	Acquirer string
}

type discountSeed struct {
	Method    string
	CardIndex int // index into cardTypes, -1 for a broad method rule
	Pct       float64
	DaysValid int // 0 means open-ended window
}

type planSeed struct {
	Code   string
	Name   string
	Method string
	Rates  []planRateSeed
}

type planRateSeed struct {
	CardIndex    int
	Installments int
	Coefficient  float64
}

var methods = []struct {
	Code string
	Name string
}{
	{"efectivo", "Efectivo"},
	{"debito", "Tarjeta de débito"},
	{"credito", "Tarjeta de crédito"},
	{"transferencia", "Transferencia bancaria"},
}

var brands = []string{"Visa", "Mastercard", "Amex", "Cabal"}

var banks = []struct {
	Code       string
	Name       string
	Commercial string
}{
	{"011", "Banco de la Nación Argentina", "Banco Nación"},
	{"007", "Banco de Galicia y Buenos Aires", "Galicia"},
	{"072", "Banco Santander Argentina", "Santander"},
	{"017", "BBVA Argentina", "BBVA"},
	{"285", "Banco Macro", "Macro"},
}

var acquirers = []struct {
	Code string
	Name string
}{
	{"PRISMA", "Prisma Medios de Pago"},
	{"FISERV", "Fiserv Argentina"},
	{"PAYWAY", "Payway"},
}

var cardTypes = []cardTypeSeed{
	{"Visa", "VISA_CRED", "007", "PRISMA"},
	{"Visa", "VISA_DEB", "007", "PRISMA"},
	{"Mastercard", "MC_CRED", "072", "FISERV"},
	{"Mastercard", "MC_DEB", "072", "FISERV"},
	{"Amex", "AMEX_CRED", "", "PAYWAY"},
	{"Cabal", "CABAL_CRED", "011", "PAYWAY"},
	{"Visa", "VISA_CRED_MACRO", "285", "PRISMA"},
}

var discounts = []discountSeed{
	{"efectivo", -1, 10, 0},
	{"debito", 1, 5, 0},
	{"credito", 0, 15, 30},
	{"credito", 6, 15, 30}, // same pct as the Galicia rule, exercises the tie-break
	{"transferencia", -1, 3, 0},
}

var plans = []planSeed{
	{
		Code: "P3SI", Name: "3 cuotas sin interés", Method: "credito",
		Rates: []planRateSeed{
			{0, 3, 1},
			{2, 3, 1},
		},
	},
	{
		Code: "P6", Name: "6 cuotas financiadas", Method: "credito",
		Rates: []planRateSeed{
			{0, 6, 1.15},
			{2, 6, 1.18},
			{5, 6, 1.12},
		},
	},
	{
		Code: "P12", Name: "12 cuotas financiadas", Method: "credito",
		Rates: []planRateSeed{
			{0, 12, 1.45},
			{2, 12, 1.49},
		},
	},
	{
		Code: "PSUB", Name: "Plan subsidiado banco", Method: "credito",
		Rates: []planRateSeed{
			{6, 3, 0.95},
		},
	},
}

// SeedData loads a small Argentine retail catalog. It is idempotent: when
// payment methods already exist the seed is skipped entirely.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM payment_methods").Scan(&count); err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if count > 0 {
		log.Info().Msg("seed data already exists, skipping")
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	methodIDs := make(map[string]int64, len(methods))
	for _, m := range methods {
		var id int64
		err := tx.QueryRow(ctx,
			"INSERT INTO payment_methods (code, name) VALUES ($1, $2) RETURNING id",
			m.Code, m.Name).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert method %s: %w", m.Code, err)
		}
		methodIDs[m.Code] = id
	}
	log.Info().Int("count", len(methods)).Msg("inserted payment methods")

	for _, b := range brands {
		if _, err := tx.Exec(ctx, "INSERT INTO card_brands (name) VALUES ($1)", b); err != nil {
			return fmt.Errorf("insert brand %s: %w", b, err)
		}
	}

	bankIDs := make(map[string]int64, len(banks))
	for _, b := range banks {
		var id int64
		err := tx.QueryRow(ctx,
			"INSERT INTO banks (code, name, commercial_name) VALUES ($1, $2, $3) RETURNING id",
			b.Code, b.Name, b.Commercial).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert bank %s: %w", b.Code, err)
		}
		bankIDs[b.Code] = id
	}

	acquirerIDs := make(map[string]int64, len(acquirers))
	for _, a := range acquirers {
		var id int64
		err := tx.QueryRow(ctx,
			"INSERT INTO acquirers (code, name) VALUES ($1, $2) RETURNING id",
			a.Code, a.Name).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert acquirer %s: %w", a.Code, err)
		}
		acquirerIDs[a.Code] = id
	}
	log.Info().
		Int("brands", len(brands)).
		Int("banks", len(banks)).
		Int("acquirers", len(acquirers)).
		Msg("inserted card catalog masters")

	cardIDs := make([]int64, len(cardTypes))
	for i, ct := range cardTypes {
		var bankID, acquirerID *int64
		if ct.BankCode != "" {
			id := bankIDs[ct.BankCode]
			bankID = &id
		}
		if ct.Acquirer != "" {
			id := acquirerIDs[ct.Acquirer]
			acquirerID = &id
		}
		err := tx.QueryRow(ctx,
			"INSERT INTO card_types (brand, card_code, bank_id, acquirer_id) VALUES ($1, $2, $3, $4) RETURNING id",
			ct.Brand, ct.CardCode, bankID, acquirerID).Scan(&cardIDs[i])
		if err != nil {
			return fmt.Errorf("insert card type %s: %w", ct.CardCode, err)
		}
	}
	log.Info().Int("count", len(cardTypes)).Msg("inserted card types")

	for _, d := range discounts {
		var cardID *int64
		if d.CardIndex >= 0 {
			cardID = &cardIDs[d.CardIndex]
		}
		var err error
		if d.DaysValid > 0 {
			_, err = tx.Exec(ctx,
				`INSERT INTO discount_rules (method_id, card_type_id, percentage, valid_from, valid_to)
				VALUES ($1, $2, $3, NOW(), NOW() + make_interval(days => $4))`,
				methodIDs[d.Method], cardID, d.Pct, d.DaysValid)
		} else {
			_, err = tx.Exec(ctx,
				"INSERT INTO discount_rules (method_id, card_type_id, percentage) VALUES ($1, $2, $3)",
				methodIDs[d.Method], cardID, d.Pct)
		}
		if err != nil {
			return fmt.Errorf("insert discount for %s: %w", d.Method, err)
		}
	}
	log.Info().Int("count", len(discounts)).Msg("inserted discount rules")

	rateCount := 0
	for _, p := range plans {
		methodID := methodIDs[p.Method]
		var planID int64
		err := tx.QueryRow(ctx,
			"INSERT INTO financing_plan_headers (code, name, method_id) VALUES ($1, $2, $3) RETURNING id",
			p.Code, p.Name, methodID).Scan(&planID)
		if err != nil {
			return fmt.Errorf("insert plan header %s: %w", p.Code, err)
		}
		for _, r := range p.Rates {
			_, err := tx.Exec(ctx,
				"INSERT INTO financing_plan_rates (plan_id, card_type_id, installments, coefficient) VALUES ($1, $2, $3, $4)",
				planID, cardIDs[r.CardIndex], r.Installments, r.Coefficient)
			if err != nil {
				return fmt.Errorf("insert rate %s/%d: %w", p.Code, r.Installments, err)
			}
			rateCount++
		}
	}
	log.Info().Int("headers", len(plans)).Int("rates", rateCount).Msg("inserted financing plans")

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed data: %w", err)
	}

	log.Info().Msg("seed data generation complete")
	return nil
}

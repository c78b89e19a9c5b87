// Package ledger implements the split calculator: pure functions that turn
// an expense amount and a participant set into a balanced list of shares.
//
// All money arithmetic happens in decimal (two fractional digits) so that
// the computed shares always sum exactly to the expense amount; binary
// floats only appear at the package boundary.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/Hariksh/Expense-tracker/internal/apperr"
	"github.com/Hariksh/Expense-tracker/internal/models"
)

// SumTolerance is the maximum absolute difference allowed between the sum
// of caller-supplied custom shares and the expense amount.
const SumTolerance = 0.01

var (
	hundred      = decimal.NewFromInt(100)
	toleranceDec = decimal.NewFromFloat(SumTolerance)
)

// Share pairs a participant with their portion of an expense amount.
type Share struct {
	Participant models.Participant
	Amount      float64
}

// EqualShares divides total evenly among the participants, rounding each
// share to two decimal places. The payer is included as one of the
// participants before dividing (appended if absent). Rounding leftovers are
// distributed one cent at a time to the first participants in input order,
// so the returned shares sum exactly to total.
func EqualShares(total float64, participants []models.Participant, payer models.Participant) ([]Share, error) {
	if payer.IsZero() {
		return nil, apperr.Validationf("payer is required")
	}
	if len(participants) == 0 {
		return nil, apperr.Validationf("at least one participant is required")
	}

	all := make([]models.Participant, 0, len(participants)+1)
	all = append(all, participants...)
	if !contains(all, payer) {
		all = append(all, payer)
	}
	if err := checkDistinct(all); err != nil {
		return nil, err
	}

	cents := decimal.NewFromFloat(total).Mul(hundred).Round(0).IntPart()
	n := int64(len(all))
	base := cents / n
	remainder := cents % n

	shares := make([]Share, len(all))
	for i, p := range all {
		c := base
		if int64(i) < remainder {
			c++
		}
		shares[i] = Share{Participant: p, Amount: centsToFloat(c)}
	}
	return shares, nil
}

// CustomShares validates caller-supplied shares against total: every share
// is rounded to two decimal places, must be non-negative, and participants
// must be distinct. When the payer
// appears in the share list the shares must sum to total within
// SumTolerance. A payer missing from the list is instead appended with the
// residual total - sum(shares); the shares then may undershoot total by any
// amount, but overshooting beyond SumTolerance is still rejected.
func CustomShares(total float64, shares []Share, payer models.Participant) ([]Share, error) {
	if payer.IsZero() {
		return nil, apperr.Validationf("payer is required")
	}
	if len(shares) == 0 {
		return nil, apperr.Validationf("at least one share is required")
	}

	participants := make([]models.Participant, len(shares))
	rounded := make([]decimal.Decimal, len(shares))
	sum := decimal.Zero
	for i, s := range shares {
		if s.Participant.IsZero() {
			return nil, apperr.Validationf("share %d has no participant", i)
		}
		if s.Amount < 0 {
			return nil, apperr.Validationf("share for %s is negative", s.Participant)
		}
		participants[i] = s.Participant
		rounded[i] = decimal.NewFromFloat(s.Amount).Round(2)
		sum = sum.Add(rounded[i])
	}
	if err := checkDistinct(participants); err != nil {
		return nil, err
	}

	totalDec := decimal.NewFromFloat(total).Round(2)
	delta := sum.Sub(totalDec)
	payerListed := contains(participants, payer)
	if delta.Abs().GreaterThan(toleranceDec) && (payerListed || delta.IsPositive()) {
		return nil, &apperr.UnbalancedError{
			Amount: totalDec.InexactFloat64(),
			Sum:    sum.InexactFloat64(),
			Delta:  delta.InexactFloat64(),
		}
	}

	// Return the rounded amounts the sum was validated against, so the
	// persisted shares cannot drift from the checked total.
	out := make([]Share, len(shares))
	for i, s := range shares {
		out[i] = Share{Participant: s.Participant, Amount: rounded[i].InexactFloat64()}
	}
	if !payerListed {
		residual := totalDec.Sub(sum)
		if residual.IsNegative() {
			residual = decimal.Zero
		}
		out = append(out, Share{Participant: payer, Amount: residual.InexactFloat64()})
	}
	return out, nil
}

// PersonalShare is the degenerate split of a personal (non-group) expense:
// a single share assigning the full amount to the payer.
func PersonalShare(total float64, payer models.Participant) ([]Share, error) {
	if payer.IsZero() {
		return nil, apperr.Validationf("payer is required")
	}
	amount := decimal.NewFromFloat(total).Round(2).InexactFloat64()
	return []Share{{Participant: payer, Amount: amount}}, nil
}

func centsToFloat(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

func contains(participants []models.Participant, p models.Participant) bool {
	for _, q := range participants {
		if q.Key() == p.Key() {
			return true
		}
	}
	return false
}

func checkDistinct(participants []models.Participant) error {
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seen[p.Key()] {
			return apperr.Validationf("duplicate participant %s", p)
		}
		seen[p.Key()] = true
	}
	return nil
}

// Package allocation derives per-term hostel fees and payment statuses.
// Concession cascades forward through the terms (term1 first) and payment
// excess carries forward the same way, never backward.
package allocation

import (
	"errors"
	"math"

	"hostelku_backend/internals/features/fees/model"
)

// ErrNoFeeStructure distinguishes "no structure configured for this
// year/category" from a legitimately zero-fee structure. Callers must block
// fee-dependent output and tell the user to contact an administrator.
var ErrNoFeeStructure = errors.New("fee structure not configured")

/* =============== TERM FEES =============== */

type TermFees struct {
	Term1 float64 `json:"term1"`
	Term2 float64 `json:"term2"`
	Term3 float64 `json:"term3"`
}

func (t TermFees) Total() float64 {
	return t.Term1 + t.Term2 + t.Term3
}

func (t TermFees) ForTerm(n int) float64 {
	switch n {
	case 1:
		return t.Term1
	case 2:
		return t.Term2
	case 3:
		return t.Term3
	default:
		return 0
	}
}

func (t *TermFees) add(term int, amount float64) {
	switch term {
	case 1:
		t.Term1 += amount
	case 2:
		t.Term2 += amount
	case 3:
		t.Term3 += amount
	}
}

/* =============== CONCESSION CASCADE =============== */

// ComputeTermFees applies the student's concession to the fee structure,
// front-loaded: term1 absorbs as much as it can, the unused remainder rolls
// into term2, then term3. No term ever goes below zero.
//
// When the backend already supplies a complete set of calculated term fees
// those are authoritative and returned as-is. A partial set is ignored;
// it cannot satisfy the conservation invariant.
func ComputeTermFees(fs *model.FeeStructure, profile model.StudentFeeProfile) (TermFees, error) {
	if fs == nil {
		return TermFees{}, ErrNoFeeStructure
	}

	if profile.HasCalculatedFees() {
		return TermFees{
			Term1: math.Max(0, *profile.CalculatedTerm1Fee),
			Term2: math.Max(0, *profile.CalculatedTerm2Fee),
			Term3: math.Max(0, *profile.CalculatedTerm3Fee),
		}, nil
	}

	concession := math.Max(0, profile.Concession)

	term1 := math.Max(0, fs.Term1Fee-concession)
	remaining := math.Max(0, concession-fs.Term1Fee)

	term2 := math.Max(0, fs.Term2Fee-remaining)
	remaining = math.Max(0, remaining-fs.Term2Fee)

	term3 := math.Max(0, fs.Term3Fee-remaining)

	return TermFees{Term1: term1, Term2: term2, Term3: term3}, nil
}

/* =============== PAYMENT ALLOCATION =============== */

// SumTermPayments buckets successful hostel-fee payments by normalized term.
// Electricity and non-successful records are excluded entirely.
func SumTermPayments(payments []model.PaymentRecord) TermFees {
	var paid TermFees
	for _, p := range payments {
		if !p.CountsTowardTerms() {
			continue
		}
		paid.add(p.Term, p.Amount)
	}
	return paid
}

// AllocatePayments applies the recorded per-term payments against the
// required fees. Overpayment on an earlier term is credited to the next
// term before any of it reaches the one after; applied never exceeds
// required for any term. A fully waived term (required == 0) is Paid
// regardless of payments.
func AllocatePayments(required, paid TermFees) []model.TermAllocation {
	out := make([]model.TermAllocation, 0, 3)

	excess := 0.0
	for term := 1; term <= 3; term++ {
		req := required.ForTerm(term)
		effective := paid.ForTerm(term) + excess
		applied := math.Min(effective, req)
		excess = math.Max(0, effective-req)

		out = append(out, model.TermAllocation{
			Term:      term,
			Required:  req,
			Paid:      applied,
			Remaining: math.Max(0, req-applied),
			Status:    statusFor(req, applied),
		})
	}
	return out
}

func statusFor(required, applied float64) model.TermStatus {
	switch {
	case applied >= required:
		return model.TermStatusPaid
	case applied > 0:
		return model.TermStatusPartial
	default:
		return model.TermStatusUnpaid
	}
}

/* =============== SUMMARY =============== */

// Summarize totals the allocation. Pending is clamped at zero so an
// overpayment never shows as negative dues.
func Summarize(terms []model.TermAllocation) model.FeeSummary {
	var total, applied float64
	for _, t := range terms {
		total += t.Required
		applied += t.Paid
	}
	return model.FeeSummary{
		TotalFee:      total,
		PaidAmount:    applied,
		PendingAmount: math.Max(0, total-applied),
	}
}

package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

/* =============== ENUMS =============== */

type TermStatus string

const (
	TermStatusUnpaid  TermStatus = "Unpaid"
	TermStatusPartial TermStatus = "Partially Paid"
	TermStatusPaid    TermStatus = "Paid"
)

const (
	PaymentTypeHostelFee   = "hostel_fee"
	PaymentTypeElectricity = "electricity"
)

const (
	PaymentStatusSuccess   = "success"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

/* =============== REFERENCE DATA =============== */

// FeeStructure is immutable reference data owned by the core backend,
// looked up per (academic year, category) and cached for the session.
type FeeStructure struct {
	AcademicYear string  `json:"academic_year"`
	Category     string  `json:"category"`
	Term1Fee     float64 `json:"term1_fee"`
	Term2Fee     float64 `json:"term2_fee"`
	Term3Fee     float64 `json:"term3_fee"`
	TotalFee     float64 `json:"total_fee"`
}

// CacheKey matches the lookup key used by the portal cache.
func (fs FeeStructure) CacheKey() string {
	return CacheKey(fs.AcademicYear, fs.Category)
}

func CacheKey(academicYear, category string) string {
	return fmt.Sprintf("%s-%s", academicYear, category)
}

// StudentFeeProfile carries the student's concession and, when the backend
// already applied it, the precomputed per-term fees (those win over local
// recomputation, but only as a complete set).
type StudentFeeProfile struct {
	Concession         float64  `json:"concession"`
	CalculatedTerm1Fee *float64 `json:"calculated_term1_fee,omitempty"`
	CalculatedTerm2Fee *float64 `json:"calculated_term2_fee,omitempty"`
	CalculatedTerm3Fee *float64 `json:"calculated_term3_fee,omitempty"`
}

func (p StudentFeeProfile) HasCalculatedFees() bool {
	return p.CalculatedTerm1Fee != nil && p.CalculatedTerm2Fee != nil && p.CalculatedTerm3Fee != nil
}

/* =============== PAYMENTS =============== */

// BillDetails is only present on electricity payments. Each field is
// independently optional; absent fields are omitted from documents, never
// zero-filled.
type BillDetails struct {
	Consumption *float64 `json:"consumption,omitempty"`
	Rate        *float64 `json:"rate,omitempty"`
	Total       *float64 `json:"total,omitempty"`
}

// PaymentRecord is read-only to the portal: created by the backend at payment
// time, never mutated here. Term is already normalized (1..3, 0 when the
// record is not tied to a term).
type PaymentRecord struct {
	ID            string       `json:"id"`
	StudentID     string       `json:"student_id"`
	ReceiptNumber string       `json:"receipt_number"`
	TransactionID string       `json:"transaction_id"`
	Amount        float64      `json:"amount"`
	Term          int          `json:"term"`
	PaymentType   string       `json:"payment_type"`
	Status        string       `json:"status"`
	PaymentMethod string       `json:"payment_method"`
	UTRNumber     string       `json:"utr_number"`
	PaymentDate   time.Time    `json:"payment_date"`
	BillMonth     string       `json:"bill_month"`
	CollectedBy   string       `json:"collected_by"`
	Notes         string       `json:"notes"`
	BillDetails   *BillDetails `json:"bill_details,omitempty"`
}

// CountsTowardTerms reports whether the record participates in hostel-fee
// term allocation. Electricity and non-successful payments never do.
func (p PaymentRecord) CountsTowardTerms() bool {
	return p.PaymentType == PaymentTypeHostelFee &&
		p.Status == PaymentStatusSuccess &&
		p.Term >= 1 && p.Term <= 3
}

/* =============== DERIVED (never persisted) =============== */

// TermAllocation is recomputed on every request from PaymentRecord +
// StudentFeeProfile + FeeStructure.
type TermAllocation struct {
	Term      int        `json:"term"`
	Required  float64    `json:"required"`
	Paid      float64    `json:"paid"`
	Remaining float64    `json:"remaining"`
	Status    TermStatus `json:"status"`
}

type FeeSummary struct {
	TotalFee      float64 `json:"total_fee"`
	PaidAmount    float64 `json:"paid_amount"`
	PendingAmount float64 `json:"pending_amount"`
}

/* =============== TERM NORMALIZATION =============== */

// NormalizeTerm maps the term representations the backend has historically
// emitted (1, "1", 1.0 from JSON, "term1", "Term 2") onto the canonical
// 1..3. Anything unrecognized maps to 0 and is excluded from allocation.
func NormalizeTerm(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return clampTerm(t)
	case int64:
		return clampTerm(int(t))
	case float64:
		if t != float64(int(t)) {
			return 0
		}
		return clampTerm(int(t))
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		s = strings.TrimPrefix(s, "term")
		s = strings.TrimSpace(s)
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0
		}
		return clampTerm(n)
	default:
		return 0
	}
}

func clampTerm(n int) int {
	if n < 1 || n > 3 {
		return 0
	}
	return n
}

package hms

import (
	"encoding/base64"
	"strings"
	"time"

	feemodel "hostelku_backend/internals/features/fees/model"
	studentmodel "hostelku_backend/internals/features/students/model"
)

/* =============== WIRE TYPES =============== */
// Every optional backend field is a pointer here and resolved exactly once
// in the mappers below; nothing past this boundary deals with nils or with
// the backend's mixed term representations.

type studentPayload struct {
	ID           string  `json:"id"`
	Name         *string `json:"name"`
	RollNumber   *string `json:"roll_number"`
	Course       *string `json:"course"`
	Branch       *string `json:"branch"`
	Year         *string `json:"year"`
	AcademicYear *string `json:"academic_year"`
	Category     *string `json:"category"`
	Mobile       *string `json:"mobile"`
	ParentMobile *string `json:"parent_mobile"`
	Address      *string `json:"address"`
	HostelID     *string `json:"hostel_id"`
	RoomNumber   *string `json:"room_number"`
	StudentPhoto *string `json:"student_photo"` // data URL or raw base64

	Concession         *float64 `json:"concession"`
	CalculatedTerm1Fee *float64 `json:"calculated_term1_fee"`
	CalculatedTerm2Fee *float64 `json:"calculated_term2_fee"`
	CalculatedTerm3Fee *float64 `json:"calculated_term3_fee"`
}

type feeStructurePayload struct {
	AcademicYear string   `json:"academic_year"`
	Category     string   `json:"category"`
	Term1Fee     *float64 `json:"term1_fee"`
	Term2Fee     *float64 `json:"term2_fee"`
	Term3Fee     *float64 `json:"term3_fee"`
	TotalFee     *float64 `json:"total_fee"`
}

type billDetailsPayload struct {
	Consumption *float64 `json:"consumption"`
	Rate        *float64 `json:"rate"`
	Total       *float64 `json:"total"`
}

type paymentPayload struct {
	ID            string              `json:"id"`
	StudentID     *string             `json:"student_id"`
	ReceiptNumber *string             `json:"receipt_number"`
	TransactionID *string             `json:"transaction_id"`
	Amount        *float64            `json:"amount"`
	Term          any                 `json:"term"` // 1, "1" or "term1"
	PaymentType   *string             `json:"payment_type"`
	Status        *string             `json:"status"`
	PaymentMethod *string             `json:"payment_method"`
	UTRNumber     *string             `json:"utr_number"`
	PaymentDate   *time.Time          `json:"payment_date"`
	BillMonth     *string             `json:"bill_month"`
	CollectedBy   *string             `json:"collected_by"`
	Notes         *string             `json:"notes"`
	BillDetails   *billDetailsPayload `json:"bill_details"`
}

type tempPasswordPayload struct {
	Password string `json:"password"`
}

/* =============== MAPPERS =============== */

func strOf(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func floatOf(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func timeOf(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}

func (s studentPayload) toModel() studentmodel.Student {
	return studentmodel.Student{
		ID:           s.ID,
		Name:         strOf(s.Name),
		RollNumber:   strOf(s.RollNumber),
		Course:       strOf(s.Course),
		Branch:       strOf(s.Branch),
		Year:         strOf(s.Year),
		AcademicYear: strOf(s.AcademicYear),
		Category:     strOf(s.Category),
		Mobile:       strOf(s.Mobile),
		ParentMobile: strOf(s.ParentMobile),
		Address:      strOf(s.Address),
		HostelID:     strOf(s.HostelID),
		RoomNumber:   strOf(s.RoomNumber),
		Photo:        decodePhoto(strOf(s.StudentPhoto)),
		FeeProfile: feemodel.StudentFeeProfile{
			Concession:         floatOf(s.Concession),
			CalculatedTerm1Fee: s.CalculatedTerm1Fee,
			CalculatedTerm2Fee: s.CalculatedTerm2Fee,
			CalculatedTerm3Fee: s.CalculatedTerm3Fee,
		},
	}
}

// decodePhoto accepts a data URL or bare base64 string. Anything that does
// not decode is treated as no photo; the composer renders its placeholder.
func decodePhoto(raw string) []byte {
	if raw == "" {
		return nil
	}
	if idx := strings.Index(raw, "base64,"); idx >= 0 {
		raw = raw[idx+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	return data
}

func (f feeStructurePayload) toModel() feemodel.FeeStructure {
	return feemodel.FeeStructure{
		AcademicYear: f.AcademicYear,
		Category:     f.Category,
		Term1Fee:     floatOf(f.Term1Fee),
		Term2Fee:     floatOf(f.Term2Fee),
		Term3Fee:     floatOf(f.Term3Fee),
		TotalFee:     floatOf(f.TotalFee),
	}
}

func (p paymentPayload) toModel() feemodel.PaymentRecord {
	rec := feemodel.PaymentRecord{
		ID:            p.ID,
		StudentID:     strOf(p.StudentID),
		ReceiptNumber: strOf(p.ReceiptNumber),
		TransactionID: strOf(p.TransactionID),
		Amount:        floatOf(p.Amount),
		Term:          feemodel.NormalizeTerm(p.Term),
		PaymentType:   strOf(p.PaymentType),
		Status:        strOf(p.Status),
		PaymentMethod: strOf(p.PaymentMethod),
		UTRNumber:     strOf(p.UTRNumber),
		PaymentDate:   timeOf(p.PaymentDate),
		BillMonth:     strOf(p.BillMonth),
		CollectedBy:   strOf(p.CollectedBy),
		Notes:         strOf(p.Notes),
	}
	if p.BillDetails != nil {
		rec.BillDetails = &feemodel.BillDetails{
			Consumption: p.BillDetails.Consumption,
			Rate:        p.BillDetails.Rate,
			Total:       p.BillDetails.Total,
		}
	}
	return rec
}

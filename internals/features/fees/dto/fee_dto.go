package dto

import (
	"hostelku_backend/internals/features/fees/allocation"
	"hostelku_backend/internals/features/fees/model"
	studentmodel "hostelku_backend/internals/features/students/model"
)

/* =============== RESPONSES =============== */

type FeeSummaryResponse struct {
	StudentID    string `json:"student_id"`
	Name         string `json:"name"`
	RollNumber   string `json:"roll_number"`
	AcademicYear string `json:"academic_year"`
	Category     string `json:"category"`

	Concession float64                `json:"concession"`
	TermFees   allocation.TermFees    `json:"term_fees"`
	Terms      []model.TermAllocation `json:"terms"`
	Summary    model.FeeSummary       `json:"summary"`
}

func NewFeeSummaryResponse(s studentmodel.Student, fees allocation.TermFees, terms []model.TermAllocation, summary model.FeeSummary) FeeSummaryResponse {
	return FeeSummaryResponse{
		StudentID:    s.ID,
		Name:         s.Name,
		RollNumber:   s.RollNumber,
		AcademicYear: s.AcademicYear,
		Category:     s.Category,
		Concession:   s.FeeProfile.Concession,
		TermFees:     fees,
		Terms:        terms,
		Summary:      summary,
	}
}

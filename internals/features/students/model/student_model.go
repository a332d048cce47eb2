package model

import (
	"strings"

	feemodel "hostelku_backend/internals/features/fees/model"
)

// Student is the display schema used by fee summaries and documents. All
// optional backend fields are resolved here once, to empty strings, so the
// rendering code never deals with nils.
type Student struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RollNumber   string `json:"roll_number"`
	Course       string `json:"course"`
	Branch       string `json:"branch"`
	Year         string `json:"year"`
	AcademicYear string `json:"academic_year"`
	Category     string `json:"category"`
	Mobile       string `json:"mobile"`
	ParentMobile string `json:"parent_mobile"`
	Address      string `json:"address"`
	HostelID     string `json:"hostel_id"`
	RoomNumber   string `json:"room_number"`

	// Photo holds the raw image bytes when the backend has one on file.
	// Empty slice = no photo, the composer renders its placeholder.
	Photo []byte `json:"-"`

	FeeProfile feemodel.StudentFeeProfile `json:"fee_profile"`
}

// Valid reports whether the record is usable as a document root. A student
// with neither name nor id is a structural failure, not a formatting one.
func (s Student) Valid() bool {
	return strings.TrimSpace(s.ID) != "" || strings.TrimSpace(s.Name) != ""
}

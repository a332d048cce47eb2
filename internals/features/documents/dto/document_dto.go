package dto

/* =============== REQUESTS =============== */

type GenerateAdmitCardsRequest struct {
	StudentIDs   []string `json:"student_ids" validate:"required,min=1,dive,required"`
	AcademicYear string   `json:"academic_year" validate:"omitempty,max=20"`

	// Password, when set, is printed on every card instead of each
	// student's temporary password.
	Password string `json:"password" validate:"omitempty,max=64"`
}

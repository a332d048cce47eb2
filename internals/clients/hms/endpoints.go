package hms

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	feemodel "hostelku_backend/internals/features/fees/model"
	studentmodel "hostelku_backend/internals/features/students/model"
)

/* =============== STUDENTS =============== */

func (c *Client) GetStudent(ctx context.Context, studentID string) (studentmodel.Student, error) {
	var payload studentPayload
	if err := c.get(ctx, "/api/students/"+url.PathEscape(studentID), nil, &payload); err != nil {
		return studentmodel.Student{}, err
	}
	return payload.toModel(), nil
}

// GetTempPassword looks up the student's temporary portal password. Absence
// is a normal outcome, reported as ("", nil); the admit card simply omits
// the password row.
func (c *Client) GetTempPassword(ctx context.Context, studentID string) (string, error) {
	var payload tempPasswordPayload
	err := c.get(ctx, fmt.Sprintf("/api/students/%s/temp-password", url.PathEscape(studentID)), nil, &payload)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return payload.Password, nil
}

/* =============== FEE STRUCTURES =============== */

func (c *Client) GetFeeStructure(ctx context.Context, academicYear, category string) (feemodel.FeeStructure, error) {
	q := url.Values{}
	q.Set("academic_year", academicYear)
	q.Set("category", category)

	var payload feeStructurePayload
	if err := c.get(ctx, "/api/fee-structures/lookup", q, &payload); err != nil {
		return feemodel.FeeStructure{}, err
	}
	fs := payload.toModel()
	if fs.AcademicYear == "" {
		fs.AcademicYear = academicYear
	}
	if fs.Category == "" {
		fs.Category = category
	}
	return fs, nil
}

/* =============== PAYMENTS =============== */

func (c *Client) ListPayments(ctx context.Context, studentID string) ([]feemodel.PaymentRecord, error) {
	q := url.Values{}
	q.Set("student_id", studentID)

	var payloads []paymentPayload
	if err := c.get(ctx, "/api/payments", q, &payloads); err != nil {
		return nil, err
	}
	out := make([]feemodel.PaymentRecord, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.toModel())
	}
	return out, nil
}

func (c *Client) GetPayment(ctx context.Context, paymentID string) (feemodel.PaymentRecord, error) {
	var payload paymentPayload
	if err := c.get(ctx, "/api/payments/"+url.PathEscape(paymentID), nil, &payload); err != nil {
		return feemodel.PaymentRecord{}, err
	}
	return payload.toModel(), nil
}

package controller

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelku_backend/internals/clients/hms"
	"hostelku_backend/internals/features/documents/composer"
	docservice "hostelku_backend/internals/features/documents/service"
	"hostelku_backend/internals/features/fees/allocation"
	feemodel "hostelku_backend/internals/features/fees/model"
	studentmodel "hostelku_backend/internals/features/students/model"
)

type fakeBackend struct {
	students map[string]studentmodel.Student
	payments map[string]feemodel.PaymentRecord
	password string
}

func (f *fakeBackend) GetStudent(_ context.Context, id string) (studentmodel.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return studentmodel.Student{}, hms.ErrNotFound
	}
	return s, nil
}

func (f *fakeBackend) GetPayment(_ context.Context, id string) (feemodel.PaymentRecord, error) {
	p, ok := f.payments[id]
	if !ok {
		return feemodel.PaymentRecord{}, hms.ErrNotFound
	}
	return p, nil
}

func (f *fakeBackend) GetTempPassword(_ context.Context, _ string) (string, error) {
	return f.password, nil
}

type fakeStructures struct {
	fs  *feemodel.FeeStructure
	err error
}

func (f *fakeStructures) Get(_ context.Context, _, _ string) (*feemodel.FeeStructure, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.fs, nil
}

func newTestApp(backend *fakeBackend, structures *fakeStructures) *fiber.App {
	comp := composer.New(composer.Config{InstitutionName: "Sunrise Boys Hostel"})
	gen := docservice.NewBatchGenerator(backend, structures, comp, 0)

	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
	ctrl := NewDocumentController(backend, structures, comp, gen)
	app.Get("/documents/receipts/:paymentID", ctrl.GetReceipt)
	app.Get("/documents/admit-cards/:studentID", ctrl.GetAdmitCard)
	app.Post("/documents/admit-cards/bulk", ctrl.BulkAdmitCards)
	return app
}

func testBackend() *fakeBackend {
	return &fakeBackend{
		students: map[string]studentmodel.Student{
			"s1": {ID: "s1", Name: "Ravi Kumar", RollNumber: "21CS045", AcademicYear: "2024-25", Category: "General"},
		},
		payments: map[string]feemodel.PaymentRecord{
			"p1": {
				ID: "p1", StudentID: "s1", ReceiptNumber: "RCP-001", Amount: 4000, Term: 1,
				PaymentType: feemodel.PaymentTypeHostelFee, Status: feemodel.PaymentStatusSuccess,
				PaymentDate: time.Date(2025, time.February, 1, 10, 0, 0, 0, time.UTC),
			},
		},
		password: "tmp-pass",
	}
}

func testStructures() *fakeStructures {
	return &fakeStructures{fs: &feemodel.FeeStructure{
		AcademicYear: "2024-25", Category: "General",
		Term1Fee: 4000, Term2Fee: 4000, Term3Fee: 4000, TotalFee: 12000,
	}}
}

func TestGetReceipt(t *testing.T) {
	app := newTestApp(testBackend(), testStructures())

	resp, err := app.Test(httptest.NewRequest("GET", "/documents/receipts/p1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "payment_receipt_RCP-001.pdf")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestGetReceiptPaymentNotFound(t *testing.T) {
	app := newTestApp(testBackend(), testStructures())

	resp, err := app.Test(httptest.NewRequest("GET", "/documents/receipts/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetReceiptWithoutStudent(t *testing.T) {
	backend := testBackend()
	p := backend.payments["p1"]
	p.StudentID = "gone"
	backend.payments["p1"] = p

	app := newTestApp(backend, testStructures())
	resp, err := app.Test(httptest.NewRequest("GET", "/documents/receipts/p1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "missing student degrades, it does not fail the receipt")
}

func TestGetAdmitCard(t *testing.T) {
	app := newTestApp(testBackend(), testStructures())

	resp, err := app.Test(httptest.NewRequest("GET", "/documents/admit-cards/s1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "AdmitCard_Ravi_Kumar_21CS045.pdf")
}

func TestGetAdmitCardNoFeeStructure(t *testing.T) {
	app := newTestApp(testBackend(), &fakeStructures{err: allocation.ErrNoFeeStructure})

	resp, err := app.Test(httptest.NewRequest("GET", "/documents/admit-cards/s1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "contact the administrator")
}

func TestBulkAdmitCards(t *testing.T) {
	app := newTestApp(testBackend(), testStructures())

	payload, err := sonic.Marshal(map[string]any{
		"student_ids":   []string{"s1"},
		"academic_year": "2024-25",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/documents/admit-cards/bulk", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get(fiber.HeaderContentType))
	assert.NotEmpty(t, resp.Header.Get("X-Batch-ID"))
	assert.Equal(t, "1", resp.Header.Get("X-Batch-Generated"))
	assert.Equal(t, "0", resp.Header.Get("X-Batch-Failed"))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "AdmitCards_2024-25.zip")
}

func TestBulkAdmitCardsValidation(t *testing.T) {
	app := newTestApp(testBackend(), testStructures())

	req := httptest.NewRequest("POST", "/documents/admit-cards/bulk", bytes.NewReader([]byte(`{"student_ids":[]}`)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestBulkAdmitCardsAllFailed(t *testing.T) {
	app := newTestApp(testBackend(), testStructures())

	payload := []byte(`{"student_ids":["nope-1","nope-2"]}`)
	req := httptest.NewRequest("POST", "/documents/admit-cards/bulk", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

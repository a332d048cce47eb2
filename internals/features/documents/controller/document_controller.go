package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hostelku_backend/internals/clients/hms"
	"hostelku_backend/internals/features/documents/composer"
	"hostelku_backend/internals/features/documents/dto"
	docservice "hostelku_backend/internals/features/documents/service"
	"hostelku_backend/internals/features/fees/allocation"
	feemodel "hostelku_backend/internals/features/fees/model"
	studentmodel "hostelku_backend/internals/features/students/model"
	helper "hostelku_backend/internals/helpers"
)

var validate = validator.New()

// DocumentBackend is the slice of the core backend client the document
// endpoints need.
type DocumentBackend interface {
	GetStudent(ctx context.Context, studentID string) (studentmodel.Student, error)
	GetPayment(ctx context.Context, paymentID string) (feemodel.PaymentRecord, error)
	GetTempPassword(ctx context.Context, studentID string) (string, error)
}

type DocumentController struct {
	Backend    DocumentBackend
	Structures docservice.StructureGetter
	Composer   *composer.Composer
	Generator  *docservice.BatchGenerator
}

func NewDocumentController(backend DocumentBackend, structures docservice.StructureGetter, comp *composer.Composer, gen *docservice.BatchGenerator) *DocumentController {
	return &DocumentController{Backend: backend, Structures: structures, Composer: comp, Generator: gen}
}

// GET /documents/receipts/:paymentID
func (ctrl *DocumentController) GetReceipt(c *fiber.Ctx) error {
	paymentID := strings.TrimSpace(c.Params("paymentID"))
	if paymentID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payment ID is required")
	}
	ctx := c.UserContext()

	payment, err := ctrl.Backend.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, hms.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
		}
		log.Println("[ERROR] Failed to fetch payment:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to fetch payment record")
	}

	// the receipt still renders without student details, every row just
	// falls back to N/A
	var student *studentmodel.Student
	if payment.StudentID != "" {
		if s, err := ctrl.Backend.GetStudent(ctx, payment.StudentID); err == nil {
			student = &s
		} else {
			log.Printf("[WARN] Student %s lookup for receipt failed: %v", payment.StudentID, err)
		}
	}

	data, filename, err := ctrl.Composer.ComposeReceipt(payment, student)
	if err != nil {
		if errors.Is(err, composer.ErrInvalidData) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Payment record cannot be rendered as a receipt")
		}
		log.Println("[ERROR] Failed to compose receipt:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate receipt")
	}

	return sendPDF(c, data, filename)
}

// GET /documents/admit-cards/:studentID?password=
func (ctrl *DocumentController) GetAdmitCard(c *fiber.Ctx) error {
	studentID := strings.TrimSpace(c.Params("studentID"))
	if studentID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Student ID is required")
	}
	ctx := c.UserContext()

	student, err := ctrl.Backend.GetStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, hms.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		log.Println("[ERROR] Failed to fetch student:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to fetch student details")
	}

	fs, err := ctrl.Structures.Get(ctx, student.AcademicYear, student.Category)
	if err != nil {
		if errors.Is(err, allocation.ErrNoFeeStructure) {
			return helper.JsonError(c, fiber.StatusConflict,
				"Fee structure not configured for this academic year and category. Please contact the administrator.")
		}
		log.Println("[ERROR] Failed to fetch fee structure:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to fetch fee structure")
	}

	// an explicit password wins over the stored temporary one
	password := strings.TrimSpace(c.Query("password"))
	if password == "" {
		pw, err := ctrl.Backend.GetTempPassword(ctx, studentID)
		if err != nil {
			log.Printf("[WARN] Temp password lookup for %s failed: %v", studentID, err)
		} else {
			password = pw
		}
	}

	data, filename, err := ctrl.Composer.ComposeAdmitCard(student, fs, password)
	if err != nil {
		if errors.Is(err, composer.ErrInvalidData) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Student record cannot be rendered as an admit card")
		}
		log.Println("[ERROR] Failed to compose admit card:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate admit card")
	}

	return sendPDF(c, data, filename)
}

// POST /documents/admit-cards/bulk
func (ctrl *DocumentController) BulkAdmitCards(c *fiber.Ctx) error {
	var req dto.GenerateAdmitCardsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := ctrl.Generator.Generate(c.UserContext(), docservice.BatchRequest{
		StudentIDs:   req.StudentIDs,
		AcademicYear: req.AcademicYear,
		Password:     req.Password,
	})
	if err != nil {
		log.Println("[ERROR] Bulk admit card batch failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate admit cards")
	}
	if res.Generated == 0 {
		log.Printf("[ERROR] batch %s: every item failed", res.BatchID)
		return helper.JsonError(c, fiber.StatusBadGateway, "No admit cards could be generated")
	}

	c.Set("X-Batch-ID", res.BatchID)
	c.Set("X-Batch-Generated", strconv.Itoa(res.Generated))
	c.Set("X-Batch-Failed", strconv.Itoa(res.Failed))
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.ArchiveName))
	return c.Send(res.Archive)
}

func sendPDF(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

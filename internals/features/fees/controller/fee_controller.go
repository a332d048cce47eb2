package controller

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"hostelku_backend/internals/clients/hms"
	"hostelku_backend/internals/features/fees/allocation"
	"hostelku_backend/internals/features/fees/dto"
	feemodel "hostelku_backend/internals/features/fees/model"
	"hostelku_backend/internals/features/fees/service"
	studentmodel "hostelku_backend/internals/features/students/model"
	helper "hostelku_backend/internals/helpers"
)

// FeeBackend is the slice of the core backend client the fee summary needs.
type FeeBackend interface {
	GetStudent(ctx context.Context, studentID string) (studentmodel.Student, error)
	ListPayments(ctx context.Context, studentID string) ([]feemodel.PaymentRecord, error)
}

type FeeController struct {
	Backend    FeeBackend
	Structures *service.StructureCache
}

func NewFeeController(backend FeeBackend, structures *service.StructureCache) *FeeController {
	return &FeeController{Backend: backend, Structures: structures}
}

// GET /fees/:studentID/summary
//
// Everything here is derived on the fly: payments and the student profile
// come fresh from the backend, the fee structure from the session cache.
// Nothing is written back.
func (ctrl *FeeController) GetSummary(c *fiber.Ctx) error {
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

	payments, err := ctrl.Backend.ListPayments(ctx, studentID)
	if err != nil {
		log.Println("[ERROR] Failed to fetch payments:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to fetch payment records")
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

	fees, err := allocation.ComputeTermFees(fs, student.FeeProfile)
	if err != nil {
		return helper.JsonError(c, fiber.StatusConflict,
			"Fee structure not configured for this academic year and category. Please contact the administrator.")
	}

	terms := allocation.AllocatePayments(fees, allocation.SumTermPayments(payments))
	summary := allocation.Summarize(terms)

	return helper.JsonOK(c, "fee summary", dto.NewFeeSummaryResponse(student, fees, terms, summary))
}

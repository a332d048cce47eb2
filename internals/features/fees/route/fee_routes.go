package route

import (
	"github.com/gofiber/fiber/v2"

	"hostelku_backend/internals/features/fees/controller"
	"hostelku_backend/internals/features/fees/service"
)

func FeeStaffRoutes(router fiber.Router, backend controller.FeeBackend, structures *service.StructureCache) {
	ctrl := controller.NewFeeController(backend, structures)

	router.Get("/:studentID/summary", ctrl.GetSummary)
}

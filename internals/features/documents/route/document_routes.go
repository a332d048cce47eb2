package route

import (
	"github.com/gofiber/fiber/v2"

	"hostelku_backend/internals/features/documents/composer"
	"hostelku_backend/internals/features/documents/controller"
	docservice "hostelku_backend/internals/features/documents/service"
	middlewares "hostelku_backend/internals/middlewares"
)

func DocumentStaffRoutes(router fiber.Router, backend controller.DocumentBackend, structures docservice.StructureGetter, comp *composer.Composer, gen *docservice.BatchGenerator) {
	ctrl := controller.NewDocumentController(backend, structures, comp, gen)

	router.Get("/receipts/:paymentID", ctrl.GetReceipt)
	router.Get("/admit-cards/:studentID", ctrl.GetAdmitCard)
	router.Post("/admit-cards/bulk", middlewares.BulkRateLimiter(), ctrl.BulkAdmitCards)
}

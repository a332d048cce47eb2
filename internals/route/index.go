package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"hostelku_backend/internals/clients/hms"
	"hostelku_backend/internals/configs"
	"hostelku_backend/internals/features/documents/composer"
	documentRoute "hostelku_backend/internals/features/documents/route"
	docservice "hostelku_backend/internals/features/documents/service"
	feeRoute "hostelku_backend/internals/features/fees/route"
	feeservice "hostelku_backend/internals/features/fees/service"
	portalMiddleware "hostelku_backend/internals/middlewares/auth_portal"
)

func SetupRoutes(app *fiber.App) {
	// shared plumbing: one backend client, one structure cache, one composer
	client := hms.NewClient(configs.BackendBaseURL, configs.BackendAPIKey)
	structures := feeservice.NewStructureCache(client)
	comp := composer.New(composer.Config{
		InstitutionName: configs.InstitutionName,
		LogoPath:        configs.LogoPath,
	})
	generator := docservice.NewBatchGenerator(client, structures, comp, configs.BatchPause)

	// ===================== STAFF =====================
	log.Println("[INFO] Setting up STAFF group...")
	staff := app.Group("/api/s",
		portalMiddleware.AuthJWT(portalMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Mounting Fee routes...")
	feeRoute.FeeStaffRoutes(staff.Group("/fees"), client, structures)

	log.Println("[INFO] Mounting Document routes...")
	documentRoute.DocumentStaffRoutes(staff.Group("/documents"), client, structures, comp, generator)
}

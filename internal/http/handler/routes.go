package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"hrapi/internal/service"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay thin; validation and business rules live in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, parties service.PartyService, profiles service.ProfileService, docs service.DocumentService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/parties", CreateParty(parties))
	app.Get("/parties", ListParties(parties))
	app.Get("/parties/:id", GetParty(parties))
	app.Patch("/parties/:id", UpdateParty(parties))

	app.Post("/parties/:id/documents", UploadDocument(docs))
	app.Get("/parties/:id/documents", ListPartyDocuments(docs))

	app.Get("/documents/:id", GetDocument(docs))
	app.Patch("/documents/:id", UpdateDocument(docs))
	app.Delete("/documents/:id", DeleteDocument(docs))
	app.Get("/documents/:id/download", DownloadDocument(docs))

	app.Post("/employees", CreateEmployee(profiles))
	app.Get("/employees", ListEmployees(profiles))
	app.Get("/employees/:id", GetEmployee(profiles))
	app.Patch("/employees/:id", UpdateEmployee(profiles))

	app.Post("/contractors", CreateContractor(profiles))
	app.Get("/contractors", ListContractors(profiles))
	app.Get("/contractors/:id", GetContractor(profiles))
	app.Patch("/contractors/:id", UpdateContractor(profiles))
}

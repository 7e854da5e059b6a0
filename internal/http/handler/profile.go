package handler

import (
	"github.com/gofiber/fiber/v2"

	"hrapi/internal/service"
)

type createEmployeeRequest struct {
	PartyID          int64   `json:"party_id"`
	EmployerID       string  `json:"employer_id"`
	CompensationType string  `json:"compensation_type"`
	DateHired        string  `json:"date_hired"`
	DateOffboarded   *string `json:"date_offboarded"`
}

type updateEmployeeRequest struct {
	CompensationType *string `json:"compensation_type"`
	DateHired        *string `json:"date_hired"`
	DateOffboarded   *string `json:"date_offboarded"`
}

type createContractorRequest struct {
	PartyID           int64   `json:"party_id"`
	EmployerID        string  `json:"employer_id"`
	ContractStartDate string  `json:"contract_start_date"`
	ContractEndDate   *string `json:"contract_end_date"`
}

type updateContractorRequest struct {
	ContractStartDate *string `json:"contract_start_date"`
	ContractEndDate   *string `json:"contract_end_date"`
}

// CreateEmployee handles POST /employees.
//
//	@Summary	Create an employee profile
//	@Tags		profiles
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	model.EmployeeProfile
//	@Failure	400	{object}	errorPayload
//	@Router		/employees [post]
func CreateEmployee(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createEmployeeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		in := service.CreateEmployeeInput{
			PartyID:          req.PartyID,
			EmployerID:       req.EmployerID,
			CompensationType: req.CompensationType,
		}
		if req.DateHired != "" {
			t, ok := parseDate(req.DateHired)
			if !ok {
				return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid date_hired format, expected YYYY-MM-DD", "date_hired")
			}
			in.DateHired = *t
		}
		if req.DateOffboarded != nil {
			t, ok := parseDate(*req.DateOffboarded)
			if !ok {
				return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid date_offboarded format, expected YYYY-MM-DD", "date_offboarded")
			}
			in.DateOffboarded = t
		}

		p, err := svc.CreateEmployee(c.UserContext(), in)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// GetEmployee handles GET /employees/:id.
func GetEmployee(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		p, err := svc.GetEmployee(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// ListEmployees handles GET /employees.
func ListEmployees(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, ok := queryInt(c, "limit", 10)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, ok := queryInt(c, "offset", 0)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListEmployees(c.UserContext(), limit, offset)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UpdateEmployee handles PATCH /employees/:id.
func UpdateEmployee(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req updateEmployeeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		in := service.UpdateEmployeeInput{CompensationType: req.CompensationType}
		if req.DateHired != nil {
			t, ok := parseDate(*req.DateHired)
			if !ok {
				return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid date_hired format, expected YYYY-MM-DD", "date_hired")
			}
			in.DateHired = t
		}
		if req.DateOffboarded != nil {
			t, ok := parseDate(*req.DateOffboarded)
			if !ok {
				return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid date_offboarded format, expected YYYY-MM-DD", "date_offboarded")
			}
			in.DateOffboarded = t
		}

		p, err := svc.UpdateEmployee(c.UserContext(), id, in)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// CreateContractor handles POST /contractors.
//
//	@Summary	Create a contractor profile
//	@Tags		profiles
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	model.ContractorProfile
//	@Failure	400	{object}	errorPayload
//	@Router		/contractors [post]
func CreateContractor(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createContractorRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		in := service.CreateContractorInput{
			PartyID:    req.PartyID,
			EmployerID: req.EmployerID,
		}
		if req.ContractStartDate != "" {
			t, ok := parseDate(req.ContractStartDate)
			if !ok {
				return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid contract_start_date format, expected YYYY-MM-DD", "contract_start_date")
			}
			in.ContractStartDate = *t
		}
		if req.ContractEndDate != nil {
			t, ok := parseDate(*req.ContractEndDate)
			if !ok {
				return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid contract_end_date format, expected YYYY-MM-DD", "contract_end_date")
			}
			in.ContractEndDate = t
		}

		p, err := svc.CreateContractor(c.UserContext(), in)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// GetContractor handles GET /contractors/:id.
func GetContractor(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		p, err := svc.GetContractor(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// ListContractors handles GET /contractors.
func ListContractors(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, ok := queryInt(c, "limit", 10)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, ok := queryInt(c, "offset", 0)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListContractors(c.UserContext(), limit, offset)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UpdateContractor handles PATCH /contractors/:id.
func UpdateContractor(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req updateContractorRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		in := service.UpdateContractorInput{}
		if req.ContractStartDate != nil {
			t, ok := parseDate(*req.ContractStartDate)
			if !ok {
				return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid contract_start_date format, expected YYYY-MM-DD", "contract_start_date")
			}
			in.ContractStartDate = t
		}
		if req.ContractEndDate != nil {
			t, ok := parseDate(*req.ContractEndDate)
			if !ok {
				return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid contract_end_date format, expected YYYY-MM-DD", "contract_end_date")
			}
			in.ContractEndDate = t
		}

		p, err := svc.UpdateContractor(c.UserContext(), id, in)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(p)
	}
}

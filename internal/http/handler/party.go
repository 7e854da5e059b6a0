package handler

import (
	"github.com/gofiber/fiber/v2"

	"hrapi/internal/service"
)

type createPartyRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DOB           string `json:"dob"`
	Gender        string `json:"gender"`
	SSN           string `json:"ssn"`
	AddressFull   string `json:"address_full"`
	AddressCity   string `json:"address_city"`
	AddressZip    string `json:"address_zip"`
	AddressState  string `json:"address_state"`
	MaritalStatus string `json:"marital_status"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email"`
	Dependants    int    `json:"dependants"`
}

type updatePartyRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	DOB           *string `json:"dob"`
	AddressFull   *string `json:"address_full"`
	AddressCity   *string `json:"address_city"`
	AddressZip    *string `json:"address_zip"`
	AddressState  *string `json:"address_state"`
	MaritalStatus *string `json:"marital_status"`
	PhoneNumber   *string `json:"phone_number"`
	Email         *string `json:"email"`
	Dependants    *int    `json:"dependants"`
	Active        *bool   `json:"active"`
}

// CreateParty handles POST /parties.
//
//	@Summary	Create a party record
//	@Tags		parties
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	service.PartyView
//	@Failure	400	{object}	errorPayload
//	@Router		/parties [post]
func CreateParty(svc service.PartyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createPartyRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		dob, ok := parseDate(req.DOB)
		if !ok {
			return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid dob format, expected YYYY-MM-DD", "dob")
		}

		view, err := svc.Create(c.UserContext(), service.CreatePartyInput{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			DOB:           *dob,
			Gender:        req.Gender,
			SSN:           req.SSN,
			AddressFull:   req.AddressFull,
			AddressCity:   req.AddressCity,
			AddressZip:    req.AddressZip,
			AddressState:  req.AddressState,
			MaritalStatus: req.MaritalStatus,
			PhoneNumber:   req.PhoneNumber,
			Email:         req.Email,
			Dependants:    req.Dependants,
		})
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(view)
	}
}

// GetParty handles GET /parties/:id.
//
//	@Summary	Get a party by ID
//	@Tags		parties
//	@Produce	json
//	@Param		id	path	int	true	"Party ID"
//	@Success	200	{object}	service.PartyView
//	@Failure	404	{object}	errorPayload
//	@Router		/parties/{id} [get]
func GetParty(svc service.PartyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		view, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(view)
	}
}

// ListParties handles GET /parties.
//
//	@Summary	List parties
//	@Tags		parties
//	@Produce	json
//	@Param		limit	query	int	false	"Page size"
//	@Param		offset	query	int	false	"Page offset"
//	@Success	200	{object}	service.PartyListResult
//	@Router		/parties [get]
func ListParties(svc service.PartyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, ok := queryInt(c, "limit", 10)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, ok := queryInt(c, "offset", 0)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UpdateParty handles PATCH /parties/:id. SSN is immutable and silently
// absent from the accepted fields.
//
//	@Summary	Update a party record
//	@Tags		parties
//	@Accept		json
//	@Produce	json
//	@Param		id	path	int	true	"Party ID"
//	@Success	200	{object}	service.PartyView
//	@Router		/parties/{id} [patch]
func UpdateParty(svc service.PartyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req updatePartyRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		in := service.UpdatePartyInput{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			AddressFull:   req.AddressFull,
			AddressCity:   req.AddressCity,
			AddressZip:    req.AddressZip,
			AddressState:  req.AddressState,
			MaritalStatus: req.MaritalStatus,
			PhoneNumber:   req.PhoneNumber,
			Email:         req.Email,
			Dependants:    req.Dependants,
			Active:        req.Active,
		}
		if req.DOB != nil {
			dob, ok := parseDate(*req.DOB)
			if !ok {
				return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid dob format, expected YYYY-MM-DD", "dob")
			}
			in.DOB = dob
		}

		view, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(view)
	}
}

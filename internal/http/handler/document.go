package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"hrapi/internal/http/middleware"
	"hrapi/internal/service"
)

// dateLayouts accepted for expiry_date form values.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(s string) (*time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}

func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(c *fiber.Ctx, name string, def int) (int, bool) {
	v := c.Query(name, strconv.Itoa(def))
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// UploadDocument handles POST /parties/:id/documents.
//
//	@Summary	Upload a document for a party
//	@Tags		documents
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id				path		int		true	"Party ID"
//	@Param		file			formData	file	true	"Document file"
//	@Param		document_type	formData	string	true	"Document type"
//	@Param		document_name	formData	string	true	"Document name"
//	@Param		expiry_date		formData	string	false	"Expiry date (YYYY-MM-DD)"
//	@Success	201	{object}	service.DocumentView
//	@Failure	400	{object}	errorPayload
//	@Router		/parties/{id}/documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		partyID, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		in := service.CreateDocumentInput{
			PartyID:      partyID,
			DocumentType: c.FormValue("document_type"),
			DocumentName: c.FormValue("document_name"),
			File:         f,
			FileName:     fh.Filename,
			Size:         fh.Size,
			ContentType:  ct,
			Actor:        middleware.ActorFromCtx(c),
		}
		if v := c.FormValue("expiry_date"); v != "" {
			t, ok := parseDate(v)
			if !ok {
				return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "invalid expiry_date format")
			}
			in.ExpiryDate = t
		}

		doc, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListPartyDocuments handles GET /parties/:id/documents.
//
//	@Summary	List a party's documents
//	@Tags		documents
//	@Produce	json
//	@Param		id		path	int	true	"Party ID"
//	@Param		limit	query	int	false	"Page size"
//	@Param		offset	query	int	false	"Page offset"
//	@Success	200	{object}	service.DocumentListResult
//	@Router		/parties/{id}/documents [get]
func ListPartyDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		partyID, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		limit, ok := queryInt(c, "limit", 10)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, ok := queryInt(c, "offset", 0)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListByParty(c.UserContext(), partyID, limit, offset)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetDocument handles GET /documents/:id.
//
//	@Summary	Get a document by ID
//	@Tags		documents
//	@Produce	json
//	@Param		id	path	int	true	"Document ID"
//	@Success	200	{object}	service.DocumentView
//	@Failure	404	{object}	errorPayload
//	@Router		/documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// UpdateDocument handles PATCH /documents/:id. Metadata fields arrive as
// multipart form values; an optional file part replaces the content as a new
// revision.
//
//	@Summary	Update document metadata or replace its file
//	@Tags		documents
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id	path	int	true	"Document ID"
//	@Success	200	{object}	service.DocumentView
//	@Router		/documents/{id} [patch]
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		in := service.UpdateDocumentInput{Actor: middleware.ActorFromCtx(c)}
		if v := c.FormValue("document_type"); v != "" {
			in.DocumentType = &v
		}
		if v := c.FormValue("document_name"); v != "" {
			in.DocumentName = &v
		}
		if v := c.FormValue("expiry_date"); v != "" {
			t, ok := parseDate(v)
			if !ok {
				return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "invalid expiry_date format")
			}
			in.ExpiryDate = t
		}

		if fh, err := c.FormFile("file"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()

			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}
			in.File = f
			in.FileName = fh.Filename
			in.Size = fh.Size
			in.ContentType = ct
		}

		doc, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument handles DELETE /documents/:id. The row is tombstoned, never
// physically removed, and the stored file stays put.
//
//	@Summary	Soft-delete a document
//	@Tags		documents
//	@Produce	json
//	@Param		id	path	int	true	"Document ID"
//	@Success	200	{object}	service.DocumentView
//	@Router		/documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.SoftDelete(c.UserContext(), id, middleware.ActorFromCtx(c))
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument handles GET /documents/:id/download with a redirect to a
// short-lived presigned URL.
//
//	@Summary	Download a document's file
//	@Tags		documents
//	@Param		id	path	int	true	"Document ID"
//	@Success	302
//	@Router		/documents/{id}/download [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := svc.DownloadURL(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Redirect(url, fiber.StatusFound)
	}
}

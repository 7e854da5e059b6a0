package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrapi/internal/model"
	"hrapi/internal/service"
	serviceMocks "hrapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func multipartUpload(t *testing.T, filename string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		part.Write([]byte("%PDF-1.4 test content"))
	}
	for k, v := range fields {
		writer.WriteField(k, v)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/parties/:id/documents", UploadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		body, ct := multipartUpload(t, "passport.pdf", map[string]string{
			"document_type": "id_proof",
			"document_name": "passport",
		})

		expected := &service.DocumentView{Document: model.Document{
			ID: 105, PartyID: 42, Version: 1, FileName: "passport.pdf",
			StoragePath: "documents/42/105/passport_v0001.pdf",
			Status:      model.DocumentStatusStored,
		}}
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateDocumentInput) bool {
			return in.PartyID == 42 && in.DocumentType == "id_proof" &&
				in.DocumentName == "passport" && in.FileName == "passport.pdf"
		})).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/parties/42/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result service.DocumentView
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, int64(105), result.ID)
		assert.Equal(t, "documents/42/105/passport_v0001.pdf", result.StoragePath)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parties/42/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("invalid party id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parties/abc/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})

	t.Run("file too large maps to 413", func(t *testing.T) {
		body, ct := multipartUpload(t, "big.pdf", map[string]string{
			"document_type": "id_proof",
			"document_name": "passport",
		})
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, &service.ValidationError{Field: "file", Reason: "too big", Err: service.ErrFileTooLarge}).Once()

		req := httptest.NewRequest(http.MethodPost, "/parties/42/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_TOO_LARGE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unsupported type maps to 415", func(t *testing.T) {
		body, ct := multipartUpload(t, "tool.exe", map[string]string{
			"document_type": "id_proof",
			"document_name": "tool",
		})
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, &service.ValidationError{Field: "file", Reason: "not allowed", Err: service.ErrUnsupportedFileType}).Once()

		req := httptest.NewRequest(http.MethodPost, "/parties/42/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown party maps to 404", func(t *testing.T) {
		body, ct := multipartUpload(t, "passport.pdf", map[string]string{
			"document_type": "id_proof",
			"document_name": "passport",
		})
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.ErrPartyNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/parties/99/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("version conflict maps to 409", func(t *testing.T) {
		body, ct := multipartUpload(t, "passport.pdf", map[string]string{
			"document_type": "id_proof",
			"document_name": "passport",
		})
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.ErrVersionConflict).Once()

		req := httptest.NewRequest(http.MethodPost, "/parties/42/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("storage failure maps to 502", func(t *testing.T) {
		body, ct := multipartUpload(t, "passport.pdf", map[string]string{
			"document_type": "id_proof",
			"document_name": "passport",
		})
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, &service.StorageError{DocumentID: 105, Err: errors.New("backend down")}).Once()

		req := httptest.NewRequest(http.MethodPost, "/parties/42/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "STORAGE_ERROR", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id", GetDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		days := 30
		mockSvc.On("Get", mock.Anything, int64(105)).Return(&service.DocumentView{
			Document:     model.Document{ID: 105, Version: 2},
			DaysToExpiry: &days,
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/105", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, float64(105), result["id"])
		assert.Equal(t, float64(30), result["days_to_expiry"])
		assert.Equal(t, false, result["is_expired"])
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(404)).Return(nil, service.ErrDocumentNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/404", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents/not-a-number", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Delete("/documents/:id", DeleteDocument(mockSvc))

	mockSvc.On("SoftDelete", mock.Anything, int64(105), (*string)(nil)).
		Return(&service.DocumentView{Document: model.Document{ID: 105}}, nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/documents/105", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id/download", DownloadDocument(mockSvc))

	t.Run("redirects to presigned url", func(t *testing.T) {
		mockSvc.On("DownloadURL", mock.Anything, int64(105)).
			Return("https://storage.example.com/presigned", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/105/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "https://storage.example.com/presigned", resp.Header.Get("Location"))
	})

	t.Run("pending file", func(t *testing.T) {
		mockSvc.On("DownloadURL", mock.Anything, int64(106)).
			Return("", service.ErrFileNotStored).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/106/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestListPartyDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/parties/:id/documents", ListPartyDocuments(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("ListByParty", mock.Anything, int64(42), 10, 0).Return(&service.DocumentListResult{
			Items: []service.DocumentView{{Document: model.Document{ID: 1, PartyID: 42}}},
			Total: 1,
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/parties/42/documents?limit=10&offset=0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.DocumentListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/parties/42/documents?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
	})
}

func TestCreateParty(t *testing.T) {
	mockSvc := new(serviceMocks.MockPartyService)
	app := fiber.New()
	app.Post("/parties", CreateParty(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreatePartyInput) bool {
			return in.FirstName == "Jane" && in.SSN == "587-11-2243"
		})).Return(&service.PartyView{
			Party:     model.Party{ID: 1, FirstName: "Jane"},
			SSNMasked: "***-**-2243",
		}, nil).Once()

		body := `{"first_name":"Jane","last_name":"Doe","dob":"1990-05-10","gender":"female","ssn":"587-11-2243","address_full":"221B Baker Street, Apt 4","address_city":"Springfield","address_zip":"62704","address_state":"IL","phone_number":"5551234567","email":"jane@example.com","dependants":2}`
		req := httptest.NewRequest(http.MethodPost, "/parties", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "***-**-2243", result["ssn_masked"])
		_, hasSSN := result["ssn"]
		assert.False(t, hasSSN)
		mockSvc.AssertExpectations(t)
	})

	t.Run("bad dob format", func(t *testing.T) {
		body := `{"first_name":"Jane","dob":"05/10/1990"}`
		req := httptest.NewRequest(http.MethodPost, "/parties", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "dob", res.Error.Field)
	})

	t.Run("validation error carries the field", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, &service.ValidationError{Field: "ssn", Reason: "SSN must be exactly 9 digits"}).Once()

		body := `{"first_name":"Jane","last_name":"Doe","dob":"1990-05-10","ssn":"12"}`
		req := httptest.NewRequest(http.MethodPost, "/parties", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
		assert.Equal(t, "ssn", res.Error.Field)
	})
}

func TestGetParty(t *testing.T) {
	mockSvc := new(serviceMocks.MockPartyService)
	app := fiber.New()
	app.Get("/parties/:id", GetParty(mockSvc))

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(9)).Return(nil, service.ErrPartyNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/parties/9", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateParty(t *testing.T) {
	mockSvc := new(serviceMocks.MockPartyService)
	app := fiber.New()
	app.Patch("/parties/:id", UpdateParty(mockSvc))

	mockSvc.On("Update", mock.Anything, int64(7), mock.MatchedBy(func(in service.UpdatePartyInput) bool {
		return in.AddressCity != nil && *in.AddressCity == "Chicago" && in.FirstName == nil
	})).Return(&service.PartyView{Party: model.Party{ID: 7, AddressCity: "Chicago"}}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/parties/7", strings.NewReader(`{"address_city":"Chicago"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestCreateEmployee(t *testing.T) {
	mockSvc := new(serviceMocks.MockProfileService)
	app := fiber.New()
	app.Post("/employees", CreateEmployee(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("CreateEmployee", mock.Anything, mock.MatchedBy(func(in service.CreateEmployeeInput) bool {
			return in.PartyID == 42 && in.EmployerID == "emp-7"
		})).Return(&model.EmployeeProfile{ID: 1, PartyID: 42, EmployerID: "emp-7"}, nil).Once()

		body := `{"party_id":42,"employer_id":"emp-7","date_hired":"2024-03-01"}`
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown party", func(t *testing.T) {
		mockSvc.On("CreateEmployee", mock.Anything, mock.Anything).
			Return(nil, service.ErrPartyNotFound).Once()

		body := `{"party_id":99,"employer_id":"emp-7","date_hired":"2024-03-01"}`
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

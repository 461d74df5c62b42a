package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"couplesite/internal/model"
	"couplesite/internal/service"
	serviceMocks "couplesite/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
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

	t.Run("no database configured", func(t *testing.T) {
		appNoDB := fiber.New()
		appNoDB.Get("/health", HealthCheck(nil))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := appNoDB.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListNotes(t *testing.T) {
	mockSvc := new(serviceMocks.MockNoteService)
	app := fiber.New()
	app.Get("/api/notes", ListNotes(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := []model.Note{
			{ID: uuid.New().String(), Content: "second"},
			{ID: uuid.New().String(), Content: "first"},
		}
		mockSvc.On("List", mock.Anything).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.Note
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 2)
		assert.Equal(t, "second", result[0].Content)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateNote(t *testing.T) {
	mockSvc := new(serviceMocks.MockNoteService)
	app := fiber.New()
	app.Post("/api/notes", CreateNote(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.Note{ID: uuid.New().String(), Content: "hello"}
		mockSvc.On("Create", mock.Anything, "hello").Return(expected, nil).Once()

		body := bytes.NewBufferString(`{"content":"hello"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/notes", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Note
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expected.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty content", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, "").Return(nil, service.ErrContentRequired).Once()

		body := bytes.NewBufferString(`{"content":""}`)
		req := httptest.NewRequest(http.MethodPost, "/api/notes", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "CONTENT_REQUIRED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		body := bytes.NewBufferString(`{`)
		req := httptest.NewRequest(http.MethodPost, "/api/notes", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_BODY", res.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, "hello").Return(nil, errors.New("db fail")).Once()

		body := bytes.NewBufferString(`{"content":"hello"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/notes", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteNote(t *testing.T) {
	mockSvc := new(serviceMocks.MockNoteService)
	app := fiber.New()
	app.Delete("/api/notes/:id", DeleteNote(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/notes/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Note deleted successfully", body["message"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/notes/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(errors.New("delete error")).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/notes/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListVoiceMails(t *testing.T) {
	mockSvc := new(serviceMocks.MockVoiceMailService)
	app := fiber.New()
	app.Get("/api/voicemails", ListVoiceMails(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := []model.VoiceMail{
			{ID: uuid.New().String(), Filename: "b.webm", URL: "/public/uploads/b.webm"},
			{ID: uuid.New().String(), Filename: "a.webm", URL: "/public/uploads/a.webm"},
		}
		mockSvc.On("List", mock.Anything).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/voicemails", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.VoiceMail
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 2)
		assert.Equal(t, "/public/uploads/b.webm", result[0].URL)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/voicemails", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

// audioForm builds a multipart body with a single "audio" part carrying the
// given content type.
func audioForm(t *testing.T, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="audio"; filename="recording.webm"`)
	h.Set("Content-Type", contentType)
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	part.Write(payload)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadVoiceMail(t *testing.T) {
	mockSvc := new(serviceMocks.MockVoiceMailService)
	app := fiber.New()
	app.Post("/api/voicemails", UploadVoiceMail(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.VoiceMail{ID: uuid.New().String(), Filename: "stored.webm", URL: "/public/uploads/stored.webm"}
		mockSvc.On("Ingest", mock.Anything, mock.Anything, "recording.webm", "audio/webm", mock.Anything).
			Return(expected, nil).Once()

		body, ct := audioForm(t, "audio/webm", []byte("a short clip"))
		req := httptest.NewRequest(http.MethodPost, "/api/voicemails", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.VoiceMail
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expected.ID, result.ID)
		assert.Equal(t, expected.URL, result.URL)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/voicemails", nil)
		// Missing content-type and body
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "AUDIO_REQUIRED", res.Error.Code)
	})

	t.Run("wrong field name", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("file", "recording.webm")
		part.Write([]byte("a short clip"))
		writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/voicemails", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "AUDIO_REQUIRED", res.Error.Code)
	})

	t.Run("non-audio MIME type", func(t *testing.T) {
		mockSvc.On("Ingest", mock.Anything, mock.Anything, "recording.webm", "image/png", mock.Anything).
			Return(nil, service.ErrNotAudio).Once()

		body, ct := audioForm(t, "image/png", []byte("not audio"))
		req := httptest.NewRequest(http.MethodPost, "/api/voicemails", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_AUDIO", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("oversize upload", func(t *testing.T) {
		mockSvc.On("Ingest", mock.Anything, mock.Anything, "recording.webm", "audio/webm", mock.Anything).
			Return(nil, service.ErrTooLarge).Once()

		body, ct := audioForm(t, "audio/webm", []byte("pretend this is huge"))
		req := httptest.NewRequest(http.MethodPost, "/api/voicemails", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_TOO_LARGE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Ingest", mock.Anything, mock.Anything, "recording.webm", "audio/webm", mock.Anything).
			Return(nil, errors.New("upload failed")).Once()

		body, ct := audioForm(t, "audio/webm", []byte("a short clip"))
		req := httptest.NewRequest(http.MethodPost, "/api/voicemails", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteVoiceMail(t *testing.T) {
	mockSvc := new(serviceMocks.MockVoiceMailService)
	app := fiber.New()
	app.Delete("/api/voicemails/:id", DeleteVoiceMail(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/voicemails/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Voice mail deleted successfully", body["message"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/voicemails/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(errors.New("delete error")).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/voicemails/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	noteSvc := new(serviceMocks.MockNoteService)
	vmSvc := new(serviceMocks.MockVoiceMailService)
	// Register all routes
	RegisterRoutes(app, nil, noteSvc, vmSvc)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		// Fiber returns 405 by default if route exists but method doesn't match
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}

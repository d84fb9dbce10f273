package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martijn/garage/internal/api/dto"
	"github.com/martijn/garage/internal/core/service"
	"github.com/martijn/garage/internal/infrastructure/content/local"
	"github.com/martijn/garage/internal/infrastructure/sqlite"
)

// testEnv holds all test dependencies
type testEnv struct {
	db                *sqlite.DB
	router            *gin.Engine
	clientService     *service.ClientService
	attachmentService *service.AttachmentService
	contentDir        string
}

// setupTestEnv creates a test environment with in-memory SQLite database
// and a temporary upload directory
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := local.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create content store: %v", err)
	}

	clientService := service.NewClientService(sqlite.NewClientRepository(db))
	attachmentService := service.NewAttachmentService(clientService, store, nil)

	clientHandler := NewClientHandler(clientService)
	attachmentHandler := NewAttachmentHandler(attachmentService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/api/clients", clientHandler.ListClients)
	router.POST("/api/clients", clientHandler.CreateClient)
	router.GET("/api/clients/:id", clientHandler.GetClient)
	router.PUT("/api/clients/:id", clientHandler.UpdateClient)
	router.PATCH("/api/clients/:id", clientHandler.UpdateClient)
	router.DELETE("/api/clients/:id", clientHandler.DeleteClient)
	router.POST("/api/clients/:id/attachment", attachmentHandler.UploadAttachment)
	router.GET("/api/clients/:id/attachment", attachmentHandler.DownloadAttachment)

	return &testEnv{
		db:                db,
		router:            router,
		clientService:     clientService,
		attachmentService: attachmentService,
		contentDir:        store.Dir(),
	}
}

// makeRequest sends body as JSON when it is not nil
func (env *testEnv) makeRequest(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("failed to marshal request body: %v", err)
			}
			reader = bytes.NewReader(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// upload posts data as the "file" part of a multipart form
func (env *testEnv) upload(t *testing.T, clientID, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("failed to create form part: %v", err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/clients/"+clientID+"/attachment", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// createClient posts a minimal client and returns its response
func (env *testEnv) createClient(t *testing.T, body any) dto.ClientResponse {
	t.Helper()

	w := env.makeRequest(t, http.MethodPost, "/api/clients", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	return parseClientResponse(t, w)
}

func parseClientResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ClientResponse {
	t.Helper()
	var response dto.ClientResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v\nbody: %s", err, w.Body.String())
	}
	return response
}

func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var response dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse error response: %v\nbody: %s", err, w.Body.String())
	}
	return response
}

func ptr[T any](v T) *T {
	return &v
}

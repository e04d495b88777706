package controllers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"esv/internal/providers"
	"esv/internal/services"
	"esv/internal/structures"
	"esv/internal/testutil"
	"esv/internal/validation"
	"esv/internal/viewmodel"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- local mocks (scoped to controller tests) ---

type mockLogger struct{}

func (m *mockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache                          { return &mockCache{data: make(map[string][]byte)} }
func (m *mockCache) Get(key string) ([]byte, bool)      { v, ok := m.data[key]; return v, ok }
func (m *mockCache) Set(key string, value []byte) error { m.data[key] = value; return nil }
func (m *mockCache) EntryCount() int64                  { return int64(len(m.data)) }

type mockService struct {
	loadName string
	loadData []byte
	loadErr  error
	checkErr error
}

func (m *mockService) Load(name string, data []byte) (*services.Session, error) {
	m.loadName = name
	m.loadData = data
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	export, err := validation.Parse([]byte(testutil.ValidExportJSON))
	if err != nil {
		return nil, err
	}
	return &services.Session{ID: "s-1", FileName: name, Size: len(data), Dashboard: viewmodel.NewBuilder(nil).Build(export)}, nil
}

func (m *mockService) Check(_ []byte) error { return m.checkErr }

// --- helpers ---

func testConfig(debug bool) *structures.Config {
	return &structures.Config{
		Debug:  debug,
		Upload: structures.UploadConfig{MaxBytes: 32 << 10},
	}
}

func newTestController(svc services.DashboardServiceInterface, conf *structures.Config) *DashboardController {
	return NewDashboardController(&mockLogger{}, svc, viewmodel.DefaultFormatter(), conf)
}

func newRealController(t *testing.T, debug bool) *DashboardController {
	t.Helper()
	conf := testConfig(debug)
	compressor, err := providers.NewZstdCompressor(conf)
	require.NoError(t, err)
	t.Cleanup(compressor.Close)
	svc := services.NewDashboardService(conf, &mockLogger{}, newMockCache(), compressor, testutil.NewMockMetrics(), viewmodel.NewBuilder(nil))
	return newTestController(svc, conf)
}

func multipartUpload(t *testing.T, target string, files map[string]string, order ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, field := range order {
		if field == "note" {
			require.NoError(t, mw.WriteField("note", files[field]))
			continue
		}
		fw, err := mw.CreateFormFile("file", field)
		require.NoError(t, err)
		_, err = fw.Write([]byte(files[field]))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

// --- Upload tests ---

func TestUpload_MultipartValidDocument(t *testing.T) {
	dc := newRealController(t, false)

	req := multipartUpload(t, "/api/dashboard", map[string]string{"stats.json": testutil.ValidExportJSON}, "stats.json")
	rr := httptest.NewRecorder()
	dc.Upload(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	var session services.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	assert.Equal(t, "stats.json", session.FileName)
	require.NotNil(t, session.Dashboard)
	assert.Equal(t, []string{"survival.example.net", "creative.example.net"}, session.Dashboard.Platforms.Data.Labels)
}

func TestUpload_OnlyFirstFileIsHonoured(t *testing.T) {
	svc := &mockService{}
	dc := newTestController(svc, testConfig(false))

	req := multipartUpload(t, "/api/dashboard", map[string]string{
		"note":   "hello",
		"a.json": testutil.MinimalExportJSON,
		"b.json": "ignored",
	}, "note", "a.json", "b.json")
	rr := httptest.NewRecorder()
	dc.Upload(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "a.json", svc.loadName)
	assert.Equal(t, testutil.MinimalExportJSON, string(svc.loadData))
}

func TestUpload_RawBody(t *testing.T) {
	svc := &mockService{}
	dc := newTestController(svc, testConfig(false))

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard?name=march.json", strings.NewReader(testutil.MinimalExportJSON))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	dc.Upload(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "march.json", svc.loadName)
}

func TestUpload_RawBodyDefaultName(t *testing.T) {
	svc := &mockService{}
	dc := newTestController(svc, testConfig(false))

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	dc.Upload(rr, req)

	assert.Equal(t, defaultFileName, svc.loadName)
}

func TestUpload_InvalidDocumentsShareOneMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"export_date": `},
		{"missing field", `{"timeframe": "x"}`},
		{"bad status", strings.Replace(testutil.ValidExportJSON, `"status": "ended"`, `"status": "paused"`, 1)},
		{"not an object", `[1, 2, 3]`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := newRealController(t, false)

			req := multipartUpload(t, "/api/dashboard", map[string]string{"x.json": tt.body}, "x.json")
			rr := httptest.NewRecorder()
			dc.Upload(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, map[string]any{"error": InvalidFileMessage}, decodeBody(t, rr))
		})
	}
}

func TestUpload_DebugModeAddsDetail(t *testing.T) {
	dc := newRealController(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard", strings.NewReader(`{"timeframe": "x"}`))
	rr := httptest.NewRecorder()
	dc.Upload(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, InvalidFileMessage, body["error"])
	assert.Contains(t, body["detail"], "export_date")
}

func TestUpload_TooLargeRawBody(t *testing.T) {
	svc := &mockService{}
	dc := newTestController(svc, testConfig(false))

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard", bytes.NewReader(bytes.Repeat([]byte("a"), 32<<10+1)))
	rr := httptest.NewRecorder()
	dc.Upload(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, TooLargeMessage, decodeBody(t, rr)["error"])
	assert.Nil(t, svc.loadData)
}

func TestUpload_TooLargeMultipartFile(t *testing.T) {
	svc := &mockService{}
	dc := newTestController(svc, testConfig(false))

	req := multipartUpload(t, "/api/dashboard", map[string]string{"big.json": strings.Repeat("a", 32<<10+1)}, "big.json")
	rr := httptest.NewRecorder()
	dc.Upload(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Nil(t, svc.loadData)
}

func TestUpload_ServiceTooLarge(t *testing.T) {
	dc := newTestController(&mockService{loadErr: services.ErrPayloadTooLarge}, testConfig(false))

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	dc.Upload(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestUpload_MultipartWithoutFile(t *testing.T) {
	svc := &mockService{}
	dc := newTestController(svc, testConfig(false))

	req := multipartUpload(t, "/api/dashboard", map[string]string{"note": "hi"}, "note")
	rr := httptest.NewRecorder()
	dc.Upload(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, NoFileMessage, decodeBody(t, rr)["error"])
}

func TestUpload_SortedRows(t *testing.T) {
	dc := newTestController(&mockService{}, testConfig(false))

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard?sort=profit&order=desc", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	dc.Upload(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var session services.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	require.Len(t, session.Dashboard.CampaignRows, 2)
	assert.Equal(t, "Spring Launch", session.Dashboard.CampaignRows[0].Name)
	assert.Equal(t, "Winter Promo", session.Dashboard.CampaignRows[1].Name)

	req = httptest.NewRequest(http.MethodPost, "/api/dashboard?sort=profit", strings.NewReader("{}"))
	rr = httptest.NewRecorder()
	dc.Upload(rr, req)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	assert.Equal(t, "Winter Promo", session.Dashboard.CampaignRows[0].Name)
}

func TestUpload_UnknownSortKey(t *testing.T) {
	svc := &mockService{}
	dc := newTestController(svc, testConfig(false))

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard?sort=colour", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	dc.Upload(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Nil(t, svc.loadData)
}

// --- Validate tests ---

func TestValidate_Valid(t *testing.T) {
	dc := newTestController(&mockService{}, testConfig(false))

	req := httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(testutil.MinimalExportJSON))
	rr := httptest.NewRecorder()
	dc.Validate(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"valid": true}, decodeBody(t, rr))
}

func TestValidate_Invalid(t *testing.T) {
	schemaErr := &validation.Error{Path: "campaigns", Expected: "array", Received: "object"}
	dc := newTestController(&mockService{checkErr: schemaErr}, testConfig(false))

	req := httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	dc.Validate(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, map[string]any{"error": InvalidFileMessage}, decodeBody(t, rr))
}

func TestValidate_InvalidDebug(t *testing.T) {
	dc := newTestController(&mockService{checkErr: errors.New("boom")}, testConfig(true))

	req := httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	dc.Validate(rr, req)

	assert.Equal(t, "boom", decodeBody(t, rr)["detail"])
}

// --- Format tests ---

func TestFormat(t *testing.T) {
	tests := []struct {
		query    string
		status   int
		expected string
	}{
		{"n=1234", http.StatusOK, "1,234"},
		{"n=-1234", http.StatusOK, "-1,234"},
		{"n=0.5", http.StatusOK, "0.5"},
		{"n=170&style=percent", http.StatusOK, "170%"},
		{"n=abc", http.StatusBadRequest, ""},
		{"n=NaN", http.StatusBadRequest, ""},
		{"", http.StatusBadRequest, ""},
	}
	dc := newTestController(&mockService{}, testConfig(false))
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/format?"+tt.query, nil)
			rr := httptest.NewRecorder()
			dc.Format(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.expected, decodeBody(t, rr)["text"])
			}
		})
	}
}

// --- Index tests ---

func TestIndex_ServesPage(t *testing.T) {
	dc := newTestController(&mockService{}, testConfig(false))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	dc.Index(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "EasyStats Visualizer")
}

func TestIndex_UnknownPath(t *testing.T) {
	dc := newTestController(&mockService{}, testConfig(false))

	req := httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)
	rr := httptest.NewRecorder()
	dc.Index(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// --- Log routing tests ---

func TestRequestLogsFollowMethod(t *testing.T) {
	logger := &testutil.MockLogger{}
	dc := NewDashboardController(logger, &mockService{loadErr: validation.ErrMalformedJSON}, viewmodel.DefaultFormatter(), testConfig(false))

	dc.Format(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/format?n=abc", nil))
	require.Len(t, logger.ByType(providers.TypeGet), 1)
	assert.Contains(t, logger.ByType(providers.TypeGet)[0].Message(), `"abc"`)

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard", strings.NewReader("{"))
	dc.Upload(httptest.NewRecorder(), req)
	posted := logger.ByType(providers.TypePost)
	require.Len(t, posted, 1)
	assert.Contains(t, posted[0].Message(), "rejected")
	assert.Len(t, logger.ByType(providers.TypeGet), 1)
}

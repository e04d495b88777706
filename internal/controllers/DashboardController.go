package controllers

import (
	_ "embed"
	"errors"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"esv/internal/providers"
	"esv/internal/services"
	"esv/internal/structures"
	"esv/internal/viewmodel"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	InvalidFileMessage = "Invalid file format. Please upload a valid EasyStats JSON file."
	TooLargeMessage    = "File too large."
	NoFileMessage      = "No file uploaded."

	uploadField     = "file"
	defaultFileName = "upload.json"
	// room for multipart boundaries and part headers on top of upload.maxBytes
	multipartOverhead = 64 << 10
)

var errNoFile = errors.New("no file part in upload")

//go:embed assets/index.html
var indexPage []byte

type DashboardController struct {
	logger    providers.Logger
	service   services.DashboardServiceInterface
	formatter *viewmodel.Formatter
	conf      *structures.Config
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type validResponse struct {
	Valid bool `json:"valid"`
}

type formatResponse struct {
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

func NewDashboardController(logger providers.Logger, service services.DashboardServiceInterface, formatter *viewmodel.Formatter, conf *structures.Config) *DashboardController {
	return &DashboardController{
		logger:    logger,
		service:   service,
		formatter: formatter,
		conf:      conf,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// fail maps a pipeline error to its status code. Parse and schema failures
// share one user-facing message; the cause is only exposed in debug mode.
func (dc *DashboardController) fail(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: InvalidFileMessage}
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, services.ErrPayloadTooLarge):
		resp.Error = TooLargeMessage
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, errNoFile):
		resp.Error = NoFileMessage
	}
	if dc.conf.Debug {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

// readUpload returns the first "file" part of a multipart form, or the raw
// body for any other content type.
func (dc *DashboardController) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	limit := int64(dc.conf.Upload.MaxBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType != "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return "", nil, uploadError(err)
		}
		name := r.URL.Query().Get("name")
		if name == "" {
			name = defaultFileName
		}
		return name, data, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	mr, err := r.MultipartReader()
	if err != nil {
		return "", nil, uploadError(err)
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return "", nil, errNoFile
		}
		if err != nil {
			return "", nil, uploadError(err)
		}
		if part.FormName() != uploadField {
			_ = part.Close()
			continue
		}
		data, err := io.ReadAll(io.LimitReader(part, limit+1))
		_ = part.Close()
		if err != nil {
			return "", nil, uploadError(err)
		}
		if int64(len(data)) > limit {
			return "", nil, services.ErrPayloadTooLarge
		}
		name := part.FileName()
		if name == "" {
			name = defaultFileName
		}
		return name, data, nil
	}
}

func uploadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errors.Join(services.ErrPayloadTooLarge, err)
	}
	return err
}

func (dc *DashboardController) Upload(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-Id", requestID)

	sortKey, descending, err := parseSort(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	logType := providers.GetLogTypeByRequestType(r.Method)
	name, data, err := dc.readUpload(w, r)
	if err != nil {
		dc.logger.Warnf(logType, "request %s: unreadable upload: %s", requestID, err)
		dc.fail(w, err)
		return
	}

	session, err := dc.service.Load(name, data)
	if err != nil {
		dc.logger.Debugf(logType, "request %s: %s rejected", requestID, name)
		dc.fail(w, err)
		return
	}
	if sortKey != "" {
		session.Dashboard.CampaignRows = viewmodel.SortCampaignRows(session.Dashboard.CampaignRows, sortKey, descending)
	}
	dc.logger.Debugf(logType, "request %s: session %s", requestID, session.ID)
	writeJSON(w, http.StatusOK, session)
}

func (dc *DashboardController) Validate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Request-Id", uuid.NewString())

	_, data, err := dc.readUpload(w, r)
	if err == nil {
		err = dc.service.Check(data)
	}
	if err != nil {
		dc.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validResponse{Valid: true})
}

// Format renders n the way dashboard ticks and tooltips show numbers.
func (dc *DashboardController) Format(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("n")
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		dc.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "format: invalid number %q", raw)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query parameter n must be a number"})
		return
	}
	text := dc.formatter.Number(n)
	if r.URL.Query().Get("style") == "percent" {
		text = dc.formatter.Percent(n)
	}
	writeJSON(w, http.StatusOK, formatResponse{Value: n, Text: text})
}

func (dc *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexPage)
}

func parseSort(r *http.Request) (viewmodel.SortKey, bool, error) {
	q := r.URL.Query()
	if q.Get("sort") == "" {
		return "", false, nil
	}
	key, err := viewmodel.ParseSortKey(q.Get("sort"))
	if err != nil {
		return "", false, err
	}
	return key, strings.EqualFold(q.Get("order"), "desc"), nil
}

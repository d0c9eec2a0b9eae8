package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/openclaw/qrgen/payload"
	"github.com/openclaw/qrgen/qr"
)

// recordFields are the form keys copied into payload.FromFields.
var recordFields = []string{
	payload.FieldText, payload.FieldURL,
	payload.FieldName, payload.FieldPhone, payload.FieldEmail, payload.FieldAddress,
	payload.FieldSSID, payload.FieldPassword, payload.FieldAuth,
	payload.FieldLatitude, payload.FieldLongitude,
}

// generateRequest is a parsed form submission.
type generateRequest struct {
	record payload.Record
	opts   qr.Options
	logo   []byte
}

// requestError is a client error detected while parsing a request, before
// generation starts.
type requestError struct {
	status int
	kind   string
	msg    string
}

func (e *requestError) Error() string { return e.msg }

type generateDataResponse struct {
	FileName string `json:"filename"`
	MIMEType string `json:"mime"`
	Payload  string `json:"payload"`
	Version  int    `json:"version"`
	Width    int    `json:"width"`
	PNG      string `json:"png"`
}

// handleGenerate returns the PNG itself, as a download unless ?inline=1.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	res, ok := s.generate(w, r)
	if !ok {
		return
	}

	disposition := "attachment"
	if v, _ := strconv.ParseBool(r.URL.Query().Get("inline")); v {
		disposition = "inline"
	}
	w.Header().Set("Content-Type", qr.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, qr.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PNG)))
	w.WriteHeader(http.StatusOK)
	w.Write(res.PNG)
}

// handleGenerateData returns the PNG base64-encoded in JSON for the form's
// preview.
func (s *Server) handleGenerateData(w http.ResponseWriter, r *http.Request) {
	res, ok := s.generate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, generateDataResponse{
		FileName: qr.FileName,
		MIMEType: qr.MIMEType,
		Payload:  res.Payload,
		Version:  res.Version,
		Width:    res.Width,
		PNG:      base64.StdEncoding.EncodeToString(res.PNG),
	})
}

// generate parses the request and runs the pipeline. On failure it writes
// the error response and returns false.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) (*qr.Result, bool) {
	req, err := s.parseGenerateRequest(r)
	if err != nil {
		var reqErr *requestError
		if errors.As(err, &reqErr) {
			writeKindError(w, reqErr.status, reqErr.kind, reqErr.msg)
		} else {
			writeKindError(w, http.StatusBadRequest, "invalid_request", err.Error())
		}
		return nil, false
	}

	res, err := qr.Generate(req.record, req.opts, req.logo)
	if err != nil {
		kind := qr.Kind(err)
		s.Log.Warn("qr generation failed", "kind", kind, "error", err)
		writeKindError(w, statusForKind(kind), kind, err.Error())
		return nil, false
	}

	s.Log.Info("qr generated",
		"type", req.record.Kind(),
		"version", res.Version,
		"width", res.Width,
		"logo", len(req.logo) > 0,
		"bytes", len(res.PNG),
	)
	return res, true
}

func (s *Server) parseGenerateRequest(r *http.Request) (*generateRequest, error) {
	maxBytes := s.MaxLogoBytes
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}

	if err := r.ParseMultipartForm(maxBytes + 1<<20); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, &requestError{http.StatusBadRequest, "invalid_request", "failed to parse form: " + err.Error()}
		}
		if err := r.ParseForm(); err != nil {
			return nil, &requestError{http.StatusBadRequest, "invalid_request", "failed to parse form: " + err.Error()}
		}
	}

	fields := make(map[string]string, len(recordFields))
	for _, key := range recordFields {
		fields[key] = r.FormValue(key)
	}
	record, err := payload.FromFields(r.FormValue("type"), fields)
	if err != nil {
		return nil, err
	}

	opts, err := s.parseOptions(r)
	if err != nil {
		return nil, &requestError{http.StatusBadRequest, qr.KindInvalidOptions, err.Error()}
	}

	logo, err := readLogo(r, maxBytes)
	if err != nil {
		return nil, err
	}

	return &generateRequest{record: record, opts: opts, logo: logo}, nil
}

// parseOptions overlays form values on the server defaults.
func (s *Server) parseOptions(r *http.Request) (qr.Options, error) {
	opts := s.Defaults

	if v := strings.TrimSpace(r.FormValue("module_size")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("%w: module_size %q", qr.ErrInvalidOptions, v)
		}
		opts.ModuleSize = n
	}
	if v := strings.TrimSpace(r.FormValue("border")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("%w: border %q", qr.ErrInvalidOptions, v)
		}
		opts.Border = n
	}
	if v := r.FormValue("fg"); v != "" {
		c, err := qr.ParseHexColor(v)
		if err != nil {
			return opts, err
		}
		opts.Foreground = c
	}
	if v := r.FormValue("bg"); v != "" {
		c, err := qr.ParseHexColor(v)
		if err != nil {
			return opts, err
		}
		opts.Background = c
	}
	if v := r.FormValue("escape"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("%w: escape %q", qr.ErrInvalidOptions, v)
		}
		opts.Escape = b
	}

	return opts, opts.Validate()
}

// readLogo returns the uploaded logo, or nil when none was sent.
func readLogo(r *http.Request, maxBytes int64) ([]byte, error) {
	file, _, err := r.FormFile("logo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, &requestError{http.StatusBadRequest, "invalid_request", "failed to read logo: " + err.Error()}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, &requestError{http.StatusInternalServerError, qr.KindInternal, "failed to read logo"}
	}
	if int64(len(data)) > maxBytes {
		return nil, &requestError{http.StatusRequestEntityTooLarge, "logo_too_large",
			fmt.Sprintf("logo exceeds %d bytes", maxBytes)}
	}
	return data, nil
}

func statusForKind(kind string) int {
	switch kind {
	case qr.KindEmptyPayload, qr.KindInvalidOptions, qr.KindLogoDecode:
		return http.StatusBadRequest
	case qr.KindCapacityExceeded:
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

func writeKindError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]string{"error": message, "kind": kind})
}

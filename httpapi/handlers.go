package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/orayew2002/timetracker/processor"
)

// maxUpload bounds the in-memory part of a multipart upload.
const maxUpload = 64 << 20

// fileRequest addresses one stored workbook.
type fileRequest struct {
	RequestID string `json:"request_id"`
	UserID    string `json:"user_id"`
	PathFile  string `json:"path_file"`
}

type handler struct {
	svc     Service
	metrics *Metrics
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) merge(w http.ResponseWriter, r *http.Request) {
	var req processor.MergeRequest
	if !decode(w, r, &req) {
		return
	}
	h.reply(w, "merge", h.svc.Merge(r.Context(), req))
}

func (h *handler) file(w http.ResponseWriter, r *http.Request) {
	var req fileRequest
	if !decode(w, r, &req) {
		return
	}
	h.reply(w, "file", h.svc.Records(r.Context(), req.UserID, req.PathFile))
}

func (h *handler) download(w http.ResponseWriter, r *http.Request) {
	var req fileRequest
	if !decode(w, r, &req) {
		return
	}
	h.reply(w, "download", h.svc.DownloadURL(r.Context(), req.UserID, req.PathFile))
}

func (h *handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResult("invalid multipart form: %v", err))
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResult("no files in form field %q", "files"))
		return
	}

	files := make([]processor.UploadFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			h.reply(w, "upload", errorResult("read %s: %v", fh.Filename, err))
			return
		}
		files = append(files, processor.UploadFile{Name: fh.Filename, Data: data})
	}

	h.reply(w, "upload", h.svc.Upload(r.Context(), files))
}

func (h *handler) reply(w http.ResponseWriter, operation string, res processor.Result) {
	h.metrics.Outcome(operation, res.Status)
	writeJSON(w, http.StatusOK, res)
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResult("invalid request body: %v", err))
		return false
	}
	return true
}

func errorResult(format string, args ...any) processor.Result {
	return processor.Result{Status: processor.StatusError, Message: fmt.Sprintf(format, args...)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

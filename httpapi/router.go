// Package httpapi exposes the timetracker operations over HTTP.
package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/orayew2002/timetracker/processor"
)

// Service is the set of operations served by the API.
type Service interface {
	Merge(ctx context.Context, req processor.MergeRequest) processor.Result
	Records(ctx context.Context, userID, key string) processor.Result
	DownloadURL(ctx context.Context, userID, key string) processor.Result
	Upload(ctx context.Context, files []processor.UploadFile) processor.Result
}

// NewRouter registers every route of svc.
func NewRouter(svc Service, metrics *Metrics) *mux.Router {
	h := &handler{svc: svc, metrics: metrics}
	r := mux.NewRouter()

	route := func(path, name string, fn http.HandlerFunc, methods ...string) {
		r.Handle(path, metrics.Wrap(name, fn)).Methods(methods...)
	}

	route("/health", "health", h.health, http.MethodGet)
	route("/timetracker/merge", "merge", h.merge, http.MethodPost)
	route("/timetracker/upload", "upload", h.upload, http.MethodPost)
	route("/timetracker/file", "file", h.file, http.MethodPost)
	route("/timetracker/download", "download", h.download, http.MethodPost)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}

// NewHandler wraps the router with permissive CORS and an access log written to logOut.
func NewHandler(svc Service, metrics *Metrics, logOut io.Writer) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	return handlers.LoggingHandler(logOut, cors(NewRouter(svc, metrics)))
}

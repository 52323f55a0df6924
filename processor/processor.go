// Package processor runs timesheet merges against an object store on behalf of signed-in users.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/orayew2002/timetracker/domain"
	"github.com/orayew2002/timetracker/events"
	"github.com/orayew2002/timetracker/excel"
	"github.com/orayew2002/timetracker/storage"
	"github.com/orayew2002/timetracker/timesheet"
)

// ObjectStore fetches and stores workbooks by bucket and key.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, data []byte) (string, error)
	PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}

// SessionStore tells whether a user is signed in.
type SessionStore interface {
	IsValid(ctx context.Context, userID string) (bool, error)
}

// Publisher announces finished merges.
type Publisher interface {
	Publish(ctx context.Context, ev events.MergeCompleted) error
}

// MergeRequest asks for the timesheets under PathFiles to be merged,
// optionally onto the existing report under SummaryFile.
type MergeRequest struct {
	RequestID   string   `json:"request_id"`
	UserID      string   `json:"user_id"`
	StartTime   string   `json:"start_time"`
	PathFiles   []string `json:"path_files"`
	SummaryFile string   `json:"summary_file,omitempty"`
}

// UploadFile is one timesheet sent by a client.
type UploadFile struct {
	Name string
	Data []byte
}

// Options configures a Processor. Zero values select the defaults noted on each field.
type Options struct {
	Bucket       string        // default "estec"
	InputPrefix  string        // prefix of uploaded timesheets
	OutputPrefix string        // prefix of merge reports
	PresignTTL   time.Duration // default one hour
	Parser       *timesheet.Parser
	Publisher    Publisher
	Logger       *slog.Logger
	Now          func() time.Time
}

// Processor applies merge runs to workbooks kept in an object store.
type Processor struct {
	store    ObjectStore
	sessions SessionStore
	opts     Options
	log      *slog.Logger
}

// New creates a Processor over store, guarding every operation with sessions.
func New(store ObjectStore, sessions SessionStore, opts Options) *Processor {
	if opts.Bucket == "" {
		opts.Bucket = "estec"
	}
	if opts.PresignTTL <= 0 {
		opts.PresignTTL = time.Hour
	}
	if opts.Parser == nil {
		opts.Parser = timesheet.Default()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Processor{
		store:    store,
		sessions: sessions,
		opts:     opts,
		log:      opts.Logger.With(slog.String("component", "processor")),
	}
}

// Merge runs one merge and stores the report under the output prefix.
func (p *Processor) Merge(ctx context.Context, req MergeRequest) Result {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	log := p.log.With(slog.String("request_id", req.RequestID), slog.String("user_id", req.UserID))

	if err := p.authorize(ctx, req.UserID); err != nil {
		log.Warn("merge rejected", "error", err)
		return failure(err)
	}
	if len(req.PathFiles) == 0 {
		return failureMessage("No files provided in path_files.")
	}

	inputs := make([][]byte, len(req.PathFiles))
	for i, key := range req.PathFiles {
		data, err := p.get(ctx, key)
		if err != nil {
			log.Error("fetch input", "key", key, "error", err)
			return failure(err)
		}
		inputs[i] = data
	}

	var summary []byte
	if req.SummaryFile != "" {
		data, err := p.get(ctx, req.SummaryFile)
		if err != nil {
			log.Error("fetch summary", "key", req.SummaryFile, "error", err)
			return failure(err)
		}
		summary = data
	}

	out, err := Run(ctx, p.opts.Parser, inputs, summary)
	if err != nil {
		log.Warn("merge failed", "files", len(inputs), "error", err)
		return failure(err)
	}

	now := p.opts.Now()
	key := outputKey(p.opts.OutputPrefix, now)
	loc, err := p.store.Put(ctx, p.opts.Bucket, key, out.Report)
	if err != nil {
		log.Error("store report", "key", key, "error", err)
		return failure(&domain.StorageError{Op: "put", Key: key, Err: err})
	}

	ev := events.MergeCompleted{
		RequestID: req.RequestID,
		UserID:    req.UserID,
		Output:    loc,
		Inputs:    req.PathFiles,
		Summary:   req.SummaryFile,
		Rows:      len(out.Matrix.Rows),
		Overwork:  len(out.Overwork),
		At:        now,
	}
	if err := p.opts.Publisher.Publish(ctx, ev); err != nil {
		log.Warn("publish merge event", "error", err)
	}

	log.Info("merge completed",
		"files", len(inputs),
		"rows", len(out.Matrix.Rows),
		"days", out.Matrix.Calendar.Len(),
		"overwork", len(out.Overwork),
		"output", loc)

	return Result{
		Status:    StatusSuccess,
		RequestID: req.RequestID,
		UserID:    req.UserID,
		StartTime: req.StartTime,
		Output:    loc,
		Overwork:  out.Overwork,
	}
}

// Records returns the rows of the workbook under key as JSON-ready records.
func (p *Processor) Records(ctx context.Context, userID, key string) Result {
	if err := p.authorize(ctx, userID); err != nil {
		return failure(err)
	}

	data, err := p.get(ctx, key)
	if err != nil {
		return failure(err)
	}

	records, err := excel.Records(data)
	if err != nil {
		return failure(fmt.Errorf("read %s: %w", key, err))
	}

	return Result{Status: StatusSuccess, Data: records}
}

// DownloadURL returns a presigned URL for the workbook under key.
func (p *Processor) DownloadURL(ctx context.Context, userID, key string) Result {
	if err := p.authorize(ctx, userID); err != nil {
		return failure(err)
	}

	key = storage.TrimBucket(p.opts.Bucket, key)
	u, err := p.store.PresignGet(ctx, p.opts.Bucket, key, p.opts.PresignTTL)
	if err != nil {
		return failure(&domain.StorageError{Op: "presign", Key: key, Err: err})
	}

	return Result{Status: StatusSuccess, URL: u}
}

// Upload stores each file under the input prefix and returns the new keys.
func (p *Processor) Upload(ctx context.Context, files []UploadFile) Result {
	keys := make([]string, 0, len(files))
	for _, file := range files {
		key := p.opts.InputPrefix + path.Base(file.Name)
		if _, err := p.store.Put(ctx, p.opts.Bucket, key, file.Data); err != nil {
			p.log.Error("upload", "key", key, "error", err)
			return failure(&domain.StorageError{Op: "put", Key: key, Err: err})
		}
		keys = append(keys, key)
	}

	p.log.Info("upload completed", "files", len(keys))
	return Result{Status: StatusSuccess, PathFiles: keys}
}

// authorize fails with domain.ErrUnauthorized unless userID holds a valid
// session. Store failures count as an invalid session.
func (p *Processor) authorize(ctx context.Context, userID string) error {
	ok, err := p.sessions.IsValid(ctx, userID)
	if err != nil {
		p.log.Error("session check", "user_id", userID, "error", err)
		return domain.ErrUnauthorized
	}
	if !ok {
		return domain.ErrUnauthorized
	}
	return nil
}

// outputKey names a report ES_YYYYmmdd_HHMMSS_<suffix>.xlsx. The random suffix
// keeps runs finishing within the same second from overwriting each other.
func outputKey(prefix string, now time.Time) string {
	return prefix + "ES_" + now.Format("20060102_150405") + "_" + uuid.NewString()[:8] + ".xlsx"
}

func (p *Processor) get(ctx context.Context, key string) ([]byte, error) {
	key = storage.TrimBucket(p.opts.Bucket, key)
	data, err := p.store.Get(ctx, p.opts.Bucket, key)
	if err != nil {
		return nil, &domain.StorageError{Op: "get", Key: key, Err: err}
	}
	return data, nil
}

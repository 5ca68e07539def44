package record

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"intake/internal/pkg/imaging"
)

const defaultUsername = "unknown"

var (
	emptyArray  = datatypes.JSON("[]")
	emptyObject = datatypes.JSON("{}")
)

// Service implements ingest and the admin read/cleanup operations over the
// record repository.
type Service struct {
	repo         Repository
	retentionAge time.Duration
	listLimit    int
}

func NewService(repo Repository, retentionAge time.Duration, listLimit int) *Service {
	return &Service{repo: repo, retentionAge: retentionAge, listLimit: listLimit}
}

// Ingest validates nothing hard: every malformed piece of the payload is
// coerced to its default and reported as a warning, and the write proceeds.
// Only the storage layer can fail the request.
func (s *Service) Ingest(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	rec := &Record{
		Username:  strings.TrimSpace(req.Username),
		Timestamp: time.Now(),
	}
	if rec.Username == "" {
		rec.Username = defaultUsername
	}

	var warnings []string

	var warn bool
	rec.Cookies, warn = coerceDocument(req.Cookies, '[', emptyArray)
	if warn {
		warnings = append(warnings, "cookies: malformed, replaced with []")
	}
	rec.History, warn = coerceDocument(req.History, '[', emptyArray)
	if warn {
		warnings = append(warnings, "history: malformed, replaced with []")
	}
	rec.SystemInfo, warn = coerceDocument(req.SystemInfo, '{', emptyObject)
	if warn {
		warnings = append(warnings, "systemInfo: malformed, replaced with {}")
	}

	if req.Screenshot != "" {
		raw, err := decodeScreenshot(req.Screenshot)
		if err != nil {
			warnings = append(warnings, "screenshot: undecodable, dropped")
		} else {
			rec.Screenshot = imaging.Normalize(raw)
		}
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}

	return &UploadResult{ID: rec.ID, Warnings: warnings}, nil
}

func (s *Service) ListRecent(ctx context.Context) ([]Summary, error) {
	return s.repo.ListRecent(ctx, s.listLimit)
}

func (s *Service) Get(ctx context.Context, id int64) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

// Screenshot returns the stored image bytes for a record, or
// ErrScreenshotNotFound when the record carries none.
func (s *Service) Screenshot(ctx context.Context, id int64) ([]byte, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(rec.Screenshot) == 0 {
		return nil, ErrScreenshotNotFound
	}
	return rec.Screenshot, nil
}

// Cleanup runs the retention sweep with the configured age and returns the
// number of rows removed.
func (s *Service) Cleanup(ctx context.Context) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, s.retentionAge)
}

// coerceDocument keeps raw only when it is valid JSON of the expected
// container kind; anything else becomes def. The bool reports whether the
// input was present but unusable.
func coerceDocument(raw json.RawMessage, open byte, def datatypes.JSON) (datatypes.JSON, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return def, false
	}
	if trimmed[0] != open || !json.Valid(trimmed) {
		return def, true
	}
	return datatypes.JSON(trimmed), false
}

// decodeScreenshot accepts plain base64 or a data URI
// ("data:image/png;base64,...").
func decodeScreenshot(s string) ([]byte, error) {
	if _, rest, ok := strings.Cut(s, ","); ok {
		s = rest
	}
	s = strings.TrimSpace(s)
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(s)
	}
	return raw, err
}

// Package logging decorates a storage.Storage with structured logs.
//
// Every call is logged before it runs (arguments) and after it returns
// (elapsed time plus either the result or the error). The wrapper never
// changes what the wrapped store returns: values and error values pass
// through untouched, so callers can keep matching storage.ErrInvalidData
// and storage.ErrNotFound with errors.Is.
package logging

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Storage is a storage.Storage that logs around another one.
type Storage struct {
	next storage.Storage
	log  *slog.Logger
}

// New wraps next. A nil logger falls back to slog.Default().
func New(next storage.Storage, log *slog.Logger) *Storage {
	if log == nil {
		log = slog.Default()
	}
	return &Storage{next: next, log: log}
}

// observe runs fn and logs its outcome. Caller-correctable failures are
// logged at Warn, anything else at Error.
func observe[T any](s *Storage, method string, args []any, fn func() (T, error)) (T, error) {
	callID := uuid.NewString()
	log := s.log.With(
		slog.String("method", method),
		slog.String("call_id", callID),
	)

	log.Debug("calling", args...)

	start := time.Now()
	result, err := fn()
	elapsed := time.Since(start)

	switch {
	case err == nil:
		log.Info("call succeeded",
			slog.Duration("elapsed", elapsed),
			slog.Any("result", result),
		)
	case errors.Is(err, storage.ErrInvalidData), errors.Is(err, storage.ErrNotFound):
		log.Warn("call rejected",
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
	default:
		log.Error("call failed",
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
	}

	return result, err
}

// none adapts an error-only call to observe.
type none struct{}

func (none) String() string { return "ok" }

func noResult(fn func() error) func() (none, error) {
	return func() (none, error) { return none{}, fn() }
}

func studentArg(s *types.Student) slog.Attr {
	if s == nil {
		return slog.String("student", "<nil>")
	}
	return slog.String("student", s.String())
}

// AddStudent logs and delegates to the wrapped store.
func (s *Storage) AddStudent(student *types.Student) (types.Student, error) {
	return observe(s, "AddStudent", []any{studentArg(student)}, func() (types.Student, error) {
		return s.next.AddStudent(student)
	})
}

// DeleteStudent logs and delegates to the wrapped store.
func (s *Storage) DeleteStudent(id int64) error {
	_, err := observe(s, "DeleteStudent", []any{slog.Int64("id", id)}, noResult(func() error {
		return s.next.DeleteStudent(id)
	}))
	return err
}

// ModifyStudent logs and delegates to the wrapped store.
func (s *Storage) ModifyStudent(student *types.Student) (types.Student, error) {
	return observe(s, "ModifyStudent", []any{studentArg(student)}, func() (types.Student, error) {
		return s.next.ModifyStudent(student)
	})
}

// FindStudent logs and delegates to the wrapped store.
func (s *Storage) FindStudent(id int64) (types.Student, error) {
	return observe(s, "FindStudent", []any{slog.Int64("id", id)}, func() (types.Student, error) {
		return s.next.FindStudent(id)
	})
}

// ListStudents logs and delegates to the wrapped store. The full
// result is logged, so large lists make long lines.
func (s *Storage) ListStudents() ([]types.Student, error) {
	return observe(s, "ListStudents", nil, s.next.ListStudents)
}

// ClearStudents logs and delegates to the wrapped store.
func (s *Storage) ClearStudents() error {
	_, err := observe(s, "ClearStudents", nil, noResult(s.next.ClearStudents))
	return err
}

var _ storage.Storage = (*Storage)(nil)

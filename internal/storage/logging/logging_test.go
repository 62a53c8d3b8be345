package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/logging"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/storage/storagetest"
	"github.com/aanand-mishra/student-records/internal/types"
)

func newLogged(t *testing.T, next storage.Storage) (*logging.Storage, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logging.New(next, log), &buf
}

// The decorator must satisfy the same contract as the store it wraps.
func TestStorage_Transparent(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		s, _ := newLogged(t, memory.New())
		return s
	})
}

func TestStorage_LogsSuccess(t *testing.T) {
	s, buf := newLogged(t, memory.New())

	got, err := s.AddStudent(&types.Student{Name: "张三", Phone: "13800138000"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG msg=calling method=AddStudent")
	assert.Contains(t, out, "level=INFO msg=\"call succeeded\" method=AddStudent")
	assert.Contains(t, out, "elapsed=")
	assert.Contains(t, out, "call_id=")
	assert.Contains(t, out, `phone=\"13800138000\"`)
}

func TestStorage_LogsRejection(t *testing.T) {
	s, buf := newLogged(t, memory.New())

	_, err := s.FindStudent(999)
	require.ErrorIs(t, err, storage.ErrNotFound)

	out := buf.String()
	assert.Contains(t, out, "level=WARN msg=\"call rejected\" method=FindStudent")
	assert.Contains(t, out, "student not found: id 999")
}

func TestStorage_SameCallIDPerInvocation(t *testing.T) {
	s, buf := newLogged(t, memory.New())
	require.NoError(t, s.ClearStudents())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	idOf := func(line string) string {
		for _, f := range strings.Fields(line) {
			if strings.HasPrefix(f, "call_id=") {
				return f
			}
		}
		return ""
	}
	require.NotEmpty(t, idOf(lines[0]))
	assert.Equal(t, idOf(lines[0]), idOf(lines[1]))
}

// failing returns the same backend error from every method.
type failing struct{ err error }

func (f failing) AddStudent(*types.Student) (types.Student, error)    { return types.Student{}, f.err }
func (f failing) DeleteStudent(int64) error                           { return f.err }
func (f failing) ModifyStudent(*types.Student) (types.Student, error) { return types.Student{}, f.err }
func (f failing) FindStudent(int64) (types.Student, error)            { return types.Student{}, f.err }
func (f failing) ListStudents() ([]types.Student, error)              { return nil, f.err }
func (f failing) ClearStudents() error                                { return f.err }

func TestStorage_PassesErrorsThroughUnchanged(t *testing.T) {
	boom := errors.New("disk on fire")
	s, buf := newLogged(t, failing{err: boom})

	_, err := s.AddStudent(nil)
	assert.Same(t, boom, err)
	assert.Same(t, boom, s.DeleteStudent(1))
	_, err = s.ModifyStudent(&types.Student{ID: 1})
	assert.Same(t, boom, err)
	_, err = s.FindStudent(1)
	assert.Same(t, boom, err)
	_, err = s.ListStudents()
	assert.Same(t, boom, err)
	assert.Same(t, boom, s.ClearStudents())

	out := buf.String()
	assert.Equal(t, 6, strings.Count(out, "level=ERROR msg=\"call failed\""))
	assert.Contains(t, out, "student=<nil>")
}

func TestNew_DefaultLogger(t *testing.T) {
	s := logging.New(memory.New(), nil)
	_, err := s.ListStudents()
	require.NoError(t, err)
}

package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/types"
)

func TestValidateNew(t *testing.T) {
	tests := []struct {
		name    string
		in      *types.Student
		wantMsg string
	}{
		{"valid without id", &types.Student{Name: "张三", Phone: "13800138000"}, ""},
		{"valid with id", &types.Student{ID: 7, Name: "张三", Phone: "13800138000"}, ""},
		{"valid with padding", &types.Student{Name: "  张三 ", Phone: " 138 "}, ""},
		{"nil", nil, "invalid student data: student must not be nil"},
		{"blank name", &types.Student{Name: "  ", Phone: "13800138000"}, "invalid student data: field name must not be blank"},
		{"blank both", &types.Student{}, "invalid student data: field name must not be blank, field phone must not be blank"},
		{"negative id", &types.Student{ID: -3, Name: "a", Phone: "b"}, "invalid student data: field id must not be negative"},
		{"largest id", &types.Student{ID: MaxID, Name: "a", Phone: "b"}, ""},
		{"id past limit", &types.Student{ID: math.MaxInt64, Name: "a", Phone: "b"}, "invalid student data: field id must not exceed 9223372036854775806"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNew(tt.in)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidData)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestValidateExisting(t *testing.T) {
	require.NoError(t, ValidateExisting(&types.Student{ID: 1, Name: "a", Phone: "b"}))

	err := ValidateExisting(&types.Student{Name: "a", Phone: "b"})
	require.ErrorIs(t, err, ErrInvalidData)
	assert.EqualError(t, err, "invalid student data: field id is required")

	require.ErrorIs(t, ValidateExisting(nil), ErrInvalidData)
	require.ErrorIs(t, ValidateExisting(&types.Student{ID: 1, Name: "a"}), ErrInvalidData)
}

func TestValidateID(t *testing.T) {
	require.NoError(t, ValidateID(1))
	require.ErrorIs(t, ValidateID(0), ErrInvalidData)
	require.ErrorIs(t, ValidateID(-1), ErrInvalidData)
}

func TestErrorKindsAreDistinct(t *testing.T) {
	nf := NotFound(42)
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.NotErrorIs(t, nf, ErrInvalidData)
	assert.EqualError(t, nf, "student not found: id 42")

	assert.ErrorIs(t, IDsExhausted(), ErrInvalidData)

	dup := DuplicateID(42)
	assert.ErrorIs(t, dup, ErrInvalidData)
	assert.NotErrorIs(t, dup, ErrNotFound)
}

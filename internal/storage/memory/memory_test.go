package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/storagetest"
	"github.com/aanand-mishra/student-records/internal/types"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return New()
	})
}

func TestModifyReturnsCopy(t *testing.T) {
	s := New()
	added, err := s.AddStudent(&types.Student{Name: "王五", Phone: "13700137000"})
	require.NoError(t, err)

	got, err := s.ModifyStudent(&types.Student{ID: added.ID, Name: "王五五", Phone: "13700137001"})
	require.NoError(t, err)
	got.Name = "outside"

	assert.Equal(t, "王五五", s.students[0].Name)
}

func TestDeleteKeepsOrder(t *testing.T) {
	s := New()
	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := s.AddStudent(&types.Student{Name: name, Phone: "110"})
		require.NoError(t, err)
	}
	require.NoError(t, s.DeleteStudent(2))

	list, err := s.ListStudents()
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, st := range list {
		names = append(names, st.Name)
	}
	assert.Equal(t, []string{"a", "c", "d"}, names)
	assert.Equal(t, int64(5), s.nextID)
}

// Package storagetest holds the behavioural test suite every
// storage.Storage backend must pass. Backends call Run from their own
// _test.go files.
package storagetest

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Factory builds a fresh, empty store for one subtest.
type Factory func(t *testing.T) storage.Storage

// Run executes the full suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Storage)
	}{
		{"AddAssignsSequentialIDs", testAddAssignsSequentialIDs},
		{"AddThenFindRoundTrips", testAddThenFindRoundTrips},
		{"AddRejectsInvalidData", testAddRejectsInvalidData},
		{"AddExplicitID", testAddExplicitID},
		{"AddExplicitIDAtLimit", testAddExplicitIDAtLimit},
		{"AddCopiesInput", testAddCopiesInput},
		{"DeleteThenFind", testDeleteThenFind},
		{"DeleteErrors", testDeleteErrors},
		{"ModifyKeepsID", testModifyKeepsID},
		{"ModifyErrors", testModifyErrors},
		{"FindErrors", testFindErrors},
		{"ListIsSnapshotInInsertionOrder", testListSnapshot},
		{"ListCountTracksAddsAndDeletes", testListCount},
		{"ClearResetsCounter", testClearResetsCounter},
		{"Scenario", testScenario},
		{"ConcurrentAddsGetUniqueIDs", testConcurrentAdds},
		{"ConcurrentModifyAndRead", testConcurrentModify},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

func mustAdd(t *testing.T, s storage.Storage, name, phone string) types.Student {
	t.Helper()
	got, err := s.AddStudent(&types.Student{Name: name, Phone: phone})
	require.NoError(t, err)
	return got
}

func testAddAssignsSequentialIDs(t *testing.T, s storage.Storage) {
	var last int64
	for i := 0; i < 5; i++ {
		got := mustAdd(t, s, fmt.Sprintf("student-%d", i), "13800138000")
		assert.Greater(t, got.ID, last)
		last = got.ID
	}
	assert.Equal(t, int64(5), last)
}

func testAddThenFindRoundTrips(t *testing.T, s storage.Storage) {
	// Surrounding whitespace is allowed and preserved.
	in := &types.Student{Name: " 张三 ", Phone: "13800138000"}
	added, err := s.AddStudent(in)
	require.NoError(t, err)

	found, err := s.FindStudent(added.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Name, found.Name)
	assert.Equal(t, in.Phone, found.Phone)
	assert.Equal(t, added, found)
}

func testAddRejectsInvalidData(t *testing.T, s storage.Storage) {
	tests := []struct {
		name string
		in   *types.Student
	}{
		{"nil", nil},
		{"empty name", &types.Student{Name: "", Phone: "13800138000"}},
		{"blank name", &types.Student{Name: " \t ", Phone: "13800138000"}},
		{"empty phone", &types.Student{Name: "张三", Phone: ""}},
		{"blank phone", &types.Student{Name: "张三", Phone: "   "}},
		{"negative id", &types.Student{ID: -1, Name: "张三", Phone: "13800138000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddStudent(tt.in)
			require.ErrorIs(t, err, storage.ErrInvalidData)
			assert.NotErrorIs(t, err, storage.ErrNotFound)
		})
	}

	list, err := s.ListStudents()
	require.NoError(t, err)
	assert.Empty(t, list)

	// Rejected adds must not consume ids.
	assert.Equal(t, int64(1), mustAdd(t, s, "张三", "13800138000").ID)
}

func testAddExplicitID(t *testing.T, s storage.Storage) {
	got, err := s.AddStudent(&types.Student{ID: 10, Name: "王五", Phone: "13700137000"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)

	_, err = s.AddStudent(&types.Student{ID: 10, Name: "赵六", Phone: "13600136000"})
	require.ErrorIs(t, err, storage.ErrInvalidData)

	// The counter skips past explicit ids.
	assert.Equal(t, int64(11), mustAdd(t, s, "孙七", "13500135000").ID)

	// A lower explicit id is fine as long as it is free.
	got, err = s.AddStudent(&types.Student{ID: 3, Name: "周八", Phone: "13400134000"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, int64(12), mustAdd(t, s, "吴九", "13300133000").ID)
}

func testAddExplicitIDAtLimit(t *testing.T, s storage.Storage) {
	_, err := s.AddStudent(&types.Student{ID: math.MaxInt64, Name: "张三", Phone: "13800138000"})
	require.ErrorIs(t, err, storage.ErrInvalidData)

	top, err := s.AddStudent(&types.Student{ID: storage.MaxID, Name: "李四", Phone: "13900139000"})
	require.NoError(t, err)
	assert.Equal(t, storage.MaxID, top.ID)

	// The counter is now past MaxID: assigned ids run out instead of wrapping.
	_, err = s.AddStudent(&types.Student{Name: "王五", Phone: "13700137000"})
	require.ErrorIs(t, err, storage.ErrInvalidData)

	// Explicit free ids still work, and the top record stays reachable.
	low, err := s.AddStudent(&types.Student{ID: 7, Name: "赵六", Phone: "13600136000"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), low.ID)

	found, err := s.FindStudent(storage.MaxID)
	require.NoError(t, err)
	assert.Equal(t, top, found)

	list, err := s.ListStudents()
	require.NoError(t, err)
	for _, st := range list {
		assert.Positive(t, st.ID)
	}
	assert.Len(t, list, 2)

	require.NoError(t, s.DeleteStudent(storage.MaxID))
	require.NoError(t, s.ClearStudents())
	assert.Equal(t, int64(1), mustAdd(t, s, "孙七", "13500135000").ID)
}

func testAddCopiesInput(t *testing.T, s storage.Storage) {
	in := &types.Student{Name: "李四", Phone: "13900139000"}
	added, err := s.AddStudent(in)
	require.NoError(t, err)
	assert.Zero(t, in.ID, "input must not be mutated")

	in.Name = "changed"
	added.Name = "changed too"

	found, err := s.FindStudent(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "李四", found.Name)
}

func testDeleteThenFind(t *testing.T, s storage.Storage) {
	a := mustAdd(t, s, "周八", "13400134000")
	require.NoError(t, s.DeleteStudent(a.ID))

	_, err := s.FindStudent(a.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	list, err := s.ListStudents()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testDeleteErrors(t *testing.T, s storage.Storage) {
	err := s.DeleteStudent(0)
	require.ErrorIs(t, err, storage.ErrInvalidData)

	err = s.DeleteStudent(999)
	require.ErrorIs(t, err, storage.ErrNotFound)

	a := mustAdd(t, s, "周八", "13400134000")
	require.NoError(t, s.DeleteStudent(a.ID))
	require.ErrorIs(t, s.DeleteStudent(a.ID), storage.ErrNotFound)
}

func testModifyKeepsID(t *testing.T, s storage.Storage) {
	a := mustAdd(t, s, "王五", "13700137000")
	b := mustAdd(t, s, "赵六", "13600136000")

	got, err := s.ModifyStudent(&types.Student{ID: a.ID, Name: "王五五", Phone: "13700137001"})
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: a.ID, Name: "王五五", Phone: "13700137001"}, got)

	found, err := s.FindStudent(a.ID)
	require.NoError(t, err)
	assert.Equal(t, got, found)

	// Untouched neighbour, unchanged order.
	list, err := s.ListStudents()
	require.NoError(t, err)
	assert.Equal(t, []types.Student{got, b}, list)
}

func testModifyErrors(t *testing.T, s storage.Storage) {
	a := mustAdd(t, s, "孙七", "13500135000")

	tests := []struct {
		name    string
		in      *types.Student
		wantErr error
	}{
		{"nil", nil, storage.ErrInvalidData},
		{"missing id", &types.Student{Name: "孙七", Phone: "13500135000"}, storage.ErrInvalidData},
		{"blank name", &types.Student{ID: a.ID, Name: "", Phone: "13500135000"}, storage.ErrInvalidData},
		{"blank phone", &types.Student{ID: a.ID, Name: "孙七", Phone: " "}, storage.ErrInvalidData},
		{"unknown id", &types.Student{ID: 999, Name: "赵六", Phone: "13600136000"}, storage.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ModifyStudent(tt.in)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	found, err := s.FindStudent(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, found, "failed modifies must leave the record alone")
}

func testFindErrors(t *testing.T, s storage.Storage) {
	_, err := s.FindStudent(0)
	require.ErrorIs(t, err, storage.ErrInvalidData)

	_, err = s.FindStudent(-5)
	require.ErrorIs(t, err, storage.ErrInvalidData)

	_, err = s.FindStudent(999)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func testListSnapshot(t *testing.T, s storage.Storage) {
	list, err := s.ListStudents()
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Empty(t, list)

	a := mustAdd(t, s, "学生1", "13100131000")
	b, err := s.AddStudent(&types.Student{ID: 50, Name: "学生2", Phone: "13200132000"})
	require.NoError(t, err)
	c := mustAdd(t, s, "学生3", "13300133000")

	list, err = s.ListStudents()
	require.NoError(t, err)
	assert.Equal(t, []types.Student{a, b, c}, list)

	list[0].Name = "mutated"
	_ = append(list[:1], list[2:]...)

	again, err := s.ListStudents()
	require.NoError(t, err)
	assert.Equal(t, []types.Student{a, b, c}, again)
}

func testListCount(t *testing.T, s storage.Storage) {
	var ids []int64
	for i := 0; i < 6; i++ {
		ids = append(ids, mustAdd(t, s, fmt.Sprintf("s%d", i), "110").ID)
	}
	require.NoError(t, s.DeleteStudent(ids[1]))
	require.NoError(t, s.DeleteStudent(ids[4]))
	require.ErrorIs(t, s.DeleteStudent(ids[4]), storage.ErrNotFound)

	list, err := s.ListStudents()
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func testClearResetsCounter(t *testing.T, s storage.Storage) {
	mustAdd(t, s, "学生A", "11111111111")
	mustAdd(t, s, "学生B", "22222222222")
	_, err := s.AddStudent(&types.Student{ID: 40, Name: "学生C", Phone: "33333333333"})
	require.NoError(t, err)

	require.NoError(t, s.ClearStudents())

	list, err := s.ListStudents()
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.Equal(t, int64(1), mustAdd(t, s, "学生D", "44444444444").ID)

	// Clearing an empty store is fine too.
	require.NoError(t, s.ClearStudents())
	require.NoError(t, s.ClearStudents())
}

func testScenario(t *testing.T, s storage.Storage) {
	zhang := mustAdd(t, s, "张三", "13800138000")
	li := mustAdd(t, s, "李四", "13900139000")
	assert.Equal(t, int64(1), zhang.ID)
	assert.Equal(t, int64(2), li.ID)

	require.NoError(t, s.DeleteStudent(1))

	_, err := s.FindStudent(1)
	require.ErrorIs(t, err, storage.ErrNotFound)

	list, err := s.ListStudents()
	require.NoError(t, err)
	assert.Equal(t, []types.Student{{ID: 2, Name: "李四", Phone: "13900139000"}}, list)
}

func testConcurrentAdds(t *testing.T, s storage.Storage) {
	const workers, perWorker = 8, 25

	var wg sync.WaitGroup
	ids := make(chan int64, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				got, err := s.AddStudent(&types.Student{
					Name:  fmt.Sprintf("w%d-%d", w, i),
					Phone: "13800138000",
				})
				if err != nil {
					t.Errorf("AddStudent: %v", err)
					return
				}
				ids <- got.ID
			}
		}(w)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, workers*perWorker)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)

	list, err := s.ListStudents()
	require.NoError(t, err)
	assert.Len(t, list, workers*perWorker)
}

func testConcurrentModify(t *testing.T, s storage.Storage) {
	a := mustAdd(t, s, "王五", "13700137000")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if _, err := s.ModifyStudent(&types.Student{
				ID:    a.ID,
				Name:  fmt.Sprintf("name-%d", i),
				Phone: fmt.Sprintf("phone-%d", i),
			}); err != nil {
				t.Errorf("ModifyStudent: %v", err)
			}
		}(i)
		go func() {
			defer wg.Done()
			if _, err := s.FindStudent(a.ID); err != nil {
				t.Errorf("FindStudent: %v", err)
			}
		}()
	}
	wg.Wait()

	// Each modify writes name and phone together; a torn pair would mean
	// two writers interleaved.
	got, err := s.FindStudent(a.ID)
	require.NoError(t, err)
	var n, p int
	_, err = fmt.Sscanf(got.Name, "name-%d", &n)
	require.NoError(t, err)
	_, err = fmt.Sscanf(got.Phone, "phone-%d", &p)
	require.NoError(t, err)
	assert.Equal(t, n, p)
	assert.Equal(t, a.ID, got.ID)
}

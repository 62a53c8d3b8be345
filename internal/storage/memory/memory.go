// Package memory provides the in-process implementation of the
// storage.Storage interface: an insertion-ordered slice of students and
// an id counter, both guarded by one mutex.
package memory

import (
	"sync"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// firstID is the value the id counter starts from and is reset to.
const firstID int64 = 1

// Store is the in-memory student store. The zero value is not usable;
// construct one with New.
type Store struct {
	mu       sync.RWMutex
	students []types.Student
	nextID   int64
}

// New returns an empty store whose counter starts at 1.
func New() *Store {
	return &Store{
		students: make([]types.Student, 0),
		nextID:   firstID,
	}
}

// AddStudent validates s, assigns an id when s.ID is zero, and appends a
// copy. An explicit id must not be held by a live record; the counter is
// moved past it so later assigned ids stay unique.
func (s *Store) AddStudent(student *types.Student) (types.Student, error) {
	if err := storage.ValidateNew(student); err != nil {
		return types.Student{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *student
	if rec.ID == 0 {
		if s.nextID > storage.MaxID {
			return types.Student{}, storage.IDsExhausted()
		}
		rec.ID = s.nextID
		s.nextID++
	} else {
		if s.indexOf(rec.ID) >= 0 {
			return types.Student{}, storage.DuplicateID(rec.ID)
		}
		if rec.ID >= s.nextID {
			s.nextID = rec.ID + 1
		}
	}

	s.students = append(s.students, rec)
	return rec, nil
}

// DeleteStudent removes the record with the given id, keeping the order of
// the remaining records.
func (s *Store) DeleteStudent(id int64) error {
	if err := storage.ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return storage.NotFound(id)
	}
	s.students = append(s.students[:i], s.students[i+1:]...)
	return nil
}

// ModifyStudent overwrites name and phone of the record with id student.ID.
func (s *Store) ModifyStudent(student *types.Student) (types.Student, error) {
	if err := storage.ValidateExisting(student); err != nil {
		return types.Student{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(student.ID)
	if i < 0 {
		return types.Student{}, storage.NotFound(student.ID)
	}
	s.students[i].Name = student.Name
	s.students[i].Phone = student.Phone
	return s.students[i], nil
}

// FindStudent returns a copy of the record with the given id.
func (s *Store) FindStudent(id int64) (types.Student, error) {
	if err := storage.ValidateID(id); err != nil {
		return types.Student{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return types.Student{}, storage.NotFound(id)
	}
	return s.students[i], nil
}

// ListStudents returns an independent copy of all records.
func (s *Store) ListStudents() ([]types.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Student, len(s.students))
	copy(out, s.students)
	return out, nil
}

// ClearStudents drops every record and resets the counter.
func (s *Store) ClearStudents() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.students = make([]types.Student, 0)
	s.nextID = firstID
	return nil
}

// indexOf returns the slice position of id, or -1. Callers hold mu.
func (s *Store) indexOf(id int64) int {
	for i := range s.students {
		if s.students[i].ID == id {
			return i
		}
	}
	return -1
}

var _ storage.Storage = (*Store)(nil)

// Package storage defines the Storage interface, the contract every
// student store backend must satisfy, together with the two error kinds
// callers are expected to handle.
//
// Handlers, the CLI and the logging decorator depend only on this
// interface, so the in-memory store, the sqlite-backed store and any
// wrapper around them are interchangeable.
package storage

import (
	"errors"
	"fmt"
	"math"

	"github.com/aanand-mishra/student-records/internal/types"
)

// The two failure kinds a store reports. Both are caller-correctable
// precondition violations; match them with errors.Is.
var (
	// ErrInvalidData: nil record, blank name or phone, or a missing or
	// malformed id.
	ErrInvalidData = errors.New("invalid student data")

	// ErrNotFound: the id refers to no live record.
	ErrNotFound = errors.New("student not found")
)

// Storage is the student store contract.
// Implementations must be safe for concurrent use.
type Storage interface {
	// AddStudent validates s and stores a copy of it. When s.ID is zero
	// the store assigns the next id from its counter. Returns the stored
	// record with its id populated.
	AddStudent(s *types.Student) (types.Student, error)

	// DeleteStudent removes the record with the given id.
	DeleteStudent(id int64) error

	// ModifyStudent overwrites the name and phone of the record whose id
	// is s.ID. The id itself never changes. Returns the updated record.
	ModifyStudent(s *types.Student) (types.Student, error)

	// FindStudent returns the record with the given id.
	FindStudent(id int64) (types.Student, error)

	// ListStudents returns a snapshot of every record in insertion order.
	// Returns an empty slice (not nil) if there are no students.
	ListStudents() ([]types.Student, error)

	// ClearStudents removes every record and resets the id counter to 1.
	ClearStudents() error
}

// MaxID is the largest id a record may hold. It matches the lte bound on
// types.Student.ID.
const MaxID int64 = math.MaxInt64 - 1

// IDsExhausted returns an ErrInvalidData for an add that needs an assigned
// id after the counter has passed MaxID.
func IDsExhausted() error {
	return fmt.Errorf("%w: no ids left above %d; supply an explicit free id", ErrInvalidData, MaxID)
}

// NotFound returns an ErrNotFound carrying the missing id.
func NotFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// DuplicateID returns an ErrInvalidData for an explicit id that is
// already held by a live record.
func DuplicateID(id int64) error {
	return fmt.Errorf("%w: id %d is already in use", ErrInvalidData, id)
}

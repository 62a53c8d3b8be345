// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage backends, and the logging decorator can all import
// types without depending on each other.
package types

import "fmt"

// Student represents a student record held by a store.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  controls how the field appears when encoded to JSON.
//
//  2. validate:"..." holds rules checked by the go-playground/validator
//     package. "notblank" rejects empty and whitespace-only strings;
//     "gte=0" rejects negative ids (zero means "not assigned yet");
//     "lte" caps ids one below math.MaxInt64 so the counter, always one
//     past the highest id, still fits in an int64.
type Student struct {
	ID    int64  `json:"id"    validate:"gte=0,lte=9223372036854775806"`
	Name  string `json:"name"  validate:"notblank"`
	Phone string `json:"phone" validate:"notblank"`
}

// String renders the student the way it shows up in log lines.
func (s Student) String() string {
	return fmt.Sprintf("Student{id=%d, name=%q, phone=%q}", s.ID, s.Name, s.Phone)
}

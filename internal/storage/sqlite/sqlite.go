// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The database lives in process memory (":memory:"); nothing is written
// to disk. The pool is limited to a single connection: every new
// connection to ":memory:" would otherwise open a fresh, empty database,
// and one connection also means transactions run one at a time.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the sqlite-backed implementation of storage.Storage.
type SQLite struct {
	Db *sql.DB
}

// New opens an in-memory SQLite database, creates the schema and returns
// a ready-to-use *SQLite.
func New() (*SQLite, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// One connection, never recycled: closing it would drop the database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	// seq keeps insertion order; id is the caller-visible identifier and
	// may be supplied explicitly, so it cannot double as the rowid.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			seq   INTEGER PRIMARY KEY AUTOINCREMENT,
			id    INTEGER NOT NULL UNIQUE,
			name  TEXT    NOT NULL,
			phone TEXT    NOT NULL
		);
		CREATE TABLE IF NOT EXISTS id_counter (
			next_id INTEGER NOT NULL
		);
		INSERT INTO id_counter (next_id)
			SELECT 1 WHERE NOT EXISTS (SELECT 1 FROM id_counter);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create schema: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the database. All records are lost.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// AddStudent inserts a student, reading and advancing the id counter in
// the same transaction.
func (s *SQLite) AddStudent(student *types.Student) (types.Student, error) {
	if err := storage.ValidateNew(student); err != nil {
		return types.Student{}, err
	}

	tx, err := s.Db.Begin()
	if err != nil {
		return types.Student{}, fmt.Errorf("AddStudent: begin: %w", err)
	}
	defer tx.Rollback()

	rec := *student
	if rec.ID == 0 {
		if err := tx.QueryRow("SELECT next_id FROM id_counter").Scan(&rec.ID); err != nil {
			return types.Student{}, fmt.Errorf("AddStudent: read counter: %w", err)
		}
		if rec.ID > storage.MaxID {
			return types.Student{}, storage.IDsExhausted()
		}
	} else {
		var n int
		if err := tx.QueryRow("SELECT COUNT(*) FROM students WHERE id = ?", rec.ID).Scan(&n); err != nil {
			return types.Student{}, fmt.Errorf("AddStudent: check id: %w", err)
		}
		if n > 0 {
			return types.Student{}, storage.DuplicateID(rec.ID)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO students (id, name, phone) VALUES (?, ?, ?)",
		rec.ID, rec.Name, rec.Phone,
	); err != nil {
		return types.Student{}, fmt.Errorf("AddStudent: insert: %w", err)
	}

	// max() keeps the counter ahead of explicit ids as well as assigned ones.
	if _, err := tx.Exec(
		"UPDATE id_counter SET next_id = max(next_id, ? + 1)", rec.ID,
	); err != nil {
		return types.Student{}, fmt.Errorf("AddStudent: advance counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return types.Student{}, fmt.Errorf("AddStudent: commit: %w", err)
	}
	return rec, nil
}

// DeleteStudent removes a student row by id.
func (s *SQLite) DeleteStudent(id int64) error {
	if err := storage.ValidateID(id); err != nil {
		return err
	}

	result, err := s.Db.Exec("DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteStudent: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudent: rows affected: %w", err)
	}
	if n == 0 {
		return storage.NotFound(id)
	}
	return nil
}

// ModifyStudent updates name and phone and re-reads the row inside one
// transaction, so the returned record is exactly what was written.
func (s *SQLite) ModifyStudent(student *types.Student) (types.Student, error) {
	if err := storage.ValidateExisting(student); err != nil {
		return types.Student{}, err
	}

	tx, err := s.Db.Begin()
	if err != nil {
		return types.Student{}, fmt.Errorf("ModifyStudent: begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"UPDATE students SET name = ?, phone = ? WHERE id = ?",
		student.Name, student.Phone, student.ID,
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("ModifyStudent: exec: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return types.Student{}, fmt.Errorf("ModifyStudent: rows affected: %w", err)
	}
	if n == 0 {
		return types.Student{}, storage.NotFound(student.ID)
	}

	updated, err := scanOne(tx.QueryRow(
		"SELECT id, name, phone FROM students WHERE id = ?", student.ID,
	), student.ID)
	if err != nil {
		return types.Student{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Student{}, fmt.Errorf("ModifyStudent: commit: %w", err)
	}
	return updated, nil
}

// FindStudent fetches exactly one student row by id.
func (s *SQLite) FindStudent(id int64) (types.Student, error) {
	if err := storage.ValidateID(id); err != nil {
		return types.Student{}, err
	}
	return scanOne(s.Db.QueryRow(
		"SELECT id, name, phone FROM students WHERE id = ? LIMIT 1", id,
	), id)
}

// ListStudents returns all rows in insertion order.
func (s *SQLite) ListStudents() ([]types.Student, error) {
	rows, err := s.Db.Query("SELECT id, name, phone FROM students ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("ListStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var student types.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.Phone); err != nil {
			return nil, fmt.Errorf("ListStudents: scan row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStudents: rows iteration: %w", err)
	}
	return students, nil
}

// ClearStudents deletes every row and resets both the id counter and the
// insertion sequence.
func (s *SQLite) ClearStudents() error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("ClearStudents: begin: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM students",
		"DELETE FROM sqlite_sequence WHERE name = 'students'",
		"UPDATE id_counter SET next_id = 1",
	} {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("ClearStudents: exec %q: %w", q, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ClearStudents: commit: %w", err)
	}
	return nil
}

// scanOne reads a single (id, name, phone) row, mapping sql.ErrNoRows to
// storage.ErrNotFound.
func scanOne(row *sql.Row, id int64) (types.Student, error) {
	var student types.Student
	err := row.Scan(&student.ID, &student.Name, &student.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, storage.NotFound(id)
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("scan student %d: %w", id, err)
	}
	return student, nil
}

var _ storage.Storage = (*SQLite)(nil)

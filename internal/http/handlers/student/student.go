// Package student contains the HTTP handlers for the Student resource.
//
// Each exported function is a factory: it receives the store once at
// route registration and returns the http.HandlerFunc that serves every
// request, closing over the store.
//
//	router.HandleFunc("POST /api/students", student.New(store))
//
// Handlers only decode input and map outcomes to status codes; all
// validation lives in the store.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

// Register wires every student route onto mux.
func Register(mux *http.ServeMux, store storage.Storage) {
	mux.HandleFunc("POST /api/students", New(store))
	mux.HandleFunc("GET /api/students", GetList(store))
	mux.HandleFunc("DELETE /api/students", Clear(store))
	mux.HandleFunc("GET /api/students/{id}", GetByID(store))
	mux.HandleFunc("PUT /api/students/{id}", Update(store))
	mux.HandleFunc("DELETE /api/students/{id}", Delete(store))
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
//	{ "name": "张三", "phone": "13800138000" }
//
// 201 with the stored student (id assigned unless the body carries one).
// 400 on an empty or malformed body, or data the store rejects.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		created, err := store.AddStudent(student)
		if err != nil {
			writeStoreError(w, "error creating student", err)
			return
		}

		slog.Info("student created", slog.Int64("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
// 200 with the student, 400 for a malformed id, 404 if there is none.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a student", slog.Int64("id", id))

		student, err := store.FindStudent(id)
		if err != nil {
			writeStoreError(w, "error getting student", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
//
// 200 with every student in insertion order; [] when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.ListStudents()
		if err != nil {
			writeStoreError(w, "error getting students", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
//
//	{ "name": "王五五", "phone": "13700137001" }
//
// The path id wins over any id in the body; ids are immutable.
// 200 with the updated student, 400 on bad input, 404 if there is none.
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a student", slog.Int64("id", id))

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}
		student.ID = id

		updated, err := store.ModifyStudent(student)
		if err != nil {
			writeStoreError(w, "error updating student", err)
			return
		}

		slog.Info("student updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
//
// 200 { "status": "deleted" }, 400 for a malformed id, 404 if there is none.
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a student", slog.Int64("id", id))

		if err := store.DeleteStudent(id); err != nil {
			writeStoreError(w, "error deleting student", err)
			return
		}

		slog.Info("student deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.Status(response.StatusDeleted))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Clear handles DELETE /api/students
//
// Drops every student and resets id assignment to 1.
// 200 { "status": "cleared" }.
// ─────────────────────────────────────────────────────────────────────────────
func Clear(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("clearing all students")

		if err := store.ClearStudents(); err != nil {
			writeStoreError(w, "error clearing students", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.Status(response.StatusCleared))
	}
}

// StatusFor maps a store error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrInvalidData):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeStoreError(w http.ResponseWriter, msg string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(msg, slog.String("error", err.Error()))
	} else {
		slog.Info(msg, slog.String("error", err.Error()))
	}
	response.WriteJSON(w, status, response.GeneralError(err))
}

// pathID parses the {id} segment. On failure it has already written a 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid id: must be an integer")))
		return 0, false
	}
	return id, true
}

// decodeStudent reads the JSON body. On failure it has already written a 400.
func decodeStudent(w http.ResponseWriter, r *http.Request) (*types.Student, bool) {
	var student types.Student

	err := json.NewDecoder(r.Body).Decode(&student)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return nil, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return nil, false
	}
	return &student, true
}

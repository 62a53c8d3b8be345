package storage

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/aanand-mishra/student-records/internal/types"
)

// validate is shared by every backend. A *validator.Validate caches struct
// metadata and is safe for concurrent use, so one instance is enough.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON name ("name", "phone") instead of the Go
	// field name, so messages read the same in the API and in logs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("storage: register notblank validator: %v", err))
	}
	return v
}

// ValidateNew checks a record passed to AddStudent. The id may be zero.
func ValidateNew(s *types.Student) error {
	if s == nil {
		return fmt.Errorf("%w: student must not be nil", ErrInvalidData)
	}
	if err := validate.Struct(s); err != nil {
		return invalidData(err)
	}
	return nil
}

// ValidateExisting checks a record passed to ModifyStudent. Unlike
// ValidateNew, the id is required.
func ValidateExisting(s *types.Student) error {
	if s == nil {
		return fmt.Errorf("%w: student must not be nil", ErrInvalidData)
	}
	if err := validate.Var(s.ID, "required"); err != nil {
		return fmt.Errorf("%w: field id is required", ErrInvalidData)
	}
	if err := validate.Struct(s); err != nil {
		return invalidData(err)
	}
	return nil
}

// ValidateID checks an id passed to FindStudent or DeleteStudent.
func ValidateID(id int64) error {
	if err := validate.Var(id, "gt=0"); err != nil {
		return fmt.Errorf("%w: id must be a positive integer, got %d", ErrInvalidData, id)
	}
	return nil
}

// invalidData converts validator output into a single ErrInvalidData whose
// message lists every failing field.
func invalidData(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "notblank":
			msgs = append(msgs, fmt.Sprintf("field %s must not be blank", fe.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must not be negative", fe.Field()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("field %s must not exceed %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", fe.Field()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidData, strings.Join(msgs, ", "))
}

package employee

import (
	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/emprecords/pkg/constants"
)

// CreateDTO is the body of POST /create_user. Pointers distinguish a missing
// field from a zero value.
type CreateDTO struct {
	EmployeeID *int     `json:"emp_id" validate:"required"`
	Age        *int     `json:"age" validate:"required"`
	Name       *string  `json:"name" validate:"required"`
	Experience *float64 `json:"exp" validate:"required"`
	Gender     *string  `json:"gender" validate:"required"`
	Department *string  `json:"dept" validate:"required"`
	Country    *string  `json:"country" validate:"required"`
}

// UpdateDTO is the body of PUT /update_user/{emp_id}; nil fields keep their value.
type UpdateDTO struct {
	Age        *int     `json:"age,omitempty"`
	Name       *string  `json:"name,omitempty"`
	Experience *float64 `json:"exp,omitempty"`
	Gender     *string  `json:"gender,omitempty"`
	Department *string  `json:"dept,omitempty"`
	Country    *string  `json:"country,omitempty"`
}

func (d *CreateDTO) Ok() error {
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(errs, &validationErrs) {
		return errs
	}
	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, jsonName(fe.StructField()))
	}
	return &ValidationError{Fields: fields}
}

func (d *CreateDTO) ToEntity() (Employee, error) {
	if err := d.Ok(); err != nil {
		return Employee{}, err
	}
	return Employee{
		EmployeeID: *d.EmployeeID,
		Age:        *d.Age,
		Name:       *d.Name,
		Experience: *d.Experience,
		Gender:     *d.Gender,
		Department: *d.Department,
		Country:    *d.Country,
	}, nil
}

// IsEmpty reports whether the update carries no field at all.
func (d *UpdateDTO) IsEmpty() bool {
	return d == nil || (d.Age == nil && d.Name == nil && d.Experience == nil &&
		d.Gender == nil && d.Department == nil && d.Country == nil)
}

var structFieldToJSON = map[string]string{
	"EmployeeID": FieldEmployeeID,
	"Age":        FieldAge,
	"Name":       FieldName,
	"Experience": FieldExperience,
	"Gender":     FieldGender,
	"Department": FieldDepartment,
	"Country":    FieldCountry,
}

func jsonName(structField string) string {
	if name, ok := structFieldToJSON[structField]; ok {
		return name
	}
	return structField
}

package employee

const (
	FieldEmployeeID = "emp_id"
	FieldAge        = "age"
	FieldName       = "name"
	FieldExperience = "exp"
	FieldGender     = "gender"
	FieldDepartment = "dept"
	FieldCountry    = "country"
)

// Project serializes e into a map keyed by JSON field name, dropping the
// fields listed in exclude. Unknown names in exclude are ignored.
func Project(e Employee, exclude []string) map[string]any {
	out := map[string]any{
		FieldEmployeeID: e.EmployeeID,
		FieldAge:        e.Age,
		FieldName:       e.Name,
		FieldExperience: e.Experience,
		FieldGender:     e.Gender,
		FieldDepartment: e.Department,
		FieldCountry:    e.Country,
	}
	for _, field := range exclude {
		delete(out, field)
	}
	return out
}

func ProjectAll(entities []Employee, exclude []string) []map[string]any {
	out := make([]map[string]any, 0, len(entities))
	for _, e := range entities {
		out = append(out, Project(e, exclude))
	}
	return out
}

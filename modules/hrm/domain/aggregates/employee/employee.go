package employee

import "math"

// Thresholds used by the fixed filtered reads.
const (
	SeniorExperienceYears = 5.0
	KidsAgeLimit          = 15
	DefaultCountry        = "INDIA"
)

// IDInRange reports whether id fits the 32-bit emp_id column. Ids outside
// the range cannot name a stored record.
func IDInRange(id int) bool {
	return id >= math.MinInt32 && id <= math.MaxInt32
}

// Employee is the single record type kept in user_info.
type Employee struct {
	EmployeeID int     `json:"emp_id"`
	Age        int     `json:"age"`
	Name       string  `json:"name"`
	Experience float64 `json:"exp"`
	Gender     string  `json:"gender"`
	Department string  `json:"dept"`
	Country    string  `json:"country"`
}

// Apply returns a copy of e with every field set in patch overwritten.
// EmployeeID is immutable and never touched.
func (e Employee) Apply(patch *UpdateDTO) Employee {
	if patch == nil {
		return e
	}
	if patch.Age != nil {
		e.Age = *patch.Age
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Experience != nil {
		e.Experience = *patch.Experience
	}
	if patch.Gender != nil {
		e.Gender = *patch.Gender
	}
	if patch.Department != nil {
		e.Department = *patch.Department
	}
	if patch.Country != nil {
		e.Country = *patch.Country
	}
	return e
}

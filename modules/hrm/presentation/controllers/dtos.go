package controllers

type GenderQuery struct {
	Gender string `form:"gender"`
}

type NameQuery struct {
	Name string `form:"name"`
}

type EmpNameQuery struct {
	EmpName string `form:"emp_name"`
}

// EmpIDQuery keeps emp_id as text so a malformed value can be told apart
// from a missing one.
type EmpIDQuery struct {
	EmpID string `form:"emp_id"`
}

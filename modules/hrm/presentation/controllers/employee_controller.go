package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/emprecords/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/emprecords/modules/hrm/services"
	"github.com/iota-uz/emprecords/pkg/application"
	"github.com/iota-uz/emprecords/pkg/composables"
	"github.com/iota-uz/emprecords/pkg/httpapi"
	"github.com/iota-uz/emprecords/pkg/logging"
	"github.com/iota-uz/emprecords/pkg/notify"
)

// recordsRead describes the log and notification texts of a read route.
type recordsRead struct {
	handler     string
	fetched     string
	subject     string
	body        string
	failMessage string
}

var (
	allRecordsRead = recordsRead{
		handler:     "get_records",
		fetched:     "Fetched all user records successfully",
		subject:     "Records fetched",
		body:        "All user records have been successfully fetched.",
		failMessage: "Error fetching records",
	}
	customColumnsRead = recordsRead{
		handler:     "get_custom_columns",
		fetched:     "Fetched custom columns successfully",
		subject:     "Custom columns fetched",
		body:        "User records with custom columns excluded have been successfully fetched.",
		failMessage: "Error fetching custom columns",
	}
	experienceRead = recordsRead{
		handler:     "get_experience_less_than_5",
		fetched:     "Fetched users with less than 5 years of experience",
		subject:     "Records fetched",
		body:        "Users with less than 5 years of experience have been successfully fetched.",
		failMessage: "Error fetching users by experience",
	}
	countryRead = recordsRead{
		handler:     "get_users_from_india",
		fetched:     "Fetched users from INDIA",
		subject:     "Records fetched",
		body:        "Users from INDIA have been successfully fetched.",
		failMessage: "Error fetching users by country",
	}
	genderRead = recordsRead{
		handler:     "get_users_by_gender",
		fetched:     "Fetched users by gender",
		subject:     "Records fetched",
		body:        "Users filtered by gender have been successfully fetched.",
		failMessage: "Error fetching users by gender",
	}
	nameSearchRead = recordsRead{
		handler:     "get_users_by_name",
		fetched:     "Fetched users by name",
		subject:     "Records fetched",
		body:        "Users matching the name have been successfully fetched.",
		failMessage: "Error fetching users by name",
	}
	empNameRead = recordsRead{
		handler:     "get_emp_name",
		fetched:     "Fetched users by exact name",
		subject:     "Records fetched",
		body:        "Users with the given name have been successfully fetched.",
		failMessage: "Error fetching users by name",
	}
	empIDRead = recordsRead{
		handler:     "get_emp_id",
		fetched:     "Fetched user by ID",
		subject:     "Records fetched",
		body:        "User with the given ID has been successfully fetched.",
		failMessage: "Error fetching user by ID",
	}
	kidsRead = recordsRead{
		handler:     "get_kids",
		fetched:     "Fetched users younger than 15",
		subject:     "Records fetched",
		body:        "Users younger than 15 have been successfully fetched.",
		failMessage: "Error fetching kids",
	}
)

type EmployeeController struct {
	app             application.Application
	employeeService *services.EmployeeService
	notifier        notify.Notifier
	excludedColumns []string
}

// NewEmployeeController serves the employee routes. excludedColumns are the
// JSON fields dropped by /get_custom_columns.
func NewEmployeeController(app application.Application, excludedColumns []string) application.Controller {
	if excludedColumns == nil {
		excludedColumns = []string{}
	}
	return &EmployeeController{
		app:             app,
		employeeService: app.Service(services.EmployeeService{}).(*services.EmployeeService),
		notifier:        app.Notifier(),
		excludedColumns: excludedColumns,
	}
}

func (c *EmployeeController) Key() string {
	return "/employees"
}

func (c *EmployeeController) Register(r *mux.Router) {
	r.HandleFunc("/get_all_records", c.GetAllRecords).Methods(http.MethodGet)
	r.HandleFunc("/get_custom_columns", c.GetCustomColumns).Methods(http.MethodGet)
	r.HandleFunc("/create_user", c.Create).Methods(http.MethodPost)
	r.HandleFunc("/update_user/{emp_id:[0-9]+}", c.Update).Methods(http.MethodPut)
	r.HandleFunc("/delete_user/{emp_id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/get-experience-less-than-5", c.GetExperienceLessThan5).Methods(http.MethodGet)
	r.HandleFunc("/get-users-from-india", c.GetUsersFromIndia).Methods(http.MethodGet)
	r.HandleFunc("/get-users-by-gender", c.GetUsersByGender).Methods(http.MethodGet)
	r.HandleFunc("/get-users-by-name", c.GetUsersByName).Methods(http.MethodGet)
	r.HandleFunc("/get-emp-name", c.GetEmpName).Methods(http.MethodGet)
	r.HandleFunc("/get-emp-id", c.GetEmpID).Methods(http.MethodGet)
	r.HandleFunc("/get-kids", c.GetKids).Methods(http.MethodGet)
}

func (c *EmployeeController) GetAllRecords(w http.ResponseWriter, r *http.Request) {
	logger, exit := c.enter(r, allRecordsRead.handler)
	defer exit()
	c.respondRecords(w, r, logger, allRecordsRead, c.employeeService.List(r.Context()), nil)
}

func (c *EmployeeController) GetCustomColumns(w http.ResponseWriter, r *http.Request) {
	logger, exit := c.enter(r, customColumnsRead.handler)
	defer exit()
	c.respondRecords(w, r, logger, customColumnsRead, c.employeeService.List(r.Context()), c.excludedColumns)
}

func (c *EmployeeController) GetExperienceLessThan5(w http.ResponseWriter, r *http.Request) {
	logger, exit := c.enter(r, experienceRead.handler)
	defer exit()
	res := c.employeeService.ExperienceBelow(r.Context(), employee.SeniorExperienceYears)
	c.respondRecords(w, r, logger, experienceRead, res, nil)
}

func (c *EmployeeController) GetUsersFromIndia(w http.ResponseWriter, r *http.Request) {
	logger, exit := c.enter(r, countryRead.handler)
	defer exit()
	res := c.employeeService.FromCountry(r.Context(), employee.DefaultCountry)
	c.respondRecords(w, r, logger, countryRead, res, nil)
}

func (c *EmployeeController) GetUsersByGender(w http.ResponseWriter, r *http.Request) {
	logger, exit := c.enter(r, genderRead.handler)
	defer exit()

	query, err := composables.UseQuery(&GenderQuery{}, r)
	if err != nil || strings.TrimSpace(query.Gender) == "" {
		c.badRequest(w, logger, "Gender parameter is required")
		return
	}
	c.respondRecords(w, r, logger, genderRead, c.employeeService.ByGender(r.Context(), query.Gender), nil)
}

func (c *EmployeeController) GetUsersByName(w http.ResponseWriter, r *http.Request) {
	logger, exit := c.enter(r, nameSearchRead.handler)
	defer exit()

	query, err := composables.UseQuery(&NameQuery{}, r)
	if err != nil || strings.TrimSpace(query.Name) == "" {
		c.badRequest(w, logger, "Name parameter is required")
		return
	}
	c.respondRecords(w, r, logger, nameSearchRead, c.employeeService.SearchByName(r.Context(), query.Name), nil)
}

// GetEmpName matches the name exactly; a missing emp_name matches nothing.
func (c *EmployeeController) GetEmpName(w http.ResponseWriter, r *http.Request) {
	logger, exit := c.enter(r, empNameRead.handler)
	defer exit()

	query, err := composables.UseQuery(&EmpNameQuery{}, r)
	if err != nil {
		c.badRequest(w, logger, "Invalid emp_name parameter")
		return
	}
	if query.EmpName == "" {
		c.respondRecords(w, r, logger, empNameRead, services.Result[[]employee.Employee]{Value: []employee.Employee{}}, nil)
		return
	}
	c.respondRecords(w, r, logger, empNameRead, c.employeeService.ByName(r.Context(), query.EmpName), nil)
}

// GetEmpID returns a zero- or one-element list. A missing emp_id matches
// nothing; a value that is not an integer is rejected.
func (c *EmployeeController) GetEmpID(w http.ResponseWriter, r *http.Request) {
	logger, exit := c.enter(r, empIDRead.handler)
	defer exit()

	query, err := composables.UseQuery(&EmpIDQuery{}, r)
	if err != nil {
		c.badRequest(w, logger, "Invalid emp_id parameter")
		return
	}
	if query.EmpID == "" {
		c.respondRecords(w, r, logger, empIDRead, services.Result[[]employee.Employee]{Value: []employee.Employee{}}, nil)
		return
	}
	id, err := strconv.Atoi(query.EmpID)
	if err != nil {
		c.badRequest(w, logger, "emp_id must be an integer")
		return
	}
	c.respondRecords(w, r, logger, empIDRead, c.employeeService.ByID(r.Context(), id), nil)
}

func (c *EmployeeController) GetKids(w http.ResponseWriter, r *http.Request) {
	logger, exit := c.enter(r, kidsRead.handler)
	defer exit()
	c.respondRecords(w, r, logger, kidsRead, c.employeeService.YoungerThan(r.Context(), employee.KidsAgeLimit), nil)
}

func (c *EmployeeController) Create(w http.ResponseWriter, r *http.Request) {
	logger, exit := c.enter(r, "create_user")
	defer exit()

	dto, err := composables.UseJSON(&employee.CreateDTO{}, r)
	if err != nil {
		c.failure(w, r, logger, "Error creating user", err)
		return
	}
	res := c.employeeService.Create(r.Context(), dto)
	if res.Status != services.StatusOK {
		c.failure(w, r, logger, "Error creating user", res.Err)
		return
	}

	logger.Info(fmt.Sprintf("User %s created successfully", res.Value.Name))
	c.notifier.NotifySuccess(r.Context(), "User created",
		fmt.Sprintf("User %s has been created successfully.", res.Value.Name))
	c.write(w, logger, http.StatusCreated, &httpapi.MessageBody{Message: "User created successfully"})
}

func (c *EmployeeController) Update(w http.ResponseWriter, r *http.Request) {
	logger, exit := c.enter(r, "update_user")
	defer exit()

	id, err := pathID(r)
	if err != nil {
		c.badRequest(w, logger, "emp_id must be an integer")
		return
	}
	dto, err := composables.UseJSON(&employee.UpdateDTO{}, r)
	if err != nil {
		c.failure(w, r, logger, "Error updating user", err)
		return
	}

	res := c.employeeService.Update(r.Context(), id, dto)
	switch res.Status {
	case services.StatusNotFound:
		c.notFound(w, logger, id)
	case services.StatusError:
		c.failure(w, r, logger, "Error updating user", res.Err)
	default:
		logger.Info(fmt.Sprintf("User %d updated successfully", id))
		c.notifier.NotifySuccess(r.Context(), "User updated",
			fmt.Sprintf("User with ID %d has been updated successfully.", id))
		c.write(w, logger, http.StatusOK, &httpapi.MessageBody{Message: "User updated successfully"})
	}
}

func (c *EmployeeController) Delete(w http.ResponseWriter, r *http.Request) {
	logger, exit := c.enter(r, "delete_user")
	defer exit()

	id, err := pathID(r)
	if err != nil {
		c.badRequest(w, logger, "emp_id must be an integer")
		return
	}

	res := c.employeeService.Delete(r.Context(), id)
	switch res.Status {
	case services.StatusNotFound:
		c.notFound(w, logger, id)
	case services.StatusError:
		c.failure(w, r, logger, "Error deleting user", res.Err)
	default:
		logger.Info(fmt.Sprintf("User %d deleted successfully", id))
		c.notifier.NotifySuccess(r.Context(), "User deleted",
			fmt.Sprintf("User with ID %d has been deleted successfully.", id))
		c.write(w, logger, http.StatusOK, &httpapi.MessageBody{Message: "User deleted successfully"})
	}
}

// enter logs the start of a handler and returns the matching exit logger.
func (c *EmployeeController) enter(r *http.Request, handler string) (*logrus.Entry, func()) {
	logger := composables.UseLogger(r.Context()).WithField("handler", handler)
	logger.Info(fmt.Sprintf("Entering %s function", handler))
	return logger, func() {
		logger.Info(fmt.Sprintf("Exiting %s function", handler))
	}
}

func (c *EmployeeController) respondRecords(
	w http.ResponseWriter,
	r *http.Request,
	logger logging.Logger,
	read recordsRead,
	res services.Result[[]employee.Employee],
	exclude []string,
) {
	if res.Status != services.StatusOK {
		c.failure(w, r, logger, read.failMessage, res.Err)
		return
	}
	logger.Info(read.fetched)
	c.notifier.NotifySuccess(r.Context(), read.subject, read.body)
	if exclude != nil {
		c.write(w, logger, http.StatusOK, employee.ProjectAll(res.Value, exclude))
		return
	}
	c.write(w, logger, http.StatusOK, res.Value)
}

func (c *EmployeeController) failure(w http.ResponseWriter, r *http.Request, logger logging.Logger, message string, err error) {
	if err == nil {
		err = errors.New(strings.ToLower(message))
	}
	logger.Error(fmt.Sprintf("%s: %v", message, err))
	c.notifier.NotifyFailure(r.Context(), message, err.Error())
	if wErr := httpapi.WriteFailure(w, http.StatusInternalServerError, message, err); wErr != nil {
		logger.Error(fmt.Sprintf("failed to write response: %v", wErr))
	}
}

func (c *EmployeeController) notFound(w http.ResponseWriter, logger logging.Logger, id int) {
	logger.Warn(fmt.Sprintf("User with ID %d not found", id))
	c.write(w, logger, http.StatusNotFound, &httpapi.MessageBody{Message: "User not found"})
}

func (c *EmployeeController) badRequest(w http.ResponseWriter, logger logging.Logger, message string) {
	logger.Warn(message)
	c.write(w, logger, http.StatusBadRequest, &httpapi.MessageBody{Message: message})
}

func (c *EmployeeController) write(w http.ResponseWriter, logger logging.Logger, status int, payload any) {
	if err := httpapi.WriteJSON(w, status, payload); err != nil {
		logger.Error(fmt.Sprintf("failed to write response: %v", err))
	}
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["emp_id"])
}

package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/emprecords/pkg/application"
	"github.com/iota-uz/emprecords/pkg/httpapi"
)

const documentation = `
Employee records service

Manages employee records stored in the user_info table. Every response is JSON.

Endpoints:
    GET    /get_all_records                  All employee records.
    GET    /get_custom_columns               All records without the columns listed in HRM_EXCLUDED_COLUMNS.
    POST   /create_user                      Create a record. Body: emp_id, age, name, exp, gender, dept, country (all required).
    PUT    /update_user/<emp_id>             Update any subset of age, name, exp, gender, dept, country.
    DELETE /delete_user/<emp_id>             Delete a record.
    GET    /get-experience-less-than-5       Records with exp strictly below 5.
    GET    /get-users-from-india             Records with country INDIA.
    GET    /get-users-by-gender?gender=      Records with the given gender. gender is required.
    GET    /get-users-by-name?name=          Records whose name contains the value, ignoring case. name is required.
    GET    /get-emp-name?emp_name=           Records whose name equals the value.
    GET    /get-emp-id?emp_id=               The record with the given emp_id, as a list of zero or one element.
    GET    /get-kids                         Records with age below 15.
    GET    /get_docs                         This documentation.

Responses:
    201 {"message"} on create, 200 {"message"} on update and delete.
    404 {"message": "User not found"} when the emp_id does not exist.
    400 {"message"} when a required query parameter is missing or malformed.
    500 {"message", "error"} on any other failure.

Every operation is logged on entry and exit and reports its outcome to the
configured notifier (NOTIFY_BACKEND=log|email|none).
`

type DocsBody struct {
	Documentation string `json:"documentation"`
}

type DocsController struct{}

func NewDocsController() application.Controller {
	return &DocsController{}
}

func (c *DocsController) Key() string {
	return "/get_docs"
}

func (c *DocsController) Register(r *mux.Router) {
	r.HandleFunc("/get_docs", c.Get).Methods(http.MethodGet)
}

func (c *DocsController) Get(w http.ResponseWriter, _ *http.Request) {
	_ = httpapi.WriteJSON(w, http.StatusOK, &DocsBody{Documentation: documentation})
}

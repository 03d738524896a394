package persistence

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/emprecords/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/emprecords/pkg/composables"
	"github.com/iota-uz/emprecords/pkg/repo"
)

const (
	employeeColumns = `emp_id, age, name, exp, gender, dept, country`

	selectEmployeesQuery = `SELECT ` + employeeColumns + ` FROM user_info`

	insertEmployeeQuery = `INSERT INTO user_info (emp_id, age, name, exp, gender, dept, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	// NULL parameters keep the stored value.
	updateEmployeeQuery = `UPDATE user_info
		SET age = COALESCE($2, age),
			name = COALESCE($3, name),
			exp = COALESCE($4, exp),
			gender = COALESCE($5, gender),
			dept = COALESCE($6, dept),
			country = COALESCE($7, country)
		WHERE emp_id = $1
		RETURNING ` + employeeColumns

	deleteEmployeeQuery = `DELETE FROM user_info WHERE emp_id = $1 RETURNING ` + employeeColumns
)

type PgEmployeeRepository struct{}

func NewEmployeeRepository() employee.Repository {
	return &PgEmployeeRepository{}
}

func (g *PgEmployeeRepository) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return g.queryEmployees(ctx, "get all employees", "")
}

func (g *PgEmployeeRepository) GetByID(ctx context.Context, id int) (employee.Employee, error) {
	return g.queryEmployee(ctx, "get employee", selectEmployeesQuery+" WHERE emp_id = $1", id)
}

func (g *PgEmployeeRepository) GetForUpdate(ctx context.Context, id int) (employee.Employee, error) {
	return g.queryEmployee(ctx, "lock employee", selectEmployeesQuery+" WHERE emp_id = $1 FOR UPDATE", id)
}

func (g *PgEmployeeRepository) GetWithExperienceBelow(ctx context.Context, years float64) ([]employee.Employee, error) {
	return g.queryEmployees(ctx, "get employees by experience", " WHERE exp < $1", years)
}

func (g *PgEmployeeRepository) GetByCountry(ctx context.Context, country string) ([]employee.Employee, error) {
	return g.queryEmployees(ctx, "get employees by country", " WHERE country = $1", country)
}

func (g *PgEmployeeRepository) GetByGender(ctx context.Context, gender string) ([]employee.Employee, error) {
	return g.queryEmployees(ctx, "get employees by gender", " WHERE gender = $1", gender)
}

func (g *PgEmployeeRepository) SearchByName(ctx context.Context, fragment string) ([]employee.Employee, error) {
	return g.queryEmployees(
		ctx,
		"search employees by name",
		` WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'`,
		escapeLike(fragment),
	)
}

func (g *PgEmployeeRepository) GetByName(ctx context.Context, name string) ([]employee.Employee, error) {
	return g.queryEmployees(ctx, "get employees by name", " WHERE name = $1", name)
}

func (g *PgEmployeeRepository) GetYoungerThan(ctx context.Context, age int) ([]employee.Employee, error) {
	return g.queryEmployees(ctx, "get employees by age", " WHERE age < $1", age)
}

func (g *PgEmployeeRepository) Create(ctx context.Context, data employee.Employee) (employee.Employee, error) {
	return g.queryEmployee(
		ctx,
		"create employee",
		insertEmployeeQuery,
		data.EmployeeID,
		data.Age,
		data.Name,
		data.Experience,
		data.Gender,
		data.Department,
		data.Country,
	)
}

func (g *PgEmployeeRepository) Update(ctx context.Context, id int, patch *employee.UpdateDTO) (employee.Employee, error) {
	if patch == nil {
		patch = &employee.UpdateDTO{}
	}
	return g.queryEmployee(
		ctx,
		"update employee",
		updateEmployeeQuery,
		id,
		patch.Age,
		patch.Name,
		patch.Experience,
		patch.Gender,
		patch.Department,
		patch.Country,
	)
}

func (g *PgEmployeeRepository) Delete(ctx context.Context, id int) (employee.Employee, error) {
	return g.queryEmployee(ctx, "delete employee", deleteEmployeeQuery, id)
}

func (g *PgEmployeeRepository) queryEmployee(ctx context.Context, op, query string, args ...any) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	entity, err := scanEmployee(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return employee.Employee{}, mapPgError(op, err)
	}
	return entity, nil
}

func (g *PgEmployeeRepository) queryEmployees(ctx context.Context, op, where string, args ...any) ([]employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return collectEmployees(ctx, tx, op, selectEmployeesQuery+where+" ORDER BY emp_id", args...)
}

func collectEmployees(ctx context.Context, tx repo.Tx, op, query string, args ...any) ([]employee.Employee, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(op, err)
	}
	defer rows.Close()

	entities := make([]employee.Employee, 0)
	for rows.Next() {
		entity, err := scanEmployee(rows)
		if err != nil {
			return nil, mapPgError(op, err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(op, err)
	}
	return entities, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.EmployeeID,
		&e.Age,
		&e.Name,
		&e.Experience,
		&e.Gender,
		&e.Department,
		&e.Country,
	)
	return e, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

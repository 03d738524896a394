// Package testhelpers provides in-memory doubles for exercising the HRM
// services and controllers without PostgreSQL.
package testhelpers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/iota-uz/emprecords/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/emprecords/pkg/composables"
)

// MemoryRepository is an employee.Repository backed by a map. Like the
// PostgreSQL repository it refuses to run outside a transaction.
type MemoryRepository struct {
	mu       sync.Mutex
	rows     map[int]employee.Employee
	failures map[string]error
}

var _ employee.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository(seed ...employee.Employee) *MemoryRepository {
	r := &MemoryRepository{
		rows:     make(map[int]employee.Employee, len(seed)),
		failures: map[string]error{},
	}
	for _, e := range seed {
		r.rows[e.EmployeeID] = e
	}
	return r
}

// Fail makes every later call of the named method return err.
// Pass a nil err to clear it.
func (r *MemoryRepository) Fail(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.failures, method)
		return
	}
	r.failures[method] = err
}

// Snapshot returns all stored rows ordered by emp_id.
func (r *MemoryRepository) Snapshot() []employee.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(employee.Employee) bool { return true })
}

func (r *MemoryRepository) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return r.scan(ctx, "GetAll", func(employee.Employee) bool { return true })
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int) (employee.Employee, error) {
	return r.lookup(ctx, "GetByID", id)
}

func (r *MemoryRepository) GetForUpdate(ctx context.Context, id int) (employee.Employee, error) {
	return r.lookup(ctx, "GetForUpdate", id)
}

func (r *MemoryRepository) GetWithExperienceBelow(ctx context.Context, years float64) ([]employee.Employee, error) {
	return r.scan(ctx, "GetWithExperienceBelow", func(e employee.Employee) bool { return e.Experience < years })
}

func (r *MemoryRepository) GetByCountry(ctx context.Context, country string) ([]employee.Employee, error) {
	return r.scan(ctx, "GetByCountry", func(e employee.Employee) bool { return e.Country == country })
}

func (r *MemoryRepository) GetByGender(ctx context.Context, gender string) ([]employee.Employee, error) {
	return r.scan(ctx, "GetByGender", func(e employee.Employee) bool { return e.Gender == gender })
}

func (r *MemoryRepository) SearchByName(ctx context.Context, fragment string) ([]employee.Employee, error) {
	needle := strings.ToLower(fragment)
	return r.scan(ctx, "SearchByName", func(e employee.Employee) bool {
		return strings.Contains(strings.ToLower(e.Name), needle)
	})
}

func (r *MemoryRepository) GetByName(ctx context.Context, name string) ([]employee.Employee, error) {
	return r.scan(ctx, "GetByName", func(e employee.Employee) bool { return e.Name == name })
}

func (r *MemoryRepository) GetYoungerThan(ctx context.Context, age int) ([]employee.Employee, error) {
	return r.scan(ctx, "GetYoungerThan", func(e employee.Employee) bool { return e.Age < age })
}

func (r *MemoryRepository) Create(ctx context.Context, data employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(ctx, "Create"); err != nil {
		return employee.Employee{}, err
	}
	if _, exists := r.rows[data.EmployeeID]; exists {
		return employee.Employee{}, employee.ErrDuplicateKey
	}
	r.rows[data.EmployeeID] = data
	return data, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id int, patch *employee.UpdateDTO) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(ctx, "Update"); err != nil {
		return employee.Employee{}, err
	}
	current, exists := r.rows[id]
	if !exists {
		return employee.Employee{}, employee.ErrNotFound
	}
	next := current.Apply(patch)
	r.rows[id] = next
	return next, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(ctx, "Delete"); err != nil {
		return employee.Employee{}, err
	}
	e, exists := r.rows[id]
	if !exists {
		return employee.Employee{}, employee.ErrNotFound
	}
	delete(r.rows, id)
	return e, nil
}

func (r *MemoryRepository) lookup(ctx context.Context, method string, id int) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(ctx, method); err != nil {
		return employee.Employee{}, err
	}
	e, exists := r.rows[id]
	if !exists {
		return employee.Employee{}, employee.ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepository) scan(ctx context.Context, method string, keep func(employee.Employee) bool) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(ctx, method); err != nil {
		return nil, err
	}
	return r.filter(keep), nil
}

func (r *MemoryRepository) filter(keep func(employee.Employee) bool) []employee.Employee {
	out := make([]employee.Employee, 0, len(r.rows))
	for _, e := range r.rows {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out
}

func (r *MemoryRepository) check(ctx context.Context, method string) error {
	if _, err := composables.UseTx(ctx); err != nil {
		return err
	}
	return r.failures[method]
}

package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/iota-uz/emprecords/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/emprecords/pkg/composables"
	"github.com/iota-uz/emprecords/pkg/eventbus"
)

// EmployeeService runs every operation in its own transaction: the connection
// is acquired when the operation starts and released on every exit path.
type EmployeeService struct {
	repo      employee.Repository
	db        composables.Beginner
	publisher eventbus.EventBus
}

func NewEmployeeService(repo employee.Repository, db composables.Beginner, publisher eventbus.EventBus) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		db:        db,
		publisher: publisher,
	}
}

func (s *EmployeeService) List(ctx context.Context) Result[[]employee.Employee] {
	return s.read(ctx, "list", s.repo.GetAll)
}

func (s *EmployeeService) ExperienceBelow(ctx context.Context, years float64) Result[[]employee.Employee] {
	return s.read(ctx, "experience_below", func(txCtx context.Context) ([]employee.Employee, error) {
		return s.repo.GetWithExperienceBelow(txCtx, years)
	})
}

func (s *EmployeeService) FromCountry(ctx context.Context, country string) Result[[]employee.Employee] {
	return s.read(ctx, "from_country", func(txCtx context.Context) ([]employee.Employee, error) {
		return s.repo.GetByCountry(txCtx, country)
	})
}

func (s *EmployeeService) ByGender(ctx context.Context, gender string) Result[[]employee.Employee] {
	return s.read(ctx, "by_gender", func(txCtx context.Context) ([]employee.Employee, error) {
		return s.repo.GetByGender(txCtx, gender)
	})
}

func (s *EmployeeService) SearchByName(ctx context.Context, fragment string) Result[[]employee.Employee] {
	return s.read(ctx, "search_by_name", func(txCtx context.Context) ([]employee.Employee, error) {
		return s.repo.SearchByName(txCtx, fragment)
	})
}

func (s *EmployeeService) ByName(ctx context.Context, name string) Result[[]employee.Employee] {
	return s.read(ctx, "by_name", func(txCtx context.Context) ([]employee.Employee, error) {
		return s.repo.GetByName(txCtx, name)
	})
}

func (s *EmployeeService) YoungerThan(ctx context.Context, age int) Result[[]employee.Employee] {
	return s.read(ctx, "younger_than", func(txCtx context.Context) ([]employee.Employee, error) {
		return s.repo.GetYoungerThan(txCtx, age)
	})
}

// ByID returns a zero- or one-element list; a missing record is not an error.
func (s *EmployeeService) ByID(ctx context.Context, id int) Result[[]employee.Employee] {
	return s.read(ctx, "by_id", func(txCtx context.Context) ([]employee.Employee, error) {
		if !employee.IDInRange(id) {
			return []employee.Employee{}, nil
		}
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, employee.ErrNotFound) {
				return []employee.Employee{}, nil
			}
			return nil, err
		}
		return []employee.Employee{entity}, nil
	})
}

func (s *EmployeeService) Create(ctx context.Context, data *employee.CreateDTO) Result[employee.Employee] {
	start := time.Now()
	created, err := composables.InTxResult(ctx, s.db, func(txCtx context.Context) (employee.Employee, error) {
		entity, err := data.ToEntity()
		if err != nil {
			return employee.Employee{}, err
		}
		return s.repo.Create(txCtx, entity)
	})
	res := resultOf(created, err)
	observe("create", res.Status, start)
	if res.Status == StatusOK {
		s.publisher.Publish(employee.NewCreatedEvent(ctx, *data, created))
	}
	return res
}

// Update locks the row and writes only the supplied fields. An update
// without fields leaves the row untouched. Unknown ids yield StatusNotFound.
func (s *EmployeeService) Update(ctx context.Context, id int, data *employee.UpdateDTO) Result[employee.Employee] {
	start := time.Now()
	var before employee.Employee
	updated, err := composables.InTxResult(ctx, s.db, func(txCtx context.Context) (employee.Employee, error) {
		if !employee.IDInRange(id) {
			return employee.Employee{}, employee.ErrNotFound
		}
		current, err := s.repo.GetForUpdate(txCtx, id)
		if err != nil {
			return employee.Employee{}, err
		}
		before = current
		if data.IsEmpty() {
			return current, nil
		}
		return s.repo.Update(txCtx, id, data)
	})
	res := resultOf(updated, err)
	observe("update", res.Status, start)
	if res.Status == StatusOK {
		var patch employee.UpdateDTO
		if data != nil {
			patch = *data
		}
		s.publisher.Publish(employee.NewUpdatedEvent(ctx, patch, before, updated))
	}
	return res
}

func (s *EmployeeService) Delete(ctx context.Context, id int) Result[employee.Employee] {
	start := time.Now()
	deleted, err := composables.InTxResult(ctx, s.db, func(txCtx context.Context) (employee.Employee, error) {
		if !employee.IDInRange(id) {
			return employee.Employee{}, employee.ErrNotFound
		}
		return s.repo.Delete(txCtx, id)
	})
	res := resultOf(deleted, err)
	observe("delete", res.Status, start)
	if res.Status == StatusOK {
		s.publisher.Publish(employee.NewDeletedEvent(ctx, deleted))
	}
	return res
}

func (s *EmployeeService) read(
	ctx context.Context,
	operation string,
	fn func(context.Context) ([]employee.Employee, error),
) Result[[]employee.Employee] {
	start := time.Now()
	entities, err := composables.InTxResult(ctx, s.db, fn)
	res := resultOf(entities, err)
	observe(operation, res.Status, start)
	return res
}

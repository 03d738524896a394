package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/emprecords/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/emprecords/modules/hrm/services"
	"github.com/iota-uz/emprecords/modules/hrm/testhelpers"
	"github.com/iota-uz/emprecords/pkg/eventbus"
)

func ptr[T any](v T) *T { return &v }

func samDTO() *employee.CreateDTO {
	return &employee.CreateDTO{
		EmployeeID: ptr(1),
		Age:        ptr(29),
		Name:       ptr("Sam"),
		Experience: ptr(3.0),
		Gender:     ptr("M"),
		Department: ptr("Eng"),
		Country:    ptr("INDIA"),
	}
}

type fixture struct {
	repo   *testhelpers.MemoryRepository
	db     *testhelpers.FakeDB
	bus    eventbus.EventBus
	events []interface{}
	svc    *services.EmployeeService
}

func newFixture(t *testing.T, seed ...employee.Employee) *fixture {
	t.Helper()
	logger, _ := test.NewNullLogger()
	f := &fixture{
		repo: testhelpers.NewMemoryRepository(seed...),
		db:   &testhelpers.FakeDB{},
		bus:  eventbus.NewEventPublisher(logger),
	}
	f.bus.Subscribe(func(e *employee.CreatedEvent) { f.events = append(f.events, e) })
	f.bus.Subscribe(func(e *employee.UpdatedEvent) { f.events = append(f.events, e) })
	f.bus.Subscribe(func(e *employee.DeletedEvent) { f.events = append(f.events, e) })
	f.svc = services.NewEmployeeService(f.repo, f.db, f.bus)
	return f
}

func TestEmployeeService_CreateThenList(t *testing.T) {
	f := newFixture(t)

	res := f.svc.Create(context.Background(), samDTO())
	require.Equal(t, services.StatusOK, res.Status)
	require.NoError(t, res.Err)
	require.Equal(t, "Sam", res.Value.Name)

	list := f.svc.List(context.Background())
	require.Equal(t, services.StatusOK, list.Status)
	require.Len(t, list.Value, 1)
	require.Equal(t, res.Value, list.Value[0])

	require.Len(t, f.events, 1)
	created, ok := f.events[0].(*employee.CreatedEvent)
	require.True(t, ok)
	require.Equal(t, 1, created.Result.EmployeeID)

	begun, committed, rolled := f.db.Counts()
	require.Equal(t, 2, begun)
	require.Equal(t, 2, committed)
	require.Zero(t, rolled)
}

func TestEmployeeService_CreateDuplicateKeepsExisting(t *testing.T) {
	existing := employee.Employee{EmployeeID: 1, Age: 40, Name: "Alice", Country: "UK"}
	f := newFixture(t, existing)

	res := f.svc.Create(context.Background(), samDTO())
	require.Equal(t, services.StatusError, res.Status)
	require.ErrorIs(t, res.Err, employee.ErrDuplicateKey)
	require.Equal(t, []employee.Employee{existing}, f.repo.Snapshot())
	require.Empty(t, f.events)

	_, committed, rolled := f.db.Counts()
	require.Zero(t, committed)
	require.Equal(t, 1, rolled)
}

func TestEmployeeService_CreateMissingFieldIsError(t *testing.T) {
	f := newFixture(t)
	dto := samDTO()
	dto.Gender = nil

	res := f.svc.Create(context.Background(), dto)
	require.Equal(t, services.StatusError, res.Status)
	require.True(t, employee.IsValidation(res.Err))
	require.Empty(t, f.repo.Snapshot())
}

func TestEmployeeService_UpdatePartial(t *testing.T) {
	sam := employee.Employee{EmployeeID: 1, Age: 29, Name: "Sam", Experience: 3, Gender: "M", Department: "Eng", Country: "INDIA"}
	f := newFixture(t, sam)

	res := f.svc.Update(context.Background(), 1, &employee.UpdateDTO{Age: ptr(31)})
	require.Equal(t, services.StatusOK, res.Status)

	want := sam
	want.Age = 31
	require.Equal(t, want, res.Value)
	require.Equal(t, []employee.Employee{want}, f.repo.Snapshot())

	require.Len(t, f.events, 1)
	updated := f.events[0].(*employee.UpdatedEvent)
	require.Equal(t, sam, updated.Before)
	require.Equal(t, want, updated.Result)
}

func TestEmployeeService_UpdateWithoutFieldsSkipsWrite(t *testing.T) {
	sam := employee.Employee{EmployeeID: 1, Age: 29, Name: "Sam"}
	f := newFixture(t, sam)
	f.repo.Fail("Update", errors.New("must not be called"))

	res := f.svc.Update(context.Background(), 1, &employee.UpdateDTO{})
	require.Equal(t, services.StatusOK, res.Status)
	require.Equal(t, sam, res.Value)
	require.Equal(t, []employee.Employee{sam}, f.repo.Snapshot())

	require.Len(t, f.events, 1)
	updated := f.events[0].(*employee.UpdatedEvent)
	require.True(t, updated.Data.IsEmpty())
	require.Equal(t, sam, updated.Result)
}

func TestEmployeeService_UpdateMissingIsNotFound(t *testing.T) {
	f := newFixture(t)

	res := f.svc.Update(context.Background(), 42, &employee.UpdateDTO{Age: ptr(31)})
	require.Equal(t, services.StatusNotFound, res.Status)
	require.ErrorIs(t, res.Err, employee.ErrNotFound)
	require.Empty(t, f.repo.Snapshot())
	require.Empty(t, f.events)
}

func TestEmployeeService_UpdateFailureRollsBack(t *testing.T) {
	sam := employee.Employee{EmployeeID: 1, Age: 29, Name: "Sam"}
	f := newFixture(t, sam)
	f.repo.Fail("Update", errors.New("connection reset"))

	res := f.svc.Update(context.Background(), 1, &employee.UpdateDTO{Age: ptr(31)})
	require.Equal(t, services.StatusError, res.Status)
	require.Equal(t, []employee.Employee{sam}, f.repo.Snapshot())

	_, committed, rolled := f.db.Counts()
	require.Zero(t, committed)
	require.Equal(t, 1, rolled)
}

func TestEmployeeService_Delete(t *testing.T) {
	sam := employee.Employee{EmployeeID: 1, Name: "Sam"}
	f := newFixture(t, sam)

	res := f.svc.Delete(context.Background(), 1)
	require.Equal(t, services.StatusOK, res.Status)
	require.Equal(t, sam, res.Value)

	byID := f.svc.ByID(context.Background(), 1)
	require.Equal(t, services.StatusOK, byID.Status)
	require.NotNil(t, byID.Value)
	require.Empty(t, byID.Value)

	again := f.svc.Delete(context.Background(), 1)
	require.Equal(t, services.StatusNotFound, again.Status)

	require.Len(t, f.events, 1)
	require.IsType(t, &employee.DeletedEvent{}, f.events[0])
}

func TestEmployeeService_FilteredReads(t *testing.T) {
	f := newFixture(t,
		employee.Employee{EmployeeID: 1, Name: "Alice", Age: 30, Experience: 7, Gender: "F", Country: "UK"},
		employee.Employee{EmployeeID: 2, Name: "Sam", Age: 12, Experience: 1, Gender: "M", Country: "INDIA"},
		employee.Employee{EmployeeID: 3, Name: "malik", Age: 40, Experience: 4.9, Gender: "M", Country: "INDIA"},
	)
	ctx := context.Background()

	ids := func(res services.Result[[]employee.Employee]) []int {
		require.Equal(t, services.StatusOK, res.Status)
		out := make([]int, 0, len(res.Value))
		for _, e := range res.Value {
			out = append(out, e.EmployeeID)
		}
		return out
	}

	require.Equal(t, []int{2, 3}, ids(f.svc.ExperienceBelow(ctx, employee.SeniorExperienceYears)))
	require.Equal(t, []int{2, 3}, ids(f.svc.FromCountry(ctx, employee.DefaultCountry)))
	require.Equal(t, []int{1}, ids(f.svc.ByGender(ctx, "F")))
	require.Equal(t, []int{1, 3}, ids(f.svc.SearchByName(ctx, "ali")))
	require.Equal(t, []int{2}, ids(f.svc.ByName(ctx, "Sam")))
	require.Empty(t, ids(f.svc.ByName(ctx, "sam")))
	require.Equal(t, []int{2}, ids(f.svc.YoungerThan(ctx, employee.KidsAgeLimit)))
	require.Equal(t, []int{3}, ids(f.svc.ByID(ctx, 3)))
}

func TestEmployeeService_ReadErrors(t *testing.T) {
	f := newFixture(t)
	f.repo.Fail("GetAll", errors.New("relation \"user_info\" does not exist"))

	res := f.svc.List(context.Background())
	require.Equal(t, services.StatusError, res.Status)
	require.Error(t, res.Err)

	f.db.BeginErr = errors.New("pool exhausted")
	res = f.svc.ByName(context.Background(), "Sam")
	require.Equal(t, services.StatusError, res.Status)
	require.ErrorContains(t, res.Err, "pool exhausted")
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "ok", services.StatusOK.String())
	require.Equal(t, "not_found", services.StatusNotFound.String())
	require.Equal(t, "error", services.StatusError.String())
}

package persistence

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/emprecords/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/emprecords/pkg/composables"
	"github.com/iota-uz/emprecords/pkg/constants"
)

func samRow() []any {
	return []any{1, 29, "Sam", 3.5, "M", "Eng", "INDIA"}
}

func sam() employee.Employee {
	return employee.Employee{
		EmployeeID: 1,
		Age:        29,
		Name:       "Sam",
		Experience: 3.5,
		Gender:     "M",
		Department: "Eng",
		Country:    "INDIA",
	}
}

func withTx(tx *stubTx) context.Context {
	return context.WithValue(context.Background(), constants.TxKey, tx)
}

func TestEmployeeRepository_RequiresTx(t *testing.T) {
	repo := NewEmployeeRepository()

	_, err := repo.GetAll(context.Background())
	require.ErrorIs(t, err, composables.ErrNoTx)
}

func TestEmployeeRepository_GetAll_EmptyTableYieldsEmptySlice(t *testing.T) {
	tx := &stubTx{
		queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			require.Contains(t, sql, "FROM user_info")
			require.Contains(t, sql, "ORDER BY emp_id")
			require.NotContains(t, sql, "WHERE")
			require.Empty(t, args)
			return &stubRows{}, nil
		},
	}

	result, err := NewEmployeeRepository().GetAll(withTx(tx))
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Empty(t, result)
}

func TestEmployeeRepository_FilteredReads(t *testing.T) {
	cases := []struct {
		name      string
		call      func(repo employee.Repository, ctx context.Context) ([]employee.Employee, error)
		wantWhere string
		wantArg   any
	}{
		{
			name: "experience below",
			call: func(r employee.Repository, ctx context.Context) ([]employee.Employee, error) {
				return r.GetWithExperienceBelow(ctx, 5)
			},
			wantWhere: "WHERE exp < $1",
			wantArg:   5.0,
		},
		{
			name: "country",
			call: func(r employee.Repository, ctx context.Context) ([]employee.Employee, error) {
				return r.GetByCountry(ctx, "INDIA")
			},
			wantWhere: "WHERE country = $1",
			wantArg:   "INDIA",
		},
		{
			name: "gender",
			call: func(r employee.Repository, ctx context.Context) ([]employee.Employee, error) {
				return r.GetByGender(ctx, "M")
			},
			wantWhere: "WHERE gender = $1",
			wantArg:   "M",
		},
		{
			name: "exact name",
			call: func(r employee.Repository, ctx context.Context) ([]employee.Employee, error) {
				return r.GetByName(ctx, "Sam")
			},
			wantWhere: "WHERE name = $1",
			wantArg:   "Sam",
		},
		{
			name: "name substring escapes wildcards",
			call: func(r employee.Repository, ctx context.Context) ([]employee.Employee, error) {
				return r.SearchByName(ctx, "50%_a")
			},
			wantWhere: "WHERE name ILIKE",
			wantArg:   `50\%\_a`,
		},
		{
			name: "younger than",
			call: func(r employee.Repository, ctx context.Context) ([]employee.Employee, error) {
				return r.GetYoungerThan(ctx, 15)
			},
			wantWhere: "WHERE age < $1",
			wantArg:   15,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := &stubTx{
				queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
					require.Contains(t, sql, tc.wantWhere)
					require.Len(t, args, 1)
					require.Equal(t, tc.wantArg, args[0])
					return &stubRows{data: [][]any{samRow()}}, nil
				},
			}

			result, err := tc.call(NewEmployeeRepository(), withTx(tx))
			require.NoError(t, err)
			require.Equal(t, []employee.Employee{sam()}, result)
		})
	}
}

func TestEmployeeRepository_GetByID_NotFound(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "WHERE emp_id = $1")
			require.NotContains(t, sql, "FOR UPDATE")
			require.Equal(t, 42, args[0])
			return stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}

	_, err := NewEmployeeRepository().GetByID(withTx(tx), 42)
	require.ErrorIs(t, err, employee.ErrNotFound)
}

func TestEmployeeRepository_GetForUpdate_LocksRow(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "FOR UPDATE")
			return rowOf(samRow())
		},
	}

	entity, err := NewEmployeeRepository().GetForUpdate(withTx(tx), 1)
	require.NoError(t, err)
	require.Equal(t, sam(), entity)
}

func TestEmployeeRepository_Create_PassesAllColumns(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "INSERT INTO user_info")
			require.Contains(t, sql, "RETURNING")
			require.Equal(t, samRow(), args)
			return rowOf(samRow())
		},
	}

	created, err := NewEmployeeRepository().Create(withTx(tx), sam())
	require.NoError(t, err)
	require.Equal(t, sam(), created)
}

func TestEmployeeRepository_Create_DuplicateKey(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return stubRow{scan: func(dest ...any) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "user_info_pkey"}
			}}
		},
	}

	_, err := NewEmployeeRepository().Create(withTx(tx), sam())
	require.ErrorIs(t, err, employee.ErrDuplicateKey)
}

func TestEmployeeRepository_Create_StorageError(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return stubRow{scan: func(dest ...any) error { return errors.New("connection reset") }}
		},
	}

	_, err := NewEmployeeRepository().Create(withTx(tx), sam())
	var storageErr *employee.StorageError
	require.ErrorAs(t, err, &storageErr)
	require.Equal(t, "create employee", storageErr.Op)
	require.Contains(t, err.Error(), "connection reset")
}

func TestEmployeeRepository_Update_OnlySuppliedColumns(t *testing.T) {
	age := 31
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "UPDATE user_info")
			require.Contains(t, sql, "dept = COALESCE($6, dept)")
			require.Contains(t, sql, "RETURNING")
			require.Len(t, args, 7)
			require.Equal(t, 1, args[0])
			require.Equal(t, &age, args[1])
			for i, arg := range args[2:] {
				require.Nil(t, arg, "column parameter %d", i+3)
			}
			return rowOf([]any{1, 31, "Sam", 3.5, "M", "Eng", "INDIA"})
		},
	}

	updated, err := NewEmployeeRepository().Update(withTx(tx), 1, &employee.UpdateDTO{Age: &age})
	require.NoError(t, err)
	want := sam()
	want.Age = 31
	require.Equal(t, want, updated)
}

func TestEmployeeRepository_Update_NilPatchWritesNothing(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			for _, arg := range args[1:] {
				require.Nil(t, arg)
			}
			return rowOf(samRow())
		},
	}

	updated, err := NewEmployeeRepository().Update(withTx(tx), 1, nil)
	require.NoError(t, err)
	require.Equal(t, sam(), updated)
}

func TestEmployeeRepository_Update_NoRowsIsNotFound(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}

	_, err := NewEmployeeRepository().Update(withTx(tx), 1, &employee.UpdateDTO{})
	require.ErrorIs(t, err, employee.ErrNotFound)
}

func TestSchema_NonKeyColumnsAreNotNull(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("schema", "00001_create_user_info.sql"))
	require.NoError(t, err)
	ddl := string(raw)
	for _, column := range []string{"age", "name", "exp", "gender", "dept", "country"} {
		require.Regexp(t, `(?m)^\s+`+column+`\s+[A-Z ]+ NOT NULL`, ddl, column)
	}
}

func TestEmployeeRepository_ReadsColumnsWithoutDefaults(t *testing.T) {
	require.NotContains(t, selectEmployeesQuery, "COALESCE")
}

func TestEmployeeRepository_Delete(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "DELETE FROM user_info")
			require.Equal(t, 1, args[0])
			return rowOf(samRow())
		},
	}

	deleted, err := NewEmployeeRepository().Delete(withTx(tx), 1)
	require.NoError(t, err)
	require.Equal(t, sam(), deleted)
}

func TestEmployeeRepository_Delete_NotFound(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}

	_, err := NewEmployeeRepository().Delete(withTx(tx), 1)
	require.ErrorIs(t, err, employee.ErrNotFound)
}

func TestEmployeeRepository_QueryErrorIsMapped(t *testing.T) {
	tx := &stubTx{
		queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return nil, &pgconn.PgError{Code: "42P01", Message: `relation "user_info" does not exist`}
		},
	}

	_, err := NewEmployeeRepository().GetAll(withTx(tx))
	var storageErr *employee.StorageError
	require.ErrorAs(t, err, &storageErr)
}

func TestEscapeLike(t *testing.T) {
	require.Equal(t, "ali", escapeLike("ali"))
	require.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
}

func rowOf(values []any) stubRow {
	return stubRow{scan: func(dest ...any) error {
		return assign(dest, values)
	}}
}

type stubTx struct {
	queryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	queryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	execFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (s *stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("copy not implemented")
}

func (s *stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	var results pgx.BatchResults
	return results
}

func (s *stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	if s.execFunc == nil {
		return pgconn.CommandTag{}, errors.New("exec not implemented")
	}
	return s.execFunc(ctx, sql, arguments...)
}

func (s *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if s.queryFunc == nil {
		return nil, errors.New("query not implemented")
	}
	return s.queryFunc(ctx, sql, args...)
}

func (s *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if s.queryRowFunc == nil {
		return stubRow{scan: func(dest ...any) error { return errors.New("query row not implemented") }}
	}
	return s.queryRowFunc(ctx, sql, args...)
}

type stubRows struct {
	data [][]any
	idx  int
	err  error
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.data) {
		return errors.New("no current row to scan")
	}
	return assign(dest, r.data[r.idx-1])
}

func (r *stubRows) Values() ([]any, error) {
	if r.idx == 0 || r.idx > len(r.data) {
		return nil, errors.New("no current row")
	}
	return r.data[r.idx-1], nil
}

func (r *stubRows) RawValues() [][]byte { return nil }
func (r *stubRows) Err() error          { return r.err }
func (r *stubRows) Close()              {}
func (r *stubRows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag{}
}
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error {
	if r.scan == nil {
		return errors.New("scan not implemented")
	}
	return r.scan(dest...)
}

func assign(dest []any, row []any) error {
	if len(dest) != len(row) {
		return fmt.Errorf("destination length %d does not match row length %d", len(dest), len(row))
	}
	for i, target := range dest {
		switch v := target.(type) {
		case *int:
			*v = row[i].(int)
		case *float64:
			*v = row[i].(float64)
		case *string:
			*v = row[i].(string)
		default:
			return fmt.Errorf("unsupported scan target %T", target)
		}
	}
	return nil
}

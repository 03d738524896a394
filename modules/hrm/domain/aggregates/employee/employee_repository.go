package employee

import "context"

// Repository is the record store for employees. Every filtered read is its
// own method; there is no generic query language.
type Repository interface {
	GetAll(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id int) (Employee, error)
	// GetForUpdate returns the record and locks its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id int) (Employee, error)
	GetWithExperienceBelow(ctx context.Context, years float64) ([]Employee, error)
	GetByCountry(ctx context.Context, country string) ([]Employee, error)
	GetByGender(ctx context.Context, gender string) ([]Employee, error)
	// SearchByName matches a case-insensitive substring of the name.
	SearchByName(ctx context.Context, fragment string) ([]Employee, error)
	GetByName(ctx context.Context, name string) ([]Employee, error)
	GetYoungerThan(ctx context.Context, age int) ([]Employee, error)
	Create(ctx context.Context, data Employee) (Employee, error)
	// Update writes only the fields set in patch and returns the stored row.
	Update(ctx context.Context, id int, patch *UpdateDTO) (Employee, error)
	Delete(ctx context.Context, id int) (Employee, error)
}

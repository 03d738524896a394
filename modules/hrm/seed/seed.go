// Package seed bulk-loads employees from YAML or TOML fixture files through
// the regular service, so seeded rows obey the same rules as API writes.
package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/iota-uz/emprecords/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/emprecords/modules/hrm/services"
)

type EmployeeFixture struct {
	EmployeeID *int     `yaml:"emp_id" toml:"emp_id"`
	Age        *int     `yaml:"age" toml:"age"`
	Name       *string  `yaml:"name" toml:"name"`
	Experience *float64 `yaml:"exp" toml:"exp"`
	Gender     *string  `yaml:"gender" toml:"gender"`
	Department *string  `yaml:"dept" toml:"dept"`
	Country    *string  `yaml:"country" toml:"country"`
}

func (f EmployeeFixture) ToCreateDTO() *employee.CreateDTO {
	return &employee.CreateDTO{
		EmployeeID: f.EmployeeID,
		Age:        f.Age,
		Name:       f.Name,
		Experience: f.Experience,
		Gender:     f.Gender,
		Department: f.Department,
		Country:    f.Country,
	}
}

type Fixtures struct {
	Employees []EmployeeFixture `yaml:"employees" toml:"employees"`
}

type Report struct {
	Created int
	Skipped int
}

// LoadFile parses a fixture file; the format follows the extension
// (.yaml, .yml or .toml).
func LoadFile(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read fixtures")
	}
	return Parse(filepath.Ext(path), data)
}

func Parse(ext string, data []byte) (*Fixtures, error) {
	var fx Fixtures
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fx); err != nil {
			return nil, errors.Wrap(err, "parse yaml fixtures")
		}
	case ".toml":
		if err := toml.Unmarshal(data, &fx); err != nil {
			return nil, errors.Wrap(err, "parse toml fixtures")
		}
	default:
		return nil, errors.Errorf("unsupported fixture format %q", ext)
	}
	return &fx, nil
}

// Run creates every fixture. Records whose emp_id already exists are
// skipped with a warning; any other failure stops the run.
func Run(ctx context.Context, svc *services.EmployeeService, fx *Fixtures, logger logrus.FieldLogger) (Report, error) {
	var report Report
	for i, f := range fx.Employees {
		res := svc.Create(ctx, f.ToCreateDTO())
		switch {
		case res.Status == services.StatusOK:
			report.Created++
		case errors.Is(res.Err, employee.ErrDuplicateKey):
			report.Skipped++
			logger.WithField("emp_id", derefInt(f.EmployeeID)).Warn("seed: employee already exists, skipping")
		default:
			return report, errors.Wrapf(res.Err, "seed employee #%d", i+1)
		}
	}
	logger.WithFields(logrus.Fields{
		"created": report.Created,
		"skipped": report.Skipped,
	}).Info("seed: done")
	return report, nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

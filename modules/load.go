package modules

import (
	"github.com/iota-uz/emprecords/modules/hrm"
	"github.com/iota-uz/emprecords/pkg/application"
	"github.com/iota-uz/emprecords/pkg/configuration"
)

// BuiltInModules returns the modules served by the default binaries.
func BuiltInModules(conf *configuration.Configuration) []application.Module {
	return []application.Module{
		hrm.NewModule(&hrm.ModuleOptions{
			ExcludedColumns: conf.HRM.ExcludedColumns,
		}),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}

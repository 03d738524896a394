package hrm

import (
	"embed"
	"io/fs"

	"github.com/iota-uz/emprecords/modules/hrm/handlers"
	"github.com/iota-uz/emprecords/modules/hrm/infrastructure/persistence"
	"github.com/iota-uz/emprecords/modules/hrm/presentation/controllers"
	"github.com/iota-uz/emprecords/modules/hrm/services"
	"github.com/iota-uz/emprecords/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var MigrationFiles embed.FS

type ModuleOptions struct {
	// JSON fields dropped by /get_custom_columns.
	ExcludedColumns []string
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	if migrations := app.Migrations(); migrations != nil {
		schema, err := fs.Sub(MigrationFiles, "infrastructure/persistence/schema")
		if err != nil {
			return err
		}
		migrations.RegisterSchema(m.Name(), schema)
	}
	app.RegisterServices(
		services.NewEmployeeService(persistence.NewEmployeeRepository(), app.DB(), app.EventPublisher()),
	)
	handlers.RegisterAuditHandlers(app.EventPublisher(), app.Logger())
	app.RegisterControllers(
		controllers.NewEmployeeController(app, m.options.ExcludedColumns),
		controllers.NewDocsController(),
	)
	return nil
}

func (m *Module) Name() string {
	return "hrm"
}

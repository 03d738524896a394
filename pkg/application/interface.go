package application

import (
	"context"
	"io/fs"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/emprecords/pkg/composables"
	"github.com/iota-uz/emprecords/pkg/eventbus"
	"github.com/iota-uz/emprecords/pkg/notify"
)

type Controller interface {
	Register(r *mux.Router)
	Key() string
}

type Module interface {
	Name() string
	Register(app Application) error
}

// MigrationManager applies the SQL schemas registered by modules.
type MigrationManager interface {
	RegisterSchema(name string, fsys fs.FS)
	Run(ctx context.Context) error
	Rollback(ctx context.Context) error
	Status(ctx context.Context) ([]MigrationStatus, error)
}

// Application holds the shared dependencies modules register against.
type Application interface {
	DB() composables.Beginner
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	Notifier() notify.Notifier
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	Migrations() MigrationManager
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	Services() map[reflect.Type]interface{}
}

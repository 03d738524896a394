package application

import (
	"context"
	"database/sql"
	"io/fs"
	"time"

	"github.com/go-faster/errors"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	"github.com/sirupsen/logrus"
)

type MigrationStatus struct {
	Schema    string
	Version   int64
	Path      string
	Applied   bool
	AppliedAt time.Time
}

type schema struct {
	name string
	fsys fs.FS
}

// NewMigrationManager runs goose migrations over a database/sql connection
// opened from dsn. Each registered schema keeps its own version table.
func NewMigrationManager(dsn string, logger logrus.FieldLogger) MigrationManager {
	return &migrationManager{
		dsn:    dsn,
		logger: logger,
		open: func(dsn string) (*sql.DB, error) {
			return sql.Open("postgres", dsn)
		},
	}
}

type migrationManager struct {
	dsn     string
	logger  logrus.FieldLogger
	schemas []schema
	open    func(dsn string) (*sql.DB, error)
}

func (m *migrationManager) RegisterSchema(name string, fsys fs.FS) {
	m.schemas = append(m.schemas, schema{name: name, fsys: fsys})
}

func (m *migrationManager) Run(ctx context.Context) error {
	return m.each(ctx, func(s schema, p *goose.Provider) error {
		results, err := p.Up(ctx)
		if err != nil {
			return errors.Wrapf(err, "apply %s migrations", s.name)
		}
		for _, r := range results {
			m.logger.WithFields(logrus.Fields{
				"schema":   s.name,
				"version":  r.Source.Version,
				"duration": r.Duration,
			}).Info("applied migration")
		}
		if len(results) == 0 {
			m.logger.WithField("schema", s.name).Info("schema up to date")
		}
		return nil
	})
}

// Rollback reverts the most recent migration of every registered schema,
// newest schema first.
func (m *migrationManager) Rollback(ctx context.Context) error {
	db, err := m.open(m.dsn)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer db.Close()

	for i := len(m.schemas) - 1; i >= 0; i-- {
		s := m.schemas[i]
		p, err := newProvider(db, s)
		if err != nil {
			return err
		}
		r, err := p.Down(ctx)
		if err != nil && !errors.Is(err, goose.ErrNoNextVersion) {
			return errors.Wrapf(err, "roll back %s migrations", s.name)
		}
		if r != nil {
			m.logger.WithFields(logrus.Fields{
				"schema":  s.name,
				"version": r.Source.Version,
			}).Info("rolled back migration")
		}
	}
	return nil
}

func (m *migrationManager) Status(ctx context.Context) ([]MigrationStatus, error) {
	var out []MigrationStatus
	err := m.each(ctx, func(s schema, p *goose.Provider) error {
		statuses, err := p.Status(ctx)
		if err != nil {
			return errors.Wrapf(err, "read %s migration status", s.name)
		}
		for _, st := range statuses {
			out = append(out, MigrationStatus{
				Schema:    s.name,
				Version:   st.Source.Version,
				Path:      st.Source.Path,
				Applied:   st.State == goose.StateApplied,
				AppliedAt: st.AppliedAt,
			})
		}
		return nil
	})
	return out, err
}

func (m *migrationManager) each(ctx context.Context, fn func(schema, *goose.Provider) error) error {
	if len(m.schemas) == 0 {
		return nil
	}
	db, err := m.open(m.dsn)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping database")
	}

	for _, s := range m.schemas {
		p, err := newProvider(db, s)
		if err != nil {
			return err
		}
		if err := fn(s, p); err != nil {
			return err
		}
	}
	return nil
}

func newProvider(db *sql.DB, s schema) (*goose.Provider, error) {
	store, err := database.NewStore(database.DialectPostgres, "goose_"+s.name+"_version")
	if err != nil {
		return nil, errors.Wrap(err, "create migration store")
	}
	p, err := goose.NewProvider("", db, s.fsys, goose.WithStore(store))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s migrations", s.name)
	}
	return p, nil
}

package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/iota-uz/emprecords/pkg/logging"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

const (
	NotifyBackendLog   = "log"
	NotifyBackendEmail = "email"
	NotifyBackendNone  = "none"
)

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if fs.FileExists(file) {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

type DatabaseOptions struct {
	Opts           string        `env:"-"`
	Name           string        `env:"DB_NAME" envDefault:"postgres"`
	Host           string        `env:"DB_HOST" envDefault:"localhost"`
	Port           string        `env:"DB_PORT" envDefault:"5432"`
	User           string        `env:"DB_USER" envDefault:"postgres"`
	Password       string        `env:"DB_PASSWORD" envDefault:"postgres"`
	MaxConns       int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	MaxConnIdle    time.Duration `env:"DB_MAX_CONN_IDLE" envDefault:"30s"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type SMTPOptions struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"noreply@localhost"`
}

type NotificationOptions struct {
	// log, email or none
	Backend    string   `env:"NOTIFY_BACKEND" envDefault:"log"`
	QueueSize  int      `env:"NOTIFY_QUEUE_SIZE" envDefault:"64"`
	Recipients []string `env:"NOTIFY_RECIPIENTS" envSeparator:","`
	SMTP       SMTPOptions
}

// Validate checks the notification configuration for errors
func (n *NotificationOptions) Validate() error {
	backend := strings.ToLower(strings.TrimSpace(n.Backend))
	if backend == "" {
		backend = NotifyBackendLog
	}
	switch backend {
	case NotifyBackendLog, NotifyBackendNone:
	case NotifyBackendEmail:
		if n.SMTP.Host == "" {
			return fmt.Errorf("SMTP_HOST is required when NOTIFY_BACKEND is 'email'")
		}
		if len(n.Recipients) == 0 {
			return fmt.Errorf("NOTIFY_RECIPIENTS is required when NOTIFY_BACKEND is 'email'")
		}
	default:
		return fmt.Errorf("invalid NOTIFY_BACKEND=%q (expected log|email|none)", n.Backend)
	}
	if n.QueueSize < 0 {
		return fmt.Errorf("NOTIFY_QUEUE_SIZE must be non-negative, got %d", n.QueueSize)
	}
	n.Backend = backend
	return nil
}

type HRMOptions struct {
	// Columns dropped by /get_custom_columns.
	ExcludedColumns []string `env:"HRM_EXCLUDED_COLUMNS" envSeparator:","`
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"emprecords"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

type Configuration struct {
	Database      DatabaseOptions
	Notifications NotificationOptions
	HRM           HRMOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions

	MigrateOnStart   bool          `env:"MIGRATE_ON_START" envDefault:"true"`
	ServerPort       int           `env:"PORT" envDefault:"5000"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	GoAppEnvironment string        `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress    string        `env:"-"`
	Domain           string        `env:"DOMAIN" envDefault:"localhost"`
	Origin           string        `env:"ORIGIN" envDefault:"http://localhost:5000"`
	CorsOrigins      []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogPath          string        `env:"LOG_PATH" envDefault:"./logs/app.log"`
	// Looked up on every request; a random uuidv4 is generated when missing
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// Falls back to request.RemoteAddr when missing
	RealIPHeader string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func (c *Configuration) Scheme() string {
	if c.GoAppEnvironment == Production { // assume 'https' on production mode
		return "https"
	}
	return "http"
}

func Use() *Configuration {
	return singleton()
}

// Load builds a configuration from the environment and the given env files.
// Unlike Use it is not cached, which keeps tests isolated.
func Load(envFiles ...string) (*Configuration, error) {
	c := &Configuration{}
	if err := c.load(envFiles); err != nil {
		c.Unload()
		return nil, err
	}
	return c, nil
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 && len(envFiles) > 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.Notifications.Validate(); err != nil {
		return fmt.Errorf("notification configuration error: %w", err)
	}
	c.HRM.ExcludedColumns = normalizeList(c.HRM.ExcludedColumns)

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	c.Database.Opts = c.Database.ConnectionString()
	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}

	if os.Getenv("ORIGIN") == "" {
		// Only include port in Origin for development environment
		if c.GoAppEnvironment == "development" {
			c.Origin = fmt.Sprintf("%s://%s:%d", c.Scheme(), c.Domain, c.ServerPort)
		} else {
			c.Origin = fmt.Sprintf("%s://%s", c.Scheme(), c.Domain)
		}
	}

	return nil
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}

package server

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/emprecords/pkg/application"
	"github.com/iota-uz/emprecords/pkg/configuration"
	"github.com/iota-uz/emprecords/pkg/httpapi"
	"github.com/iota-uz/emprecords/pkg/middleware"
	"github.com/iota-uz/emprecords/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
}

func Default(options *DefaultOptions) *server.HTTPServer {
	app := options.Application
	conf := options.Configuration

	loggerOpts := middleware.DefaultLoggerOptions()
	loggerOpts.RequestIDHeader = conf.RequestIDHeader
	loggerOpts.RealIPHeader = conf.RealIPHeader

	app.RegisterMiddleware(
		middleware.WithLogger(options.Logger, loggerOpts),
		middleware.Cors(conf.CorsOrigins...),
	)

	return server.NewHTTPServer(app, NotFound(), MethodNotAllowed())
}

func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteMessage(w, http.StatusNotFound, "Not found")
	})
}

func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}


package routinggates

import (
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	internalserver "github.com/iota-uz/emprecords/internal/server"
	"github.com/iota-uz/emprecords/modules"
	"github.com/iota-uz/emprecords/modules/hrm/testhelpers"
	"github.com/iota-uz/emprecords/pkg/application"
	"github.com/iota-uz/emprecords/pkg/configuration"
	"github.com/iota-uz/emprecords/pkg/metrics"
	pkgserver "github.com/iota-uz/emprecords/pkg/server"
)

var publicRoutes = []string{
	"DELETE /delete_user/{emp_id:[0-9]+}",
	"GET /get-emp-id",
	"GET /get-emp-name",
	"GET /get-experience-less-than-5",
	"GET /get-kids",
	"GET /get-users-by-gender",
	"GET /get-users-by-name",
	"GET /get-users-from-india",
	"GET /get_all_records",
	"GET /get_custom_columns",
	"GET /get_docs",
	"POST /create_user",
	"PUT /update_user/{emp_id:[0-9]+}",
}

func buildServer(t *testing.T, conf *configuration.Configuration) *pkgserver.HTTPServer {
	t.Helper()
	logger, _ := test.NewNullLogger()
	app := application.New(&application.ApplicationOptions{
		DB:     &testhelpers.FakeDB{},
		Logger: logger,
	})
	require.NoError(t, modules.Load(app, modules.BuiltInModules(conf)...))
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}
	return internalserver.Default(&internalserver.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
	})
}

func collectRoutes(t *testing.T, router *mux.Router) []string {
	t.Helper()
	var routes []string
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		tpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"ANY"}
		}
		for _, m := range methods {
			routes = append(routes, m+" "+tpl)
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(routes)
	return routes
}

func TestExposureBaseline_OnlyPublicRoutes(t *testing.T) {
	got := collectRoutes(t, buildServer(t, &configuration.Configuration{}).Router())
	require.Equal(t, publicRoutes, got, "registered routes:\n%s", strings.Join(got, "\n"))
}

func TestExposureBaseline_MetricsOnlyWhenEnabled(t *testing.T) {
	conf := &configuration.Configuration{
		Prometheus: configuration.PrometheusOptions{Enabled: true, Path: "/debug/prometheus"},
	}
	got := collectRoutes(t, buildServer(t, conf).Router())
	require.Contains(t, got, "GET /debug/prometheus")
	require.Len(t, got, len(publicRoutes)+1)
}

func TestExposureBaseline_WritesNeverOverGet(t *testing.T) {
	for _, r := range publicRoutes {
		method, path, _ := strings.Cut(r, " ")
		switch {
		case strings.HasPrefix(path, "/create_"):
			require.Equal(t, http.MethodPost, method, r)
		case strings.HasPrefix(path, "/update_"):
			require.Equal(t, http.MethodPut, method, r)
		case strings.HasPrefix(path, "/delete_"):
			require.Equal(t, http.MethodDelete, method, r)
		default:
			require.Equal(t, http.MethodGet, method, r)
		}
	}
}

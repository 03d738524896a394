package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iota-uz/emprecords/pkg/application"
)

const DefaultPath = "/debug/prometheus"

// PrometheusController serves the metrics of one gatherer in the text
// exposition format. Only GET is routed.
type PrometheusController struct {
	path    string
	handler http.Handler
}

// NewPrometheusController exposes the default registry, which is where the
// employee service counters are registered.
func NewPrometheusController(path string) application.Controller {
	return NewGathererController(path, prometheus.DefaultGatherer)
}

func NewGathererController(path string, gatherer prometheus.Gatherer) application.Controller {
	if path == "" {
		path = DefaultPath
	}
	return &PrometheusController{
		path: path,
		handler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
			ErrorHandling: promhttp.ContinueOnError,
		}),
	}
}

func (c *PrometheusController) Key() string {
	return c.path
}

func (c *PrometheusController) Register(r *mux.Router) {
	r.Handle(c.path, c.handler).Methods(http.MethodGet)
}

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/emprecords/modules/hrm"
	"github.com/iota-uz/emprecords/modules/hrm/testhelpers"
	"github.com/iota-uz/emprecords/pkg/application"
	"github.com/iota-uz/emprecords/pkg/configuration"
)

func TestDefault(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := application.New(&application.ApplicationOptions{
		DB:     &testhelpers.FakeDB{},
		Logger: logger,
	})
	require.NoError(t, hrm.NewModule(nil).Register(app))

	srv := Default(&DefaultOptions{
		Logger: logger,
		Configuration: &configuration.Configuration{
			RequestIDHeader: "X-Request-ID",
			RealIPHeader:    "X-Real-IP",
			CorsOrigins:     []string{"http://localhost:3000"},
		},
		Application: app,
	})
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get_docs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"Not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/create_user", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	require.Equal(t, "request completed", hook.LastEntry().Message)
}

package version_test

import (
	"net/http"
	"testing"

	"github.com/lk16/reversi/internal/routes/version"
	"github.com/lk16/reversi/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestVersionEndpoint(t *testing.T) {
	app := tests.NewTestApp(t)

	resp := tests.Do(t, app, http.MethodGet, "/version", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response version.VersionResponse
	tests.Decode(t, resp, &response)
	require.NotEmpty(t, response.Commit)
}

package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"kassa/internal/errors"
	"kassa/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsJSON = `[
  {"code": "A1", "name": "Manga vol 1", "price": 1233, "state": "BR", "itemtype": "manga-finnish", "vendor": 7},
  {"code": "B2", "name": "Poster", "price": "ask", "state": "SO", "itemtype": "other", "vendor": 7},
  {"code": "C3", "name": "Lost thing", "price": 100, "state": "XX", "itemtype": "other", "vendor": 7}
]`

func newServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?"+r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/kirppu/testcon/api/checkout/item/search", "/kirppu/testcon/api/checkout/item/list":
			fmt.Fprint(w, itemsJSON)
		case "/kirppu/testcon/api/checkout/vendor/get":
			fmt.Fprint(w, `{"id": 7, "name": "Alice"}`)
		default:
			http.Error(w, "no such endpoint", http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &paths
}

func writeConfig(t *testing.T, serverURL string) string {
	t.Helper()
	return testutils.WriteFile(t, t.TempDir(), "config.yaml", fmt.Sprintf(`server:
  url: %s
  event: testcon
  timeout_seconds: 5
alert:
  blink_count: 2
  blink_interval_ms: 100
ui:
  start_mode: item_find
log:
  level: warn
`, serverURL))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return testutils.StripANSI(out.String()), err
}

func TestModesCommand(t *testing.T) {
	out, err := run(t, "modes", "--config", writeConfig(t, "http://localhost:1"))
	require.NoError(t, err)
	assert.Contains(t, out, "* item_find")
	assert.Contains(t, out, "  vendor_report")
}

func TestSearchCommand(t *testing.T) {
	srv, paths := newServer(t)
	cfgPath := writeConfig(t, srv.URL)

	out, err := run(t, "search", "manga", "--code", "a1", "--state", "BR", "--state", "ST", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Manga vol 1")
	assert.Contains(t, out, "12.33 €")
	assert.Contains(t, out, "ask")

	require.Len(t, *paths, 1)
	assert.Contains(t, (*paths)[0], "code=A1")
	assert.Contains(t, (*paths)[0], "item_state=BR+ST")
}

func TestSearchCommandRounded(t *testing.T) {
	srv, _ := newServer(t)
	out, err := run(t, "search", "--rounded", "--config", writeConfig(t, srv.URL))
	require.NoError(t, err)
	assert.Contains(t, out, "12.35 € (12.33 €)")
}

func TestReportCommand(t *testing.T) {
	srv, _ := newServer(t)
	out, err := run(t, "report", "--vendor", "7", "--config", writeConfig(t, srv.URL))
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Compensable")
	assert.Contains(t, out, "Returnable")
	assert.NotContains(t, out, "Lost thing", "unknown states are left out")
}

func TestReportCommandFilter(t *testing.T) {
	srv, _ := newServer(t)
	out, err := run(t, "report", "--vendor", "7", "--filter", "poster", "--config", writeConfig(t, srv.URL))
	require.NoError(t, err)
	assert.Contains(t, out, "Compensable")
	assert.NotContains(t, out, "Returnable")
}

func TestReportCommandInvalidFilter(t *testing.T) {
	_, err := run(t, "report", "--vendor", "7", "--filter", "[", "--config", writeConfig(t, "http://localhost:1"))
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestReportCommandServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "vendor missing", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := run(t, "report", "--vendor", "7", "--config", writeConfig(t, srv.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404: vendor missing")
}

func TestInvalidConfigIsReported(t *testing.T) {
	path := testutils.WriteFile(t, t.TempDir(), "config.yaml", "server:\n  url: not a url\n")
	_, err := run(t, "modes", "--config", path)
	assert.True(t, errors.IsInvalidConfig(err))
}

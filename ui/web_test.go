package ui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rcpanel/core/applauncher"
	"rcpanel/core/persistence"
	"rcpanel/core/settings"
	"rcpanel/models"
	"rcpanel/service/panel"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

const (
	viewerPath = "/opt/viewer/CmRcViewer.exe"
	csvPath    = "/data/ad_pc.csv"
	origin     = "http://localhost:5173"
)

type stubSpawner struct {
	calls int
	err   error
}

func (s *stubSpawner) Spawn(string, []string, applauncher.SpawnOptions) error {
	s.calls++
	return s.err
}

type testEnv struct {
	handler http.Handler
	panel   *panel.Panel
	spawner *stubSpawner
	manager *settings.Manager
}

func newTestEnv(t *testing.T, system string) *testEnv {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, viewerPath, []byte("MZ"), 0o755))
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().
		String("Имя,Тип,Описание\nPC-1,desk,Иванов И.И.\nbroken-row\nPC-2,laptop,Петров\n")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, csvPath, []byte(encoded), 0o644))

	log, _ := logtest.NewNullLogger()
	manager := settings.NewManager(persistence.NewSettingsStore(fs))
	s := manager.Current()
	s.ViewerPath = viewerPath
	s.CSVPath = csvPath
	require.NoError(t, manager.Update(s))

	spawner := &stubSpawner{}
	launcher := applauncher.NewAppLauncher(fs, log).WithSpawner(spawner).WithSystem(system)
	p := panel.NewPanel(manager, launcher, fs, log)

	return &testEnv{
		handler: NewWebInterface(p, []string{origin}, log).Handler(),
		panel:   p,
		spawner: spawner,
		manager: manager,
	}
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestComputers(t *testing.T) {
	env := newTestEnv(t, "windows")

	rec := env.do(http.MethodGet, "/computers", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var computers []models.Computer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &computers))
	assert.Equal(t, []models.Computer{
		{Name: "PC-1", Type: "desk", FIO: "Иванов И.И."},
		{Name: "PC-2", Type: "laptop", FIO: "Петров"},
	}, computers)
}

func TestComputersEmptyIsArray(t *testing.T) {
	env := newTestEnv(t, "windows")
	s := env.manager.Current()
	s.CSVPath = "/missing.csv"
	require.NoError(t, env.manager.Update(s))

	rec := env.do(http.MethodGet, "/computers", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestLaunchOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		system   string
		url      string
		method   string
		spawnErr error
		status   int
		code     string
		spawned  int
	}{
		{"Started", "windows", "/launch?ip=10.114.2.5", http.MethodGet, nil, http.StatusOK, "", 1},
		{"Connect route", "windows", "/connect/pc-114", http.MethodPost, nil, http.StatusOK, "", 1},
		{"Invalid target", "windows", "/launch?ip=10.999.1.1", http.MethodGet, nil, http.StatusBadRequest, "invalid_target", 0},
		{"Missing target", "windows", "/launch", http.MethodGet, nil, http.StatusBadRequest, "invalid_target", 0},
		{"Injection attempt", "windows", "/launch?ip=pc%26calc", http.MethodGet, nil, http.StatusBadRequest, "invalid_target", 0},
		{"Unsupported platform", "linux", "/launch?ip=pc-114", http.MethodGet, nil, http.StatusNotImplemented, "platform_unsupported", 0},
		{"Spawn failure", "windows", "/launch?ip=pc-114", http.MethodGet, errors.New("boom"), http.StatusInternalServerError, "spawn_failed", 1},
		{"Open folder", "windows", "/open-folder?target=pc-114", http.MethodGet, nil, http.StatusOK, "", 1},
		{"Open folder invalid", "windows", "/open-folder?target=..%5Cx", http.MethodGet, nil, http.StatusBadRequest, "invalid_target", 0},
		{"Ping", "windows", "/ping?target=10.0.0.1", http.MethodGet, nil, http.StatusOK, "", 1},
		{"Ping unsupported", "darwin", "/ping?target=10.0.0.1", http.MethodGet, nil, http.StatusNotImplemented, "platform_unsupported", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.system)
			env.spawner.err = tt.spawnErr

			rec := env.do(tt.method, tt.url, "")

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.spawned, env.spawner.calls)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.code == "" {
				assert.Equal(t, "success", body["status"])
				assert.NotEmpty(t, body["id"])
			} else {
				assert.Equal(t, tt.code, body["code"])
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestLaunchExecutableNotFound(t *testing.T) {
	env := newTestEnv(t, "windows")
	s := env.manager.Current()
	s.ViewerPath = ""
	require.NoError(t, env.manager.Update(s))

	rec := env.do(http.MethodGet, "/launch?ip=pc-114", "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "executable_not_found")
	assert.Zero(t, env.spawner.calls)
}

func TestSettingsRoundTrip(t *testing.T) {
	env := newTestEnv(t, "windows")

	rec := env.do(http.MethodPost, "/settings", `{"cmrcviewer_path":"C:\\v.exe","dataSource":"ps","psScriptPath":"C:\\ad.ps1","theme":"dark","presets":[{"name":"Касса","ip":"10.0.0.5"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var s models.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, `C:\v.exe`, s.ViewerPath)
	assert.Equal(t, models.DataSourceScript, s.DataSource)
	assert.Equal(t, []models.Preset{{Name: "Касса", IP: "10.0.0.5"}}, s.Presets)
	assert.True(t, s.ShowReservedComputersBlock)

	// Скриптовый источник пока всегда пуст
	rec = env.do(http.MethodGet, "/computers", "")
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestSaveSettingsRejected(t *testing.T) {
	env := newTestEnv(t, "windows")

	rec := env.do(http.MethodPost, "/settings", `{"dataSource":"direct-ad"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_settings")

	rec = env.do(http.MethodPost, "/settings", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad_request")

	assert.Equal(t, viewerPath, env.manager.Current().ViewerPath)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t, "windows")

	rec := env.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())

	env.do(http.MethodGet, "/computers", "")
	rec = env.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rcpanel_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, "windows")

	req := httptest.NewRequest(http.MethodOptions, "/computers", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/computers", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSaveSettingsWithBlankRows(t *testing.T) {
	env := newTestEnv(t, "windows")

	rec := env.do(http.MethodPost, "/settings", `{"dataSource":"csv","presets":[{"name":"","ip":""}],"reservedComputers":[{"name":"","target":""}]}`)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, env.manager.Current().Presets, 1)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PALETTE_CONFIG_DIR", dir)
	for _, k := range []string{
		"PALETTE_API_URL", "PALETTE_WS_URL", "PALETTE_TOKEN_PATH", "PALETTE_UI_STATE_PATH",
		"PALETTE_PAGE_SIZE", "PALETTE_REQUEST_TIMEOUT",
		"PALETTE_LOG_LEVEL", "PALETTE_LOG_FORMAT", "PALETTE_LOG_OUTPUT",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, "ws://localhost:5000/ws", cfg.WSURL)
	assert.Equal(t, filepath.Join(dir, "token"), cfg.TokenPath)
	assert.Equal(t, filepath.Join(dir, "ui_state.json"), cfg.UIStatePath)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, LogConfig{Level: "info", Format: "json", Output: filepath.Join(dir, "palette.log")}, cfg.Log)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	env := "PALETTE_PAGE_SIZE=42\nPALETTE_API_URL=https://dotenv.palette.example\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Setenv("PALETTE_API_URL", "https://real.palette.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.PageSize)
	assert.Equal(t, "https://real.palette.example", cfg.APIURL, "real environment wins over .env")
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	toml := `
api_url = "https://api.palette.example/"
page_size = 50

[log]
level = "debug"
format = "console"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))
	t.Setenv("PALETTE_PAGE_SIZE", "30")
	t.Setenv("PALETTE_REQUEST_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.palette.example", cfg.APIURL)
	assert.Equal(t, "wss://api.palette.example/ws", cfg.WSURL)
	assert.Equal(t, 30, cfg.PageSize, "env overrides file")
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_ExplicitWSURL(t *testing.T) {
	isolate(t)
	t.Setenv("PALETTE_API_URL", "https://api.palette.example")
	t.Setenv("PALETTE_WS_URL", "wss://push.palette.example/socket")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "wss://push.palette.example/socket", cfg.WSURL)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non-https remote", map[string]string{"PALETTE_API_URL": "http://insecure.example"}},
		{"relative url", map[string]string{"PALETTE_API_URL": "palette.example"}},
		{"odd scheme", map[string]string{"PALETTE_API_URL": "ftp://palette.example"}},
		{"page size too large", map[string]string{"PALETTE_PAGE_SIZE": "500"}},
		{"page size zero", map[string]string{"PALETTE_PAGE_SIZE": "0"}},
		{"bad log level", map[string]string{"PALETTE_LOG_LEVEL": "loud"}},
		{"bad log format", map[string]string{"PALETTE_LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_LoopbackHTTPAllowed(t *testing.T) {
	isolate(t)
	t.Setenv("PALETTE_API_URL", "http://127.0.0.1:8080/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.APIURL)
	assert.Equal(t, "ws://127.0.0.1:8080/ws", cfg.WSURL)
}

func TestUIState_LoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui_state.json")

	st, err := LoadUIState(path)
	require.NoError(t, err, "missing state should not error")
	assert.Equal(t, UIState{}, st)

	want := UIState{LastView: "top"}
	require.NoError(t, SaveUIState(path, want))
	got, err := LoadUIState(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, os.WriteFile(path, []byte("not-json"), 0o600))
	_, err = LoadUIState(path)
	assert.Error(t, err)
}

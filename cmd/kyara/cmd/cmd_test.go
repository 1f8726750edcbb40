package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listBody = `{
  "pagination": {"current_page": 1, "last_visible_page": 3, "has_next_page": true},
  "data": [
    {"mal_id": 40, "name": "Luffy Monkey D.", "name_kanji": "モンキー・D・ルフィ", "favorites": 120000},
    {"mal_id": 17, "name": "Naruto Uzumaki", "favorites": 75000}
  ]
}`

const detailBody = `{"data": {
  "mal_id": 40, "name": "Luffy Monkey D.", "favorites": 120000,
  "url": "https://myanimelist.net/character/40",
  "nicknames": ["Straw Hat"],
  "anime": [{"role": "Main", "anime": {"mal_id": 21, "title": "One Piece"}}]
}}`

// fakeAPI serves just enough of the Jikan API for the commands.
func fakeAPI(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/characters", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "nobody" {
			_, _ = w.Write([]byte(`{"data": [], "pagination": {"current_page": 1, "last_visible_page": 1, "has_next_page": false}}`))
			return
		}
		_, _ = w.Write([]byte(listBody))
	})
	mux.HandleFunc("/characters/40/full", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(detailBody))
	})
	mux.HandleFunc("/anime/21", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"mal_id": 21, "title": "One Piece", "score": 8.7, "url": "https://myanimelist.net/anime/21"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

// setup points kyara at a fake API and temp directories, returning the
// config directory to pass with --config.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("KYARA_API_BASE_URL", fakeAPI(t))
	t.Setenv("KYARA_API_RATE_LIMIT", "0s")
	t.Setenv("KYARA_EXPLORER_DELAY", "0s")
	t.Setenv("KYARA_LOG_LEVEL", "disabled")
	return filepath.Join(dir, "config")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	cfg := setup(t)

	out, err := execute(t, "list", "--config", cfg, "--page", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Luffy Monkey D.")
	assert.Contains(t, out, "Naruto Uzumaki")
	assert.Contains(t, out, "Página 1 de 3")
}

func TestSearchCommandNoResults(t *testing.T) {
	cfg := setup(t)

	out, err := execute(t, "search", "nobody", "--config", cfg, "--page", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"nobody"`)
}

func TestShowCommand(t *testing.T) {
	cfg := setup(t)

	out, err := execute(t, "show", "40", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Luffy Monkey D.")
	assert.Contains(t, out, "Straw Hat")
	assert.Contains(t, out, "One Piece")
}

func TestShowCommandRejectsBadID(t *testing.T) {
	cfg := setup(t)

	_, err := execute(t, "show", "abc", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character id")
}

func TestFavoritesLifecycle(t *testing.T) {
	cfg := setup(t)

	out, err := execute(t, "favorites", "count", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "0", strings.TrimSpace(out))

	out, err = execute(t, "favorites", "add", "40", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Luffy Monkey D.")

	out, err = execute(t, "favorites", "count", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(out))

	out, err = execute(t, "favorites", "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Luffy Monkey D.")

	out, err = execute(t, "explore", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "One Piece")
	assert.Contains(t, out, "8.7")

	out, err = execute(t, "favorites", "remove", "40", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Eliminado")

	out, err = execute(t, "favorites", "count", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "0", strings.TrimSpace(out))
}

func TestInitCommand(t *testing.T) {
	cfg := setup(t)

	_, err := execute(t, "init", "--config", cfg, "--force=false")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg, "config.yaml"))
	require.NoError(t, err)

	_, err = execute(t, "init", "--config", cfg, "--force=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "init", "--config", cfg, "--force")
	require.NoError(t, err)
}

package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/cherokee-verbs/internal/adapter/source"
	"github.com/heartmarshall/cherokee-verbs/internal/app/loader"
	"github.com/heartmarshall/cherokee-verbs/internal/config"
	"github.com/heartmarshall/cherokee-verbs/internal/service/browse"
	"github.com/heartmarshall/cherokee-verbs/internal/transport/middleware"
)

var datasetFiles = map[string]string{
	"dictionary.csv": `,Entry,Syllabary,Part_of_Speech,Definition,Other_Forms,Source_ID
0,adadega,ᎠᏓᏕᎦ,verb (intransitive),it’s bouncing,3rd:gadadega^ᎦᏓᏕᎦ^gạdạdéga,12.1
1,ama,ᎠᎹ,n.,water,,300.2
`,
	"reconstructable_verbs.json": `[{"entry_no": 12, "definition": "bounce", "class_name": "A", "h_grade_root": "a-dade-g", "glottal_grade_root": ""}]`,
	"sentences.csv": `ID,Syllabary,Transliteration,Tone,English
s1,ᎠᏓᏕᎦ,adadega,adadéga,it is bouncing
`,
	"join_table.csv": `Entry_ID,Sentence_ID,Word_Index
0,s1,0
`,
	"classses_expanded.json": `{"A": {"present": "-a"}}`,
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range datasetFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		Source: config.SourceConfig{
			Kind:           config.SourceDir,
			Dir:            dir,
			LoadTimeout:    5 * time.Second,
			DictionaryFile: "dictionary.csv",
			MorphologyFile: "reconstructable_verbs.json",
			SentencesFile:  "sentences.csv",
			LinksFile:      "join_table.csv",
			ClassesFile:    "classses_expanded.json",
		},
		Search:    config.SearchConfig{DefaultLimit: 50, MinQueryLen: 1, CacheSize: 16},
		CORS:      config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET", AllowedHeaders: "Content-Type"},
		RateLimit: config.RateLimitConfig{Enabled: true, PerMinute: 1000},
	}
}

func newTestServer(t *testing.T, cfg *config.Config, load bool) *httptest.Server {
	t.Helper()
	logger := discardLogger()

	fetcher, closeFetcher, err := NewFetcher(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(closeFetcher)

	svc := browse.NewService(logger, loader.New(logger, fetcher, FilesFromConfig(cfg.Source)), cfg.Search)
	if load {
		require.NoError(t, svc.Reload(context.Background()))
	}

	rl := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(rl.Stop)

	srv := httptest.NewServer(NewHandler(cfg, logger, svc, rl))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestFilesFromConfig(t *testing.T) {
	t.Parallel()

	got := FilesFromConfig(testConfig("x").Source)
	assert.Equal(t, loader.DefaultFiles(), got)
}

func TestNewFetcher(t *testing.T) {
	t.Parallel()

	dirCfg := testConfig(t.TempDir())
	f, closeFn, err := NewFetcher(context.Background(), dirCfg, discardLogger())
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, &source.Dir{}, f)

	httpCfg := testConfig("")
	httpCfg.Source.Kind = config.SourceHTTP
	httpCfg.Source.BaseURL = "https://example.org/data"
	f, closeFn, err = NewFetcher(context.Background(), httpCfg, discardLogger())
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, &source.HTTP{}, f)

	badCfg := testConfig("")
	badCfg.Source.Kind = "s3"
	_, _, err = NewFetcher(context.Background(), badCfg, discardLogger())
	assert.Error(t, err)
}

func TestNewHandler_Loaded(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testConfig(writeDataset(t)), true)

	resp := get(t, srv.URL+"/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, srv.URL+"/api/search?q=bounc")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	var body struct {
		Count   int `json:"count"`
		Results []struct {
			Row struct {
				Headword string `json:"headword"`
				HRoot    string `json:"h_root"`
				GRoot    string `json:"g_root"`
			} `json:"row"`
		} `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "adadega", body.Results[0].Row.Headword)
	assert.Equal(t, "a-dade-g", body.Results[0].Row.HRoot)
	assert.Equal(t, "null", body.Results[0].Row.GRoot)

	resp = get(t, srv.URL+"/api/roots/a-dade-g")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, srv.URL+"/api/sentences/0")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, srv.URL+"/api/entries/99")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewHandler_NotLoaded(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testConfig(t.TempDir()), false)

	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/live").StatusCode)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv.URL+"/ready").StatusCode)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv.URL+"/api/search?q=a").StatusCode)
}

func TestNewHandler_RateLimitDisabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig(writeDataset(t))
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, PerMinute: 1}
	limited := newTestServer(t, cfg, true)

	assert.Equal(t, http.StatusOK, get(t, limited.URL+"/live").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, get(t, limited.URL+"/live").StatusCode)

	cfg = testConfig(writeDataset(t))
	cfg.RateLimit = config.RateLimitConfig{Enabled: false, PerMinute: 1}
	open := newTestServer(t, cfg, true)

	for range 3 {
		assert.Equal(t, http.StatusOK, get(t, open.URL+"/live").StatusCode)
	}
}

type reloaderFunc func(ctx context.Context) error

func (f reloaderFunc) Reload(ctx context.Context) error { return f(ctx) }

func TestWatchReloads_Trigger(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	called := make(chan struct{}, 1)
	svc := reloaderFunc(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("reload should run under the load timeout")
		}
		called <- struct{}{}
		return nil
	})

	trigger := make(chan os.Signal, 1)
	done := make(chan struct{})
	go func() {
		WatchReloads(ctx, discardLogger(), svc, config.SourceConfig{LoadTimeout: time.Second}, trigger)
		close(done)
	}()

	trigger <- os.Interrupt
	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("reload was not triggered")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("WatchReloads did not return after cancel")
	}
}

func TestWatchReloads_IntervalKeepsGoingAfterFailure(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	svc := reloaderFunc(func(context.Context) error {
		calls.Add(1)
		return errors.New("source unavailable")
	})

	go WatchReloads(ctx, discardLogger(), svc, config.SourceConfig{
		LoadTimeout:    time.Second,
		ReloadInterval: 10 * time.Millisecond,
	}, nil)

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

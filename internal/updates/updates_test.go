// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package updates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-github/v68/github"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/addnotespace/internal/httputil"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// releaseServer serves body for the latest-release endpoint of owner/repo.
func releaseServer(t *testing.T, status int, body string) (*httptest.Server, *github.Client) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/releases/latest", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, clientFor(t, ts, ts.Client())
}

func clientFor(t *testing.T, ts *httptest.Server, hc *http.Client) *github.Client {
	t.Helper()
	c := github.NewClient(hc)
	u, err := url.Parse(ts.URL + "/")
	require.NoError(t, err)
	c.BaseURL = u
	return c
}

func TestCheckForUpdate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		current   string
		wantVer   string
		wantNewer bool
	}{
		{
			name:      "newer release",
			body:      `{"name": "v1.3.0", "tag_name": "v1.3.0", "html_url": "https://example.com/r/1.3.0"}`,
			current:   "1.2.0",
			wantVer:   "1.3.0",
			wantNewer: true,
		},
		{
			name:    "same version",
			body:    `{"name": "1.2.0", "tag_name": "v1.2.0"}`,
			current: "1.2.0",
			wantVer: "1.2.0",
		},
		{
			name:    "running a newer build",
			body:    `{"name": "1.2.0"}`,
			current: "1.10.0",
			wantVer: "1.2.0",
		},
		{
			name:      "name empty falls back to tag",
			body:      `{"name": "", "tag_name": "v2.0.0"}`,
			current:   "1.2.0",
			wantVer:   "2.0.0",
			wantNewer: true,
		},
		{
			name:      "non semver compares by inequality",
			body:      `{"name": "spring release"}`,
			current:   "dev",
			wantVer:   "spring release",
			wantNewer: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := releaseServer(t, http.StatusOK, tt.body)
			ch, err := NewChecker("owner/repo", tt.current, "", WithClient(client), WithLogger(quietLogger()))
			require.NoError(t, err)

			rel, newer, err := ch.CheckForUpdate(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantVer, rel.Version)
			assert.Equal(t, tt.wantNewer, newer)
		})
	}
}

func TestCheckForUpdate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{"not found", http.StatusNotFound, `{"message": "Not Found"}`, "fetching latest release of owner/repo"},
		{"no name or tag", http.StatusOK, `{}`, "has no name or tag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := releaseServer(t, tt.status, tt.body)
			ch, err := NewChecker("owner/repo", "1.0.0", "", WithClient(client), WithLogger(quietLogger()))
			require.NoError(t, err)

			_, _, err = ch.CheckForUpdate(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCheckForUpdate_RetriesAndSendsToken(t *testing.T) {
	var calls int32
	var auth atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"name": "9.9.9"}`)
	}))
	defer ts.Close()

	client := clientFor(t, ts, newHTTPClient("ghp_secret", quietLogger()))
	ch, err := NewChecker("owner/repo", "1.0.0", "", WithClient(client), WithLogger(quietLogger()))
	require.NoError(t, err)

	rel, newer, err := ch.CheckForUpdate(context.Background())
	require.NoError(t, err)
	assert.True(t, newer)
	assert.Equal(t, "9.9.9", rel.Version)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "Bearer ghp_secret", auth.Load())
}

func TestNewChecker_Repository(t *testing.T) {
	for _, repo := range []string{"nosplit", "/name", "owner/", "a/b/c"} {
		t.Run(repo, func(t *testing.T) {
			_, err := NewChecker(repo, "1.0.0", "")
			assert.Error(t, err)
		})
	}

	ch, err := NewChecker("", "1.0.0", "")
	require.NoError(t, err)
	assert.Equal(t, "pdiddy", ch.owner)
	assert.Equal(t, "addnotespace", ch.repo)
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		latest, current string
		want            bool
	}{
		{"1.0.1", "1.0.0", true},
		{"1.0.0", "1.0.0", false},
		{"0.9.0", "1.0.0", false},
		{"v2.0.0", "1.9.9", true},
		{"1.0.0", "dev", true},
		{"nightly", "nightly", false},
	}
	for _, tt := range tests {
		t.Run(tt.latest+"_vs_"+tt.current, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNewer(tt.latest, tt.current))
		})
	}
}

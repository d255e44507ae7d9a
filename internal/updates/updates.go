// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package updates checks GitHub for a newer release of the tool.
package updates

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/go-github/v68/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/pdiddy/addnotespace/internal/httputil"
)

// DefaultRepository is the GitHub repository whose releases are checked.
const DefaultRepository = "pdiddy/addnotespace"

const requestTimeout = 15 * time.Second

// Release describes the latest published release.
type Release struct {
	Version     string
	Tag         string
	URL         string
	PublishedAt time.Time
}

// Checker compares the running version with the latest GitHub release.
type Checker struct {
	client  *github.Client
	owner   string
	repo    string
	current string
	logger  logrus.FieldLogger
}

// Option configures a Checker.
type Option func(*Checker)

// WithClient replaces the GitHub client, e.g. to point it at a test server.
func WithClient(c *github.Client) Option {
	return func(ch *Checker) { ch.client = c }
}

// WithLogger sets the logger for retry and comparison diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(ch *Checker) { ch.logger = l }
}

// NewChecker returns a Checker for repository ("owner/name") and the running
// version current. A non-empty token authenticates the requests.
func NewChecker(repository, current, token string, opts ...Option) (*Checker, error) {
	if repository == "" {
		repository = DefaultRepository
	}
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("repository %q must have the form owner/name", repository)
	}

	ch := &Checker{
		owner:   owner,
		repo:    repo,
		current: current,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(ch)
	}
	if ch.client == nil {
		ch.client = github.NewClient(newHTTPClient(token, ch.logger))
	}
	return ch, nil
}

// newHTTPClient builds the transport chain: optional OAuth token on top of
// HTTP 429 retries.
func newHTTPClient(token string, logger logrus.FieldLogger) *http.Client {
	var transport http.RoundTripper = &httputil.RetryTransport{Logger: logger}
	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}
	return &http.Client{Timeout: requestTimeout, Transport: transport}
}

// CheckForUpdate fetches the latest release and reports whether it differs
// from (and, when both are semantic versions, is newer than) the running
// version.
func (c *Checker) CheckForUpdate(ctx context.Context) (Release, bool, error) {
	rel, _, err := c.client.Repositories.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		var rle *github.RateLimitError
		if errors.As(err, &rle) {
			return Release{}, false, fmt.Errorf("GitHub rate limit reached, resets at %s: %w", rle.Rate.Reset.Format(time.Kitchen), err)
		}
		return Release{}, false, fmt.Errorf("fetching latest release of %s/%s: %w", c.owner, c.repo, err)
	}

	latest := Release{
		Version:     releaseVersion(rel),
		Tag:         rel.GetTagName(),
		URL:         rel.GetHTMLURL(),
		PublishedAt: rel.GetPublishedAt().Time,
	}
	if latest.Version == "" {
		return latest, false, fmt.Errorf("latest release of %s/%s has no name or tag", c.owner, c.repo)
	}

	newer := IsNewer(latest.Version, c.current)
	c.logger.WithFields(logrus.Fields{
		"current": c.current,
		"latest":  latest.Version,
		"newer":   newer,
	}).Debug("update check")
	return latest, newer, nil
}

// releaseVersion takes the release name, falling back to the tag, and strips
// a leading "v".
func releaseVersion(rel *github.RepositoryRelease) string {
	v := strings.TrimSpace(rel.GetName())
	if v == "" {
		v = strings.TrimSpace(rel.GetTagName())
	}
	return strings.TrimPrefix(v, "v")
}

// IsNewer reports whether latest should be offered over current. Both are
// compared as semantic versions when they parse; otherwise any difference
// counts as newer.
func IsNewer(latest, current string) bool {
	lv, lerr := semver.NewVersion(latest)
	cv, cerr := semver.NewVersion(current)
	if lerr != nil || cerr != nil {
		return strings.TrimPrefix(latest, "v") != strings.TrimPrefix(current, "v")
	}
	return lv.GreaterThan(cv)
}

// Package release finds content bundles published as GitHub release assets
// and downloads the one matching a learner's board and class.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultOwner   = "abhisek"
	defaultRepo    = "studydeck-content"
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 30 * time.Second
)

// Feed reads the releases of the content repository.
type Feed struct {
	client  *http.Client
	owner   string
	repo    string
	baseURL string
}

// Option configures a Feed.
type Option func(*Feed)

// WithTimeout sets the HTTP timeout for API calls and downloads.
func WithTimeout(d time.Duration) Option {
	return func(f *Feed) { f.client.Timeout = d }
}

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(url string) Option {
	return func(f *Feed) { f.baseURL = url }
}

// WithRepository reads releases from owner/repo instead.
func WithRepository(owner, repo string) Option {
	return func(f *Feed) {
		f.owner = owner
		f.repo = repo
	}
}

// NewFeed creates a Feed for the published content releases.
func NewFeed(opts ...Option) *Feed {
	f := &Feed{
		client:  &http.Client{Timeout: defaultTimeout},
		owner:   defaultOwner,
		repo:    defaultRepo,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Asset is one downloadable file of a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// Release is a tagged content release.
type Release struct {
	Tag    string  `json:"tag_name"`
	URL    string  `json:"html_url"`
	Assets []Asset `json:"assets"`
}

// Asset returns the asset called name.
func (r *Release) Asset(name string) (Asset, bool) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, true
		}
	}
	return Asset{}, false
}

// Latest returns the newest release.
func (f *Feed) Latest(ctx context.Context) (*Release, error) {
	return f.release(ctx, "latest")
}

// Tagged returns the release with the given tag.
func (f *Feed) Tagged(ctx context.Context, tag string) (*Release, error) {
	if !semver.IsValid(tag) {
		return nil, fmt.Errorf("invalid release tag %q", tag)
	}
	return f.release(ctx, "tags/"+tag)
}

func (f *Feed) release(ctx context.Context, path string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/%s", strings.TrimRight(f.baseURL, "/"), f.owner, f.repo, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if !semver.IsValid(rel.Tag) {
		return nil, fmt.Errorf("release has invalid tag %q", rel.Tag)
	}
	return &rel, nil
}

// CheckResult compares the installed content with the latest release.
type CheckResult struct {
	Installed       string
	Latest          *Release
	UpdateAvailable bool
}

// Check fetches the latest release and compares it with installed, the tag
// of the content currently in the store. Nothing installed always counts as
// behind.
func (f *Feed) Check(ctx context.Context, installed string) (*CheckResult, error) {
	rel, err := f.Latest(ctx)
	if err != nil {
		return nil, err
	}
	result := &CheckResult{Installed: installed, Latest: rel}
	if !semver.IsValid(installed) {
		result.UpdateAvailable = true
	} else {
		result.UpdateAvailable = semver.Compare(rel.Tag, installed) > 0
	}
	return result, nil
}

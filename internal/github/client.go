// Package github reads repository history over the GitHub REST API so a
// version can be calculated without a local clone.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// ErrNoAuth is returned by NewClient when no credentials are configured.
var ErrNoAuth = errors.New("no GitHub authentication provided: set GITHUB_TOKEN, use --token, or provide --github-app-id and --github-app-key")

// ClientConfig holds the configuration for creating a GitHub API client.
type ClientConfig struct {
	// Token is a GitHub personal access token or GITHUB_TOKEN.
	// Falls back to GITHUB_TOKEN env var if empty.
	Token string

	// AppID is the GitHub App ID for app authentication.
	// Falls back to GH_APP_ID env var if zero.
	AppID int64

	// AppKey is the GitHub App private key PEM content.
	// Falls back to GH_APP_PRIVATE_KEY env var if empty.
	AppKey string

	// AppKeyPath is the path to a GitHub App private key PEM file, used
	// when no key content is given. Falls back to GH_APP_PRIVATE_KEY_PATH.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	// Falls back to GITHUB_API_URL env var if empty.
	BaseURL string

	// Owner is the repository owner, used to find the app installation.
	Owner string
}

// NewClient creates an authenticated GitHub API client.
// Auth resolution order: Token → GITHUB_TOKEN env → App credentials.
func NewClient(ctx context.Context, cfg ClientConfig) (*gh.Client, error) {
	baseURL := ResolveBaseURL(cfg.BaseURL)

	if token := resolveString(cfg.Token, "GITHUB_TOKEN"); token != "" {
		return newTokenClient(ctx, token, baseURL)
	}

	appID := cfg.AppID
	if appID == 0 {
		if s := os.Getenv("GH_APP_ID"); s != "" {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				appID = v
			}
		}
	}
	appKey := resolveString(cfg.AppKey, "GH_APP_PRIVATE_KEY")
	appKeyPath := resolveString(cfg.AppKeyPath, "GH_APP_PRIVATE_KEY_PATH")

	if appID != 0 && (appKey != "" || appKeyPath != "") {
		pem := []byte(appKey)
		if appKey == "" {
			data, err := os.ReadFile(appKeyPath)
			if err != nil {
				return nil, fmt.Errorf("creating GitHub App transport: reading key: %w", err)
			}
			pem = data
		}
		return newAppClient(ctx, appID, pem, cfg.Owner, baseURL)
	}

	return nil, ErrNoAuth
}

func newTokenClient(ctx context.Context, token, baseURL string) (*gh.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return withBaseURL(gh.NewClient(oauth2.NewClient(ctx, ts)), baseURL)
}

// newAppClient authenticates as the app, looks up the installation for
// owner and returns a client acting as that installation.
func newAppClient(ctx context.Context, appID int64, pem []byte, owner, baseURL string) (*gh.Client, error) {
	appTransport, err := ghinstallation.NewAppsTransport(http.DefaultTransport, appID, pem)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub App transport: %w", err)
	}
	if baseURL != "" {
		appTransport.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	appClient, err := withBaseURL(gh.NewClient(&http.Client{Transport: appTransport}), baseURL)
	if err != nil {
		return nil, err
	}

	installationID, err := findInstallation(ctx, appClient, owner)
	if err != nil {
		return nil, err
	}

	installTransport := ghinstallation.NewFromAppsTransport(appTransport, installationID)
	return withBaseURL(gh.NewClient(&http.Client{Transport: installTransport}), baseURL)
}

func withBaseURL(client *gh.Client, baseURL string) (*gh.Client, error) {
	if baseURL == "" {
		return client, nil
	}
	c, err := client.WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("setting enterprise URL: %w", err)
	}
	return c, nil
}

// findInstallation finds the GitHub App installation for owner.
func findInstallation(ctx context.Context, client *gh.Client, owner string) (int64, error) {
	opts := &gh.ListOptions{PerPage: 100}
	for {
		installations, resp, err := client.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return 0, fmt.Errorf("listing GitHub App installations: %w", err)
		}
		for _, inst := range installations {
			if strings.EqualFold(inst.GetAccount().GetLogin(), owner) {
				return inst.GetID(), nil
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return 0, fmt.Errorf("no GitHub App installation found for owner %q", owner)
}

// ParseRepository splits "owner/repo" into its parts.
func ParseRepository(s string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSuffix(s, ".git"), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repo", s)
	}
	return owner, repo, nil
}

// IsNotFoundError reports whether err is an HTTP 404 from the GitHub API.
func IsNotFoundError(err error) bool {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}

// resolveString returns the flag value if non-empty, otherwise the env var value.
func resolveString(flag, envKey string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(envKey)
}

// ResolveBaseURL resolves the GitHub API base URL from the flag value or
// the GITHUB_API_URL environment variable. Empty means github.com.
func ResolveBaseURL(flagValue string) string {
	return resolveString(flagValue, "GITHUB_API_URL")
}

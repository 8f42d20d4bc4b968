package vcs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/railstart-labs/railstart/internal/branding"
)

// ErrRepoExists is returned when GitHub refuses to create a repository
// because the name is taken.
var ErrRepoExists = errors.New("repository already exists")

// ErrNoToken is returned when no GitHub token is configured.
var ErrNoToken = errors.New("GITHUB_TOKEN is not set")

// GitHubConfig holds the environment the GitHub client reads.
type GitHubConfig struct {
	Token  string `env:"GITHUB_TOKEN"`
	APIURL string `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
}

// LoadGitHubConfig reads GitHubConfig from the environment.
func LoadGitHubConfig() (GitHubConfig, error) {
	var cfg GitHubConfig
	if err := env.Parse(&cfg); err != nil {
		return GitHubConfig{}, fmt.Errorf("reading GitHub environment: %w", err)
	}
	return cfg, nil
}

// Repository is the subset of the GitHub repository payload railstart uses.
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
	SSHURL   string `json:"ssh_url"`
}

// GitHub creates repositories for the authenticated user.
type GitHub struct {
	cfg        GitHubConfig
	httpClient *http.Client
}

// NewGitHub returns a client. A nil httpClient gets a 30 second timeout.
func NewGitHub(cfg GitHubConfig, httpClient *http.Client) *GitHub {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &GitHub{cfg: cfg, httpClient: httpClient}
}

// CreateRepo creates a repository named name owned by the token's user.
func (g *GitHub) CreateRepo(ctx context.Context, name string) (*Repository, error) {
	if g.cfg.Token == "" {
		return nil, fmt.Errorf("creating repository %q: %w", name, ErrNoToken)
	}

	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := strings.TrimRight(g.cfg.APIURL, "/") + "/user/repos"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", branding.CLIName())
	req.Header.Set("Authorization", "Bearer "+g.cfg.Token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("creating repository %q: %w", name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusCreated:
	case http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("creating repository %q: %w", name, ErrRepoExists)
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("GitHub rejected the token (status 401); check GITHUB_TOKEN")
	case http.StatusForbidden:
		return nil, fmt.Errorf("GitHub refused the request (status 403); the token may lack the repo scope")
	default:
		return nil, fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var repo Repository
	if err := json.Unmarshal(respBody, &repo); err != nil {
		return nil, fmt.Errorf("parsing repository JSON: %w", err)
	}
	return &repo, nil
}

// SSHRemote returns the SSH clone URL for user/app.
func SSHRemote(user, app string) string {
	return fmt.Sprintf("%s:%s/%s.git", branding.GitHubSSHHost(), user, app)
}

// DryRunGitHub prints the request it would make instead of calling the API.
type DryRunGitHub struct {
	w io.Writer
}

// NewDryRunGitHub returns a DryRunGitHub writing to w.
func NewDryRunGitHub(w io.Writer) *DryRunGitHub {
	return &DryRunGitHub{w: w}
}

// CreateRepo prints the request and returns a placeholder repository.
func (d *DryRunGitHub) CreateRepo(_ context.Context, name string) (*Repository, error) {
	fmt.Fprintf(d.w, "[dry-run] POST /user/repos {\"name\": %q}\n", name)
	return &Repository{Name: name}, nil
}

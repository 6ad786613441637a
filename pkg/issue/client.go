package issue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/repository"
)

const pageSize = 100

// RESTClient is the subset of the GitHub REST client used here
type RESTClient interface {
	Get(path string, response interface{}) error
	Post(path string, body io.Reader, response interface{}) error
}

// Label represents a GitHub issue label
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// Client reads repository state that gh issue create does not expose
type Client struct {
	rest RESTClient
	repo repository.Repository
}

// NewClient creates a client for repo using the gh authentication
func NewClient(repo repository.Repository) (*Client, error) {
	opts := api.ClientOptions{}
	if repo.Host != "" {
		opts.Host = repo.Host
	}
	restClient, err := api.NewRESTClient(opts)
	if err != nil {
		return nil, NewAPIError("failed to create REST client", err)
	}
	return NewClientWithREST(restClient, repo), nil
}

// NewClientWithREST creates a client around an existing REST client
func NewClientWithREST(rest RESTClient, repo repository.Repository) *Client {
	return &Client{
		rest: rest,
		repo: repo,
	}
}

// Repository returns the owner/repo this client targets
func (c *Client) Repository() string {
	return fmt.Sprintf("%s/%s", c.repo.Owner, c.repo.Name)
}

// ExistingTitles returns the titles of all issues in the repository, open or
// closed, keyed by their normalized form
func (c *Client) ExistingTitles() (map[string]bool, error) {
	titles := make(map[string]bool)

	for page := 1; ; page++ {
		path := fmt.Sprintf("repos/%s/%s/issues?state=all&per_page=%d&page=%d",
			c.repo.Owner, c.repo.Name, pageSize, page)

		var issues []struct {
			Title       string           `json:"title"`
			PullRequest *json.RawMessage `json:"pull_request"`
		}
		if err := c.rest.Get(path, &issues); err != nil {
			return nil, NewAPIError(fmt.Sprintf("failed to list issues in %s", c.Repository()), err)
		}

		for _, is := range issues {
			// the issues endpoint also returns pull requests
			if is.PullRequest != nil {
				continue
			}
			titles[NormalizeTitle(is.Title)] = true
		}

		if len(issues) < pageSize {
			break
		}
	}

	return titles, nil
}

// Labels returns the labels defined in the repository
func (c *Client) Labels() ([]Label, error) {
	var all []Label

	for page := 1; ; page++ {
		path := fmt.Sprintf("repos/%s/%s/labels?per_page=%d&page=%d",
			c.repo.Owner, c.repo.Name, pageSize, page)

		var labels []Label
		if err := c.rest.Get(path, &labels); err != nil {
			return nil, NewAPIError(fmt.Sprintf("failed to list labels in %s", c.Repository()), err)
		}
		all = append(all, labels...)

		if len(labels) < pageSize {
			break
		}
	}

	return all, nil
}

// CreateLabel adds a label to the repository
func (c *Client) CreateLabel(label Label) error {
	jsonData, err := json.Marshal(label)
	if err != nil {
		return NewAPIError("failed to marshal label", err)
	}

	path := fmt.Sprintf("repos/%s/%s/labels", c.repo.Owner, c.repo.Name)
	var response map[string]interface{}
	if err := c.rest.Post(path, bytes.NewReader(jsonData), &response); err != nil {
		return NewAPIError(fmt.Sprintf("failed to create label '%s'", label.Name), err)
	}
	return nil
}

// EnsureLabels creates every label in wanted that the repository lacks and
// returns the names it created. Label names compare case-insensitively, as
// GitHub does.
func (c *Client) EnsureLabels(wanted []Label) ([]string, error) {
	existing, err := c.Labels()
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(existing))
	for _, l := range existing {
		have[strings.ToLower(l.Name)] = true
	}

	var created []string
	for _, l := range wanted {
		key := strings.ToLower(l.Name)
		if have[key] {
			continue
		}
		if err := c.CreateLabel(l); err != nil {
			return created, err
		}
		have[key] = true
		created = append(created, l.Name)
	}

	return created, nil
}

// NormalizeTitle folds case and surrounding whitespace for title comparison
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// SkipExisting returns a SkipFunc that skips records whose title is in titles
func SkipExisting(titles map[string]bool) SkipFunc {
	return func(record IssueRecord) (string, bool) {
		if titles[NormalizeTitle(record.Title)] {
			return "an issue with this title already exists", true
		}
		return "", false
	}
}

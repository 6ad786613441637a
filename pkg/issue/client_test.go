package issue

import (
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRESTClient is a mock for the REST API client
type MockRESTClient struct {
	mock.Mock
}

func (m *MockRESTClient) Get(path string, response interface{}) error {
	args := m.Called(path, response)
	return args.Error(0)
}

func (m *MockRESTClient) Post(path string, body io.Reader, response interface{}) error {
	data, _ := io.ReadAll(body)
	args := m.Called(path, string(data), response)
	return args.Error(0)
}

// respondWith decodes payload into the response argument of a mocked call
func respondWith(payload string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		if err := json.Unmarshal([]byte(payload), args.Get(1)); err != nil {
			panic(err)
		}
	}
}

var testRepo = repository.Repository{Host: "github.com", Owner: "owner", Name: "repo"}

func issuesPage(n int, offset int) string {
	items := make([]map[string]interface{}, n)
	for i := range items {
		items[i] = map[string]interface{}{"title": fmt.Sprintf("Issue %d", offset+i)}
	}
	data, _ := json.Marshal(items)
	return string(data)
}

func TestClient_Repository(t *testing.T) {
	c := NewClientWithREST(&MockRESTClient{}, testRepo)
	assert.Equal(t, "owner/repo", c.Repository())
}

func TestClient_ExistingTitles(t *testing.T) {
	t.Run("skips pull requests", func(t *testing.T) {
		m := &MockRESTClient{}
		m.On("Get", "repos/owner/repo/issues?state=all&per_page=100&page=1", mock.Anything).
			Run(respondWith(`[
				{"title": "  P0: Soportar Múltiples Cuentas "},
				{"title": "Add CI", "pull_request": {"url": "https://api.github.com/x"}}
			]`)).
			Return(nil).Once()

		titles, err := NewClientWithREST(m, testRepo).ExistingTitles()
		require.NoError(t, err)

		assert.Equal(t, map[string]bool{"p0: soportar múltiples cuentas": true}, titles)
		m.AssertExpectations(t)
	})

	t.Run("follows pages", func(t *testing.T) {
		m := &MockRESTClient{}
		m.On("Get", "repos/owner/repo/issues?state=all&per_page=100&page=1", mock.Anything).
			Run(respondWith(issuesPage(100, 0))).Return(nil).Once()
		m.On("Get", "repos/owner/repo/issues?state=all&per_page=100&page=2", mock.Anything).
			Run(respondWith(issuesPage(3, 100))).Return(nil).Once()

		titles, err := NewClientWithREST(m, testRepo).ExistingTitles()
		require.NoError(t, err)

		assert.Len(t, titles, 103)
		assert.True(t, titles["issue 102"])
		m.AssertExpectations(t)
	})

	t.Run("api error", func(t *testing.T) {
		m := &MockRESTClient{}
		m.On("Get", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		_, err := NewClientWithREST(m, testRepo).ExistingTitles()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list issues in owner/repo")
	})
}

func TestClient_EnsureLabels(t *testing.T) {
	m := &MockRESTClient{}
	m.On("Get", "repos/owner/repo/labels?per_page=100&page=1", mock.Anything).
		Run(respondWith(`[{"name": "Priority:P0", "color": "b60205"}, {"name": "bug"}]`)).
		Return(nil).Once()
	m.On("Post", "repos/owner/repo/labels", `{"name":"area:backend","color":"0e8a16"}`, mock.Anything).
		Return(nil).Once()
	m.On("Post", "repos/owner/repo/labels", `{"name":"ux","color":"1d76db","description":"User experience"}`, mock.Anything).
		Return(nil).Once()

	created, err := NewClientWithREST(m, testRepo).EnsureLabels([]Label{
		{Name: "priority:P0", Color: "b60205"},
		{Name: "area:backend", Color: "0e8a16"},
		{Name: "ux", Color: "1d76db", Description: "User experience"},
		{Name: "UX", Color: "1d76db"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"area:backend", "ux"}, created)
	m.AssertExpectations(t)
	m.AssertNumberOfCalls(t, "Post", 2)
}

func TestClient_EnsureLabels_CreateFails(t *testing.T) {
	m := &MockRESTClient{}
	m.On("Get", mock.Anything, mock.Anything).Run(respondWith(`[]`)).Return(nil).Once()
	m.On("Post", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	created, err := NewClientWithREST(m, testRepo).EnsureLabels([]Label{{Name: "ux"}, {Name: "gdpr"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create label 'ux'")
	assert.Empty(t, created)
}

func TestSkipExisting(t *testing.T) {
	skip := SkipExisting(map[string]bool{"p0: add sso": true})

	reason, ok := skip(IssueRecord{Title: "P0: Add SSO "})
	assert.True(t, ok)
	assert.Equal(t, "an issue with this title already exists", reason)

	_, ok = skip(IssueRecord{Title: "P1: Other"})
	assert.False(t, ok)
}

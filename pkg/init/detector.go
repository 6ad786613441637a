package init

import (
	"fmt"

	"github.com/cli/go-gh/v2/pkg/repository"
)

// RepoDetector resolves the repository issues are filed against
type RepoDetector struct {
	current func() (repository.Repository, error)
}

// NewRepoDetector creates a detector backed by the gh repository resolution
// (GH_REPO, then the git remotes of the working directory)
func NewRepoDetector() *RepoDetector {
	return &RepoDetector{
		current: repository.Current,
	}
}

// DetectCurrentRepo detects the current repository using GitHub CLI conventions
func (d *RepoDetector) DetectCurrentRepo() (repository.Repository, error) {
	r, err := d.current()
	if err != nil {
		return repository.Repository{}, NewGitHubError("failed to detect current repository", err)
	}

	return r, nil
}

// Resolve returns the explicit repository when given, otherwise the detected one
func (d *RepoDetector) Resolve(explicit string) (repository.Repository, error) {
	if explicit == "" {
		return d.DetectCurrentRepo()
	}

	r, err := repository.Parse(explicit)
	if err != nil {
		return repository.Repository{}, NewValidationError(fmt.Sprintf("invalid repository format '%s': expected owner/repo", explicit))
	}
	return r, nil
}

// ResolveInteractive resolves like Resolve, but asks p for owner/repo when
// nothing was given and detection fails. An empty answer returns the
// detection error.
func (d *RepoDetector) ResolveInteractive(explicit string, p *InteractivePrompt) (repository.Repository, error) {
	if explicit != "" {
		return d.Resolve(explicit)
	}

	r, err := d.DetectCurrentRepo()
	if err == nil {
		return r, nil
	}

	answer := p.GetStringInput("Could not detect the repository. Enter owner/repo (leave empty to skip)", "")
	if answer == "" {
		return repository.Repository{}, err
	}
	return d.Resolve(answer)
}

// FullName formats r as owner/repo, prefixing the host when it is not github.com
func FullName(r repository.Repository) string {
	if r.Host != "" && r.Host != "github.com" {
		return fmt.Sprintf("%s/%s/%s", r.Host, r.Owner, r.Name)
	}
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

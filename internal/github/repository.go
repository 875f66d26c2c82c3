package github

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	gh "github.com/google/go-github/v68/github"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Compile-time check that GitHubRepository implements git.Repository.
var _ git.Repository = (*GitHubRepository)(nil)

const (
	defaultMaxCommits = 1000
	commitCacheSize   = 4096
	pageSize          = 100
)

// GitHubRepository implements git.Repository using the GitHub REST API.
// The working tree of a remote repository is always clean.
type GitHubRepository struct {
	client     *gh.Client
	owner      string
	repo       string
	ref        string // target ref (branch name or SHA)
	maxCommits int    // hard cap on commits returned by one CommitLog call
	ctx        context.Context

	commits *lru.Cache[string, git.Commit]
	logs    map[string][]git.Commit
	head    *git.Branch
}

// Option configures a GitHubRepository.
type Option func(*GitHubRepository)

// WithRef sets the target ref for HEAD resolution.
func WithRef(ref string) Option {
	return func(r *GitHubRepository) { r.ref = ref }
}

// WithMaxCommits sets the hard cap on commit walk depth.
func WithMaxCommits(n int) Option {
	return func(r *GitHubRepository) {
		if n > 0 {
			r.maxCommits = n
		}
	}
}

// WithContext sets the context used for API requests.
func WithContext(ctx context.Context) Option {
	return func(r *GitHubRepository) { r.ctx = ctx }
}

// NewGitHubRepository creates a new GitHubRepository.
func NewGitHubRepository(client *gh.Client, owner, repo string, opts ...Option) *GitHubRepository {
	cache, _ := lru.New[string, git.Commit](commitCacheSize)
	r := &GitHubRepository{
		client:     client,
		owner:      owner,
		repo:       repo,
		maxCommits: defaultMaxCommits,
		ctx:        context.Background(),
		commits:    cache,
		logs:       make(map[string][]git.Commit),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the repository identifier.
func (r *GitHubRepository) Path() string {
	return fmt.Sprintf("github.com/%s/%s", r.owner, r.repo)
}

var hexPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// IsHeadDetached reports whether the target ref is a commit SHA.
func (r *GitHubRepository) IsHeadDetached() bool {
	return hexPattern.MatchString(r.ref)
}

func (r *GitHubRepository) Head() (git.Branch, error) {
	if r.head != nil {
		return *r.head, nil
	}

	ref := r.ref
	if ref == "" {
		repoInfo, _, err := r.client.Repositories.Get(r.ctx, r.owner, r.repo)
		if err != nil {
			return git.Branch{}, fmt.Errorf("getting repository info: %w", err)
		}
		ref = repoInfo.GetDefaultBranch()
	}

	if hexPattern.MatchString(ref) {
		return r.detachedHead(ref)
	}

	ghBranch, _, err := r.client.Repositories.GetBranch(r.ctx, r.owner, r.repo, ref, 0)
	if err != nil {
		if IsNotFoundError(err) {
			// Not a branch: tags and abbreviated SHAs resolve through the commits endpoint.
			return r.detachedHead(ref)
		}
		return git.Branch{}, fmt.Errorf("getting branch %s: %w", ref, err)
	}

	tip := convertRepoCommit(ghBranch.GetCommit())
	r.commits.Add(tip.Sha, tip)
	branch := git.Branch{
		Name: git.NewBranchReferenceName(ref),
		Tip:  &tip,
	}
	r.head = &branch
	return branch, nil
}

func (r *GitHubRepository) detachedHead(ref string) (git.Branch, error) {
	commit, err := r.CommitFromSha(ref)
	if err != nil {
		return git.Branch{}, fmt.Errorf("getting HEAD commit: %w", err)
	}
	branch := git.Branch{
		Name:           git.NewReferenceName("HEAD"),
		Tip:            &commit,
		IsDetachedHead: true,
	}
	r.head = &branch
	return branch, nil
}

// Branches lists the remote branches. Tips carry only the SHA; the
// snapshot resolves them against the loaded commits.
func (r *GitHubRepository) Branches() ([]git.Branch, error) {
	opts := &gh.BranchListOptions{ListOptions: gh.ListOptions{PerPage: pageSize}}
	var branches []git.Branch
	for {
		page, resp, err := r.client.Repositories.ListBranches(r.ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing branches: %w", err)
		}
		for _, b := range page {
			sha := b.GetCommit().GetSHA()
			if sha == "" {
				continue
			}
			branches = append(branches, git.Branch{
				Name: git.NewBranchReferenceName(b.GetName()),
				Tip:  &git.Commit{Sha: sha},
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return branches, nil
}

// Tags lists the repository tags. The tags endpoint already reports the
// peeled commit, so TargetSha is always a commit SHA.
func (r *GitHubRepository) Tags() ([]git.Tag, error) {
	opts := &gh.ListOptions{PerPage: pageSize}
	var tags []git.Tag
	for {
		page, resp, err := r.client.Repositories.ListTags(r.ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing tags: %w", err)
		}
		for _, t := range page {
			sha := t.GetCommit().GetSHA()
			if sha == "" {
				continue
			}
			tags = append(tags, git.Tag{
				Name:      git.NewTagReferenceName(t.GetName()),
				TargetSha: sha,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return tags, nil
}

func (r *GitHubRepository) CommitFromSha(sha string) (git.Commit, error) {
	if commit, ok := r.commits.Get(sha); ok {
		return commit, nil
	}

	ghCommit, _, err := r.client.Repositories.GetCommit(r.ctx, r.owner, r.repo, sha, nil)
	if err != nil {
		return git.Commit{}, fmt.Errorf("getting commit %s: %w", sha, err)
	}

	commit := convertRepoCommit(ghCommit)
	r.commits.Add(commit.Sha, commit)
	return commit, nil
}

// CommitLog returns commits reachable from to but not from, newest first.
// At most maxCommits commits are returned; older history is cut off.
func (r *GitHubRepository) CommitLog(from, to string) ([]git.Commit, error) {
	key := from + ".." + to
	if log, ok := r.logs[key]; ok {
		return log, nil
	}

	var commits []git.Commit
	var err error
	if from != "" {
		commits, err = r.commitLogCompare(from, to)
		if err != nil {
			// The compare endpoint caps its result; walk the history instead.
			commits, err = r.commitLogPaginated(from, to)
		}
	} else {
		commits, err = r.commitLogPaginated("", to)
	}
	if err != nil {
		return nil, err
	}

	r.logs[key] = commits
	return commits, nil
}

func (r *GitHubRepository) commitLogCompare(from, to string) ([]git.Commit, error) {
	comparison, _, err := r.client.Repositories.CompareCommits(r.ctx, r.owner, r.repo, from, to, nil)
	if err != nil {
		return nil, fmt.Errorf("comparing commits: %w", err)
	}
	if comparison.GetTotalCommits() > len(comparison.Commits) {
		return nil, fmt.Errorf("compare returned partial results (%d/%d commits)", len(comparison.Commits), comparison.GetTotalCommits())
	}

	// Compare lists oldest first.
	commits := make([]git.Commit, 0, len(comparison.Commits))
	for i := len(comparison.Commits) - 1; i >= 0; i-- {
		commit := convertRepoCommit(comparison.Commits[i])
		r.commits.Add(commit.Sha, commit)
		commits = append(commits, commit)
	}
	return commits, nil
}

func (r *GitHubRepository) commitLogPaginated(from, to string) ([]git.Commit, error) {
	opts := &gh.CommitsListOptions{
		SHA:         to,
		ListOptions: gh.ListOptions{PerPage: pageSize},
	}

	var commits []git.Commit
	for {
		page, resp, err := r.client.Repositories.ListCommits(r.ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing commits: %w", err)
		}
		for _, c := range page {
			if from != "" && c.GetSHA() == from {
				return commits, nil
			}
			commit := convertRepoCommit(c)
			r.commits.Add(commit.Sha, commit)
			commits = append(commits, commit)
			if len(commits) >= r.maxCommits {
				return commits, nil
			}
		}
		if resp.NextPage == 0 {
			return commits, nil
		}
		opts.Page = resp.NextPage
	}
}

func (r *GitHubRepository) NumberOfUncommittedChanges() (int, error) {
	return 0, nil
}

// PeelTagToCommit returns the commit SHA recorded by Tags.
func (r *GitHubRepository) PeelTagToCommit(tag git.Tag) (string, error) {
	if tag.TargetSha == "" {
		return "", fmt.Errorf("tag %s has no target", tag.Name.Friendly)
	}
	return tag.TargetSha, nil
}

// FetchFileContent fetches a file's content at the target ref.
// Used to load configuration files from the remote repository.
func (r *GitHubRepository) FetchFileContent(path string) (string, error) {
	opts := &gh.RepositoryContentGetOptions{}
	if r.ref != "" {
		opts.Ref = r.ref
	}

	content, _, _, err := r.client.Repositories.GetContents(r.ctx, r.owner, r.repo, path, opts)
	if err != nil {
		return "", fmt.Errorf("fetching file %s: %w", path, err)
	}
	if content == nil {
		return "", fmt.Errorf("file %s not found", path)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding file content: %w", err)
	}
	return decoded, nil
}

func convertRepoCommit(ghCommit *gh.RepositoryCommit) git.Commit {
	if ghCommit == nil {
		return git.Commit{}
	}

	parents := make([]string, 0, len(ghCommit.Parents))
	for _, p := range ghCommit.Parents {
		parents = append(parents, p.GetSHA())
	}

	var when time.Time
	var message string
	if ghCommit.Commit != nil {
		if ghCommit.Commit.Committer != nil && ghCommit.Commit.Committer.Date != nil {
			when = ghCommit.Commit.Committer.Date.Time
		}
		message = ghCommit.Commit.GetMessage()
	}

	return git.Commit{
		Sha:     ghCommit.GetSHA(),
		Parents: parents,
		When:    when,
		Message: message,
	}
}

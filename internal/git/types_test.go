package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommit_IsMerge(t *testing.T) {
	tests := []struct {
		name    string
		parents []string
		expect  bool
	}{
		{"no parents (root)", nil, false},
		{"one parent", []string{"abc"}, false},
		{"two parents (merge)", []string{"abc", "def"}, true},
		{"three parents (octopus)", []string{"a", "b", "c"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Commit{Parents: tt.parents}
			require.Equal(t, tt.expect, c.IsMerge())
		})
	}
}

func TestCommit_ShortSha(t *testing.T) {
	require.Equal(t, "abc1234", Commit{Sha: "abc1234567890def"}.ShortSha())
	require.Equal(t, "abc", Commit{Sha: "abc"}.ShortSha())
}

func TestCommit_Subject(t *testing.T) {
	tests := []struct {
		message string
		expect  string
	}{
		{"feat: add thing", "feat: add thing"},
		{"fix: bug\n\nlonger body", "fix: bug"},
		{"\n  padded  \nbody", "padded"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			require.Equal(t, tt.expect, Commit{Message: tt.message}.Subject())
		})
	}
}

func TestNewReferenceName(t *testing.T) {
	tests := []struct {
		canonical     string
		friendly      string
		withoutRemote string
		isBranch      bool
		isRemote      bool
		isTag         bool
	}{
		{"refs/heads/main", "main", "main", true, false, false},
		{"refs/heads/feature/login", "feature/login", "feature/login", true, false, false},
		{"refs/remotes/origin/main", "origin/main", "main", false, true, false},
		{"refs/remotes/upstream/release/1.0", "upstream/release/1.0", "release/1.0", false, true, false},
		{"refs/tags/v1.0.0", "v1.0.0", "v1.0.0", false, false, true},
		{"HEAD", "HEAD", "HEAD", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.canonical, func(t *testing.T) {
			ref := NewReferenceName(tt.canonical)
			require.Equal(t, tt.canonical, ref.Canonical)
			require.Equal(t, tt.friendly, ref.Friendly)
			require.Equal(t, tt.withoutRemote, ref.WithoutRemote)
			require.Equal(t, tt.isBranch, ref.IsBranch())
			require.Equal(t, tt.isRemote, ref.IsRemoteBranch())
			require.Equal(t, tt.isTag, ref.IsTag())
		})
	}
}

func TestBranch_FriendlyName(t *testing.T) {
	b := Branch{Name: NewReferenceName("refs/remotes/origin/develop"), IsRemote: true}
	require.Equal(t, "develop", b.FriendlyName())
}

func TestRepositoryStateError(t *testing.T) {
	err := stateError("HEAD", ErrNoHead)
	require.ErrorIs(t, err, ErrNoHead)
	require.Equal(t, "repository: HEAD: HEAD does not point to a commit", err.Error())

	var target *RepositoryStateError
	require.ErrorAs(t, error(err), &target)
	require.Equal(t, "HEAD", target.Ref)

	noRef := &RepositoryStateError{Err: ErrRefNotFound}
	require.Equal(t, "repository: reference not found", noRef.Error())
}

package git

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
)

func shas(commits []Commit) []string {
	out := make([]string, 0, len(commits))
	for _, c := range commits {
		out = append(out, c.Sha)
	}
	return out
}

func TestRepositoryStore_VersionTagsReachableFrom(t *testing.T) {
	store := NewRepositoryStore(diamondSnapshot(t))

	tags, unparseable := store.VersionTagsReachableFrom("m", "[vV]?")
	require.Len(t, tags, 2)
	require.Equal(t, "v1.0.0", tags[0].Name)
	require.Equal(t, "b", tags[0].Commit.Sha)
	require.Equal(t, int64(1), tags[0].Version.Major)
	require.Equal(t, "v0.9.0", tags[1].Name)
	require.Equal(t, []string{"release-notes"}, unparseable)

	tags, _ = store.VersionTagsReachableFrom("a", "[vV]?")
	require.Len(t, tags, 1)
	require.Equal(t, "v0.9.0", tags[0].Name)
}

func TestRepositoryStore_ExactVersionTags(t *testing.T) {
	a := commitAt("a", 1)
	snap, err := NewSnapshot(branchAt("main", a), nil, []Commit{a},
		[]Tag{tagAt("v1.0.0", "a"), tagAt("v1.1.0-beta.1", "a"), tagAt("v1.1.0", "a"), tagAt("junk", "a")})
	require.NoError(t, err)
	store := NewRepositoryStore(snap)

	tags := store.ExactVersionTags("a", "[vV]?")
	require.Len(t, tags, 3)
	require.Equal(t, "v1.1.0", tags[0].Name)
	require.Equal(t, "v1.1.0-beta.1", tags[1].Name)
	require.Equal(t, "v1.0.0", tags[2].Name)

	require.Empty(t, store.ExactVersionTags("missing", "[vV]?"))
}

func TestRepositoryStore_CommitRanges(t *testing.T) {
	store := NewRepositoryStore(diamondSnapshot(t))

	require.Equal(t, []string{"m", "e", "d", "c"}, shas(store.CommitsBetween("b", "m")))
	require.Equal(t, []string{"m", "c"}, shas(store.FirstParentCommitsBetween("b", "m")))
	require.Equal(t, []string{"m", "c", "b", "a"}, shas(store.FirstParentCommitsBetween("", "m")))
	require.Len(t, store.CommitsBetween("", "m"), 6)
	require.Empty(t, store.CommitsBetween("m", "m"))
	require.Equal(t, 2, store.Distance("e", "m"))
}

func TestRepositoryStore_RootCommit(t *testing.T) {
	store := NewRepositoryStore(diamondSnapshot(t))
	require.Equal(t, "a", store.RootCommit("m").Sha)
	require.True(t, store.RootCommit("missing").IsEmpty())
}

func TestRepositoryStore_FindMergeBase(t *testing.T) {
	store := NewRepositoryStore(diamondSnapshot(t))

	c, ok := store.FindMergeBase("c", "e")
	require.True(t, ok)
	require.Equal(t, "b", c.Sha)

	_, ok = store.FindMergeBase("c", "missing")
	require.False(t, ok)
}

func TestRepositoryStore_ResolveCommit(t *testing.T) {
	a := commitAt("abcdef0123", 1)
	b := commitAt("abcdef9999", 2, a.Sha)
	c := commitAt("fedcba0000", 3, b.Sha)
	snap, err := NewSnapshot(branchAt("main", c), []Branch{branchAt("main", c)}, []Commit{a, b, c}, nil)
	require.NoError(t, err)
	store := NewRepositoryStore(snap)

	got, err := store.ResolveCommit("fedcba0000")
	require.NoError(t, err)
	require.Equal(t, c.Sha, got.Sha)

	got, err = store.ResolveCommit("abcdef01")
	require.NoError(t, err)
	require.Equal(t, a.Sha, got.Sha)

	var stateErr *RepositoryStateError
	_, err = store.ResolveCommit("abcdef")
	require.ErrorAs(t, err, &stateErr)
	require.Contains(t, err.Error(), "ambiguous")

	_, err = store.ResolveCommit("0000000")
	require.ErrorIs(t, err, ErrRefNotFound)

	_, err = store.ResolveCommit("ab")
	require.ErrorIs(t, err, ErrRefNotFound)
}

func TestRepositoryStore_Branches(t *testing.T) {
	a := commitAt("a", 1)
	b := commitAt("b", 2, "a")
	c := commitAt("c", 3, "a")
	remoteRelease := Branch{Name: NewReferenceName("refs/remotes/origin/release/1.0.0"), Tip: &c, IsRemote: true}
	remoteMain := Branch{Name: NewReferenceName("refs/remotes/origin/main"), Tip: &a, IsRemote: true}
	snap, err := NewSnapshot(branchAt("main", b),
		[]Branch{remoteMain, branchAt("main", b), branchAt("release/2.0.0", b), remoteRelease},
		[]Commit{a, b, c}, nil)
	require.NoError(t, err)
	store := NewRepositoryStore(snap)

	t.Run("matching prefers local and sorts", func(t *testing.T) {
		release := config.EffectiveConfiguration{Regex: `^releases?[/-]`}
		got := store.BranchesMatching(release)
		require.Len(t, got, 2)
		require.Equal(t, "release/1.0.0", got[0].FriendlyName())
		require.True(t, got[0].IsRemote)
		require.Equal(t, "release/2.0.0", got[1].FriendlyName())

		main := config.EffectiveConfiguration{Regex: `^main$`}
		got = store.BranchesMatching(main)
		require.Len(t, got, 1)
		require.False(t, got[0].IsRemote)
		require.Equal(t, "b", got[0].Tip.Sha)

		require.Empty(t, store.BranchesMatching(main, "main"))
	})

	t.Run("find branch", func(t *testing.T) {
		got, ok := store.FindBranch("main")
		require.True(t, ok)
		require.False(t, got.IsRemote)

		got, ok = store.FindBranch("origin/release/1.0.0")
		require.True(t, ok)
		require.True(t, got.IsRemote)

		got, ok = store.FindBranch("release/1.0.0")
		require.True(t, ok)
		require.Equal(t, "c", got.Tip.Sha)

		_, ok = store.FindBranch("nope")
		require.False(t, ok)
	})

	t.Run("containing", func(t *testing.T) {
		require.Len(t, store.BranchesContaining("a"), 4)
		require.Len(t, store.BranchesContaining("c"), 1)
	})
}

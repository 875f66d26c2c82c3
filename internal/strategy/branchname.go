package strategy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// VersionInBranchNameStrategy returns the version named by a release
// branch, anchored where the branch was forked.
type VersionInBranchNameStrategy struct{}

// NewVersionInBranchNameStrategy creates a new VersionInBranchNameStrategy.
func NewVersionInBranchNameStrategy() *VersionInBranchNameStrategy {
	return &VersionInBranchNameStrategy{}
}

func (s *VersionInBranchNameStrategy) Name() string { return "VersionInBranchName" }

func (s *VersionInBranchNameStrategy) Candidates(ctx *context.GitVersionContext, ec config.EffectiveConfiguration) ([]Candidate, error) {
	exp := NewExplanation(s.Name())
	branchName := ctx.BranchName()

	if !ec.IsReleaseBranch {
		return nil, nil
	}

	ver, versionStr, ok := versionFromBranchName(branchName, ec.TagPrefix)
	if !ok {
		return nil, nil
	}

	branchPoint := findBranchPoint(ctx, ec)
	override := computeBranchNameOverride(branchName, versionStr)
	exp.Addf("branch %q -> version %s at branch point %s, override=%q",
		branchName, ver.SemVer(), branchPoint.ShortSha(), override)

	return []Candidate{{
		Source:             SourceVersionInBranchName,
		Version:            ver,
		Commit:             branchPoint,
		Increment:          false,
		BranchNameOverride: override,
		Description:        fmt.Sprintf("Version in branch name '%s'", branchName),
		Explanation:        exp,
	}}, nil
}

func versionFromBranchName(branchName, tagPrefix string) (semver.SemanticVersion, string, bool) {
	versionStr, ok := git.VersionFromBranchName(branchName, tagPrefix)
	if !ok {
		return semver.SemanticVersion{}, "", false
	}
	ver, err := semver.Parse(versionStr, "")
	if err != nil {
		return semver.SemanticVersion{}, "", false
	}
	return ver, versionStr, true
}

// findBranchPoint returns the closest merge base between HEAD and the
// branches matched by ec's source-branches. Without any, the root commit
// is used.
func findBranchPoint(ctx *context.GitVersionContext, ec config.EffectiveConfiguration) git.Commit {
	head := ctx.CurrentCommit
	var (
		best     git.Commit
		bestDist = -1
	)
	for _, b := range sourceBranches(ctx, ec) {
		mb, ok := ctx.Store.FindMergeBase(head.Sha, b.Tip.Sha)
		if !ok {
			continue
		}
		dist := ctx.Store.Distance(mb.Sha, head.Sha)
		if bestDist < 0 || dist < bestDist || (dist == bestDist && mb.Sha < best.Sha) {
			best, bestDist = mb, dist
		}
	}
	if bestDist < 0 {
		return ctx.Store.RootCommit(head.Sha)
	}
	return best
}

// sourceBranches returns the branches matched by ec's source-branches keys
// in key order, excluding the current branch. A branch matched by several
// keys is returned once.
func sourceBranches(ctx *context.GitVersionContext, ec config.EffectiveConfiguration) []sourceBranch {
	seen := make(map[string]struct{})
	var out []sourceBranch
	for _, key := range ec.SourceBranches {
		srcEC, ok := ctx.Configuration.ForKey(key)
		if !ok {
			continue
		}
		for _, b := range ctx.Store.BranchesMatching(srcEC, ctx.BranchName()) {
			if _, dup := seen[b.FriendlyName()]; dup {
				continue
			}
			seen[b.FriendlyName()] = struct{}{}
			out = append(out, sourceBranch{Branch: b, Config: srcEC})
		}
	}
	return out
}

type sourceBranch struct {
	git.Branch
	Config config.EffectiveConfiguration
}

// computeBranchNameOverride strips the version segment from the branch name.
func computeBranchNameOverride(branchName, version string) string {
	re := regexp.MustCompile(`[-/]` + regexp.QuoteMeta(version))
	result := re.ReplaceAllString(branchName, "")
	return strings.TrimRight(result, "/-")
}

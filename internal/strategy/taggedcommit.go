package strategy

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
)

// TaggedCommitStrategy returns versions from tags on HEAD and its ancestors.
type TaggedCommitStrategy struct{}

// NewTaggedCommitStrategy creates a new TaggedCommitStrategy.
func NewTaggedCommitStrategy() *TaggedCommitStrategy {
	return &TaggedCommitStrategy{}
}

func (s *TaggedCommitStrategy) Name() string { return "TaggedCommit" }

func (s *TaggedCommitStrategy) Candidates(ctx *context.GitVersionContext, ec config.EffectiveConfiguration) ([]Candidate, error) {
	tags, _ := ctx.Store.VersionTagsReachableFrom(ctx.CurrentCommit.Sha, ec.TagPrefix)

	out := make([]Candidate, 0, len(tags))
	for _, vt := range tags {
		increment := vt.Commit.Sha != ctx.CurrentCommit.Sha

		exp := NewExplanation(s.Name())
		exp.Addf("tag %s on commit %s -> %s, increment=%t",
			vt.Name, vt.Commit.ShortSha(), vt.Version.SemVer(), increment)

		out = append(out, Candidate{
			Source:      SourceExactTag,
			Version:     vt.Version,
			Commit:      vt.Commit,
			Increment:   increment,
			Description: fmt.Sprintf("Git tag '%s'", vt.Name),
			Explanation: exp,
		})
	}
	return out, nil
}

// Warnings reports reachable tags that do not parse as versions.
func (s *TaggedCommitStrategy) Warnings(ctx *context.GitVersionContext, ec config.EffectiveConfiguration) []Warning {
	_, unparseable := ctx.Store.VersionTagsReachableFrom(ctx.CurrentCommit.Sha, ec.TagPrefix)

	out := make([]Warning, 0, len(unparseable))
	for _, name := range unparseable {
		out = append(out, Warning{
			Kind:    WarningUnparseableTag,
			Message: fmt.Sprintf("tag %q does not match tag prefix %q followed by a version", name, ec.TagPrefix),
		})
	}
	return out
}

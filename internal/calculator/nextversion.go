package calculator

import (
	"go.uber.org/zap"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/strategy"
)

// Result is the outcome of a version calculation.
type Result struct {
	// Version carries the pre-release tag and build metadata.
	Version semver.SemanticVersion

	// Base is the selected base version candidate. Zero when HEAD is tagged.
	Base strategy.Candidate

	// Candidates lists every candidate the enabled strategies produced.
	Candidates []strategy.Candidate

	// Increment is the field applied to the base version.
	Increment semver.VersionField

	// CommitsSinceBase counts commits in (Base.Commit, HEAD].
	CommitsSinceBase int64

	Warnings    []Warning
	Explanation *Explanation
}

// NextVersionCalculator orchestrates the version calculation pipeline.
type NextVersionCalculator struct {
	memo   *Memo
	logger *zap.Logger
}

// Option configures a NextVersionCalculator.
type Option func(*NextVersionCalculator)

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *NextVersionCalculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMemo shares m between calculators working on the same snapshot.
func WithMemo(m *Memo) Option {
	return func(c *NextVersionCalculator) {
		if m != nil {
			c.memo = m
		}
	}
}

// NewNextVersionCalculator creates a new NextVersionCalculator.
func NewNextVersionCalculator(opts ...Option) *NextVersionCalculator {
	c := &NextVersionCalculator{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.memo == nil {
		// NewMemo only fails for a non-positive size.
		c.memo, _ = NewMemo(DefaultMemoSize)
	}
	return c
}

// Memo returns the merge-point cache used by this calculator.
func (c *NextVersionCalculator) Memo() *Memo { return c.memo }

// selection is the base version and increment resolved for one context.
type selection struct {
	base       strategy.Candidate
	candidates []strategy.Candidate
	commits    []git.Commit
	field      semver.VersionField
	warnings   []Warning
}

// Calculate computes the next version for the commit and branch in ctx.
func (c *NextVersionCalculator) Calculate(ctx *context.GitVersionContext) (Result, error) {
	ec := ctx.Effective
	head := ctx.CurrentCommit
	exp := &Explanation{}
	log := c.logger.With(zap.String("branch", ctx.BranchName()), zap.String("commit", head.ShortSha()))

	if ctx.IsCurrentCommitTagged {
		tagged := ctx.CurrentCommitTaggedVersion
		exp.Addf("commit %s is tagged %s", head.ShortSha(), tagged.SemVer())
		log.Debug("current commit is tagged", zap.String("version", tagged.SemVer()))

		ver := tagged.WithBuildMetaData(c.metadata(ctx, head.Sha, 0))
		return Result{Version: ver, Explanation: exp}, nil
	}

	sel, err := c.selectBase(ctx, exp)
	if err != nil {
		return Result{}, err
	}
	base := sel.base
	log.Debug("selected base version",
		zap.Stringer("source", base.Source),
		zap.String("version", base.Version.SemVer()),
		zap.String("base_commit", base.Commit.ShortSha()),
		zap.Stringer("increment", sel.field),
		zap.Int("candidates", len(sel.candidates)),
	)

	core := c.bump(ctx, sel, exp)

	if ec.NextVersion != "" {
		next, err := semver.Parse(ec.NextVersion, ec.TagPrefix)
		if err != nil {
			return Result{}, &config.ConfigurationError{Key: ec.Key, Field: "next-version", Err: err}
		}
		if core.CompareTo(next.Core()) < 0 {
			exp.Addf("next-version %s raises %s", next.Core().SemVer(), core.SemVer())
			core = next.Core()
		}
	}

	branchName := ctx.BranchName()
	if base.BranchNameOverride != "" {
		branchName = base.BranchNameOverride
	}
	existing, _ := ctx.Store.VersionTagsReachableFrom(head.Sha, ec.TagPrefix)
	existingVersions := make([]semver.SemanticVersion, 0, len(existing))
	for _, vt := range existing {
		existingVersions = append(existingVersions, vt.Version)
	}

	commitsSince := int64(len(sel.commits))
	ver := SynthesizeLabel(core, base.Version, ec, branchName, commitsSince, existingVersions)

	meta := c.metadata(ctx, base.Commit.Sha, commitsSince)
	meta.CommitsSinceTag = ver.BuildMetaData.CommitsSinceTag
	ver = ver.WithBuildMetaData(meta)
	exp.Addf("version %s", ver.FullSemVer())

	log.Debug("calculated version", zap.String("full_semver", ver.FullSemVer()))

	return Result{
		Version:          ver,
		Base:             base,
		Candidates:       sel.candidates,
		Increment:        sel.field,
		CommitsSinceBase: commitsSince,
		Warnings:         sel.warnings,
		Explanation:      exp,
	}, nil
}

// selectBase gathers candidates for ctx, selects the base version and
// resolves its increment.
func (c *NextVersionCalculator) selectBase(ctx *context.GitVersionContext, exp *Explanation) (selection, error) {
	ec := ctx.Effective
	head := ctx.CurrentCommit

	var sel selection
	for _, s := range strategy.Enabled(ec.Strategies, c.inherit) {
		candidates, err := s.Candidates(ctx, ec)
		if err != nil {
			return selection{}, err
		}
		sel.candidates = append(sel.candidates, candidates...)
		if r, ok := s.(strategy.WarningReporter); ok {
			sel.warnings = append(sel.warnings, r.Warnings(ctx, ec)...)
		}
	}

	eligible := FilterIgnored(sel.candidates, ec)
	base, warnings, err := SelectBaseVersion(ctx.Graph(), head.Sha, eligible)
	if err != nil {
		return selection{}, &config.ConfigurationError{Key: ec.Key, Field: "strategies", Err: err}
	}
	sel.base = base
	sel.warnings = append(sel.warnings, warnings...)
	exp.Addf("base version %s from %s", base.Version.SemVer(), base.Description)

	sel.commits = ctx.Store.CommitsBetween(base.Commit.Sha, head.Sha)
	sel.field = ResolveIncrementExplained(base, sel.commits, ec, exp)
	if base.Source == strategy.SourceParentBranchMergePoint && len(sel.commits) > 0 {
		if base.InheritedField > sel.field {
			exp.Addf("inherited increment %s", base.InheritedField)
		}
		sel.field = semver.MaxField(sel.field, base.InheritedField)
	}
	return sel, nil
}

// bump applies the selected increment to the base version core. A
// pre-release base already names the core being released and is not bumped.
func (c *NextVersionCalculator) bump(ctx *context.GitVersionContext, sel selection, exp *Explanation) semver.SemanticVersion {
	ec := ctx.Effective
	base := sel.base

	if ec.IsMainline && ec.HasStrategy(semver.StrategyMainline) && base.Increment {
		firstParent := ctx.Store.FirstParentCommitsBetween(base.Commit.Sha, ctx.CurrentCommit.Sha)
		return mainlineVersion(ctx.Store, base.Version, firstParent, ec, exp)
	}

	if base.Version.IsPreRelease() {
		exp.Addf("pre-release base %s keeps its core", base.Version.SemVer())
		return base.Version.Core()
	}
	return base.Version.Core().IncrementField(sel.field)
}

// inherit versions a merge point on a source branch. Results are memoized
// per commit, configuration key, branch and depth.
func (c *NextVersionCalculator) inherit(ctx *context.GitVersionContext) (strategy.Inherited, error) {
	key := memoKey{
		sha:    ctx.CurrentCommit.Sha,
		key:    ctx.Effective.Key,
		branch: ctx.BranchName(),
		depth:  ctx.Depth,
	}
	if v, ok := c.memo.get(key); ok {
		return v, nil
	}

	var out strategy.Inherited
	if ctx.IsCurrentCommitTagged {
		out = strategy.Inherited{Version: ctx.CurrentCommitTaggedVersion, Field: semver.VersionFieldNone}
	} else {
		sel, err := c.selectBase(ctx, nil)
		if err != nil {
			return strategy.Inherited{}, err
		}
		out = strategy.Inherited{Version: sel.base.Version, Field: sel.field}
	}

	c.logger.Debug("inherited merge point",
		zap.String("branch", ctx.BranchName()),
		zap.String("commit", ctx.CurrentCommit.ShortSha()),
		zap.Int("depth", ctx.Depth),
		zap.String("version", out.Version.SemVer()),
		zap.Stringer("increment", out.Field),
	)
	c.memo.add(key, out)
	return out, nil
}

func (c *NextVersionCalculator) metadata(ctx *context.GitVersionContext, sourceSha string, commitsSince int64) semver.BuildMetaData {
	head := ctx.CurrentCommit
	return semver.BuildMetaData{
		Branch:                    ctx.BranchName(),
		Sha:                       head.Sha,
		ShortSha:                  head.ShortSha(),
		VersionSourceSha:          sourceSha,
		CommitDate:                head.When,
		CommitsSinceVersionSource: commitsSince,
		UncommittedChanges:        int64(ctx.NumberOfUncommittedChanges),
	}
}

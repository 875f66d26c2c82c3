package strategy

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// FallbackStrategy returns the configured base-version anchored at the root
// commit reachable from HEAD.
type FallbackStrategy struct{}

// NewFallbackStrategy creates a new FallbackStrategy.
func NewFallbackStrategy() *FallbackStrategy {
	return &FallbackStrategy{}
}

func (s *FallbackStrategy) Name() string { return "Fallback" }

func (s *FallbackStrategy) Candidates(ctx *context.GitVersionContext, ec config.EffectiveConfiguration) ([]Candidate, error) {
	ver, err := semver.Parse(ec.BaseVersion, "")
	if err != nil {
		return nil, &config.ConfigurationError{Key: ec.Key, Field: "base-version", Err: err}
	}

	root := ctx.Store.RootCommit(ctx.CurrentCommit.Sha)

	exp := NewExplanation(s.Name())
	exp.Addf("base version %s at root commit %s", ver.SemVer(), root.ShortSha())

	return []Candidate{{
		Source:      SourceFallback,
		Version:     ver,
		Commit:      root,
		Increment:   true,
		Description: fmt.Sprintf("Fallback base version %s", ver.SemVer()),
		Explanation: exp,
	}}, nil
}

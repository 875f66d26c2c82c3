package calculator

import "github.com/MyCarrier-DevOps/go-gitversion/internal/strategy"

// Warning is a non-fatal problem accumulated in Result.Warnings.
type Warning = strategy.Warning

// WarningKind classifies a Warning.
type WarningKind = strategy.WarningKind

const (
	// AmbiguousBaseVersion: several candidates tie on distance and source
	// at distinct commits.
	AmbiguousBaseVersion = strategy.WarningAmbiguousBaseVersion
	// UnparseableTag: a tag reachable from HEAD is not a version.
	UnparseableTag = strategy.WarningUnparseableTag
)

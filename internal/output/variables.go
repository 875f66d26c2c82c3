// Package output renders calculation results: the output variables, JSON,
// dotenv and key=value listings, and the explain report.
package output

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// GetVariables computes all output variables for a calculated version using
// the formatting settings of ec.
func GetVariables(ver semver.SemanticVersion, ec config.EffectiveConfiguration) map[string]string {
	cfg := semver.FormatConfig{
		Padding:             ec.LegacySemVerPadding,
		CommitDateFormat:    ec.CommitDateFormat,
		TagPreReleaseWeight: ec.TagPreReleaseWeight,
		AssemblyScheme:      ec.AssemblyVersioningScheme,
	}

	vals := semver.ComputeFormatValues(ver, cfg)
	if ec.BuildMetaDataPadding > 0 {
		vals["BuildMetaDataPadded"] = ver.BuildMetaData.Padded(ec.BuildMetaDataPadding)
	}
	if ec.CommitsSinceVersionSourcePadding > 0 {
		vals["CommitsSinceVersionSourcePadded"] = padInt(ver.BuildMetaData.CommitsSinceVersionSource, ec.CommitsSinceVersionSourcePadding)
	}
	return vals
}

func padInt(n int64, pad int) string {
	return fmt.Sprintf("%0*d", pad, n)
}

package cmd

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func setBuildInfo(t *testing.T, version, commit, date string) {
	t.Helper()
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })
}

func TestVersionCmd_Summary(t *testing.T) {
	tests := []struct {
		name   string
		commit string
		date   string
		want   string
	}{
		{"commit and date", "0123456789abcdef", "2026-01-02", "1.2.3 (0123456 2026-01-02)\n"},
		{"commit only", "abc1234", "", "1.2.3 (abc1234)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuildInfo(t, "1.2.3", tt.commit, tt.date)

			stdout, _, err := run(t, "version")
			require.NoError(t, err)
			require.Equal(t, tt.want, stdout)
		})
	}
}

func TestVersionCmd_JSON(t *testing.T) {
	setBuildInfo(t, "1.2.3", "abc1234", "2026-01-02")

	stdout, _, err := run(t, "version", "--output", "json")
	require.NoError(t, err)

	var vars map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &vars))
	require.Equal(t, map[string]string{
		"Version":   "1.2.3",
		"Commit":    "abc1234",
		"Date":      "2026-01-02",
		"GoVersion": runtime.Version(),
	}, vars)
}

func TestVersionCmd_ShowVariable(t *testing.T) {
	setBuildInfo(t, "1.2.3", "abc1234", "")

	stdout, _, err := run(t, "version", "--show-variable", "Commit")
	require.NoError(t, err)
	require.Equal(t, "abc1234\n", stdout)
}

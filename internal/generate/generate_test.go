package generate

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

func testVariables() map[string]string {
	return map[string]string{
		"Major":                "1",
		"Minor":                "2",
		"Patch":                "3",
		"SemVer":               "1.2.3-beta.4",
		"AssemblySemVer":       "1.2.0.0",
		"AssemblySemFileVer":   "1.2.3.0",
		"InformationalVersion": "1.2.3-beta.4+Branch.main",
	}
}

func fixedRandom() string { return "abc123" }

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in        string
		expected  Language
		expectErr bool
	}{
		{"go", Go, false},
		{".cs", CSharp, false},
		{"C#", CSharp, false},
		{"F#", FSharp, false},
		{"vb", VisualBasic, false},
		{"JSON", JSON, false},
		{"rust", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if tt.expectErr {
				require.ErrorIs(t, err, ErrUnknownLanguage)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestOutputPath(t *testing.T) {
	w := NewWriter(memfs.New(), WithRandom(fixedRandom))

	tests := []struct {
		name     string
		req      Request
		expected string
	}{
		{"intermediate", Request{Language: CSharp, IntermediateDir: "obj/Debug"}, "obj/Debug/GitVersionInformation.g.cs"},
		{"temp", Request{Language: Go}, "GitVersionTask/GitVersionInformation_abc123.g.go"},
		{"temp with project", Request{Language: VisualBasic, Project: "App"}, "GitVersionTask/GitVersionInformation_App_abc123.g.vb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.OutputPath(tt.req)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}

	_, err := w.OutputPath(Request{Language: "rs"})
	require.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestGenerate_Go(t *testing.T) {
	fs := memfs.New()
	w := NewWriter(fs)

	out, err := w.Generate(Request{Language: Go, IntermediateDir: "internal/version", Variables: testVariables()})
	require.NoError(t, err)
	require.Equal(t, "internal/version/GitVersionInformation.g.go", out)

	data, err := util.ReadFile(fs, out)
	require.NoError(t, err)
	src := string(data)
	require.True(t, strings.HasPrefix(src, "// Code generated by gitversion. DO NOT EDIT."))
	require.Contains(t, src, "package version\n")
	require.Contains(t, src, "var GitVersionInformation = struct {")
	require.Contains(t, src, `"1.2.3-beta.4"`)
}

func TestGenerate_CSharp(t *testing.T) {
	fs := memfs.New()
	w := NewWriter(fs)

	out, err := w.Generate(Request{Language: CSharp, IntermediateDir: "obj", Namespace: "Acme", Variables: testVariables()})
	require.NoError(t, err)

	data, err := util.ReadFile(fs, out)
	require.NoError(t, err)
	src := string(data)
	require.Contains(t, src, `[assembly: System.Reflection.AssemblyVersion("1.2.0.0")]`)
	require.Contains(t, src, "namespace Acme\n{")
	require.Contains(t, src, `public const string SemVer = "1.2.3-beta.4";`)
}

func TestGenerate_FSharpAndVisualBasic(t *testing.T) {
	fs := memfs.New()
	w := NewWriter(fs)

	out, err := w.Generate(Request{Language: FSharp, IntermediateDir: "obj", Variables: testVariables()})
	require.NoError(t, err)
	data, err := util.ReadFile(fs, out)
	require.NoError(t, err)
	require.Contains(t, string(data), "namespace global")
	require.Contains(t, string(data), `static member Major = "1"`)
	require.Contains(t, string(data), `[<assembly: System.Reflection.AssemblyFileVersion("1.2.3.0")>]`)

	out, err = w.Generate(Request{Language: VisualBasic, IntermediateDir: "obj", Variables: testVariables()})
	require.NoError(t, err)
	data, err = util.ReadFile(fs, out)
	require.NoError(t, err)
	require.Contains(t, string(data), `Public Const Minor As String = "2"`)
	require.Contains(t, string(data), `<Assembly: System.Reflection.AssemblyInformationalVersion("1.2.3-beta.4+Branch.main")>`)
}

func TestGenerate_JSON(t *testing.T) {
	fs := memfs.New()
	w := NewWriter(fs, WithRandom(fixedRandom))

	out, err := w.Generate(Request{Language: JSON, Variables: testVariables()})
	require.NoError(t, err)
	require.Equal(t, "GitVersionTask/GitVersionInformation_abc123.g.json", out)

	data, err := util.ReadFile(fs, out)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, testVariables(), got)
}

func TestGenerate_MinVersion(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		expectErr  error
	}{
		{"satisfied", ">= 1.0.0-0", nil},
		{"too low", ">= 2.0.0-0", ErrVersionConstraint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memfs.New()
			w := NewWriter(fs)
			_, err := w.Generate(Request{Language: JSON, IntermediateDir: "obj", Variables: testVariables(), MinVersion: tt.constraint})
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				_, statErr := fs.Stat("obj/GitVersionInformation.g.json")
				require.Error(t, statErr)
				return
			}
			require.NoError(t, err)
		})
	}

	_, err := NewWriter(memfs.New()).Generate(Request{Language: JSON, Variables: testVariables(), MinVersion: "not a constraint"})
	require.Error(t, err)
}

func TestCleanStale(t *testing.T) {
	fs := memfs.New()
	w := NewWriter(fs)

	for range 3 {
		_, err := w.Generate(Request{Language: CSharp, Variables: testVariables()})
		require.NoError(t, err)
	}
	entries, err := fs.ReadDir(DefaultTempDir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	removed, err := w.CleanStale(time.Now())
	require.NoError(t, err)
	require.Equal(t, 0, removed)

	removed, err = w.CleanStale(time.Now().Add(StaleAfter + time.Hour))
	require.NoError(t, err)
	require.Equal(t, 3, removed)

	entries, err = fs.ReadDir(DefaultTempDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestCleanStale_MissingDir(t *testing.T) {
	w := NewWriter(memfs.New(), WithTempDir("nowhere"))
	removed, err := w.CleanStale(time.Now())
	require.NoError(t, err)
	require.Equal(t, 0, removed)
}

func TestCheckConflicts(t *testing.T) {
	fs := memfs.New()
	files := map[string]string{
		"Properties/AssemblyInfo.cs":     "using System;\n[assembly: AssemblyVersion(\"1.0.0.0\")]\n",
		"Commented/AssemblyInfo.cs":      "// [assembly: AssemblyVersion(\"1.0.0.0\")]\n/* [assembly: AssemblyFileVersion(\"1.0\")] */\n",
		"InString/AssemblyInfo.cs":       "var s = \"[assembly: AssemblyVersion(\\\"1\\\")]\";\n",
		"Program.cs":                     "[assembly: AssemblyVersion(\"1.0.0.0\")]\n",
		"AssemblyInfo.fs":                "module AssemblyInfo\n[<assembly: System.Reflection.AssemblyInformationalVersion(\"1\")>]\ndo ()\n",
		"My Project/AssemblyInfo.vb":     "<Assembly: AssemblyFileVersion(\"1.0.0.0\")>\n",
		"Commented/AssemblyInfo.vb":      "' <Assembly: AssemblyVersion(\"1.0.0.0\")>\n",
		"version/version.go":             "package version\n\nvar GitVersionInformation = map[string]string{}\n",
		"other/other.go":                 "package other\n\n// GitVersionInformation = nothing\nvar x = \"GitVersionInformation = y\"\n",
		"obj/GitVersionInformation.g.go": "package version\n\nvar GitVersionInformation = struct{}{}\n",
		"README.md":                      "[assembly: AssemblyVersion(\"1\")]",
	}
	var names []string
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
		names = append(names, name)
	}

	w := NewWriter(fs)
	conflicts, err := w.CheckConflicts(names)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		"Properties/AssemblyInfo.cs",
		"AssemblyInfo.fs",
		"My Project/AssemblyInfo.vb",
		"version/version.go",
	}, conflicts)

	_, err = w.CheckConflicts([]string{"missing/AssemblyInfo.cs"})
	require.Error(t, err)
}

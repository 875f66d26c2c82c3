package generate

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5/util"
)

type conflictRule struct {
	// trivia matches comments and string literals, which are blanked before
	// the declaration search.
	trivia      *regexp.Regexp
	declaration *regexp.Regexp
	// assemblyInfoOnly limits the rule to files named like AssemblyInfo.
	assemblyInfoOnly bool
}

const assemblyVersionAttr = `(?:System\s*\.\s*Reflection\s*\.\s*)?Assembly(?:File|Informational)?Version(?:Attribute)?\s*\(`

var conflictRules = map[string]conflictRule{
	".cs": {
		trivia:           regexp.MustCompile(`//[^\n]*|/\*[\s\S]*?\*/|@"(?:""|[^"])*"|"(?:\\.|[^"\\\n])*"`),
		declaration:      regexp.MustCompile(`\[\s*assembly\s*:\s*` + assemblyVersionAttr),
		assemblyInfoOnly: true,
	},
	".fs": {
		trivia:           regexp.MustCompile(`//[^\n]*|\(\*[\s\S]*?\*\)|"(?:\\.|[^"\\])*"`),
		declaration:      regexp.MustCompile(`\[\s*<\s*assembly\s*:\s*` + assemblyVersionAttr),
		assemblyInfoOnly: true,
	},
	".vb": {
		trivia:           regexp.MustCompile(`'[^\n]*|"(?:""|[^"\n])*"`),
		declaration:      regexp.MustCompile(`(?i)<\s*assembly\s*:\s*` + assemblyVersionAttr),
		assemblyInfoOnly: true,
	},
	".go": {
		trivia:      regexp.MustCompile("//[^\\n]*|/\\*[\\s\\S]*?\\*/|\"(?:\\\\.|[^\"\\\\\\n])*\"|`[^`]*`"),
		declaration: regexp.MustCompile(`(?m)^\s*(?:(?:var|const)\s+)?` + BaseName + `\b[^=\n]*=`),
	},
}

// CheckConflicts returns the files that already declare version attributes
// or a GitVersionInformation value, which would clash with generated output.
// Files produced by Generate are ignored.
func (w *Writer) CheckConflicts(files []string) ([]string, error) {
	var conflicts []string
	for _, f := range files {
		base := path.Base(f)
		if strings.HasPrefix(base, BaseName+".g.") || strings.HasPrefix(base, BaseName+"_") {
			continue
		}
		rule, ok := conflictRules[strings.ToLower(path.Ext(base))]
		if !ok {
			continue
		}
		if rule.assemblyInfoOnly && !strings.Contains(base, "AssemblyInfo") {
			continue
		}

		data, err := util.ReadFile(w.fs, f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		if declares(string(data), rule) {
			conflicts = append(conflicts, f)
		}
	}
	return conflicts, nil
}

func declares(src string, rule conflictRule) bool {
	// A trailing newline keeps a final line comment terminated.
	stripped := rule.trivia.ReplaceAllStringFunc(src+"\n", func(m string) string {
		if strings.HasPrefix(m, "//") || strings.HasPrefix(m, "'") {
			return "\n"
		}
		return ""
	})
	return rule.declaration.MatchString(stripped)
}

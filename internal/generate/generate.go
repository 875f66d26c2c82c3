// Package generate writes version source files for build tools. All file
// access goes through a caller-supplied billy filesystem.
package generate

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	mmsemver "github.com/Masterminds/semver/v3"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// BaseName is the file stem and the declared identifier of generated files.
const BaseName = "GitVersionInformation"

// DefaultTempDir holds generated files when no intermediate directory is given.
const DefaultTempDir = "GitVersionTask"

// StaleAfter is the age at which CleanStale removes a temp file.
const StaleAfter = 24 * time.Hour

var (
	// ErrUnknownLanguage is returned for a language without a generator.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrVersionConstraint is returned when the version fails the minimum version guard.
	ErrVersionConstraint = errors.New("version does not satisfy constraint")
)

// Language selects the generated source dialect.
type Language string

const (
	Go          Language = "go"
	CSharp      Language = "cs"
	FSharp      Language = "fs"
	VisualBasic Language = "vb"
	JSON        Language = "json"
)

// ParseLanguage accepts a file extension or a common language name.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "go", "golang":
		return Go, nil
	case "cs", "c#", "csharp":
		return CSharp, nil
	case "fs", "f#", "fsharp":
		return FSharp, nil
	case "vb", "visualbasic":
		return VisualBasic, nil
	case "json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// Extension returns the file extension for l without the leading dot.
func (l Language) Extension() (string, error) {
	switch l {
	case Go, CSharp, FSharp, VisualBasic, JSON:
		return string(l), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, string(l))
}

// Request describes one generated file.
type Request struct {
	Language Language
	// IntermediateDir, when set, receives GitVersionInformation.g.<ext>.
	// Otherwise the file gets a random name in the writer's temp dir.
	IntermediateDir string
	// Project is added to temp file names to tell projects apart.
	Project string
	// Namespace is the Go package or .NET namespace. Defaults to "version"
	// for Go; .NET files use the global namespace when empty.
	Namespace string
	Variables map[string]string
	// MinVersion is a Masterminds constraint the SemVer variable must satisfy.
	MinVersion string
}

// Writer generates version files on a billy filesystem.
type Writer struct {
	fs      billy.Filesystem
	tempDir string
	random  func() string
	logger  *zap.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithTempDir sets the directory for files without an intermediate dir.
func WithTempDir(dir string) Option {
	return func(w *Writer) { w.tempDir = dir }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Writer) { w.logger = l }
}

// WithRandom replaces the temp file name source.
func WithRandom(f func() string) Option {
	return func(w *Writer) { w.random = f }
}

// NewWriter creates a Writer on fs.
func NewWriter(fs billy.Filesystem, opts ...Option) *Writer {
	w := &Writer{
		fs:      fs,
		tempDir: DefaultTempDir,
		random:  randomName,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func randomName() string {
	return strconv.FormatUint(rand.Uint64(), 36)
}

// OutputPath returns where Generate writes the file for req.
func (w *Writer) OutputPath(req Request) (string, error) {
	ext, err := req.Language.Extension()
	if err != nil {
		return "", err
	}
	if req.IntermediateDir != "" {
		return path.Join(req.IntermediateDir, BaseName+".g."+ext), nil
	}
	name := BaseName
	if req.Project != "" {
		name += "_" + req.Project
	}
	return path.Join(w.tempDir, name+"_"+w.random()+".g."+ext), nil
}

// Generate renders req and writes it. It returns the written path.
func (w *Writer) Generate(req Request) (string, error) {
	if err := checkMinVersion(req.MinVersion, req.Variables["SemVer"]); err != nil {
		return "", err
	}

	out, err := w.OutputPath(req)
	if err != nil {
		return "", err
	}

	content, err := Render(req)
	if err != nil {
		return "", err
	}

	if err := w.fs.MkdirAll(path.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", path.Dir(out), err)
	}
	if err := util.WriteFile(w.fs, out, content, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}

	w.logger.Debug("generated version file",
		zap.String("path", out),
		zap.String("language", string(req.Language)))
	return out, nil
}

func checkMinVersion(constraint, version string) error {
	if constraint == "" {
		return nil
	}
	c, err := mmsemver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing min version %q: %w", constraint, err)
	}
	v, err := mmsemver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", version, err)
	}
	if ok, errs := c.Validate(v); !ok {
		return fmt.Errorf("%w: %s %s: %w", ErrVersionConstraint, version, constraint, errors.Join(errs...))
	}
	return nil
}

// CleanStale removes files in the temp dir last written more than
// StaleAfter before now. It returns the number of files removed.
func (w *Writer) CleanStale(now time.Time) (int, error) {
	entries, err := w.fs.ReadDir(w.tempDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading %s: %w", w.tempDir, err)
	}

	cutoff := now.Add(-StaleAfter)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !e.ModTime().Before(cutoff) {
			continue
		}
		p := path.Join(w.tempDir, e.Name())
		if err := w.fs.Remove(p); err != nil {
			// Another build may hold the file.
			w.logger.Debug("skipping stale file", zap.String("path", p), zap.Error(err))
			continue
		}
		removed++
	}
	return removed, nil
}

// Render returns the file content for req.
func Render(req Request) ([]byte, error) {
	keys := make([]string, 0, len(req.Variables))
	for k := range req.Variables {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	switch req.Language {
	case Go:
		if err := renderGo(&buf, req, keys); err != nil {
			return nil, err
		}
	case CSharp:
		renderCSharp(&buf, req, keys)
	case FSharp:
		renderFSharp(&buf, req, keys)
	case VisualBasic:
		renderVisualBasic(&buf, req, keys)
	case JSON:
		if err := renderJSON(&buf, req.Variables); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, string(req.Language))
	}
	return buf.Bytes(), nil
}

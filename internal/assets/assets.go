// Package assets locates the original PDF and the extracted markdown of a
// document on disk.
package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/odoma/benchdash/internal/schema"
)

// ErrAssetNotFound is returned when a PDF or markdown file is absent.
var ErrAssetNotFound = errors.New("asset not found")

// UnknownDiscipline is used in paths when a row carries no discipline.
const UnknownDiscipline = "Unknown"

// Resolver maps (discipline, filename, tool) to files under the configured roots:
//
//	<pdf_dir>/<discipline>/<filename>.pdf
//	<markdown_dir>/<tool>/<discipline>/<filename>_<tool>.md
type Resolver struct {
	PDFDir      string
	MarkdownDir string
	Schema      schema.Schema
}

// NewResolver creates a resolver for the given roots.
func NewResolver(pdfDir, markdownDir string, sch schema.Schema) *Resolver {
	return &Resolver{PDFDir: pdfDir, MarkdownDir: markdownDir, Schema: sch}
}

// PDFPath returns where the PDF of a document is expected.
func (r *Resolver) PDFPath(discipline, filename string) (string, error) {
	if err := checkSegments(discipline, filename); err != nil {
		return "", err
	}
	return filepath.Join(r.PDFDir, orUnknown(discipline), filename+".pdf"), nil
}

// MarkdownPath returns where the markdown extracted by tool is expected.
func (r *Resolver) MarkdownPath(tool, discipline, filename string) (string, error) {
	if !r.Schema.HasTool(tool) {
		return "", fmt.Errorf("%w: unknown tool %q", ErrAssetNotFound, tool)
	}
	if err := checkSegments(discipline, filename); err != nil {
		return "", err
	}
	return filepath.Join(r.MarkdownDir, tool, orUnknown(discipline), filename+"_"+tool+".md"), nil
}

// MarkdownName is the download name of an extracted markdown file.
func MarkdownName(filename, tool string) string {
	return filename + "_" + tool + ".md"
}

// OpenPDF opens the PDF of a document.
func (r *Resolver) OpenPDF(discipline, filename string) (*os.File, error) {
	path, err := r.PDFPath(discipline, filename)
	if err != nil {
		return nil, err
	}
	return openAsset(path)
}

// PDFInfo describes a document's PDF. PageCountError is set when the file
// exists but pdfcpu cannot parse it; the file itself is still servable.
type PDFInfo struct {
	Path           string    `json:"path"`
	Size           int64     `json:"size"`
	Modified       time.Time `json:"modified"`
	PageCount      int       `json:"page_count"`
	PageCountError string    `json:"page_count_error,omitempty"`
}

// PDFInfo stats the PDF and counts its pages.
func (r *Resolver) PDFInfo(discipline, filename string) (*PDFInfo, error) {
	f, err := r.OpenPDF(discipline, filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Inspect(f)
}

// Inspect describes an open PDF. Only a failing stat is an error; a parse
// failure is reported in PageCountError.
func Inspect(f *os.File) (*PDFInfo, error) {
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	info := &PDFInfo{Path: f.Name(), Size: st.Size(), Modified: st.ModTime()}
	pageCount, err := countPages(f)
	if err != nil {
		info.PageCountError = fmt.Sprintf("failed to read PDF %s: %v", f.Name(), err)
		return info, nil
	}
	info.PageCount = pageCount
	return info, nil
}

// countPages counts pages with pdfcpu, turning a parser panic on a
// malformed file into an error.
func countPages(f *os.File) (n int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pdfcpu: %v", p)
		}
	}()
	return api.PageCount(f, nil)
}

// Markdown is one tool's extracted text for a document.
type Markdown struct {
	Tool    string    `json:"tool"`
	Path    string    `json:"path"`
	Content string    `json:"content"`
	Stats   TextStats `json:"stats"`
}

// Markdown reads the markdown extracted by tool and computes its stats.
func (r *Resolver) Markdown(tool, discipline, filename string) (*Markdown, error) {
	path, err := r.MarkdownPath(tool, discipline, filename)
	if err != nil {
		return nil, err
	}
	f, err := openAsset(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	content := string(data)
	return &Markdown{Tool: tool, Path: path, Content: content, Stats: Stats(content)}, nil
}

func openAsset(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrAssetNotFound, path)
	}
	return f, nil
}

// checkSegments rejects values that would escape their directory.
func checkSegments(discipline, filename string) error {
	if filename == "" {
		return fmt.Errorf("%w: empty filename", ErrAssetNotFound)
	}
	for _, s := range []string{discipline, filename} {
		if s == "." || s == ".." || strings.ContainsAny(s, `/\`) || strings.ContainsRune(s, 0) {
			return fmt.Errorf("%w: invalid path segment %q", ErrAssetNotFound, s)
		}
	}
	return nil
}

func orUnknown(discipline string) string {
	if discipline == "" {
		return UnknownDiscipline
	}
	return discipline
}

package prompt

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fumiama/go-docx"
	"github.com/shaheeralics/scriptwriter/internal/script"
)

// LoadTemplate reads a template file. A blank path selects the built-in
// template; a missing or unreadable file yields an empty template.
func LoadTemplate(path string, logger *log.Logger) string {
	if path == "" {
		return DefaultTemplate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			loggerOrDefault(logger).Printf("prompt: reading template %s: %v", path, err)
		}
		return ""
	}
	return string(data)
}

// LoadCorpus expands the glob patterns (doublestar syntax) and reads every
// matching file into an ordered list of reference entries. Word documents
// contribute one entry per non-empty paragraph, other files one entry per
// blank-line separated block. Unreadable files are logged and skipped.
func LoadCorpus(patterns []string, logger *log.Logger) []string {
	logger = loggerOrDefault(logger)
	var corpus []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			logger.Printf("prompt: bad reference pattern %q: %v", pattern, err)
			continue
		}
		sort.Strings(matches)
		for _, path := range matches {
			if seen[path] {
				continue
			}
			seen[path] = true
			entries, err := readReferenceFile(path)
			if err != nil {
				logger.Printf("prompt: skipping reference %s: %v", path, err)
				continue
			}
			corpus = append(corpus, entries...)
		}
	}
	return corpus
}

func readReferenceFile(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("is a directory")
	}
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return readDocxParagraphs(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return script.Paragraphs(string(data)), nil
}

// readDocxParagraphs extracts the text of each non-empty body paragraph of
// a .docx document.
func readDocxParagraphs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parsing docx: %w", err)
	}
	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		p, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := strings.TrimSpace(p.String()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return paragraphs, nil
}

func loggerOrDefault(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}

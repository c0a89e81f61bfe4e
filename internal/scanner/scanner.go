package scanner

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode/utf8"
)

// File is one text file lifted out of a repository snapshot.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Size    int    `json:"size"`
}

var supportedExtensions = []string{
	".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".cpp", ".c", ".h",
	".go", ".rb", ".php", ".cs", ".swift", ".kt", ".rs", ".scala",
	".json", ".yaml", ".yml", ".xml", ".toml", ".md", ".txt",
	".html", ".css", ".scss", ".sass", ".vue", ".sql",
}

var ignoredDirs = []string{
	"__pycache__", "node_modules", ".git", ".next", "build", "dist",
	"venv", "env", ".venv", "target", "bin", "obj", ".idea", ".vscode",
}

// Scanner extracts supported text files from a repository zipball.
type Scanner struct {
	maxFileBytes int
}

func New(maxFileBytes int) *Scanner {
	return &Scanner{maxFileBytes: maxFileBytes}
}

// ExtractAndScan walks a GitHub zipball and returns every supported text
// file with its archive-level leading directory stripped, so paths are
// repository relative.
func (s *Scanner) ExtractAndScan(zipContent []byte) ([]File, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipContent), int64(len(zipContent)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	var files []File

	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if inIgnoredDir(entry.Name) {
			continue
		}
		if !hasSupportedExtension(entry.Name) {
			continue
		}
		if s.maxFileBytes > 0 && entry.UncompressedSize64 > uint64(s.maxFileBytes) {
			continue
		}

		content, err := readEntry(entry)
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		if !utf8.ValidString(content) {
			continue
		}

		files = append(files, File{
			Path:    stripArchiveRoot(entry.Name),
			Content: content,
			Size:    len(content),
		})
	}

	return files, nil
}

// FilterByLanguage narrows a file set to one language's extensions; an
// unknown language returns the set unchanged.
func FilterByLanguage(files []File, language string) []File {
	extensions, ok := languageExtensions[strings.ToLower(language)]
	if !ok {
		return files
	}

	var result []File
	for _, f := range files {
		for _, ext := range extensions {
			if strings.HasSuffix(f.Path, ext) {
				result = append(result, f)
				break
			}
		}
	}
	return result
}

var languageExtensions = map[string][]string{
	"python":     {".py"},
	"javascript": {".js", ".jsx"},
	"typescript": {".ts", ".tsx"},
	"java":       {".java"},
	"go":         {".go"},
	"ruby":       {".rb"},
	"php":        {".php"},
	"csharp":     {".cs"},
	"cpp":        {".cpp", ".c", ".h"},
	"rust":       {".rs"},
}

func readEntry(entry *zip.File) (string, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func inIgnoredDir(name string) bool {
	for _, part := range strings.Split(path.Dir(name), "/") {
		for _, ignored := range ignoredDirs {
			if part == ignored {
				return true
			}
		}
	}
	return false
}

func hasSupportedExtension(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, supported := range supportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// GitHub zipballs wrap everything in a single "<owner>-<repo>-<sha>/" folder.
func stripArchiveRoot(name string) string {
	if idx := strings.Index(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// addGitignoreEntry appends dir, relative to repoRoot, to .gitignore.
// It reports false when the entry is already listed.
func addGitignoreEntry(repoRoot, dir string) (bool, error) {
	rel, err := filepath.Rel(repoRoot, dir)
	if err != nil {
		return false, fmt.Errorf("resolve directory: %w", err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, fmt.Errorf("directory %q is outside the repository", dir)
	}
	entry := filepath.ToSlash(rel) + "/"

	path := filepath.Join(repoRoot, ".gitignore")
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}
	for _, line := range strings.Split(string(existing), "\n") {
		line = strings.TrimSpace(line)
		if line == entry || line == strings.TrimSuffix(entry, "/") {
			return false, nil
		}
	}
	content := string(existing)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

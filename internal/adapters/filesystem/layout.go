package filesystem

import (
	"os"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

// Layout resolves the working-directory sub-trees owned by the renderers
// (build/<env>/<tool>/) and implements purge, which removes both the
// build tree and the repository's data/<env>/ directory.
type Layout struct {
	workingDir string
}

var _ usecases.Layout = (*Layout)(nil)

// NewLayout returns a Layout rooted at workingDir.
func NewLayout(workingDir string) *Layout {
	return &Layout{workingDir: workingDir}
}

// BuildPaths returns the tofu/ansible/compose sub-directories for name.
func (l *Layout) BuildPaths(name entities.EnvironmentName) usecases.BuildPaths {
	root := filepath.Join(l.workingDir, "build", name.String())
	return usecases.BuildPaths{
		Tofu:    filepath.Join(root, "tofu"),
		Ansible: filepath.Join(root, "ansible"),
		Compose: filepath.Join(root, "compose"),
	}
}

// Purge removes build/<name>/, the sub-tree the renderers own. The
// repository owns data/<name>/ and removes it separately via Delete; the
// Purge use case calls both.
func (l *Layout) Purge(name entities.EnvironmentName) error {
	buildDir := filepath.Join(l.workingDir, "build", name.String())
	if err := os.RemoveAll(buildDir); err != nil {
		return &entities.FileSystemError{Op: "remove", Path: buildDir, Err: err}
	}
	return nil
}

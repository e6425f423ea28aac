package render

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

// inventoryContext is the context bound to inventory.ini.tmpl: host, port,
// SSH username and private key path.
type inventoryContext struct {
	AnsibleHost       string
	AnsiblePort       string
	AnsibleUser       string
	SshPrivateKeyPath string
}

// ConfigEngineRenderer renders the config-engine's build/<env>/ansible/
// inventory file and copies its static playbooks.
type ConfigEngineRenderer struct {
	engine usecases.TemplateEngine
}

var _ usecases.ConfigEngineRenderer = (*ConfigEngineRenderer)(nil)

// NewConfigEngineRenderer returns a ConfigEngineRenderer using engine to
// render the inventory.
func NewConfigEngineRenderer(engine usecases.TemplateEngine) *ConfigEngineRenderer {
	return &ConfigEngineRenderer{engine: engine}
}

// Render writes inventory.ini and the playbooks/ directory into dir.
func (r *ConfigEngineRenderer) Render(ctx context.Context, dir string, host entities.AnsibleHost, port entities.AnsiblePort, env entities.Environment) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &entities.FileSystemError{Op: "mkdir", Path: dir, Err: err}
	}

	body, err := templatesFS.ReadFile("templates/ansible/inventory.ini.tmpl")
	if err != nil {
		return &entities.FileSystemError{Op: "read embedded", Path: "templates/ansible/inventory.ini.tmpl", Err: err}
	}
	rendered, err := r.engine.Render("inventory.ini.tmpl", string(body), inventoryContext{
		AnsibleHost:       host.String(),
		AnsiblePort:       port.String(),
		AnsibleUser:       env.SshCredentials.Username.String(),
		SshPrivateKeyPath: env.SshCredentials.PrivateKeyPath,
	})
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "inventory.ini"), []byte(rendered)); err != nil {
		return err
	}

	return copyEmbeddedDir("templates/ansible/playbooks", filepath.Join(dir, "playbooks"))
}

// copyEmbeddedDir copies every file under an embedded src directory
// verbatim to dst on disk, creating parent directories as needed.
func copyEmbeddedDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return &entities.FileSystemError{Op: "mkdir", Path: dst, Err: err}
	}
	return fs.WalkDir(templatesFS, src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return relErr
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, readErr := templatesFS.ReadFile(path)
		if readErr != nil {
			return &entities.FileSystemError{Op: "read embedded", Path: path, Err: readErr}
		}
		return writeFile(target, data)
	})
}

package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

// tofuVarsContext is the context bound to terraform.tfvars.tmpl.
type tofuVarsContext struct {
	EnvironmentName   string
	ProviderKind      string
	ProfileName       string
	HetznerAPIToken   string
	HetznerServerType string
	HetznerLocation   string
	HetznerImage      string
}

// cloudInitContext is the context bound to cloud-init.yml.tmpl.
type cloudInitContext struct {
	Username     string
	SSHPublicKey string
}

// ProvisionerRenderer renders the infra-provisioner's build/<env>/tofu/
// artifacts: a verbatim static main.tf, a rendered terraform.tfvars, and a
// cloud-init file with the operator's SSH public key injected.
type ProvisionerRenderer struct {
	engine usecases.TemplateEngine
}

var _ usecases.ProvisionerRenderer = (*ProvisionerRenderer)(nil)

// NewProvisionerRenderer returns a ProvisionerRenderer using engine to
// render the templated files.
func NewProvisionerRenderer(engine usecases.TemplateEngine) *ProvisionerRenderer {
	return &ProvisionerRenderer{engine: engine}
}

// Render writes main.tf, terraform.tfvars, and cloud-init.yml into dir.
func (r *ProvisionerRenderer) Render(ctx context.Context, dir string, env entities.Environment) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &entities.FileSystemError{Op: "mkdir", Path: dir, Err: err}
	}

	mainTF, err := templatesFS.ReadFile("templates/tofu/main.tf")
	if err != nil {
		return &entities.FileSystemError{Op: "read embedded", Path: "templates/tofu/main.tf", Err: err}
	}
	if err := writeFile(filepath.Join(dir, "main.tf"), mainTF); err != nil {
		return err
	}

	varsBody, err := templatesFS.ReadFile("templates/tofu/terraform.tfvars.tmpl")
	if err != nil {
		return &entities.FileSystemError{Op: "read embedded", Path: "templates/tofu/terraform.tfvars.tmpl", Err: err}
	}
	varsCtx := tofuVarsContext{
		EnvironmentName: env.Name.String(),
		ProviderKind:    string(env.Provider.Kind),
	}
	if env.Provider.Kind == entities.ProviderLXD && env.Provider.ProfileName != nil {
		varsCtx.ProfileName = env.Provider.ProfileName.String()
	}
	if env.Provider.Kind == entities.ProviderHetzner {
		varsCtx.HetznerAPIToken = env.Provider.APIToken
		varsCtx.HetznerServerType = env.Provider.ServerType
		varsCtx.HetznerLocation = env.Provider.Location
		varsCtx.HetznerImage = env.Provider.Image
	}
	rendered, err := r.engine.Render("terraform.tfvars.tmpl", string(varsBody), varsCtx)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "terraform.tfvars"), []byte(rendered)); err != nil {
		return err
	}

	cloudInitBody, err := templatesFS.ReadFile("templates/tofu/cloud-init.yml.tmpl")
	if err != nil {
		return &entities.FileSystemError{Op: "read embedded", Path: "templates/tofu/cloud-init.yml.tmpl", Err: err}
	}
	pubKey, err := os.ReadFile(env.SshCredentials.PublicKeyPath)
	if err != nil {
		return &entities.FileSystemError{Op: "read ssh public key", Path: env.SshCredentials.PublicKeyPath, Err: err}
	}
	cloudInitRendered, err := r.engine.Render("cloud-init.yml.tmpl", string(cloudInitBody), cloudInitContext{
		Username:     env.SshCredentials.Username.String(),
		SSHPublicKey: strings.TrimSpace(string(pubKey)),
	})
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "cloud-init.yml"), []byte(cloudInitRendered))
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &entities.FileSystemError{Op: "write", Path: path, Err: err}
	}
	return nil
}

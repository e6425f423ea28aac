// Package usecases implements the application-layer command handlers: one
// per lifecycle transition. Each loads state, verifies the current state
// permits the requested transition, invokes external tools through the
// ports below, and commits the resulting state.
package usecases

import (
	"context"
	"time"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// EnvironmentRepository persists and loads the single environment record
// keyed by name, under a per-environment file lock with an atomic
// tmp-file-plus-rename commit.
//
// Implementations MUST acquire the environment's lock for the duration of
// Save and Load, and MUST leave the previous record intact if a write is
// interrupted.
type EnvironmentRepository interface {
	// Save serializes env as JSON and commits it atomically. Returns
	// entities.LockTimeoutError if the lock cannot be acquired in time.
	Save(ctx context.Context, env entities.Environment) error

	// Load reads the named environment. found is false (err nil) if no
	// record exists; err is non-nil for lock timeouts or corrupt records.
	Load(ctx context.Context, name entities.EnvironmentName) (env entities.Environment, found bool, err error)

	// Exists reports whether a record exists, promoting neither "not
	// found" nor read errors to a boolean false — read errors propagate.
	Exists(ctx context.Context, name entities.EnvironmentName) (bool, error)

	// Delete removes data/<name>/ entirely, lock file included.
	Delete(ctx context.Context, name entities.EnvironmentName) error

	// List enumerates every persisted environment, best-effort: corrupt
	// entries are logged and skipped rather than failing the whole call.
	List(ctx context.Context) ([]entities.Environment, error)
}

// TemplateEngine renders a named template body against a serializable
// context.
//
// Implementations MUST fail at parse time on syntax errors and at render
// time on any field the context does not supply — lenient substitution
// (silent empty string) is forbidden.
type TemplateEngine interface {
	// Render parses body, renders it against data, and returns the
	// result. name identifies the template in error messages.
	Render(name string, body string, data any) (string, error)
}

// BuildPaths locates the build sub-tree for one environment's rendered
// artifacts, one directory per tool family.
type BuildPaths struct {
	Tofu    string
	Ansible string
	Compose string
}

// Layout resolves the working-directory paths owned by the repository,
// the renderers, and purge, per §3's repository layout. The working
// directory is always an explicit parameter here, never the process cwd.
type Layout interface {
	BuildPaths(name entities.EnvironmentName) BuildPaths

	// Purge removes build/<name>/, the sub-tree the renderers own. The
	// Purge use case separately calls EnvironmentRepository.Delete to
	// remove data/<name>/, which the repository owns.
	Purge(name entities.EnvironmentName) error
}

// ProvisionerRenderer renders the infra-provisioner's build/<env>/tofu/
// artifacts: a static infrastructure declaration and a cloud-init file with
// the SSH public key injected.
//
// The implementation in adapters/render reads, parses and renders its
// templates inside each Render call; nothing is parsed or validated when
// the renderer is constructed, so template errors surface from Render.
type ProvisionerRenderer interface {
	Render(ctx context.Context, dir string, env entities.Environment) error
}

// ConfigEngineRenderer renders the config-engine's build/<env>/ansible/
// inventory and playbooks.
type ConfigEngineRenderer interface {
	Render(ctx context.Context, dir string, host entities.AnsibleHost, port entities.AnsiblePort, env entities.Environment) error
}

// ContainerRuntimeRenderer renders the container-runtime's
// build/<env>/compose/ compose file from a topology and tracker config.
type ContainerRuntimeRenderer interface {
	Render(ctx context.Context, dir string, topology entities.Topology, tracker entities.TrackerConfig) error
}

// InstanceInfo is the parsed shape of the infra provisioner's
// `output -json`.
type InstanceInfo struct {
	Name      string
	IPAddress string
	Status    string
	Image     string
}

// ProvisionerClient wraps the infra-provisioner CLI (init/apply/destroy/
// output).
//
// Implementations MUST distinguish failure to start the binary (not on
// PATH) from a non-zero exit from a parse failure of its JSON output.
type ProvisionerClient interface {
	Init(ctx context.Context, workDir string) error
	Apply(ctx context.Context, workDir string) error
	Destroy(ctx context.Context, workDir string) error
	Output(ctx context.Context, workDir string) (InstanceInfo, error)
}

// VMInfo is one entry of the local VM manager's `list --format=json`.
type VMInfo struct {
	Name      string
	IPAddress *string
}

// VMManagerClient wraps the local-VM provider CLI used by the lxd
// provider variant.
type VMManagerClient interface {
	List(ctx context.Context) ([]VMInfo, error)
	Delete(ctx context.Context, name string, force bool) error
	DeleteProfile(ctx context.Context, name string) error
}

// SSHClient wraps remote command execution over SSH.
//
// Implementations MUST bound WaitForConnectivity's retry loop (default 30
// attempts at 2s intervals) and return entities.SshConnectivityTimeoutError
// on exhaustion.
type SSHClient interface {
	Exec(ctx context.Context, addr entities.SshSocketAddr, creds entities.SshCredentials, command string) (stdout string, err error)
	Check(ctx context.Context, addr entities.SshSocketAddr, creds entities.SshCredentials, command string) (bool, error)
	WaitForConnectivity(ctx context.Context, addr entities.SshSocketAddr, creds entities.SshCredentials) error

	// UploadDir copies the contents of localDir to remoteDir on the
	// instance, creating remoteDir if needed. Used by release to ship
	// rendered compose artifacts before bringing the stack up.
	UploadDir(ctx context.Context, addr entities.SshSocketAddr, creds entities.SshCredentials, localDir, remoteDir string) error
}

// ConfigEngineClient wraps the config-management engine CLI (one
// `run-playbook` invocation per playbook).
type ConfigEngineClient interface {
	RunPlaybook(ctx context.Context, inventoryDir string, playbook string) error
}

// ContainerRuntimeClient wraps the container-runtime CLI's compose
// lifecycle, invoked on the remote instance over SSH.
type ContainerRuntimeClient interface {
	ComposeUp(ctx context.Context, addr entities.SshSocketAddr, creds entities.SshCredentials, composeDir string) error
	ComposeDown(ctx context.Context, addr entities.SshSocketAddr, creds entities.SshCredentials, composeDir string) error
}

// ProgressListener is the optional capability handlers invoke to report
// structured progress to the presentation layer. A nil-safe no-op
// implementation is the default.
type ProgressListener interface {
	OnStepStart(step string)
	OnStepFinish(step string, err error)
	OnLog(level string, msg string)
}

// NoopProgressListener discards every event; the default when a caller
// supplies none.
type NoopProgressListener struct{}

func (NoopProgressListener) OnStepStart(string)          {}
func (NoopProgressListener) OnStepFinish(string, error)  {}
func (NoopProgressListener) OnLog(string, string)        {}

// HealthCheckReport is the outcome of the test handler's probes.
type HealthCheckReport struct {
	CheckedAt time.Time
	Healthy   bool
	Details   []string
}

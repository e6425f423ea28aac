package tools

import (
	"context"
	"fmt"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

// ContainerRuntime wraps docker compose, invoked on the remote instance over
// an SSHClient rather than a local exec.Command — the runtime the Run
// handler manages never runs on this host.
type ContainerRuntime struct {
	ssh usecases.SSHClient
}

var _ usecases.ContainerRuntimeClient = (*ContainerRuntime)(nil)

// NewContainerRuntime returns a ContainerRuntime issuing its commands over ssh.
func NewContainerRuntime(ssh usecases.SSHClient) *ContainerRuntime {
	return &ContainerRuntime{ssh: ssh}
}

func (c *ContainerRuntime) ComposeUp(ctx context.Context, addr entities.SshSocketAddr, creds entities.SshCredentials, composeDir string) error {
	cmd := fmt.Sprintf("cd %q && docker compose up -d", composeDir)
	_, err := c.ssh.Exec(ctx, addr, creds, cmd)
	return err
}

func (c *ContainerRuntime) ComposeDown(ctx context.Context, addr entities.SshSocketAddr, creds entities.SshCredentials, composeDir string) error {
	cmd := fmt.Sprintf("cd %q && docker compose down", composeDir)
	_, err := c.ssh.Exec(ctx, addr, creds, cmd)
	return err
}

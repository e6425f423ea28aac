// Package tools implements the typed façades over the external tools the
// command handlers invoke: the infra provisioner, the local-VM manager,
// SSH, the config engine, and the container runtime.
package tools

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

const (
	sshDialTimeout           = 10 * time.Second
	sshConnectivityAttempts  = 30
	sshConnectivityInterval  = 2 * time.Second
)

// SSHClient implements usecases.SSHClient over golang.org/x/crypto/ssh,
// dialing a fresh connection per call. It never shells out to a system
// ssh binary.
type SSHClient struct{}

var _ usecases.SSHClient = (*SSHClient)(nil)

// NewSSHClient returns a ready-to-use SSHClient.
func NewSSHClient() *SSHClient {
	return &SSHClient{}
}

func (c *SSHClient) dial(addr entities.SshSocketAddr, creds entities.SshCredentials) (*ssh.Client, error) {
	key, err := os.ReadFile(creds.PrivateKeyPath)
	if err != nil {
		return nil, &entities.FileSystemError{Op: "read ssh private key", Path: creds.PrivateKeyPath, Err: err}
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, &entities.ExternalToolStartupError{Tool: "ssh", Err: fmt.Errorf("parse private key: %w", err)}
	}

	config := &ssh.ClientConfig{
		User:            creds.Username.String(),
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // the instance's host key is unknown on first boot
		Timeout:         sshDialTimeout,
	}

	client, err := ssh.Dial("tcp", addr.String(), config)
	if err != nil {
		return nil, &entities.ExternalToolStartupError{Tool: "ssh", Err: err}
	}
	return client, nil
}

// Exec runs command on the remote host and returns its combined stdout.
func (c *SSHClient) Exec(ctx context.Context, addr entities.SshSocketAddr, creds entities.SshCredentials, command string) (string, error) {
	client, err := c.dial(addr, creds)
	if err != nil {
		return "", err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", &entities.ExternalToolStartupError{Tool: "ssh", Err: err}
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	if err := session.Run(command); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*ssh.ExitError); ok {
			exitCode = exitErr.ExitStatus()
		}
		return stdout.String(), &entities.ExternalToolFailureError{Tool: "ssh", Op: command, ExitCode: exitCode, Stderr: stderr.String()}
	}
	return stdout.String(), nil
}

// Check runs command and reports whether it exited zero, swallowing
// non-zero exits as a false result rather than an error.
func (c *SSHClient) Check(ctx context.Context, addr entities.SshSocketAddr, creds entities.SshCredentials, command string) (bool, error) {
	_, err := c.Exec(ctx, addr, creds, command)
	if err == nil {
		return true, nil
	}
	var toolErr *entities.ExternalToolFailureError
	if asExternalToolFailure(err, &toolErr) {
		return false, nil
	}
	return false, err
}

func asExternalToolFailure(err error, target **entities.ExternalToolFailureError) bool {
	if e, ok := err.(*entities.ExternalToolFailureError); ok {
		*target = e
		return true
	}
	return false
}

// WaitForConnectivity retries a trivial remote command until it succeeds
// or the default retry budget (30 attempts x 2s) is exhausted.
func (c *SSHClient) WaitForConnectivity(ctx context.Context, addr entities.SshSocketAddr, creds entities.SshCredentials) error {
	var lastErr error
	for attempt := 1; attempt <= sshConnectivityAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_, err := c.Exec(ctx, addr, creds, "true")
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt < sshConnectivityAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sshConnectivityInterval):
			}
		}
	}
	_ = lastErr
	return &entities.SshConnectivityTimeoutError{
		Host:     addr.String(),
		Attempts: sshConnectivityAttempts,
		Timeout:  sshConnectivityAttempts * sshConnectivityInterval,
	}
}

// UploadDir streams localDir as a tar archive over an SSH session piped
// into `tar x` on the remote host, creating remoteDir if needed. This
// avoids depending on an SFTP library for what is, in practice, a single
// directory of small rendered text files.
func (c *SSHClient) UploadDir(ctx context.Context, addr entities.SshSocketAddr, creds entities.SshCredentials, localDir, remoteDir string) error {
	client, err := c.dial(addr, creds)
	if err != nil {
		return err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return &entities.ExternalToolStartupError{Tool: "ssh", Err: err}
	}
	defer session.Close()

	archive, err := tarDir(localDir)
	if err != nil {
		return err
	}

	session.Stdin = bytes.NewReader(archive)
	var stderr bytes.Buffer
	session.Stderr = &stderr

	remoteCmd := fmt.Sprintf("mkdir -p %q && tar -xf - -C %q", remoteDir, remoteDir)
	if err := session.Run(remoteCmd); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*ssh.ExitError); ok {
			exitCode = exitErr.ExitStatus()
		}
		return &entities.ExternalToolFailureError{Tool: "ssh", Op: "upload " + localDir, ExitCode: exitCode, Stderr: stderr.String()}
	}
	return nil
}

// tarDir archives every regular file under dir into an in-memory tar,
// preserving relative paths.
func tarDir(dir string) ([]byte, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = rel
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return nil, &entities.FileSystemError{Op: "tar", Path: dir, Err: err}
	}
	if err := tw.Close(); err != nil {
		return nil, &entities.FileSystemError{Op: "tar close", Path: dir, Err: err}
	}
	return buf.Bytes(), nil
}

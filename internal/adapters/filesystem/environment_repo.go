package filesystem

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

const lockTimeout = 30 * time.Second

// EnvironmentRepository implements usecases.EnvironmentRepository: one
// JSON record per environment under <workingDir>/data/<name>/, guarded by
// a sidecar file lock and committed with a tmp-file-plus-rename so a
// crash mid-write leaves the previous record intact.
type EnvironmentRepository struct {
	workingDir string
	log        usecases.Logger
}

var _ usecases.EnvironmentRepository = (*EnvironmentRepository)(nil)

// NewEnvironmentRepository returns a repository rooted at workingDir/data.
// log may be nil; List uses it to report (not fail on) corrupt records.
func NewEnvironmentRepository(workingDir string, log usecases.Logger) *EnvironmentRepository {
	if log == nil {
		log = usecases.NoopLogger{}
	}
	return &EnvironmentRepository{workingDir: workingDir, log: log}
}

func (r *EnvironmentRepository) dir(name entities.EnvironmentName) string {
	return filepath.Join(r.workingDir, "data", name.String())
}

func (r *EnvironmentRepository) recordPath(name entities.EnvironmentName) string {
	return filepath.Join(r.dir(name), "environment.json")
}

// Save serializes env and commits it atomically under the per-environment
// lock: write to environment.json.tmp, fsync, then rename over
// environment.json.
func (r *EnvironmentRepository) Save(ctx context.Context, env entities.Environment) error {
	dir := r.dir(env.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &entities.FileSystemError{Op: "mkdir", Path: dir, Err: err}
	}

	recordPath := r.recordPath(env.Name)
	lock := NewFileLock(recordPath)
	handle, err := lock.Acquire(lockTimeout)
	if err != nil {
		return err
	}
	defer handle.Release()

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return &entities.SerializationError{Op: "marshal", Err: err}
	}

	tmpPath := recordPath + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &entities.FileSystemError{Op: "create", Path: tmpPath, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return &entities.FileSystemError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return &entities.FileSystemError{Op: "fsync", Path: tmpPath, Err: err}
	}
	if err := f.Close(); err != nil {
		return &entities.FileSystemError{Op: "close", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, recordPath); err != nil {
		return &entities.FileSystemError{Op: "rename", Path: recordPath, Err: err}
	}
	return nil
}

// Load reads the named environment. found is false with a nil error if no
// record exists.
func (r *EnvironmentRepository) Load(ctx context.Context, name entities.EnvironmentName) (entities.Environment, bool, error) {
	recordPath := r.recordPath(name)

	if _, err := os.Stat(recordPath); os.IsNotExist(err) {
		return entities.Environment{}, false, nil
	}

	lock := NewFileLock(recordPath)
	handle, err := lock.Acquire(lockTimeout)
	if err != nil {
		return entities.Environment{}, false, err
	}
	defer handle.Release()

	data, err := os.ReadFile(recordPath)
	if os.IsNotExist(err) {
		return entities.Environment{}, false, nil
	}
	if err != nil {
		return entities.Environment{}, false, &entities.FileSystemError{Op: "read", Path: recordPath, Err: err}
	}

	var env entities.Environment
	if err := json.Unmarshal(data, &env); err != nil {
		return entities.Environment{}, false, &entities.CorruptRecordError{Path: recordPath, Err: err}
	}
	return env, true, nil
}

// Exists reports whether a record exists; it does not promote "not found"
// to an error.
func (r *EnvironmentRepository) Exists(ctx context.Context, name entities.EnvironmentName) (bool, error) {
	_, found, err := r.Load(ctx, name)
	if err != nil {
		return false, err
	}
	return found, nil
}

// Delete removes data/<name>/ entirely, the lock file with it.
func (r *EnvironmentRepository) Delete(ctx context.Context, name entities.EnvironmentName) error {
	recordPath := r.recordPath(name)
	lock := NewFileLock(recordPath)
	handle, err := lock.Acquire(lockTimeout)
	if err != nil {
		return err
	}

	dir := r.dir(name)
	if err := os.RemoveAll(dir); err != nil {
		handle.Release()
		return &entities.FileSystemError{Op: "remove", Path: dir, Err: err}
	}
	// The lock file lived inside dir and is already gone, so there is
	// nothing left for the handle to release.
	return nil
}

// List enumerates every persisted environment. Corrupt entries are logged
// and skipped rather than failing the whole call.
func (r *EnvironmentRepository) List(ctx context.Context) ([]entities.Environment, error) {
	dataDir := filepath.Join(r.workingDir, "data")
	entries, err := os.ReadDir(dataDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &entities.FileSystemError{Op: "readdir", Path: dataDir, Err: err}
	}

	var out []entities.Environment
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name, err := entities.NewEnvironmentName(e.Name())
		if err != nil {
			r.log.Warn("skipping non-conforming data directory", "dir", e.Name(), "error", err)
			continue
		}
		env, found, err := r.Load(ctx, name)
		if err != nil {
			r.log.Warn("skipping corrupt environment record", "name", name.String(), "error", err)
			continue
		}
		if !found {
			continue
		}
		out = append(out, env)
	}
	return out, nil
}

package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

func newTestEnvironment(t *testing.T, name string) entities.Environment {
	t.Helper()
	envName, err := entities.NewEnvironmentName(name)
	if err != nil {
		t.Fatalf("failed to build environment name: %v", err)
	}
	username, err := entities.NewUsername("torrust")
	if err != nil {
		t.Fatalf("failed to build username: %v", err)
	}
	creds, err := entities.NewSshCredentials("/keys/id_ed25519", "/keys/id_ed25519.pub", username)
	if err != nil {
		t.Fatalf("failed to build ssh credentials: %v", err)
	}
	profile, err := entities.NewProfileName("default")
	if err != nil {
		t.Fatalf("failed to build profile name: %v", err)
	}
	return entities.NewEnvironment(envName, creds, entities.NewLXDProviderConfig(profile), entities.TrackerConfig{}, time.Now().UTC())
}

func TestEnvironmentRepository_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewEnvironmentRepository(dir, usecases.NoopLogger{})
	ctx := context.Background()

	env := newTestEnvironment(t, "tracker-01")
	if err := repo.Save(ctx, env); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	loaded, found, err := repo.Load(ctx, env.Name)
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if !found {
		t.Fatal("expected saved environment to be found")
	}
	if loaded.Name.String() != env.Name.String() {
		t.Fatalf("expected name %q, got %q", env.Name.String(), loaded.Name.String())
	}
	if loaded.State.Kind != entities.StateCreated {
		t.Fatalf("expected state %q, got %q", entities.StateCreated, loaded.State.Kind)
	}
}

func TestEnvironmentRepository_LoadMissingReturnsNotFoundNoError(t *testing.T) {
	dir := t.TempDir()
	repo := NewEnvironmentRepository(dir, usecases.NoopLogger{})
	name, err := entities.NewEnvironmentName("nonexistent")
	if err != nil {
		t.Fatalf("failed to build environment name: %v", err)
	}

	_, found, err := repo.Load(context.Background(), name)
	if err != nil {
		t.Fatalf("expected no error for a missing record, got %v", err)
	}
	if found {
		t.Fatal("expected found to be false for a missing record")
	}
}

func TestEnvironmentRepository_ExistsReflectsSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	repo := NewEnvironmentRepository(dir, usecases.NoopLogger{})
	ctx := context.Background()
	env := newTestEnvironment(t, "tracker-02")

	exists, err := repo.Exists(ctx, env.Name)
	if err != nil || exists {
		t.Fatalf("expected exists=false before save, got exists=%v err=%v", exists, err)
	}

	if err := repo.Save(ctx, env); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}
	exists, err = repo.Exists(ctx, env.Name)
	if err != nil || !exists {
		t.Fatalf("expected exists=true after save, got exists=%v err=%v", exists, err)
	}

	if err := repo.Delete(ctx, env.Name); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	exists, err = repo.Exists(ctx, env.Name)
	if err != nil || exists {
		t.Fatalf("expected exists=false after delete, got exists=%v err=%v", exists, err)
	}
}

func TestEnvironmentRepository_ListSkipsCorruptRecords(t *testing.T) {
	dir := t.TempDir()
	repo := NewEnvironmentRepository(dir, usecases.NoopLogger{})
	ctx := context.Background()

	good := newTestEnvironment(t, "tracker-good")
	if err := repo.Save(ctx, good); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	corruptDir := filepath.Join(dir, "data", "tracker-bad")
	if err := os.MkdirAll(corruptDir, 0o755); err != nil {
		t.Fatalf("failed to create corrupt record dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(corruptDir, "environment.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to seed corrupt record: %v", err)
	}

	envs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("expected list to succeed despite a corrupt record, got %v", err)
	}
	if len(envs) != 1 || envs[0].Name.String() != good.Name.String() {
		t.Fatalf("expected only the good record to be listed, got %+v", envs)
	}
}

func TestEnvironmentRepository_ListEmptyWorkingDirReturnsNil(t *testing.T) {
	dir := t.TempDir()
	repo := NewEnvironmentRepository(dir, usecases.NoopLogger{})

	envs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("expected no error when data/ does not exist, got %v", err)
	}
	if len(envs) != 0 {
		t.Fatalf("expected no environments, got %+v", envs)
	}
}

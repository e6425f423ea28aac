package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

type mockLayout struct{ mock.Mock }

func (m *mockLayout) BuildPaths(name entities.EnvironmentName) usecases.BuildPaths {
	args := m.Called(name)
	return args.Get(0).(usecases.BuildPaths)
}

func (m *mockLayout) Purge(name entities.EnvironmentName) error {
	return m.Called(name).Error(0)
}

type mockProvisionerClient struct{ mock.Mock }

func (m *mockProvisionerClient) Init(ctx context.Context, workDir string) error {
	return m.Called(ctx, workDir).Error(0)
}

func (m *mockProvisionerClient) Apply(ctx context.Context, workDir string) error {
	return m.Called(ctx, workDir).Error(0)
}

func (m *mockProvisionerClient) Destroy(ctx context.Context, workDir string) error {
	return m.Called(ctx, workDir).Error(0)
}

func (m *mockProvisionerClient) Output(ctx context.Context, workDir string) (usecases.InstanceInfo, error) {
	args := m.Called(ctx, workDir)
	return args.Get(0).(usecases.InstanceInfo), args.Error(1)
}

type mockVMManagerClient struct{ mock.Mock }

func (m *mockVMManagerClient) List(ctx context.Context) ([]usecases.VMInfo, error) {
	args := m.Called(ctx)
	vms, _ := args.Get(0).([]usecases.VMInfo)
	return vms, args.Error(1)
}

func (m *mockVMManagerClient) Delete(ctx context.Context, name string, force bool) error {
	return m.Called(ctx, name, force).Error(0)
}

func (m *mockVMManagerClient) DeleteProfile(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func provisionedEnvironment(t *testing.T) entities.Environment {
	t.Helper()
	req := testCreateRequest(t)
	env := entities.NewEnvironment(req.Name, req.SshCredentials, req.Provider, req.Tracker, time.Now().UTC())
	return env.WithState(entities.NewState(entities.StateProvisioned, time.Now().UTC()))
}

func TestDestroy_TearsDownInfraAndSavesDestroyedState(t *testing.T) {
	repo := &mockRepo{}
	layout := &mockLayout{}
	provisioner := &mockProvisionerClient{}
	vmManager := &mockVMManagerClient{}

	env := provisionedEnvironment(t)
	paths := usecases.BuildPaths{Tofu: "/build/tracker-01/tofu"}

	repo.On("Load", mock.Anything, env.Name).Return(env, true, nil)
	layout.On("BuildPaths", env.Name).Return(paths)
	provisioner.On("Destroy", mock.Anything, paths.Tofu).Return(nil)
	vmManager.On("Delete", mock.Anything, "tracker-01", true).Return(nil)
	vmManager.On("DeleteProfile", mock.Anything, "default").Return(nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(e entities.Environment) bool {
		return e.State.Kind == entities.StateDestroyed
	})).Return(nil)

	uc := usecases.NewDestroy(repo, layout, provisioner, vmManager, entities.SystemClock{}, usecases.NoopProgressListener{})
	result, err := uc.Execute(context.Background(), env.Name)

	require.NoError(t, err)
	assert.Equal(t, entities.StateDestroyed, result.State.Kind)
	repo.AssertExpectations(t)
	layout.AssertExpectations(t)
	provisioner.AssertExpectations(t)
	vmManager.AssertExpectations(t)
}

func TestDestroy_IsIdempotentOnAlreadyDestroyed(t *testing.T) {
	repo := &mockRepo{}
	layout := &mockLayout{}
	provisioner := &mockProvisionerClient{}
	vmManager := &mockVMManagerClient{}

	env := provisionedEnvironment(t)
	env = env.WithState(entities.NewState(entities.StateDestroyed, time.Now().UTC()))

	repo.On("Load", mock.Anything, env.Name).Return(env, true, nil)

	uc := usecases.NewDestroy(repo, layout, provisioner, vmManager, entities.SystemClock{}, usecases.NoopProgressListener{})
	result, err := uc.Execute(context.Background(), env.Name)

	require.NoError(t, err)
	assert.Equal(t, entities.StateDestroyed, result.State.Kind)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	provisioner.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
}

func TestDestroy_TreatsProvisionerFailureAsBestEffort(t *testing.T) {
	repo := &mockRepo{}
	layout := &mockLayout{}
	provisioner := &mockProvisionerClient{}
	vmManager := &mockVMManagerClient{}

	env := provisionedEnvironment(t)
	paths := usecases.BuildPaths{Tofu: "/build/tracker-01/tofu"}

	repo.On("Load", mock.Anything, env.Name).Return(env, true, nil)
	layout.On("BuildPaths", env.Name).Return(paths)
	provisioner.On("Destroy", mock.Anything, paths.Tofu).Return(errors.New("tofu: connection refused"))
	vmManager.On("Delete", mock.Anything, "tracker-01", true).Return(nil)
	vmManager.On("DeleteProfile", mock.Anything, "default").Return(nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(e entities.Environment) bool {
		return e.State.Kind == entities.StateDestroyed
	})).Return(nil)

	uc := usecases.NewDestroy(repo, layout, provisioner, vmManager, entities.SystemClock{}, usecases.NoopProgressListener{})
	result, err := uc.Execute(context.Background(), env.Name)

	require.NoError(t, err)
	assert.Equal(t, entities.StateDestroyed, result.State.Kind)
}

func TestDestroy_ReturnsNotFoundForUnknownEnvironment(t *testing.T) {
	repo := &mockRepo{}
	layout := &mockLayout{}
	provisioner := &mockProvisionerClient{}
	vmManager := &mockVMManagerClient{}

	name := testEnvironmentName(t)
	repo.On("Load", mock.Anything, name).Return(entities.Environment{}, false, nil)

	uc := usecases.NewDestroy(repo, layout, provisioner, vmManager, entities.SystemClock{}, usecases.NoopProgressListener{})
	_, err := uc.Execute(context.Background(), name)

	require.Error(t, err)
	var notFound *entities.EnvironmentNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

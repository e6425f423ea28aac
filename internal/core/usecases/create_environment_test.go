package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Save(ctx context.Context, env entities.Environment) error {
	return m.Called(ctx, env).Error(0)
}

func (m *mockRepo) Load(ctx context.Context, name entities.EnvironmentName) (entities.Environment, bool, error) {
	args := m.Called(ctx, name)
	env, _ := args.Get(0).(entities.Environment)
	return env, args.Bool(1), args.Error(2)
}

func (m *mockRepo) Exists(ctx context.Context, name entities.EnvironmentName) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, name entities.EnvironmentName) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockRepo) List(ctx context.Context) ([]entities.Environment, error) {
	args := m.Called(ctx)
	envs, _ := args.Get(0).([]entities.Environment)
	return envs, args.Error(1)
}

func testEnvironmentName(t *testing.T) entities.EnvironmentName {
	t.Helper()
	name, err := entities.NewEnvironmentName("tracker-01")
	require.NoError(t, err)
	return name
}

func testCreateRequest(t *testing.T) usecases.CreateEnvironmentRequest {
	t.Helper()
	username, err := entities.NewUsername("torrust")
	require.NoError(t, err)
	creds, err := entities.NewSshCredentials("/keys/id_ed25519", "/keys/id_ed25519.pub", username)
	require.NoError(t, err)
	profile, err := entities.NewProfileName("default")
	require.NoError(t, err)

	return usecases.CreateEnvironmentRequest{
		Name:           testEnvironmentName(t),
		SshCredentials: creds,
		Provider:       entities.NewLXDProviderConfig(profile),
		Tracker:        entities.TrackerConfig{},
	}
}

func TestCreateEnvironment_PersistsNewEnvironmentInCreatedState(t *testing.T) {
	repo := &mockRepo{}
	req := testCreateRequest(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := entities.FixedClock{At: now}

	repo.On("Exists", mock.Anything, req.Name).Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("entities.Environment")).Return(nil)

	uc := usecases.NewCreateEnvironment(repo, clock, usecases.NoopProgressListener{})
	env, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, entities.StateCreated, env.State.Kind)
	assert.Equal(t, now, env.CreatedAt)
	repo.AssertExpectations(t)
}

func TestCreateEnvironment_RejectsDuplicateName(t *testing.T) {
	repo := &mockRepo{}
	req := testCreateRequest(t)

	repo.On("Exists", mock.Anything, req.Name).Return(true, nil)

	uc := usecases.NewCreateEnvironment(repo, entities.SystemClock{}, usecases.NoopProgressListener{})
	_, err := uc.Execute(context.Background(), req)

	require.Error(t, err)
	var alreadyExists *entities.EnvironmentAlreadyExistsError
	assert.ErrorAs(t, err, &alreadyExists)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

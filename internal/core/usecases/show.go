package usecases

import (
	"context"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// Show loads a single environment's full persisted record.
type Show struct {
	repo EnvironmentRepository
}

// NewShow constructs a Show use case.
func NewShow(repo EnvironmentRepository) *Show {
	return &Show{repo: repo}
}

// Execute returns the named environment's record.
func (uc *Show) Execute(ctx context.Context, name entities.EnvironmentName) (entities.Environment, error) {
	env, found, err := uc.repo.Load(ctx, name)
	if err != nil {
		return entities.Environment{}, err
	}
	if !found {
		return entities.Environment{}, &entities.EnvironmentNotFoundError{Name: name.String()}
	}
	return env, nil
}

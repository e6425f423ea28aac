package usecases

import "context"

// List enumerates every persisted environment.
type List struct {
	repo EnvironmentRepository
}

// NewList constructs a List use case.
func NewList(repo EnvironmentRepository) *List {
	return &List{repo: repo}
}

// Execute returns every persisted environment, in the repository's order.
func (uc *List) Execute(ctx context.Context) ([]EnvironmentSummary, error) {
	envs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]EnvironmentSummary, 0, len(envs))
	for _, env := range envs {
		summaries = append(summaries, EnvironmentSummary{
			Name:       env.Name.String(),
			State:      string(env.State.Kind),
			InstanceIP: env.InstanceIP,
		})
	}
	return summaries, nil
}

// EnvironmentSummary is the list view of one environment.
type EnvironmentSummary struct {
	Name       string
	State      string
	InstanceIP *string
}

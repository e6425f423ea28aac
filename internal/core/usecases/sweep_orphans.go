package usecases

import "context"

// OrphanInstance is a local-VM-manager instance with no matching
// environment record.
type OrphanInstance struct {
	Name    string
	Deleted bool
}

// SweepOrphans finds local-VM-manager instances left behind by
// environments whose records were purged without destroying their
// infrastructure first, reporting them dry-run by default. Profiles are
// not examined.
type SweepOrphans struct {
	repo      EnvironmentRepository
	vmManager VMManagerClient
	progress  ProgressListener
}

// NewSweepOrphans constructs a SweepOrphans use case.
func NewSweepOrphans(repo EnvironmentRepository, vmManager VMManagerClient, progress ProgressListener) *SweepOrphans {
	return &SweepOrphans{repo: repo, vmManager: vmManager, progress: withProgress(progress)}
}

// Execute lists every local-VM instance with no matching environment
// record. When apply is true, each orphan is also deleted.
func (uc *SweepOrphans) Execute(ctx context.Context, apply bool) ([]OrphanInstance, error) {
	uc.progress.OnStepStart("sweep-orphans")

	envs, err := uc.repo.List(ctx)
	if err != nil {
		uc.progress.OnStepFinish("sweep-orphans", err)
		return nil, err
	}
	known := make(map[string]bool, len(envs))
	for _, env := range envs {
		known[env.Name.String()] = true
	}

	instances, err := uc.vmManager.List(ctx)
	if err != nil {
		uc.progress.OnStepFinish("sweep-orphans", err)
		return nil, err
	}

	var orphans []OrphanInstance
	for _, inst := range instances {
		if known[inst.Name] {
			continue
		}
		orphan := OrphanInstance{Name: inst.Name}
		if apply {
			if err := uc.vmManager.Delete(ctx, inst.Name, true); err != nil {
				uc.progress.OnLog("warn", "failed to delete orphan "+inst.Name+": "+err.Error())
			} else {
				orphan.Deleted = true
			}
		}
		orphans = append(orphans, orphan)
	}

	uc.progress.OnStepFinish("sweep-orphans", nil)
	return orphans, nil
}

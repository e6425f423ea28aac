package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/adapters/config"
	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var registerCmd = &cobra.Command{
	Use:   "register --env-file <path> --instance-ip <ip>",
	Short: "Adopt an externally-provisioned instance as Provisioned, skipping the infra provisioner",
	Long: `register is for container-based end-to-end tests and externally
managed instances: it creates (or reuses a Created) environment and moves
it straight to Provisioned once SSH connectivity is confirmed.`,
	GroupID: "lifecycle",
	RunE:    runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().String("env-file", "", "path to the environment config JSON file (required)")
	registerCmd.Flags().String("instance-ip", "", "IP address of the already-running instance (required)")
	registerCmd.Flags().Uint16("ssh-port", 22, "SSH port of the already-running instance")
	_ = registerCmd.MarkFlagRequired("env-file")
	_ = registerCmd.MarkFlagRequired("instance-ip")
}

func runRegister(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	instanceIP, _ := cmd.Flags().GetString("instance-ip")
	sshPortFlag, _ := cmd.Flags().GetUint16("ssh-port")

	req, err := config.LoadEnvFile(envFile)
	if err != nil {
		return err
	}
	if err := usecases.NewValidate().Execute(req); err != nil {
		return err
	}
	sshPort, err := entities.NewAnsiblePort(sshPortFlag)
	if err != nil {
		return err
	}

	deps := newDeps()
	uc := usecases.NewRegister(deps.Repo, deps.SSH, deps.Clock, deps.Progress)
	env, err := uc.Execute(cmd.Context(), usecases.RegisterRequest{
		Name:           req.Name,
		SshCredentials: req.SshCredentials,
		Provider:       req.Provider,
		Tracker:        req.Tracker,
		InstanceIP:     instanceIP,
		SshPort:        sshPort,
	})
	if err != nil {
		return err
	}

	fmt.Printf("registered %q as %s (instance %s)\n", env.Name.String(), env.State.Kind, instanceIP)
	return nil
}

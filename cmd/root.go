package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "v3d",
		Short:         "vision3d engine (v3d): evaluate 3D vision checkpoints",
		Long:          "v3d runs a test epoch of a 3D vision model against a checkpoint, reports per-item and summary metrics, and inspects or converts checkpoint files.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newTestCmd(app),
		newCheckpointCmd(app),
	)

	return rootCmd
}

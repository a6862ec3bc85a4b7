package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	binarycodec "github.com/bnema/vision3d-engine/internal/adapters/checkpoint/binary"
	jsoncodec "github.com/bnema/vision3d-engine/internal/adapters/checkpoint/json"
	"github.com/bnema/vision3d-engine/internal/adapters/rigid"
	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/spf13/cobra"
)

func newCheckpointCmd(app *app) *cobra.Command {
	checkpointCmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Inspect, convert and create checkpoint files",
	}

	checkpointCmd.AddCommand(
		newCheckpointInspectCmd(app),
		newCheckpointConvertCmd(app),
		newCheckpointIdentityCmd(app),
	)

	return checkpointCmd
}

func newCheckpointInspectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <path>",
		Short: "Print the sections of a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			checkpoint, err := app.checkpoints.Read(cmd.Context(), path)
			if err != nil {
				return err
			}

			return writeCheckpointReport(cmd.OutOrStdout(), path, sniffFormat(path), checkpoint)
		},
	}
}

func newCheckpointConvertCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "Rewrite a checkpoint; a .json destination selects the JSON format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkpoint, err := app.checkpoints.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.checkpoints.Write(cmd.Context(), args[1], checkpoint); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s (%s).\n", args[0], args[1], sniffFormat(args[1]))
			return err
		},
	}
}

func newCheckpointIdentityCmd(app *app) *cobra.Command {
	var epoch int64
	var totalSteps int64

	cmd := &cobra.Command{
		Use:   "identity <path>",
		Short: "Write a rigid checkpoint that leaves points unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkpoint := rigid.IdentityCheckpoint()
			checkpoint.Metadata = &domain.CheckpointMetadata{Epoch: epoch, TotalSteps: totalSteps}
			if err := app.checkpoints.Write(cmd.Context(), args[0], checkpoint); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s.\n", args[0])
			return err
		},
	}

	cmd.Flags().Int64Var(&epoch, "epoch", 0, "Epoch recorded in the checkpoint metadata")
	cmd.Flags().Int64Var(&totalSteps, "total_steps", 0, "Step count recorded in the checkpoint metadata")

	return cmd
}

func sniffFormat(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "unknown"
	}

	switch {
	case binarycodec.Sniff(data):
		return "binary"
	case jsoncodec.Sniff(data):
		return "json"
	default:
		return "unknown"
	}
}

func writeCheckpointReport(w io.Writer, path, format string, checkpoint domain.Checkpoint) error {
	lines := []string{
		fmt.Sprintf("path: %s", path),
		fmt.Sprintf("format: %s", format),
	}

	if checkpoint.Model == nil {
		lines = append(lines, "model: none")
	} else {
		lines = append(lines, fmt.Sprintf("model: %d tensors", len(checkpoint.Model)))
		for _, key := range checkpoint.Model.Keys() {
			tensor := checkpoint.Model[key]
			lines = append(lines, fmt.Sprintf("  %s %v (%d values)", key, tensor.Shape, tensor.NumElements()))
		}
	}

	if checkpoint.Metadata == nil {
		lines = append(lines, "metadata: none")
	} else {
		lines = append(lines, fmt.Sprintf("metadata: epoch %d, total_steps %d", checkpoint.Metadata.Epoch, checkpoint.Metadata.TotalSteps))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

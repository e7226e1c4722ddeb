// Package cli implements the healthbridge CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/Fram-Jam/healthbridge/pkg/common/config"
	"github.com/Fram-Jam/healthbridge/pkg/datasets"
	"github.com/Fram-Jam/healthbridge/pkg/datasets/builtin"
	"github.com/spf13/cobra"
)

var dataDirFlag string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "healthbridge",
	Short: "Browse and load public health datasets",
	Long:  "Inspect registered dataset adapters, list their subjects, and load normalized daily health records from the command line.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dataDirFlag, "data-dir", "d", "", "Dataset directory (default: $DATA_DIR or data/datasets)")
}

func getDataDir() string {
	if dataDirFlag != "" {
		return dataDirFlag
	}
	return config.Load().DataDir
}

func newRegistry() *datasets.Registry {
	return builtin.NewRegistry(getDataDir())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

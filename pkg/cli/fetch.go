package cli

import (
	"fmt"

	"github.com/Fram-Jam/healthbridge/pkg/downloader"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "fetch <dataset-id>",
		Short: "Download a dataset's open-access files",
		Args:  cobra.ExactArgs(1),
		Run:   runFetch,
	}

	RootCmd.AddCommand(cmd)
}

func runFetch(cmd *cobra.Command, args []string) {
	datasetID := args[0]

	plan, ok := downloader.PlanFor(datasetID)
	if !ok {
		exitErr("fetch", fmt.Errorf("unknown dataset %q", datasetID))
	}
	if !plan.Direct() {
		fmt.Printf("%s requires a manual download:\n\n  %s\n", datasetID, plan.Instructions)
		return
	}

	fetcher := downloader.NewFetcher(getDataDir())
	if err := fetcher.Fetch(cmd.Context(), datasetID); err != nil {
		exitErr("fetch", err)
	}
	fmt.Printf("%s downloaded into %s\n", datasetID, getDataDir())
}

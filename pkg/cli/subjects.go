package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "subjects <dataset-id>",
		Short: "List subjects in a dataset",
		Args:  cobra.ExactArgs(1),
		Run:   runSubjects,
	}

	cmd.Flags().Bool("json", false, "Output JSON instead of a table")

	RootCmd.AddCommand(cmd)
}

func runSubjects(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")

	registry := newRegistry()
	adapter := registry.Get(args[0])
	if adapter == nil {
		exitErr("subjects", fmt.Errorf("unknown dataset %q", args[0]))
	}
	if !adapter.IsAvailable() {
		meta := adapter.Metadata()
		fmt.Fprintf(os.Stderr, "dataset %q is not downloaded.\n\n%s\n", args[0], meta.DownloadInstructions)
		os.Exit(1)
	}

	subjects := adapter.ListSubjects()
	if asJSON {
		b, _ := json.MarshalIndent(subjects, "", "  ")
		fmt.Println(string(b))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tRECORDS\tRANGE")
	for _, s := range subjects {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.DisplayName, s.RecordCount, s.DateRange)
	}
	w.Flush()
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List registered datasets",
		Run:   runDatasets,
	}

	cmd.Flags().StringP("category", "c", "", "Filter by category (wearables, clinical, genetics, sleep, cgm)")
	cmd.Flags().Bool("available", false, "Only show datasets whose files are present")
	cmd.Flags().Bool("json", false, "Output JSON instead of a table")

	RootCmd.AddCommand(cmd)
}

func runDatasets(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")
	availableOnly, _ := cmd.Flags().GetBool("available")
	asJSON, _ := cmd.Flags().GetBool("json")

	registry := newRegistry()

	var items []models.DatasetMetadata
	switch {
	case availableOnly:
		items = registry.ListAvailable()
	case category != "":
		c := models.DataCategory(category)
		if !c.Valid() {
			exitErr("datasets", fmt.Errorf("unknown category %q", category))
		}
		items = registry.ListByCategory(c)
	default:
		items = registry.ListAll()
	}

	if asJSON {
		b, _ := json.MarshalIndent(items, "", "  ")
		fmt.Println(string(b))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSUBJECTS\tAVAILABLE")
	for _, item := range items {
		available := "no"
		if adapter := registry.Get(item.ID); adapter != nil && adapter.IsAvailable() {
			available = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", item.ID, item.Name, item.Category, item.SubjectCount, available)
	}
	w.Flush()
}

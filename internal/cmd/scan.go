package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

var scanJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Fetch every source once and print the entity",
	Long: `Fetch every source once, score the bundle and print the entity with its
per-source status. Nothing is served and nothing is scheduled.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the entity and raw bundle as JSON")
}

func runScan(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), appConfig)
	if err != nil {
		return err
	}
	defer a.close()

	entity, err := a.service.CurrentEntityState(cmd.Context())
	if err != nil {
		return err
	}
	bundle, err := a.service.RawBundle(cmd.Context(), false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scanJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"entity":       entity,
			"rawInputs":    bundle,
			"sourceStatus": bundle.Status,
		})
	}
	printScan(out, entity, bundle)
	return nil
}

func printScan(w io.Writer, e zeitgeist.EntityState, b *zeitgeist.Bundle) {
	fmt.Fprintf(w, "%s %s is feeling %s (%d/100, base %d, %s)\n",
		e.MoodEmoji, e.Name, e.Mood, e.VibeScore, e.BaseVibeScore, e.Mode)
	fmt.Fprintf(w, "  city: %s   thought: %q\n\n", e.CurrentCity, e.Thought)

	fmt.Fprintln(w, "factors:")
	for _, f := range e.Factors {
		fmt.Fprintf(w, "  %-14s %+6.2f  %s\n", f.Source, f.Delta, f.Label)
	}

	ids := make([]string, 0, len(b.Status))
	for id := range b.Status {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	ok, fallback, failed := b.Counts()
	fmt.Fprintf(w, "\nsources: %d ok, %d fallback, %d failed\n", ok, fallback, failed)
	for _, id := range ids {
		st := b.Status[zeitgeist.SourceID(id)]
		line := fmt.Sprintf("  %-14s %-8s %5dms", id, st.State, st.DurationMS)
		if st.Error != "" {
			line += "  " + st.Error
		}
		fmt.Fprintln(w, line)
	}
}

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/iodocs/internal/route"
)

var resolveJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve [fragment|location]",
	Short: "Resolve a route against the page index",
	Long: `Resolves a "#!/<section>/<page>" fragment or a full location the way the
site does on page load, and prints the resulting route state. With no
argument the configured default fragment is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		index, err := loadIndex(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		location := ""
		if len(args) == 1 {
			location = argLocation(args[0])
		}

		r := route.New(index, cfg.RouteOptions())
		r.Initialize(location)
		view := r.View(location)

		out := cmd.OutOrStdout()
		if resolveJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		}

		st := view.State
		fmt.Fprintf(out, "Fragment: %s\n", st.Fragment)
		fmt.Fprintf(out, "Section:  %s\n", st.SectionID)
		if st.Found() {
			fmt.Fprintf(out, "Partial:  %s\n", st.PartialID)
			fmt.Fprintf(out, "Path:     %s\n", view.PartialPath)
		} else {
			fmt.Fprintf(out, "Partial:  (none)\n")
		}
		fmt.Fprintf(out, "Title:    %s\n", st.PartialTitle)
		fmt.Fprintf(out, "Pages:    %d\n", len(st.Pages))
		return nil
	},
}

// argLocation turns a bare route fragment into a location. Anything else is
// treated as a full location and resolved the way the site does on load.
func argLocation(arg string) string {
	if strings.HasPrefix(arg, route.Marker) {
		return "#" + arg
	}
	return arg
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "print the full route view as JSON")
	rootCmd.AddCommand(resolveCmd)
}

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/iodocs/internal/db"
	"github.com/ziadkadry99/iodocs/internal/pages"
	"github.com/ziadkadry99/iodocs/internal/progress"
	"github.com/ziadkadry99/iodocs/internal/route"
)

var pagesSection string

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Manage the page index",
}

var pagesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a YAML or JSON page list into the page database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Pages.Database == "" {
			return fmt.Errorf("pages.database is not set in %s", cfgFile)
		}

		index, err := pages.LoadFile(args[0])
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.Pages.Database)
		if err != nil {
			return err
		}
		defer database.Close()

		reporter := progress.NewReporter(os.Stderr)
		reporter.Start(index.Len())
		err = pages.NewStore(database).Replace(cmd.Context(), index.All(), func(done int, p pages.Page) {
			reporter.Update(done, p.Section+"/"+p.ID)
		})
		reporter.Finish()
		if err != nil {
			return fmt.Errorf("importing pages: %w", err)
		}

		logger.Info("pages imported", "file", args[0], "database", database.Path(), "pages", index.Len())
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d pages into %s\n", index.Len(), database.Path())
		return nil
	},
}

var pagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages in index order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		index, err := loadIndex(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		list := index.All()
		if pagesSection != "" {
			list = index.Section(pagesSection)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SECTION\tID\tNAME\tURL")
		for _, p := range list {
			name := indent(p.Depth) + p.Name
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Section, p.ID, name, route.URLFor(p))
		}
		return w.Flush()
	},
}

// indent returns the list indentation for a nesting depth.
func indent(depth int) string {
	return strings.Repeat("  ", max(depth, 0))
}

func init() {
	pagesListCmd.Flags().StringVar(&pagesSection, "section", "", "only list pages in this section")
	pagesCmd.AddCommand(pagesImportCmd, pagesListCmd)
	rootCmd.AddCommand(pagesCmd)
}

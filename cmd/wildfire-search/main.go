package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"cloud.google.com/go/civil"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mr1hm/go-wildfire-watch/internal/config"
	"github.com/mr1hm/go-wildfire-watch/internal/filter"
	"github.com/mr1hm/go-wildfire-watch/internal/logging"
	"github.com/mr1hm/go-wildfire-watch/internal/models"
	"github.com/mr1hm/go-wildfire-watch/internal/repository"
)

type options struct {
	country  string
	severity string
	from     string
	to       string
	asJSON   bool
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "wildfire-search",
		Short: "Search the wildfire catalog",
		Long: `Filters the bundled wildfire records by country, severity and an
inclusive date range. Omitted criteria match everything.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.country, "country", filter.AllCountries, "country to match")
	cmd.Flags().StringVar(&opts.severity, "severity", filter.AllSeverities, "severity band to match")
	cmd.Flags().StringVar(&opts.from, "from", "", "earliest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.to, "to", "", "latest date, YYYY-MM-DD")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print results as JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, cfg *config.Config, opts *options) error {
	criteria, err := opts.criteria()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	catalog, closeCatalog, err := repository.Open(ctx, cfg.Catalog.Backend)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}
	defer closeCatalog()

	records, err := catalog.Wildfires(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch wildfires: %w", err)
	}

	results := filter.Search(records, criteria)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return printTable(out, results)
}

func (o *options) criteria() (filter.Criteria, error) {
	c := filter.NewCriteria()
	if o.country != "" && !strings.EqualFold(o.country, "all") {
		c.Country = o.country
	}
	if o.severity != "" && !strings.EqualFold(o.severity, "all") {
		if !models.Severity(o.severity).Valid() && o.severity != filter.AllSeverities {
			return c, fmt.Errorf("unknown severity %q", o.severity)
		}
		c.Severity = o.severity
	}

	var err error
	if c.From, err = parseDate("from", o.from); err != nil {
		return c, err
	}
	if c.To, err = parseDate("to", o.to); err != nil {
		return c, err
	}
	return c, nil
}

func parseDate(flag, s string) (*civil.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("--%s must be formatted YYYY-MM-DD: %w", flag, err)
	}
	return &d, nil
}

func printTable(w io.Writer, results []models.Wildfire) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No wildfires match.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCOUNTRY\tSEVERITY\tLOCATION")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Date, r.Country, r.Severity, r.Location)
	}
	return tw.Flush()
}

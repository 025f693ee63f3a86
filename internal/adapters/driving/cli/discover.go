package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/export"
)

var (
	discoverLimit         int
	discoverKind          string
	discoverMinMembers    int
	discoverMaxMembers    int
	discoverVerified      bool
	discoverCategory      string
	discoverEnrich        bool
	discoverAnalysisLimit int
	discoverSortQuality   bool
	discoverTimeout       time.Duration
	discoverNoCache       bool
	discoverFormat        string
)

var discoverCmd = &cobra.Command{
	Use:   "discover [query]",
	Short: "Search for public communities",
	Long: `Searches every platform surface in parallel for communities matching
the query, merges duplicates, and ranks by relevance and size.

With --enrich, the top results are additionally analyzed: recent posts
are sampled for activity metrics and an AI model rates content quality.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	flags := discoverCmd.Flags()
	flags.IntVarP(&discoverLimit, "limit", "n", domain.DefaultLimit, "maximum number of results")
	flags.StringVar(&discoverKind, "kind", string(domain.FilterAll), "restrict to channels, groups or all")
	flags.IntVar(&discoverMinMembers, "min-members", 0, "drop communities below this member count")
	flags.IntVar(&discoverMaxMembers, "max-members", 0, "drop communities above this member count (0 = unbounded)")
	flags.BoolVar(&discoverVerified, "verified", false, "only verified communities")
	flags.StringVar(&discoverCategory, "category", "", "keep only this topic category")
	flags.BoolVar(&discoverEnrich, "enrich", false, "analyze top results with metrics and AI assessment")
	flags.IntVar(&discoverAnalysisLimit, "analysis-limit", domain.DefaultAnalysisLimit, "how many ranked results to analyze")
	flags.BoolVar(&discoverSortQuality, "sort-quality", false, "re-sort enriched results by assessed quality")
	flags.DurationVar(&discoverTimeout, "timeout", domain.DefaultTimeout, "search fan-out timeout")
	flags.BoolVar(&discoverNoCache, "no-cache", false, "bypass the result cache")
	flags.StringVarP(&discoverFormat, "format", "f", string(export.FormatTable), "output format: records, table or report")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	query := args[0]

	format, err := export.ParseFormat(discoverFormat)
	if err != nil {
		return err
	}

	if err := initServices(); err != nil {
		return err
	}

	opts := domain.DiscoverOptions{
		Kind:            domain.KindFilter(discoverKind),
		MinParticipants: discoverMinMembers,
		MaxParticipants: discoverMaxMembers,
		VerifiedOnly:    discoverVerified,
		Category:        discoverCategory,
		Limit:           discoverLimit,
		Enrich:          discoverEnrich,
		AnalysisLimit:   discoverAnalysisLimit,
		SortByQuality:   discoverSortQuality,
		Timeout:         discoverTimeout,
		UseCache:        !discoverNoCache,
	}

	results, err := discoveryService.Discover(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(results) == 0 && format != export.FormatRecords {
		cmd.Println("No communities found.")
		return nil
	}

	return export.Render(cmd.OutOrStdout(), format, query, results)
}

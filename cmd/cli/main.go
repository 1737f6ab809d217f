// Command cli is the season-compare terminal client.
//
// Usage:
//
//	season-compare compare 2025 2024
//	season-compare team 2025 2024 "Arsenal FC"
//	season-compare improvers 2025 2024 --metric goal_difference --limit 5
//	season-compare standings 2025
//	season-compare ingest --season 2025
//	season-compare synth --template 2025
//	season-compare batch --pairs 2025:2024,2025:2023
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/matchpulse/season-compare/internal/app"
	"github.com/matchpulse/season-compare/internal/config"
	"github.com/matchpulse/season-compare/internal/domain/comparison"
	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/platform/logging"
	"github.com/matchpulse/season-compare/internal/usecase"
)

var verbose bool

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "season-compare",
		Short:         "Compare a running league season against a completed one",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log service activity to stderr")

	root.AddCommand(seasonsCmd())
	root.AddCommand(fixturesCmd())
	root.AddCommand(resultsCmd())
	root.AddCommand(standingsCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(teamCmd())
	root.AddCommand(improversCmd())
	root.AddCommand(mappingCmd())
	root.AddCommand(ingestCmd())
	root.AddCommand(synthCmd())
	root.AddCommand(batchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// season listing commands
// --------------------------------------------------------------------------

func seasonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List the seasons the configured source can serve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(func(ctx context.Context, svcs *app.Services) error {
				seasons, err := svcs.Seasons.Seasons(ctx)
				if err != nil {
					return err
				}
				w := newTable()
				fmt.Fprintln(w, "SEASON\tLABEL")
				for _, season := range seasons {
					fmt.Fprintf(w, "%d\t%s\n", season, fixture.SeasonLabel(season))
				}
				return w.Flush()
			})
		},
	}
}

func fixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures <season>",
		Short: "List one season's fixtures in schedule order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			season, err := parseSeasonArg(args[0])
			if err != nil {
				return err
			}
			return runWithServices(func(ctx context.Context, svcs *app.Services) error {
				fixtures, err := svcs.Seasons.Fixtures(ctx, season)
				if err != nil {
					return err
				}
				w := newTable()
				fmt.Fprintln(w, "MD\tKICKOFF\tHOME\tSCORE\tAWAY\tSTATUS")
				for _, f := range fixtures {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
						f.Matchday, f.KickoffAt.Format("2006-01-02 15:04"),
						f.HomeTeam, scoreline(f.HomeScore, f.AwayScore), f.AwayTeam, f.Status,
					)
				}
				return w.Flush()
			})
		},
	}
}

func resultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results <season>",
		Short: "List one season's finished matches with points and goal swing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			season, err := parseSeasonArg(args[0])
			if err != nil {
				return err
			}
			return runWithServices(func(ctx context.Context, svcs *app.Services) error {
				results, err := svcs.Seasons.Results(ctx, season)
				if err != nil {
					return err
				}
				w := newTable()
				fmt.Fprintln(w, "MD\tKICKOFF\tHOME\tSCORE\tAWAY\tPTS")
				for _, r := range results {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d-%d\n",
						r.Matchday, r.KickoffAt.Format("2006-01-02 15:04"),
						r.HomeTeam, scoreline(r.HomeScore, r.AwayScore), r.AwayTeam,
						r.HomePoints, r.AwayPoints,
					)
				}
				return w.Flush()
			})
		},
	}
}

func standingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings <season>",
		Short: "Show one season's league table from its played fixtures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			season, err := parseSeasonArg(args[0])
			if err != nil {
				return err
			}
			return runWithServices(func(ctx context.Context, svcs *app.Services) error {
				rows, err := svcs.Seasons.Standings(ctx, season)
				if err != nil {
					return err
				}
				w := newTable()
				fmt.Fprintln(w, "POS\tTEAM\tP\tW\tD\tL\tGF\tGA\tGD\tPTS")
				for i, st := range rows {
					fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%d\n",
						i+1, st.Team, st.GamesPlayed, st.Wins, st.Draws, st.Losses,
						st.GoalsFor, st.GoalsAgainst, st.GoalDifference, st.Points,
					)
				}
				return w.Flush()
			})
		},
	}
}

// --------------------------------------------------------------------------
// comparison commands
// --------------------------------------------------------------------------

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <current> <previous>",
		Short: "Compare two seasons position by position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, previous, err := parseSeasonPairArgs(args)
			if err != nil {
				return err
			}
			return runWithServices(func(ctx context.Context, svcs *app.Services) error {
				table, err := svcs.Comparisons.Compare(ctx, current, previous)
				if err != nil {
					return err
				}
				return printComparisonTable(table)
			})
		},
	}
}

func printComparisonTable(table usecase.ComparisonTable) error {
	fmt.Printf("%s vs %s\n\n", fixture.SeasonLabel(table.CurrentSeason), fixture.SeasonLabel(table.ComparisonSeason))

	w := newTable()
	fmt.Fprintln(w, "POS\tTEAM\tP\tPTS\tPREV\tDIFF\tGD\tPREV GD\tGD DIFF\tPCT")
	for _, row := range table.Rows {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%+d\t%+d\t%+d\t%+d\t%+.1f%%\n",
			row.LeaguePosition, row.Team,
			row.Current.GamesPlayed, row.Current.Points,
			row.Previous.Points, row.PointsDifference,
			row.Current.GoalDifference, row.Previous.GoalDifference, row.GoalDifferenceChange,
			row.PointsPercentChange,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d/%d fixtures mapped (%.1f%%)\n", table.Report.MappedCount, table.Report.TotalFixtures, table.Report.SuccessRate)
	if table.Report.LowConfidence {
		fmt.Fprintf(os.Stderr, "warning: low fixture mapping success rate (%.1f%%)\n", table.Report.SuccessRate)
	}
	return nil
}

func teamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team <current> <previous> <name>",
		Short: "Drill into one team's season-on-season change",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, previous, err := parseSeasonPairArgs(args[:2])
			if err != nil {
				return err
			}
			return runWithServices(func(ctx context.Context, svcs *app.Services) error {
				detail, err := svcs.Comparisons.TeamDetail(ctx, current, previous, args[2])
				if err != nil {
					return err
				}
				w := newTable()
				fmt.Fprintf(w, "Team\t%s\n", detail.Team)
				fmt.Fprintf(w, "Seasons\t%s vs %s\n", detail.CurrentSeason, detail.ComparisonSeason)
				fmt.Fprintf(w, "League position\t%d\n", detail.LeaguePosition)
				fmt.Fprintf(w, "Played\t%d (was %d)\n", detail.Current.GamesPlayed, detail.Previous.GamesPlayed)
				fmt.Fprintf(w, "Points\t%d (was %d, %+d)\n", detail.Current.Points, detail.Previous.Points, detail.Differences.Points)
				fmt.Fprintf(w, "Goal difference\t%+d (was %+d, %+d)\n", detail.Current.GoalDifference, detail.Previous.GoalDifference, detail.Differences.GoalDifference)
				fmt.Fprintf(w, "Goals for\t%d (was %d, %+d)\n", detail.Current.GoalsFor, detail.Previous.GoalsFor, detail.Differences.GoalsFor)
				fmt.Fprintf(w, "Goals against\t%d (was %d, %+d)\n", detail.Current.GoalsAgainst, detail.Previous.GoalsAgainst, detail.Differences.GoalsAgainst)
				fmt.Fprintf(w, "Points change\t%+.1f%%\n", detail.Differences.PointsPercentChange)
				fmt.Fprintf(w, "Improved\tpoints=%t goal_difference=%t\n", detail.PointsImproved, detail.GoalDiffImproved)
				return w.Flush()
			})
		},
	}
}

func improversCmd() *cobra.Command {
	var (
		metric string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "improvers <current> <previous>",
		Short: "Rank the most improved teams on one metric",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, previous, err := parseSeasonPairArgs(args)
			if err != nil {
				return err
			}
			return runWithServices(func(ctx context.Context, svcs *app.Services) error {
				improvers, err := svcs.Comparisons.TopImprovers(ctx, current, previous, metric, limit)
				if err != nil {
					return err
				}
				w := newTable()
				fmt.Fprintln(w, "RANK\tTEAM\tCHANGE\tNOW\tWAS")
				for i, imp := range improvers {
					fmt.Fprintf(w, "%d\t%s\t%+d\t%d\t%d\n", i+1, imp.Team, imp.Improvement, imp.CurrentValue, imp.PreviousValue)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&metric, "metric", string(comparison.MetricPoints), "points, goal_difference or goals_for")
	cmd.Flags().IntVar(&limit, "limit", 5, "how many teams to list")
	return cmd
}

func mappingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mapping <current> <previous>",
		Short: "Show the promoted-for-relegated substitutions a comparison uses",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, previous, err := parseSeasonPairArgs(args)
			if err != nil {
				return err
			}
			return runWithServices(func(ctx context.Context, svcs *app.Services) error {
				summary, err := svcs.Comparisons.MappingSummary(ctx, current, previous)
				if err != nil {
					return err
				}
				fmt.Printf("%s vs %s: %d substitution(s)\n\n", summary.CurrentSeason, summary.ComparisonSeason, summary.MappingCount)
				w := newTable()
				fmt.Fprintln(w, "PROMOTED\tSTANDS IN FOR")
				for _, promoted := range summary.PromotedTeams {
					fmt.Fprintf(w, "%s\t%s\n", promoted, summary.Mappings[promoted])
				}
				return w.Flush()
			})
		},
	}
}

// --------------------------------------------------------------------------
// data maintenance commands
// --------------------------------------------------------------------------

func ingestCmd() *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch one season from football-data.org into the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(func(ctx context.Context, svcs *app.Services) error {
				if svcs.Ingest == nil {
					return fmt.Errorf("ingest requires FOOTBALL_DATA_ENABLED=true")
				}
				res, err := svcs.Ingest.RefreshSeason(ctx, season)
				if err != nil {
					return err
				}
				fmt.Printf("season %s refreshed: %d fixtures, %d standings rows in %dms\n",
					fixture.SeasonLabel(res.Season), res.FixtureCount, res.StandingCount, res.DurationMs)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "season starting year")
	_ = cmd.MarkFlagRequired("season")
	return cmd
}

func synthCmd() *cobra.Command {
	var (
		template int
		seed     int64
	)
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize a previous-season baseline from a template season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(func(ctx context.Context, svcs *app.Services) error {
				res, err := svcs.Synth.SynthesizeBaseline(ctx, usecase.SynthInput{
					TemplateSeason: template,
					Seed:           seed,
				})
				if err != nil {
					return err
				}
				fmt.Printf("baseline %s synthesized from %s: %d fixtures, %d scored\n",
					fixture.SeasonLabel(res.BaselineSeason), fixture.SeasonLabel(res.TemplateSeason),
					res.FixtureCount, res.ScoredCount)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&template, "template", 0, "template season starting year")
	cmd.Flags().Int64Var(&seed, "seed", usecase.DefaultSynthSeed, "score sampler seed")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func batchCmd() *cobra.Command {
	var (
		rawPairs []string
		workers  int
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run many comparisons through the worker pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := parseBatchPairs(rawPairs)
			if err != nil {
				return err
			}
			return runWithServices(func(ctx context.Context, svcs *app.Services) error {
				res, err := svcs.Batch.Run(ctx, usecase.BatchInput{Pairs: pairs, MaxWorkers: workers})
				if err != nil {
					return err
				}
				w := newTable()
				fmt.Fprintln(w, "CURRENT\tPREVIOUS\tSTATUS\tROWS\tMAPPED\tMS\tMESSAGE")
				for _, task := range res.Tasks {
					fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%.1f%%\t%d\t%s\n",
						task.CurrentSeason, task.ComparisonSeason, task.Status,
						task.Rows, task.MappedPercent, task.DurationMs, task.Message,
					)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Printf("\n%d task(s): %d ok, %d failed (workers=%d)\n",
					res.TaskCount, res.SuccessCount, res.FailedCount, res.WorkerCount)
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&rawPairs, "pairs", nil, "comparisons to run as CURRENT:PREVIOUS")
	cmd.Flags().IntVar(&workers, "workers", 0, "pool size (0 selects the default)")
	_ = cmd.MarkFlagRequired("pairs")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWithServices handles config loading, service wiring and context
// cancellation. Tables print to stdout; logs stay on stderr.
func runWithServices(fn func(ctx context.Context, svcs *app.Services) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	logger := newStderrLogger(level)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	svcs, cleanup, err := app.NewServices(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(ctx, svcs)
}

func newStderrLogger(level logging.Level) *logging.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(logging.EncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	)
	return logging.FromZap(zap.New(core))
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func scoreline(home, away *int) string {
	if home == nil || away == nil {
		return "-"
	}
	return fmt.Sprintf("%d-%d", *home, *away)
}

func parseSeasonArg(raw string) (int, error) {
	season, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("season must be a starting year, got %q", raw)
	}
	return season, nil
}

func parseSeasonPairArgs(args []string) (int, int, error) {
	current, err := parseSeasonArg(args[0])
	if err != nil {
		return 0, 0, err
	}
	previous, err := parseSeasonArg(args[1])
	if err != nil {
		return 0, 0, err
	}
	return current, previous, nil
}

func parseBatchPairs(raw []string) ([]usecase.SeasonPair, error) {
	pairs := make([]usecase.SeasonPair, 0, len(raw))
	for _, item := range raw {
		currentRaw, previousRaw, ok := strings.Cut(strings.TrimSpace(item), ":")
		if !ok {
			return nil, fmt.Errorf("pair must be CURRENT:PREVIOUS, got %q", item)
		}
		current, err := parseSeasonArg(currentRaw)
		if err != nil {
			return nil, err
		}
		previous, err := parseSeasonArg(previousRaw)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, usecase.SeasonPair{CurrentSeason: current, ComparisonSeason: previous})
	}
	return pairs, nil
}

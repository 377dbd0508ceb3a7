// Package main is the entry point for the squadscout player catalog CLI.
// It wires configuration, logging, the SQLite-backed player store, the
// CSV ingestion pipeline and the analyzer, then dispatches one
// subcommand per invocation.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fieldside/squadscout/internal/analysis"
	"github.com/fieldside/squadscout/internal/config"
	"github.com/fieldside/squadscout/internal/database"
	"github.com/fieldside/squadscout/internal/domain"
	"github.com/fieldside/squadscout/internal/ingest"
	"github.com/fieldside/squadscout/internal/services"
	"github.com/fieldside/squadscout/internal/store"
	"github.com/fieldside/squadscout/internal/utils"
	"github.com/fieldside/squadscout/pkg/logger"
)

const usage = `Usage: squadscout <command> [flags]

Commands:
  update     Reload the catalog from the CSV snapshot
  search     Search players by criteria
  stats      Show catalog statistics (optionally per position)
  value      Rank players by value for money
  talents    List promising young players
  market     Market report for one position
  expiring   Players with contracts expiring soon
  compare    Compare players side by side (-ids 1,2,3)
  suggest    Suggest squad improvements (-squad 1,2,3 -budget 50000000)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})

	db, err := database.New(database.Config{Path: cfg.DatabasePath, Name: "players"})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	repo, err := store.NewPlayerRepository(db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize player store")
	}

	catalog := services.NewCatalogService(
		ingest.NewLoader(cfg.CSVPath, log),
		ingest.NewGenerator(1),
		repo,
		services.Config{CSVRowLimit: cfg.CSVRowLimit, SampleSize: cfg.SampleSize},
		log,
	)
	analyzer := analysis.New(repo, log)

	app := &cli{repo: repo, catalog: catalog, analyzer: analyzer}

	cmd, args := os.Args[1], os.Args[2:]
	if err := app.run(cmd, args); err != nil {
		log.Error().Err(err).Str("command", cmd).Msg("Command failed")
		os.Exit(1)
	}
}

// cli holds the wired components behind the subcommands
type cli struct {
	repo     *store.PlayerRepository
	catalog  *services.CatalogService
	analyzer *analysis.Analyzer
}

func (c *cli) run(cmd string, args []string) error {
	switch cmd {
	case "update":
		return c.update()
	case "search":
		return c.search(args)
	case "stats":
		return c.stats(args)
	case "value":
		return c.value(args)
	case "talents":
		return c.talents(args)
	case "market":
		return c.market(args)
	case "expiring":
		return c.expiring(args)
	case "compare":
		return c.compare(args)
	case "suggest":
		return c.suggest(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *cli) update() error {
	count, err := c.catalog.Refresh()
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %d players\n", count)

	stats, err := c.repo.GetStats(nil)
	if err != nil {
		return err
	}
	fmt.Printf("Catalog now contains %d players\n", stats.Count)

	return nil
}

func (c *cli) search(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	position := fs.String("position", "", "position code (e.g. ST)")
	maxPrice := fs.Int64("max-price", 0, "maximum market value in euros (0 = no cap)")
	minRating := fs.Int("min-rating", domain.DefaultMinOverall, "minimum overall rating")
	maxAge := fs.Int("max-age", 0, "maximum age (0 = no cap)")
	minPotential := fs.Int("min-potential", 0, "minimum potential (0 = no floor)")
	limit := fs.Int("limit", domain.DefaultSearchLimit, "maximum results")
	_ = fs.Parse(args)

	if err := c.catalog.EnsurePopulated(); err != nil {
		return err
	}

	criteria := domain.NewSearchCriteria()
	criteria.MinOverall = *minRating
	criteria.Limit = *limit
	if *position != "" {
		pos, ok := domain.ParsePosition(strings.ToUpper(*position))
		if !ok {
			return fmt.Errorf("invalid position %q (valid: %v)", *position, domain.AllPositions())
		}
		criteria.Position = &pos
	}
	if *maxPrice > 0 {
		criteria.MaxPrice = maxPrice
	}
	if *maxAge > 0 {
		criteria.MaxAge = maxAge
	}
	if *minPotential > 0 {
		criteria.MinPotential = minPotential
	}

	players, err := c.repo.Search(criteria)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		fmt.Println("No players found matching your criteria.")
		return nil
	}

	fmt.Printf("Found %d players:\n\n", len(players))
	printPlayers(players)

	return nil
}

func (c *cli) stats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	position := fs.String("position", "", "restrict to one position code")
	_ = fs.Parse(args)

	if err := c.catalog.EnsurePopulated(); err != nil {
		return err
	}

	var pos *domain.Position
	if *position != "" {
		p, ok := domain.ParsePosition(strings.ToUpper(*position))
		if !ok {
			return fmt.Errorf("invalid position %q (valid: %v)", *position, domain.AllPositions())
		}
		pos = &p
	}

	stats, err := c.repo.GetStats(pos)
	if err != nil {
		return err
	}

	fmt.Println("Catalog statistics:")
	fmt.Printf("  Total players:  %d\n", stats.Count)
	fmt.Printf("  Average rating: %.1f\n", stats.AvgRating)
	fmt.Printf("  Average value:  %s\n", formatCurrency(stats.AvgValue))
	fmt.Printf("  Average age:    %.1f\n", stats.AvgAge)

	if pos == nil {
		positions, err := c.repo.Positions()
		if err != nil {
			return err
		}
		fmt.Printf("  Positions:      %s\n", strings.Join(positions, ", "))
	}

	return nil
}

func (c *cli) value(args []string) error {
	fs := flag.NewFlagSet("value", flag.ExitOnError)
	position := fs.String("position", "", "position code")
	budget := fs.Int64("budget", 0, "maximum price in euros (0 = no cap)")
	top := fs.Int("top", 10, "results to show")
	_ = fs.Parse(args)

	if err := c.catalog.EnsurePopulated(); err != nil {
		return err
	}

	var pos *domain.Position
	if *position != "" {
		p, ok := domain.ParsePosition(strings.ToUpper(*position))
		if !ok {
			return fmt.Errorf("invalid position %q", *position)
		}
		pos = &p
	}
	var maxBudget *int64
	if *budget > 0 {
		maxBudget = budget
	}

	picks, err := c.analyzer.BestValue(pos, maxBudget)
	if err != nil {
		return err
	}
	if len(picks) > *top {
		picks = picks[:*top]
	}

	w := newTable()
	fmt.Fprintln(w, "#\tName\tPos\tRating\tValue\tScore")
	for i, pick := range picks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%.1f\n",
			i+1, pick.Player.Name, pick.Player.Position, pick.Player.OverallRating,
			formatCurrency(pick.Player.MarketValue), pick.Score)
	}
	return w.Flush()
}

func (c *cli) talents(args []string) error {
	fs := flag.NewFlagSet("talents", flag.ExitOnError)
	maxAge := fs.Int("max-age", 21, "maximum age")
	minPotential := fs.Int("min-potential", 80, "minimum potential")
	_ = fs.Parse(args)

	if err := c.catalog.EnsurePopulated(); err != nil {
		return err
	}

	talents, err := c.analyzer.YoungTalents(*maxAge, *minPotential)
	if err != nil {
		return err
	}
	if len(talents) == 0 {
		fmt.Println("No young talents found.")
		return nil
	}

	printPlayers(talents)
	return nil
}

func (c *cli) market(args []string) error {
	fs := flag.NewFlagSet("market", flag.ExitOnError)
	position := fs.String("position", "", "position code (required)")
	_ = fs.Parse(args)

	if *position == "" {
		return fmt.Errorf("market requires -position")
	}
	pos, ok := domain.ParsePosition(strings.ToUpper(*position))
	if !ok {
		return fmt.Errorf("invalid position %q", *position)
	}

	if err := c.catalog.EnsurePopulated(); err != nil {
		return err
	}

	report, err := c.analyzer.PositionMarket(pos)
	if err != nil {
		return err
	}
	if report == nil {
		fmt.Printf("No data for position %s\n", pos)
		return nil
	}

	fmt.Printf("%s market (%d players):\n", report.Position, report.TotalPlayers)
	fmt.Printf("  Rating: avg %.1f, median %.0f, range %.0f-%.0f\n",
		report.Rating.Average, report.Rating.Median, report.Rating.Min, report.Rating.Max)
	fmt.Printf("  Value:  avg %s, median %s\n",
		formatCurrency(report.Value.Average), formatCurrency(report.Value.Median))
	fmt.Printf("  Age:    avg %.1f, range %.0f-%.0f\n",
		report.Age.Average, report.Age.Min, report.Age.Max)

	fmt.Println("  Value by rating range:")
	for bucket, avg := range report.AvgValueByRating {
		fmt.Printf("    %s: %s\n", bucket, formatCurrency(avg))
	}

	return nil
}

func (c *cli) expiring(args []string) error {
	fs := flag.NewFlagSet("expiring", flag.ExitOnError)
	months := fs.Int("months", 12, "threshold window in months")
	_ = fs.Parse(args)

	if err := c.catalog.EnsurePopulated(); err != nil {
		return err
	}

	players, err := c.analyzer.ExpiringContracts(*months)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		fmt.Println("No expiring contracts found.")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "Name\tPos\tRating\tValue\tContract")
	for _, p := range players {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			p.Name, p.Position, p.OverallRating, formatCurrency(p.MarketValue), p.ContractStatus())
	}
	return w.Flush()
}

func (c *cli) compare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	idsArg := fs.String("ids", "", "comma-separated player ids (at least 2)")
	_ = fs.Parse(args)

	ids, err := parseIDs(*idsArg)
	if err != nil {
		return err
	}

	cmp, err := c.analyzer.Compare(ids)
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "Name\tPos\tAge\tRating\tPotential\tValue")
	for _, p := range cmp.Players {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			p.Name, p.Position, p.Age, p.OverallRating, p.Potential, formatCurrency(p.MarketValue))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nBest per attribute:")
	for _, attr := range []string{"overall_rating", "potential", "pace", "shooting", "passing", "dribbling", "defending", "physical"} {
		winner := cmp.Winners[attr]
		fmt.Printf("  %-15s %d (%s)\n", attr, winner.Value, strings.Join(winner.Winners, ", "))
	}

	return nil
}

func (c *cli) suggest(args []string) error {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	squadArg := fs.String("squad", "", "comma-separated squad player ids")
	budget := fs.Int64("budget", 0, "transfer budget in euros")
	formation := fs.String("formation", analysis.DefaultFormation, "formation")
	_ = fs.Parse(args)

	ids, err := parseIDs(*squadArg)
	if err != nil {
		return err
	}

	advice, err := c.analyzer.SuggestImprovements(ids, *budget, *formation)
	if err != nil {
		return err
	}

	fmt.Printf("Budget: %s (formation %s)\n", formatCurrency(advice.Budget), advice.Formation)
	if len(advice.Suggestions) == 0 {
		fmt.Println("No affordable improvements found.")
		return nil
	}

	for _, s := range advice.Suggestions {
		fmt.Printf("  %s (avg %.1f): sign %s, rated %d for %s (+%.1f)\n",
			s.Position, s.CurrentAvgRating, s.Name, s.Rating, formatCurrency(s.Price), s.Improvement)
	}
	fmt.Printf("Remaining budget: %s\n", formatCurrency(advice.RemainingBudget))

	return nil
}

// printPlayers renders a standard player table
func printPlayers(players []domain.Player) {
	w := newTable()
	fmt.Fprintln(w, "Name\tAge\tPos\tRating\tPotential\tValue\tClub")
	for _, p := range players {
		club := p.Club
		if club == "" {
			club = "Free Agent"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\t%s\t%s\n",
			p.Name, p.Age, p.Position, p.OverallRating, p.Potential,
			formatCurrency(p.MarketValue), club)
	}
	_ = w.Flush()
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

// formatCurrency renders euros the way the dataset does: €1.5M, €440K
func formatCurrency(value int64) string {
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("€%.1fM", float64(value)/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("€%.0fK", float64(value)/1_000)
	default:
		return fmt.Sprintf("€%d", value)
	}
}

// parseIDs converts a comma-separated id list
func parseIDs(s string) ([]int64, error) {
	parts := utils.SplitList(s)
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid player id %q", part)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

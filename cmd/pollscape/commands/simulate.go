package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pollscape/internal/election"
	"pollscape/internal/export"
	"pollscape/internal/session"
	"pollscape/internal/stats"
	"pollscape/internal/views"
	"pollscape/internal/visuals"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	simTask           string
	simLeader         string
	simThresholdParty string
	simCoalition      string
	simFrequency      bool
	simSegmented      bool
	simMermaid        bool
	simExport         bool
	simColumns        int
	simMaxCards       int
	simSeats          int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Draw a scenario population and print one view as a card landscape",
	Example: `  pollscape simulate --task threshold --threshold-party bsw
  pollscape simulate --task coalition --frequency --segmented -n 1000
  pollscape simulate --seed 42 --export --mermaid`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simTask, "task", string(views.TaskLeader), "view to render: leader, lead-margin, threshold, coalition")
	f.StringVar(&simLeader, "leader", "", "party to focus in the leader view")
	f.StringVar(&simThresholdParty, "threshold-party", "", "party to focus in the threshold view")
	f.StringVar(&simCoalition, "coalition", "", "coalition id to focus, e.g. cxu-spd")
	f.BoolVar(&simFrequency, "frequency", false, "order cards by seat-distribution frequency in center, mid and outer zones")
	f.BoolVar(&simSegmented, "segmented", false, "split each frequency zone into focus and remaining scenarios (with --frequency)")
	f.BoolVar(&simMermaid, "mermaid", false, "append Mermaid charts")
	f.BoolVar(&simExport, "export", false, "write the population as JSONL to the export directory")
	f.IntVar(&simColumns, "columns", 4, "cards per row")
	f.IntVar(&simMaxCards, "max-cards", 24, "cards drawn per band (0 = all)")
	f.IntVar(&simSeats, "seats", -1, "print the seat table of one scenario id")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	task, err := views.ParseTask(simTask)
	if err != nil {
		return err
	}
	parties, err := loadParties()
	if err != nil {
		return err
	}
	sess, err := session.New(parties, sessionOptions(task, views.Variant{
		FrequencyOrder: simFrequency,
		SegmentedBands: simSegmented,
	}))
	if err != nil {
		return err
	}
	if err := applySelection(sess); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styles := visuals.DefaultStyles()
	pop := sess.Population()

	v, bands := sess.Landscape()
	fmt.Fprintln(out, visuals.RenderLandscape(v, bands, visuals.LandscapeOptions{
		Columns:  simColumns,
		MaxCards: simMaxCards,
	}, styles))

	summary := stats.Summarize(pop)
	fmt.Fprintln(out, visuals.SummaryTable(summary).Render(styles))
	if risky := stats.RiskiestParties(summary); len(risky) > 0 {
		names := make([]string, len(risky))
		for i, p := range risky {
			names[i] = fmt.Sprintf("%s (%s×)", p.Label, humanize.Comma(int64(p.BelowHurdle)))
		}
		fmt.Fprintf(out, "Unter 5%%: %s\n\n", strings.Join(names, ", "))
	}
	if task == views.TaskCoalition {
		fmt.Fprintln(out, visuals.CoalitionTable(pop.Coalitions, pop.Count()).Render(styles))
	}

	if simSeats >= 0 {
		if err := printSeats(out, sess, simSeats, styles); err != nil {
			return err
		}
	}

	if simMermaid {
		printCharts(out, sess, summary)
	}

	if simExport {
		path := filepath.Join(cfg.ExportDir, export.FileName(pop.Count(), cfg.Seed))
		if err := export.WriteJSONL(path, pop, sess.TotalSeats()); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s Szenarien exportiert nach %s\n", humanize.Comma(int64(pop.Count())), path)
	}
	return nil
}

func applySelection(sess *session.Session) error {
	if simLeader != "" {
		if err := sess.SelectLeader(strings.ToLower(simLeader)); err != nil {
			return err
		}
	}
	if simThresholdParty != "" {
		if err := sess.SelectThresholdParty(strings.ToLower(simThresholdParty)); err != nil {
			return err
		}
	}
	if simCoalition != "" {
		if err := sess.SelectCoalition(strings.ToLower(simCoalition)); err != nil {
			return err
		}
	}
	return nil
}

func printSeats(out io.Writer, sess *session.Session, id int, styles visuals.Styles) error {
	seats, err := sess.Seats(id)
	if err != nil {
		return err
	}
	s, _ := sess.Population().Find(id)
	fmt.Fprintln(out, visuals.SeatTable(s, seats).Render(styles))
	fmt.Fprintf(out, "%s\n\n", visuals.SeatBar(s, 40))
	if simMermaid {
		fmt.Fprintln(out, visuals.GenerateSeatPie(id, seats))
	}
	return nil
}

func printCharts(out io.Writer, sess *session.Session, summary stats.PopulationSummary) {
	pop := sess.Population()
	charts := []string{
		visuals.GenerateLeaderChart(pop.LeaderCounts()),
		visuals.GenerateMarginHistogram(stats.MarginHistogram(pop, 10)),
		visuals.GenerateVoteRangeChart(summary),
	}
	if len(pop.Coalitions) > 0 {
		charts = append(charts, visuals.GenerateCoalitionChart(pop.Coalitions, pop.Count()))
	}
	for _, c := range charts {
		if c == "" {
			continue
		}
		fmt.Fprintln(out, c)
	}
	fmt.Fprintf(out, "%d Parteien im Datensatz, Hürde %.0f%%\n", len(sess.Parties()), election.Hurdle)
}

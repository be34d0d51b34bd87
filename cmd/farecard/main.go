/*
main.go - Application entry point

PURPOSE:
  The farecard CLI drives the fare engine from the console: it runs the
  demo scenarios against a fake clock and inspects the ticket journal.
  The engine itself performs no I/O; everything observable happens here.

COMMANDS:
  farecard scenarios            List available scenarios
  farecard simulate [id...]     Run scenarios (all of them by default)
  farecard tickets              Print journaled tickets

FLAGS:
  --tariff   TOML tariff file (defaults to the reference network values)
  --db       SQLite ticket journal path (in-memory journal if omitted)
  --card     Filter tickets by card id (tickets command)
  --verbose  Debug-level logging

EXAMPLES:
  # Run everything with the reference tariff
  farecard simulate

  # Run one scenario, journaling tickets to a file
  farecard simulate transfer-chain --db=./tickets.db

  # Inspect what card 5 rode
  farecard tickets --db=./tickets.db --card=5

SEE ALSO:
  - sim/scenarios.go: Scenario definitions
  - tariff package:   TOML tariff format
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/warp/fare-engine/fare"
	"github.com/warp/fare-engine/journal"
	journalsqlite "github.com/warp/fare-engine/journal/sqlite"
	"github.com/warp/fare-engine/sim"
	"github.com/warp/fare-engine/tariff"
)

var (
	flagTariff  string
	flagDB      string
	flagCard    int
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "farecard",
	Short: "Transit fare card engine simulator",
	Long: `farecard runs the stored-value transit card engine from the console.
Scenarios execute against a fake clock, so every run is deterministic;
issued tickets can be journaled to SQLite for later inspection.`,
	SilenceUsage: true,
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List available scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range sim.Scenarios() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", s.ID, s.Description)
		}
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario...]",
	Short: "Run scenarios (all of them by default)",
	RunE:  runSimulate,
}

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "Print journaled tickets",
	RunE:  runTickets,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagTariff, "tariff", "", "TOML tariff file (reference values if omitted)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite ticket journal path (in-memory if omitted)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug-level logging")

	ticketsCmd.Flags().IntVar(&flagCard, "card", 0, "filter by card id")

	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(ticketsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func loadTariff() (*fare.Tariff, error) {
	if flagTariff == "" {
		return fare.DefaultTariff(), nil
	}
	return tariff.Load(flagTariff)
}

func openJournal() (journal.Journal, func() error, error) {
	if flagDB == "" {
		return journal.NewMemory(), func() error { return nil }, nil
	}
	j, err := journalsqlite.New(flagDB)
	if err != nil {
		return nil, nil, err
	}
	return j, j.Close, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	log := newLogger()

	t, err := loadTariff()
	if err != nil {
		return err
	}
	j, closeJournal, err := openJournal()
	if err != nil {
		return err
	}
	defer closeJournal()

	var selected []sim.Scenario
	if len(args) == 0 {
		selected = sim.Scenarios()
	} else {
		for _, id := range args {
			s, ok := sim.Find(id)
			if !ok {
				return fmt.Errorf("unknown scenario %q (run 'farecard scenarios')", id)
			}
			selected = append(selected, s)
		}
	}

	env := &sim.Env{Tariff: t, Journal: j, Log: log}
	ctx := context.Background()
	for _, s := range selected {
		log.WithField("scenario", s.ID).Info(s.Name)
		if err := s.Run(ctx, env); err != nil {
			return fmt.Errorf("scenario %s: %w", s.ID, err)
		}
	}
	return nil
}

func runTickets(cmd *cobra.Command, args []string) error {
	if flagDB == "" {
		return fmt.Errorf("tickets requires --db")
	}
	j, err := journalsqlite.New(flagDB)
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := context.Background()
	var tickets []fare.Ticket
	if flagCard != 0 {
		tickets, err = j.ListByCard(ctx, flagCard)
	} else {
		tickets, err = j.All(ctx)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, t := range tickets {
		kind := "paid"
		if t.Transfer {
			kind = "transfer"
		}
		fmt.Fprintf(out, "%s  card=%-4d %-18s line=%-4s charged=%-7s balance=%-7s %s\n",
			t.IssuedAt.Format("2006-01-02 15:04"), t.CardID, t.FareClass,
			t.Line, t.Charged, t.RemainingBalance, kind)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/riabaldevia/gambit/efg"
	"github.com/riabaldevia/gambit/qre"
)

var (
	// CLI flags for the solver
	gameFile  string  // Path to the YAML game description
	maxLambda float64 // Largest lambda to trace to
	stepSize  float64 // Advisory initial step hint
	fullGraph bool    // Print every traced point instead of only the last
	logLevel  string  // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "gambit",
	Short: "Logit quantal response equilibrium tracer for extensive-form games",
}

// solveCmd traces the QRE branch of a game loaded from a YAML file
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Trace the principal QRE branch of a game",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if gameFile == "" {
			logrus.Fatalf("Game file not provided. Exiting.")
		}

		game, err := LoadGameFile(gameFile)
		if err != nil {
			logrus.Fatalf("Failed to load game: %v", err)
		}
		logrus.Infof("Loaded %q: %d players", game.Title, game.NumPlayers())

		solver := qre.NewLogitSolver()
		solver.MaxLambda = maxLambda
		solver.StepSize = stepSize
		solver.FullGraph = fullGraph

		status := &qre.FuncStatus{
			ProgressFunc: func(fraction float64, label string) {
				logrus.Infof("progress %5.1f%%: %s", 100*fraction, label)
			},
		}

		points := solver.Solve(efg.NewSupport(game), status)
		for _, pt := range points {
			printPoint(pt)
		}
	},
}

// printPoint writes one traced point as a lambda followed by the probability
// of every active action, grouped per infoset.
func printPoint(pt qre.Point) {
	sup := pt.Profile.Support()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-12.6f", pt.Lambda)
	for pl := 0; pl < sup.NumPlayers(); pl++ {
		for iset := 0; iset < sup.NumInfosets(pl); iset++ {
			for act := 0; act < sup.NumActions(pl, iset); act++ {
				fmt.Fprintf(&sb, " %.6f", pt.Profile.Prob(pl, iset, act))
			}
			sb.WriteString("  ")
		}
	}
	fmt.Println(strings.TrimRight(sb.String(), " "))
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	solveCmd.Flags().StringVar(&gameFile, "game", "", "Path to YAML game description")
	solveCmd.Flags().Float64Var(&maxLambda, "max-lambda", 30.0, "Trace until lambda reaches this value")
	solveCmd.Flags().Float64Var(&stepSize, "step-size", 1e-4, "Advisory initial step hint")
	solveCmd.Flags().BoolVar(&fullGraph, "full-graph", false, "Print the whole traced branch instead of only the terminal point")
	solveCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(solveCmd)
}

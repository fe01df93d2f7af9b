// Package cli implements the cyclic command line tool.
package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/takakv/cyclic/factor"
	"github.com/takakv/cyclic/prime"
)

// Version is filled in at link time by release builds.
var Version string

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cyclic",
		Short:         "Finite groups, rings and number theory.",
		Long:          "A toolbox for computations in finite groups, rings, fields and elliptic curves.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !getFlag(cmd, "version") {
				return cmd.Help()
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, "cyclic ")
			if Version != "" {
				fmt.Fprint(out, Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Fprint(out, info.Main.Version)
			} else {
				fmt.Fprint(out, "(unknown version)")
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	root.Flags().Bool("version", false, "report version of this executable")
	root.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	root.PersistentFlags().StringP("format", "f", "raw", "element output format: raw, decimal or hexadecimal")
	root.PersistentFlags().Int("rounds", prime.DefaultRounds, "Miller-Rabin rounds")
	root.PersistentFlags().Int("budget", factor.DefaultRounds, "Pollard rho iterations per cofactor")

	root.AddCommand(
		primeCmd(), nextPrimeCmd(), prevPrimeCmd(), factorCmd(),
		sqrtCmd(), orderCmd(), curveCmd(), polyCmd(), solveCmd(),
	)
	return root
}

// Execute runs the command line and exits with status 1 on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configureLogging(cmd *cobra.Command) {
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	colour := term.IsTerminal(int(os.Stderr.Fd()))
	log.SetFormatter(&log.TextFormatter{
		ForceColors:   colour,
		DisableColors: !colour,
	})
}

package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/operator-framework/mcsat-core/cmd/mcsat/solvecmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mcsat",
		Short: "mcsat",
		Long:  `A CLI tool to run and inspect the MCSat-style SMT core on DIMACS/iCNF problems.`,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.AddCommand(solvecmd.NewSolveCmd())
	rootCmd.AddCommand(solvecmd.NewProofCheckCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	if err := rootCmd.PersistentFlags().MarkHidden("debug"); err != nil {
		log.Panic(err.Error())
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

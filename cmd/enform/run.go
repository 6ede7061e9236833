package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/enform"
	"github.com/aretw0/enform/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd starts the interactive terminal wizard.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the enrollment wizard interactively",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := newStore(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		engine, err := enform.New(
			enform.WithStore(store),
			enform.WithLogger(newLogger(cmd)),
		)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		if err := cli.NewWizard(engine).Run(context.Background()); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.Run = runCmd.Run
}

package main

import (
	"fmt"
	"os"

	"github.com/aretw0/enform/pkg/schema"
	"github.com/spf13/cobra"
)

// schemasCmd lists the registered record schemas and their fields.
var schemasCmd = &cobra.Command{
	Use:   "schemas [file...]",
	Short: "List registered record schemas",
	Long:  `Lists the built-in schemas, plus any schemas parsed from YAML documents given as arguments.`,
	Run: func(cmd *cobra.Command, args []string) {
		registry := schema.DefaultRegistry()

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			s, err := schema.ParseYAML(data)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			registry.Register(s)
		}

		for _, name := range registry.Names() {
			s, err := registry.Lookup(name)
			if err != nil {
				continue
			}
			fmt.Printf("%s (%d fields)\n", name, len(s.Fields()))
			for _, f := range s.Fields() {
				marker := " "
				if f.Required {
					marker = "*"
				}
				fmt.Printf("  %s %-24s %s\n", marker, f.Path, f.Rule)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}

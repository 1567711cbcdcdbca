package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048plus/internal/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rule set",
	Long: `Print the rules in use as YAML. The output can be saved to
~/.p2048/configs/rules.yaml and edited.

Examples:
  p2048 rules
  p2048 rules --rules ./my-rules.yaml`,
	Args: cobra.NoArgs,
	Run:  runRules,
}

func runRules(_ *cobra.Command, _ []string) {
	data, err := config.MarshalRules(loadRules())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}

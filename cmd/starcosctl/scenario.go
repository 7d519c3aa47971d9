package main

import (
	"github.com/spf13/cobra"

	"github.com/example/starcosdriver/output"
	"github.com/example/starcosdriver/scenario"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run the built-in end-to-end scenario suite against a fake transport",
	Long: `Runs the S1-S7 scenarios from the driver specification against a
scripted fake transport, without touching a real reader. Useful for
checking the binary was built against the expected wire encoding.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		results := scenario.RunAll()
		output.PrintScenarioResults(results)
		summary := scenario.Summarize(results)
		if summary.Failed > 0 {
			cmd.SilenceUsage = true
			return errFailed
		}
		return nil
	},
}

var errFailed = scenarioError("one or more scenarios failed")

type scenarioError string

func (e scenarioError) Error() string { return string(e) }

package main

import (
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval SCRIPT",
	Short: "Run a script given as an argument",
	Long: `Evaluate the argument as one script. Statements are separated by
newlines, so quote multi-statement scripts in your shell.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadFileConfig(configFlag)
		if err != nil {
			return err
		}
		newEngine(fc).Submit(args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

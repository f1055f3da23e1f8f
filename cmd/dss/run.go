package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run FILE...",
	Short: "Run script files in order",
	Long: `Run each file as its own script, in argument order. A file that
cannot be read stops the run; script-level failures are reported as
diagnostics and do not.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadFileConfig(configFlag)
		if err != nil {
			return err
		}
		ex := newEngine(fc)
		for _, path := range args {
			text, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("run %s: %w", path, err)
			}
			ex.Submit(string(text))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

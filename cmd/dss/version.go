package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yacoonan/dss"
)

var versionNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dss version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", versionNameStyle.Render("dss"), dss.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

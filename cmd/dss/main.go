package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yacoonan/dss"
)

var (
	debugFlag   bool
	quietFlag   bool
	noColorFlag bool
	configFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "dss",
	Short: "Line-oriented scripting shell",
	Long: `dss is a line-oriented scripting shell built on a task pipeline:
every statement is one line of space-separated tokens, preprocessors may
rewrite a script before its command pass runs, and sourced scripts queue
behind the task that sourced them.

With no arguments dss starts the interactive console; with stdin
redirected it runs the piped text as one script.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadFileConfig(configFlag)
		if err != nil {
			return err
		}
		ex := newEngine(fc)

		// Piped stdin runs as a single script instead of a console.
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			text, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			ex.Submit(string(text))
			return nil
		}

		historyFile := fc.HistoryFile
		if historyFile == "" {
			historyFile = dss.DefaultHistoryFile()
		}
		repl := dss.NewREPL(ex, dss.REPLConfig{
			HistoryFile: historyFile,
			NoColor:     noColorFlag || fc.NoColor,
			PromptColor: fc.PromptColor,
			Banner:      true,
		})
		return repl.Run()
	},
}

func init() {
	rootCmd.Version = dss.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("dss %s\n", dss.Version))
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "disable engine logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable ANSI colors")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.dss/dss.toml)")
}

// newEngine builds an environment from the effective configuration,
// attaches the standard modules, and returns the main executor with the
// startup statements already run.
func newEngine(fc fileConfig) *dss.Executor {
	cfg := dss.DefaultConfig()
	level := strings.ToLower(fc.LogLevel)
	cfg.Debug = debugFlag || level == "debug" || level == "trace"

	env := dss.New(cfg)
	if cfg.Debug {
		env.Logger().EnableAllCategories()
	}
	if quietFlag {
		env.Logger().SetEnabled(false)
	}
	if noColorFlag || fc.NoColor {
		env.Logger().SetColor(false)
	}
	env.RegisterStandardLibrary()

	ex := env.NewExecutor("dss")
	ex.Submit(dss.StartupScript())
	if len(fc.Startup) > 0 {
		env.Logger().DebugCat(dss.CatConfig, "running %d startup statements", len(fc.Startup))
	}
	for _, line := range fc.Startup {
		ex.Submit(line)
	}
	return ex
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}

package dss

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Prompt styles for the interactive console: working directory, executor
// name, then the input marker.
var (
	promptDirStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	promptNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	promptMarkStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

// replMaxHistoryLines caps the persisted history size.
const replMaxHistoryLines = 1000

// REPLConfig configures the interactive console.
type REPLConfig struct {
	HistoryFile string // history persistence path; empty disables persistence
	NoColor     bool   // plain prompts without ANSI styling
	PromptColor string // color override for the input marker; empty keeps the default
	Banner      bool   // print the greeting before the first prompt
}

// REPL is the interactive console over one executor. Each entered line is
// submitted as its own task; statement history persists across sessions
// when a history file is configured.
type REPL struct {
	ex         *Executor
	config     REPLConfig
	history    []string
	historyPos int
}

// NewREPL creates a console bound to an executor, loading any persisted
// history.
func NewREPL(ex *Executor, config REPLConfig) *REPL {
	history := loadReplHistory(config.HistoryFile)
	return &REPL{
		ex:         ex,
		config:     config,
		history:    history,
		historyPos: len(history),
	}
}

// Run drives the console until the user leaves with exit, quit, Ctrl+C,
// or Ctrl+D on an empty line. The terminal is in raw mode while a line is
// edited and restored around execution so command output renders
// normally.
func (r *REPL) Run() error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("interactive mode requires a terminal")
	}

	if r.config.Banner {
		fmt.Printf("dss %s interactive console. Type 'exit' or 'quit' to leave.\n\n", Version)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	for {
		input, quit := r.readLine()
		if quit {
			fmt.Print("\r\n")
			break
		}

		trimmed := strings.TrimSpace(input)
		if trimmed != "" {
			if len(r.history) == 0 || r.history[len(r.history)-1] != trimmed {
				r.history = append(r.history, trimmed)
			}
			r.historyPos = len(r.history)
		}

		lower := strings.ToLower(trimmed)
		if lower == "exit" || lower == "quit" {
			break
		}
		if trimmed == "" {
			continue
		}

		// Cooked mode during execution so command output and diagnostics
		// render with normal line discipline.
		term.Restore(fd, oldState)
		r.ex.ClearDiagnostics()
		r.ex.Submit(input)
		oldState, _ = term.MakeRaw(fd)
	}

	saveReplHistory(r.config.HistoryFile, r.history)
	return nil
}

// prompt renders the console prompt: current directory, executor name,
// input marker.
func (r *REPL) prompt() string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "?"
	}
	if r.config.NoColor {
		return fmt.Sprintf("%s %s >>> ", cwd, r.ex.Name())
	}
	mark := promptMarkStyle
	if r.config.PromptColor != "" {
		mark = mark.Foreground(lipgloss.Color(r.config.PromptColor))
	}
	return fmt.Sprintf("%s %s %s ",
		promptDirStyle.Render(cwd),
		promptNameStyle.Render(r.ex.Name()),
		mark.Render(">>>"))
}

// readLine reads one line in raw mode with history browsing and basic
// editing. The second result is true when the user quit the console.
func (r *REPL) readLine() (string, bool) {
	var currentLine []rune
	cursorPos := 0
	savedLine := ""
	inHistory := false

	printPrompt := func() {
		fmt.Print(r.prompt())
	}

	redrawLine := func() {
		fmt.Print("\r\x1b[K")
		printPrompt()
		fmt.Print(string(currentLine))
		if cursorPos < len(currentLine) {
			fmt.Printf("\x1b[%dD", len(currentLine)-cursorPos)
		}
	}

	printPrompt()

	buf := make([]byte, 32)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return "", true
		}

		i := 0
		for i < n {
			b := buf[i]
			i++

			// Escape sequences: arrows, delete, home, end.
			if b == 0x1b && i < n && buf[i] == '[' {
				i++
				if i < n {
					switch buf[i] {
					case 'A': // Up arrow
						i++
						if len(r.history) > 0 && r.historyPos > 0 {
							if !inHistory {
								savedLine = string(currentLine)
								inHistory = true
							}
							r.historyPos--
							currentLine = []rune(r.history[r.historyPos])
							cursorPos = len(currentLine)
							redrawLine()
						}
						continue
					case 'B': // Down arrow
						i++
						if inHistory {
							if r.historyPos < len(r.history)-1 {
								r.historyPos++
								currentLine = []rune(r.history[r.historyPos])
								cursorPos = len(currentLine)
							} else {
								r.historyPos = len(r.history)
								currentLine = []rune(savedLine)
								cursorPos = len(currentLine)
								inHistory = false
							}
							redrawLine()
						}
						continue
					case 'C': // Right arrow
						i++
						if cursorPos < len(currentLine) {
							cursorPos++
							fmt.Print("\x1b[C")
						}
						continue
					case 'D': // Left arrow
						i++
						if cursorPos > 0 {
							cursorPos--
							fmt.Print("\x1b[D")
						}
						continue
					case '3': // Delete (ESC[3~)
						i++
						if i < n && buf[i] == '~' {
							i++
							if cursorPos < len(currentLine) {
								currentLine = append(currentLine[:cursorPos], currentLine[cursorPos+1:]...)
								redrawLine()
							}
						}
						continue
					case 'H': // Home
						i++
						if cursorPos > 0 {
							fmt.Printf("\x1b[%dD", cursorPos)
							cursorPos = 0
						}
						continue
					case 'F': // End
						i++
						if cursorPos < len(currentLine) {
							fmt.Printf("\x1b[%dC", len(currentLine)-cursorPos)
							cursorPos = len(currentLine)
						}
						continue
					case '1': // Home (ESC[1~)
						i++
						if i < n && buf[i] == '~' {
							i++
							if cursorPos > 0 {
								fmt.Printf("\x1b[%dD", cursorPos)
								cursorPos = 0
							}
						}
						continue
					case '4': // End (ESC[4~)
						i++
						if i < n && buf[i] == '~' {
							i++
							if cursorPos < len(currentLine) {
								fmt.Printf("\x1b[%dC", len(currentLine)-cursorPos)
								cursorPos = len(currentLine)
							}
						}
						continue
					}
				}
				// Skip unknown escape sequence
				continue
			}

			switch b {
			case 0x03: // Ctrl+C
				fmt.Print("^C\r\n")
				return "", true

			case 0x04: // Ctrl+D
				if len(currentLine) == 0 {
					return "", true
				}

			case 0x7f, 0x08: // Backspace
				if cursorPos > 0 {
					currentLine = append(currentLine[:cursorPos-1], currentLine[cursorPos:]...)
					cursorPos--
					redrawLine()
				}

			case '\r', '\n': // Enter
				fmt.Print("\r\n")
				return string(currentLine), false

			case 0x15: // Ctrl+U - clear line
				currentLine = nil
				cursorPos = 0
				redrawLine()

			case 0x0b: // Ctrl+K - kill to end of line
				currentLine = currentLine[:cursorPos]
				redrawLine()

			case 0x01: // Ctrl+A - beginning of line
				if cursorPos > 0 {
					fmt.Printf("\x1b[%dD", cursorPos)
					cursorPos = 0
				}

			case 0x05: // Ctrl+E - end of line
				if cursorPos < len(currentLine) {
					fmt.Printf("\x1b[%dC", len(currentLine)-cursorPos)
					cursorPos = len(currentLine)
				}

			default:
				if b >= 32 && b < 127 {
					// ASCII printable
					currentLine = append(currentLine[:cursorPos], append([]rune{rune(b)}, currentLine[cursorPos:]...)...)
					cursorPos++
					inHistory = false
					redrawLine()
				} else if b >= 0xC0 {
					// UTF-8 start byte, collect the full character
					charBytes := []byte{b}
					for i < n && buf[i] >= 0x80 && buf[i] < 0xC0 {
						charBytes = append(charBytes, buf[i])
						i++
					}
					ru, _ := utf8.DecodeRune(charBytes)
					if ru != utf8.RuneError {
						currentLine = append(currentLine[:cursorPos], append([]rune{ru}, currentLine[cursorPos:]...)...)
						cursorPos++
						inHistory = false
						redrawLine()
					}
				}
			}
		}
	}
}

// DefaultHistoryFile returns the default history path under the user's
// dss directory, or empty when no home directory is available.
func DefaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dss", "history")
}

// loadReplHistory reads persisted history, one statement per line.
func loadReplHistory(path string) []string {
	if path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var history []string
	for _, line := range strings.Split(string(content), "\n") {
		if line != "" {
			history = append(history, line)
		}
	}
	return history
}

// saveReplHistory writes history one statement per line, keeping only the
// most recent entries. Failures are silent; losing history never blocks
// leaving the console.
func saveReplHistory(path string, history []string) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	if len(history) > replMaxHistoryLines {
		history = history[len(history)-replMaxHistoryLines:]
	}
	_ = os.WriteFile(path, []byte(strings.Join(history, "\n")+"\n"), 0644)
}

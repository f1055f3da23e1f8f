// dssgui - dss interactive console hosted in a Fyne window
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/widget"
	"github.com/fyne-io/terminal"

	"github.com/yacoonan/dss"
)

func main() {
	debugFlag := flag.Bool("d", false, "enable debug logging")
	flag.Parse()

	fyneApp := app.New()
	window := fyneApp.NewWindow("dss console")
	window.Resize(fyne.NewSize(700, 500))

	// Keyboard bytes flow terminal -> keyWriter -> keyReader; display
	// bytes flow screenWriter -> screenReader -> terminal.
	keyReader, keyWriter := io.Pipe()
	screenReader, screenWriter := io.Pipe()
	screen := &crlfWriter{w: screenWriter}

	cfg := dss.DefaultConfig()
	cfg.Debug = *debugFlag
	cfg.Output = screen

	env := dss.New(cfg)
	if *debugFlag {
		env.Logger().EnableAllCategories()
	}
	// Engine diagnostics belong in the console, not on a stderr the GUI
	// user never sees.
	env.Logger().SetOutput(screen, screen)
	env.RegisterStandardLibrary()
	ex := env.NewExecutor("dss")

	console := terminal.New()
	window.SetContent(newMinSized(console, fyne.NewSize(680, 460)))

	go func() {
		if err := console.RunWithConnection(keyWriter, screenReader); err != nil {
			fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		}
	}()

	go consoleLoop(fyneApp, ex, keyReader, screen)

	window.ShowAndRun()
}

// consoleLoop prints prompts, reads lines from the terminal keyboard, and
// submits each one as its own task until the user leaves.
func consoleLoop(a fyne.App, ex *dss.Executor, keys *io.PipeReader, screen io.Writer) {
	ex.Submit(dss.StartupScript())
	fmt.Fprintf(screen, "dss %s console. Type 'exit' or 'quit' to leave.\n\n", dss.Version)

	for {
		fmt.Fprint(screen, prompt(ex))
		line, err := readLine(keys, screen)
		if err != nil {
			return
		}

		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if lower == "exit" || lower == "quit" {
			fyne.Do(a.Quit)
			return
		}
		if trimmed == "" {
			continue
		}

		ex.ClearDiagnostics()
		ex.Submit(line)
	}
}

// prompt renders the console prompt: current directory in blue, executor
// name in magenta, then a bold green input marker.
func prompt(ex *dss.Executor) string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "?"
	}
	return fmt.Sprintf("\x1b[34m%s\x1b[0m \x1b[35m%s\x1b[0m \x1b[1;32m>>>\x1b[0m ", cwd, ex.Name())
}

// readLine reads one line from the keyboard pipe with cooked-terminal
// echo: printable characters echo as typed, backspace erases, Ctrl+U
// clears the line, Ctrl+C cancels it.
func readLine(keys *io.PipeReader, screen io.Writer) (string, error) {
	var line []byte
	buf := make([]byte, 1)

	for {
		n, err := keys.Read(buf)
		if err != nil {
			return string(line), err
		}
		if n == 0 {
			continue
		}

		b := buf[0]
		switch {
		case b == '\r' || b == '\n':
			fmt.Fprint(screen, "\n")
			return string(line), nil

		case b == 0x7f || b == 0x08: // Backspace
			if len(line) > 0 {
				line = line[:len(line)-1]
				fmt.Fprint(screen, "\b \b")
			}

		case b == 0x03: // Ctrl+C cancels the line
			fmt.Fprint(screen, "^C\n")
			return "", nil

		case b == 0x15: // Ctrl+U clears the line
			for range line {
				fmt.Fprint(screen, "\b \b")
			}
			line = line[:0]

		case b >= 32 && b < 127:
			line = append(line, b)
			fmt.Fprint(screen, string(b))

		case b >= 0xC0:
			// UTF-8 start byte, collect the full character
			seq := []byte{b}
			var remaining int
			switch {
			case b >= 0xF0:
				remaining = 3
			case b >= 0xE0:
				remaining = 2
			default:
				remaining = 1
			}
			for i := 0; i < remaining; i++ {
				n, err := keys.Read(buf)
				if err != nil || n == 0 {
					break
				}
				seq = append(seq, buf[0])
			}
			line = append(line, seq...)
			fmt.Fprint(screen, string(seq))
		}
	}
}

// crlfWriter converts LF line endings to CRLF for the terminal widget.
type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	text := strings.ReplaceAll(string(p), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\n", "\r\n")
	if _, err := io.WriteString(c.w, text); err != nil {
		return 0, err
	}
	return len(p), nil
}

// minSized wraps a canvas object and enforces a minimum size, keeping the
// terminal usable before the window is resized.
type minSized struct {
	widget.BaseWidget
	content fyne.CanvasObject
	min     fyne.Size
}

func newMinSized(content fyne.CanvasObject, min fyne.Size) *minSized {
	m := &minSized{content: content, min: min}
	m.ExtendBaseWidget(m)
	return m
}

func (m *minSized) CreateRenderer() fyne.WidgetRenderer {
	return &minSizedRenderer{host: m}
}

func (m *minSized) MinSize() fyne.Size {
	return m.min
}

type minSizedRenderer struct {
	host *minSized
}

func (r *minSizedRenderer) Layout(size fyne.Size) {
	r.host.content.Resize(size)
	r.host.content.Move(fyne.NewPos(0, 0))
}

func (r *minSizedRenderer) MinSize() fyne.Size {
	return r.host.min
}

func (r *minSizedRenderer) Refresh() {
	r.host.content.Refresh()
}

func (r *minSizedRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.host.content}
}

func (r *minSizedRenderer) Destroy() {}

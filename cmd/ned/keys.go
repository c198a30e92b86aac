package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bethropolis/med/internal/config"
	"github.com/bethropolis/med/internal/input"
	"github.com/bethropolis/med/plugins/ned"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultWrap = 80

func newKeysCmd(flags *config.Flags) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show the key bindings, including those from the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.Parsed(cmd.Flags())
			cfg, err := config.Load("", flags)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			keys, err := ned.ParseKeymap(cfg.Keys)
			if err != nil {
				return fmt.Errorf("invalid [keys] configuration: %w", err)
			}
			ip, err := input.NewInputProcessor(cfg.Commands)
			if err != nil {
				return fmt.Errorf("invalid [commands] configuration: %w", err)
			}

			md := keysMarkdown(keys, ip.Commands())
			out := cmd.OutOrStdout()
			if plain || !isTerminal(out) {
				_, err := io.WriteString(out, md)
				return err
			}
			rendered, err := renderMarkdown(md, terminalWidth(out))
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, rendered)
			return err
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print markdown without styling")
	return cmd
}

// keysMarkdown documents every mode's keys as markdown tables.
func keysMarkdown(keys ned.Keymap, commands map[string]string) string {
	var b strings.Builder
	b.WriteString("# ned key bindings\n\n")

	b.WriteString("## Normal mode\n\n| Key | Action |\n|-----|--------|\n")
	for _, binding := range keys.Bindings() {
		fmt.Fprintf(&b, "| `%s` | %s |\n", ned.KeyName(binding.Key), binding.Op)
	}
	fmt.Fprintf(&b, "| `%c` | insert mode: replace the selected value |\n", ned.KeyInsert)
	fmt.Fprintf(&b, "| `%c` | append mode: add a value after the selection |\n", ned.KeyAppend)
	fmt.Fprintf(&b, "| `%c` | merge mode: combine with a neighbour |\n", ned.KeyMerge)

	b.WriteString("\n## Insert and append modes\n\n| Key | Action |\n|-----|--------|\n")
	b.WriteString("| `0`-`9`, `-` | type the number (`-` only first) |\n")
	b.WriteString("| `Backspace` | delete the last digit, or leave when empty |\n")
	b.WriteString("| `Enter` | apply the number |\n")
	b.WriteString("| `Esc` | cancel |\n")

	b.WriteString("\n## Merge mode\n\n| Key | Action |\n|-----|--------|\n")
	b.WriteString("| `+` `-` `*` | pick the operator |\n")
	b.WriteString("| `h` / `l` | merge the previous / next value into the selection |\n")
	b.WriteString("| `Esc` | cancel |\n")

	b.WriteString("\n## Application\n\n| Key | Action |\n|-----|--------|\n")
	b.WriteString("| `Ctrl+C`, `Ctrl+Q` | quit |\n")
	b.WriteString("| `Ctrl+Y` | yank the selected value |\n")
	b.WriteString("| `Ctrl+V` | paste numbers after the selection |\n")

	names := make([]string, 0, len(commands))
	for key := range commands {
		names = append(names, key)
	}
	sort.Strings(names)
	for _, key := range names {
		fmt.Fprintf(&b, "| `%s` | run command `%s` |\n", key, commands[key])
	}
	return b.String()
}

// renderMarkdown styles md for the terminal, dark or light to match its
// background.
func renderMarkdown(md string, width int) (string, error) {
	style := "light"
	if termenv.HasDarkBackground() {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	return r.Render(md)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWrap
}

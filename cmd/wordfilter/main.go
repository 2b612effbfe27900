package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/vanity"
	"github.com/fwojciec/vanity/fs"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Input  string `arg:"" help:"Dictionary file: a JSON array of words or an object keyed by word"`
	Output string `short:"o" default:"wordlist.json" help:"Where to write the filtered JSON array"`
	Min    int    `default:"3" help:"Minimum word length"`
	Max    int    `default:"7" help:"Maximum word length"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wordfilter"),
		kong.Description("Build a candidate wordlist from a dictionary dump"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if cli.Min < vanity.MinIdentifierLength {
		return fmt.Errorf("minimum length must be at least %d", vanity.MinIdentifierLength)
	}
	if cli.Max < cli.Min {
		return fmt.Errorf("maximum length %d is below minimum %d", cli.Max, cli.Min)
	}

	words, err := fs.NewWordFile(cli.Input).Words(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", vanity.ErrorMessage(err))
		return err
	}

	filtered := fs.FilterWords(words, cli.Min, cli.Max)
	if err := fs.WriteWords(cli.Output, filtered); err != nil {
		return fmt.Errorf("failed to write %s: %w", cli.Output, err)
	}

	fmt.Fprintf(stdout, "Filtered words saved to %s. Total: %d\n", cli.Output, len(filtered))
	return nil
}

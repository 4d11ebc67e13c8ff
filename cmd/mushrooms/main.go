// Command mushrooms is the terminal version of Spilled Mushrooms. It plays a
// game at the prompt, builds config files and lists archived runs.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/spilled-mushrooms/pkg/logger"
)

const Version = "1.0.0"

func main() {
	logger.Init()

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "mushrooms",
		Usage:   "Collect every mushroom within seven days",
		Version: Version,
		Commands: []*cli.Command{
			playCommand(),
			configsCommand(),
			summaryCommand(),
		},
	}
}

// prompt reads answers line by line from the command's input
type prompt struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompt(r io.Reader, w io.Writer) *prompt {
	return &prompt{in: bufio.NewScanner(r), out: w}
}

// ask prints question and returns the trimmed answer. ok is false once the
// input is exhausted.
func (p *prompt) ask(question string) (answer string, ok bool) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

func reader(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

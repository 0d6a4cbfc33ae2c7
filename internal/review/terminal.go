// Package review asks a human to decide on candidate pairs.
package review

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/agenthands/namesake/internal/core/classify"
	"github.com/agenthands/namesake/internal/core/model"
)

const (
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

const prompt = "Accept as aliases? [y]es / [n]o / [q]uit: "

// Terminal reads verdicts line by line. Closed input counts as quit.
type Terminal struct {
	in       *bufio.Reader
	out      io.Writer
	colorize bool
}

// NewTerminal reviews on in/out. Colour is used only when out is a terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:       bufio.NewReader(in),
		out:      out,
		colorize: shouldColorize(out),
	}
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Review prints the pair and waits for an answer.
func (t *Terminal) Review(ctx context.Context, res classify.Result) (model.Verdict, error) {
	if _, err := fmt.Fprintln(t.out, Format(res, t.colorize)); err != nil {
		return model.Abort, fmt.Errorf("write review: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return model.Abort, err
		}
		if _, err := fmt.Fprint(t.out, prompt); err != nil {
			return model.Abort, fmt.Errorf("write prompt: %w", err)
		}
		line, err := t.in.ReadString('\n')
		if v, ok := ParseVerdict(line); ok {
			return v, nil
		}
		if err == io.EOF {
			fmt.Fprintln(t.out)
			return model.Abort, nil
		}
		if err != nil {
			return model.Abort, fmt.Errorf("read verdict: %w", err)
		}
		fmt.Fprintln(t.out, "Please answer y, n or q.")
	}
}

// ParseVerdict maps an answer to a verdict.
func ParseVerdict(s string) (model.Verdict, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "a", "accept":
		return model.Accept, true
	case "n", "no", "r", "reject":
		return model.Reject, true
	case "q", "quit", "abort":
		return model.Abort, true
	}
	return model.Abort, false
}

// Format renders the two identities side by side.
func Format(res classify.Result, colorize bool) string {
	title := fmt.Sprintf("Possible alias pair %s", res.Pair)
	if colorize {
		title = ansiBold + title + ansiReset
	}

	rows := [][]string{
		{"id", strconv.FormatInt(res.Left.ID, 10), strconv.FormatInt(res.Right.ID, 10)},
		{"primary key", res.Left.PrimaryKey, res.Right.PrimaryKey},
		{"custom aliases", joinOrDash(res.Left.Custom), joinOrDash(res.Right.Custom)},
		{"known aliases", joinOrDash(res.Left.Known), joinOrDash(res.Right.Known)},
	}
	if res.Translation != nil {
		rows = append(rows, []string{
			"translation",
			fmt.Sprintf("%s [%s]", res.Translation.Text, res.Translation.Source),
			"",
		})
	}
	return title + "\n" + RenderTable([]string{"", "player 1", "player 2"}, rows, nil)
}

func joinOrDash(list []string) string {
	if len(list) == 0 {
		return "-"
	}
	return strings.Join(list, "\n")
}

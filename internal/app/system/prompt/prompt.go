// internal/app/system/prompt/prompt.go
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// ErrClosed is returned once the input is exhausted.
var ErrClosed = errors.New("input closed")

// Prompter reads answers line by line and writes prompts and reports.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New returns a Prompter over in and out.
func New(in io.Reader, out io.Writer) *Prompter {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), 64*1024)
	return &Prompter{in: sc, out: out}
}

// Out returns the writer reports go to.
func (p *Prompter) Out() io.Writer { return p.out }

// Printf writes formatted output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prints label and returns the trimmed answer.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Required asks until the answer is non-empty.
func (p *Prompter) Required(label string) (string, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		p.Println("  A value is required.")
	}
}

// Ask asks until parse accepts the answer, printing each parse error.
func Ask[T any](p *Prompter, label string, parse func(string) (T, error)) (T, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			var zero T
			return zero, err
		}
		v, perr := parse(s)
		if perr == nil {
			return v, nil
		}
		p.Printf("  %v\n", perr)
	}
}

// Optional is Ask where a blank answer means "keep" and yields nil.
func Optional[T any](p *Prompter, label string, parse func(string) (T, error)) (*T, error) {
	for {
		s, err := p.Line(label + " (blank to keep)")
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		v, perr := parse(s)
		if perr == nil {
			return &v, nil
		}
		p.Printf("  %v\n", perr)
	}
}

// Choose asks for a number in [1, n]; 0 means back and returns 0.
func (p *Prompter) Choose(label string, n int) (int, error) {
	return Ask(p, label, func(s string) (int, error) {
		i, err := strconv.Atoi(s)
		if err != nil || i < 0 || i > n {
			return 0, fmt.Errorf("please enter a number from 0 to %d", n)
		}
		return i, nil
	})
}

// Menu prints a numbered option list under title and returns the 1-based
// choice. Option 0 is always "back"/"logout", labeled by zero.
func (p *Prompter) Menu(title, zero string, options []string) (int, error) {
	p.Printf("\n== %s ==\n", title)
	for i, o := range options {
		p.Printf("%2d) %s\n", i+1, o)
	}
	p.Printf("%2d) %s\n", 0, zero)
	return p.Choose("Choose", len(options))
}

// Table writes rows as aligned columns under header.
func (p *Prompter) Table(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
}

// Pick shows items numbered from 1 and asks for one. It returns -1 when the
// list is empty or the user backs out with 0.
func (p *Prompter) Pick(label string, items []string) (int, error) {
	if len(items) == 0 {
		p.Println("  (none)")
		return -1, nil
	}
	for i, it := range items {
		p.Printf("%2d) %s\n", i+1, it)
	}
	i, err := p.Choose(label+" (0 to go back)", len(items))
	if err != nil {
		return -1, err
	}
	return i - 1, nil
}

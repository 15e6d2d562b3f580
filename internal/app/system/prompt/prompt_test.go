package prompt_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dalemusser/placementhub/internal/app/system/inputval"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/domain/models"
)

func scripted(lines ...string) (*prompt.Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return prompt.New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out), &out
}

func TestLine(t *testing.T) {
	p, out := scripted("  hello  ")
	got, err := p.Line("Name")
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	if got != "hello" {
		t.Errorf("Line = %q, want %q", got, "hello")
	}
	if !strings.Contains(out.String(), "Name: ") {
		t.Errorf("prompt not printed: %q", out.String())
	}

	if _, err := p.Line("Again"); !errors.Is(err, prompt.ErrClosed) {
		t.Errorf("err at EOF = %v, want ErrClosed", err)
	}
}

func TestRequired_Reprompts(t *testing.T) {
	p, out := scripted("", "   ", "value")
	got, err := p.Required("Title")
	if err != nil {
		t.Fatalf("Required: %v", err)
	}
	if got != "value" {
		t.Errorf("Required = %q, want value", got)
	}
	if n := strings.Count(out.String(), "A value is required."); n != 2 {
		t.Errorf("reprompt count = %d, want 2", n)
	}
}

func TestAsk_ParsesAndReprompts(t *testing.T) {
	p, out := scripted("expert", "2")
	got, err := prompt.Ask(p, "Level", inputval.ParseLevel)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != models.LevelIntermediate {
		t.Errorf("Ask = %v, want INTERMEDIATE", got)
	}
	if !strings.Contains(out.String(), "invalid level") {
		t.Errorf("parse error not shown: %q", out.String())
	}
}

func TestAsk_ClosedInput(t *testing.T) {
	p, _ := scripted("nope")
	if _, err := prompt.Ask(p, "Capacity", inputval.ParsePositive); !errors.Is(err, prompt.ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestOptional(t *testing.T) {
	p, _ := scripted("", "x", "4")
	keep, err := prompt.Optional(p, "Capacity", inputval.ParsePositive)
	if err != nil || keep != nil {
		t.Fatalf("blank answer = (%v, %v), want (nil, nil)", keep, err)
	}
	got, err := prompt.Optional(p, "Capacity", inputval.ParsePositive)
	if err != nil || got == nil || *got != 4 {
		t.Fatalf("Optional = (%v, %v), want 4", got, err)
	}
}

func TestMenu(t *testing.T) {
	p, out := scripted("9", "2")
	got, err := p.Menu("Main", "Quit", []string{"List", "Submit"})
	if err != nil {
		t.Fatalf("Menu: %v", err)
	}
	if got != 2 {
		t.Errorf("Menu = %d, want 2", got)
	}
	for _, want := range []string{"== Main ==", " 1) List", " 2) Submit", " 0) Quit", "from 0 to 2"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestPick(t *testing.T) {
	p, out := scripted("0", "2")

	if i, err := p.Pick("Posting", nil); err != nil || i != -1 {
		t.Errorf("empty Pick = (%d, %v), want -1", i, err)
	}
	if !strings.Contains(out.String(), "(none)") {
		t.Error("empty list not reported")
	}

	items := []string{"a", "b"}
	if i, err := p.Pick("Posting", items); err != nil || i != -1 {
		t.Errorf("back Pick = (%d, %v), want -1", i, err)
	}
	if i, err := p.Pick("Posting", items); err != nil || i != 1 {
		t.Errorf("Pick = (%d, %v), want 1", i, err)
	}
}

func TestTable(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader(""), &out)
	p.Table([]string{"ID", "TITLE"}, [][]string{{"1", "Backend"}, {"22", "Data"}})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[2], "22  Data") {
		t.Errorf("row not aligned: %q", lines[2])
	}
}

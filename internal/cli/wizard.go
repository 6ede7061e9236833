// Package cli implements the interactive terminal wizard.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/enform"
	"github.com/aretw0/enform/pkg/domain"
	"github.com/aretw0/enform/pkg/schema"
	"github.com/aretw0/enform/pkg/wizard"
	"golang.org/x/term"
)

// planQuestion is the CLI's catalogue entry for the plan-selection screen.
// The engine itself is catalogue-agnostic; only hosts know the options.
type planQuestion struct {
	ID      string
	Prompt  string
	Options []string
	Multi   bool
}

var planQuestions = []planQuestion{
	{ID: "plan", Prompt: "Choose a plan", Options: []string{"economy", "standard", "premium"}},
	{ID: "riders", Prompt: "Choose riders (multiple allowed)", Options: []string{"cancer", "hospital", "income"}, Multi: true},
}

// Wizard drives an engine interactively over a terminal.
type Wizard struct {
	engine   *enform.Engine
	in       *bufio.Reader
	out      io.Writer
	render   func(string) (string, error)
	styles   styles
	terminal bool
}

// NewWizard creates a terminal wizard over stdin/stdout.
func NewWizard(engine *enform.Engine) *Wizard {
	return &Wizard{
		engine:   engine,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		render:   NewMarkdownRenderer(),
		styles:   newStyles(),
		terminal: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// Run walks every step to the confirmation screen.
func (w *Wizard) Run(ctx context.Context) error {
	w.engine.Start(ctx)

	for {
		step := w.engine.Current()
		if step.Terminal {
			return w.confirm(ctx)
		}

		w.banner(step)
		if step.ID == "plan" {
			w.runPlan(ctx)
		} else {
			w.collect(ctx, step)
		}

		if _, err := w.engine.Forward(ctx); err != nil {
			if errors.Is(err, domain.ErrNavigationBlocked) {
				w.showErrors()
				continue
			}
			return err
		}
	}
}

func (w *Wizard) banner(step wizard.Step) {
	fmt.Fprintf(w.out, "\n== %s ==\n", step.Title)
	if step.Description != "" {
		if rendered, err := w.render(step.Description); err == nil {
			fmt.Fprint(w.out, rendered)
		} else {
			fmt.Fprintln(w.out, step.Description)
		}
	}
}

// collect prompts for every editable field of the step.
func (w *Wizard) collect(ctx context.Context, step wizard.Step) {
	for _, t := range step.Toggles {
		on := w.askYesNo(fmt.Sprintf("%s? [y/N] ", t.Flag))
		if err := w.engine.SetToggle(ctx, t.Flag, on); err != nil {
			fmt.Fprintln(w.out, w.styles.errorText(err.Error()))
		}
	}

	for _, s := range step.Schemas {
		for _, f := range s.Fields() {
			if f.Composite() {
				continue // segments prompt individually
			}
			if w.hidden(step, f.Path) {
				continue
			}
			value := w.askField(f)
			if err := w.engine.SetField(ctx, f.Path, value); err != nil {
				fmt.Fprintln(w.out, w.styles.errorText(err.Error()))
			}
		}
	}
}

func (w *Wizard) hidden(step wizard.Step, path string) bool {
	for _, t := range step.Toggles {
		if t.HidesPrefix != "" && w.engine.ToggleOn(t.Flag) && strings.HasPrefix(path, t.HidesPrefix) {
			return true
		}
	}
	return false
}

func (w *Wizard) askField(f schema.Field) string {
	current := w.engine.Value(f.Path)
	prompt := f.DisplayName()
	if current != "" {
		prompt += fmt.Sprintf(" [%s]", current)
	}
	fmt.Fprintf(w.out, "%s: ", prompt)

	if f.Rule == schema.RulePassword && w.terminal {
		// Masked input; falls through to plain reads when piped.
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(w.out)
		if err == nil {
			if len(raw) == 0 {
				return current
			}
			return string(raw)
		}
	}

	line, err := w.in.ReadString('\n')
	if err != nil {
		return current
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return current
	}
	return line
}

func (w *Wizard) askYesNo(prompt string) bool {
	fmt.Fprint(w.out, prompt)
	line, err := w.in.ReadString('\n')
	if err != nil {
		return false
	}
	clean := strings.ToLower(strings.TrimSpace(line))
	return clean == "y" || clean == "yes"
}

func (w *Wizard) runPlan(ctx context.Context) {
	for _, q := range planQuestions {
		w.engine.SelectQuestion(q.ID)
		for {
			fmt.Fprintf(w.out, "%s %s\n", q.Prompt, w.styles.faintText(fmt.Sprintf("(options: %s)", strings.Join(q.Options, ", "))))
			fmt.Fprintf(w.out, "selected: %s\n> ", strings.Join(w.engine.Selected(q.ID), ", "))

			line, err := w.in.ReadString('\n')
			if err != nil {
				return
			}
			choice := strings.TrimSpace(line)
			if choice == "" {
				if len(w.engine.Selected(q.ID)) > 0 || q.Multi {
					break
				}
				fmt.Fprintln(w.out, w.styles.errorText("pick at least one option"))
				continue
			}
			if !contains(q.Options, choice) {
				fmt.Fprintln(w.out, w.styles.errorText("unknown option: "+choice))
				continue
			}
			w.engine.Toggle(ctx, q.ID, choice, q.Multi)
			if !q.Multi {
				break
			}
		}
	}
	// Forward-eligibility keys off the primary plan question.
	w.engine.SelectQuestion(planQuestions[0].ID)
}

func (w *Wizard) showErrors() {
	errs := w.engine.VisibleErrors()
	fmt.Fprintln(w.out, w.styles.errorText(fmt.Sprintf("%d field(s) need attention:", len(errs))))
	for path, msg := range errs {
		fmt.Fprintf(w.out, "  %s: %s\n", path, w.styles.errorText(msg))
	}
}

func (w *Wizard) confirm(ctx context.Context) error {
	summary := w.engine.Aggregate(ctx)

	fmt.Fprintln(w.out, "\n== Confirmation ==")
	fmt.Fprintf(w.out, "Customer: %s %s (%s)\n",
		orDash(summary.Customer.Surname), orDash(summary.Customer.GivenName), orDash(summary.Customer.Email))
	fmt.Fprintf(w.out, "Payment:  %s\n", orDash(summary.Payment.Method))
	for q, options := range summary.Plan {
		fmt.Fprintf(w.out, "Plan %s:  %s\n", q, strings.Join(options, ", "))
	}

	if !w.askYesNo("Submit the application? [y/N] ") {
		fmt.Fprintln(w.out, "Aborted.")
		return nil
	}

	w.engine.Finalize(ctx)
	fmt.Fprintln(w.out, w.styles.successText("Application submitted."))
	return nil
}

func orDash(v string) string {
	if v == "" {
		return wizard.Placeholder
	}
	return v
}

func contains(options []string, v string) bool {
	for _, opt := range options {
		if opt == v {
			return true
		}
	}
	return false
}

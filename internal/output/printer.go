// Package output renders command results for the terminal with lipgloss.
//
// A [Printer] owns a lipgloss renderer bound to its writer, so colors follow
// the capabilities of that writer: a real terminal gets styling, a buffer in
// tests gets plain text.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stairtour/internal/catalog"
	"stairtour/internal/notify"
	"stairtour/internal/placement"
	"stairtour/internal/progress"
)

const barWidth = 24

// Printer writes formatted output.
type Printer struct {
	w io.Writer
	r *lipgloss.Renderer

	title    lipgloss.Style
	label    lipgloss.Style
	muted    lipgloss.Style
	success  lipgloss.Style
	warn     lipgloss.Style
	errStyle lipgloss.Style
	box      lipgloss.Style
}

// NewPrinter creates a [Printer] writing to stdout.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a [Printer] writing to w.
func NewPrinterWithWriter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:        w,
		r:        r,
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")),
		label:    r.NewStyle().Bold(true),
		muted:    r.NewStyle().Foreground(lipgloss.Color("241")),
		success:  r.NewStyle().Foreground(lipgloss.Color("42")),
		warn:     r.NewStyle().Foreground(lipgloss.Color("214")),
		errStyle: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F59E0B")).
			Padding(0, 1),
	}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Renderer returns the lipgloss renderer bound to the writer.
func (p *Printer) Renderer() *lipgloss.Renderer {
	return p.r
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

// Success prints a confirmation line.
func (p *Printer) Success(format string, args ...any) {
	p.println(p.success.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Info prints a neutral line.
func (p *Printer) Info(format string, args ...any) {
	p.println(fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	p.println(p.warn.Render("! " + fmt.Sprintf(format, args...)))
}

// Error prints an error line.
func (p *Printer) Error(err error) {
	p.println(p.errStyle.Render("✗ " + err.Error()))
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// StepList prints the catalog, marking steps recorded as completed in rec.
func (p *Printer) StepList(cat *catalog.Catalog, rec progress.Record) {
	p.println(p.title.Render(fmt.Sprintf("Tour catalog v%d (%d steps)", cat.Version, cat.Len())))
	for i, s := range cat.Steps {
		mark := p.muted.Render("○")
		if rec.HasCompletedStep(s.ID) {
			mark = p.success.Render("●")
		}
		feature := ""
		if s.FeatureKey != "" {
			feature = p.muted.Render(" [" + s.FeatureKey + "]")
		}
		p.println(fmt.Sprintf("%s %2d. %s %s%s", mark, i+1, s.Icon, p.label.Render(s.Title), feature))
	}
}

// StatusView is everything the status command reports.
type StatusView struct {
	Exists             bool            `json:"exists"`
	StorageKey         string          `json:"storageKey"`
	CatalogVersion     int             `json:"catalogVersion"`
	Record             progress.Record `json:"record"`
	ShouldShowFullTour bool            `json:"shouldShowFullTour"`
	HasNewSteps        bool            `json:"hasNewSteps"`
	DeltaSteps         []string        `json:"deltaSteps"`
	Badge              notify.Badge    `json:"badge"`
}

// Status prints a [StatusView].
func (p *Printer) Status(v StatusView) {
	p.println(p.title.Render("Tour progress"))

	if !v.Exists {
		p.println(p.muted.Render("No progress recorded yet; the full tour will start on first run."))
	} else {
		state := "finished"
		if v.Record.Dismissed {
			state = "skipped"
		}
		if v.Record.CompletedVersion == 0 {
			state = "never completed"
		}
		p.row("Completed version", fmt.Sprintf("%d of %d (%s)", v.Record.CompletedVersion, v.CatalogVersion, state))
		p.row("Steps seen", fmt.Sprintf("%d", len(v.Record.CompletedStepIDs)))
	}
	p.row("Full tour pending", yesNo(v.ShouldShowFullTour))
	p.row("New steps", fmt.Sprintf("%s (%d)", yesNo(v.HasNewSteps), len(v.DeltaSteps)))
	p.Badge(v.Badge)
}

func (p *Printer) row(label, value string) {
	p.println(fmt.Sprintf("  %s %s", p.label.Render(label+":"), value))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Badge prints the features-explored bar and checklist.
func (p *Printer) Badge(b notify.Badge) {
	p.println(fmt.Sprintf("  %s %s %d%% (%d/%d)",
		p.label.Render("Features explored:"), p.bar(b.Percent), b.Percent, b.Used, b.Total))
	for _, f := range b.Features {
		mark := p.muted.Render("·")
		if f.Used {
			mark = p.success.Render("✓")
		}
		p.println(fmt.Sprintf("    %s %s", mark, f.Title))
	}
}

func (p *Printer) bar(percent int) string {
	filled := percent * barWidth / 100
	filled = max(0, min(filled, barWidth))
	return p.success.Render(strings.Repeat("█", filled)) + p.muted.Render(strings.Repeat("░", barWidth-filled))
}

// Prompt prints the "what's new" notice. Nothing is printed when the prompt
// should not be shown.
func (p *Printer) Prompt(pr notify.Prompt) {
	if !pr.Show {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.title.Render("What's new"))
	fmt.Fprintf(&b, "%d new step(s) since version %d:\n", len(pr.NewSteps), pr.FromVersion)
	for _, s := range pr.NewSteps {
		fmt.Fprintf(&b, "  %s %s\n", s.Icon, s.Title)
	}
	b.WriteString(p.muted.Render("Run `stairtour tour --delta` to take the short tour."))
	p.println(p.box.Render(b.String()))
}

// Placement prints the result of a placement computation.
func (p *Printer) Placement(target *placement.Rect, viewport placement.Size, pos placement.Position, spotlight *placement.Rect) {
	p.println(p.title.Render("Tooltip placement"))
	p.row("Viewport", fmt.Sprintf("%gx%g", viewport.Width, viewport.Height))
	if target != nil {
		p.row("Target", formatRect(*target))
	} else {
		p.row("Target", "none")
	}
	p.row("Side", string(pos.Side))
	p.row("Position", fmt.Sprintf("top=%g left=%g", pos.Top, pos.Left))
	if spotlight != nil {
		p.row("Spotlight", formatRect(*spotlight))
	}
}

func formatRect(r placement.Rect) string {
	return fmt.Sprintf("top=%g left=%g width=%g height=%g", r.Top, r.Left, r.Width, r.Height)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/covstat/covstat/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	faint   = lipgloss.Color("#3F3F46")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
	skipped = lipgloss.Color("#4B5563")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipped)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderRun formats a run summary for terminal output.
func RenderRun(summary *domain.RunSummary) string {
	var b strings.Builder

	title := headerStyle.Render("covstat")
	subtitle := dimStyle.Render("Coverage Aggregation")
	where := dimStyle.Render(summary.Root)
	if hash := shortHash(summary.CommitHash); hash != "" {
		where += faintStyle.Render("  @" + hash)
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + where))
	b.WriteString("\n\n")

	if len(summary.Passes) == 0 {
		b.WriteString("  " + dimStyle.Render("No passes selected.") + "\n")
		return b.String()
	}

	for i, pass := range summary.Passes {
		renderPass(&b, pass)
		if i < len(summary.Passes)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n  " + separatorLine + "\n\n")
	if summary.Clean() {
		b.WriteString("  " + passStyle.Render("All tools aggregated cleanly.") + "\n")
	} else {
		b.WriteString("  " + warnStyle.Render("Some results are incomplete, see log for details.") + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func renderPass(b *strings.Builder, pass domain.PassResult) {
	heading := Heading(pass.Category, pass.Filter)
	b.WriteString("  " + titleStyle.Render(heading))
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf("%dms", pass.DurationMS)))
	b.WriteString("\n")

	if pass.Error != "" {
		b.WriteString("    " + failStyle.Render("✗ "+pass.Error) + "\n")
	}

	if len(pass.Results) > 0 {
		b.WriteString("    " + dimStyle.Render(padRight("", 14)+strings.Join(padAll(pass.Columns, 12), "")) + "\n")
	}
	for _, r := range pass.Results {
		b.WriteString("    " + statusGlyph(r.Status) + " " + padRight(r.Name, 12))
		for _, v := range r.Columns {
			b.WriteString(renderValue(v))
		}
		if r.Error != "" && r.Status != domain.StatusDegraded {
			b.WriteString("  " + faintStyle.Render(r.Error))
		}
		b.WriteString("\n")
	}

	if pass.Footer != nil {
		b.WriteString("      " + padRight(pass.Footer.Name, 12) + renderValue(pass.Footer.Value) + "\n")
	}
	if pass.Artifact != "" {
		b.WriteString("    " + dimStyle.Render("→ "+pass.Artifact) + "\n")
	}
	if counts := renderCounts(pass); counts != "" {
		b.WriteString("    " + counts + "\n")
	}
}

// Heading turns a category token into words, e.g. "ActionCoverage" with
// filter "InverseCoverage" becomes "Action Coverage (Inverse Coverage)".
func Heading(cat domain.Category, filter domain.TypeFilter) string {
	h := strings.Join(camelcase.Split(string(cat)), " ")
	if filter != "" {
		h += " (" + strings.Join(camelcase.Split(string(filter)), " ") + ")"
	}
	return h
}

func renderCounts(pass domain.PassResult) string {
	counts := pass.CountByStatus()
	var parts []string
	for _, s := range []domain.Status{domain.StatusDegraded, domain.StatusMissing, domain.StatusFailed} {
		if n := counts[s]; n > 0 {
			parts = append(parts, statusStyle(s).Render(fmt.Sprintf("%d %s", n, cases.Title(language.English).String(string(s)))))
		}
	}
	return strings.Join(parts, "  ")
}

func renderValue(v domain.Number) string {
	if !v.IsFinite() {
		return warnStyle.Render(padRight(fmt.Sprint(float64(v)), 12))
	}
	return padRight(fmt.Sprintf("%.4f", float64(v)), 12)
}

func statusGlyph(s domain.Status) string {
	switch s {
	case domain.StatusOK:
		return passStyle.Render("✓")
	case domain.StatusDegraded:
		return warnStyle.Render("~")
	case domain.StatusMissing:
		return skipStyle.Render("○")
	default:
		return failStyle.Render("✗")
	}
}

func statusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusDegraded:
		return warnStyle
	case domain.StatusMissing:
		return skipStyle
	case domain.StatusFailed:
		return failStyle
	default:
		return passStyle
	}
}

// RenderDatasets lists the inputs each tool and subject resolves to.
func RenderDatasets(datasets []domain.Dataset) string {
	if len(datasets) == 0 {
		return "  " + dimStyle.Render("Nothing to list.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	var current domain.Category
	for _, d := range datasets {
		if d.Category != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = d.Category
			b.WriteString("  " + titleStyle.Render(Heading(d.Category, "")) + "\n")
			b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n")
		}
		if len(d.Paths) == 0 {
			b.WriteString("    " + skipStyle.Render("○ ") + padRight(d.Name, 12) + dimStyle.Render("not found in "+d.Pattern) + "\n")
			continue
		}
		b.WriteString("    " + passStyle.Render("✓ ") + padRight(d.Name, 12) + d.Paths[0])
		if extra := len(d.Paths) - 1; extra > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  (+%d)", extra)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padAll(ss []string, width int) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = padRight(s, width)
	}
	return out
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := shortHash(e.CommitHash)
		if hash == "" {
			hash = "·······"
		}
		stamp := e.Timestamp
		if len(stamp) > 16 {
			stamp = strings.Replace(stamp[:16], "T", " ", 1)
		}

		state := passStyle.Render("clean")
		if !e.Clean {
			state = warnStyle.Render("incomplete")
		}

		line := fmt.Sprintf("  %s  %s  %d passes  %s",
			dimStyle.Render(stamp),
			faintStyle.Render(hash),
			e.Passes,
			state,
		)
		for _, s := range []domain.Status{domain.StatusDegraded, domain.StatusMissing, domain.StatusFailed} {
			if n := e.Counts[s]; n > 0 {
				line += "  " + statusStyle(s).Render(fmt.Sprintf("%d %s", n, s))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

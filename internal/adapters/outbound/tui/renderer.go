package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abdidvp/stockroom/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
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

	kindColors = map[domain.Kind]lipgloss.Color{
		domain.KindElectronics: lipgloss.Color("#36B9CC"), // teal
		domain.KindGrocery:     warning,
		domain.KindClothing:    lipgloss.Color("#E74A3B"), // brick
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderProducts formats products as a table in the given order. now decides
// which groceries are flagged as expired.
func RenderProducts(products []domain.Product, now time.Time) string {
	if len(products) == 0 {
		return "  " + dimStyle.Render("No products found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s %s %s %s\n",
		titleStyle.Render(padRight("ID", 14)),
		titleStyle.Render(padRight("Name", 24)),
		titleStyle.Render(padRight("Type", 12)),
		titleStyle.Render(padLeft("Price", 10)),
		titleStyle.Render(padLeft("Stock", 7)),
	)
	b.WriteString("  " + separatorLine + "\n")

	for _, p := range products {
		line := fmt.Sprintf("  %s %s %s %s %s",
			padRight(truncate(p.ID(), 14), 14),
			padRight(truncate(p.Name(), 24), 24),
			kindStyle(p.Kind()).Render(padRight(p.Kind().Label(), 12)),
			padLeft(money(p.Price()), 10),
			stockStyle(p.Stock()).Render(padLeft(fmt.Sprintf("%d", p.Stock()), 7)),
		)
		if e, ok := p.(domain.Expirable); ok && e.ExpiredOn(now) {
			line += "  " + errorTagStyle.Render("EXPIRED")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf("%d product(s)", len(products))))
	return b.String()
}

// RenderProduct formats a single product with its variant attributes.
func RenderProduct(p domain.Product, now time.Time) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s\n", titleStyle.Render(p.Name()), kindStyle(p.Kind()).Render(p.Kind().Label()))
	b.WriteString("  " + separatorLine + "\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight(label, 18)), value)
	}
	row("ID", p.ID())
	row("Price", money(p.Price()))
	row("Stock", stockStyle(p.Stock()).Render(fmt.Sprintf("%d", p.Stock())))
	row("Total Value", money(p.TotalValue()))
	for _, a := range p.Attributes() {
		row(AttributeLabel(a.Key), a.Value)
	}
	if e, ok := p.(domain.Expirable); ok {
		if e.ExpiredOn(now) {
			row("Status", errorTagStyle.Render("EXPIRED"))
		} else {
			row("Status", passStyle.Render("fresh"))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// RenderDashboard formats the inventory summary.
func RenderDashboard(r domain.Report, now time.Time) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("stockroom")
	subtitle := dimStyle.Render("Inventory Dashboard")
	value := lipgloss.NewStyle().Bold(true).Foreground(success).Render(money(r.TotalValue))
	count := titleStyle.Render(fmt.Sprintf("%d products", r.TotalProducts))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + count + "  " + value))
	b.WriteString("\n\n")

	// ── Per type ──
	for _, k := range domain.ValidKinds {
		fmt.Fprintf(&b, "  %s %s  %s\n",
			kindStyle(k).Render(padRight(k.Label(), 14)),
			titleStyle.Render(padLeft(fmt.Sprintf("%d", r.CountByKind[k]), 5)),
			dimStyle.Render(money(r.ValueByKind[k])),
		)
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Alerts ──
	if r.ExpiredCount == 0 && len(r.LowStock) == 0 {
		b.WriteString("  " + passStyle.Render("No alerts.") + "\n")
	}
	if r.ExpiredCount > 0 {
		fmt.Fprintf(&b, "  %s %s\n", errorTagStyle.Render("expired"),
			dimStyle.Render(fmt.Sprintf("%d grocery item(s) past expiry, run purge-expired", r.ExpiredCount)))
	}
	for _, p := range r.LowStock {
		fmt.Fprintf(&b, "  %s %s %s\n", warnStyle.Render("low    "),
			padRight(p.ID(), 14), dimStyle.Render(fmt.Sprintf("%s, %d left", p.Name(), p.Stock())))
	}

	// ── Recent ──
	if len(r.Recent) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Recent Products") + "\n")
		b.WriteString(RenderProducts(r.Recent, now))
	}

	return b.String()
}

// RenderHistory formats the save journal for terminal output.
func RenderHistory(entries []domain.SaveEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No save history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Save History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		stamp := e.Timestamp
		if len(stamp) > 10 {
			stamp = stamp[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(stamp),
			faintStyle.Render(hash),
			padLeft(fmt.Sprintf("%d items", e.ProductCount), 10),
			money(e.TotalValue),
		)

		if i > 0 {
			diff := e.TotalValue - entries[i-1].TotalValue
			if diff > 0 {
				line += "  " + passStyle.Render("↑"+money(diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render("↓"+money(-diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// AttributeLabel turns an attribute key such as "WarrantyYears" into
// "Warranty Years".
func AttributeLabel(key string) string {
	return strings.Join(camelcase.Split(key), " ")
}

func kindStyle(k domain.Kind) lipgloss.Style {
	if c, ok := kindColors[k]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(fg)
}

func stockStyle(stock int) lipgloss.Style {
	switch {
	case stock == 0:
		return failStyle
	case stock < domain.DefaultLowStockThreshold:
		return warnStyle
	default:
		return lipgloss.NewStyle().Foreground(fg)
	}
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

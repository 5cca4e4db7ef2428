package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/entrybarrier/internal/config"
	"github.com/lox/entrybarrier/internal/market"
	"github.com/lox/entrybarrier/internal/simulator"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func renderSummary(cfg *config.Config, seed int64, s *simulator.Summary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Entry barrier simulation"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d sessions, %d rounds, %d players, seed %d, sequential entry %t, fixed price %t",
		s.Sessions, s.Rounds, cfg.Players, seed, cfg.Market.SequentialEntry, cfg.Market.FixedPrice)))
	b.WriteString("\n")

	strategies := cfg.Strategies()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("role", "strategy", "mean payoff", "entry rate", "trades", "high quality").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, role := range []market.Role{market.Buyer, market.Incumbent, market.Entrant} {
		rs := s.Roles[role]
		entry, trades, quality := "-", "-", "-"
		if role.IsSeller() {
			entry = percent(rs.EntryRate())
			trades = fmt.Sprint(rs.Trades)
			quality = percent(rs.HighQualityRate())
		}
		t.Row(role.String(), strategies[role], fmt.Sprintf("%.1f", rs.MeanPayoff()), entry, trades, quality)
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("entrant share of trades: %s", percent(s.EntrantShare())))
	return b.String()
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", 100*f)
}

package report

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/sherine-k/jobrecency/pkg/simulation"
)

const reportWidth = 80

// Generator renders feature rows as text
type Generator struct {
	width int
}

// NewGenerator creates a new report generator
func NewGenerator() *Generator {
	return &Generator{
		width: reportWidth,
	}
}

func (g *Generator) header(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")
}

// GenerateSummary summarises how much history the emitted rows could draw on
func (g *Generator) GenerateSummary(rows []simulation.FeatureRow, replayed int) string {
	var sb strings.Builder
	g.header(&sb, "Feature Summary")

	priors := [3]int{}
	users := make(map[int64]struct{})
	var meanSum float64
	for _, row := range rows {
		users[row.User] = struct{}{}
		meanSum += row.Top2Mean
		priors[row.Priors]++
	}

	sb.WriteString(fmt.Sprintf("Jobs Replayed: %d\n", replayed))
	sb.WriteString(fmt.Sprintf("Rows Emitted: %d\n", len(rows)))
	sb.WriteString(fmt.Sprintf("  - Distinct Users: %d\n", len(users)))
	sb.WriteString(fmt.Sprintf("  - Without History: %d\n", priors[0]))
	sb.WriteString(fmt.Sprintf("  - Single Prior: %d\n", priors[1]))
	sb.WriteString(fmt.Sprintf("  - Two Priors: %d\n", priors[2]))
	if len(rows) > 0 {
		sb.WriteString(fmt.Sprintf("  - Mean top2_mean: %.1fs\n", meanSum/float64(len(rows))))
	}

	userIds := maps.Keys(users)
	slices.Sort(userIds)
	if len(userIds) > 0 {
		sb.WriteString(fmt.Sprintf("Users: %v\n", userIds))
	}
	sb.WriteString("\n")

	return sb.String()
}

// GenerateRejected lists the job log rows that could not be parsed
func (g *Generator) GenerateRejected(malformed *multierror.Error) string {
	var sb strings.Builder
	g.header(&sb, "Rejected Records")

	if malformed == nil || len(malformed.Errors) == 0 {
		sb.WriteString("No rejected records!\n")
		return sb.String()
	}

	for _, err := range malformed.Errors {
		sb.WriteString(fmt.Sprintf("%s\n", err))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total Rejected: %d\n", len(malformed.Errors)))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateFeatureTable renders the first limit rows. A limit of zero renders every row.
func (g *Generator) GenerateFeatureTable(rows []simulation.FeatureRow, limit int) string {
	var sb strings.Builder

	title := "Feature Rows"
	if limit > 0 && limit < len(rows) {
		title += fmt.Sprintf(" (showing first %d rows)", limit)
	}
	g.header(&sb, title)

	displayCount := len(rows)
	if limit > 0 && limit < displayCount {
		displayCount = limit
	}

	sb.WriteString(fmt.Sprintf("%6s %-16s %6s %10s %10s %10s %10s %7s\n",
		"index", "submitted (UTC)", "user", "runtime", "top1", "top2", "mean", "state"))
	for i := 0; i < displayCount; i++ {
		row := rows[i]
		sb.WriteString(fmt.Sprintf("%6d %04d-%02d-%02d %02d:00 %6d %10s %10s %10s %10s %7s\n",
			row.SubmissionIndex,
			row.Year, row.Month, row.Day, row.Hour,
			row.User,
			FormatSeconds(row.RunningTime),
			FormatSeconds(row.Top1Time),
			FormatSeconds(row.Top2Time),
			FormatSeconds(int64(row.Top2Mean)),
			shortState(row.State.String())))
	}

	if limit > 0 && limit < len(rows) {
		sb.WriteString(fmt.Sprintf("\n... and %d more rows\n", len(rows)-limit))
	}

	sb.WriteString("\n")

	return sb.String()
}

func shortState(state string) string {
	if len(state) > 7 {
		return state[:7]
	}
	return state
}

// FormatSeconds formats a number of seconds in a human-readable way
func FormatSeconds(s int64) string {
	if s < 60 {
		return fmt.Sprintf("%ds", s)
	}
	if s < 3600 {
		return fmt.Sprintf("%dm%ds", s/60, s%60)
	}
	return fmt.Sprintf("%dh%dm", s/3600, (s/60)%60)
}

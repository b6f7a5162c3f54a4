package report

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"

	"github.com/sherine-k/jobrecency/pkg/config"
	"github.com/sherine-k/jobrecency/pkg/jobs"
	"github.com/sherine-k/jobrecency/pkg/simulation"
)

func testRows() []simulation.FeatureRow {
	records := []jobs.JobRecord{
		{User: 3, TimeLimit: 10, Submit: 1704067200, Start: 1704067200, End: 1704067250, State: jobs.StateCompleted},
		{User: 3, TimeLimit: 10, Submit: 1704067220, Start: 1704067220, End: 1704067260, State: jobs.StateCompleted},
		{User: 1, TimeLimit: 10, Submit: 1704067230, Start: 1704067230, End: 1704067240, State: jobs.StateFailed},
		{User: 3, TimeLimit: 10, Submit: 1704067270, Start: 1704067270, End: 1704067300, State: jobs.StateCompleted},
	}
	return simulation.Replay(records, config.ModeInference)
}

func TestGenerateSummary(t *testing.T) {
	summary := NewGenerator().GenerateSummary(testRows(), 4)
	assert.Contains(t, summary, "Jobs Replayed: 4\n")
	assert.Contains(t, summary, "Rows Emitted: 4\n")
	assert.Contains(t, summary, "  - Distinct Users: 2\n")
	assert.Contains(t, summary, "  - Without History: 3\n")
	assert.Contains(t, summary, "  - Single Prior: 0\n")
	assert.Contains(t, summary, "  - Two Priors: 1\n")
	assert.Contains(t, summary, "Users: [1 3]\n")
}

func TestGenerateSummary_NoRows(t *testing.T) {
	summary := NewGenerator().GenerateSummary(nil, 0)
	assert.Contains(t, summary, "Rows Emitted: 0\n")
	assert.NotContains(t, summary, "Mean")
	assert.Contains(t, summary, "  - Distinct Users: 0\n")
	assert.NotContains(t, summary, "\nUsers: [")
}

func TestGenerateSummary_CountsPriorsNotValues(t *testing.T) {
	records := []jobs.JobRecord{
		{User: 1, TimeLimit: 10, Submit: 100, Start: 100, End: 130, State: jobs.StateCompleted},
		{User: 1, TimeLimit: 10, Submit: 110, Start: 110, End: 140, State: jobs.StateCompleted},
		{User: 1, TimeLimit: 10, Submit: 200, Start: 200, End: 230, State: jobs.StateCompleted},
		// Both priors of this job ran for zero seconds.
		{User: 2, TimeLimit: 10, Submit: 300, Start: 300, End: 300, State: jobs.StateCompleted},
		{User: 2, TimeLimit: 10, Submit: 310, Start: 310, End: 310, State: jobs.StateCompleted},
		{User: 2, TimeLimit: 10, Submit: 320, Start: 320, End: 330, State: jobs.StateCompleted},
	}
	rows := simulation.Replay(records, config.ModeInference)

	summary := NewGenerator().GenerateSummary(rows, len(rows))
	assert.Contains(t, summary, "  - Without History: 3\n")
	assert.Contains(t, summary, "  - Single Prior: 1\n")
	assert.Contains(t, summary, "  - Two Priors: 2\n")
}

func TestGenerateFeatureTable(t *testing.T) {
	g := NewGenerator()

	table := g.GenerateFeatureTable(testRows(), 2)
	assert.Contains(t, table, "Feature Rows (showing first 2 rows)")
	assert.Contains(t, table, "2024-01-01 00:00")
	assert.Contains(t, table, "... and 2 more rows")

	full := g.GenerateFeatureTable(testRows(), 0)
	assert.NotContains(t, full, "more rows")
	assert.Contains(t, full, "COMPLET")
	assert.Contains(t, full, "FAILED")
}

func TestGenerateRejected(t *testing.T) {
	g := NewGenerator()
	assert.Contains(t, g.GenerateRejected(nil), "No rejected records!")

	_, malformed := jobs.Ingest([]jobs.RawRecord{{jobs.ColumnQos: "1"}})
	rejected := g.GenerateRejected(malformed)
	assert.Contains(t, rejected, "row 0: missing column")
	assert.Contains(t, rejected, "Total Rejected: 1")

	assert.Contains(t, g.GenerateRejected(&multierror.Error{}), "No rejected records!")
}

func TestFormatSeconds(t *testing.T) {
	tests := map[string]struct {
		seconds  int64
		expected string
	}{
		"seconds": {seconds: 42, expected: "42s"},
		"minutes": {seconds: 125, expected: "2m5s"},
		"hours":   {seconds: 7260, expected: "2h1m"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatSeconds(tc.seconds))
		})
	}
}

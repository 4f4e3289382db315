package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"titrate/domain/core"
	"titrate/domain/titration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() *titration.Run {
	var c titration.Curve
	c.Append(0, 2.5)
	c.Append(50, 8.75)
	c.Append(75, 13.5)
	return &titration.Run{
		ID:          core.NewRunID(),
		Fingerprint: core.NewHash([]byte("scenario")),
		Scenario:    titration.DefaultScenario(),
		Curve:       c,
		Summary: titration.Summary{
			InitialPH:          2.5,
			EquivalencePH:      8.75,
			FinalPH:            13.5,
			TitrantVolNeededML: 50,
			TitrantMolNeeded:   0.25,
			Stats:              titration.Stats{Points: 3, Discarded: 2, HalfEquivalencePH: 4.77},
		},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestWriteText_FiveLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleRun().Summary))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Initial pH: 2.5", lines[0])
	assert.Equal(t, "pH at Equivalence Point: 8.75", lines[1])
	assert.Equal(t, "Final pH: 13.5", lines[2])
	assert.Equal(t, "Volume of Titrant Needed for Equivalence: 50 mL", lines[3])
	assert.Equal(t, "Amount of Titrant Needed for Equivalence: 0.25 mol", lines[4])
}

func TestMarkdown_IncludesScenarioAndSummary(t *testing.T) {
	run := sampleRun()
	md := string(Markdown(run))

	assert.True(t, strings.HasPrefix(md, "# Weak Acid-Strong Base Titration Curve\n"))
	assert.Contains(t, md, run.ID.String())
	assert.Contains(t, md, "| Ratio | 1:1:1:1 |")
	assert.Contains(t, md, "- Final pH: 13.5")
	assert.Contains(t, md, "- Points: 3 (2 outside pH 0-14 discarded)")
	assert.Contains(t, md, "half equivalence: 4.7700")
}

func TestMarkdown_StrongStrongHasGenericTitle(t *testing.T) {
	run := sampleRun()
	run.Scenario.StrongAnalyte = true
	md := string(Markdown(run))
	assert.True(t, strings.HasPrefix(md, "# Titration Curve\n"))
	assert.NotContains(t, md, "| K |")
}

func TestHTML_CompletePage(t *testing.T) {
	out := string(HTML(sampleRun()))
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "Weak Acid-Strong Base Titration Curve</h1>")
	assert.Contains(t, out, "<li>Initial pH: 2.5</li>")
}

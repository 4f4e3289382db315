// Package report renders the textual summary of a titration run.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"titrate/domain/titration"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteText prints the five summary lines
func WriteText(w io.Writer, s titration.Summary) error {
	_, err := fmt.Fprintf(w,
		"Initial pH: %s\npH at Equivalence Point: %s\nFinal pH: %s\nVolume of Titrant Needed for Equivalence: %s mL\nAmount of Titrant Needed for Equivalence: %s mol\n",
		num(s.InitialPH), num(s.EquivalencePH), num(s.FinalPH), num(s.TitrantVolNeededML), num(s.TitrantMolNeeded))
	return err
}

// Text returns the five summary lines as a string
func Text(s titration.Summary) string {
	var buf bytes.Buffer
	_ = WriteText(&buf, s)
	return buf.String()
}

// Markdown renders a run as a Markdown document: scenario, summary and curve statistics
func Markdown(run *titration.Run) []byte {
	var b bytes.Buffer
	sc := run.Scenario
	sum := run.Summary
	st := sum.Stats

	title := run.Chart().Title
	if title == "" {
		title = "Titration Curve"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Run `%s` (scenario `%s`), %s.\n\n", run.ID, run.Fingerprint.Short(), run.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Scenario\n\n")
	b.WriteString("| Parameter | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Type | %s |\n", sc.Type().Label())
	fmt.Fprintf(&b, "| Analyte kind | %s |\n", sc.Kind)
	fmt.Fprintf(&b, "| Ratio | %s |\n", sc.Ratio)
	fmt.Fprintf(&b, "| Analyte | %s M, %s %s |\n", num(sc.CAnalyte), num(sc.VAnalyte), sc.Unit)
	fmt.Fprintf(&b, "| Titrant | %s M |\n", num(sc.CTitrant))
	fmt.Fprintf(&b, "| Sweep | %s to %s %s by %s |\n", num(sc.InitialVol), num(sc.FinalVol), sc.Unit, num(sc.Increment))
	if !sc.Type().IsWeakWeak() && !(sc.StrongAnalyte && sc.StrongTitrant) {
		fmt.Fprintf(&b, "| K | %s |\n", num(sc.K))
	}

	b.WriteString("\n## Summary\n\n")
	for _, line := range bytes.Split(bytes.TrimRight([]byte(Text(sum)), "\n"), []byte("\n")) {
		fmt.Fprintf(&b, "- %s\n", line)
	}

	b.WriteString("\n## Curve\n\n")
	fmt.Fprintf(&b, "- Points: %d (%d outside pH %s-%s discarded)\n", st.Points, st.Discarded, num(titration.MinPH), num(titration.MaxPH))
	fmt.Fprintf(&b, "- Mean pH: %.4f, median %.4f\n", st.MeanPH, st.MedianPH)
	fmt.Fprintf(&b, "- Range: %.4f to %.4f\n", st.MinPH, st.MaxPH)
	fmt.Fprintf(&b, "- Steepest rise: %.4f pH per %s at %s %s\n", st.SteepestSlope, sc.Unit, num(st.SteepestVolume), sc.Unit)
	if st.HalfEquivalencePH != 0 {
		fmt.Fprintf(&b, "- pH at half equivalence: %.4f\n", st.HalfEquivalencePH)
	}
	return b.Bytes()
}

// HTML renders the Markdown report as a standalone HTML page
func HTML(run *titration.Run) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Titration run " + run.ID.String(),
	})
	return markdown.ToHTML(Markdown(run), p, r)
}

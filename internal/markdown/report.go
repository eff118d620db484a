// Package markdown renders goal snapshots as a Markdown progress report and
// converts reports to standalone HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/templui/goalgraph/internal/service"
)

// Report writes snapshots as Markdown with YAML front matter.
func Report(title string, snapshots []service.GoalSnapshot, generatedAt time.Time) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "---\ntitle: %q\ngenerated_at: %q\ngoals: %d\n---\n\n", title, generatedAt.UTC().Format(time.RFC3339), len(snapshots))
	fmt.Fprintf(&b, "# %s\n\n", escapeText(title))

	if len(snapshots) == 0 {
		b.WriteString("No goals.\n")
		return b.Bytes()
	}

	b.WriteString("| Goal | Owner | Tasks | Progress |\n")
	b.WriteString("| --- | --- | ---: | ---: |\n")
	for _, g := range snapshots {
		owner := g.OwnerName
		if owner == "" {
			owner = g.OwnerID
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", escapeCell(g.Name), escapeCell(owner), len(g.Tasks), percent(g.Progress))
	}

	for _, g := range snapshots {
		fmt.Fprintf(&b, "\n## %s\n\n", escapeText(g.Name))
		if len(g.Tasks) == 0 {
			b.WriteString("No tasks.\n")
			continue
		}

		b.WriteString("| Task | Start | Target | Current | Progress |\n")
		b.WriteString("| --- | ---: | ---: | ---: | ---: |\n")
		for _, t := range g.Tasks {
			fmt.Fprintf(&b, "| %s | %g | %g | %g | %s |\n",
				escapeCell(t.Name), t.StartingValue, t.TargetValue, t.CurrentValue, percent(t.Progress))
		}
	}

	return b.Bytes()
}

// HTML renders a report produced by Report as a complete HTML document,
// taking the page title from the front matter.
func HTML(report []byte) ([]byte, error) {
	body, meta, err := NewParser().ParseWithFrontmatter(report)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	title, _ := meta["title"].(string)
	if title == "" {
		title = "Goals"
	}

	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.Write(body)
	b.WriteString("</body>\n</html>\n")
	return b.Bytes(), nil
}

func percent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`,
	"[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;",
)

// escapeText keeps user-supplied names from being read as Markdown or HTML.
func escapeText(s string) string {
	return textEscaper.Replace(strings.Join(strings.Fields(s), " "))
}

func escapeCell(s string) string {
	return strings.ReplaceAll(escapeText(s), "|", `\|`)
}

package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/templui/goalgraph/internal/service"
)

var generatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sampleSnapshots() []service.GoalSnapshot {
	return []service.GoalSnapshot{
		{
			ID: 1, OwnerID: "owner-1", OwnerName: "Ada Lovelace", Name: "Read | more", Progress: 0.5,
			Tasks: []service.TaskSummary{
				{ID: 1, Name: "Book_1", StartingValue: 0, TargetValue: 100, CurrentValue: 50, Progress: 0.5},
			},
		},
		{ID: 2, OwnerID: "owner-1", Name: "Run", Tasks: []service.TaskSummary{}},
	}
}

func TestReport(t *testing.T) {
	report := string(Report("Weekly goals", sampleSnapshots(), generatedAt))

	for _, want := range []string{
		`title: "Weekly goals"`,
		`generated_at: "2024-05-01T12:00:00Z"`,
		`| Read \| more | Ada Lovelace | 1 | 50% |`,
		`| Run | owner-1 | 0 | 0% |`,
		`| Book\_1 | 0 | 100 | 50 | 50% |`,
		"## Run\n\nNo tasks.",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	empty := string(Report("Empty", nil, generatedAt))
	if !strings.Contains(empty, "No goals.") {
		t.Errorf("empty report missing placeholder:\n%s", empty)
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML(Report("Weekly <goals>", sampleSnapshots(), generatedAt))
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	doc := string(out)

	for _, want := range []string{
		"<title>Weekly &lt;goals&gt;</title>",
		"<table>",
		"<td>Book_1</td>",
		`<h2 id="run">Run</h2>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("html missing %q:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "generated_at") {
		t.Error("front matter leaked into the body")
	}
}

func TestParseWithFrontmatter(t *testing.T) {
	body, meta, err := NewParser().ParseWithFrontmatter([]byte("---\ntitle: Hi\n---\n\n**bold**\n"))
	if err != nil {
		t.Fatalf("ParseWithFrontmatter failed: %v", err)
	}
	if meta["title"] != "Hi" {
		t.Errorf("title = %v", meta["title"])
	}
	if !strings.Contains(string(body), "<strong>bold</strong>") {
		t.Errorf("unexpected body: %s", body)
	}
}

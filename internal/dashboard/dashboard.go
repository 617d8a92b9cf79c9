package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"sales-insights-go/internal/dataset"
	"sales-insights-go/internal/insights"
)

// Palette is the chart color scheme of one dashboard variant.
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Tertiary   string `json:"tertiary"`
	Quaternary string `json:"quaternary"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Variant configures the styling and optional charts of the dashboard. The
// variants replace what used to be three copy-pasted versions of the same
// page.
type Variant struct {
	Name             string
	Palette          Palette
	ShowDetailedCard bool
	ShowRadar        bool
	ShowLeadCities   bool
}

var variants = map[string]Variant{
	"classic": {
		Name:    "classic",
		Palette: Palette{Primary: "#3498db", Secondary: "#2ecc71", Tertiary: "#e74c3c", Quaternary: "#f39c12", Background: "#ffffff", Text: "#000000"},
	},
	"mono": {
		Name:    "mono",
		Palette: Palette{Primary: "#111111", Secondary: "#444444", Tertiary: "#777777", Quaternary: "#aaaaaa", Background: "#ffffff", Text: "#000000"},
	},
	"extended": {
		Name:             "extended",
		Palette:          Palette{Primary: "#3498db", Secondary: "#2ecc71", Tertiary: "#e74c3c", Quaternary: "#f39c12", Background: "#ffffff", Text: "#000000"},
		ShowDetailedCard: true,
		ShowRadar:        true,
		ShowLeadCities:   true,
	},
}

// VariantByName resolves a DASHBOARD_VARIANT value; unknown names fall back
// to classic.
func VariantByName(name string) Variant {
	if v, ok := variants[name]; ok {
		return v
	}
	return variants["classic"]
}

// PageData is everything the dashboard template needs for one render.
type PageData struct {
	Variant    Variant
	Overview   dataset.Overview
	Highlights []insights.Highlight
	LoadError  string
}

// Cards returns the score cards the variant shows; the Detailed Call Score
// card is an extended-variant extra.
func (d PageData) Cards() []dataset.ScoreCard {
	if d.Variant.ShowDetailedCard {
		return d.Overview.Cards
	}
	out := make([]dataset.ScoreCard, 0, len(d.Overview.Cards))
	for _, c := range d.Overview.Cards {
		if c.Name == "Detailed Call Score" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Render writes the dashboard HTML for one snapshot.
func Render(w io.Writer, data PageData) error {
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

func jsonify(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal chart data: %w", err)
	}
	return template.JS(b), nil
}

var page = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"json": jsonify,
}).Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Sales Dashboard</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>
  body { font-family: system-ui, sans-serif; margin: 0; background: {{.Variant.Palette.Background}}; color: {{.Variant.Palette.Text}}; }
  header { padding: 16px 24px; border-bottom: 1px solid #e5e5e5; }
  main { padding: 24px; max-width: 1100px; margin: 0 auto; }
  .cards { display: flex; gap: 16px; flex-wrap: wrap; }
  .card { border: 1px solid #e5e5e5; border-radius: 8px; padding: 16px; flex: 1 1 180px; background: #fff; }
  .card-title { margin: 0 0 8px; font-size: 13px; color: #666; }
  .metric { margin: 0; font-size: 28px; font-weight: 600; }
  .charts { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; margin-top: 24px; }
  .chart { border: 1px solid #e5e5e5; border-radius: 8px; padding: 16px; background: #fff; }
  .warn { color: #b45309; }
  .error { color: #b91c1c; }
  .highlight { border-left: 3px solid {{.Variant.Palette.Primary}}; padding: 8px 12px; margin-top: 12px; background: #fafafa; }
</style>
</head>
<body>
<header>
  <h1>Sales Dashboard Overview</h1>
  <p>{{.Overview.TotalRecords}} calls across {{.Overview.TotalFolders}} salespeople
  {{- if .Overview.WarningCount}} <span class="warn">({{.Overview.WarningCount}} files skipped)</span>{{end}}</p>
  {{if .LoadError}}<p class="error">Data load failed: {{.LoadError}}</p>{{end}}
</header>
<main>
  <div class="cards">
  {{range .Cards}}
    <div class="card"><p class="card-title">Avg {{.Name}}</p><p class="metric">{{.Display}}</p></div>
  {{end}}
  </div>

  {{range .Highlights}}
  <div class="highlight"><strong>{{.Insight}}</strong><br>{{.Action}} &mdash; {{.Impact}}</div>
  {{end}}

  <div class="charts">
    <div class="chart"><canvas id="bant"></canvas></div>
    <div class="chart"><canvas id="intent"></canvas></div>
    <div class="chart"><canvas id="pie"></canvas></div>
    <div class="chart"><canvas id="timeline"></canvas></div>
    {{if .Variant.ShowRadar}}<div class="chart"><canvas id="radar"></canvas></div>{{end}}
    {{if .Variant.ShowLeadCities}}<div class="chart"><canvas id="cities"></canvas></div>{{end}}
  </div>
</main>
<script>
const palette = {{json .Variant.Palette}};
const overview = {{json .Overview}};

function bars(id, title, buckets, color) {
  new Chart(document.getElementById(id), {
    type: "bar",
    data: {
      labels: buckets.map(b => b.value),
      datasets: [{ label: title, data: buckets.map(b => b.count), backgroundColor: color }]
    },
    options: { plugins: { title: { display: true, text: title } } }
  });
}

bars("bant", "BANT Score Distribution", overview.distributions["BANT Score"] || [], palette.primary);
bars("intent", "Call Intent Score Distribution", overview.distributions["Call Intent Score"] || [], palette.secondary);

const shareNames = Object.keys(overview.average_shares || {});
new Chart(document.getElementById("pie"), {
  type: "pie",
  data: {
    labels: shareNames,
    datasets: [{
      data: shareNames.map(n => overview.average_shares[n]),
      backgroundColor: [palette.primary, palette.secondary, palette.tertiary, palette.quaternary]
    }]
  },
  options: { plugins: { title: { display: true, text: "Average Score Distribution" } } }
});

new Chart(document.getElementById("timeline"), {
  type: "scatter",
  data: {
    datasets: [{
      label: "Sentiment Analysis Over Time",
      data: (overview.sentiment_over_time || []).map(p => ({x: p.date, y: p.score})),
      backgroundColor: palette.primary
    }]
  },
  options: { scales: { x: { type: "category" } }, plugins: { title: { display: true, text: "Sentiment Analysis Over Time" } } }
});

{{if .Variant.ShowRadar}}
const radarNames = Object.keys(overview.radar_means || {});
new Chart(document.getElementById("radar"), {
  type: "radar",
  data: {
    labels: radarNames,
    datasets: [{ label: "Average Scores", data: radarNames.map(n => overview.radar_means[n]), borderColor: palette.primary }]
  }
});
{{end}}

{{if .Variant.ShowLeadCities}}
bars("cities", "Leads by City", overview.lead_cities || [], palette.quaternary);
{{end}}
</script>
</body>
</html>
`

package html

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/kubev2v/qpcr-planner/internal/calculator"
	"github.com/kubev2v/qpcr-planner/internal/service/report/types"
)

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("report").Parse(htmlReportTemplate)),
	}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatHTML
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	if err := data.CheckVolumes(); err != nil {
		return nil, err
	}

	cfg := data.Configuration

	solutions := make([]types.VolumeRow, 0, len(data.Solutions))
	for _, s := range data.Solutions {
		solutions = append(solutions, volumeRow(s.Target, calculator.MasterMix(s.WorkingSolution)))
	}

	templateData := types.ReportTemplateData{
		GeneratedDate:   data.Timestamps.Generated,
		GeneratedTime:   data.Timestamps.GeneratedTime,
		Targets:         len(data.Solutions),
		Groups:          strings.Join(cfg.Samples.Groups, ", "),
		Repeat:          cfg.Samples.Repeat,
		TotalReactions:  data.Result.TotalReactions,
		ForwardPrimer:   fmt.Sprintf("%s (%g µM)", cfg.Primers.Forward.Name, cfg.Primers.Forward.Concentration),
		ReversePrimer:   fmt.Sprintf("%s (%g µM)", cfg.Primers.Reverse.Name, cfg.Primers.Reverse.Concentration),
		Solutions:       solutions,
		MasterMix:       volumeRow("Master mix", data.Result.MasterMix),
		TotalCDNAVolume: calculator.FormatVolume(data.Result.TotalCDNAVolume),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, templateData); err != nil {
		return nil, fmt.Errorf("failed to execute HTML template: %w", err)
	}

	return buf.Bytes(), nil
}

func volumeRow(name string, m calculator.MasterMix) types.VolumeRow {
	return types.VolumeRow{
		Name:          name,
		Mix:           calculator.FormatVolume(m.Mix),
		ForwardPrimer: calculator.FormatVolume(m.ForwardPrimer),
		ReversePrimer: calculator.FormatVolume(m.ReversePrimer),
		Water:         calculator.FormatVolume(m.Water),
		TotalVolume:   calculator.FormatVolume(m.TotalVolume),
	}
}

const reportCSS = `
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #1f2933; }
h1 { font-size: 1.6rem; margin-bottom: 0.2rem; }
.generated { color: #616e7c; margin-bottom: 2rem; }
.cards { display: flex; gap: 1rem; margin-bottom: 2rem; }
.card { border: 1px solid #d9e2ec; border-radius: 6px; padding: 1rem 1.5rem; min-width: 10rem; }
.card .value { font-size: 1.5rem; font-weight: 600; }
table { border-collapse: collapse; margin-bottom: 2rem; min-width: 40rem; }
th, td { border: 1px solid #d9e2ec; padding: 0.4rem 0.8rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
th { background: #f0f4f8; }
tr.total td { font-weight: 600; }
`

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>qPCR Reagent Plan</title>
<style>` + reportCSS + `</style>
</head>
<body>
<h1>qPCR Reagent Plan</h1>
<div class="generated">Generated {{.GeneratedDate}} at {{.GeneratedTime}}</div>

<div class="cards">
  <div class="card"><div>Total reactions</div><div class="value">{{.TotalReactions}}</div></div>
  <div class="card"><div>Targets</div><div class="value">{{.Targets}}</div></div>
  <div class="card"><div>Repeat</div><div class="value">{{.Repeat}}</div></div>
  <div class="card"><div>cDNA</div><div class="value">{{.TotalCDNAVolume}}</div></div>
</div>

<h2>Design</h2>
<table>
  <tr><td>Groups</td><td>{{.Groups}}</td></tr>
  <tr><td>Forward primer</td><td>{{.ForwardPrimer}}</td></tr>
  <tr><td>Reverse primer</td><td>{{.ReversePrimer}}</td></tr>
</table>

<h2>Working solutions</h2>
<table>
  <tr><th>Target</th><th>Mix</th><th>Forward primer</th><th>Reverse primer</th><th>Water</th><th>Total</th></tr>
{{- range .Solutions}}
  <tr><td>{{.Name}}</td><td>{{.Mix}}</td><td>{{.ForwardPrimer}}</td><td>{{.ReversePrimer}}</td><td>{{.Water}}</td><td>{{.TotalVolume}}</td></tr>
{{- else}}
  <tr><td colspan="6">No targets</td></tr>
{{- end}}
</table>

<h2>Master mix</h2>
<table>
  <tr><th></th><th>Mix</th><th>Forward primer</th><th>Reverse primer</th><th>Water</th><th>Total</th></tr>
  <tr class="total"><td>{{.MasterMix.Name}}</td><td>{{.MasterMix.Mix}}</td><td>{{.MasterMix.ForwardPrimer}}</td><td>{{.MasterMix.ReversePrimer}}</td><td>{{.MasterMix.Water}}</td><td>{{.MasterMix.TotalVolume}}</td></tr>
</table>
</body>
</html>
`

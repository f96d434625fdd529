package drift

import (
	"fmt"
	"html/template"
	"os"

	"github.com/mkrogh/energy-mlops-go/internal/models"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
	<title>Drift Analysis Report</title>
	<style>
		body { font-family: Arial, sans-serif; margin: 40px; background-color: #f5f5f5; }
		h1 { color: #333; }
		h2 { color: #666; margin-top: 30px; }
		table { border-collapse: collapse; width: 100%; margin: 20px 0; background-color: white; }
		th, td { border: 1px solid #ddd; padding: 10px; text-align: left; }
		th { background-color: #4CAF50; color: white; }
		tr:nth-child(even) { background-color: #f2f2f2; }
		.alert { padding: 15px; margin: 20px 0; border-left: 5px solid #ffc107; background-color: #fff3cd; }
		.drifted { color: #c0392b; font-weight: bold; }
	</style>
</head>
<body>
	<h1>Model Drift Analysis Report</h1>
	<p><strong>Generated:</strong> {{.GeneratedAt}}</p>
	<p>Reference window: {{.ReferenceRows}} rows. Production window: {{.ProductionRows}} rows.</p>

	<div class="alert">
		<strong>Summary:</strong> Detected drift in {{.DriftedFeatures}} out of {{len .Features}} features.
	</div>

	<h2>1. Data Drift</h2>
	<table>
		<tr><th>Feature</th><th>Ref Mean</th><th>Prod Mean</th><th>Mean Change %</th><th>Std Change %</th><th>KS</th><th>Drift</th></tr>
		{{range .Features}}
		<tr>
			<td>{{.Feature}}</td>
			<td>{{printf "%.3f" .RefMean}}</td>
			<td>{{printf "%.3f" .ProdMean}}</td>
			<td>{{printf "%.2f" .MeanChangePct}}</td>
			<td>{{printf "%.2f" .StdChangePct}}</td>
			<td>{{printf "%.3f" .KSStatistic}}</td>
			<td>{{if .DriftDetected}}<span class="drifted">yes</span>{{else}}no{{end}}</td>
		</tr>
		{{end}}
	</table>

	<h2>2. Prediction Drift</h2>
	{{if .Models}}
	<table>
		<tr><th>Model</th><th>Ref RMSE</th><th>Prod RMSE</th><th>RMSE Change %</th><th>Ref MAE</th><th>Prod MAE</th><th>Ref R²</th><th>Prod R²</th><th>Degraded</th></tr>
		{{range .Models}}
		<tr>
			<td>{{.Model}}</td>
			<td>{{printf "%.3f" .RefRMSE}}</td>
			<td>{{printf "%.3f" .ProdRMSE}}</td>
			<td>{{printf "%.2f" .RMSEChangePct}}</td>
			<td>{{printf "%.3f" .RefMAE}}</td>
			<td>{{printf "%.3f" .ProdMAE}}</td>
			<td>{{printf "%.3f" .RefR2}}</td>
			<td>{{printf "%.3f" .ProdR2}}</td>
			<td>{{if .Degraded}}<span class="drifted">yes</span>{{else}}no{{end}}</td>
		</tr>
		{{end}}
	</table>
	{{else}}
	<p>No registered models available for prediction drift.</p>
	{{end}}

	<h2>3. Recommendations</h2>
	<ul>
		<li>Investigate features with more than {{printf "%.0f" .FeatureThreshold}}% mean change.</li>
		<li>Retrain models with more than {{printf "%.0f" .ModelThreshold}}% RMSE degradation.</li>
	</ul>
</body>
</html>
`))

type reportData struct {
	*models.DriftReport
	FeatureThreshold float64
	ModelThreshold   float64
}

// WriteHTMLReport renders the drift report to an HTML file
func WriteHTMLReport(report *models.DriftReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	data := reportData{
		DriftReport:      report,
		FeatureThreshold: FeatureDriftThresholdPct,
		ModelThreshold:   ModelDriftThresholdPct,
	}
	if err := reportTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	return nil
}

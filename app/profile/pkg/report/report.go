// Package report 把看板渲染成可离线查看的静态 HTML 报告
package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"github.com/iWorld-y/customer_profile/app/profile/internal/view"
)

const htmlTpl = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Dashboard.Selection.Entity}} | Customer Profile</title>
    <style>
        :root {
            --primary-color: #2563eb;
            --bg-color: #f8fafc;
            --card-bg: #ffffff;
            --text-main: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
            --accent-red: #ef4444;
            --accent-green: #22c55e;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 1100px; margin: 0 auto; }
        .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; }
        .card { background: var(--card-bg); border: 1px solid var(--border-color); border-radius: 8px; padding: 16px; }
        .meta { color: var(--text-secondary); font-size: 0.9em; }
        table { border-collapse: collapse; width: 100%; font-size: 0.9em; }
        th, td { text-align: left; padding: 4px 8px; border-bottom: 1px solid var(--border-color); }
        .bar { background: var(--primary-color); height: 10px; border-radius: 2px; }
        .up { color: var(--accent-green); }
        .down { color: var(--accent-red); }
        .price { font-size: 2em; font-weight: 600; }
        .footer { margin-top: 24px; text-align: center; color: var(--text-secondary); font-size: 0.8em; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Dashboard.Selection.Entity}}</h1>
        <p class="meta">Generated {{.Date}}{{if .Dashboard.Selection.Zones}} · zones {{join .Dashboard.Selection.Zones}}{{end}}{{if .Dashboard.Selection.Types}} · types {{join .Dashboard.Selection.Types}}{{end}}</p>

        <div class="grid">
            <div class="card">
                <h3>{{.Dashboard.Indicators.Title}}</h3>
                {{template "table" .Dashboard.Indicators}}
            </div>
            <div class="card">
                <h3>{{.Dashboard.SharePrice.Label}}</h3>
                <div class="price">{{.Dashboard.SharePrice.Value}}</div>
                <div class="{{if ge .Dashboard.SharePrice.Change 0.0}}up{{else}}down{{end}}">{{.Dashboard.SharePrice.Delta}}</div>
            </div>
            <div class="card">
                <h3>{{.Dashboard.Executives.Title}}</h3>
                {{template "table" .Dashboard.Executives}}
            </div>
            <div class="card">
                {{template "bars" .Dashboard.IncomeMix}}
            </div>
            <div class="card">
                {{template "bars" .Dashboard.Regional}}
            </div>
            <div class="card">
                {{template "bars" .Dashboard.ProjectStatus}}
            </div>
        </div>

        <div class="card" style="margin-top:16px">
            <h3>{{.Dashboard.Projects.Title}}</h3>
            {{template "table" .Dashboard.Projects}}
        </div>

        <div class="card" style="margin-top:16px">
            <h3>News</h3>
            {{range .Dashboard.News}}
            <h4>{{.Headline}}</h4>
            <p>{{.Summary}}</p>
            {{else}}
            <p class="meta">No news.</p>
            {{end}}
        </div>

        <div class="footer">
            Generated by Customer Profile
        </div>
    </div>
</body>
</html>

{{define "table"}}<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>{{end}}

{{define "bars"}}<h3>{{.Title}}</h3>
<table>
{{$max := maxY .Points}}{{range .Points}}<tr><td>{{.X}}</td><td style="width:60%"><div class="bar" style="width:{{percent .Y $max}}%"></div></td><td>{{printf "%.2f" .Y}}</td></tr>
{{else}}<tr><td class="meta">No data for the current selection.</td></tr>
{{end}}</table>{{end}}
`

var tpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"join":    join,
	"maxY":    maxY,
	"percent": percent,
}).Parse(htmlTpl))

// Render 渲染报告
func Render(w io.Writer, d view.Dashboard, generatedAt time.Time) error {
	data := struct {
		Date      string
		Dashboard view.Dashboard
	}{
		Date:      generatedAt.Format("2006-01-02 15:04"),
		Dashboard: d,
	}
	return tpl.Execute(w, data)
}

// WriteFile 渲染报告并写入 path
func WriteFile(path string, d view.Dashboard, generatedAt time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, d, generatedAt); err != nil {
		_ = f.Close()
		return fmt.Errorf("render report: %w", err)
	}
	return f.Close()
}

func join(values []string) string {
	return strings.Join(values, ", ")
}

func maxY(points []view.Point) float64 {
	m := 0.0
	for _, p := range points {
		if p.Y > m {
			m = p.Y
		}
	}
	return m
}

// percent 柱宽，最大值对应 100
func percent(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return v / max * 100
}

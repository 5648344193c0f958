// Package view turns filtered dataset subsets into render payloads.
// Payloads carry data only; layout and chart drawing belong to the renderer.
package view

// ChartKind 图表类型提示
type ChartKind string

const (
	ChartArc  ChartKind = "arc"
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

// MetricCard 单值指标卡片
type MetricCard struct {
	Label  string  `json:"label"`
	Value  string  `json:"value"`
	Delta  string  `json:"delta"`
	Raw    float64 `json:"raw"`
	Change float64 `json:"change"`
}

// Table 表格
type Table struct {
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Point 图表数据点 (x, y, series)
type Point struct {
	X      string  `json:"x"`
	Y      float64 `json:"y"`
	Series string  `json:"series"`
}

// Chart 图表
type Chart struct {
	Title  string    `json:"title"`
	Kind   ChartKind `json:"kind"`
	XTitle string    `json:"x_title"`
	YTitle string    `json:"y_title"`
	Points []Point   `json:"points"`
}

// NewsBlock 新闻块
type NewsBlock struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
}

// Facets 多选框的可选值
type Facets struct {
	Zones []string `json:"zones"`
	Types []string `json:"types"`
}

// SelectionView 当前选择
type SelectionView struct {
	Entity string   `json:"entity"`
	Zones  []string `json:"zones"`
	Types  []string `json:"types"`
}

// Dashboard 完整看板
type Dashboard struct {
	Entities      []string      `json:"entities"`
	Selection     SelectionView `json:"selection"`
	Facets        Facets        `json:"facets"`
	Indicators    Table         `json:"indicators"`
	SharePrice    MetricCard    `json:"share_price"`
	IncomeMix     Chart         `json:"income_mix"`
	Executives    Table         `json:"executives"`
	Billing       Chart         `json:"billing"`
	Regional      Chart         `json:"regional"`
	ProjectStatus Chart         `json:"project_status"`
	Projects      Table         `json:"projects"`
	News          []NewsBlock   `json:"news"`
}

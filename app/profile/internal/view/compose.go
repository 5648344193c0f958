package view

import (
	"fmt"
	"strconv"

	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
)

// Compose 根据选择状态筛选数据集并生成看板。
// 某类子记录为空时对应载荷为空序列，不视为错误。
func Compose(ds *domain.Dataset, sel domain.Selection) (Dashboard, error) {
	entity, ok := ds.Entity(sel.Entity)
	if !ok {
		return Dashboard{}, fmt.Errorf("%w %q", domain.ErrUnknownEntity, sel.Entity)
	}

	regional := domain.FilterRegional(ds.Regions, entity.Name, sel.Zones, sel.Types)
	projects := domain.FilterByEntity(ds.Projects, entity.Name)

	return Dashboard{
		Entities:      ds.EntityNames(),
		Selection:     SelectionOf(sel),
		Facets:        FacetsOf(domain.ObservedFacets(ds.Regions, entity.Name)),
		Indicators:    IndicatorsTable(entity),
		SharePrice:    SharePriceCard(entity),
		IncomeMix:     IncomeMixChart(regional),
		Executives:    ExecutivesTable(domain.FilterByEntity(ds.Executives, entity.Name)),
		Billing:       BillingChart(ds.Billing),
		Regional:      RegionalChart(regional),
		ProjectStatus: ProjectStatusChart(domain.AggregateStatusCounts(projects)),
		Projects:      ProjectsTable(projects),
		News:          NewsBlocks(domain.FilterByEntity(ds.News, entity.Name)),
	}, nil
}

// IndicatorsTable 财务指标，去掉公司名和股价列后转置
func IndicatorsTable(e domain.Entity) Table {
	return Table{
		Title:   "Financial indicators",
		Columns: []string{"Indicator", "USD M"},
		Rows: [][]any{
			{"Total revenue", e.Revenue},
			{"EBITDA", e.EBITDA},
			{"Total equity", e.Equity},
			{"Net debt", e.NetDebt},
		},
	}
}

// SharePriceCard 股价卡片
func SharePriceCard(e domain.Entity) MetricCard {
	return MetricCard{
		Label:  "Share price (USD)",
		Value:  "$" + formatNumber(e.SharePrice),
		Delta:  formatNumber(e.SharePriceChange) + "%",
		Raw:    e.SharePrice,
		Change: e.SharePriceChange,
	}
}

func ExecutivesTable(rows []domain.ExecutiveRecord) Table {
	t := Table{Title: "Top executives", Columns: []string{"Executive", "Role"}, Rows: make([][]any, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.Person, r.Role})
	}
	return t
}

func ProjectsTable(rows []domain.ProjectRecord) Table {
	t := Table{Title: "Main projects", Columns: []string{"Project", "Status"}, Rows: make([][]any, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.Project, string(r.Status)})
	}
	return t
}

// BillingChart 12 个月账单折线图，每家公司一条线
func BillingChart(points []domain.TimeSeriesPoint) Chart {
	c := Chart{
		Title:  "Billing, last 12 months",
		Kind:   ChartLine,
		XTitle: "Month",
		YTitle: "Billing - USD M",
		Points: make([]Point, 0, len(points)),
	}
	for _, p := range points {
		c.Points = append(c.Points, Point{X: p.Month, Y: p.Billing, Series: p.Entity})
	}
	return c
}

// RegionalChart 按区域编号的收入柱状图
func RegionalChart(rows []domain.RegionalIncomeRecord) Chart {
	c := Chart{
		Title:  "Income by region, zone and type",
		Kind:   ChartBar,
		XTitle: "Region number",
		YTitle: "Income in USD M",
		Points: make([]Point, 0, len(rows)),
	}
	for _, r := range rows {
		c.Points = append(c.Points, Point{X: strconv.Itoa(r.Region), Y: r.Income, Series: r.Entity})
	}
	return c
}

// IncomeMixChart 收入类型占比，按首次出现顺序
func IncomeMixChart(rows []domain.RegionalIncomeRecord) Chart {
	c := Chart{Title: "Income mix by type", Kind: ChartArc, XTitle: "Type", YTitle: "Income in USD M", Points: []Point{}}
	index := make(map[domain.IncomeType]int)
	for _, r := range rows {
		i, ok := index[r.Type]
		if !ok {
			i = len(c.Points)
			index[r.Type] = i
			c.Points = append(c.Points, Point{X: string(r.Type), Series: string(r.Type)})
		}
		c.Points[i].Y += r.Income
	}
	return c
}

func ProjectStatusChart(counts []domain.StatusCount) Chart {
	c := Chart{
		Title:  "# Projects by status",
		Kind:   ChartBar,
		XTitle: "Status",
		YTitle: "No. of projects",
		Points: make([]Point, 0, len(counts)),
	}
	for _, sc := range counts {
		c.Points = append(c.Points, Point{X: string(sc.Status), Y: float64(sc.Count), Series: string(sc.Status)})
	}
	return c
}

func NewsBlocks(rows []domain.NewsRecord) []NewsBlock {
	out := make([]NewsBlock, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewsBlock{Headline: r.Headline, Summary: r.Summary})
	}
	return out
}

func SelectionOf(sel domain.Selection) SelectionView {
	v := SelectionView{Entity: sel.Entity, Zones: make([]string, 0, len(sel.Zones)), Types: make([]string, 0, len(sel.Types))}
	for _, z := range sel.Zones {
		v.Zones = append(v.Zones, string(z))
	}
	for _, t := range sel.Types {
		v.Types = append(v.Types, string(t))
	}
	return v
}

// FacetsOf 可选值转为字符串
func FacetsOf(f domain.Facets) Facets {
	v := Facets{Zones: make([]string, 0, len(f.Zones)), Types: make([]string, 0, len(f.Types))}
	for _, z := range f.Zones {
		v.Zones = append(v.Zones, string(z))
	}
	for _, t := range f.Types {
		v.Types = append(v.Types, string(t))
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

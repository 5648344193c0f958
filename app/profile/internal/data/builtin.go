package data

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
	"github.com/iWorld-y/customer_profile/app/profile/internal/repo"
)

// builtinProvider 内置示例数据
type builtinProvider struct{}

// NewBuiltinProvider 返回内置示例数据源
func NewBuiltinProvider() repo.DatasetProvider {
	return builtinProvider{}
}

func (builtinProvider) Name() string { return "builtin" }

func (builtinProvider) LoadDataset(context.Context) (*domain.Dataset, error) {
	return SampleDataset(), nil
}

const (
	billingStartMonth = "2023-01"
	billingMonths     = 12
	billingMin        = 50.0
	billingMax        = 150.0
)

// SampleDataset 构造四家科技公司的示例数据。每次调用返回新的副本。
func SampleDataset() *domain.Dataset {
	ds := &domain.Dataset{
		Entities: []domain.Entity{
			{Name: "Apple", Revenue: 365.82, EBITDA: 109.68, Equity: 134.05, NetDebt: 10.03, SharePrice: 145.09, SharePriceChange: 34.5},
			{Name: "Microsoft", Revenue: 168.09, EBITDA: 94.96, Equity: 118.70, NetDebt: 50.24, SharePrice: 299.35, SharePriceChange: 27.6},
			{Name: "Amazon", Revenue: 469.82, EBITDA: 59.23, Equity: 144.47, NetDebt: 57.54, SharePrice: 3524.74, SharePriceChange: 13.4},
			// negative net debt: more cash than debt
			{Name: "Google", Revenue: 257.64, EBITDA: 91.68, Equity: 256.97, NetDebt: -123.45, SharePrice: 2725.60, SharePriceChange: 28.2},
		},
		Executives: []domain.ExecutiveRecord{
			{Entity: "Apple", Person: "Tim Cook", Role: "CEO"},
			{Entity: "Apple", Person: "Luca Maestri", Role: "CFO"},
			{Entity: "Microsoft", Person: "Satya Nadella", Role: "CEO"},
			{Entity: "Microsoft", Person: "Amy Hood", Role: "CFO"},
			{Entity: "Amazon", Person: "Andy Jassy", Role: "CEO"},
			{Entity: "Amazon", Person: "Brian Olsavsky", Role: "CFO"},
			{Entity: "Google", Person: "Sundar Pichai", Role: "CEO"},
			{Entity: "Google", Person: "Ruth Porat", Role: "CFO"},
		},
	}

	projects := map[string][]string{
		"Apple": {
			"Project Titan", "Apple Glasses", "HealthKit Expansion", "Apple Car", "ARKit Enhancements",
			"M1 Chip Development", "iOS 16", "macOS Monterey", "Apple Music Expansion", "HomePod Improvements",
		},
		"Microsoft": {
			"Azure Quantum", "Project xCloud", "Microsoft Mesh", "Windows 11", "Surface Duo 2",
			"HoloLens 3", "Azure AI", "Microsoft Viva", "Power BI Enhancements", "Teams Integration",
		},
		"Amazon": {
			"Amazon Go Expansion", "Project Kuiper", "Amazon Pharmacy", "AWS Graviton", "Alexa for Business",
			"Amazon Scout", "Amazon Fresh", "Prime Air", "Amazon Pay Expansion", "Amazon Luna",
		},
		"Google": {
			"Waymo Self-Driving", "Google Fiber Expansion", "Google Health", "Stadia Enhancements", "DeepMind AI",
			"Google Photos", "Google Workspace", "Pixel Phone Development", "YouTube Premium Expansion", "Google Assistant",
		},
	}
	// statuses rotate planned -> in-progress -> active across the whole project table
	rotation := []domain.ProjectStatus{domain.StatusPlanned, domain.StatusInProgress, domain.StatusActive}
	starts := map[string]int{"Apple": 0, "Microsoft": 2, "Amazon": 0, "Google": 1}

	income := map[string][4]float64{
		"Apple":     {90.0, 110.0, 80.0, 85.82},
		"Microsoft": {45.0, 55.0, 35.0, 33.09},
		"Amazon":    {120.0, 150.0, 100.0, 99.82},
		"Google":    {60.0, 70.0, 50.0, 77.64},
	}
	zones := [4]domain.Zone{domain.ZoneA, domain.ZoneA, domain.ZoneB, domain.ZoneB}
	types := [4]domain.IncomeType{domain.IncomeRegulated, domain.IncomeDedicated, domain.IncomeRegulated, domain.IncomeDedicated}

	news := map[string][3][2]string{
		"Apple": {
			{"Apple launches the new iPhone 14", "The new iPhone 14 brings significant camera and performance improvements."},
			{"Apple announces AI advances", "Apple revealed new artificial intelligence advances that will improve its products."},
			{"Apple Music passes 100 million subscribers", "Apple Music reached an important milestone with more than 100 million subscribers."},
		},
		"Microsoft": {
			{"Microsoft unveils Windows 12", "Microsoft officially announced the launch of Windows 12 with new features."},
			{"Microsoft acquires cybersecurity company", "Microsoft acquired a leading cybersecurity company to strengthen its offering."},
			{"Microsoft Teams adds new features", "Microsoft Teams now includes improved features for remote collaboration."},
		},
		"Amazon": {
			{"Amazon launches drone delivery service", "Amazon started a delivery service using drones in selected areas."},
			{"Amazon Prime Video wins award", "Amazon Prime Video won an award for its high quality original content."},
			{"Amazon opens new logistics center", "Amazon opened a new logistics center to improve its delivery times."},
		},
		"Google": {
			{"Google improves its search engine", "Google implemented significant improvements to its search engine for more accurate results."},
			{"Google releases new Android version", "Google released the new Android version with many improvements and new features."},
			{"Google Cloud expands its services", "Google Cloud expanded its services with more storage and compute options."},
		},
	}

	months := billingMonthLabels(billingStartMonth, billingMonths)
	for _, e := range ds.Entities {
		for i, name := range projects[e.Name] {
			ds.Projects = append(ds.Projects, domain.ProjectRecord{
				Entity:  e.Name,
				Project: name,
				Status:  rotation[(starts[e.Name]+i)%len(rotation)],
			})
		}
		for i, amount := range income[e.Name] {
			ds.Regions = append(ds.Regions, domain.RegionalIncomeRecord{
				Entity: e.Name,
				Region: i + 1,
				Zone:   zones[i],
				Income: amount,
				Type:   types[i],
			})
		}
		for _, n := range news[e.Name] {
			ds.News = append(ds.News, domain.NewsRecord{Entity: e.Name, Headline: n[0], Summary: n[1]})
		}
		ds.Billing = append(ds.Billing, billingSeries(e.Name, months)...)
	}
	return ds
}

// billingSeries 为公司生成确定性的月度账单，取值在 50 到 150 之间
func billingSeries(entity string, months []string) []domain.TimeSeriesPoint {
	h := fnv.New64a()
	_, _ = h.Write([]byte(entity))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	points := make([]domain.TimeSeriesPoint, 0, len(months))
	for _, m := range months {
		v := billingMin + rng.Float64()*(billingMax-billingMin)
		points = append(points, domain.TimeSeriesPoint{
			Entity:  entity,
			Month:   m,
			Billing: math.Round(v*100) / 100,
		})
	}
	return points
}

func billingMonthLabels(start string, n int) []string {
	t, err := time.Parse("2006-01", start)
	if err != nil {
		panic(fmt.Sprintf("bad billing start month %q: %v", start, err))
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, t.AddDate(0, i, 0).Format("2006-01"))
	}
	return out
}

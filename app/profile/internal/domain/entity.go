package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEntity 选择了数据集中不存在的公司
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrInvalidFacet 筛选值不在当前公司的可选范围内
	ErrInvalidFacet = errors.New("invalid facet value")
)

// Zone 区域所属分区
type Zone string

const (
	ZoneA Zone = "A"
	ZoneB Zone = "B"
)

// Zones 分区取值范围，顺序即展示顺序
var Zones = []Zone{ZoneA, ZoneB}

// IncomeType 区域收入类型
type IncomeType string

const (
	IncomeRegulated IncomeType = "regulated"
	IncomeDedicated IncomeType = "dedicated"
)

// IncomeTypes 收入类型取值范围（按字母序）
var IncomeTypes = []IncomeType{IncomeDedicated, IncomeRegulated}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	StatusPlanned    ProjectStatus = "planned"
	StatusInProgress ProjectStatus = "in-progress"
	StatusActive     ProjectStatus = "active"
)

// ParseZone 解析分区
func ParseZone(s string) (Zone, error) {
	for _, z := range Zones {
		if string(z) == s {
			return z, nil
		}
	}
	return "", fmt.Errorf("%w: zone %q", ErrInvalidFacet, s)
}

// ParseIncomeType 解析收入类型
func ParseIncomeType(s string) (IncomeType, error) {
	for _, t := range IncomeTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: type %q", ErrInvalidFacet, s)
}

// ParseProjectStatus 解析项目状态
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch ProjectStatus(s) {
	case StatusPlanned, StatusInProgress, StatusActive:
		return ProjectStatus(s), nil
	}
	return "", fmt.Errorf("unknown project status %q", s)
}

// Entity 公司财务概况，单位 USD M
type Entity struct {
	Name             string  `yaml:"name"`
	Revenue          float64 `yaml:"revenue"`
	EBITDA           float64 `yaml:"ebitda"`
	Equity           float64 `yaml:"equity"`
	NetDebt          float64 `yaml:"net_debt"`
	SharePrice       float64 `yaml:"share_price"`
	SharePriceChange float64 `yaml:"share_price_change"`
}

// ExecutiveRecord 公司高管
type ExecutiveRecord struct {
	Entity string `yaml:"entity"`
	Person string `yaml:"person"`
	Role   string `yaml:"role"`
}

// ProjectRecord 公司项目
type ProjectRecord struct {
	Entity  string        `yaml:"entity"`
	Project string        `yaml:"project"`
	Status  ProjectStatus `yaml:"status"`
}

// RegionalIncomeRecord 区域收入
type RegionalIncomeRecord struct {
	Entity string     `yaml:"entity"`
	Region int        `yaml:"region"`
	Zone   Zone       `yaml:"zone"`
	Income float64    `yaml:"income"`
	Type   IncomeType `yaml:"type"`
}

// NewsRecord 新闻
type NewsRecord struct {
	Entity   string `yaml:"entity"`
	Headline string `yaml:"headline"`
	Summary  string `yaml:"summary"`
}

// TimeSeriesPoint 月度账单
type TimeSeriesPoint struct {
	Entity  string  `yaml:"entity"`
	Month   string  `yaml:"month"`
	Billing float64 `yaml:"billing"`
}

func (r ExecutiveRecord) EntityID() string      { return r.Entity }
func (r ProjectRecord) EntityID() string        { return r.Entity }
func (r RegionalIncomeRecord) EntityID() string { return r.Entity }
func (r NewsRecord) EntityID() string           { return r.Entity }
func (r TimeSeriesPoint) EntityID() string      { return r.Entity }

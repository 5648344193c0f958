package domain

import (
	"slices"
	"sort"
)

// EntityScoped 归属于某家公司的记录
type EntityScoped interface {
	EntityID() string
}

// FilterByEntity 返回属于 entity 的记录，保持原始顺序。结果永远不为 nil。
func FilterByEntity[T EntityScoped](records []T, entity string) []T {
	out := make([]T, 0)
	for _, r := range records {
		if r.EntityID() == entity {
			out = append(out, r)
		}
	}
	return out
}

// FilterRegional 依次按公司、分区、收入类型筛选区域收入。
// zones 或 types 为空表示该维度不过滤，而不是过滤掉全部。
func FilterRegional(records []RegionalIncomeRecord, entity string, zones []Zone, types []IncomeType) []RegionalIncomeRecord {
	byEntity := FilterByEntity(records, entity)

	byZone := byEntity
	if len(zones) > 0 {
		byZone = make([]RegionalIncomeRecord, 0, len(byEntity))
		for _, r := range byEntity {
			if slices.Contains(zones, r.Zone) {
				byZone = append(byZone, r)
			}
		}
	}

	if len(types) == 0 {
		return byZone
	}
	byType := make([]RegionalIncomeRecord, 0, len(byZone))
	for _, r := range byZone {
		if slices.Contains(types, r.Type) {
			byType = append(byType, r)
		}
	}
	return byType
}

// StatusCount 某一状态的项目数量
type StatusCount struct {
	Status ProjectStatus
	Count  int
}

// AggregateStatusCounts 按状态统计项目数量，分类顺序为数据中首次出现的顺序
func AggregateStatusCounts(projects []ProjectRecord) []StatusCount {
	out := make([]StatusCount, 0)
	index := make(map[ProjectStatus]int)
	for _, p := range projects {
		i, ok := index[p.Status]
		if !ok {
			index[p.Status] = len(out)
			out = append(out, StatusCount{Status: p.Status})
			i = len(out) - 1
		}
		out[i].Count++
	}
	return out
}

// Facets 某公司区域收入中实际出现的分区和类型（排序去重）
type Facets struct {
	Zones []Zone
	Types []IncomeType
}

// ObservedFacets 返回 entity 的可选筛选值
func ObservedFacets(records []RegionalIncomeRecord, entity string) Facets {
	f := Facets{Zones: []Zone{}, Types: []IncomeType{}}
	for _, r := range FilterByEntity(records, entity) {
		if !slices.Contains(f.Zones, r.Zone) {
			f.Zones = append(f.Zones, r.Zone)
		}
		if !slices.Contains(f.Types, r.Type) {
			f.Types = append(f.Types, r.Type)
		}
	}
	sort.Slice(f.Zones, func(i, j int) bool { return f.Zones[i] < f.Zones[j] })
	sort.Slice(f.Types, func(i, j int) bool { return f.Types[i] < f.Types[j] })
	return f
}

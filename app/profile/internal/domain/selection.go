package domain

import (
	"fmt"
	"slices"
)

// Selection 一个看板会话的选择状态
type Selection struct {
	Entity string       `json:"entity"`
	Zones  []Zone       `json:"zones"`
	Types  []IncomeType `json:"types"`
}

// NewSelection 以数据集第一家公司为默认选择
func NewSelection(ds *Dataset) Selection {
	return Selection{Entity: ds.DefaultEntity(), Zones: []Zone{}, Types: []IncomeType{}}
}

// SelectEntity 切换公司，并把已选的分区/类型裁剪到新公司可选的范围内
func (s *Selection) SelectEntity(ds *Dataset, entity string) error {
	if !ds.HasEntity(entity) {
		return fmt.Errorf("%w %q", ErrUnknownEntity, entity)
	}
	s.Entity = entity
	facets := ObservedFacets(ds.Regions, entity)
	s.Zones = intersect(s.Zones, facets.Zones)
	s.Types = intersect(s.Types, facets.Types)
	return nil
}

// SetZones 设置分区筛选，空集合表示不过滤
func (s *Selection) SetZones(ds *Dataset, zones []Zone) error {
	allowed := ObservedFacets(ds.Regions, s.Entity).Zones
	for _, z := range zones {
		if !slices.Contains(allowed, z) {
			return fmt.Errorf("%w: zone %q not available for %s", ErrInvalidFacet, z, s.Entity)
		}
	}
	s.Zones = intersect(allowed, zones)
	return nil
}

// SetTypes 设置收入类型筛选，空集合表示不过滤
func (s *Selection) SetTypes(ds *Dataset, types []IncomeType) error {
	allowed := ObservedFacets(ds.Regions, s.Entity).Types
	for _, t := range types {
		if !slices.Contains(allowed, t) {
			return fmt.Errorf("%w: type %q not available for %s", ErrInvalidFacet, t, s.Entity)
		}
	}
	s.Types = intersect(allowed, types)
	return nil
}

// Clone 深拷贝，避免会话间共享切片
func (s Selection) Clone() Selection {
	return Selection{
		Entity: s.Entity,
		Zones:  append([]Zone{}, s.Zones...),
		Types:  append([]IncomeType{}, s.Types...),
	}
}

// intersect keeps the order of base.
func intersect[T comparable](base, keep []T) []T {
	out := make([]T, 0, len(base))
	for _, v := range base {
		if slices.Contains(keep, v) && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

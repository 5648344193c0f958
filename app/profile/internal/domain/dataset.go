package domain

import (
	"errors"
	"fmt"
)

// Dataset 数据集，加载后只读，可在多个会话间共享
type Dataset struct {
	Entities   []Entity               `yaml:"entities"`
	Executives []ExecutiveRecord      `yaml:"executives"`
	Projects   []ProjectRecord        `yaml:"projects"`
	Regions    []RegionalIncomeRecord `yaml:"regions"`
	News       []NewsRecord           `yaml:"news"`
	Billing    []TimeSeriesPoint      `yaml:"billing"`
}

// EntityNames 按数据集顺序返回公司名称
func (d *Dataset) EntityNames() []string {
	names := make([]string, 0, len(d.Entities))
	for _, e := range d.Entities {
		names = append(names, e.Name)
	}
	return names
}

// DefaultEntity 默认选中第一家公司
func (d *Dataset) DefaultEntity() string {
	if len(d.Entities) == 0 {
		return ""
	}
	return d.Entities[0].Name
}

// Entity 根据名称查找公司
func (d *Dataset) Entity(name string) (Entity, bool) {
	for _, e := range d.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// HasEntity 判断公司是否存在
func (d *Dataset) HasEntity(name string) bool {
	_, ok := d.Entity(name)
	return ok
}

// Validate 校验数据集的引用完整性和取值范围
func (d *Dataset) Validate() error {
	if len(d.Entities) == 0 {
		return errors.New("dataset has no entities")
	}
	known := make(map[string]struct{}, len(d.Entities))
	for _, e := range d.Entities {
		if e.Name == "" {
			return errors.New("entity with empty name")
		}
		if _, dup := known[e.Name]; dup {
			return fmt.Errorf("duplicate entity %q", e.Name)
		}
		known[e.Name] = struct{}{}
	}

	var errs []error
	check := func(table string, i int, entity string) {
		if _, ok := known[entity]; !ok {
			errs = append(errs, fmt.Errorf("%s[%d]: %w %q", table, i, ErrUnknownEntity, entity))
		}
	}
	for i, r := range d.Executives {
		check("executives", i, r.Entity)
	}
	for i, r := range d.Projects {
		check("projects", i, r.Entity)
		if _, err := ParseProjectStatus(string(r.Status)); err != nil {
			errs = append(errs, fmt.Errorf("projects[%d]: %w", i, err))
		}
	}
	for i, r := range d.Regions {
		check("regions", i, r.Entity)
		if _, err := ParseZone(string(r.Zone)); err != nil {
			errs = append(errs, fmt.Errorf("regions[%d]: %w", i, err))
		}
		if _, err := ParseIncomeType(string(r.Type)); err != nil {
			errs = append(errs, fmt.Errorf("regions[%d]: %w", i, err))
		}
	}
	for i, r := range d.News {
		check("news", i, r.Entity)
	}
	for i, r := range d.Billing {
		check("billing", i, r.Entity)
	}
	return errors.Join(errs...)
}

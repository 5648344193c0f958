package usecase

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
	"github.com/iWorld-y/customer_profile/app/profile/internal/repo"
	"github.com/iWorld-y/customer_profile/app/profile/internal/view"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/metrics"
)

// SessionState 会话当前选择及可选值
type SessionState struct {
	ID        string
	Selection domain.Selection
	Facets    domain.Facets
}

// DashboardUseCase 看板业务逻辑：选择变更后重新筛选并组装看板
type DashboardUseCase struct {
	datasets repo.DatasetRepo
	sessions repo.SessionRepo
	metrics  *metrics.Metrics
	log      *log.Helper
}

// NewDashboardUseCase 创建看板业务逻辑实例
func NewDashboardUseCase(datasets repo.DatasetRepo, sessions repo.SessionRepo, m *metrics.Metrics, logger log.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		datasets: datasets,
		sessions: sessions,
		metrics:  m,
		log:      log.NewHelper(logger),
	}
}

// Entities 公司选择器的选项
func (uc *DashboardUseCase) Entities(ctx context.Context) ([]string, error) {
	ds, err := uc.datasets.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.EntityNames(), nil
}

// Compose 无状态组装：entity 为空时使用默认公司
func (uc *DashboardUseCase) Compose(ctx context.Context, entity string, zones, types []string) (view.Dashboard, error) {
	ds, err := uc.datasets.Dataset(ctx)
	if err != nil {
		return view.Dashboard{}, err
	}
	sel, err := BuildSelection(ds, entity, zones, types)
	if err != nil {
		return view.Dashboard{}, err
	}
	return uc.render(ds, sel)
}

// BuildSelection 从字符串参数构造选择，entity 为空时使用默认公司
func BuildSelection(ds *domain.Dataset, entity string, zones, types []string) (domain.Selection, error) {
	sel := domain.NewSelection(ds)
	if entity != "" {
		if err := sel.SelectEntity(ds, entity); err != nil {
			return domain.Selection{}, err
		}
	}
	if err := applyZones(ds, &sel, zones); err != nil {
		return domain.Selection{}, err
	}
	if err := applyTypes(ds, &sel, types); err != nil {
		return domain.Selection{}, err
	}
	return sel, nil
}

// NewSession 创建会话，默认选中第一家公司且不过滤
func (uc *DashboardUseCase) NewSession(ctx context.Context) (SessionState, error) {
	ds, err := uc.datasets.Dataset(ctx)
	if err != nil {
		return SessionState{}, err
	}
	sel := domain.NewSelection(ds)
	id, err := uc.sessions.CreateSession(ctx, sel)
	if err != nil {
		return SessionState{}, err
	}
	return SessionState{ID: id, Selection: sel, Facets: domain.ObservedFacets(ds.Regions, sel.Entity)}, nil
}

// Session 获取会话状态
func (uc *DashboardUseCase) Session(ctx context.Context, id string) (SessionState, error) {
	ds, err := uc.datasets.Dataset(ctx)
	if err != nil {
		return SessionState{}, err
	}
	sel, err := uc.sessions.GetSelection(ctx, id)
	if err != nil {
		return SessionState{}, err
	}
	return SessionState{ID: id, Selection: sel, Facets: domain.ObservedFacets(ds.Regions, sel.Entity)}, nil
}

// EndSession 结束会话，相当于页面重新加载
func (uc *DashboardUseCase) EndSession(ctx context.Context, id string) error {
	return uc.sessions.DeleteSession(ctx, id)
}

// SelectEntity 切换公司
func (uc *DashboardUseCase) SelectEntity(ctx context.Context, id, entity string) (view.Dashboard, error) {
	return uc.mutate(ctx, id, "entity", func(ds *domain.Dataset, sel *domain.Selection) error {
		return sel.SelectEntity(ds, entity)
	})
}

// SetZones 设置分区筛选
func (uc *DashboardUseCase) SetZones(ctx context.Context, id string, zones []string) (view.Dashboard, error) {
	return uc.mutate(ctx, id, "zone", func(ds *domain.Dataset, sel *domain.Selection) error {
		return applyZones(ds, sel, zones)
	})
}

// SetTypes 设置收入类型筛选
func (uc *DashboardUseCase) SetTypes(ctx context.Context, id string, types []string) (view.Dashboard, error) {
	return uc.mutate(ctx, id, "type", func(ds *domain.Dataset, sel *domain.Selection) error {
		return applyTypes(ds, sel, types)
	})
}

// Dashboard 会话当前看板
func (uc *DashboardUseCase) Dashboard(ctx context.Context, id string) (view.Dashboard, error) {
	ds, err := uc.datasets.Dataset(ctx)
	if err != nil {
		return view.Dashboard{}, err
	}
	sel, err := uc.sessions.GetSelection(ctx, id)
	if err != nil {
		return view.Dashboard{}, err
	}
	return uc.render(ds, sel)
}

// RegionalRows 会话选中的公司及筛选后的区域收入，筛选结果可能为空
func (uc *DashboardUseCase) RegionalRows(ctx context.Context, id string) (string, []domain.RegionalIncomeRecord, error) {
	ds, err := uc.datasets.Dataset(ctx)
	if err != nil {
		return "", nil, err
	}
	sel, err := uc.sessions.GetSelection(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return sel.Entity, domain.FilterRegional(ds.Regions, sel.Entity, sel.Zones, sel.Types), nil
}

func (uc *DashboardUseCase) mutate(ctx context.Context, id, facet string, fn func(*domain.Dataset, *domain.Selection) error) (view.Dashboard, error) {
	ds, err := uc.datasets.Dataset(ctx)
	if err != nil {
		return view.Dashboard{}, err
	}
	sel, err := uc.sessions.UpdateSelection(ctx, id, func(sel *domain.Selection) error {
		return fn(ds, sel)
	})
	if err != nil {
		return view.Dashboard{}, err
	}
	uc.metrics.SelectionChanged(facet)
	uc.log.Debugf("session %s: %s changed, selection=%+v", id, facet, sel)
	return uc.render(ds, sel)
}

func (uc *DashboardUseCase) render(ds *domain.Dataset, sel domain.Selection) (view.Dashboard, error) {
	d, err := view.Compose(ds, sel)
	if err != nil {
		return view.Dashboard{}, err
	}
	uc.metrics.RowsRendered("regional", len(d.Regional.Points))
	uc.metrics.RowsRendered("projects", len(d.Projects.Rows))
	uc.metrics.RowsRendered("executives", len(d.Executives.Rows))
	uc.metrics.RowsRendered("news", len(d.News))
	return d, nil
}

func applyZones(ds *domain.Dataset, sel *domain.Selection, raw []string) error {
	zones := make([]domain.Zone, 0, len(raw))
	for _, s := range raw {
		z, err := domain.ParseZone(s)
		if err != nil {
			return err
		}
		zones = append(zones, z)
	}
	return sel.SetZones(ds, zones)
}

func applyTypes(ds *domain.Dataset, sel *domain.Selection, raw []string) error {
	types := make([]domain.IncomeType, 0, len(raw))
	for _, s := range raw {
		t, err := domain.ParseIncomeType(s)
		if err != nil {
			return err
		}
		types = append(types, t)
	}
	return sel.SetTypes(ds, types)
}

package service

import (
	"context"
	"strconv"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
	"github.com/iWorld-y/customer_profile/app/profile/internal/usecase"
	"github.com/iWorld-y/customer_profile/app/profile/internal/view"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/briefing"
)

var _ DashboardHTTPServer = (*DashboardService)(nil)

type DashboardService struct {
	ucDashboard *usecase.DashboardUseCase
	ucBriefing  *usecase.BriefingUseCase
	log         *log.Helper
}

func NewDashboardService(ucDashboard *usecase.DashboardUseCase, ucBriefing *usecase.BriefingUseCase, logger log.Logger) *DashboardService {
	return &DashboardService{
		ucDashboard: ucDashboard,
		ucBriefing:  ucBriefing,
		log:         log.NewHelper(logger),
	}
}

func (s *DashboardService) ListEntities(ctx context.Context, _ *ListEntitiesReq) (*ListEntitiesReply, error) {
	names, err := s.ucDashboard.Entities(ctx)
	if err != nil {
		return nil, translate(err)
	}
	reply := &ListEntitiesReply{Entities: names}
	if len(names) > 0 {
		reply.Default = names[0]
	}
	return reply, nil
}

func (s *DashboardService) GetDashboard(ctx context.Context, req *GetDashboardReq) (*view.Dashboard, error) {
	d, err := s.ucDashboard.Compose(ctx, req.Entity, req.Zones, req.Types)
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *DashboardService) CreateSession(ctx context.Context, _ *CreateSessionReq) (*SessionReply, error) {
	st, err := s.ucDashboard.NewSession(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return sessionReply(st), nil
}

func (s *DashboardService) GetSession(ctx context.Context, req *SessionReq) (*SessionReply, error) {
	st, err := s.ucDashboard.Session(ctx, req.Id)
	if err != nil {
		return nil, translate(err)
	}
	return sessionReply(st), nil
}

func (s *DashboardService) DeleteSession(ctx context.Context, req *SessionReq) (*DeleteSessionReply, error) {
	if err := s.ucDashboard.EndSession(ctx, req.Id); err != nil {
		return nil, translate(err)
	}
	return &DeleteSessionReply{Success: true}, nil
}

func (s *DashboardService) SelectEntity(ctx context.Context, req *SelectEntityReq) (*view.Dashboard, error) {
	if req.Entity == "" {
		return nil, errors.BadRequest("ENTITY_REQUIRED", "entity is required")
	}
	d, err := s.ucDashboard.SelectEntity(ctx, req.Id, req.Entity)
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *DashboardService) SetZones(ctx context.Context, req *SetZonesReq) (*view.Dashboard, error) {
	d, err := s.ucDashboard.SetZones(ctx, req.Id, req.Zones)
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *DashboardService) SetTypes(ctx context.Context, req *SetTypesReq) (*view.Dashboard, error) {
	d, err := s.ucDashboard.SetTypes(ctx, req.Id, req.Types)
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *DashboardService) GetSessionDashboard(ctx context.Context, req *SessionReq) (*view.Dashboard, error) {
	d, err := s.ucDashboard.Dashboard(ctx, req.Id)
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *DashboardService) GetBriefing(ctx context.Context, req *SessionReq) (*briefing.Briefing, error) {
	b, err := s.ucBriefing.Brief(ctx, req.Id)
	if err != nil {
		return nil, translate(err)
	}
	return b, nil
}

func (s *DashboardService) ExportRegional(ctx context.Context, req *SessionReq) (*RegionalExport, error) {
	entity, rows, err := s.ucDashboard.RegionalRows(ctx, req.Id)
	if err != nil {
		return nil, translate(err)
	}
	s.log.Debugf("exporting %d regional rows for session %s", len(rows), req.Id)
	out := &RegionalExport{Entity: entity, Rows: make([][]string, 0, len(rows)+1)}
	out.Rows = append(out.Rows, []string{"entity", "region", "zone", "income", "type"})
	for _, r := range rows {
		out.Rows = append(out.Rows, []string{
			r.Entity,
			strconv.Itoa(r.Region),
			string(r.Zone),
			strconv.FormatFloat(r.Income, 'f', 2, 64),
			string(r.Type),
		})
	}
	return out, nil
}

func sessionReply(st usecase.SessionState) *SessionReply {
	return &SessionReply{
		Id:        st.ID,
		Selection: view.SelectionOf(st.Selection),
		Facets:    view.FacetsOf(st.Facets),
	}
}

// translate 把领域错误映射为 kratos 错误，其他错误原样返回
func translate(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownEntity):
		return errors.NotFound("ENTITY_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrInvalidFacet):
		return errors.BadRequest("INVALID_FACET", err.Error())
	default:
		return err
	}
}

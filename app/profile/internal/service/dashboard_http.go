package service

import (
	"context"
	"encoding/csv"
	"fmt"
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/customer_profile/app/profile/internal/view"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/briefing"
)

const (
	OperationListEntities        = "/profile.v1.Dashboard/ListEntities"
	OperationGetDashboard        = "/profile.v1.Dashboard/GetDashboard"
	OperationCreateSession       = "/profile.v1.Dashboard/CreateSession"
	OperationGetSession          = "/profile.v1.Dashboard/GetSession"
	OperationDeleteSession       = "/profile.v1.Dashboard/DeleteSession"
	OperationSelectEntity        = "/profile.v1.Dashboard/SelectEntity"
	OperationSetZones            = "/profile.v1.Dashboard/SetZones"
	OperationSetTypes            = "/profile.v1.Dashboard/SetTypes"
	OperationGetSessionDashboard = "/profile.v1.Dashboard/GetSessionDashboard"
	OperationGetBriefing         = "/profile.v1.Dashboard/GetBriefing"
	OperationExportRegional      = "/profile.v1.Dashboard/ExportRegional"
)

// DashboardHTTPServer 看板 HTTP 接口
type DashboardHTTPServer interface {
	ListEntities(context.Context, *ListEntitiesReq) (*ListEntitiesReply, error)
	GetDashboard(context.Context, *GetDashboardReq) (*view.Dashboard, error)
	CreateSession(context.Context, *CreateSessionReq) (*SessionReply, error)
	GetSession(context.Context, *SessionReq) (*SessionReply, error)
	DeleteSession(context.Context, *SessionReq) (*DeleteSessionReply, error)
	SelectEntity(context.Context, *SelectEntityReq) (*view.Dashboard, error)
	SetZones(context.Context, *SetZonesReq) (*view.Dashboard, error)
	SetTypes(context.Context, *SetTypesReq) (*view.Dashboard, error)
	GetSessionDashboard(context.Context, *SessionReq) (*view.Dashboard, error)
	GetBriefing(context.Context, *SessionReq) (*briefing.Briefing, error)
	ExportRegional(context.Context, *SessionReq) (*RegionalExport, error)
}

// RegisterDashboardHTTPServer 注册路由，请求经过服务端中间件
func RegisterDashboardHTTPServer(s *http.Server, srv DashboardHTTPServer) {
	r := s.Route("/")
	r.GET("/api/v1/entities", handle(OperationListEntities, bindNone[ListEntitiesReq], srv.ListEntities))
	r.GET("/api/v1/dashboard", handle(OperationGetDashboard, bindQuery[GetDashboardReq], srv.GetDashboard))
	r.POST("/api/v1/sessions", handle(OperationCreateSession, bindNone[CreateSessionReq], srv.CreateSession))
	r.GET("/api/v1/sessions/{id}", handle(OperationGetSession, bindVars[SessionReq], srv.GetSession))
	r.DELETE("/api/v1/sessions/{id}", handle(OperationDeleteSession, bindVars[SessionReq], srv.DeleteSession))
	r.PUT("/api/v1/sessions/{id}/entity", handle(OperationSelectEntity, bindBodyVars[SelectEntityReq], srv.SelectEntity))
	r.PUT("/api/v1/sessions/{id}/zones", handle(OperationSetZones, bindBodyVars[SetZonesReq], srv.SetZones))
	r.PUT("/api/v1/sessions/{id}/types", handle(OperationSetTypes, bindBodyVars[SetTypesReq], srv.SetTypes))
	r.GET("/api/v1/sessions/{id}/dashboard", handle(OperationGetSessionDashboard, bindVars[SessionReq], srv.GetSessionDashboard))
	r.GET("/api/v1/sessions/{id}/briefing", handle(OperationGetBriefing, bindVars[SessionReq], srv.GetBriefing))
	r.GET("/api/v1/sessions/{id}/regional.csv", exportRegionalHandler(srv))
}

func bindNone[T any](http.Context) (*T, error) {
	return new(T), nil
}

func bindQuery[T any](ctx http.Context) (*T, error) {
	in := new(T)
	if err := ctx.BindQuery(in); err != nil {
		return nil, err
	}
	return in, nil
}

func bindVars[T any](ctx http.Context) (*T, error) {
	in := new(T)
	if err := ctx.BindVars(in); err != nil {
		return nil, err
	}
	return in, nil
}

func bindBodyVars[T any](ctx http.Context) (*T, error) {
	in := new(T)
	if err := ctx.Bind(in); err != nil {
		return nil, err
	}
	if err := ctx.BindVars(in); err != nil {
		return nil, err
	}
	return in, nil
}

func handle[Req, Reply any](operation string, bind func(http.Context) (*Req, error), call func(context.Context, *Req) (*Reply, error)) http.HandlerFunc {
	return func(ctx http.Context) error {
		in, err := bind(ctx)
		if err != nil {
			return err
		}
		http.SetOperation(ctx, operation)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return call(ctx, req.(*Req))
		})
		out, err := h(ctx, in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*Reply))
	}
}

func exportRegionalHandler(srv DashboardHTTPServer) http.HandlerFunc {
	return func(ctx http.Context) error {
		in, err := bindVars[SessionReq](ctx)
		if err != nil {
			return err
		}
		http.SetOperation(ctx, OperationExportRegional)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.ExportRegional(ctx, req.(*SessionReq))
		})
		out, err := h(ctx, in)
		if err != nil {
			return err
		}
		export := out.(*RegionalExport)

		w := ctx.Response()
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(export.Entity)))
		w.WriteHeader(nethttp.StatusOK)
		cw := csv.NewWriter(w)
		if err := cw.WriteAll(export.Rows); err != nil {
			return err
		}
		return nil
	}
}

func exportFilename(entity string) string {
	if entity == "" {
		return "regional.csv"
	}
	return "regional_" + entity + ".csv"
}

package service

import (
	"github.com/iWorld-y/customer_profile/app/profile/internal/view"
)

type ListEntitiesReq struct{}

type ListEntitiesReply struct {
	Entities []string `json:"entities"`
	Default  string   `json:"default"`
}

// GetDashboardReq 无状态查询：?entity=Apple&zone=B&type=regulated
type GetDashboardReq struct {
	Entity string   `json:"entity"`
	Zones  []string `json:"zone"`
	Types  []string `json:"type"`
}

type CreateSessionReq struct{}

type SessionReq struct {
	Id string `json:"id"`
}

type SessionReply struct {
	Id        string             `json:"id"`
	Selection view.SelectionView `json:"selection"`
	Facets    view.Facets        `json:"facets"`
}

type DeleteSessionReply struct {
	Success bool `json:"success"`
}

type SelectEntityReq struct {
	Id     string `json:"id"`
	Entity string `json:"entity"`
}

type SetZonesReq struct {
	Id    string   `json:"id"`
	Zones []string `json:"zones"`
}

type SetTypesReq struct {
	Id    string   `json:"id"`
	Types []string `json:"types"`
}

// RegionalExport 区域收入导出
type RegionalExport struct {
	Entity string
	Rows   [][]string
}

package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/customer_profile/app/profile/internal/data"
	"github.com/iWorld-y/customer_profile/app/profile/internal/service"
	"github.com/iWorld-y/customer_profile/app/profile/internal/usecase"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/metrics"
)

// ProviderSet 是看板服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewGRPCServer,
	NewBriefingEngine,
	NewMetrics,

	// Data providers
	data.NewData,
	data.NewDatasetRepo,
	data.NewSessionRepo,

	// UseCase providers
	usecase.NewDashboardUseCase,
	usecase.NewBriefingUseCase,

	// Service providers
	service.NewDashboardService,
)

// NewMetrics 使用独立的 registry，避免和默认 registry 冲突
func NewMetrics() (*metrics.Metrics, error) {
	return metrics.New(nil)
}

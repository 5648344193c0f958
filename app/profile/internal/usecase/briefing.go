package usecase

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
	"github.com/iWorld-y/customer_profile/app/profile/internal/repo"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/briefing"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/metrics"
)

// Briefer 简报生成器，*briefing.Engine 满足该接口
type Briefer interface {
	Brief(ctx context.Context, in briefing.Input) (*briefing.Briefing, error)
}

// BriefingUseCase 为会话当前选中的公司生成简报
type BriefingUseCase struct {
	briefer  Briefer
	datasets repo.DatasetRepo
	sessions repo.SessionRepo
	metrics  *metrics.Metrics
	log      *log.Helper
}

// NewBriefingUseCase briefer 为 nil 表示未启用
func NewBriefingUseCase(engine *briefing.Engine, datasets repo.DatasetRepo, sessions repo.SessionRepo, m *metrics.Metrics, logger log.Logger) *BriefingUseCase {
	uc := &BriefingUseCase{
		datasets: datasets,
		sessions: sessions,
		metrics:  m,
		log:      log.NewHelper(logger),
	}
	// avoid a typed-nil interface
	if engine != nil {
		uc.briefer = engine
	}
	return uc
}

// Enabled 是否配置了 LLM
func (uc *BriefingUseCase) Enabled() bool {
	return uc.briefer != nil
}

// Brief 生成简报
func (uc *BriefingUseCase) Brief(ctx context.Context, sessionID string) (*briefing.Briefing, error) {
	if uc.briefer == nil {
		return nil, errors.ServiceUnavailable("BRIEFING_DISABLED", "briefing is not enabled")
	}
	ds, err := uc.datasets.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	sel, err := uc.sessions.GetSelection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	in, err := BriefingInput(ds, sel.Entity)
	if err != nil {
		return nil, err
	}

	b, err := uc.briefer.Brief(ctx, in)
	if err != nil {
		uc.metrics.BriefingDone("error")
		uc.log.Errorf("briefing for %s failed: %v", sel.Entity, err)
		return nil, errors.ServiceUnavailable("BRIEFING_FAILED", "briefing generation failed").WithCause(err)
	}
	uc.metrics.BriefingDone("ok")
	return b, nil
}

// BriefingInput 从数据集提取一家公司的简报输入
func BriefingInput(ds *domain.Dataset, entity string) (briefing.Input, error) {
	e, ok := ds.Entity(entity)
	if !ok {
		return briefing.Input{}, domain.ErrUnknownEntity
	}
	in := briefing.Input{
		Company:          e.Name,
		Revenue:          e.Revenue,
		EBITDA:           e.EBITDA,
		Equity:           e.Equity,
		NetDebt:          e.NetDebt,
		SharePrice:       e.SharePrice,
		SharePriceChange: e.SharePriceChange,
	}
	for _, n := range domain.FilterByEntity(ds.News, entity) {
		in.Headlines = append(in.Headlines, briefing.Headline{Title: n.Headline, Summary: n.Summary})
	}
	return in, nil
}

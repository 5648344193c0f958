package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/customer_profile/app/profile/internal/conf"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/briefing"
)

// NewBriefingEngine 初始化简报引擎，未启用时返回 nil
func NewBriefingEngine(c *conf.Briefing, logger log.Logger) (*briefing.Engine, func(), error) {
	helper := log.NewHelper(logger)
	if c == nil || !c.Enabled || c.Llm == nil {
		helper.Info("briefing disabled")
		return nil, func() {}, nil
	}

	// 将 internal/conf.Briefing 转换为 pkg/briefing.Config
	cfg := &briefing.Config{
		LLM: briefing.LLMConfig{
			BaseURL: c.Llm.BaseUrl,
			APIKey:  c.Llm.ApiKey,
			Model:   c.Llm.Model,
		},
	}
	if c.Concurrency != nil {
		cfg.Concurrency = briefing.ConcurrencyConfig{
			QPS: int(c.Concurrency.Qps),
			RPM: int(c.Concurrency.Rpm),
		}
	}

	eng, err := briefing.NewEngine(context.Background(), cfg)
	if err != nil {
		helper.Errorf("Failed to init briefing engine: %v", err)
		return nil, nil, err
	}
	helper.Infof("briefing enabled, model=%s", cfg.LLM.Model)

	cleanup := func() {
		helper.Info("Cleaning up briefing engine")
	}
	return eng, cleanup, nil
}

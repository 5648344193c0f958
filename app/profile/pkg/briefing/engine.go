package briefing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/customer_profile/app/profile/pkg/logger"
)

// Config 简报引擎配置
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// Generator 聊天模型，eino 的 ChatModel 满足该接口
type Generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Headline 新闻标题和摘要
type Headline struct {
	Title   string
	Summary string
}

// Input 生成简报所需的公司数据
type Input struct {
	Company          string
	Revenue          float64
	EBITDA           float64
	Equity           float64
	NetDebt          float64
	SharePrice       float64
	SharePriceChange float64
	Headlines        []Headline
}

// Briefing 客户简报
type Briefing struct {
	Company    string   `json:"company"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Risks      []string `json:"risks"`
}

// Engine 简报引擎
type Engine struct {
	chatModel  Generator
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
}

// NewEngine 初始化 LLM 和限流器
func NewEngine(ctx context.Context, cfg *Config) (*Engine, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewEngineWithModel(chatModel, cfg.Concurrency), nil
}

// NewEngineWithModel 使用已有模型创建引擎
func NewEngineWithModel(cm Generator, cc ConcurrencyConfig) *Engine {
	limit := rate.Inf
	if cc.RPM > 0 {
		limit = rate.Limit(float64(cc.RPM) / 60.0)
	}
	burst := cc.QPS
	if burst < 1 {
		burst = 1
	}
	return &Engine{
		chatModel:  cm,
		limiter:    rate.NewLimiter(limit, burst),
		maxRetries: 3,
		baseDelay:  2 * time.Second,
	}
}

const promptTpl = `你是一名资深的客户经理，请根据以下公司数据为销售团队撰写一份客户简报。
请严格按照以下 JSON 格式返回，不要包含任何 markdown 标记：
{
	"title": "简短标题（20 字以内）",
	"summary": "两到三句话概述公司当前的财务状况和近期动态",
	"highlights": ["亮点1", "亮点2"],
	"risks": ["风险1", "风险2"]
}

公司数据（单位 USD M）：
%s`

// Brief 为一家公司生成简报，遇到 429 或无法解析的输出会重试
func (e *Engine) Brief(ctx context.Context, in Input) (*Briefing, error) {
	if in.Company == "" {
		return nil, errors.New("company is required")
	}
	messages := []*schema.Message{
		{Role: schema.System, Content: "你是一个 JSON 生成器。请只输出 JSON 字符串。"},
		{Role: schema.User, Content: fmt.Sprintf(promptTpl, describe(in))},
	}

	var lastErr error
	for i := 0; i <= e.maxRetries; i++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := e.chatModel.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) && i < e.maxRetries {
				lastErr = err
				logger.Log.Warnf("简报生成被限流 [%s]，第 %d 次重试", in.Company, i+1)
				if err := sleep(ctx, e.baseDelay*time.Duration(1<<i)); err != nil {
					return nil, err
				}
				continue
			}
			return nil, err
		}

		var b Briefing
		if err := json.Unmarshal([]byte(cleanJSON(resp.Content)), &b); err != nil {
			lastErr = fmt.Errorf("json unmarshal: %w", err)
			logger.Log.Debugf("简报 JSON 解析失败 [%s]: %v", in.Company, err)
			continue
		}
		b.Company = in.Company
		return &b, nil
	}
	return nil, fmt.Errorf("failed after retries: %w", lastErr)
}

func describe(in Input) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "公司: %s\n", in.Company)
	fmt.Fprintf(&sb, "总收入: %.2f\nEBITDA: %.2f\n总权益: %.2f\n净债务: %.2f\n", in.Revenue, in.EBITDA, in.Equity, in.NetDebt)
	fmt.Fprintf(&sb, "股价: %.2f USD (%+.1f%%)\n", in.SharePrice, in.SharePriceChange)
	if len(in.Headlines) > 0 {
		sb.WriteString("\n近期新闻:\n")
		for i, h := range in.Headlines {
			fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, h.Title, h.Summary)
		}
	}
	return sb.String()
}

func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

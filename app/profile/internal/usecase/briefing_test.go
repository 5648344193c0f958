package usecase

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/briefing"
)

// mockChatModel 固定回复的聊天模型
type mockChatModel struct {
	content string
	last    []*schema.Message
}

func (m *mockChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.last = input
	return schema.AssistantMessage(m.content, nil), nil
}

func TestBriefingUseCase_Disabled(t *testing.T) {
	datasets, sessions := sampleRepos()
	uc := NewBriefingUseCase(nil, datasets, sessions, nil, log.DefaultLogger)

	_, err := uc.Brief(context.Background(), "any")

	assert.False(t, uc.Enabled())
	assert.Equal(t, "BRIEFING_DISABLED", errors.Reason(err))
}

func TestBriefingUseCase_Brief(t *testing.T) {
	ctx := context.Background()
	datasets, sessions := sampleRepos()
	cm := &mockChatModel{content: `{"title":"t","summary":"s","highlights":[],"risks":[]}`}
	engine := briefing.NewEngineWithModel(cm, briefing.ConcurrencyConfig{})
	uc := NewBriefingUseCase(engine, datasets, sessions, nil, log.DefaultLogger)
	id, err := sessions.CreateSession(ctx, domain.Selection{Entity: "Microsoft"})
	require.NoError(t, err)

	b, err := uc.Brief(ctx, id)
	require.NoError(t, err)

	assert.True(t, uc.Enabled())
	assert.Equal(t, "Microsoft", b.Company)
	assert.Contains(t, cm.last[1].Content, "Microsoft Teams adds new features")
}

func TestBriefingUseCase_GenerationFailure(t *testing.T) {
	ctx := context.Background()
	datasets, sessions := sampleRepos()
	engine := briefing.NewEngineWithModel(&mockChatModel{content: "oops"}, briefing.ConcurrencyConfig{})
	uc := NewBriefingUseCase(engine, datasets, sessions, nil, log.DefaultLogger)
	id, err := sessions.CreateSession(ctx, domain.Selection{Entity: "Apple"})
	require.NoError(t, err)

	_, err = uc.Brief(ctx, id)

	assert.Equal(t, "BRIEFING_FAILED", errors.Reason(err))
	assert.Equal(t, 503, errors.Code(err))
}

func TestBriefingInput(t *testing.T) {
	datasets, _ := sampleRepos()

	in, err := BriefingInput(datasets.ds, "Google")
	require.NoError(t, err)
	assert.Equal(t, -123.45, in.NetDebt)
	assert.Len(t, in.Headlines, 3)

	_, err = BriefingInput(datasets.ds, "Nokia")
	assert.ErrorIs(t, err, domain.ErrUnknownEntity)
}

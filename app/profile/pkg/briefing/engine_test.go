package briefing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type reply struct {
	content string
	err     error
}

// scriptedModel 依次返回预设的回复
type scriptedModel struct {
	mu      sync.Mutex
	replies []reply
	calls   int
	prompts [][]*schema.Message
}

func (s *scriptedModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, input)
	r := s.replies[min(s.calls, len(s.replies)-1)]
	s.calls++
	if r.err != nil {
		return nil, r.err
	}
	return schema.AssistantMessage(r.content, nil), nil
}

func newTestEngine(m Generator) *Engine {
	e := NewEngineWithModel(m, ConcurrencyConfig{})
	e.baseDelay = 0
	return e
}

const okJSON = `{"title":"Steady growth","summary":"Revenue is up.","highlights":["cash"],"risks":["debt"]}`

func TestEngine_Brief(t *testing.T) {
	m := &scriptedModel{replies: []reply{{content: "```json\n" + okJSON + "\n```"}}}
	e := newTestEngine(m)

	b, err := e.Brief(context.Background(), Input{
		Company:   "Apple",
		Revenue:   365.82,
		Headlines: []Headline{{Title: "New phone", Summary: "Better camera"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Apple", b.Company)
	assert.Equal(t, "Steady growth", b.Title)
	assert.Equal(t, []string{"cash"}, b.Highlights)
	assert.Equal(t, 1, m.calls)
	require.Len(t, m.prompts[0], 2)
	assert.Contains(t, m.prompts[0][1].Content, "365.82")
	assert.Contains(t, m.prompts[0][1].Content, "New phone")
}

func TestEngine_RetriesOnRateLimit(t *testing.T) {
	m := &scriptedModel{replies: []reply{
		{err: errors.New("error, status code: 429, message: Too Many Requests")},
		{err: errors.New("too many requests")},
		{content: okJSON},
	}}
	e := newTestEngine(m)

	b, err := e.Brief(context.Background(), Input{Company: "Google"})
	require.NoError(t, err)

	assert.Equal(t, "Google", b.Company)
	assert.Equal(t, 3, m.calls)
}

func TestEngine_RetriesOnBadJSON(t *testing.T) {
	m := &scriptedModel{replies: []reply{{content: "not json"}, {content: okJSON}}}
	e := newTestEngine(m)

	_, err := e.Brief(context.Background(), Input{Company: "Amazon"})

	require.NoError(t, err)
	assert.Equal(t, 2, m.calls)
}

func TestEngine_GivesUp(t *testing.T) {
	m := &scriptedModel{replies: []reply{{content: "still not json"}}}
	e := newTestEngine(m)

	_, err := e.Brief(context.Background(), Input{Company: "Amazon"})

	assert.ErrorContains(t, err, "failed after retries")
	assert.Equal(t, e.maxRetries+1, m.calls)
}

func TestEngine_OtherErrorsAreNotRetried(t *testing.T) {
	m := &scriptedModel{replies: []reply{{err: errors.New("unauthorized")}}}
	e := newTestEngine(m)

	_, err := e.Brief(context.Background(), Input{Company: "Amazon"})

	assert.ErrorContains(t, err, "unauthorized")
	assert.Equal(t, 1, m.calls)
}

func TestEngine_RequiresCompany(t *testing.T) {
	e := newTestEngine(&scriptedModel{replies: []reply{{content: okJSON}}})

	_, err := e.Brief(context.Background(), Input{})

	assert.Error(t, err)
}

func TestSleep_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleep(context.Background(), 0))
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("  {\"a\":1}  "))
}

package server

import (
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/customer_profile/app/profile/internal/conf"
)

func TestNewBriefingEngine_Disabled(t *testing.T) {
	for name, c := range map[string]*conf.Briefing{
		"nil":      nil,
		"disabled": {Enabled: false, Llm: &conf.LLM{Model: "m"}},
		"no llm":   {Enabled: true},
	} {
		t.Run(name, func(t *testing.T) {
			eng, cleanup, err := NewBriefingEngine(c, log.DefaultLogger)
			require.NoError(t, err)
			require.NotNil(t, cleanup)
			cleanup()
			assert.Nil(t, eng)
		})
	}
}

func TestNewBriefingEngine_Enabled(t *testing.T) {
	c := &conf.Briefing{
		Enabled:     true,
		Llm:         &conf.LLM{BaseUrl: "http://127.0.0.1:1/v1", ApiKey: "k", Model: "m"},
		Concurrency: &conf.Concurrency{Qps: 2, Rpm: 60},
	}

	eng, cleanup, err := NewBriefingEngine(c, log.DefaultLogger)
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, eng)
}

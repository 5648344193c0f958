package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "slow request",
		Data:    logrus.Fields{"op": "/x", "caller": "dashboard.go:42", "code": 200},
	}

	out, err := (&CustomFormatter{}).Format(entry)
	require.NoError(t, err)

	assert.Equal(t, "[2024-03-01 09:30:00] [WARN] [dashboard.go:42] slow request code=200 op=/x\n", string(out))
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "profile.log")

	l, err := New("debug", path)
	require.NoError(t, err)
	l.Debug("hello file")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[DEBU]")
	assert.Contains(t, string(raw), "hello file")
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	l, err := New("loud", "")
	require.NoError(t, err)

	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestKratosLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetFormatter(&CustomFormatter{})
	l.SetOutput(&buf)
	l.SetLevel(logrus.InfoLevel)

	kl := log.With(NewKratosLogger(l), "caller", "main.go:7")
	helper := log.NewHelper(kl)

	helper.Debugf("hidden %d", 1)
	helper.Infow(log.DefaultMessageKey, "session created", "id", "s1")
	helper.Errorf("failed: %s", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[INFO] [main.go:7] session created id=s1")
	assert.Contains(t, lines[1], "[ERRO] [main.go:7] failed: boom")
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/customer_profile/app/profile/internal/data"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := RootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDump_Builtin(t *testing.T) {
	out, err := run(t, "dump")
	require.NoError(t, err)

	ds, err := data.DecodeYAML(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.Equal(t, data.SampleDataset(), ds)
}

func TestSeedThenReport(t *testing.T) {
	dir := t.TempDir()
	dsn := "file:" + filepath.Join(dir, "profile.db")
	output := filepath.Join(dir, "report.html")

	_, err := run(t, "seed", "--source", "yaml", "--file", "../../configs/dataset.yaml", "--dsn", dsn)
	require.NoError(t, err)

	_, err = run(t, "report", "--source", "database", "--db-source", dsn, "-e", "Fabrikam", "-o", output)
	require.NoError(t, err)

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Fabrikam")
	assert.Contains(t, string(raw), "Sam Patel")
}

func TestReport_UnknownEntity(t *testing.T) {
	_, err := run(t, "report", "-e", "Nokia", "-o", filepath.Join(t.TempDir(), "x.html"))

	assert.Error(t, err)
}

func TestSettings_EnvOverridesConfig(t *testing.T) {
	t.Setenv("PROFILE_DATA_SOURCE", "yaml")
	t.Setenv("PROFILE_DATA_FILE", "../../configs/dataset.yaml")

	out, err := run(t, "dump", "--conf", "../../configs/config.yaml")
	require.NoError(t, err)

	ds, err := data.DecodeYAML(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.Equal(t, "Contoso", ds.DefaultEntity())
}

package data

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLProvider_SampleFile(t *testing.T) {
	p := NewYAMLProvider("../../configs/dataset.yaml")

	ds, err := p.LoadDataset(context.Background())
	require.NoError(t, err)
	require.NoError(t, ds.Validate())

	assert.Equal(t, []string{"Contoso", "Fabrikam"}, ds.EntityNames())
	assert.Equal(t, "yaml:../../configs/dataset.yaml", p.Name())
}

func TestYAMLProvider_MissingFile(t *testing.T) {
	_, err := NewYAMLProvider("does-not-exist.yaml").LoadDataset(context.Background())

	assert.Error(t, err)
}

func TestEncodeDecodeYAML(t *testing.T) {
	want := SampleDataset()

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, want))
	got, err := DecodeYAML(&buf)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestDecodeYAML_UnknownField(t *testing.T) {
	doc := `
entities:
  - name: X
    revenue: 1
    colour: blue
`
	_, err := DecodeYAML(strings.NewReader(doc))

	assert.ErrorContains(t, err, "colour")
}

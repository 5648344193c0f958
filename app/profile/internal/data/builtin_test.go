package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDataset(t *testing.T) {
	ds := SampleDataset()
	require.NoError(t, ds.Validate())

	assert.Len(t, ds.Entities, 4)
	assert.Len(t, ds.Executives, 8)
	assert.Len(t, ds.Projects, 40)
	assert.Len(t, ds.Regions, 16)
	assert.Len(t, ds.News, 12)
	assert.Len(t, ds.Billing, 4*billingMonths)
}

func TestSampleDataset_FreshCopy(t *testing.T) {
	a := SampleDataset()
	a.Entities[0].Name = "changed"

	assert.Equal(t, "Apple", SampleDataset().Entities[0].Name)
}

func TestBillingSeries_Deterministic(t *testing.T) {
	months := billingMonthLabels(billingStartMonth, billingMonths)
	first := billingSeries("Apple", months)
	second := billingSeries("Apple", months)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first[0].Billing, billingSeries("Google", months)[0].Billing)
	for _, p := range first {
		assert.GreaterOrEqual(t, p.Billing, billingMin)
		assert.LessOrEqual(t, p.Billing, billingMax)
	}
}

func TestBillingMonthLabels(t *testing.T) {
	months := billingMonthLabels("2023-11", 3)

	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01"}, months)
}

func TestBuiltinProvider(t *testing.T) {
	p := NewBuiltinProvider()

	ds, err := p.LoadDataset(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "builtin", p.Name())
	assert.Equal(t, "Apple", ds.DefaultEntity())
}

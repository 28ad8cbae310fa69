package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyAdd(t *testing.T) {
	a := NewMoneyIRR(decimal.NewFromInt(100000))
	b := NewMoneyIRR(decimal.NewFromInt(50000))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equals(NewMoneyIRR(decimal.NewFromInt(150000))))

	_, err = a.Add(NewMoneyUSD(decimal.NewFromInt(1)))
	assert.Error(t, err, "rial and dollar amounts must never sum")
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyUSD(decimal.RequireFromString("49.99"))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"49.99","currency":"USD"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equals(back))
}

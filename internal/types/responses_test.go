package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt(t *testing.T) {
	var v struct {
		Quantity FlexInt `json:"quantity"`
	}

	for input, want := range map[string]int{
		`{"quantity": 3}`:     3,
		`{"quantity": "4"}`:   4,
		`{"quantity": " 5 "}`: 5,
		`{"quantity": 2.0}`:   2,
		`{"quantity": null}`:  0,
		`{"quantity": ""}`:    0,
		`{}`:                  0,
	} {
		v.Quantity = 0
		require.NoError(t, json.Unmarshal([]byte(input), &v), input)
		assert.Equal(t, FlexInt(want), v.Quantity, input)
	}

	assert.Error(t, json.Unmarshal([]byte(`{"quantity": "two"}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"quantity": 1.5}`), &v))
}

func TestFlexFloat(t *testing.T) {
	var v struct {
		Price FlexFloat `json:"price"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"price": "12.5"}`), &v))
	assert.Equal(t, FlexFloat(12.5), v.Price)

	require.NoError(t, json.Unmarshal([]byte(`{"price": 9}`), &v))
	assert.Equal(t, FlexFloat(9), v.Price)

	assert.Error(t, json.Unmarshal([]byte(`{"price": "cheap"}`), &v))
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evenSet() ScenarioSet {
	return ScenarioSet{
		{Label: StrongUp, ExpectedMovePct: 3, Probability: 0.1},
		{Label: MildUp, ExpectedMovePct: 1, Probability: 0.2},
		{Label: Sideways, Probability: 0.4},
		{Label: MildDown, ExpectedMovePct: -1, Probability: 0.2},
		{Label: StrongDown, ExpectedMovePct: -3, Probability: 0.1},
	}
}

func TestScenarioSetValidate(t *testing.T) {
	assert.NoError(t, evenSet().Validate())

	short := evenSet()[:4]
	assert.Error(t, short.Validate(), "dropping a scenario breaks the sum")

	dup := evenSet()
	dup[1].Label = StrongUp
	assert.Error(t, dup.Validate())

	neg := evenSet()
	neg[0].Probability = -0.1
	neg[2].Probability = 0.6
	assert.Error(t, neg.Validate())
}

func TestScenarioSetUpsideProbability(t *testing.T) {
	assert.InDelta(t, 0.3, evenSet().UpsideProbability(), 1e-12)
}

func TestScenarioLabelJSON(t *testing.T) {
	b, err := json.Marshal(StrongUp)
	require.NoError(t, err)
	assert.Equal(t, `"STRONG_UP"`, string(b))
}

func TestFloatJSON(t *testing.T) {
	b, err := json.Marshal(Float{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(FloatFrom(1.5))
	require.NoError(t, err)
	assert.Equal(t, "1.5", string(b))

	var f Float
	require.NoError(t, json.Unmarshal([]byte("null"), &f))
	assert.False(t, f.Valid)
	require.NoError(t, json.Unmarshal([]byte("2.5"), &f))
	assert.Equal(t, FloatFrom(2.5), f)
}

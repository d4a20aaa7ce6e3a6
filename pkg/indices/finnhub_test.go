package indices

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"marketwire/internal/model"
)

func TestTrend(t *testing.T) {
	assert.Equal(t, model.TrendUp, trend(1.2))
	assert.Equal(t, model.TrendDown, trend(-0.8))
	assert.Equal(t, model.TrendFlat, trend(0.0))
	assert.Equal(t, model.TrendFlat, trend(0.04))
	assert.Equal(t, model.TrendFlat, trend(-0.05))
}

func TestIndexTableCoversIndicatorRegions(t *testing.T) {
	for _, region := range []string{"INDONESIA", "USA", "ASIA", "EUROPE", "AMERICAS"} {
		specs, ok := indexTable[region]
		assert.Equal(t, true, ok)
		assert.NotEqual(t, 0, len(specs))
	}
}

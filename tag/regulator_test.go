package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdditiveCountdownRegulatorDecayPositive(t *testing.T) {
	r := NewAdditiveCountdownRegulator(1.0)
	r.Set(2.5)
	r.Tick()
	assert.Equal(t, 1.5, r.Value())
	r.Tick()
	assert.Equal(t, 0.5, r.Value())
	r.Tick()
	assert.Equal(t, 0.0, r.Value(), "decay should clamp at zero, not overshoot negative")
}

func TestAdditiveCountdownRegulatorDecayNegative(t *testing.T) {
	r := NewAdditiveCountdownRegulator(1.0)
	r.Set(-2.0)
	r.Tick()
	assert.Equal(t, -1.0, r.Value())
	r.Tick()
	assert.Equal(t, 0.0, r.Value())
	r.Tick()
	assert.Equal(t, 0.0, r.Value(), "decay should clamp at zero from below too")
}

func TestAdditiveCountdownRegulatorAdjustAndClear(t *testing.T) {
	r := NewAdditiveCountdownRegulator(0.5)
	r.Adjust(3)
	r.Adjust(-1)
	assert.Equal(t, 2.0, r.Value())
	r.Clear()
	assert.Equal(t, 0.0, r.Value())
}

func TestAdditiveCountdownRegulatorNoDecay(t *testing.T) {
	r := NewAdditiveCountdownRegulator(0)
	r.Set(5)
	r.Tick()
	r.Tick()
	assert.Equal(t, 5.0, r.Value(), "non-positive decayStep disables decay")
}

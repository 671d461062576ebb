package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHammingMetricIdentical(t *testing.T) {
	var m HammingMetric
	a := FromUint64(0xFF)
	assert.Equal(t, 0.0, m.Distance(a, a))
}

func TestHammingMetricDistance(t *testing.T) {
	var m HammingMetric
	a := FromUint64(0x0F)
	b := FromUint64(0xF0)
	assert.Equal(t, 8.0, m.Distance(a, b))
}

func TestHammingMetricSymmetric(t *testing.T) {
	var m HammingMetric
	a := FromUint64(0x1234)
	b := FromUint64(0x5678)
	assert.Equal(t, m.Distance(a, b), m.Distance(b, a))
}

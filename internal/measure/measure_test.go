package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureMonospace(t *testing.T) {
	m, err := New(0)
	require.NoError(t, err)

	one, err := m.Measure("a", 12)
	require.NoError(t, err)
	ten, err := m.Measure("abcdefghij", 12)
	require.NoError(t, err)

	assert.Greater(t, one, 0.0)
	assert.InDelta(t, one*10, ten, 1)
}

func TestMeasureScalesWithSize(t *testing.T) {
	m, err := New(0)
	require.NoError(t, err)

	small, err := m.Measure("public void run()", 12)
	require.NoError(t, err)
	large, err := m.Measure("public void run()", 24)
	require.NoError(t, err)

	assert.Greater(t, large, small)
}

func TestMeasureCaches(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)

	_, _ = m.Measure("a", 12)
	_, _ = m.Measure("a", 12)
	assert.Equal(t, 1, m.Cached())

	_, _ = m.Measure("a", 14)
	_, _ = m.Measure("b", 12)
	assert.Equal(t, 2, m.Cached())
}

func TestMeasureEmptyAndInvalid(t *testing.T) {
	m, err := New(0)
	require.NoError(t, err)

	w, err := m.Measure("", 12)
	require.NoError(t, err)
	assert.Zero(t, w)

	_, err = m.Measure("x", 0)
	assert.Error(t, err)
}

func TestFaceIsSharedNewFaceIsNot(t *testing.T) {
	m, err := New(0)
	require.NoError(t, err)

	assert.Same(t, m.Face(12), m.Face(12))
	assert.NotSame(t, m.Face(12), m.NewFace(12))
	assert.Equal(t, m.Face(12).Metrics().Height, m.NewFace(12).Metrics().Height)
}

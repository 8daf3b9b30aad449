package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chessrisk/pkg/engine"
)

func TestChart(t *testing.T) {
	s := engine.NewSeries(4)
	s.Append(0, 0)
	s.Append(0, 1)
	s.Append(2.5, -2.5)
	s.Append(3.5, -5)

	out, err := Chart(s, 60, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, strings.Count(out, "\n"))
	assert.Contains(t, out, "•")
}

func TestChartRejectsShortSeries(t *testing.T) {
	s := engine.NewSeries(1)
	s.Append(1, 1)
	_, err := Chart(s, 60, 12)
	assert.True(t, errors.Is(err, ErrShortSeries))

	_, err = Chart(nil, 60, 12)
	assert.True(t, errors.Is(err, ErrShortSeries))
}

func TestChartRejectsFlatSeries(t *testing.T) {
	s := engine.NewSeries(3)
	for i := 0; i < 3; i++ {
		s.Append(0, 0)
	}
	_, err := Chart(s, 60, 12)
	assert.True(t, errors.Is(err, ErrFlatSeries))
}

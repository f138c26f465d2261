package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestValidateBarsAccepts(t *testing.T) {
	bars := []PriceBar{
		{Date: day(0), Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100},
		{Date: day(1), Open: 10.5, High: 12, Low: 10, Close: 11, Volume: 200},
	}
	assert.NoError(t, ValidateBars(bars))
	assert.NoError(t, ValidateBars(nil))
}

func TestValidateBarsRejects(t *testing.T) {
	cases := []struct {
		name string
		bars []PriceBar
	}{
		{"negative price", []PriceBar{{Date: day(0), Open: -1, High: 1, Low: 0, Close: 1}}},
		{"negative volume", []PriceBar{{Date: day(0), High: 1, Close: 1, Volume: -5}}},
		{"high below low", []PriceBar{{Date: day(0), High: 1, Low: 2, Close: 1.5}}},
		{"nan close", []PriceBar{{Date: day(0), High: 1, Close: math.NaN()}}},
		{"duplicate date", []PriceBar{
			{Date: day(0), High: 1, Close: 1},
			{Date: day(0), High: 1, Close: 1},
		}},
		{"descending date", []PriceBar{
			{Date: day(1), High: 1, Close: 1},
			{Date: day(0), High: 1, Close: 1},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBars(tc.bars)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestClosesAndVolumes(t *testing.T) {
	bars := []PriceBar{
		{Date: day(0), Close: 1, Volume: 10},
		{Date: day(1), Close: 2, Volume: 20},
	}
	assert.Equal(t, []float64{1, 2}, Closes(bars))
	assert.Equal(t, []float64{10, 20}, Volumes(bars))
}

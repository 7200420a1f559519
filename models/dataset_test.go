package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salesanalysis/models"
)

func TestSeriesColourAt(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		colours []string
		index   int
		want    string
	}{
		"first":       {[]string{"red", "blue"}, 0, "red"},
		"second":      {[]string{"red", "blue"}, 1, "blue"},
		"wraps":       {[]string{"red", "blue"}, 4, "red"},
		"wraps odd":   {[]string{"red", "blue"}, 3, "blue"},
		"no colours":  {nil, 2, ""},
		"negative":    {[]string{"red"}, -1, ""},
		"exact match": {[]string{"red", "blue", "gold"}, 2, "gold"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := models.Series{BackgroundColours: tc.colours}
			assert.Equal(t, tc.want, s.ColourAt(tc.index))
		})
	}
}

package store

import (
	"slices"

	"salesanalysis/models"
)

// Where the counter value lands in each series.
const (
	LINE_COUNTER_INDEX = 2
	BAR_COUNTER_INDEX  = 1
	PIE_COUNTER_INDEX  = 1
)

const (
	LINE_SERIES = "steps1"
	BAR_SERIES  = "expences"
	PIE_SERIES  = "Time"
)

const VIEW_LABEL = "SalesAnalysis"

var lineLabels = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
var barLabels = []string{"rent", "grosaries", "util", "ent", "transport"}
var pieLabels = []string{"yt", "music", "games", "ent", "study"}

var lineValues = []int{3000, 4500, 0, 5000, 1000, 3000, 8000}
var barValues = []int{3000, 0, 4500, 5000, 1000}
var pieValues = []int{1000, 0, 4500, 5000, 1000}

var SharedOptions = models.DisplayOptions{
	Responsive:     true,
	LegendPosition: models.LegendBottom,
	TitleDisplay:   true,
	Title:          "jflkfmklhfnmhk",
}

// LineDataset is the week of step counts, with the counter standing in for wednesday.
func LineDataset(counter int) models.Dataset {
	return models.Dataset{
		Kind:   models.LineChart,
		Labels: slices.Clone(lineLabels),
		Series: []models.Series{
			{
				Name:         LINE_SERIES,
				Values:       withCounter(lineValues, LINE_COUNTER_INDEX, counter),
				BorderColour: "red",
			},
		},
	}
}

// BarDataset is the monthly expenses, with the counter standing in for groceries.
func BarDataset(counter int) models.Dataset {
	return models.Dataset{
		Kind:   models.BarChart,
		Labels: slices.Clone(barLabels),
		Series: []models.Series{
			{
				Name:              BAR_SERIES,
				Values:            withCounter(barValues, BAR_COUNTER_INDEX, counter),
				BackgroundColours: []string{"red", "blue"},
				BorderColour:      "black",
				BorderWidth:       1,
			},
		},
	}
}

// PieDataset is time spent per activity, with the counter standing in for music.
func PieDataset(counter int) models.Dataset {
	return models.Dataset{
		Kind:   models.PieChart,
		Labels: slices.Clone(pieLabels),
		Series: []models.Series{
			{
				Name:              PIE_SERIES,
				Values:            withCounter(pieValues, PIE_COUNTER_INDEX, counter),
				BackgroundColours: []string{"red", "blue", "gold", "black", "pink"},
				BorderColour:      "black",
				BorderWidth:       1,
				HoverOffset:       4,
			},
		},
	}
}

// Datasets returns all three datasets in the order they appear on the page.
func Datasets(counter int) []models.Dataset {
	return []models.Dataset{
		LineDataset(counter),
		BarDataset(counter),
		PieDataset(counter),
	}
}

func withCounter(values []int, index int, counter int) []int {
	out := slices.Clone(values)
	out[index] = counter
	return out
}

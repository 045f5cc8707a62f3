package services

import (
	"math"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
	"github.com/sm8ta/webike_fleet_analytics_nikita/pkg/algo"
)

// Summary holds the central statistics of one sample.
type Summary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
}

// Summarize computes mean, median, population standard deviation and
// quartiles over a non-empty sample. Percentiles interpolate linearly
// between the two nearest ranks.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrNoValues
	}
	sorted := algo.MergeSort(values, false)
	mean := meanOf(values)
	return Summary{
		Mean:   mean,
		Median: percentileSorted(sorted, 50),
		Std:    stdOf(values, mean),
		P25:    percentileSorted(sorted, 25),
		P50:    percentileSorted(sorted, 50),
		P75:    percentileSorted(sorted, 75),
	}, nil
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdOf is the population standard deviation.
func stdOf(values []float64, mean float64) float64 {
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// percentileSorted expects an ascending, non-empty sample.
func percentileSorted(sorted []float64, pct float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := pct / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// TripStats pairs the duration and distance summaries of one trip set.
type TripStats struct {
	Durations Summary `json:"durations"`
	Distances Summary `json:"distances"`
}

// ComputeTripStats summarizes ride durations in minutes and distances
// in kilometres.
func ComputeTripStats(trips []*domain.Trip) (TripStats, error) {
	if len(trips) == 0 {
		return TripStats{}, ErrNoValues
	}
	durations := make([]float64, len(trips))
	distances := make([]float64, len(trips))
	for i, trip := range trips {
		durations[i] = trip.DurationMinutes()
		distances[i] = trip.DistanceKM
	}
	durationStats, err := Summarize(durations)
	if err != nil {
		return TripStats{}, err
	}
	distanceStats, err := Summarize(distances)
	if err != nil {
		return TripStats{}, err
	}
	return TripStats{Durations: durationStats, Distances: distanceStats}, nil
}

// DistanceMatrix computes pairwise Euclidean distances in coordinate
// space from paired latitude and longitude slices.
func DistanceMatrix(latitudes, longitudes []float64) ([][]float64, error) {
	if len(latitudes) != len(longitudes) {
		return nil, ErrLengthMismatch
	}
	n := len(latitudes)
	matrix := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			dLat := latitudes[i] - latitudes[j]
			dLon := longitudes[i] - longitudes[j]
			row[j] = math.Sqrt(dLat*dLat + dLon*dLon)
		}
		matrix[i] = row
	}
	return matrix, nil
}

// StationDistanceMatrix is DistanceMatrix over station coordinates.
func StationDistanceMatrix(stations []*domain.Station) [][]float64 {
	latitudes := make([]float64, len(stations))
	longitudes := make([]float64, len(stations))
	for i, station := range stations {
		latitudes[i] = station.Latitude
		longitudes[i] = station.Longitude
	}
	matrix, _ := DistanceMatrix(latitudes, longitudes)
	return matrix
}

// ZScoreOutliers flags values whose z-score magnitude exceeds the
// threshold. A zero-variance sample has no outliers.
func ZScoreOutliers(values []float64, threshold float64) []bool {
	mask := make([]bool, len(values))
	if len(values) == 0 {
		return mask
	}
	mean := meanOf(values)
	std := stdOf(values, mean)
	if std == 0 {
		return mask
	}
	for i, v := range values {
		if math.Abs((v-mean)/std) > threshold {
			mask[i] = true
		}
	}
	return mask
}

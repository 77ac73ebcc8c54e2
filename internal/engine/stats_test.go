package engine

import "testing"

func TestStatsOfMean(t *testing.T) {
	s := statsOf(data())
	if s.Mean() < 810.1388888 || 810.1388890 < s.Mean() {
		t.Fail()
	}
}

func TestStatsOfStdDeviation(t *testing.T) {
	s := statsOf(data())
	if s.StdDeviation() < 28.80697520 || 28.80697522 < s.StdDeviation() {
		t.Fail()
	}
}

func TestStatsOfEmpty(t *testing.T) {
	s := statsOf(nil)
	if s.Mean() != 0 {
		t.Fail()
	}
	if s.StdDeviation() != 0 {
		t.Fail()
	}
}

func data() []float64 {
	return []float64{
		810, 820, 820, 840, 840, 845, 785, 790, 785, 835, 835, 835, 845, 855, 850,
		760, 760, 770, 820, 820, 820, 820, 820, 825, 775, 775, 775, 825, 825, 825,
		815, 825, 825, 770, 760, 765,
	}
}

package synthesis

import (
	"math"
	"reflect"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"scaled", []float32{1, 0}, []float32{5, 0}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"mismatched lengths", []float32{1, 2}, []float32{1}, 0.0},
		{"empty", nil, nil, 0.0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCluster(t *testing.T) {
	// Two tight groups on orthogonal axes plus one outlier direction.
	vectors := [][]float32{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0, 1, 0},
		{0, 0.9, 0.1},
		{0, 0, 1},
	}

	labels := Cluster(vectors, 0.8)
	want := []int{0, 0, 1, 1, 2}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}
}

func TestClusterThresholdExtremes(t *testing.T) {
	vectors := [][]float32{{1, 0}, {0.9, 0.1}, {0, 1}}

	// Threshold so low everything joins the first cluster.
	if labels := Cluster(vectors, -1); !reflect.DeepEqual(labels, []int{0, 0, 0}) {
		t.Errorf("low threshold labels = %v", labels)
	}

	// Threshold above 1 isolates every vector.
	if labels := Cluster(vectors, 1.01); !reflect.DeepEqual(labels, []int{0, 1, 2}) {
		t.Errorf("high threshold labels = %v", labels)
	}
}

func TestClusterEmpty(t *testing.T) {
	if labels := Cluster(nil, 0.5); len(labels) != 0 {
		t.Errorf("labels = %v, want empty", labels)
	}
}

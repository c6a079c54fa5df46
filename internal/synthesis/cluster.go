package synthesis

import "math"

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value between -1 and 1, where 1 means identical direction.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denominator := float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB)))
	if denominator == 0 {
		return 0
	}

	return dot / denominator
}

// Cluster assigns each vector a group label by greedy agglomeration: a
// vector joins the first existing cluster whose seed similarity meets the
// threshold, otherwise it seeds a new cluster. Labels are assigned in
// input order starting from 0.
func Cluster(vectors [][]float32, threshold float32) []int {
	labels := make([]int, len(vectors))
	var seeds []int // index of the seed vector for each cluster

	for i, v := range vectors {
		assigned := -1
		for label, seedIdx := range seeds {
			if CosineSimilarity(v, vectors[seedIdx]) >= threshold {
				assigned = label
				break
			}
		}
		if assigned == -1 {
			assigned = len(seeds)
			seeds = append(seeds, i)
		}
		labels[i] = assigned
	}

	return labels
}

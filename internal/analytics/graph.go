package analytics

import "github.com/aegisops/aegis/internal/domain"

// Clustering time bounds in seconds. The estimate scales with graph size
// but stays inside a window the UI can animate against.
const (
	minClusterSeconds = 1.8
	maxClusterSeconds = 4.5
	clusterDivisor    = 120.0
)

// ClusterSeconds estimates how long the renderer's force layout needs to
// settle for a graph of this size, to one decimal place. The payload
// itself stays opaque; only element counts are inspected.
func ClusterSeconds(g domain.GraphPayload) float64 {
	est := float64(len(g.Nodes)+len(g.Edges)) / clusterDivisor
	if est < minClusterSeconds {
		est = minClusterSeconds
	}
	if est > maxClusterSeconds {
		est = maxClusterSeconds
	}
	return round1(est)
}

package domain

import "encoding/json"

// GraphPayload is the fraud relationship graph as delivered by the data
// source. Nodes and edges are opaque to the analytics layer: they are
// forwarded untouched to the external graph renderer. Only the element
// counts are inspected, to estimate clustering time.
type GraphPayload struct {
	Nodes []json.RawMessage `json:"nodes"`
	Edges []json.RawMessage `json:"edges"`
}

// GraphView is the graph payload plus the derived clustering estimate.
type GraphView struct {
	GraphPayload
	ClusterSeconds float64 `json:"clusterSeconds"`
}

// Package optimization provides shared data structures for break-even results.
package optimization

// Summary captures the result of a single break-even search.
type Summary struct {
	Target           string   `json:"target"`
	Field            string   `json:"field"`
	Original         float64  `json:"original"`
	Value            float64  `json:"value"`
	Floor            float64  `json:"floor"`
	MinimumNetResult float64  `json:"minimumNetResult"`
	Headroom         float64  `json:"headroom"`
	Iterations       int      `json:"iterations"`
	Converged        bool     `json:"converged"`
	Notes            []string `json:"notes,omitempty"`
	OriginalDisplay  string   `json:"originalDisplay,omitempty"`
	ValueDisplay     string   `json:"valueDisplay,omitempty"`
}

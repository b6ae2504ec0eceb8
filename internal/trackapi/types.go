package trackapi

// Response is the envelope the tracker wraps every payload in.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

// RunResultRecord is one evaluated epoch of a run as the tracker stores it.
type RunResultRecord struct {
	RunID      string             `json:"run_id"`
	Model      string             `json:"model"`
	Data       string             `json:"data"`
	Epoch      int                `json:"epoch"`
	Split      string             `json:"split"`
	Metrics    map[string]float64 `json:"metrics"`
	Summary    string             `json:"summary"`
	ParamCount int                `json:"param_count,omitempty"`
	ElapsedSec float64            `json:"elapsed_seconds,omitempty"`
	CreatedAt  string             `json:"created_at,omitempty"`
}

type PostRunResultResponse struct {
	ID string `json:"id"`
}

type RunResultBatchRequest struct {
	Records []RunResultRecord `json:"records"`
}

type PostRunResultBatchResponse struct {
	Accepted int `json:"accepted"`
}

type RunHistoryResponse struct {
	RunID   string            `json:"run_id"`
	Records []RunResultRecord `json:"records"`
}

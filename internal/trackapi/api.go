// Package trackapi provides a simple client wrapper for the run tracker
// service.
package trackapi

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"

	"github.com/tensorplex-labs/rankbench/internal/config"
)

// TrackAPIInterface is the interface for the tracker client methods used by
// the evaluation commands.
type TrackAPIInterface interface {
	// POST requests
	PostRunResult(record *RunResultRecord) (Response[PostRunResultResponse], error)
	PostRunResultBatch(records RunResultBatchRequest) (Response[PostRunResultBatchResponse], error)

	// GET requests
	GetRunHistory(runID string) (Response[RunHistoryResponse], error)
}

// TrackAPI is a REST client wrapper for the tracker service.
type TrackAPI struct {
	cfg    *config.TrackerEnvConfig
	client *resty.Client
}

// NewTrackAPI constructs a new TrackAPI client.
func NewTrackAPI(cfg *config.TrackerEnvConfig) (*TrackAPI, error) {
	if cfg == nil {
		return nil, fmt.Errorf("tracker env configuration cannot be nil")
	}
	if cfg.TrackerURL == "" {
		return nil, fmt.Errorf("tracker url cannot be empty")
	}

	client := resty.New().
		SetBaseURL(cfg.TrackerURL).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetTimeout(cfg.TrackerTimeout)

	return &TrackAPI{
		cfg:    cfg,
		client: client,
	}, nil
}

// PostRunResult submits one evaluated epoch.
func (t *TrackAPI) PostRunResult(record *RunResultRecord) (Response[PostRunResultResponse], error) {
	var out Response[PostRunResultResponse]

	resp, err := t.client.R().
		SetBody(record).
		SetResult(&out).
		Post("/runs/results")
	if err != nil {
		return Response[PostRunResultResponse]{}, fmt.Errorf("post run result: %w", err)
	}
	if resp.IsError() {
		return Response[PostRunResultResponse]{}, fmt.Errorf("post run result returned status %d: %s",
			resp.StatusCode(), resp.String())
	}
	return out, nil
}

// PostRunResultBatch submits every evaluated epoch of a run in one request.
func (t *TrackAPI) PostRunResultBatch(records RunResultBatchRequest) (Response[PostRunResultBatchResponse], error) {
	var out Response[PostRunResultBatchResponse]

	resp, err := t.client.R().
		SetBody(records).
		SetResult(&out).
		Post("/runs/results/batch")
	if err != nil {
		return Response[PostRunResultBatchResponse]{}, fmt.Errorf("post run result batch: %w", err)
	}
	if resp.IsError() {
		return Response[PostRunResultBatchResponse]{}, fmt.Errorf("post run result batch returned status %d: %s",
			resp.StatusCode(), resp.String())
	}
	return out, nil
}

// GetRunHistory fetches every record the tracker stored for a run.
func (t *TrackAPI) GetRunHistory(runID string) (Response[RunHistoryResponse], error) {
	var out Response[RunHistoryResponse]

	resp, err := t.client.R().
		SetResult(&out).
		Get(fmt.Sprintf("/runs/%s/history", runID))
	if err != nil {
		return Response[RunHistoryResponse]{}, fmt.Errorf("get run history: %w", err)
	}
	if resp.IsError() {
		return Response[RunHistoryResponse]{}, fmt.Errorf("get run history returned status %d: %s",
			resp.StatusCode(), resp.String())
	}
	return out, nil
}

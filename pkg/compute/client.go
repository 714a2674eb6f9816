// Package compute implements the client for the external compute service
// that executes queries too heavy for the storage backend: job submission,
// state polling and cancellation.
package compute

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// maxJobNameLength is the longest job name the service accepts.
	maxJobNameLength = 255

	maxErrorBodyLen = 1024
)

// ErrValidation marks requests the compute service rejected as invalid, as
// opposed to transient service failures.
var ErrValidation = errors.New("compute: validation error")

// JobRunState is the lifecycle state of a submitted job run.
type JobRunState string

const (
	JobRunStatePending    JobRunState = "PENDING"
	JobRunStateRunning    JobRunState = "RUNNING"
	JobRunStateSuccess    JobRunState = "SUCCESS"
	JobRunStateFailed     JobRunState = "FAILED"
	JobRunStateCancelling JobRunState = "CANCELLING"
	JobRunStateCancelled  JobRunState = "CANCELLED"
)

// StartJobRunRequest describes a job to submit.
type StartJobRunRequest struct {
	// Name identifies the job run; at most 255 characters.
	Name string `json:"name"`
	// ExecutionRole is the role the job assumes while running.
	ExecutionRole string `json:"executionRole"`
	// Parameters are the submit parameters passed to the job driver.
	Parameters []string `json:"parameters,omitempty"`
	// ResultIndex is the index the job writes its result into.
	ResultIndex string `json:"resultIndex,omitempty"`
	// Tags are attached to the job run for bookkeeping.
	Tags map[string]string `json:"tags,omitempty"`
}

// Config configures the compute service client.
type Config struct {
	// Address is the base URL of the compute service.
	Address string `yaml:"address"`
	// ApplicationID is the application jobs are submitted to.
	ApplicationID string `yaml:"application_id"`
	// Timeout is the per-request timeout.
	Timeout time.Duration `yaml:"timeout"`
	// HTTPClientConfig configures TLS and authentication of the underlying
	// HTTP client. It has no CLI flags.
	HTTPClientConfig config.HTTPClientConfig `yaml:"http_client_config"`
}

// RegisterFlags registers flags with the default prefix.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("compute", f)
}

// RegisterFlagsWithPrefix registers flags, prepending the provided prefix.
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Address, prefix+".address", "", "Base URL of the compute service.")
	f.StringVar(&cfg.ApplicationID, prefix+".application-id", "", "Application to submit job runs to.")
	f.DurationVar(&cfg.Timeout, prefix+".timeout", 30*time.Second, "Timeout for requests to the compute service.")
}

// Client submits job runs to the compute service and tracks their state.
type Client struct {
	cfg     Config
	client  *http.Client
	logger  log.Logger
	metrics *metrics
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg Config, logger log.Logger, reg prometheus.Registerer) (*Client, error) {
	client, err := config.NewClientFromConfig(cfg.HTTPClientConfig, "sift-compute")
	if err != nil {
		return nil, errors.Wrap(err, "create http client")
	}
	client.Timeout = cfg.Timeout
	return &Client{
		cfg:     cfg,
		client:  client,
		logger:  logger,
		metrics: newMetrics(reg),
	}, nil
}

// StartJobRun submits a job run and returns its ID. Invalid requests fail
// with [ErrValidation] before any request is sent.
func (c *Client) StartJobRun(ctx context.Context, req StartJobRunRequest) (string, error) {
	if req.Name == "" {
		return "", errors.Wrap(ErrValidation, "job name must not be empty")
	}
	if len(req.Name) > maxJobNameLength {
		return "", errors.Wrapf(ErrValidation, "job name exceeds %d characters", maxJobNameLength)
	}

	level.Debug(c.logger).Log("msg", "starting job run", "name", req.Name, "application", c.cfg.ApplicationID)

	var resp struct {
		JobRunID string `json:"jobRunId"`
	}
	path := fmt.Sprintf("/applications/%s/jobruns", c.cfg.ApplicationID)
	if err := c.do(ctx, "start_job_run", http.MethodPost, path, req, &resp); err != nil {
		return "", err
	}
	return resp.JobRunID, nil
}

// GetJobRunState returns the current state of a job run.
func (c *Client) GetJobRunState(ctx context.Context, jobRunID string) (JobRunState, error) {
	level.Debug(c.logger).Log("msg", "fetching job run state", "job", jobRunID, "application", c.cfg.ApplicationID)

	var resp struct {
		State JobRunState `json:"state"`
	}
	path := fmt.Sprintf("/applications/%s/jobruns/%s", c.cfg.ApplicationID, jobRunID)
	if err := c.do(ctx, "get_job_run_state", http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.State, nil
}

// CancelJobRun requests cancellation of a job run and returns the ID of the
// cancelled run. A job that cannot be cancelled (already finished, or
// cancellation disallowed) surfaces as an [ErrValidation] error.
func (c *Client) CancelJobRun(ctx context.Context, jobRunID string) (string, error) {
	level.Debug(c.logger).Log("msg", "cancelling job run", "job", jobRunID, "application", c.cfg.ApplicationID)

	var resp struct {
		JobRunID string `json:"jobRunId"`
	}
	path := fmt.Sprintf("/applications/%s/jobruns/%s", c.cfg.ApplicationID, jobRunID)
	if err := c.do(ctx, "cancel_job_run", http.MethodDelete, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.JobRunID, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "marshal %s request", operation)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Address+path, body)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.requestFailures.WithLabelValues(operation).Inc()
		return errors.Wrapf(err, "%s request", operation)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		c.metrics.requestFailures.WithLabelValues(operation).Inc()
		line := readErrorLine(resp.Body)
		if resp.StatusCode == http.StatusBadRequest {
			return errors.Wrapf(ErrValidation, "%s: %s", operation, line)
		}
		return errors.Errorf("%s: server returned HTTP status %s: %s", operation, resp.Status, line)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrapf(err, "decode %s response", operation)
		}
	}
	return nil
}

func readErrorLine(r io.Reader) string {
	scanner := bufio.NewScanner(io.LimitReader(r, maxErrorBodyLen))
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}

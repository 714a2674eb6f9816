package search

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grafana/dskit/backoff"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	contentTypeJSON   = "application/json"
	contentTypeNDJSON = "application/x-ndjson"

	maxErrorBodyLen = 1024
)

// Config configures the search backend client.
type Config struct {
	// Address is the base URL of the search backend.
	Address string `yaml:"address"`
	// Timeout is the per-request timeout.
	Timeout time.Duration `yaml:"timeout"`
	// Backoff controls retries of throttled and failed requests.
	Backoff backoff.Config `yaml:"backoff"`
	// HTTPClientConfig configures TLS and authentication of the underlying
	// HTTP client. It has no CLI flags.
	HTTPClientConfig config.HTTPClientConfig `yaml:"http_client_config"`
}

// RegisterFlags registers flags with the default prefix.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("search", f)
}

// RegisterFlagsWithPrefix registers flags, prepending the provided prefix.
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Address, prefix+".address", "http://localhost:9200", "Base URL of the search backend.")
	f.DurationVar(&cfg.Timeout, prefix+".timeout", 30*time.Second, "Timeout for requests to the search backend.")
	cfg.Backoff.RegisterFlagsWithPrefix(prefix, f)
}

// Client talks to the search backend over HTTP: search and write requests,
// index and mapping discovery, and scroll context cleanup. Requests that
// fail with a throttling or server error are retried with backoff.
type Client struct {
	cfg     Config
	client  *http.Client
	logger  log.Logger
	metrics *metrics
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg Config, logger log.Logger, reg prometheus.Registerer) (*Client, error) {
	client, err := config.NewClientFromConfig(cfg.HTTPClientConfig, "sift-search")
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

// Search executes the accumulated search request against its index.
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "marshal search request")
	}
	var resp SearchResponse
	if err := c.do(ctx, "search", http.MethodPost, "/"+req.Index+"/_search", contentTypeJSON, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Bulk indexes the given documents into index, waiting for a refresh so the
// documents are visible to the next search.
func (c *Client) Bulk(ctx context.Context, index string, docs []map[string]any) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	for _, doc := range docs {
		buf.WriteString(`{"index":{}}`)
		buf.WriteByte('\n')
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(err, "marshal bulk document")
		}
	}
	return c.do(ctx, "bulk", http.MethodPost, "/"+index+"/_bulk?refresh=wait_for", contentTypeNDJSON, buf.Bytes(), nil)
}

// DeleteByQuery deletes the documents of index matching query and returns
// the number of deleted documents. A nil query deletes all documents.
func (c *Client) DeleteByQuery(ctx context.Context, index string, query *Query) (int64, error) {
	if query == nil {
		query = &Query{MatchAll: &MatchAllQuery{}}
	}
	body, err := json.Marshal(map[string]*Query{"query": query})
	if err != nil {
		return 0, errors.Wrap(err, "marshal delete query")
	}
	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.do(ctx, "delete_by_query", http.MethodPost, "/"+index+"/_delete_by_query", contentTypeJSON, body, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

// CreateIndex creates an index with the given field mappings.
func (c *Client) CreateIndex(ctx context.Context, index string, mappings map[string]any) error {
	body, err := json.Marshal(map[string]any{
		"settings": map[string]any{
			"index": map[string]any{
				"number_of_shards":   5,
				"number_of_replicas": 0,
			},
		},
		"mappings": mappings,
	})
	if err != nil {
		return errors.Wrap(err, "marshal create index request")
	}
	return c.do(ctx, "create_index", http.MethodPut, "/"+index, contentTypeJSON, body, nil)
}

// GetIndexMappings returns the flattened field mappings of the given
// indices, keyed by concrete index name.
func (c *Client) GetIndexMappings(ctx context.Context, indices ...string) (map[string]Mapping, error) {
	var raw map[string]struct {
		Mappings map[string]any `json:"mappings"`
	}
	if err := c.do(ctx, "get_mappings", http.MethodGet, "/"+strings.Join(indices, ",")+"/_mapping", "", nil, &raw); err != nil {
		return nil, err
	}
	mappings := make(map[string]Mapping, len(raw))
	for index, body := range raw {
		mappings[index] = parseMapping(body.Mappings)
	}
	return mappings, nil
}

// GetIndexMaxResultWindows returns the max result window setting of the
// given indices, falling back to the backend default where the setting is
// not set explicitly.
func (c *Client) GetIndexMaxResultWindows(ctx context.Context, indices ...string) (map[string]int, error) {
	var raw map[string]struct {
		Settings map[string]any `json:"settings"`
		Defaults map[string]any `json:"defaults"`
	}
	path := "/" + strings.Join(indices, ",") + "/_settings?include_defaults=true&flat_settings=true"
	if err := c.do(ctx, "get_settings", http.MethodGet, path, "", nil, &raw); err != nil {
		return nil, err
	}
	windows := make(map[string]int, len(raw))
	for index, body := range raw {
		window := DefaultMaxResultWindow
		if w, ok := maxResultWindow(body.Settings); ok {
			window = w
		} else if w, ok := maxResultWindow(body.Defaults); ok {
			window = w
		}
		windows[index] = window
	}
	return windows, nil
}

// Cleanup releases the scroll context held by the backend for a paged
// search.
func (c *Client) Cleanup(ctx context.Context, scrollID string) error {
	body, err := json.Marshal(map[string]string{"scroll_id": scrollID})
	if err != nil {
		return errors.Wrap(err, "marshal clear scroll request")
	}
	return c.do(ctx, "clear_scroll", http.MethodDelete, "/_search/scroll", contentTypeJSON, body, nil)
}

func maxResultWindow(settings map[string]any) (int, bool) {
	value, ok := settings["index.max_result_window"]
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case string:
		window, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return window, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// do sends a request and decodes a 2xx response body into out. Requests
// rejected with 429 or a 5xx status are retried with backoff; all other
// errors are terminal.
func (c *Client) do(ctx context.Context, operation, method, path, contentType string, body []byte, out any) error {
	url := strings.TrimRight(c.cfg.Address, "/") + path

	retry := backoff.New(ctx, c.cfg.Backoff)
	var lastErr error
	for retry.Ongoing() {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return errors.Wrap(err, "create request")
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		start := time.Now()
		resp, err := c.client.Do(req)
		if err != nil {
			c.metrics.requestFailures.WithLabelValues(operation).Inc()
			lastErr = errors.Wrapf(err, "%s request", operation)
			level.Warn(c.logger).Log("msg", "request to search backend failed", "operation", operation, "err", err)
			retry.Wait()
			continue
		}

		status := resp.StatusCode
		c.metrics.requestDuration.WithLabelValues(operation, strconv.Itoa(status)).Observe(time.Since(start).Seconds())

		if status/100 == 2 {
			if out != nil {
				err = json.NewDecoder(resp.Body).Decode(out)
			}
			_ = resp.Body.Close()
			if err != nil {
				return errors.Wrapf(err, "decode %s response", operation)
			}
			return nil
		}

		line := readErrorLine(resp.Body)
		_ = resp.Body.Close()
		c.metrics.requestFailures.WithLabelValues(operation).Inc()
		lastErr = errors.Errorf("server returned HTTP status %s: %s", resp.Status, line)

		if status != http.StatusTooManyRequests && status/100 != 5 {
			return lastErr
		}

		level.Warn(c.logger).Log("msg", "retrying request to search backend", "operation", operation, "status", status)
		retry.Wait()
	}

	if lastErr != nil {
		return lastErr
	}
	return retry.Err()
}

func readErrorLine(r io.Reader) string {
	scanner := bufio.NewScanner(io.LimitReader(r, maxErrorBodyLen))
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}

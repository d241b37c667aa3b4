// Package testrail is a minimal client for the parts of the TestRail API v2 that the
// reporter uses: creating a run and adding results for cases.
package testrail

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/casereport/testrail-reporter/logging"
	"github.com/casereport/testrail-reporter/reporter"

	"github.com/pkg/errors"
)

const (
	apiPath            = "/index.php?/api/v2/"
	defaultHTTPTimeout = time.Second * 30
)

// ErrNoRun is returned by PublishResults when no run was created and none was configured.
var ErrNoRun = errors.New("no TestRail run to publish results to; set createTestRun or runId")

// Client implements reporter.TestManagementClient. It remembers the ID of the run created by
// CreateRun so that PublishResults can target it.
type Client struct {
	baseURL    string
	username   string
	password   string
	projectID  int
	suiteID    int
	httpClient *http.Client
	logger     logging.Logger
	runID      int
	lock       sync.Mutex
}

// NewClient creates a Client from the reporter options. If httpClient is nil, a client with
// a 30-second timeout is used.
func NewClient(config reporter.RunConfig, httpClient *http.Client, logger logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if logger == nil {
		logger = logging.NullLogger()
	}
	return &Client{
		baseURL:    BaseURL(config.Domain.StringValue()),
		username:   config.Username.StringValue(),
		password:   config.Password.StringValue(),
		projectID:  config.ProjectID.IntValue(),
		suiteID:    config.SuiteID.IntValue(),
		runID:      config.RunID.OrElse(0),
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the API root for a TestRail domain. A bare host name is assumed to use
// HTTPS; a domain that already has a scheme is used as given.
func BaseURL(domain string) string {
	domain = strings.TrimSuffix(domain, "/")
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	return domain + apiPath
}

// RunID returns the run that results will be published to, or 0 if there is none yet.
func (c *Client) RunID() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.runID
}

// CreateRun creates a run in the configured project and suite that includes all of the
// suite's cases.
func (c *Client) CreateRun(ctx context.Context, name, description string) error {
	params := addRunParams{
		SuiteID:     c.suiteID,
		Name:        name,
		Description: description,
		IncludeAll:  true,
	}
	var run runResponse
	if err := c.post(ctx, "add_run/"+strconv.Itoa(c.projectID), params, &run); err != nil {
		return errors.Wrap(err, "failed to create test run")
	}
	if run.ID == 0 {
		return errors.New("TestRail did not return an ID for the new test run")
	}
	c.logger.Printf("Created TestRail run %d", run.ID)
	c.lock.Lock()
	c.runID = run.ID
	c.lock.Unlock()
	return nil
}

// PublishResults adds all entries to the current run in one request.
func (c *Client) PublishResults(ctx context.Context, entries []reporter.ResultEntry) error {
	runID := c.RunID()
	if runID == 0 {
		return ErrNoRun
	}
	params := addResultsForCasesParams{Results: make([]resultParams, 0, len(entries))}
	for _, e := range entries {
		params.Results = append(params.Results, resultParams{
			CaseID:   int(e.CaseID),
			StatusID: int(e.Status),
			Comment:  e.Comment,
		})
	}
	if err := c.post(ctx, "add_results_for_cases/"+strconv.Itoa(runID), params, nil); err != nil {
		return errors.Wrapf(err, "failed to publish results to run %d", runID)
	}
	c.logger.Printf("Published %d results to TestRail run %d", len(entries), runID)
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, params interface{}, out interface{}) error {
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	c.logger.Printf("POST %s: %s", endpoint, string(data))
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+endpoint, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("unexpected response status %d from TestRail: %s",
			resp.StatusCode, strings.TrimSpace(string(respData)))
	}
	if out == nil || len(respData) == 0 {
		return nil
	}
	if err := json.Unmarshal(respData, out); err != nil {
		return errors.Wrapf(err, "malformed response from TestRail: %s", string(respData))
	}
	return nil
}

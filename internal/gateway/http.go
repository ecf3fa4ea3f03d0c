package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
)

// DefaultTimeout bounds a single gateway request.
const DefaultTimeout = 5 * time.Second

// HTTPOption configures the HTTP gateway.
type HTTPOption func(*httpGateway)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(g *httpGateway) { g.http = c }
}

// WithTimeout sets the per-request deadline. Zero or negative keeps the default.
func WithTimeout(d time.Duration) HTTPOption {
	return func(g *httpGateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

type httpGateway struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// NewHTTP returns a gateway for the REST API served at baseURL
// (e.g. http://localhost:8080).
func NewHTTP(baseURL string, opts ...HTTPOption) TaskGateway {
	g := &httpGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *httpGateway) Tree(ctx context.Context, projectID string) ([]*domain.PlanTask, error) {
	var tree []*contract.PlanTask
	if status, err := g.do(ctx, http.MethodGet, "/api/plan/"+url.PathEscape(projectID), nil, &tree); err != nil {
		return nil, wrap("tree", "", status, err)
	}
	roots := make([]*domain.PlanTask, 0, len(tree))
	for _, dto := range tree {
		t, err := dto.ToDomain()
		if err != nil {
			return nil, wrap("tree", dto.ID, 0, fmt.Errorf("%w: decoding task: %w", domain.ErrTransport, err))
		}
		roots = append(roots, t)
	}
	return roots, nil
}

func (g *httpGateway) Create(ctx context.Context, req CreateRequest) (*domain.PlanTask, error) {
	if req.Task == nil {
		return nil, wrap("create", "", 0, &domain.ValidationError{Field: "task", Reason: "is required"})
	}
	body := contract.CreatePlanTaskRequest{
		ParentID:  req.ParentID,
		ProjectID: req.ProjectID,
		Task:      *contract.PlanTaskFromDomain(req.Task),
	}
	var resp contract.TaskMessage
	if status, err := g.do(ctx, http.MethodPost, "/api/plan/tasks", body, &resp); err != nil {
		return nil, wrap("create", "", status, err)
	}
	return decodeTask("create", resp.Task)
}

func (g *httpGateway) Update(ctx context.Context, id string, patch domain.PlanTaskPatch) (*domain.PlanTask, error) {
	var resp contract.PlanTask
	path := "/api/plan/tasks/" + url.PathEscape(id)
	if status, err := g.do(ctx, http.MethodPut, path, contract.PlanTaskPatchFromDomain(patch), &resp); err != nil {
		return nil, wrap("update", id, status, err)
	}
	return decodeTask("update", &resp)
}

func (g *httpGateway) Delete(ctx context.Context, id string) error {
	status, err := g.do(ctx, http.MethodDelete, "/api/plan/tasks/"+url.PathEscape(id), nil, nil)
	return wrap("delete", id, status, err)
}

// SetTimesheetState maps submitted and resubmitted onto the timesheet
// endpoints. The API has no route back to draft.
func (g *httpGateway) SetTimesheetState(ctx context.Context, id string, state domain.TimesheetState) (*domain.PlanTask, error) {
	var path string
	switch state {
	case domain.TimesheetSubmitted:
		path = "/api/timesheet/submit"
	case domain.TimesheetResubmitted:
		path = "/api/timesheet/resubmit"
	default:
		return nil, wrap("timesheet", id, 0, &domain.ValidationError{Field: "timesheetState", Reason: "must be submitted or resubmitted"})
	}
	var resp contract.TaskMessage
	if status, err := g.do(ctx, http.MethodPost, path, contract.TimesheetRequest{TaskID: id}, &resp); err != nil {
		return nil, wrap("timesheet", id, status, err)
	}
	return decodeTask("timesheet", resp.Task)
}

func decodeTask(op string, dto *contract.PlanTask) (*domain.PlanTask, error) {
	if dto == nil {
		return nil, wrap(op, "", 0, fmt.Errorf("%w: response carried no task", domain.ErrTransport))
	}
	t, err := dto.ToDomain()
	if err != nil {
		return nil, wrap(op, dto.ID, 0, fmt.Errorf("%w: decoding task: %w", domain.ErrTransport, err))
	}
	return t, nil
}

// do sends one request and decodes a 2xx body into out. It returns the
// response status (0 when no response arrived) and a classified error.
func (g *httpGateway) do(ctx context.Context, method, path string, in, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: reading response: %w", domain.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, statusError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decoding response: %w", domain.ErrTransport, err)
	}
	return resp.StatusCode, nil
}

func statusError(status int, body []byte) error {
	msg := http.StatusText(status)
	var e contract.ErrorResponse
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}
	return fmt.Errorf("%w: %s", domain.ErrTransport, msg)
}

// IsTransport reports whether err means the store could not be reached or
// answered with a server failure.
func IsTransport(err error) bool {
	return errors.Is(err, domain.ErrTransport)
}

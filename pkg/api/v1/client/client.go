// Package client provides the API client for interacting with the Krib
// scheduling API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/kribhq/krib/internal/api/v1/services"
	"github.com/kribhq/krib/internal/db/models"
)

// DefaultBaseURL is used when no base URL is configured
const DefaultBaseURL = "http://localhost:8080"

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Job Endpoints
	CreateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	GetJob(ctx context.Context, id uint) (*models.Job, error)
	GetJobByNumber(ctx context.Context, number string) (*models.Job, error)
	ListJobs(ctx context.Context, opts *ListJobsOptions) ([]models.Job, error)
	UpdateJobStatus(ctx context.Context, id uint, status models.JobStatus) error
	AssignTechs(ctx context.Context, id uint, techIDs []uint) (*models.Job, error)

	// Slot Offer Endpoints
	CreateOffer(ctx context.Context, jobID uint, slots []services.SlotRequest, message string) (*models.Job, error)
	AcceptSlot(ctx context.Context, jobID uint, slotID string) (*models.Job, error)
	RequestNewTimes(ctx context.Context, jobID uint) error
	SuggestSlots(ctx context.Context, jobID uint, count int) ([]services.SlotRequest, error)

	// Availability Endpoints
	GetWeekAvailability(ctx context.Context, techID uint, start string) (*WeekAvailabilityResponse, error)
	ListTimeOff(ctx context.Context, techID uint) ([]models.TimeOffEntry, error)
	CreateTimeOff(ctx context.Context, techID uint, entry *models.TimeOffEntry) (*models.TimeOffEntry, error)
	DeleteTimeOff(ctx context.Context, techID uint, entryID string) error

	// Progress Endpoints
	SubmitDailyReport(ctx context.Context, jobID uint, report services.DailyReport) (*models.DailyProgressRecord, error)
	ListProgress(ctx context.Context, jobID uint) ([]models.DailyProgressRecord, error)
	GetHandoff(ctx context.Context, jobID uint, day int) (*models.HandoffRecord, error)
	PreviewBlocks(ctx context.Context, jobID uint, start string) ([]models.ScheduleBlock, error)
}

var _ Client = &APIClient{}

// ListJobsOptions filters the job listing
type ListJobsOptions struct {
	Status       string
	ContractorID uint
	Limit        int
	Offset       int
}

// WeekAvailabilityResponse is the seven-day availability view for one
// technician
type WeekAvailabilityResponse struct {
	TechID uint                       `json:"tech_id"`
	Start  string                     `json:"start"`
	Days   []services.DayAvailability `json:"days"`
}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")

	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and decodes the response into v
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	if statusCode < 200 || statusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
			return &fiber.Error{Code: statusCode, Message: apiErr.Error}
		}
		return &fiber.Error{Code: statusCode, Message: string(body)}
	}

	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	return c.doRequest(agent, response)
}

// HealthCheck checks the health of the API server
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	var response map[string]string
	err := c.executeRequest(ctx, http.MethodGet, "/health", nil, &response)
	return response, err
}

// CreateJob creates a new job
func (c *APIClient) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	var created models.Job
	err := c.executeRequest(ctx, http.MethodPost, "/api/v1/jobs", job, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetJob retrieves a job by numeric ID
func (c *APIClient) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/jobs/%d", id), nil, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetJobByNumber retrieves a job by its human-readable job number
func (c *APIClient) GetJobByNumber(ctx context.Context, number string) (*models.Job, error) {
	var job models.Job
	endpoint := "/api/v1/jobs/0?number=" + url.QueryEscape(number)
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs retrieves jobs matching the given filters
func (c *APIClient) ListJobs(ctx context.Context, opts *ListJobsOptions) ([]models.Job, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
		if opts.ContractorID != 0 {
			query.Set("contractor_id", fmt.Sprintf("%d", opts.ContractorID))
		}
		if opts.Limit > 0 {
			query.Set("limit", fmt.Sprintf("%d", opts.Limit))
		}
		if opts.Offset > 0 {
			query.Set("offset", fmt.Sprintf("%d", opts.Offset))
		}
	}
	endpoint := "/api/v1/jobs"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var response struct {
		Jobs []models.Job `json:"jobs"`
	}
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response)
	return response.Jobs, err
}

// UpdateJobStatus transitions a job to a new status
func (c *APIClient) UpdateJobStatus(ctx context.Context, id uint, status models.JobStatus) error {
	body := map[string]string{"status": status.String()}
	return c.executeRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v1/jobs/%d/status", id), body, nil)
}

// AssignTechs sets the technicians working a job
func (c *APIClient) AssignTechs(ctx context.Context, id uint, techIDs []uint) (*models.Job, error) {
	body := map[string][]uint{"tech_ids": techIDs}
	var job models.Job
	err := c.executeRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v1/jobs/%d/techs", id), body, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateOffer sends a batch of proposed slots to the customer
func (c *APIClient) CreateOffer(ctx context.Context, jobID uint, slots []services.SlotRequest, message string) (*models.Job, error) {
	body := map[string]interface{}{
		"slots":   slots,
		"message": message,
	}
	var job models.Job
	err := c.executeRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/offers", jobID), body, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// AcceptSlot accepts one offered slot on behalf of the customer
func (c *APIClient) AcceptSlot(ctx context.Context, jobID uint, slotID string) (*models.Job, error) {
	endpoint := fmt.Sprintf("/api/v1/jobs/%d/offers/%s/accept", jobID, url.PathEscape(slotID))
	var job models.Job
	err := c.executeRequest(ctx, http.MethodPost, endpoint, nil, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// RequestNewTimes flags that none of the offered slots work for the customer
func (c *APIClient) RequestNewTimes(ctx context.Context, jobID uint) error {
	endpoint := fmt.Sprintf("/api/v1/jobs/%d/offers/request-new-times", jobID)
	return c.executeRequest(ctx, http.MethodPost, endpoint, nil, nil)
}

// SuggestSlots proposes candidate slots the contractor could offer
func (c *APIClient) SuggestSlots(ctx context.Context, jobID uint, count int) ([]services.SlotRequest, error) {
	endpoint := fmt.Sprintf("/api/v1/jobs/%d/offers/suggestions?count=%d", jobID, count)
	var response struct {
		Suggestions []services.SlotRequest `json:"suggestions"`
	}
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response)
	return response.Suggestions, err
}

// GetWeekAvailability returns a seven-day availability view for a technician
func (c *APIClient) GetWeekAvailability(ctx context.Context, techID uint, start string) (*WeekAvailabilityResponse, error) {
	endpoint := fmt.Sprintf("/api/v1/techs/%d/availability/week", techID)
	if start != "" {
		endpoint += "?start=" + url.QueryEscape(start)
	}
	var response WeekAvailabilityResponse
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListTimeOff returns a technician's time off entries
func (c *APIClient) ListTimeOff(ctx context.Context, techID uint) ([]models.TimeOffEntry, error) {
	endpoint := fmt.Sprintf("/api/v1/techs/%d/time-off", techID)
	var response struct {
		Entries []models.TimeOffEntry `json:"entries"`
	}
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response)
	return response.Entries, err
}

// CreateTimeOff records a new time off entry for a technician
func (c *APIClient) CreateTimeOff(ctx context.Context, techID uint, entry *models.TimeOffEntry) (*models.TimeOffEntry, error) {
	endpoint := fmt.Sprintf("/api/v1/techs/%d/time-off", techID)
	var created models.TimeOffEntry
	err := c.executeRequest(ctx, http.MethodPost, endpoint, entry, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteTimeOff removes a technician's time off entry
func (c *APIClient) DeleteTimeOff(ctx context.Context, techID uint, entryID string) error {
	endpoint := fmt.Sprintf("/api/v1/techs/%d/time-off/%s", techID, url.PathEscape(entryID))
	return c.executeRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// SubmitDailyReport records an end-of-day report for a multi-day job
func (c *APIClient) SubmitDailyReport(ctx context.Context, jobID uint, report services.DailyReport) (*models.DailyProgressRecord, error) {
	endpoint := fmt.Sprintf("/api/v1/jobs/%d/progress", jobID)
	var record models.DailyProgressRecord
	err := c.executeRequest(ctx, http.MethodPost, endpoint, report, &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListProgress returns all daily progress records for a job
func (c *APIClient) ListProgress(ctx context.Context, jobID uint) ([]models.DailyProgressRecord, error) {
	endpoint := fmt.Sprintf("/api/v1/jobs/%d/progress", jobID)
	var response struct {
		Records []models.DailyProgressRecord `json:"records"`
	}
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response)
	return response.Records, err
}

// GetHandoff returns the end-of-day handoff for a specific work day
func (c *APIClient) GetHandoff(ctx context.Context, jobID uint, day int) (*models.HandoffRecord, error) {
	endpoint := fmt.Sprintf("/api/v1/jobs/%d/handoffs/%d", jobID, day)
	var handoff models.HandoffRecord
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &handoff)
	if err != nil {
		return nil, err
	}
	return &handoff, nil
}

// PreviewBlocks returns the schedule blocks a job would occupy if work
// started on the given date
func (c *APIClient) PreviewBlocks(ctx context.Context, jobID uint, start string) ([]models.ScheduleBlock, error) {
	endpoint := fmt.Sprintf("/api/v1/jobs/%d/progress/blocks?start=%s", jobID, url.QueryEscape(start))
	var response struct {
		Blocks []models.ScheduleBlock `json:"blocks"`
	}
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response)
	return response.Blocks, err
}

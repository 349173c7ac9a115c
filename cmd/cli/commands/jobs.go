package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kribhq/krib/internal/api/v1/services"
	"github.com/kribhq/krib/internal/db/models"
	"github.com/kribhq/krib/pkg/api/v1/client"
)

// Job flag names
const (
	flagJobID        = "id"
	flagJobNumber    = "number"
	flagJobStatus    = "status"
	flagContractorID = "contractor-id"
	flagCustomerID   = "customer-id"
	flagDuration     = "duration"
	flagDescription  = "description"
	flagSlotDates    = "date"
	flagSlotStart    = "start"
	flagSlotEnd      = "end"
	flagSlotID       = "slot-id"
	flagMessage      = "message"
	flagCount        = "count"
)

// jobOutput represents the filtered output for a job
type jobOutput struct {
	ID            uint                 `json:"id"`
	JobNumber     string               `json:"job_number"`
	Status        string               `json:"status"`
	IsMultiDay    bool                 `json:"is_multi_day"`
	ScheduledDate string               `json:"scheduled_date,omitempty"`
	ScheduledTime string               `json:"scheduled_time,omitempty"`
	OfferedSlots  []models.OfferedSlot `json:"offered_slots,omitempty"`
	Created       string               `json:"created_at"`
}

func jobToOutput(job *models.Job) jobOutput {
	return jobOutput{
		ID:            job.ID,
		JobNumber:     job.JobNumber,
		Status:        job.Status.String(),
		IsMultiDay:    job.IsMultiDay,
		ScheduledDate: job.ScheduledDate,
		ScheduledTime: job.ScheduledTime,
		OfferedSlots:  job.OfferedSlots,
		Created:       job.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}

// GetJobsCmd returns the jobs command tree
func GetJobsCmd() *cobra.Command {
	return jobsCmd
}

func init() {
	jobsCmd.AddCommand(createJobCmd)
	jobsCmd.AddCommand(getJobCmd)
	jobsCmd.AddCommand(listJobsCmd)
	jobsCmd.AddCommand(offerSlotsCmd)
	jobsCmd.AddCommand(acceptSlotCmd)
	jobsCmd.AddCommand(requestNewTimesCmd)
	jobsCmd.AddCommand(suggestSlotsCmd)

	// Add flags for create
	createJobCmd.Flags().Uint(flagContractorID, 0, "Contractor ID")
	createJobCmd.Flags().Uint(flagCustomerID, 0, "Customer ID")
	createJobCmd.Flags().Int(flagDuration, 0, "Estimated duration in minutes")
	createJobCmd.Flags().String(flagDescription, "", "Job description")
	_ = createJobCmd.MarkFlagRequired(flagContractorID)
	_ = createJobCmd.MarkFlagRequired(flagCustomerID)
	_ = createJobCmd.MarkFlagRequired(flagDuration)

	// Add flags for get
	getJobCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	getJobCmd.Flags().StringP(flagJobNumber, "n", "", "Job number, e.g. KRB-20250602-101500")

	// Add flags for list
	listJobsCmd.Flags().String(flagJobStatus, "", "Filter by job status")
	listJobsCmd.Flags().Uint(flagContractorID, 0, "Filter by contractor ID")

	// Add flags for offer
	offerSlotsCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	offerSlotsCmd.Flags().StringSlice(flagSlotDates, nil, "Slot date (repeatable, YYYY-MM-DD)")
	offerSlotsCmd.Flags().StringSlice(flagSlotStart, nil, "Slot start clock time (repeatable, HH:MM)")
	offerSlotsCmd.Flags().StringSlice(flagSlotEnd, nil, "Slot end clock time (repeatable, HH:MM)")
	offerSlotsCmd.Flags().String(flagMessage, "", "Message shown to the customer")
	_ = offerSlotsCmd.MarkFlagRequired(flagJobID)
	_ = offerSlotsCmd.MarkFlagRequired(flagSlotDates)

	// Add flags for accept
	acceptSlotCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	acceptSlotCmd.Flags().String(flagSlotID, "", "Offered slot ID")
	_ = acceptSlotCmd.MarkFlagRequired(flagJobID)
	_ = acceptSlotCmd.MarkFlagRequired(flagSlotID)

	// Add flags for request-new-times
	requestNewTimesCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	_ = requestNewTimesCmd.MarkFlagRequired(flagJobID)

	// Add flags for suggest
	suggestSlotsCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	suggestSlotsCmd.Flags().Int(flagCount, 3, "Number of suggestions")
	_ = suggestSlotsCmd.MarkFlagRequired(flagJobID)
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage jobs and slot offers",
}

var createJobCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		contractorID, _ := cmd.Flags().GetUint(flagContractorID)
		customerID, _ := cmd.Flags().GetUint(flagCustomerID)
		duration, _ := cmd.Flags().GetInt(flagDuration)
		description, _ := cmd.Flags().GetString(flagDescription)

		job, err := apiClient.CreateJob(context.Background(), &models.Job{
			ContractorID:      contractorID,
			CustomerID:        customerID,
			EstimatedDuration: duration,
			Description:       description,
		})
		if err != nil {
			return fmt.Errorf("error creating job: %w", err)
		}
		return printJSON(jobToOutput(job))
	},
}

var getJobCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a job by ID or job number",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint(flagJobID)
		number, _ := cmd.Flags().GetString(flagJobNumber)

		var (
			job *models.Job
			err error
		)
		switch {
		case number != "":
			job, err = apiClient.GetJobByNumber(context.Background(), number)
		case jobID != 0:
			job, err = apiClient.GetJob(context.Background(), jobID)
		default:
			return fmt.Errorf("either --%s or --%s is required", flagJobID, flagJobNumber)
		}
		if err != nil {
			return fmt.Errorf("error getting job: %w", err)
		}
		return printJSON(jobToOutput(job))
	},
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		status, _ := cmd.Flags().GetString(flagJobStatus)
		contractorID, _ := cmd.Flags().GetUint(flagContractorID)

		jobs, err := apiClient.ListJobs(context.Background(), &client.ListJobsOptions{
			Status:       status,
			ContractorID: contractorID,
		})
		if err != nil {
			return fmt.Errorf("error listing jobs: %w", err)
		}

		output := make([]jobOutput, len(jobs))
		for i := range jobs {
			output[i] = jobToOutput(&jobs[i])
		}
		return printJSON(map[string]interface{}{"jobs": output})
	},
}

var offerSlotsCmd = &cobra.Command{
	Use:   "offer",
	Short: "Offer a batch of slots to the customer",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint(flagJobID)
		dates, _ := cmd.Flags().GetStringSlice(flagSlotDates)
		starts, _ := cmd.Flags().GetStringSlice(flagSlotStart)
		ends, _ := cmd.Flags().GetStringSlice(flagSlotEnd)
		message, _ := cmd.Flags().GetString(flagMessage)

		if len(starts) != len(dates) || len(ends) != len(dates) {
			return fmt.Errorf("--%s, --%s and --%s must be given once per slot", flagSlotDates, flagSlotStart, flagSlotEnd)
		}

		slots := make([]services.SlotRequest, len(dates))
		for i := range dates {
			slots[i] = services.SlotRequest{
				Date:      dates[i],
				StartTime: starts[i],
				EndTime:   ends[i],
			}
		}

		job, err := apiClient.CreateOffer(context.Background(), jobID, slots, message)
		if err != nil {
			return fmt.Errorf("error creating offer: %w", err)
		}
		return printJSON(jobToOutput(job))
	},
}

var acceptSlotCmd = &cobra.Command{
	Use:   "accept",
	Short: "Accept an offered slot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint(flagJobID)
		slotID, _ := cmd.Flags().GetString(flagSlotID)

		job, err := apiClient.AcceptSlot(context.Background(), jobID, slotID)
		if err != nil {
			return fmt.Errorf("error accepting slot: %w", err)
		}
		return printJSON(jobToOutput(job))
	},
}

var requestNewTimesCmd = &cobra.Command{
	Use:   "request-new-times",
	Short: "Flag that none of the offered slots work",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint(flagJobID)

		if err := apiClient.RequestNewTimes(context.Background(), jobID); err != nil {
			return fmt.Errorf("error requesting new times: %w", err)
		}
		fmt.Println("New times requested")
		return nil
	},
}

var suggestSlotsCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest slots the contractor could offer",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint(flagJobID)
		count, _ := cmd.Flags().GetInt(flagCount)

		slots, err := apiClient.SuggestSlots(context.Background(), jobID, count)
		if err != nil {
			return fmt.Errorf("error getting suggestions: %w", err)
		}
		return printJSON(map[string]interface{}{"suggestions": slots})
	},
}

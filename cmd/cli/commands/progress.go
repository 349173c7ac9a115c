package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kribhq/krib/internal/api/v1/services"
)

// Progress flag names
const (
	flagReportDate    = "date"
	flagCrewIDs       = "crew"
	flagLeadTechID    = "lead"
	flagHoursWorked   = "hours"
	flagPercent       = "percent"
	flagWorkCompleted = "completed"
	flagWorkRemaining = "remaining"
	flagIssues        = "issues"
	flagDayNumber     = "day"
	flagBlockStart    = "start"
)

// GetProgressCmd returns the progress command tree
func GetProgressCmd() *cobra.Command {
	return progressCmd
}

func init() {
	progressCmd.AddCommand(reportProgressCmd)
	progressCmd.AddCommand(listProgressCmd)
	progressCmd.AddCommand(getHandoffCmd)
	progressCmd.AddCommand(previewBlocksCmd)

	// Add flags for report
	reportProgressCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	reportProgressCmd.Flags().String(flagReportDate, "", "Work date (YYYY-MM-DD)")
	reportProgressCmd.Flags().UintSlice(flagCrewIDs, nil, "Technician IDs on site (repeatable)")
	reportProgressCmd.Flags().Uint(flagLeadTechID, 0, "Lead technician ID")
	reportProgressCmd.Flags().Float64(flagHoursWorked, 0, "Hours worked")
	reportProgressCmd.Flags().Int(flagPercent, 0, "Cumulative percent complete")
	reportProgressCmd.Flags().StringSlice(flagWorkCompleted, nil, "Work completed today (repeatable)")
	reportProgressCmd.Flags().StringSlice(flagWorkRemaining, nil, "Work remaining (repeatable)")
	reportProgressCmd.Flags().StringSlice(flagIssues, nil, "Issues encountered (repeatable)")
	_ = reportProgressCmd.MarkFlagRequired(flagJobID)
	_ = reportProgressCmd.MarkFlagRequired(flagReportDate)
	_ = reportProgressCmd.MarkFlagRequired(flagWorkCompleted)

	// Add flags for list
	listProgressCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	_ = listProgressCmd.MarkFlagRequired(flagJobID)

	// Add flags for handoff
	getHandoffCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	getHandoffCmd.Flags().Int(flagDayNumber, 0, "Work day number")
	_ = getHandoffCmd.MarkFlagRequired(flagJobID)
	_ = getHandoffCmd.MarkFlagRequired(flagDayNumber)

	// Add flags for blocks
	previewBlocksCmd.Flags().UintP(flagJobID, "i", 0, "Job ID")
	previewBlocksCmd.Flags().String(flagBlockStart, "", "First work date (YYYY-MM-DD)")
	_ = previewBlocksCmd.MarkFlagRequired(flagJobID)
	_ = previewBlocksCmd.MarkFlagRequired(flagBlockStart)
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Track multi-day job progress",
}

var reportProgressCmd = &cobra.Command{
	Use:   "report",
	Short: "Submit an end-of-day progress report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint(flagJobID)
		date, _ := cmd.Flags().GetString(flagReportDate)
		crew, _ := cmd.Flags().GetUintSlice(flagCrewIDs)
		lead, _ := cmd.Flags().GetUint(flagLeadTechID)
		hours, _ := cmd.Flags().GetFloat64(flagHoursWorked)
		percent, _ := cmd.Flags().GetInt(flagPercent)
		completed, _ := cmd.Flags().GetStringSlice(flagWorkCompleted)
		remaining, _ := cmd.Flags().GetStringSlice(flagWorkRemaining)
		issues, _ := cmd.Flags().GetStringSlice(flagIssues)

		record, err := apiClient.SubmitDailyReport(context.Background(), jobID, services.DailyReport{
			Date:            date,
			CrewIDs:         crew,
			LeadTechID:      lead,
			HoursWorked:     hours,
			PercentComplete: percent,
			WorkCompleted:   completed,
			WorkRemaining:   remaining,
			Issues:          issues,
		})
		if err != nil {
			return fmt.Errorf("error submitting report: %w", err)
		}
		return printJSON(record)
	},
}

var listProgressCmd = &cobra.Command{
	Use:   "list",
	Short: "List a job's daily progress records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint(flagJobID)

		records, err := apiClient.ListProgress(context.Background(), jobID)
		if err != nil {
			return fmt.Errorf("error listing progress: %w", err)
		}
		return printJSON(map[string]interface{}{"records": records})
	},
}

var getHandoffCmd = &cobra.Command{
	Use:   "handoff",
	Short: "Show the end-of-day handoff for a work day",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint(flagJobID)
		day, _ := cmd.Flags().GetInt(flagDayNumber)

		handoff, err := apiClient.GetHandoff(context.Background(), jobID, day)
		if err != nil {
			return fmt.Errorf("error getting handoff: %w", err)
		}
		return printJSON(handoff)
	},
}

var previewBlocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Preview the per-day schedule blocks for a job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint(flagJobID)
		start, _ := cmd.Flags().GetString(flagBlockStart)

		blocks, err := apiClient.PreviewBlocks(context.Background(), jobID, start)
		if err != nil {
			return fmt.Errorf("error previewing blocks: %w", err)
		}
		return printJSON(map[string]interface{}{"blocks": blocks})
	},
}

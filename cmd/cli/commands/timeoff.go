package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kribhq/krib/internal/db/models"
)

// Time off flag names
const (
	flagTechID       = "tech-id"
	flagEntryID      = "entry-id"
	flagStartDate    = "start-date"
	flagEndDate      = "end-date"
	flagTimeOffType  = "type"
	flagTimeOffNotes = "notes"
)

// GetTimeOffCmd returns the time-off command tree
func GetTimeOffCmd() *cobra.Command {
	return timeOffCmd
}

func init() {
	timeOffCmd.AddCommand(listTimeOffCmd)
	timeOffCmd.AddCommand(addTimeOffCmd)
	timeOffCmd.AddCommand(removeTimeOffCmd)

	// Add flags for list
	listTimeOffCmd.Flags().UintP(flagTechID, "t", 0, "Technician ID")
	_ = listTimeOffCmd.MarkFlagRequired(flagTechID)

	// Add flags for add
	addTimeOffCmd.Flags().UintP(flagTechID, "t", 0, "Technician ID")
	addTimeOffCmd.Flags().String(flagStartDate, "", "First blocked date (YYYY-MM-DD)")
	addTimeOffCmd.Flags().String(flagEndDate, "", "Last blocked date (YYYY-MM-DD)")
	addTimeOffCmd.Flags().String(flagTimeOffType, string(models.TimeOffTypeVacation), "Time off type (vacation, sick, personal)")
	addTimeOffCmd.Flags().String(flagTimeOffNotes, "", "Notes")
	_ = addTimeOffCmd.MarkFlagRequired(flagTechID)
	_ = addTimeOffCmd.MarkFlagRequired(flagStartDate)
	_ = addTimeOffCmd.MarkFlagRequired(flagEndDate)

	// Add flags for remove
	removeTimeOffCmd.Flags().UintP(flagTechID, "t", 0, "Technician ID")
	removeTimeOffCmd.Flags().String(flagEntryID, "", "Time off entry ID")
	_ = removeTimeOffCmd.MarkFlagRequired(flagTechID)
	_ = removeTimeOffCmd.MarkFlagRequired(flagEntryID)
}

var timeOffCmd = &cobra.Command{
	Use:   "time-off",
	Short: "Manage technician time off",
}

var listTimeOffCmd = &cobra.Command{
	Use:   "list",
	Short: "List a technician's time off entries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		techID, _ := cmd.Flags().GetUint(flagTechID)

		entries, err := apiClient.ListTimeOff(context.Background(), techID)
		if err != nil {
			return fmt.Errorf("error listing time off: %w", err)
		}
		return printJSON(map[string]interface{}{"entries": entries})
	},
}

var addTimeOffCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new time off entry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		techID, _ := cmd.Flags().GetUint(flagTechID)
		startDate, _ := cmd.Flags().GetString(flagStartDate)
		endDate, _ := cmd.Flags().GetString(flagEndDate)
		offType, _ := cmd.Flags().GetString(flagTimeOffType)
		notes, _ := cmd.Flags().GetString(flagTimeOffNotes)

		parsedType, err := models.ParseTimeOffType(offType)
		if err != nil {
			return err
		}

		entry, err := apiClient.CreateTimeOff(context.Background(), techID, &models.TimeOffEntry{
			StartDate: startDate,
			EndDate:   endDate,
			Type:      parsedType,
			Notes:     notes,
		})
		if err != nil {
			return fmt.Errorf("error creating time off entry: %w", err)
		}
		return printJSON(entry)
	},
}

var removeTimeOffCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a time off entry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		techID, _ := cmd.Flags().GetUint(flagTechID)
		entryID, _ := cmd.Flags().GetString(flagEntryID)

		if err := apiClient.DeleteTimeOff(context.Background(), techID, entryID); err != nil {
			return fmt.Errorf("error removing time off entry: %w", err)
		}
		fmt.Println("Time off entry removed")
		return nil
	},
}

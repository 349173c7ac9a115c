package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

const flagWeekStart = "start"

// GetAvailabilityCmd returns the availability command tree
func GetAvailabilityCmd() *cobra.Command {
	return availabilityCmd
}

func init() {
	availabilityCmd.AddCommand(weekAvailabilityCmd)

	weekAvailabilityCmd.Flags().UintP(flagTechID, "t", 0, "Technician ID")
	weekAvailabilityCmd.Flags().String(flagWeekStart, "", "First date of the window (YYYY-MM-DD, default today)")
	_ = weekAvailabilityCmd.MarkFlagRequired(flagTechID)
}

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Inspect technician availability",
}

var weekAvailabilityCmd = &cobra.Command{
	Use:   "week",
	Short: "Show a seven-day availability view for a technician",
	RunE: func(cmd *cobra.Command, _ []string) error {
		techID, _ := cmd.Flags().GetUint(flagTechID)
		start, _ := cmd.Flags().GetString(flagWeekStart)

		week, err := apiClient.GetWeekAvailability(context.Background(), techID, start)
		if err != nil {
			return fmt.Errorf("error getting week availability: %w", err)
		}
		return printJSON(week)
	},
}

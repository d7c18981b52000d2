package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pulse-app/pulse/internal/daemon"
	"github.com/pulse-app/pulse/internal/domain"
)

func init() {
	focusAddCmd.Flags().StringVarP(&focusType, "type", "t", "SKILL", "AREA, SKILL, HABIT, PROJECT or MAINTENANCE")
	focusAddCmd.Flags().StringVarP(&focusParent, "parent", "p", "", "Parent AREA id")
	focusListCmd.Flags().BoolVar(&focusArchived, "archived", false, "Include archived focus areas")
	focusCmd.AddCommand(focusAddCmd, focusListCmd, focusArchiveCmd)
	rootCmd.AddCommand(focusCmd)
}

var (
	focusType     string
	focusParent   string
	focusArchived bool
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Manage focus areas",
}

var focusAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a focus area",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		area, err := app.Tracker.CreateFocusArea(args[0], domain.FocusAreaType(focusType), focusParent)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s %q (%s)\n", area.Type, area.Name, area.ID)
		return nil
	},
}

var focusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List focus areas",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		areas, err := app.Tracker.FocusAreas(focusArchived)
		if err != nil {
			return err
		}
		if len(areas) == 0 {
			fmt.Println("No focus areas yet. Create one with 'pulse focus add'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tPARENT")
		for _, a := range areas {
			name := a.Name
			if a.Archived {
				name += " (archived)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, name, a.Type, a.ParentID)
		}
		return w.Flush()
	},
}

var focusArchiveCmd = &cobra.Command{
	Use:   "archive ID",
	Short: "Archive a focus area (history is kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		if err := app.Tracker.Archive(args[0]); err != nil {
			return err
		}
		fmt.Println("Archived.")
		return nil
	},
}

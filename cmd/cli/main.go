package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emreacar/nurseshift/internal/config"
	"github.com/emreacar/nurseshift/pkg/core/model"
	"github.com/emreacar/nurseshift/pkg/core/services"
	"github.com/emreacar/nurseshift/pkg/postgres"
	"github.com/emreacar/nurseshift/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var app *App

func main() {
	rootCmd := &cobra.Command{
		Use:   "nurseshift",
		Short: "Nurse shift scheduling CLI - manage the roster and generate monthly schedules",
		Long:  `A CLI tool for managing the nurse roster, recording leaves, and generating fair monthly shift schedules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.logger != nil {
					app.logger.Sync()
				}
				if app.database != nil {
					app.database.Close()
				}
			}
		},
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(listNursesCmd())
	rootCmd.AddCommand(addNurseCmd())
	rootCmd.AddCommand(addLeaveCmd())
	rootCmd.AddCommand(listLeavesCmd())
	rootCmd.AddCommand(viewScheduleCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger("cli")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Debug("Loading configuration")
	app.cfg, err = config.LoadWithEnv()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.logger.Debug("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.logger.Debug("Application initialized")
	return nil
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <month>",
		Short: "Generate the shift schedule for a YYYY-MM month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			result, err := services.GenerateSchedule(app.ctx, app.database, app.cfg, app.logger, args[0], force)
			if err != nil {
				return err
			}

			fmt.Printf("\nSchedule generated for %s\n\n", result.Schedule.Month)
			fmt.Printf("Schedule ID: %s\n", result.Schedule.ID)
			fmt.Printf("Shifts:      %d\n", result.Run.ShiftCount)
			fmt.Printf("Assignments: %d\n", result.Run.AssignmentCount)
			fmt.Printf("Elapsed:     %s\n\n", result.Run.Elapsed)

			fairness := result.Run.Fairness
			fmt.Printf("Fairness:    %.2f/100\n", fairness.Overall)
			fmt.Printf("  hours:     %.2f (std dev %.2f)\n", fairness.HoursScore, fairness.HoursStdDev)
			fmt.Printf("  nights:    %.2f (std dev %.2f)\n", fairness.NightsScore, fairness.NightsStdDev)
			fmt.Printf("  weekends:  %.2f (std dev %.2f)\n", fairness.WeekendsScore, fairness.WeekendsStdDev)

			if len(result.Run.Warnings) > 0 {
				fmt.Printf("\nWarnings:\n")
				for _, warning := range result.Run.Warnings {
					fmt.Printf("  ! %s\n", warning)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Delete and regenerate an existing schedule for the month")

	return cmd
}

func listNursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listNurses",
		Short: "List the nurse roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nurses, err := services.ListNurses(app.ctx, app.database)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d nurses:\n\n", len(nurses))
			for _, n := range nurses {
				fmt.Printf("- %s (%s) - %s\n", n.Name, n.ID, n.Role)
			}
			fmt.Println()

			return nil
		},
	}
}

func addNurseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "addNurse <name> <role>",
		Short: "Add a nurse to the roster (role: responsible or staff)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nurse, err := services.AddNurse(app.ctx, app.database, app.logger, args[0], model.NurseRole(args[1]))
			if err != nil {
				return err
			}

			fmt.Printf("\nNurse added: %s (%s) - %s\n\n", nurse.Name, nurse.ID, nurse.Role)
			return nil
		},
	}
}

func addLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "addLeave <nurse_id> <type> <start_date> <end_date>",
		Short: "Record a leave (type: annual, excuse, sick, preference; dates: YYYY-MM-DD)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			leave, err := services.AddLeave(app.ctx, app.database, app.logger,
				args[0], model.LeaveType(args[1]), args[2], args[3])
			if err != nil {
				return err
			}

			fmt.Printf("\nLeave recorded for %s: %s %s to %s\n\n",
				leave.NurseName, leave.Type, leave.StartDate, leave.EndDate)
			return nil
		},
	}
}

func listLeavesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listLeaves",
		Short: "List all recorded leaves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			leaves, err := services.ListLeaves(app.ctx, app.database)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d leaves:\n\n", len(leaves))
			for _, l := range leaves {
				fmt.Printf("- %s: %s %s to %s (%s)\n", l.NurseName, l.Type, l.StartDate, l.EndDate, l.ID)
			}
			fmt.Println()

			return nil
		},
	}
}

func viewScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "viewSchedule <month>",
		Short: "Show the generated schedule for a YYYY-MM month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := services.ViewSchedule(app.ctx, app.database, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nSchedule for %s", detail.Month)
			if detail.FairnessScore != nil {
				fmt.Printf(" (fairness %.2f/100)", *detail.FairnessScore)
			}
			fmt.Printf("\n\n")

			for _, day := range detail.Days {
				fmt.Printf("%s\n", day.Date)
				for _, shift := range day.Shifts {
					status := "INCOMPLETE"
					if shift.IsComplete {
						status = "ok"
					}
					fmt.Printf("  %-12s %s-%s [%s]\n", shift.Type, shift.StartTime, shift.EndTime, status)
					for _, a := range shift.Assignments {
						fmt.Printf("    - %s (%s)\n", a.NurseName, a.NurseRole)
					}
				}
			}
			fmt.Println()

			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <month>",
		Short: "Show per-nurse workload statistics for a YYYY-MM month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := services.MonthlyStats(app.ctx, app.database, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nWorkload for %s:\n\n", args[0])
			fmt.Printf("%-25s %-12s %6s %6s %7s %9s\n", "Nurse", "Role", "Hours", "Days", "Nights", "Weekends")
			for _, s := range stats {
				fmt.Printf("%-25s %-12s %6d %6d %7d %9d\n",
					s.NurseName, s.Role, s.TotalHours, s.DayShifts, s.NightShifts, s.WeekendShifts)
			}
			fmt.Println()

			return nil
		},
	}
}

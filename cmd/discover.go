package cmd

import (
	"context"
	"fmt"
	"log"

	"brother-bridge/brotherql"
	"brother-bridge/core/config"
	"brother-bridge/core/database"
	"brother-bridge/core/logger"
	"brother-bridge/feature/machines"
	"brother-bridge/feature/machines/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var discoverApply bool

// discoverCmd lists attached Brother USB printers and compares them
// against the machine registry.
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List attached Brother USB printers",
	Long: `Scans the USB bus for Brother printers and builds a reconcile plan
against the machine registry: attached printers missing from the registry
and registered printers that have vanished. The plan is read-only unless
--apply is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}

		svc := machines.NewService(db, logg)
		if err := svc.Migrate(); err != nil {
			return err
		}

		planner := reconcile.NewPlanner(svc, brotherql.DiscoverUSB)
		plan, err := planner.Plan(context.Background())
		if err != nil {
			return err
		}

		if len(plan.Results) == 0 {
			fmt.Println("no Brother USB printers attached or registered")
			return nil
		}

		for _, r := range plan.Results {
			state := "registered, attached"
			switch {
			case !r.Registered:
				state = "NOT REGISTERED"
			case !r.Attached:
				state = "VANISHED"
			}
			name := r.Product
			if name == "" {
				name = r.Key
			}
			fmt.Printf("  %-40s %-24s %s\n", r.Key, name, state)
		}

		fmt.Printf("\n%d printer(s), %d unregistered, %d vanished, %d planned action(s)\n",
			plan.Summary.TotalPrinters, plan.Summary.Unregistered,
			plan.Summary.Vanished, len(plan.Actions))

		if !discoverApply || len(plan.Actions) == 0 {
			return nil
		}

		applied, err := planner.Apply(context.Background(), plan)
		if err != nil {
			return err
		}
		logg.Info("reconcile plan applied", zap.Int("actions", applied))
		return nil
	},
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverApply, "apply", false, "apply the reconcile plan")
	RootCmd.AddCommand(discoverCmd)
}

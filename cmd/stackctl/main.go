package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"harmonicd/internal/alloc"
	"harmonicd/internal/registry"
	"harmonicd/pkg/types"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// buildRootCmd constructs the Cobra command tree.
func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stackctl",
		Short:         "Compute and inspect parallel-slot allocations for the model stack",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var catalogPath string
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Optional catalog overlay file (YAML)")

	loadRegistry := func() (*registry.Registry, error) {
		if catalogPath == "" {
			return registry.Default(), nil
		}
		return registry.LoadFile(catalogPath)
	}

	// allocate
	var (
		profileID   string
		gpuMemGB    float64
		models      []string
		minParallel int
		savePath    string
		save        bool
	)
	allocateCmd := &cobra.Command{
		Use:     "allocate",
		Short:   "Allocate parallel slots to models against a hardware profile",
		Example: "  stackctl allocate --profile generic_24gb\n  stackctl allocate --profile evo_x2_92gb --models executive,coder --save",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			hw, ok := reg.Profile(profileID)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "unknown profile %q, using %s\n", profileID, registry.DefaultProfileID)
				hw = reg.ProfileOrDefault(profileID)
			}
			if gpuMemGB > 0 {
				hw.GPUMemGB = gpuMemGB
			}
			names := models
			if len(names) == 0 {
				names = registry.DefaultStack()
			}
			plan := alloc.Allocate(reg.Resolve(names), hw, minParallel)
			printPlan(cmd.OutOrStdout(), plan)
			if save || savePath != "" {
				p, err := alloc.SavePlan(plan, savePath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nConfiguration saved to: %s\n", p)
			}
			return nil
		},
	}
	allocateCmd.Flags().StringVar(&profileID, "profile", registry.DefaultProfileID, "Hardware profile id")
	allocateCmd.Flags().Float64Var(&gpuMemGB, "gpu-mem", 0, "Override GPU memory (GB)")
	allocateCmd.Flags().StringSliceVar(&models, "models", nil, "Models to allocate (default: standard stack)")
	allocateCmd.Flags().IntVar(&minParallel, "min-parallel", 1, "Minimum acceptable parallel degree")
	allocateCmd.Flags().StringVar(&savePath, "save-path", "", "Save configuration to a specific file")
	allocateCmd.Flags().BoolVar(&save, "save", false, "Save configuration to "+alloc.DefaultPlanPath)
	root.AddCommand(allocateCmd)

	// profiles
	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "List hardware profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			for _, p := range reg.Profiles() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-36s %6.0fGB  peak=%-3d max=%-3d reserve=%.0f%%\n",
					p.ID, p.Name, p.GPUMemGB, p.PeakParallel, p.MaxParallel, p.ReservePct*100)
			}
			return nil
		},
	}
	root.AddCommand(profilesCmd)

	// models
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "List the model catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			for _, m := range reg.Models() {
				fmt.Fprintf(cmd.OutOrStdout(), "tier%-2d %-20s base=%.1fGB kv=%.1fGB/slot  (%s)\n",
					m.Tier, m.Name, m.BaseGB, m.KVGB, m.Source)
			}
			return nil
		},
	}
	root.AddCommand(modelsCmd)

	return root
}

// tierNames labels tier groups in the allocation summary.
var tierNames = map[int]string{1: "EXECUTIVE", 2: "DIRECTORS", 3: "SPECIALISTS", 4: "HEAVY"}

func tierName(tier int) string {
	if n, ok := tierNames[tier]; ok {
		return n
	}
	return "OTHER"
}

// printPlan renders the allocation summary grouped by tier.
func printPlan(w io.Writer, plan types.AllocationPlan) {
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, "HARMONIC STACK ALLOCATION")
	fmt.Fprintf(w, "Hardware: %s\n", plan.Hardware.Name)
	fmt.Fprintf(w, "GPU Memory: %.0fGB\n", plan.Hardware.GPUMemGB)
	fmt.Fprintln(w, "============================================================")

	lastTier := -1
	for _, e := range plan.Entries {
		if e.Tier != lastTier {
			fmt.Fprintf(w, "\n[Tier %d: %s]\n", e.Tier, tierName(e.Tier))
			lastTier = e.Tier
		}
		if e.Parallel > 0 {
			fmt.Fprintf(w, "  %-25s %3dx  (%.1fGB)\n", e.Model, e.Parallel, e.MemoryGB)
		} else {
			fmt.Fprintf(w, "  %-25s  SKIPPED (insufficient memory)\n", e.Model)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Total Allocated: %.1fGB / %.1fGB available\n", plan.TotalGB, plan.BudgetGB)
	fmt.Fprintf(w, "Headroom: %.1fGB\n", plan.BudgetGB-plan.TotalGB)
	fmt.Fprintf(w, "Server parallelism: %d\n", plan.MaxParallel)
	fmt.Fprintln(w, "============================================================")
}

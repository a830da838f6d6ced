package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetAddr string

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset demo data on a running server",
	Long: `Calls POST /api/demo/reset on a running farum-care server, which clears
all treatment plans, user plans and activity logs and loads the sample data again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &http.Client{Timeout: 10 * time.Second}
		return runReset(cmd, client, resetAddr)
	},
}

func init() {
	resetCmd.Flags().StringVar(&resetAddr, "addr", "http://localhost:8080", "base URL of the farum-care API")
}

type resetResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		TreatmentPlans int `json:"treatmentPlans"`
		UserPlans      int `json:"userPlans"`
		ActivityLogs   int `json:"activityLogs"`
	} `json:"data"`
}

func runReset(cmd *cobra.Command, client *http.Client, addr string) error {
	url := strings.TrimRight(addr, "/") + "/api/demo/reset"

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("reset request failed: %w", err)
	}
	defer resp.Body.Close()

	var out resetResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode reset response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !out.Success {
		return fmt.Errorf("reset failed (%d): %s", resp.StatusCode, out.Message)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, color.GreenString("✓ %s", out.Message))
	faint := color.New(color.Faint)
	fmt.Fprintln(w, faint.Sprintf("  treatment plans: %d", out.Data.TreatmentPlans))
	fmt.Fprintln(w, faint.Sprintf("  user plans:      %d", out.Data.UserPlans))
	fmt.Fprintln(w, faint.Sprintf("  activity logs:   %d", out.Data.ActivityLogs))
	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-care/internal/config"
)

// v holds configuration shared by all commands: defaults, FARUM_* env vars and bound flags.
var v = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   "farum-care",
	Short: "Therapy companion API: treatment plan review and patient activity tracking",
	Long: `farum-care serves the therapy companion backend.

Therapists review AI-suggested treatment plans; once approved, a plan becomes
the patient's active plan, where activities are tracked and summarised weekly.

QUICK START:

  $ farum-care serve                      # start the API on :8080 with demo data
  $ farum-care serve --port 9000          # custom port
  $ farum-care reset                      # reset demo data on a running server

CONFIGURATION (env):

  FARUM_PORT, FARUM_MODE (local|gcp), FARUM_STORAGE_BACKEND (memory|firestore),
  FARUM_GCP_PROJECT, FARUM_GCP_LOCATION, FARUM_MODEL_NAME, FARUM_USE_MOCK_LLM,
  FARUM_LOG_LEVEL, FARUM_SEED_ON_START, FARUM_CORS_ALLOWED_ORIGIN`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
}

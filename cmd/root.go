package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathtutor",
	Short: "AI Math Tutor backend",
	Long:  "Backend for the AI Math Tutor: Paystack billing reconciliation, subscription gating, and the tutoring chat proxy.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

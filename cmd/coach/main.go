package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Adsharma18/AiCareerCoachClean/internal/config"
	"github.com/Adsharma18/AiCareerCoachClean/internal/pkg/logger"
	"github.com/Adsharma18/AiCareerCoachClean/internal/service"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/chat"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/coachapi"

	"github.com/spf13/cobra"
)

var (
	apiURL  string
	timeout time.Duration
	goal    string
	pdfPath string
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "Chat with the AI career coach",
	Long: `Interactive terminal client for the AI career coach.

Type a question to get advice. Commands:
  /retry        resend the last message after a failure
  /pdf [path]   save the latest roadmap as a PDF
  /goal <text>  set the career goal printed on exported roadmaps
  /reset        start a new conversation
  /help         show commands
  /quit         exit`,
	SilenceUsage: true,
	RunE:         runCoach,
}

func init() {
	rootCmd.Flags().StringVar(&apiURL, "api", "", "coach API base URL (default $COACH_API_URL or http://localhost:8000)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "per-request timeout (default $COACH_REQUEST_TIMEOUT_SECONDS or 30s)")
	rootCmd.Flags().StringVar(&goal, "goal", "", "career goal to start with")
	rootCmd.Flags().StringVar(&pdfPath, "pdf-path", defaultPDFPath, "where /pdf saves the roadmap")
}

func runCoach(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if apiURL != "" {
		cfg.Client.APIBaseURL = apiURL
	}
	if timeout > 0 {
		cfg.Client.RequestTimeout = timeout
	}

	// File only, so log lines never interleave with the conversation
	log := logger.NewIsolatedLogger(cfg.Client.LogFilePath)
	defer log.Sync()

	client := coachapi.NewClient(cfg.Client.APIBaseURL, cfg.Client.RequestTimeout)
	coordinator := service.NewSessionCoordinator(chat.NewConversation(), client, client, log)
	if goal != "" {
		coordinator.SetGoal(goal)
	}

	repl := NewREPL(coordinator, cmd.InOrStdin(), cmd.OutOrStdout())
	repl.PDFPath = pdfPath
	return repl.Run(cmd.Context())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

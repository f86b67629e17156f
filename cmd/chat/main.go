package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/quote-chat/internal/client"
	"github.com/zhouzirui/quote-chat/internal/config"
	"github.com/zhouzirui/quote-chat/internal/logging"
	chatsvc "github.com/zhouzirui/quote-chat/internal/service/chat"
	"github.com/zhouzirui/quote-chat/internal/ui"
)

var (
	gatewayURL string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Terminal client for the insurance quote assistant",
	Long: `chat talks to the quote chat gateway over POST /api/chat, keeping the
session cookie the gateway relays so every turn belongs to one conversation.`,
	PersistentPreRunE: loadEnv,
	RunE:              run,
}

func init() {
	rootCmd.Flags().StringVar(&gatewayURL, "gateway", "", "gateway base URL (defaults to GATEWAY_URL)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write debug logs to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadEnv(_ *cobra.Command, _ []string) error {
	// 缺少 .env 不是错误
	_ = godotenv.Load()
	return nil
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if gatewayURL == "" {
		gatewayURL = cfg.GatewayURL
	}

	logger := zerolog.Nop()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		if logger, err = logging.NewWithWriter(f, "debug", logging.FormatJSON); err != nil {
			return err
		}
	}

	c, err := client.New(gatewayURL)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := chatsvc.NewStore(c, chatsvc.WithLogger(logger))
	logger.Debug().Str("gateway", gatewayURL).Msg("starting chat")

	p := tea.NewProgram(ui.NewApp(ctx, store), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run chat ui: %w", err)
	}
	return nil
}

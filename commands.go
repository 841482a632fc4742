package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_scriptstyle/internal/cli"
	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
	"github.com/anatolykoptev/go_scriptstyle/internal/styleserver"
	"github.com/anatolykoptev/go_scriptstyle/internal/webserver"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "go_scriptstyle",
		Short:         "Learn a YouTube video's writing style and write new scripts in it",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsEngine(cmd) {
				return nil
			}
			return initEngine()
		},
	}
	serve := newServeCmd()
	root.RunE = serve.RunE
	root.AddCommand(serve, newInteractiveCmd(), newRestyleCmd(), newExtractIDCmd())
	return root
}

// offlineCommands run without LLM configuration, including cobra's own
// help and shell completion commands.
var offlineCommands = map[string]bool{
	"extract-id":                    true,
	"help":                          true,
	"completion":                    true,
	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

func needsEngine(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if offlineCommands[c.Name()] {
			return false
		}
	}
	return true
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server and the web front end",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return serve()
		},
	}
}

func serve() error {
	mcpPort := env.Str("MCP_PORT", "8893")
	webPort := env.Str("WEB_PORT", "8080")
	gin.SetMode(env.Str("GIN_MODE", gin.ReleaseMode))

	pipeline := newPipeline(engine.Cfg.TranscriptMaxChars)

	web := webserver.NewServer(addr(webPort), webserver.Options{
		Pipeline:    pipeline,
		StaticDir:   env.Str("WEB_STATIC_DIR", ""),
		CORSOrigins: env.List("CORS_ALLOWED_ORIGINS", ""),
	})
	ln, err := net.Listen("tcp", web.Addr)
	if err != nil {
		return fmt.Errorf("web server: %w", err)
	}
	webErr := make(chan error, 1)
	go func() {
		slog.Info("web server listening", slog.String("addr", ln.Addr().String()))
		if err := web.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("web server failed", slog.Any("error", err))
			webErr <- err
		}
		close(webErr)
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = web.Shutdown(ctx)
	}()

	slog.Info("starting go_scriptstyle", slog.String("port", mcpPort))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_scriptstyle",
		Version: version,
	}, nil)
	styleserver.RegisterTools(server, pipeline)
	slog.Info("tools registered", slog.Int("count", 4))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_scriptstyle",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 300 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		return err
	}
	select {
	case err := <-webErr:
		if err != nil {
			return fmt.Errorf("web server: %w", err)
		}
	default:
	}
	return nil
}

func newInteractiveCmd() *cobra.Command {
	var maxChars int
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Analyze one video, then write scripts for topics typed at the prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return cli.Interactive(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), newPipeline(maxChars))
		},
	}
	addMaxCharsFlag(cmd, &maxChars)
	return cmd
}

// addMaxCharsFlag registers --max-chars. Terminal flows send the full
// transcript unless CLI_TRANSCRIPT_MAX_CHARS or the flag says otherwise.
func addMaxCharsFlag(cmd *cobra.Command, maxChars *int) {
	cmd.Flags().IntVar(maxChars, "max-chars", env.Int("CLI_TRANSCRIPT_MAX_CHARS", 0),
		"Transcript characters sent for analysis (0 = full transcript)")
}

func newRestyleCmd() *cobra.Command {
	var maxChars int
	cmd := &cobra.Command{
		Use:   "restyle [URL] [TOPIC]",
		Short: "Write one script on TOPIC in the style of the video at URL",
		Example: `  go_scriptstyle restyle "https://www.youtube.com/watch?v=dQw4w9WgXcQ" "home espresso"
  go_scriptstyle restyle dQw4w9WgXcQ "home espresso" --max-chars 5000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err := cli.Restyle(ctx, cmd.OutOrStdout(), newPipeline(maxChars), args[0], args[1])
			if err != nil {
				slog.Debug("restyle failed", slog.Any("error", err))
				return errors.New(engine.UserMessage(err))
			}
			return nil
		},
	}
	addMaxCharsFlag(cmd, &maxChars)
	return cmd
}

func newExtractIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract-id [URL]",
		Short: "Print the video ID of a YouTube link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := engine.ExtractVideoID(args[0])
			if !ok {
				return errors.New(engine.UserMessage(engine.ErrInvalidReference))
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

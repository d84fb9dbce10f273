package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/martijn/garage/internal/api"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long:  "Start the REST API server used by the front office",
	RunE: func(cmd *cobra.Command, args []string) error {
		logOut, closeLog, err := openLogOutput(cfg.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()
		log.SetOutput(logOut)

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		server := api.NewServer(cfg, logOut, services.ClientService, services.AttachmentService)

		// Start server in goroutine
		serverErr := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		// Wait for interrupt signal or server error
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		fmt.Println("Server is ready. Press Ctrl+C to stop.")

		select {
		case err := <-serverErr:
			return fmt.Errorf("server error: %w", err)
		case <-sigChan:
			fmt.Println("\nShutting down gracefully...")
		}

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		fmt.Println("Server stopped")
		return nil
	},
}

// openLogOutput returns stdout, teed into logFile when one is configured.
func openLogOutput(logFile string) (io.Writer, func(), error) {
	if logFile == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return io.MultiWriter(os.Stdout, f), func() { f.Close() }, nil
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

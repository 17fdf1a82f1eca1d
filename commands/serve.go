package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dj-booking-sync/container"
	"dj-booking-sync/logger"
	"dj-booking-sync/routes"
	"dj-booking-sync/types"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Start the HTTP host for admin actions and lifecycle events",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run database migrations before serving")

	return cmd
}

func runServe(ctx context.Context, migrate bool) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	if migrate {
		if err := runMigrations(db); err != nil {
			return err
		}
	}

	c := container.NewContainer(cfg, db)
	go c.Audit.ProcessLog()

	app := fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          90 * time.Second,
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: cfg.App.IsProduction(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(types.Fail(err.Error()))
		},
	})
	routes.SetupRoutes(app, c)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := cfg.App.Host + ":" + cfg.App.Port
		logger.Success("Server is running on " + addr)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		c.Audit.Close()
		return err
	case <-ctx.Done():
	}

	logger.Info("Server is shutting down...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	c.Audit.Close()
	logger.Info("Server exited")
	return nil
}

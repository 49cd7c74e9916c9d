// Command devserver runs a local task backend with a STOMP broker that
// publishes deadline reminders, for trying the client without a real API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/devserver"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/user"
)

type options struct {
	addr      string
	stompAddr string
	token     string
	seed      string
	project   string
	assignee  string
	schedule  string
	window    time.Duration
	debug     bool
}

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("devserver error", "error", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:          "devserver",
		Short:        "Run a local task backend and reminder broker",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}

	cmd.Flags().StringVar(&o.addr, "addr", "127.0.0.1:8080", "HTTP listen address")
	cmd.Flags().StringVar(&o.stompAddr, "stomp-addr", "127.0.0.1:61613", "STOMP TCP listen address")
	cmd.Flags().StringVar(&o.token, "token", os.Getenv("TASKBOARD_TOKEN"), "bearer token clients must send (empty disables auth)")
	cmd.Flags().StringVar(&o.seed, "seed", "", "YAML file with tasks to serve")
	cmd.Flags().StringVar(&o.project, "project", "demo", "project id for the sample tasks")
	cmd.Flags().StringVar(&o.assignee, "assignee", user.Current(), "assignee (reminder user id) for the sample tasks")
	cmd.Flags().StringVar(&o.schedule, "schedule", "@every 1m", "cron schedule for the reminder job")
	cmd.Flags().DurationVar(&o.window, "window", 24*time.Hour, "remind about tasks due within this window")
	cmd.Flags().BoolVar(&o.debug, "debug", false, "log every request")

	return cmd
}

func run(ctx context.Context, o options) error {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	tasks, err := seedTasks(o)
	if err != nil {
		return err
	}
	store := devserver.NewStore(tasks)

	broker, err := devserver.StartBroker(o.stompAddr, logger)
	if err != nil {
		return err
	}
	defer broker.Close()

	publisher, err := devserver.DialPublisher(broker.Addr())
	if err != nil {
		return err
	}
	defer publisher.Close()

	reminders := devserver.NewReminders(store, publisher.Publish, models.DefaultTopicTemplate, o.window, logger)
	if err := reminders.Start(o.schedule); err != nil {
		return err
	}
	defer reminders.Stop()

	server := devserver.New(store,
		devserver.WithToken(o.token),
		devserver.WithBroker(broker),
		devserver.WithLogger(logger))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(o.addr)
	}()

	logger.Info("devserver starting",
		"http", o.addr,
		"stomp", broker.Addr(),
		"websocket", "ws://"+o.addr+"/ws",
		"tasks", len(tasks),
		"pid", os.Getpid())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("devserver shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func seedTasks(o options) ([]models.Task, error) {
	if o.seed != "" {
		return devserver.LoadSeed(o.seed)
	}
	return devserver.SampleTasks(o.project, o.assignee, time.Now()), nil
}

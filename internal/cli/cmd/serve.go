package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/tessellate/internal/cli"
	"github.com/bnema/tessellate/internal/cli/styles"
	"github.com/bnema/tessellate/internal/infrastructure/config"
	"github.com/bnema/tessellate/internal/infrastructure/ipc"
	"github.com/bnema/tessellate/internal/logging"
)

var (
	serveSocket string
	serveWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a layout producer on the unix socket",
	Long: `Run a layout producer. Consumers connect to the unix socket, send layout
requests and receive layout trees (or geometry in geometry mode).

Cycle commands from any connected client move the strategy of a tag and
force a new layout round on every output showing that tag. Editing the
config file reloads the strategies and forces a round everywhere.

Examples:
  tessellate serve
  tessellate serve --socket /tmp/tessellate.sock
  tessellate serve --watch=false`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveSocket, "socket", "s", "", "socket path (default from config)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", true, "reload strategies when the config file changes")
}

func runServe(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithComponent(ctx, "producer")
	log := logging.FromContext(ctx)
	log.Info().
		Str("version", buildInfo.Version).
		Str("commit", buildInfo.Commit).
		Msg("starting layout producer")
	logCoreDumpLimits(ctx)

	path := serveSocket
	if path == "" {
		var err error
		if path, err = app.Config.SocketPath(); err != nil {
			return err
		}
	}

	producer, err := app.NewProducer(nil)
	if err != nil {
		return err
	}
	srv := ipc.NewServer(producer, producer, ipc.WithMaxLine(app.Config.Socket.MaxLineBytes))
	producer.SetNotifier(srv)

	ln, err := ipc.Listen(path)
	if err != nil {
		return err
	}

	if serveWatch {
		app.Manager.OnConfigChange(func(cfg *config.Config) {
			if err := cli.ReloadProducer(ctx, producer, cfg); err != nil {
				log.Error().Err(err).Msg("failed to apply reloaded config")
			}
		})
		if err := app.Manager.Watch(); err != nil {
			log.Warn().Err(err).Msg("config watch unavailable")
		}
	}

	renderer := styles.NewLayoutRenderer(app.Theme)
	fmt.Println(renderer.RenderServing(path, app.Config.Layout.Cycle, string(app.Config.ResponseMode())))

	if err := srv.Serve(ctx, ln); err != nil {
		return fmt.Errorf("serve %s: %w", path, err)
	}
	log.Info().Msg("layout producer stopped")
	return nil
}

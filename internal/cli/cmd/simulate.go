package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/tessellate/internal/application/port"
	"github.com/bnema/tessellate/internal/application/usecase"
	"github.com/bnema/tessellate/internal/cli/styles"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/infrastructure/ipc"
	"github.com/bnema/tessellate/internal/infrastructure/loopback"
	"github.com/bnema/tessellate/internal/logging"
	"github.com/bnema/tessellate/internal/mainloop"
)

const simulateGrace = time.Second

var (
	simulateSocket  string
	simulateWindows int
	simulateArea    string
	simulateOutput  string
	simulateTags    []uint
	simulateWatch   bool
	simulateBurst   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Act as a consumer and print the placements a producer yields",
	Long: `Connect to a running producer the way a compositor would, request a
layout for a number of windows and print the resulting placements.

Without a reachable producer the configured fallback strategy is used.
With --watch the command keeps running and prints every new layout, for
instance after 'tessellate cycle'. With --burst the windows are mapped one
by one in a single loop turn, the way a compositor sees a session restore;
only the last need reaches the producer.

Examples:
  tessellate simulate --windows 4
  tessellate simulate -n 3 --area 2560x1440 --tag 2
  tessellate simulate --watch`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringVarP(&simulateSocket, "socket", "s", "", "socket path (default from config)")
	simulateCmd.Flags().IntVarP(&simulateWindows, "windows", "n", 3, "number of windows")
	simulateCmd.Flags().StringVarP(&simulateArea, "area", "a", "1920x1080", "usable area WIDTHxHEIGHT[+X+Y]")
	simulateCmd.Flags().StringVarP(&simulateOutput, "output", "o", "SIM-1", "output name")
	simulateCmd.Flags().UintSliceVarP(&simulateTags, "tag", "t", nil, "active tags")
	simulateCmd.Flags().BoolVarP(&simulateWatch, "watch", "w", false, "keep printing new layouts until interrupted")
	simulateCmd.Flags().BoolVar(&simulateBurst, "burst", false, "map windows one at a time before the loop runs")
}

type appliedLayout struct {
	output     entity.OutputName
	placements []entity.Placement
}

func runSimulate(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	area, err := parseArea(simulateArea)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithComponent(ctx, "consumer")
	log := logging.FromContext(ctx)

	path := simulateSocket
	if path == "" {
		if path, err = app.Config.SocketPath(); err != nil {
			return err
		}
	}

	applied := make(chan appliedLayout, 16)
	rec := loopback.NewRecorder(func(out entity.OutputName, p []entity.Placement) {
		select {
		case applied <- appliedLayout{output: out, placements: p}:
		default:
		}
	})

	source := "producer"
	var requester port.LayoutRequester
	client, err := ipc.Dial(ctx, path)
	if err != nil {
		log.Warn().Err(err).Msg("no producer, using the fallback strategy")
		source = "fallback " + app.Config.Consumer.FallbackStrategy
	} else {
		requester = client
	}

	consumer, err := app.NewConsumer(requester, rec)
	if err != nil {
		return err
	}
	defer consumer.Close()

	runDone := make(chan error, 1)
	if client != nil {
		go func() { runDone <- client.Run(ctx, consumer) }()
		defer func() {
			_ = client.Close()
			<-runDone
		}()
	}

	loop := mainloop.New()
	scheduler := usecase.NewLayoutScheduler(ctx, loop.Post, consumer)
	defer scheduler.Stop()

	first := simulateWindows
	if simulateBurst {
		first = min(1, simulateWindows)
	}
	for n := first; n <= simulateWindows; n++ {
		scheduler.Schedule(entity.LayoutNeed{
			Output:  entity.OutputName(simulateOutput),
			Windows: windowIDs(n),
			Tags:    tagIDs(simulateTags),
			Area:    area,
		})
	}

	loopCtx, stopLoop := context.WithCancel(ctx)
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(loopCtx) }()
	defer func() {
		stopLoop()
		<-loopDone
	}()

	renderer := styles.NewLayoutRenderer(app.Theme)
	show := func(l appliedLayout) {
		fmt.Println(renderer.RenderPreview(styles.PreviewView{
			Strategy:   source,
			Output:     l.output,
			Area:       area,
			Placements: l.placements,
			MapCols:    60,
			MapRows:    18,
		}))
	}

	timeout := time.Duration(app.Config.Consumer.ResponseTimeoutMs)*time.Millisecond + simulateGrace
	select {
	case l := <-applied:
		show(l)
	case err := <-runDone:
		runDone <- err
		return fmt.Errorf("producer connection ended: %w", err)
	case <-time.After(timeout):
		return fmt.Errorf("no layout applied within %s", timeout)
	case <-ctx.Done():
		return nil
	}

	if !simulateWatch {
		return nil
	}
	for {
		select {
		case l := <-applied:
			fmt.Println()
			show(l)
		case err := <-runDone:
			runDone <- err
			if errors.Is(err, entity.ErrProducerUnavailable) {
				return err
			}
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/tessellate/internal/cli/styles"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/infrastructure/ipc"
	"github.com/bnema/tessellate/internal/protocol"
)

const cycleTimeout = 2 * time.Second

var (
	cycleSocket string
	cycleTag    uint32
)

var cycleCmd = &cobra.Command{
	Use:   "cycle [forward|backward]",
	Short: "Move the strategy of a tag on the running producer",
	Long: `Ask the running producer to select the next (or previous) strategy of its
cycle for one tag. Every output showing that tag gets a new layout round.

Examples:
  tessellate cycle
  tessellate cycle backward --tag 3`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(protocol.CycleForward), string(protocol.CycleBackward)},
	RunE:      runCycle,
}

func init() {
	rootCmd.AddCommand(cycleCmd)
	cycleCmd.Flags().StringVarP(&cycleSocket, "socket", "s", "", "socket path (default from config)")
	cycleCmd.Flags().Uint32VarP(&cycleTag, "tag", "t", 0, "tag to cycle")
}

func parseCycleDirection(args []string) (protocol.CycleDirection, error) {
	if len(args) == 0 {
		return protocol.CycleForward, nil
	}
	switch dir := protocol.CycleDirection(strings.ToLower(args[0])); dir {
	case protocol.CycleForward, protocol.CycleBackward:
		return dir, nil
	default:
		return "", fmt.Errorf("invalid direction %q (use: forward, backward)", args[0])
	}
}

func runCycle(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	dir, err := parseCycleDirection(args)
	if err != nil {
		return err
	}

	path := cycleSocket
	if path == "" {
		if path, err = app.Config.SocketPath(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(app.Ctx(), cycleTimeout)
	defer cancel()

	client, err := ipc.Dial(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Cycle(ctx, entity.TagID(cycleTag), dir); err != nil {
		return err
	}

	fmt.Println(styles.NewLayoutRenderer(app.Theme).RenderCycled(entity.TagID(cycleTag), string(dir)))
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/logging"
)

func (a *App) cmdStatus(ctx context.Context, _ []string) error {
	st, err := a.syncer.Status(ctx)
	if err != nil {
		return err
	}
	mode := "offline"
	if st.Online {
		mode = "online"
	}
	fmt.Fprintln(a.out, "Mirror: ", mode)
	fmt.Fprintln(a.out, "Pending:", st.Pending)
	fmt.Fprintln(a.out, "Done:   ", st.Done)
	fmt.Fprintln(a.out, "Failed: ", st.Failed)
	return nil
}

func (a *App) cmdSync(ctx context.Context, _ []string) error {
	res, err := a.syncer.Sync(ctx)
	if errors.Is(err, common.ErrMirrorUnavailable) {
		fmt.Fprintln(a.out, "Mirror unavailable, changes stay queued.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Synced %d, retrying %d, failed %d.\n", res.Done, res.Retried, res.Failed)
	return nil
}

// cmdLogLevel shows or changes the log threshold of the running process.
func (a *App) cmdLogLevel(_ context.Context, args []string) error {
	lv, ok := a.log.(logging.Leveler)
	if !ok || lv.Level() == "" {
		return errors.New("log level cannot be changed at runtime")
	}
	if len(args) > 0 {
		if err := lv.SetLevel(args[0]); err != nil {
			return fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
	}
	fmt.Fprintln(a.out, "Log level:", lv.Level())
	return nil
}

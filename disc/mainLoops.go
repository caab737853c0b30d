package disc

import (
	"context"
	"time"

	"RaidKeeper/cwlog"
)

func MainLoop(ctx context.Context) {

	/* Reconnect log descriptor */
	go func() {
		ticker := time.NewTicker(time.Second * 5)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			cwlog.ReopenIfMissing()
		}
	}()
}

package cli

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/thermwatch/thermwatch/internal/api"
	"github.com/thermwatch/thermwatch/internal/errors"
	"github.com/thermwatch/thermwatch/internal/prefs"
)

// snapshotTimeout bounds the one-shot fetch; unlike the TUI there is no
// later cycle to recover in.
const snapshotTimeout = 15 * time.Second

// snapshotCommand fetches one dashboard snapshot and prints it as JSON.
func snapshotCommand(server string) error {
	store, err := prefs.LoadDefault()
	if err != nil {
		return err
	}

	base := store.Current().ServerURL
	if server != "" {
		base = server
	}

	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	snap, err := api.NewClient(base).FetchDashboard(ctx)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrAPI,
			"Could not fetch a snapshot from "+base,
			"Check that the dashboard API is reachable, or pass --server")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

package cli

import (
	"context"
	"fmt"

	"github.com/rshade/carbontrack/internal/activity"
	"github.com/rshade/carbontrack/internal/config"
	"github.com/rshade/carbontrack/internal/kvstore"
	"github.com/rshade/carbontrack/internal/logging"
)

// openActivityStore opens the configured backend and loads the activity log
// from it. The returned close function must be called when the command is done.
func openActivityStore(ctx context.Context) (*activity.Store, func(), error) {
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	opts := cfg.StoreOptions()
	if opts.Backend == kvstore.BackendFile && opts.Directory == "" {
		dir, err := config.GetDataDir()
		if err != nil {
			return nil, nil, err
		}
		opts.Directory = dir
	}

	kv, closeKV, err := kvstore.Open(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", opts.Backend, err)
	}
	closer := func() {
		if cerr := closeKV(); cerr != nil {
			log.Warn().
				Str("component", "cli").
				Str("operation", "close_store").
				Err(cerr).
				Msg("closing store failed")
		}
	}

	store := activity.NewStore(kv, activity.WithStorageKey(cfg.Store.Key))
	if err := store.Load(ctx); err != nil {
		closer()
		return nil, nil, fmt.Errorf("loading activity log: %w", err)
	}

	log.Debug().
		Str("component", "cli").
		Str("backend", opts.Backend).
		Int("records", store.Len()).
		Msg("activity log loaded")

	return store, closer, nil
}

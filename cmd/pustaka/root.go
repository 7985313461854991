package main

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pustaka-app/pustaka/internal/config"
	"github.com/pustaka-app/pustaka/internal/kvstore"
	"github.com/pustaka-app/pustaka/internal/logger"
	"github.com/pustaka-app/pustaka/internal/repository"
	"github.com/pustaka-app/pustaka/internal/service"
	"github.com/pustaka-app/pustaka/internal/session"
)

// app holds the wired-up services shared by every command.
type app struct {
	log     *zap.Logger
	store   kvstore.Store
	auth    *service.AuthService
	catalog *service.CatalogService
}

// openStore opens the configured storage backend.
func openStore(opts *config.Options) (kvstore.Store, error) {
	switch opts.Backend {
	case "bolt":
		if err := os.MkdirAll(filepath.Dir(opts.StoragePath), 0o700); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		return kvstore.OpenBolt(opts.StoragePath)
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(opts.StoragePath), 0o700); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		return kvstore.OpenSQLite(opts.StoragePath)
	case "memory":
		return kvstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

func (a *app) init(opts *config.Options) error {
	log, err := logger.New(opts.LogLevel)
	if err != nil {
		return err
	}
	store, err := openStore(opts)
	if err != nil {
		log.Error("cannot open storage", zap.Error(err))
		return err
	}

	sess := session.New(store)
	items := repository.NewItemRepository(store)
	creds := repository.NewCredentialRepository(store)

	a.log = log
	a.store = store
	a.auth = service.NewAuthService(creds, sess)
	a.catalog = service.NewCatalogService(items, sess)
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Error("closing storage", zap.Error(err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func newRootCmd() *cobra.Command {
	opts := config.Load()
	a := &app{}

	root := &cobra.Command{
		Use:     "pustaka",
		Short:   "Manage a personal book catalog stored on this device",
		Version: fmt.Sprintf("%s (built %s)", cmp.Or(version, "dev"), cmp.Or(buildDate, "unknown")),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.Backend, "backend", opts.Backend, "storage backend: bolt, sqlite, or memory")
	root.PersistentFlags().StringVar(&opts.StoragePath, "storage", opts.StoragePath, "path of the storage file")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "log level: debug, info, warn, error")

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newShellCmd(a),
	)
	return root
}

// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/axlechain/axle/api"
	"github.com/axlechain/axle/backend"
	"github.com/axlechain/axle/builtin"
	"github.com/axlechain/axle/chain"
	"github.com/axlechain/axle/genesis"
	"github.com/axlechain/axle/log"
	"github.com/axlechain/axle/logdb"
	"github.com/axlechain/axle/lvldb"
	"github.com/axlechain/axle/metrics"
	"github.com/axlechain/axle/node"
	"github.com/axlechain/axle/state"
)

var (
	version   = "0.1.0"
	gitCommit string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	if gitCommit == "" {
		return version
	}
	return fmt.Sprintf("%s-%.8s", version, gitCommit)
}

func main() {
	app := cli.App{
		Name:      "axle",
		Usage:     "rollup execution engine node",
		Version:   fullVersion(),
		Copyright: "2026 The Axle developers",
		Flags: []cli.Flag{
			dataDirFlag,
			apiAddrFlag,
			metricsAddrFlag,
			genesisFlag,
			backendsFlag,
			verbosityFlag,
			jsonLogsFlag,
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(ctx *cli.Context) {
	var level slog.LevelVar
	level.Set(log.FromVerbosity(ctx.Int(verbosityFlag.Name)))

	useJSON := ctx.Bool(jsonLogsFlag.Name) || !isatty.IsTerminal(os.Stderr.Fd())
	if useJSON {
		log.SetDefault(log.JSONHandlerWithLevel(os.Stderr, &level))
	} else {
		log.SetDefault(log.LogfmtHandlerWithLevel(os.Stderr, &level))
	}
}

func run(ctx *cli.Context) error {
	initLogger(ctx)

	dataDir := ctx.String(dataDirFlag.Name)
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return err
	}

	db, err := lvldb.New(filepath.Join(dataDir, "chain.db"), lvldb.Options{})
	if err != nil {
		return err
	}
	defer db.Close()

	gene := genesis.NewDevnet()
	if path := ctx.String(genesisFlag.Name); path != "" {
		config, err := genesis.LoadConfig(path)
		if err != nil {
			return err
		}
		if gene, err = genesis.NewCustom(config); err != nil {
			return err
		}
	}

	stater := state.NewStater(db)
	genesisBlock, err := gene.Build(stater)
	if err != nil {
		return err
	}
	c, err := chain.New(db, genesisBlock)
	if err != nil {
		return err
	}

	ldb, err := logdb.New(filepath.Join(dataDir, "logs.db"))
	if err != nil {
		return err
	}
	defer ldb.Close()

	registryBuilder := builtin.Registry()
	if path := ctx.String(backendsFlag.Name); path != "" {
		config, err := backend.LoadConfig(path)
		if err != nil {
			return err
		}
		if err := registryBuilder.AddConfigured(config); err != nil {
			return err
		}
	}
	registry := registryBuilder.Build()

	n := node.New(c, stater, registry, ldb)

	logger.Info("starting axle node",
		"version", fullVersion(),
		"dataDir", dataDir,
		"genesis", genesisBlock.Header().Hash(),
		"best", c.BestBlock().Header(),
	)

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(sigCtx)

	group.Go(func() error {
		return serve(groupCtx, "api", ctx.String(apiAddrFlag.Name), api.New(n, stater))
	})
	if addr := ctx.String(metricsAddrFlag.Name); addr != "" {
		metrics.InitializePrometheusMetrics()
		group.Go(func() error {
			return serve(groupCtx, "metrics", addr, metrics.HTTPHandler())
		})
	}

	if err := group.Wait(); err != nil && err != context.Canceled {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

// serve runs an http server bound to addr until ctx is done.
func serve(ctx context.Context, name, addr string, handler http.Handler) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", name, err)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	logger.Info("service started", "name", name, "addr", listener.Addr())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

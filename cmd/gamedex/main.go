// Gamedex
// Copyright (c) 2025 The Gamedex Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Gamedex.
//
// Gamedex is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gamedex is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gamedex.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codecollision/gamedex/pkg/cli"
	"github.com/codecollision/gamedex/pkg/config"
	"github.com/codecollision/gamedex/pkg/database/linkdb"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(flag.CommandLine)
	flag.Parse()

	if *flags.Version {
		cli.PrintVersion(os.Stdout)
		return nil
	}
	if flags.Passed("normalize") {
		cli.Normalize(os.Stdout, *flags.Normalize)
		return nil
	}

	var logWriters []io.Writer
	if *flags.Debug {
		logWriters = []io.Writer{os.Stderr}
	}

	fs := afero.NewOsFs()
	cfg, err := cli.Setup(flags, fs, config.BaseDefaults, logWriters)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *flags.Metrics != "" {
		stopMetrics := serveMetrics(*flags.Metrics)
		defer stopMetrics()
	}

	clock := clockwork.NewRealClock()
	db, err := linkdb.Open(cfg.DatabasePath(), clock)
	if err != nil {
		return fmt.Errorf("error opening link database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing link database")
		}
	}()

	runner := &cli.Runner{
		Flags:   flags,
		Cfg:     cfg,
		Clients: cli.NewClients(cfg, db, clock),
		Fs:      fs,
		Out:     os.Stdout,
	}
	if err := runner.Run(ctx); errors.Is(err, cli.ErrNoCommand) {
		flag.Usage()
		return err
	} else if err != nil {
		log.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func serveMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("error stopping metrics server")
		}
	}
}

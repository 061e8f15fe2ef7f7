package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/xtding233/sparkyrng/entropy"
	"github.com/xtding233/sparkyrng/internal/config"
	"github.com/xtding233/sparkyrng/internal/logger"
	"github.com/xtding233/sparkyrng/internal/resp"
	"github.com/xtding233/sparkyrng/internal/rpc"
	"github.com/xtding233/sparkyrng/internal/service"
	"github.com/xtding233/sparkyrng/random"
)

func main() {
	var (
		path     = flag.String("config", "config.yaml", "config file")
		defaults = flag.String("defaults", "", "defaults file, overridden by -config")
	)
	flag.Parse()

	loader := config.NewLoader(*defaults, *path)
	cfg, err := loader.Load()
	if err != nil {
		logger.Log().Fatal().Err(err).Msg("load config")
	}
	applyLogging(cfg)

	r, src, err := newRandom(cfg)
	if err != nil {
		logger.Log().Fatal().Err(err).Msg("seed generator")
	}
	gen := service.NewGenerator(r)
	logger.Info().Str("source", string(src)).Str("state", gen.State().String()).Msg("generator seeded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: service.Handler(gen), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info().Str("addr", httpSrv.Addr).Msg("http listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	var grpcSrv *grpc.Server
	if cfg.GRPCAddr != "" {
		ln, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logger.Log().Fatal().Err(err).Str("addr", cfg.GRPCAddr).Msg("grpc listen")
		}
		grpcSrv = rpc.NewGRPCServer(gen)
		go func() {
			logger.Info().Str("addr", ln.Addr().String()).Msg("grpc listening")
			if err := grpcSrv.Serve(ln); err != nil {
				logger.Error().Err(err).Msg("grpc server")
			}
		}()
	}

	var respLn net.Listener
	if cfg.RESPAddr != "" {
		respLn, err = net.Listen("tcp", cfg.RESPAddr)
		if err != nil {
			logger.Log().Fatal().Err(err).Str("addr", cfg.RESPAddr).Msg("resp listen")
		}
		go func() {
			logger.Info().Str("addr", respLn.Addr().String()).Msg("resp listening")
			if err := resp.Serve(respLn, gen); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("resp server")
			}
		}()
	}

	if cfg.ReloadInterval > 0 {
		current := cfg
		w := config.NewWatcher(cfg.ReloadInterval, func(p string) {
			current = reload(loader, gen, current, p)
		}, loader.Paths()...)
		w.Start()
		defer w.Stop()
	}

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http shutdown")
	}
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	if respLn != nil {
		_ = respLn.Close()
	}
}

func applyLogging(cfg config.Config) {
	if err := logger.SetFormat(cfg.LogFormat); err != nil {
		logger.Warn().Err(err).Msg("log format")
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn().Err(err).Msg("log level")
	}
}

func newRandom(cfg config.Config) (*random.Random, config.SeedSource, error) {
	var src config.SeedSource
	r, err := random.NewFromMaterial(func() ([]uint64, error) {
		material, s, err := cfg.SeedMaterial(entropy.Gather)
		src = s
		return material, err
	})
	return r, src, err
}

// reload rereads the config after p changed. Only logging and seeding take
// effect at runtime; listener addresses need a restart.
func reload(loader *config.Loader, gen *service.Generator, prev config.Config, p string) config.Config {
	loader.Invalidate()
	next, err := loader.Load()
	if err != nil {
		logger.Warn().Err(err).Str("path", p).Msg("config reload rejected")
		return prev
	}
	applyLogging(next)
	logger.Info().Str("path", p).Msg("config reloaded")

	if seedChanged(prev, next) {
		material, src, err := next.SeedMaterial(entropy.Gather)
		if err != nil {
			logger.Warn().Err(err).Msg("reseed")
			return next
		}
		st, _ := gen.SeedValues(material...)
		logger.Info().Str("source", string(src)).Str("state", st.String()).Msg("generator reseeded")
	}
	if next.HTTPAddr != prev.HTTPAddr || next.GRPCAddr != prev.GRPCAddr || next.RESPAddr != prev.RESPAddr {
		logger.Warn().Msg("listener address changes need a restart")
	}
	return next
}

func seedChanged(a, b config.Config) bool {
	if (a.Seed == nil) != (b.Seed == nil) {
		return true
	}
	if a.Seed != nil && *a.Seed != *b.Seed {
		return true
	}
	return !slices.Equal(a.SeedSequence, b.SeedSequence)
}

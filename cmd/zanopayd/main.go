package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/zano-pay/zanopayd/internal/config"
	"github.com/zano-pay/zanopayd/internal/core/application"
	"github.com/zano-pay/zanopayd/internal/core/domain"
	dbbadger "github.com/zano-pay/zanopayd/internal/infrastructure/storage/db/badger"
	"github.com/zano-pay/zanopayd/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/zano-pay/zanopayd/internal/interfaces/http"
	"github.com/zano-pay/zanopayd/pkg/stats"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	if config.GetBool(config.RuntimeStatsKey) {
		statsCtx, stopStats := context.WithCancel(context.Background())
		defer stopStats()
		stats.EnableRuntimeStatistics(statsCtx, time.Minute)
	}

	networks := config.Networks()
	if len(networks) == 0 {
		log.Warn("no network is fully configured, serving status interface only")
	}

	pool := application.NewWalletPool(networks, application.NewRPCClientFactory(
		config.GetMillis(config.RPCTimeoutKey),
	))

	var prompts domain.PromptRepository
	switch config.GetString(config.PromptStoreKey) {
	case config.PromptStoreInMemory:
		prompts = inmemory.NewPromptRepositoryImpl()
	default:
		store, err := dbbadger.OpenStore(
			filepath.Join(config.GetDatadir(), config.DbLocation),
		)
		if err != nil {
			log.WithError(err).Fatal("failed opening prompt store")
		}
		defer store.Close()
		prompts = dbbadger.NewPromptRepositoryImpl(store)
	}

	reconciler := application.NewReconciler(
		config.GetUint64(config.ConfirmationDepthKey),
	)
	listener := application.NewPaymentListener(
		pool, prompts, reconciler,
		config.GetMillis(config.ListenerIntervalKey),
		config.GetInt(config.RPCLimitKey),
	)
	publisher := application.NewSummaryPublisher(
		pool,
		config.GetMillis(config.SummaryIntervalKey),
		config.GetInt(config.RPCLimitKey),
	)
	payments := application.NewPaymentService(
		pool, prompts, config.GetString(config.ChainKey),
	)
	httpSvc := httpinterface.NewService(
		config.GetString(config.HTTPListenAddrKey), payments,
	)
	notifier := application.NewWebhookNotifier(
		config.GetString(config.PaymentWebhookURLKey),
	)

	notifier.Start(listener.Results())
	listener.Start()
	publisher.Start()

	log.Infof("zanopayd started, watching %d network(s)", len(networks))

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(httpSvc.Start)
	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-sigChan:
		case <-gctx.Done():
		}
		return httpSvc.Shutdown()
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("http interface stopped with error")
	}

	log.Info("shutting down")
	publisher.Stop()
	listener.Stop()
	notifier.Wait()
	pool.Close()
	log.Info("exiting")
}

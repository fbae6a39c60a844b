package main

import (
	"deploy_networks/internal/app/port"
	"deploy_networks/internal/app/service"
	"deploy_networks/internal/domain/entity"
	"deploy_networks/internal/infrastructure/configloader"
	"deploy_networks/internal/infrastructure/hdwallet"
	"deploy_networks/internal/infrastructure/network/client"
	networkdefinition "deploy_networks/internal/infrastructure/network/definition"
	"deploy_networks/internal/infrastructure/secretsloader"
	"deploy_networks/internal/pkg/logger"
	"deploy_networks/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// application is everything a command needs, built from the global flags.
type application struct {
	cfg       *configloader.Config
	zapLogger *zap.Logger
	log       port.Logger
	registry  *prometheus.Registry
	networks  *networkdefinition.NetworkDefinitionProvider
	deriver   *hdwallet.Deriver
	service   *service.NetworkService
}

func bootstrap(ctx *cli.Context, production bool) (*application, error) {
	cfg, err := configloader.Load(ctx.String(ConfigFlag.Name))
	if err != nil {
		return nil, err
	}
	if v := ctx.String(VerbosityFlag.Name); v != "" {
		cfg.Logging.Level = v
	}
	if s := ctx.String(SecretsFlag.Name); s != "" {
		cfg.Secrets.Path = s
	}

	var zapLogger *zap.Logger
	if production {
		zapLogger, err = logger.New(cfg.Logging.Level)
	} else {
		zapLogger, err = logger.NewDevelopment(cfg.Logging.Level)
	}
	if err != nil {
		return nil, err
	}
	log := logger.NewAdapter(zapLogger)

	loader := secretsloader.NewSecretsFileLoader(cfg.Secrets.Path, log)
	log.Debug("Loading secrets", "path", loader.Path())
	secrets := loadSecrets(loader, log)
	deriver := hdwallet.NewDeriver(cfg.CacheTTL())

	clientOpts := client.Options{
		DialTimeout:       cfg.DialTimeout(),
		CallTimeout:       cfg.CallTimeout(),
		RequestsPerSecond: cfg.RPC.RequestsPerSecond,
		Burst:             cfg.RPC.Burst,
	}

	networks := networkdefinition.NewNetworkDefinitionProvider(log, secrets, networkdefinition.Options{
		EndpointTemplate: cfg.RPC.EndpointTemplate,
		DialTimeout:      cfg.DialTimeout(),
		Deriver:          deriver,
		Wallet: hdwallet.Options{
			DerivationPath:    cfg.Wallet.DerivationPath,
			AddressIndex:      cfg.Wallet.AddressIndex,
			NumberOfAddresses: cfg.Wallet.NumberOfAddresses,
			Client:            clientOpts,
		},
	})

	registry := prometheus.NewRegistry()
	svc := service.NewNetworkService(
		networks,
		client.NewConnector(log, clientOpts),
		log,
		metrics.New(registry),
		cfg.Performance.MaxConcurrentChecks,
	)

	return &application{
		cfg:       cfg,
		zapLogger: zapLogger,
		log:       log,
		registry:  registry,
		networks:  networks,
		deriver:   deriver,
		service:   svc,
	}, nil
}

// loadSecrets never fails: remote networks report missing secrets when targeted.
func loadSecrets(provider port.SecretsProvider, log port.Logger) entity.Secrets {
	secrets, err := provider.GetSecrets()
	if err != nil {
		log.Warn("Secrets unavailable", "error", err)
	}
	return secrets
}

// Close drops cached key material and flushes the logger.
func (a *application) Close() {
	a.deriver.Flush()
	_ = a.zapLogger.Sync()
}

package ordinals

import (
	"context"
	"strings"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/gaze-network/ordinals-indexer/core/datasources"
	"github.com/gaze-network/ordinals-indexer/core/indexer"
	"github.com/gaze-network/ordinals-indexer/core/types"
	"github.com/gaze-network/ordinals-indexer/internal/config"
	"github.com/gaze-network/ordinals-indexer/internal/postgres"
	ordinalsapi "github.com/gaze-network/ordinals-indexer/modules/ordinals/api"
	ordinalsdatagateway "github.com/gaze-network/ordinals-indexer/modules/ordinals/datagateway"
	ordinalspostgres "github.com/gaze-network/ordinals-indexer/modules/ordinals/repository/postgres"
	ordinalsusecase "github.com/gaze-network/ordinals-indexer/modules/ordinals/usecase"
	"github.com/gaze-network/ordinals-indexer/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
)

func New(injector do.Injector) (indexer.IndexerWorker, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)

	var (
		ordinalsDg    ordinalsdatagateway.OrdinalsDataGateway
		indexerInfoDg ordinalsdatagateway.IndexerInfoDataGateway
	)
	var cleanupFuncs []func(context.Context) error
	switch strings.ToLower(conf.Modules.Ordinals.Database) {
	case "postgresql", "postgres", "pg":
		pg, err := postgres.NewPool(ctx, conf.Modules.Ordinals.Postgres)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "Invalid Postgres configuration for indexer")
			}
			return nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		cleanupFuncs = append(cleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		ordinalsRepo := ordinalspostgres.NewRepository(pg)
		ordinalsDg = ordinalsRepo
		indexerInfoDg = ordinalsRepo
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q database for indexer is not supported", conf.Modules.Ordinals.Database)
	}

	var datasource datasources.Datasource[*types.Block]
	switch strings.ToLower(conf.Modules.Ordinals.Datasource) {
	case "bitcoin-node":
		btcClient := do.MustInvoke[*rpcclient.Client](injector)
		var opts []datasources.BitcoinNodeOption
		if conf.Modules.Ordinals.HeightLimit > 0 {
			opts = append(opts, datasources.WithHeightLimit(conf.Modules.Ordinals.HeightLimit))
		}
		datasource = datasources.NewBitcoinNode(btcClient, opts...)
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q datasource is not supported", conf.Modules.Ordinals.Datasource)
	}

	processor := NewProcessor(ordinalsDg, indexerInfoDg, conf.Network, cleanupFuncs)
	if err := processor.VerifyStates(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	// Mount API
	apiHandlers := lo.Uniq(conf.Modules.Ordinals.APIHandlers)
	for _, handler := range apiHandlers {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			ordinalsUsecase := ordinalsusecase.New(ordinalsDg)
			ordinalsHTTPHandler := ordinalsapi.NewHTTPHandler(conf.Network, ordinalsUsecase)
			if err := ordinalsHTTPHandler.Mount(httpServer); err != nil {
				return nil, errors.Wrap(err, "can't mount Ordinals API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler")
		default:
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	var indexerOpts []indexer.Option[*types.Block]
	if conf.Modules.Ordinals.MaxReorgLookBack > 0 {
		indexerOpts = append(indexerOpts, indexer.WithMaxReorgLookBack[*types.Block](conf.Modules.Ordinals.MaxReorgLookBack))
	}
	return indexer.New(processor, datasource, indexerOpts...), nil
}

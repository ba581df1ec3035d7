package app

import (
	"context"
	"time"

	"github.com/mkhalturin/filmatch/core/internal/config"
	http_init "github.com/mkhalturin/filmatch/core/internal/delivery/http/init"
	http_identity_middleware "github.com/mkhalturin/filmatch/core/internal/delivery/http/middleware/identity"
	http_pool "github.com/mkhalturin/filmatch/core/internal/delivery/http/pool"
	http_room "github.com/mkhalturin/filmatch/core/internal/delivery/http/room"
	http_swagger "github.com/mkhalturin/filmatch/core/internal/delivery/http/swagger"
	http_voting "github.com/mkhalturin/filmatch/core/internal/delivery/http/voting"
	ws_room "github.com/mkhalturin/filmatch/core/internal/delivery/ws/room"
	infra_pg_init "github.com/mkhalturin/filmatch/core/internal/infra/postgres/init"
	infra_postgres_room "github.com/mkhalturin/filmatch/core/internal/infra/postgres/room"
	infra_postgres_vote "github.com/mkhalturin/filmatch/core/internal/infra/postgres/vote"
	infra_redis_cleanup_set "github.com/mkhalturin/filmatch/core/internal/infra/redis/cleanup_set"
	infra_redis_init "github.com/mkhalturin/filmatch/core/internal/infra/redis/init"
	infra_redis_pool "github.com/mkhalturin/filmatch/core/internal/infra/redis/pool"
	infra_tmdb "github.com/mkhalturin/filmatch/core/internal/infra/tmdb"
	usecase_cache "github.com/mkhalturin/filmatch/core/internal/usecase/cache"
	usecase_cleanup "github.com/mkhalturin/filmatch/core/internal/usecase/cleanup"
	usecase_consistency "github.com/mkhalturin/filmatch/core/internal/usecase/consistency"
	usecase_pool "github.com/mkhalturin/filmatch/core/internal/usecase/pool"
	usecase_room "github.com/mkhalturin/filmatch/core/internal/usecase/room"
	usecase_vote "github.com/mkhalturin/filmatch/core/internal/usecase/vote"
)

const cleanupSweepInterval = time.Minute

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	tmdbClient := infra_tmdb.New(cfg.ContentSource)

	roomRepository := infra_postgres_room.New(pgConn)
	voteRepository := infra_postgres_vote.New(pgConn)
	poolCache := infra_redis_pool.New(redisConn, "pool_cache")
	cleanupSet := infra_redis_cleanup_set.New(redisConn, "cleanup_set")

	poolBuilder := usecase_pool.New(tmdbClient)
	cacheUC := usecase_cache.New(poolCache, cfg.Pool.TTL)
	validator := usecase_consistency.New(poolCache)
	roomUC := usecase_room.New(roomRepository, poolBuilder, cacheUC, tmdbClient)
	cleanupScheduler := usecase_cleanup.New(cleanupSet, cacheUC)

	hub := ws_room.NewHub()
	voteEngine := usecase_vote.New(roomRepository, voteRepository, cacheUC, hub, cleanupScheduler)

	go cleanupScheduler.Run(context.Background(), cleanupSweepInterval)

	identity := http_identity_middleware.New()

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_room.New(roomUC, identity))
	controllerPool.Add(http_pool.New(cacheUC, validator, roomUC, identity))
	controllerPool.Add(http_voting.New(voteEngine, identity))
	controllerPool.Add(ws_room.NewController(hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}

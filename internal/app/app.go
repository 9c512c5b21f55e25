package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/resonance-social/feed-engine/internal/command"
	"github.com/resonance-social/feed-engine/internal/datasources"
	"github.com/resonance-social/feed-engine/internal/datasources/memstore"
	"github.com/resonance-social/feed-engine/internal/datasources/mysql"
	"github.com/resonance-social/feed-engine/internal/datasources/redisstore"
	"github.com/resonance-social/feed-engine/internal/domain"
	"github.com/resonance-social/feed-engine/internal/emotion"
	"github.com/resonance-social/feed-engine/internal/metrics"
	"github.com/resonance-social/feed-engine/internal/transport/web/router"
	"github.com/resonance-social/feed-engine/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	repository, err := setupRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up content repository: %w", err)
	}

	rdb, err := setupRedis(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up redis: %w", err)
	}

	reactions, err := setupReactionStore(ctx, repository, rdb)
	if err != nil {
		return nil, fmt.Errorf("setting up reaction store: %w", err)
	}

	profiles, err := setupProfileStore(ctx, rdb)
	if err != nil {
		return nil, fmt.Errorf("setting up emotion profile store: %w", err)
	}

	broadcaster, err := setupBroadcaster(ctx, rdb)
	if err != nil {
		return nil, fmt.Errorf("setting up broadcaster: %w", err)
	}

	authMiddleware, err := setupAuthMiddleware(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up auth middleware: %w", err)
	}

	classifier := emotion.NewClassifier(
		emotion.NewVADERAnalyzer(),
		emotion.NewLRUCache(emotion.DefaultCacheSize, emotion.DefaultCacheTTL),
	)

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics()
	if err := m.Register(registry); err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}
	if err := metrics.RegisterClassifierCache(registry, classifier.CacheHits, classifier.CacheMisses); err != nil {
		return nil, fmt.Errorf("registering classifier cache metrics: %w", err)
	}

	generateCandidatesCmd := command.NewGenerateCandidates(
		repository,
		repository,
		profiles,
		DefaultGenerateCandidatesConfig(),
	)

	rankCandidatesCmd := command.NewRankCandidates(
		repository,
		profiles,
		domain.WeightedHeavyRanker{Weights: domain.DefaultPredictorWeights()},
		DefaultRankCandidatesConfig(),
	)

	getFeedCmd := command.NewGetFeed(
		generateCandidatesCmd,
		rankCandidatesCmd,
		command.NewDefaultFeed(classifier),
		m,
		DefaultGetFeedConfig(),
	)

	processReactionCmd := command.NewProcessReaction(
		repository,
		reactions,
		profiles,
		repository,
		broadcaster,
		m,
	)

	httpRouter, err := router.MakeRouter(
		getFeedCmd,
		processReactionCmd,
		MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_NAME"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_EMAIL"),
		m,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		authMiddleware,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	return []Component{
		&server.Server{
			TLSDisabled:       MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED"),
			TLSDisabledPort:   MustGetEnvAsInt(ctx, "PORT"),
			AutocertHostnames: MustGetEnvAsStrings(ctx, "HTTP_AUTOCERT_HOSTNAMES"),
			Router:            httpRouter,
		},
	}, nil
}

func setupRepository(ctx context.Context) (*mysql.Repository, error) {
	db, err := mysql.Connect(ctx, MustGetEnvAsString(ctx, "MYSQL_URI"))
	if err != nil {
		return nil, fmt.Errorf("connecting to MySQL: %w", err)
	}
	return mysql.New(db), nil
}

// setupRedis connects lazily: nil is returned when no store selects the
// redis driver, so a redis-free deployment needs no REDIS_ADDR.
func setupRedis(ctx context.Context) (*redis.Client, error) {
	needed := MustGetEnvAsString(ctx, "REACTION_STORE_DRIVER") == "redis" ||
		MustGetEnvAsString(ctx, "PROFILE_STORE_DRIVER") == "redis" ||
		MustGetEnvAsString(ctx, "BROADCAST_DRIVER") == "redis"
	if !needed {
		return nil, nil
	}

	rdb, err := redisstore.Connect(ctx, MustGetEnvAsString(ctx, "REDIS_ADDR"))
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return rdb, nil
}

func setupReactionStore(
	ctx context.Context, repository *mysql.Repository, rdb *redis.Client,
) (datasources.ReactionStore, error) {
	switch driver := MustGetEnvAsString(ctx, "REACTION_STORE_DRIVER"); driver {
	case "memory":
		return memstore.NewReactionStore(), nil
	case "mysql":
		return repository, nil
	case "redis":
		return redisstore.NewReactionStore(rdb), nil
	default:
		return nil, fmt.Errorf("unknown reaction store driver [%s]", driver)
	}
}

func setupProfileStore(ctx context.Context, rdb *redis.Client) (datasources.EmotionProfileStore, error) {
	switch driver := MustGetEnvAsString(ctx, "PROFILE_STORE_DRIVER"); driver {
	case "memory":
		return memstore.NewProfileStore(), nil
	case "redis":
		return redisstore.NewProfileStore(rdb), nil
	default:
		return nil, fmt.Errorf("unknown profile store driver [%s]", driver)
	}
}

func setupBroadcaster(ctx context.Context, rdb *redis.Client) (datasources.Broadcaster, error) {
	switch driver := MustGetEnvAsString(ctx, "BROADCAST_DRIVER"); driver {
	case "null":
		return datasources.NullBroadcaster{}, nil
	case "redis":
		return redisstore.NewBroadcaster(rdb, redisstore.DefaultUpdateChannel), nil
	default:
		return nil, fmt.Errorf("unknown broadcast driver [%s]", driver)
	}
}

func setupAuthMiddleware(ctx context.Context) (func(http.Handler) http.Handler, error) {
	var validators []router.AuthValidator

	for _, driver := range MustGetEnvAsStrings(ctx, "AUTH_DRIVERS") {
		switch driver {
		case "":
			// Skip empty strings (e.g., from splitting an empty AUTH_DRIVERS)
		case "auth0":
			v, err := router.NewAuth0Validator(
				MustGetEnvAsString(ctx, "AUTH0_DOMAIN"),
				MustGetEnvAsString(ctx, "AUTH0_AUDIENCE"),
			)
			if err != nil {
				return nil, fmt.Errorf("creating Auth0 validator: %w", err)
			}
			validators = append(validators, v)
		default:
			return nil, fmt.Errorf("unknown auth driver [%s]", driver)
		}
	}

	return router.NewAuthMiddleware(validators), nil
}

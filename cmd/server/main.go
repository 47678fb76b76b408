package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/resumehub/authkit/modules/authgateway"
	"github.com/resumehub/authkit/pkg/config"
	"github.com/resumehub/authkit/pkg/httpserver"
	"github.com/resumehub/authkit/pkg/identity"
	"github.com/resumehub/authkit/pkg/logger"
	"github.com/resumehub/authkit/pkg/mongodb"
	"github.com/resumehub/authkit/pkg/oauthstate"
	"github.com/resumehub/authkit/pkg/sessiontoken"
	"github.com/resumehub/authkit/pkg/userstore"
)

type appConfig struct {
	Logger   logger.Config
	HTTP     httpserver.Config
	Mongo    mongodb.Config
	Redis    oauthstate.Config
	Token    sessiontoken.Config
	Gateway  authgateway.Config
	Google   authgateway.GoogleConfig
	Github   authgateway.GithubConfig
	Facebook authgateway.FacebookConfig
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(cfg.Logger)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	db, err := mongodb.ConnectDatabase(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	users := userstore.NewStore(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	redisClient, err := oauthstate.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	states := oauthstate.NewStore(redisClient, cfg.Redis.StateTTL)

	codec, err := sessiontoken.NewFromString(cfg.Token.SigningKey)
	if err != nil {
		return err
	}

	reconciler := identity.NewReconciler(users, codec,
		identity.WithReconcilerLogger(log),
		identity.WithTokenTTL(cfg.Token.TTL),
	)
	passwords := identity.NewPasswordService(users, codec,
		identity.WithPasswordLogger(log),
		identity.WithPasswordTokenTTL(cfg.Token.TTL),
	)

	gateway := authgateway.NewService(cfg.Gateway, states, reconciler, passwords,
		[]authgateway.ProviderAdapter{
			authgateway.NewGoogleAdapter(cfg.Google),
			authgateway.NewGithubAdapter(cfg.Github),
			authgateway.NewFacebookAdapter(cfg.Facebook),
		},
		authgateway.WithLogger(log),
		authgateway.WithSessionGuard(codec, users),
	)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/health", httpserver.HealthcheckHandler(log, mongodb.Healthcheck(db.Client())))
	r.Mount("/", gateway.Handle())

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

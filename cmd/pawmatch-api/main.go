package main

import (
	"context"
	"time"

	"pawmatch/internal/platform/config"
	"pawmatch/internal/platform/logger"
	phttp "pawmatch/internal/platform/net/http"

	"pawmatch/internal/adapters/petfinder"
	"pawmatch/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pfCfg := root.Prefix("PETFINDER_") // upstream listing API credentials

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	// upstream listing client with its cached credential
	pf := petfinder.NewClient(petfinder.Options{
		BaseURL:      pfCfg.MayString("BASE_URL", ""),
		ClientID:     pfCfg.MustString("CLIENT_ID"),
		ClientSecret: pfCfg.MustString("CLIENT_SECRET"),
		Timeout:      pfCfg.MayDuration("TIMEOUT", 10*time.Second),
	})

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	closeFn := api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Logger:         l,
			Lister:         pf,
			Upstream:       pf,
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)
	defer closeFn()

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

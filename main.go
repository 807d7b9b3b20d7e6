package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/tickmint/config"
	"github.com/ferreirogomes/tickmint/events"
	"github.com/ferreirogomes/tickmint/handlers"
	"github.com/ferreirogomes/tickmint/services"
	"github.com/ferreirogomes/tickmint/storage"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	var store storage.Store
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, running on the in-memory store")
		store = storage.NewMemoryStore()
	} else {
		db, err := storage.NewDB(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "err", err)
			os.Exit(1)
		}
		store = db
	}
	defer store.Close()

	authority, err := solana.PublicKeyFromBase58(cfg.AuthorityPubKey)
	if err != nil {
		slog.Error("invalid authority public key", "err", err)
		os.Exit(1)
	}
	template, err := solana.PublicKeyFromBase58(cfg.ModuleTemplateID)
	if err != nil {
		slog.Error("invalid module template id", "err", err)
		os.Exit(1)
	}

	deriver := services.NewAddressDeriver(authority, template)
	modules := services.NewModuleDirectory()
	emitter := events.NewEmitter()

	// Holder balances live on the ledger; without a ledger connection no
	// caller holds any gating asset.
	balanceOf := func(asset, holder string) decimal.Decimal { return decimal.Zero }

	registryService := services.NewRegistryService(store, deriver, modules, emitter, balanceOf)
	if err := registryService.Rehydrate(); err != nil {
		slog.Error("failed to rehydrate issuance modules", "err", err)
		os.Exit(1)
	}
	queryService := services.NewQueryService(store, modules)

	assetHandler := handlers.NewAssetHandler(registryService)
	queryHandler := handlers.NewQueryHandler(queryService)
	adminHandler := handlers.NewAdminHandler(registryService)
	eventsHandler := handlers.NewEventsHandler(emitter)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)

	r.Route("/assets", func(r chi.Router) {
		r.Post("/", assetHandler.CreateAsset)
		r.Get("/count", queryHandler.GetCount)
		r.Get("/page", queryHandler.GetPage)
		r.Get("/by-tick/{symbol}", assetHandler.GetAssetByTick)
		r.Get("/id-by-symbol/{symbol}", assetHandler.GetIDBySymbol)
		r.Get("/{id}", assetHandler.GetAssetByID)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(handlers.AdminOnly(cfg.AdminKey))
		r.Post("/withdraw", adminHandler.Withdraw)
		r.Put("/params/base-fee", adminHandler.UpdateBaseFee)
		r.Put("/params/funding-commission", adminHandler.UpdateFundingCommission)
		r.Put("/params/tick-size", adminHandler.UpdateTickSize)
	})

	r.Get("/events/ws", eventsHandler.Stream)

	slog.Info("tickmint listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

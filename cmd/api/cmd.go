package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/walletwise/backend/internal/balance"
	"github.com/walletwise/backend/internal/bootstrap"
	"github.com/walletwise/backend/internal/cache"
	"github.com/walletwise/backend/internal/config"
	"github.com/walletwise/backend/internal/handlers"
	"github.com/walletwise/backend/internal/response"
	"github.com/walletwise/backend/internal/router"
	"github.com/walletwise/backend/internal/services"
	"github.com/walletwise/backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg, err := config.New()
	if err != nil {
		slog.Default().Error("config load failed", "error", err)
		os.Exit(1)
	}
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	astore := store.NewAccountStore(bs.Firestore)
	pstore := store.NewPostingStore(bs.Firestore)
	ccstore := store.NewCreditCardStore(bs.Firestore)

	// cache and reconciler
	c := cache.New(bs.Redis, cfg.CacheTTL)
	reconciler := balance.NewReconciler(pstore, astore, c, cfg.SyncWorkers)

	// services
	userv := services.NewUserService(ustore)
	aserv := services.NewAccountService(astore, pstore, c)
	tserv := services.NewTransactionService(pstore, astore, ccstore, reconciler)
	ccserv := services.NewCreditCardService(ccstore, pstore, astore, reconciler)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.UserSvc = userv
	deps.AccountSvc = aserv
	deps.BalanceSvc = reconciler
	deps.TransactionSvc = tserv
	deps.CreditCardSvc = ccserv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(cfg.Addr, r)
	exitOnError("server start failed", err, bs.Log)
}

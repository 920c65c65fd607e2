package main

import (
	"net/http"

	"platbox-gateway/internal/checkout"
	"platbox-gateway/internal/config"
	"platbox-gateway/internal/db"
	"platbox-gateway/internal/journal"
	"platbox-gateway/internal/logger"
	"platbox-gateway/internal/middleware"
	"platbox-gateway/internal/order"
	"platbox-gateway/internal/platbox"
	"platbox-gateway/internal/platbox/webhook"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, cfg.RedirectURL)

	journalRepo := journal.NewRepository(database)

	gw := platbox.NewGateway(platbox.Credentials{
		OpenKey:     cfg.OpenKey,
		SecretKey:   cfg.SecretKey,
		ProjectName: cfg.ProjectName,
		Production:  cfg.Production,
	}, orderSvc)

	checkoutSvc := checkout.NewService(orderSvc)

	h := webhook.NewHandler(gw, orderSvc, checkoutSvc, journalRepo, cfg.RedirectURL+"/checkout")

	router := httprouter.New()
	router.POST("/platbox/gateway", h.GatewayCallback)
	router.GET("/platbox/gateway", h.GatewayCallback)
	router.GET("/platbox/return", h.Return)
	router.GET("/pay/:order_id", h.PaymentPage)
	router.POST("/checkout/:order_id", h.ProcessCheckout)

	chain := middleware.RequestIDMiddleware(
		middleware.LoggingMiddleware(
			middleware.RateLimitMiddleware(router),
		),
	)

	logger.L().Info("payment gateway listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, chain); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

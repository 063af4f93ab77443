package main

import (
	"log"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/api"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/cart"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/category"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/config"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/db"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/geocode"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/notify"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/order"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/product"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/settings"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	settingsRepo := settings.NewRepository(database)
	settingsSvc := settings.NewService(settingsRepo)

	var publisher order.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := notify.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic)
		defer producer.Close()
		publisher = producer
	}

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, publisher)

	geocoder := geocode.NewClient(cfg.GeocoderURL)
	carts := cart.NewStore()

	handler := api.NewHandler(productSvc, categorySvc, orderSvc, settingsSvc, carts, geocoder)
	router := api.Router(handler, cfg.JWTSecret)

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(router.Run(":" + cfg.AppPort))
}

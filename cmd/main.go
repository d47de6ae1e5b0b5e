package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"

	"heladeria/internal/aigen"
	"heladeria/internal/config"
	httpapi "heladeria/internal/http"
	"heladeria/internal/repository"
	"heladeria/internal/service"
	"heladeria/internal/storage"

	_ "heladeria/docs"
)

// @title Heladería Storefront API
// @version 1.0
// @description Product catalog, orders and AI content generation for the ice cream shop
func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}

	dynamo := dynamodb.NewFromConfig(awsCfg)
	productsRepo := repository.NewDynamoProducts(dynamo, cfg.ProductsTable)
	ordersRepo := repository.NewDynamoOrders(dynamo, cfg.OrdersTable)

	images := storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.ImagesBucket)

	// Bedrock доступен не во всех регионах, поэтому регион задаётся отдельно
	bedrock := bedrockruntime.NewFromConfig(awsCfg, func(o *bedrockruntime.Options) {
		o.Region = cfg.BedrockRegion
	})
	ai := aigen.NewGenerator(aigen.NewBedrockText(bedrock), aigen.NewBedrockImage(bedrock), images)

	productsSvc := service.NewProductService(productsRepo)
	ordersSvc := service.NewOrderService(ordersRepo)

	srv := httpapi.NewServer(productsSvc, ordersSvc, ai, images)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Infof("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}

//go:build wireinject
// +build wireinject

package main

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/handler"
	"Storefront/pkg/client"
	"Storefront/pkg/database"
	"Storefront/pkg/oss"
	"Storefront/pkg/rocketmq"
	"Storefront/pkg/server"
	"Storefront/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, func(), error) {
	wire.Build(
		config.ProvideDatabaseConfig,
		config.ProvideOssConfig,
		config.ProvideRocketMQConfig,
		database.NewDB,
		client.NewRedisClient,
		oss.NewOssClient,
		rocketmq.InitProducer,
		server.NewGinEngine,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Category), "*"),
		wire.Struct(new(handler.Product), "*"),
		wire.Struct(new(handler.Cart), "*"),
		wire.Struct(new(handler.Order), "*"),
		wire.Struct(new(handler.Loyalty), "*"),
		wire.Struct(new(handler.Coupon), "*"),
		wire.Struct(new(handler.Review), "*"),
		wire.Struct(new(handler.Shipping), "*"),
		wire.Struct(new(handler.Payment), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,
		service.ProviderSet,
	)
	return nil, nil, nil
}

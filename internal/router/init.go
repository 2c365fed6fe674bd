package router

import (
	"github.com/peerledger/peerpay/internal/application"
	"github.com/peerledger/peerpay/internal/container"
	pginfra "github.com/peerledger/peerpay/internal/infrastructure/postgres"
	handlers "github.com/peerledger/peerpay/internal/interface/http"
	"github.com/peerledger/peerpay/internal/router/modules"
)

// InitModules builds repositories, services, and handlers from the container
// singletons and registers every feature module with the registry. Called
// once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	transactionRepo := pginfra.NewTransactionRepository(pool)
	friendshipRepo := pginfra.NewFriendshipRepository(pool)

	userSvc := application.NewUserService(
		userRepo,
		transactionRepo,
		container.GetRedis(),
		logger,
		container.GetES(),
		cfg.ESUsersIndex,
		container.GetGCS(),
		cfg.GCSBucket,
	)
	transactionSvc := application.NewTransactionService(
		transactionRepo,
		userRepo,
		notificationPublisher(),
		logger,
	)
	friendshipSvc := application.NewFriendshipService(friendshipRepo, logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger)))
	r.Add(modules.NewTransactionModule(handlers.NewTransactionHandler(transactionSvc, logger)))
	r.Add(modules.NewFriendshipModule(handlers.NewFriendshipHandler(friendshipSvc, logger)))
}

// notificationPublisher avoids a typed-nil interface when RabbitMQ is not
// configured.
func notificationPublisher() application.NotificationPublisher {
	if pub := container.GetRabbitPub(); pub != nil {
		return pub
	}
	return nil
}

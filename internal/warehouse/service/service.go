package service

import (
	"errors"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/config"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// ErrLocked rejects edits to a locked receipt or release form.
	ErrLocked = errors.New("record is locked")
	// ErrNotAuthor rejects release edits by anyone but the authoring warehouseman.
	ErrNotAuthor = errors.New("only the authoring warehouseman may edit this form")
	// ErrRowNotFound means the stock table has no row for the requested key.
	ErrRowNotFound = errors.New("no stock row for that item")
)

// Services is the warehouse service set.
type Services struct {
	Delivery *DeliveryService
	Release  *ReleaseService
	IPOW     *IPOWService
	Stock    *StockService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	cache := NewStockCache(rdb, cfg.Redis.StockTTL, logger)
	return &Services{
		Delivery: NewDeliveryService(repos.Delivery, cache),
		Release:  NewReleaseService(repos.Release, cache),
		IPOW:     NewIPOWService(repos.IPOW, cache),
		Stock:    NewStockService(repos.IPOW, repos.Delivery, repos.Release, repos.Override, cache),
	}
}

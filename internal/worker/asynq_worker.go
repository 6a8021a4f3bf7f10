package worker

import (
	"context"
	"encoding/json"

	"github.com/cockpitforge/internal/logger"
	"github.com/cockpitforge/internal/provider"
	"github.com/cockpitforge/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Warnw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPriceRangeRecompute, c.handlePriceRangeRecompute)
}

func (c *Consumer) handlePriceRangeRecompute(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.PriceRangeRecomputePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_price_range_unmarshal_failed", "error", err)
		return err
	}
	if c.CatalogService == nil {
		logger.Warnw("worker_price_range_skip_catalog_nil")
		return nil
	}
	if payload.ProductID == 0 {
		if err := c.CatalogService.RecomputeAllPriceRanges(); err != nil {
			logger.Warnw("worker_price_range_recompute_all_failed", "error", err)
			return err
		}
		return nil
	}
	if err := c.CatalogService.RecomputePriceRange(payload.ProductID); err != nil {
		logger.Warnw("worker_price_range_recompute_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	return nil
}

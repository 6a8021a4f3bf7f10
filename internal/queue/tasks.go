package queue

import (
	"encoding/json"

	"github.com/cockpitforge/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPriceRangeRecompute 派生价格区间重算任务
	TaskPriceRangeRecompute = constants.TaskPriceRangeRecompute
)

// PriceRangeRecomputePayload 价格区间重算任务载荷（ProductID 为 0 表示全量重算）
type PriceRangeRecomputePayload struct {
	ProductID uint `json:"product_id"`
}

// NewPriceRangeRecomputeTask 创建价格区间重算任务
func NewPriceRangeRecomputeTask(payload PriceRangeRecomputePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPriceRangeRecompute, body), nil
}

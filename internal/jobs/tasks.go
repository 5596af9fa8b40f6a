package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/walletwise/backend/internal/dto"
)

const (
	// QueueDefault is the queue all balance jobs run on.
	QueueDefault = "default"
	// TaskBalanceRecalculate resyncs every account of one user.
	TaskBalanceRecalculate = "balance:recalculate"
	// TaskBalanceSweep fans a recalculate task out to every user.
	TaskBalanceSweep = "balance:sweep"
)

// RecalculatePayload identifies the user whose accounts get resynced.
type RecalculatePayload struct {
	UID string `json:"uid"`
}

func NewRecalculateTask(payload RecalculatePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBalanceRecalculate, data), nil
}

func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TaskBalanceSweep, nil)
}

type reconciler interface {
	RecalculateAllBalances(ctx context.Context, uid string) (dto.RecalculateResult, error)
}

type uidLister interface {
	ListUIDs(ctx context.Context, cursor string) ([]string, string, error)
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Handlers processes balance jobs. The sweep handler only enqueues; the
// per-user work happens in recalculate tasks so one slow user cannot stall
// the rest.
type Handlers struct {
	Reconciler reconciler
	Users      uidLister
	Client     enqueuer
	Log        *slog.Logger
}

func (h *Handlers) HandleRecalculate(ctx context.Context, t *asynq.Task) error {
	var payload RecalculatePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	result, err := h.Reconciler.RecalculateAllBalances(ctx, payload.UID)
	if err != nil {
		return err
	}
	if len(result.Failed) > 0 {
		h.Log.Warn("balance recalculation had failures",
			"uid", payload.UID,
			"succeeded", len(result.Succeeded),
			"failed", len(result.Failed),
		)
	}
	return nil
}

func (h *Handlers) HandleSweep(ctx context.Context, _ *asynq.Task) error {
	enqueued := 0
	cursor := ""
	for {
		uids, next, err := h.Users.ListUIDs(ctx, cursor)
		if err != nil {
			return err
		}
		for _, uid := range uids {
			task, err := NewRecalculateTask(RecalculatePayload{UID: uid})
			if err != nil {
				return err
			}
			if _, err := h.Client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault)); err != nil {
				return err
			}
			enqueued++
		}
		if next == "" {
			break
		}
		cursor = next
	}
	h.Log.Info("balance sweep enqueued", "users", enqueued)
	return nil
}

package processor

import (
	"context"

	"hijabstyles/pkg/logger"
	"hijabstyles/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// RatingReconcilerService - часть ReviewService, нужная планировщику
type RatingReconcilerService interface {
	ReconcileRatings(ctx context.Context) error
}

// RatingReconciler периодически пересчитывает сводки всех стилей
// Пересчёт идемпотентен, поэтому лишний запуск безопасен
type RatingReconciler struct {
	cron      *cron.Cron
	reviewSvc RatingReconcilerService
}

func NewRatingReconciler(reviewSvc RatingReconcilerService) *RatingReconciler {
	return &RatingReconciler{
		cron:      cron.New(),
		reviewSvc: reviewSvc,
	}
}

// Start регистрирует задачу по расписанию и запускает планировщик
func (r *RatingReconciler) Start(ctx context.Context, schedule string) error {
	_, err := r.cron.AddFunc(schedule, func() {
		r.runOnce(ctx)
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	logger.Info().Str("schedule", schedule).Msg("Rating reconciler started")

	return nil
}

func (r *RatingReconciler) runOnce(ctx context.Context) {
	if err := r.reviewSvc.ReconcileRatings(ctx); err != nil {
		metrics.RatingReconcileRuns.WithLabelValues("failed").Inc()
		logger.Error().Err(err).Msg("Rating reconciliation failed")
		return
	}

	metrics.RatingReconcileRuns.WithLabelValues("success").Inc()
	logger.Info().Msg("Rating reconciliation completed")
}

func (r *RatingReconciler) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Rating reconciler stopped")
}

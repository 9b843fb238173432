package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReconcilerService struct {
	mock.Mock
}

func (m *MockReconcilerService) ReconcileRatings(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestRunOnce_Success(t *testing.T) {
	mockService := new(MockReconcilerService)
	mockService.On("ReconcileRatings", mock.Anything).Return(nil)

	reconciler := NewRatingReconciler(mockService)
	reconciler.runOnce(context.Background())

	mockService.AssertExpectations(t)
}

func TestRunOnce_Error(t *testing.T) {
	mockService := new(MockReconcilerService)
	mockService.On("ReconcileRatings", mock.Anything).Return(errors.New("mongo unavailable"))

	reconciler := NewRatingReconciler(mockService)

	// Ошибка пересчёта логируется, но не паникует
	assert.NotPanics(t, func() {
		reconciler.runOnce(context.Background())
	})
}

func TestStart_InvalidSchedule(t *testing.T) {
	reconciler := NewRatingReconciler(new(MockReconcilerService))

	err := reconciler.Start(context.Background(), "not a cron expression")

	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	mockService := new(MockReconcilerService)

	reconciler := NewRatingReconciler(mockService)
	err := reconciler.Start(context.Background(), "0 3 * * *")

	assert.NoError(t, err)
	reconciler.Stop()
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"hijabstyles/catalog-service/internal/app/catalog/entity"
	"hijabstyles/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, userID, username string, req *entity.CreateReviewRequest) (*entity.Review, error)
	GetReviewsByStyle(ctx context.Context, styleID string) ([]entity.Review, error)
	GetUserReviews(ctx context.Context, userID string) ([]entity.Review, error)
}

type ReviewHandler struct {
	reviewService ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// CreateReview создает отзыв от имени аутентифицированного пользователя
// Автором всегда становится владелец токена
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userIDStr, ok := userID.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return
	}

	username := c.GetString("username")

	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), userIDStr, username, &req)
	if err != nil {
		if errors.Is(err, service.ErrStyleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Style not found"})
			return
		}
		if errors.Is(err, service.ErrAlreadyReviewed) {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this style"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetReviewsByStyle отдаёт отзывы на стиль, новые первыми
// Стиль без отзывов - это пустой список, а не ошибка
func (h *ReviewHandler) GetReviewsByStyle(c *gin.Context) {
	styleID := c.Param("style_id")
	if styleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Style ID is required"})
		return
	}

	reviews, err := h.reviewService.GetReviewsByStyle(c.Request.Context(), styleID)
	if err != nil {
		if errors.Is(err, service.ErrStyleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Style not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{
		Reviews: reviews,
		Total:   len(reviews),
	})
}

// GetMyReviews отдаёт отзывы текущего пользователя
func (h *ReviewHandler) GetMyReviews(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userIDStr, ok := userID.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return
	}

	reviews, err := h.reviewService.GetUserReviews(c.Request.Context(), userIDStr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{
		Reviews: reviews,
		Total:   len(reviews),
	})
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}

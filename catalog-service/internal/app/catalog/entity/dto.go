package entity

// CreateReviewRequest - запрос на создание отзыва
// Автор берётся из токена, в теле его передать нельзя
type CreateReviewRequest struct {
	StyleID string `json:"style_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Text    string `json:"text" validate:"required,max=1000"`
}

// ReviewListResponse - ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

// StyleListResponse - ответ со списком стилей
type StyleListResponse struct {
	Styles []Style `json:"styles"`
	Total  int     `json:"total"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

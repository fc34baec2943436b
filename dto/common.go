package dto

// ==================== ERROR RESPONSE DTOs ====================

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Invalid request"`
	Data    string `json:"data,omitempty" example:"validation failed"`
}

type ValidationError struct {
	Field   string `json:"field" example:"action_id"`
	Message string `json:"message" example:"action_id is required"`
}

type ValidationErrorResponse struct {
	Code    int               `json:"code" example:"400"`
	Message string            `json:"message" example:"Validation failed"`
	Errors  []ValidationError `json:"errors"`
}

// ==================== API RESPONSE WRAPPERS ====================

type APIResponse struct {
	Code    int         `json:"code" example:"200"`
	Message string      `json:"message" example:"Success"`
	Data    interface{} `json:"data,omitempty"`
}

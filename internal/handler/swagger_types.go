package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// GenerateAdviceRequest represents the advice article request body.
type GenerateAdviceRequest struct {
	Titre      string `json:"titre" example:"Réussir son entretien d'embauche"`
	Thematique string `json:"thematique" example:"Emploi & Carrière"`
	Model      string `json:"model" example:"gemini" enums:"gemini,deepseek"`
}

// ConnectionResult is the outcome of a store connection test.
type ConnectionResult struct {
	Connected bool   `json:"connected" example:"true"`
	Message   string `json:"message" example:"Connexion à la base de données réussie."`
}

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

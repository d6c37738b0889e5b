// Package apierror provides the error envelopes returned by the API.
// Handlers never put driver or stack details in Detail.
package apierror

// Messages shared by several handlers.
const (
	MsgIndisponible = "données indisponibles"
	MsgInterne      = "erreur interne"
	MsgIntrouvable  = "ressource introuvable"
	MsgInvalide     = "requête invalide"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps per-field errors (422).
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "erreur de validation", Fields: fields}
}

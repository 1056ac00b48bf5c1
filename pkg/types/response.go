package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope carries the structured error plus a top-level message
// mirror for clients that only read {message}.
type ErrorEnvelope struct {
	Error   APIError `json:"error"`
	Message string   `json:"message"`
}

package model

// Envelope is the uniform body of every API response.
type Envelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Message string         `json:"message,omitempty"`
	User    *AdminIdentity `json:"user,omitempty"` // login only
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Fail(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}

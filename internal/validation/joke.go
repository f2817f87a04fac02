package validation

import "strings"

// EmptyRequest is bound by routes that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// AddJokeRequest is the body of POST /jokes.
type AddJokeRequest struct {
	Text string `json:"text" validate:"required"`
}

// Validate rejects missing text and text made only of whitespace.
func (r *AddJokeRequest) Validate() error {
	if err := Struct(r); err != nil {
		return err
	}
	if strings.TrimSpace(r.Text) == "" {
		return CustomValidationErrors{{Field: "text", Message: "is required"}}
	}
	return nil
}

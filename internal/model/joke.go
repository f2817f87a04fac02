// Package model holds the records shared between the store, the service and the API.
package model

// Joke is a single stored joke. IDs are assigned by the store and never reused.
type Joke struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

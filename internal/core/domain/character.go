package domain

import "errors"

var ErrCharacterNotFound = errors.New("character not found")

// Character is the protected business resource served by the API.
type Character struct {
	ID       int64  `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	LastName string `json:"lastName" bson:"last_name"`
}

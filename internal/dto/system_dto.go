package dto

import (
	"errors"

	"github.com/syncit-hq/syncit-api/internal/models"
)

type SystemCreateRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Validate checks the request shape and returns the parsed type.
func (r SystemCreateRequest) Validate() (models.SystemType, error) {
	if r.Name == "" {
		return "", errors.New("field 'name' is required")
	}
	return models.ParseSystemType(r.Type)
}

type SystemUpdateRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

// Validate rejects empty partial updates before any database interaction.
func (r SystemUpdateRequest) Validate() error {
	if r.Name == nil && r.Type == nil {
		return errors.New("at least one of ['name', 'type'] is required")
	}
	return nil
}

// SystemFilterQuery carries the optional list filters. The id parameter is
// accepted for compatibility but does not participate in filtering.
type SystemFilterQuery struct {
	ID   string `query:"id"`
	Name string `query:"name"`
	Type string `query:"type"`
}

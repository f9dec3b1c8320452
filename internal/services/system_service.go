package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/syncit-hq/syncit-api/internal/apierr"
	"github.com/syncit-hq/syncit-api/internal/models"
)

// SystemService owns all read/write access to System rows. Every method
// receives the request-scoped session; the service never opens its own.
type SystemService struct{}

func NewSystemService() *SystemService {
	return &SystemService{}
}

// Create persists a new System with a generated id and timestamps and
// returns the persisted entity.
func (s *SystemService) Create(db *gorm.DB, name string, sysType models.SystemType) (*models.System, error) {
	system := &models.System{Name: name, Type: sysType}
	if err := db.Create(system).Error; err != nil {
		slog.Error("failed to create System entry", "name", name, "error", err)
		return nil, apierr.CreateFailed("Failed to create System entry.")
	}
	return system, nil
}

// Read looks a System up by primary key.
func (s *SystemService) Read(db *gorm.DB, id uuid.UUID) (*models.System, error) {
	var system models.System
	if err := db.First(&system, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			message := fmt.Sprintf("System id '%s' not found", id)
			slog.Warn(message)
			return nil, apierr.NotFound(message)
		}
		slog.Error("failed to read System entry", "id", id, "error", err)
		return nil, apierr.ReadFailed("Failed to read System entry.")
	}
	return &system, nil
}

// ReadFilteredOrAll returns all Systems when no filter is given, otherwise
// the rows whose name OR type matches case-insensitively as a substring.
// The filters are OR-combined on purpose; an empty result is valid.
func (s *SystemService) ReadFilteredOrAll(db *gorm.DB, name, sysType string) ([]models.System, error) {
	query := db.Model(&models.System{})

	var conds []string
	var args []interface{}
	if name != "" {
		conds = append(conds, "name ILIKE ?")
		args = append(args, "%"+name+"%")
	}
	if sysType != "" {
		conds = append(conds, "type ILIKE ?")
		args = append(args, "%"+sysType+"%")
	}
	if len(conds) > 0 {
		query = query.Where(strings.Join(conds, " OR "), args...)
	}

	var systems []models.System
	if err := query.Find(&systems).Error; err != nil {
		slog.Error("failed to list System entries", "name", name, "type", sysType, "error", err)
		return nil, apierr.ReadFailed("Failed to list System entries.").WithStatus(400)
	}
	return systems, nil
}

// Update applies the provided fields to an existing System. Unset fields
// are left untouched; updated_at refreshes on commit.
func (s *SystemService) Update(db *gorm.DB, id uuid.UUID, name *string, sysType *models.SystemType) (*models.System, error) {
	var system models.System
	if err := db.First(&system, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			message := fmt.Sprintf("System id '%s' not found", id)
			slog.Error(message)
			return nil, apierr.NotFound(message)
		}
		slog.Error("failed to read System entry for update", "id", id, "error", err)
		return nil, apierr.UpdateFailed("Failed to update System entry.")
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if sysType != nil {
		updates["type"] = *sysType
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&system).Updates(updates).Error
	})
	if err != nil {
		slog.Error("failed to update System entry", "id", id, "error", err)
		return nil, apierr.UpdateFailed("Failed to update System entry.")
	}
	return &system, nil
}

// Delete removes a System row permanently and returns its last known
// state as a confirmation snapshot.
func (s *SystemService) Delete(db *gorm.DB, id uuid.UUID) (*models.System, error) {
	var system models.System
	if err := db.First(&system, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			message := fmt.Sprintf("System with id '%s' not found.", id)
			slog.Error(message)
			return nil, apierr.NotFound(message)
		}
		slog.Error("failed to read System entry for delete", "id", id, "error", err)
		return nil, apierr.DeleteFailed("Failed to delete System entry.")
	}

	snapshot := system
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.System{}, "id = ?", id).Error
	})
	if err != nil {
		slog.Error("failed to delete System entry", "id", id, "error", err)
		return nil, apierr.DeleteFailed("Failed to delete System entry.")
	}
	return &snapshot, nil
}

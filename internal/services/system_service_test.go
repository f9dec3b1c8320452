package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/syncit-hq/syncit-api/internal/apierr"
	"github.com/syncit-hq/syncit-api/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

func systemRows(systems ...models.System) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "type", "created_at", "updated_at", "updated_by"})
	for _, s := range systems {
		rows.AddRow(s.ID.String(), s.Name, string(s.Type), s.CreatedAt, s.UpdatedAt, s.UpdatedBy)
	}
	return rows
}

func asDomainError(t *testing.T, err error) *apierr.Error {
	t.Helper()
	var domainErr *apierr.Error
	require.ErrorAs(t, err, &domainErr)
	return domainErr
}

func TestCreate(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "systems"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	system, err := svc.Create(db, "crm-prod", models.SystemTypeSalesforce)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, system.ID)
	assert.Equal(t, "crm-prod", system.Name)
	assert.Equal(t, models.SystemTypeSalesforce, system.Type)
	assert.False(t, system.CreatedAt.IsZero())
	assert.WithinDuration(t, system.CreatedAt, system.UpdatedAt, time.Second)
	assert.Nil(t, system.UpdatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDatabaseFailure(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "systems"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := svc.Create(db, "crm-prod", models.SystemTypeSalesforce)
	domainErr := asDomainError(t, err)
	assert.Equal(t, apierr.KindCreateFailed, domainErr.Kind)
	assert.Equal(t, 500, domainErr.Status)
	assert.NotContains(t, domainErr.Message, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRead(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT (.+) FROM "systems" WHERE id =`).
		WillReturnRows(systemRows(models.System{
			ID: id, Name: "crm-prod", Type: models.SystemTypeSalesforce,
			CreatedAt: now, UpdatedAt: now,
		}))

	system, err := svc.Read(db, id)
	require.NoError(t, err)
	assert.Equal(t, id, system.ID)
	assert.Equal(t, "crm-prod", system.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "systems" WHERE id =`).
		WillReturnRows(systemRows())

	_, err := svc.Read(db, id)
	domainErr := asDomainError(t, err)
	assert.Equal(t, apierr.KindNotFound, domainErr.Kind)
	assert.Equal(t, 404, domainErr.Status)
	assert.Contains(t, domainErr.Message, id.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadDatabaseFailure(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	mock.ExpectQuery(`SELECT (.+) FROM "systems" WHERE id =`).
		WillReturnError(errors.New("connection reset"))

	_, err := svc.Read(db, uuid.New())
	domainErr := asDomainError(t, err)
	assert.Equal(t, apierr.KindReadFailed, domainErr.Kind)
	assert.Equal(t, 500, domainErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadFilteredOrAllWithoutFilters(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT (.+) FROM "systems"`).
		WillReturnRows(systemRows(
			models.System{ID: uuid.New(), Name: "crm", Type: models.SystemTypeSalesforce, CreatedAt: now, UpdatedAt: now},
			models.System{ID: uuid.New(), Name: "support", Type: models.SystemTypeZendesk, CreatedAt: now, UpdatedAt: now},
		))

	systems, err := svc.ReadFilteredOrAll(db, "", "")
	require.NoError(t, err)
	assert.Len(t, systems, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadFilteredOrAllCombinesFiltersWithOR(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	mock.ExpectQuery(`SELECT (.+) FROM "systems" WHERE name ILIKE \$1 OR type ILIKE \$2`).
		WithArgs("%crm%", "%ZENDESK%").
		WillReturnRows(systemRows())

	systems, err := svc.ReadFilteredOrAll(db, "crm", "ZENDESK")
	require.NoError(t, err)
	assert.Empty(t, systems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadFilteredOrAllSingleFilter(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	mock.ExpectQuery(`SELECT (.+) FROM "systems" WHERE name ILIKE \$1`).
		WithArgs("%crm%").
		WillReturnRows(systemRows())

	_, err := svc.ReadFilteredOrAll(db, "crm", "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadFilteredOrAllDatabaseFailure(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	mock.ExpectQuery(`SELECT (.+) FROM "systems"`).
		WillReturnError(errors.New("boom"))

	_, err := svc.ReadFilteredOrAll(db, "", "")
	domainErr := asDomainError(t, err)
	assert.Equal(t, apierr.KindReadFailed, domainErr.Kind)
	assert.Equal(t, 400, domainErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNameOnly(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	id := uuid.New()
	created := time.Now().UTC().Add(-time.Hour)
	mock.ExpectQuery(`SELECT (.+) FROM "systems" WHERE id =`).
		WillReturnRows(systemRows(models.System{
			ID: id, Name: "old-name", Type: models.SystemTypeZendesk,
			CreatedAt: created, UpdatedAt: created,
		}))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "systems" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	name := "new-name"
	system, err := svc.Update(db, id, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "new-name", system.Name)
	assert.Equal(t, models.SystemTypeZendesk, system.Type, "type must stay untouched")
	assert.True(t, system.UpdatedAt.After(created), "updated_at must refresh")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "systems" WHERE id =`).
		WillReturnRows(systemRows())

	name := "new-name"
	_, err := svc.Update(db, id, &name, nil)
	domainErr := asDomainError(t, err)
	assert.Equal(t, apierr.KindNotFound, domainErr.Kind)
	assert.Contains(t, domainErr.Message, id.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCommitFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT (.+) FROM "systems" WHERE id =`).
		WillReturnRows(systemRows(models.System{
			ID: id, Name: "crm", Type: models.SystemTypeSalesforce,
			CreatedAt: now, UpdatedAt: now,
		}))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "systems" SET`).WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	name := "new-name"
	_, err := svc.Update(db, id, &name, nil)
	domainErr := asDomainError(t, err)
	assert.Equal(t, apierr.KindUpdateFailed, domainErr.Kind)
	assert.Equal(t, 400, domainErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReturnsSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT (.+) FROM "systems" WHERE id =`).
		WillReturnRows(systemRows(models.System{
			ID: id, Name: "crm", Type: models.SystemTypeSalesforce,
			CreatedAt: now, UpdatedAt: now,
		}))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "systems"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	snapshot, err := svc.Delete(db, id)
	require.NoError(t, err)
	assert.Equal(t, id, snapshot.ID)
	assert.Equal(t, "crm", snapshot.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "systems" WHERE id =`).
		WillReturnRows(systemRows())

	_, err := svc.Delete(db, id)
	domainErr := asDomainError(t, err)
	assert.Equal(t, apierr.KindNotFound, domainErr.Kind)
	assert.Equal(t, 404, domainErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCommitFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewSystemService()

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT (.+) FROM "systems" WHERE id =`).
		WillReturnRows(systemRows(models.System{
			ID: id, Name: "crm", Type: models.SystemTypeSalesforce,
			CreatedAt: now, UpdatedAt: now,
		}))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "systems"`).WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	_, err := svc.Delete(db, id)
	domainErr := asDomainError(t, err)
	assert.Equal(t, apierr.KindDeleteFailed, domainErr.Kind)
	assert.Equal(t, 400, domainErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

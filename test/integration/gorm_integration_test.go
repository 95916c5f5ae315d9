package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/repository/contract"
	"customer-insight-be/internal/repository/unitofwork"
	"customer-insight-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, logger.Warn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	ctx := context.Background()
	now := time.Now()
	customer := &entity.Customer{
		Id: uuid.New(),
		Fields: map[string]interface{}{
			entity.FieldFullName:      "Integration Customer",
			entity.FieldPrimaryMobile: "+91 98765 43210",
		},
		AdditionalData: map[string]interface{}{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, uow.CustomerRepository().Create(ctx, customer))

	t.Run("Merge keeps untouched fields", func(t *testing.T) {
		ok, err := uow.CustomerRepository().Merge(ctx, customer.Id, contract.CustomerPatch{
			Fields:         map[string]interface{}{entity.FieldOccupation: "Architect"},
			AdditionalData: map[string]interface{}{"petName": "Bruno"},
		})
		require.NoError(t, err)
		assert.True(t, ok)

		stored, err := uow.CustomerRepository().FindById(ctx, customer.Id)
		require.NoError(t, err)
		assert.Equal(t, "Architect", stored.Fields[entity.FieldOccupation])
		assert.Equal(t, "Integration Customer", stored.Fields[entity.FieldFullName])
		assert.Equal(t, "Bruno", stored.AdditionalData["petName"])
	})

	t.Run("Artifact transition is compare-and-set", func(t *testing.T) {
		artifact := entity.NewArtifact(customer.Id, nil, entity.NotePayload{Content: "Prefers evening calls."})
		require.NoError(t, uow.ArtifactRepository().Create(ctx, artifact))

		ok, err := uow.ArtifactRepository().Transition(ctx, entity.ArtifactTransition{
			Id: artifact.Id, To: entity.ArtifactStatusAccepted, DecidedBy: "rm-1", DecidedAt: time.Now(),
		})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = uow.ArtifactRepository().Transition(ctx, entity.ArtifactTransition{
			Id: artifact.Id, To: entity.ArtifactStatusRejected, DecidedBy: "rm-2", DecidedAt: time.Now(),
		})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Rollback discards note", func(t *testing.T) {
		txUow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, txUow.Begin(ctx))
		note := &entity.CustomerNote{
			Id:         uuid.New(),
			CustomerId: customer.Id,
			Content:    "rolled back",
			CreatedBy:  "rm-1",
			CreatedAt:  time.Now(),
		}
		require.NoError(t, txUow.CustomerNoteRepository().Create(ctx, note))
		require.NoError(t, txUow.Rollback())

		notes, err := uow.CustomerNoteRepository().FindAllByCustomer(ctx, customer.Id, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})
}

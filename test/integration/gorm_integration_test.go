package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"care-assistant-be/internal/entity"
	"care-assistant-be/internal/repository/specification"
	"care-assistant-be/internal/repository/unitofwork"
	"care-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.PatientRepository())
	assert.NotNil(t, uow.ChatSessionRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check Patient Repository", func(t *testing.T) {
		count, err := uow.PatientRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Patient count: %d", count)
	})

	t.Run("Check Chat Message Repository", func(t *testing.T) {
		count, err := uow.ChatMessageRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ChatMessage count: %d", count)
	})

	t.Run("Transactional Turn Write", func(t *testing.T) {
		ctx := context.Background()
		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback() //nolint:errcheck

		session := &entity.ChatSession{
			Id:            uuid.New(),
			ActiveHandler: "unidentified",
		}
		require.NoError(t, uow.ChatSessionRepository().Create(ctx, session))

		msg := &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: session.Id,
			Role:          "user",
			Content:       "integration test message",
		}
		require.NoError(t, uow.ChatMessageRepository().Create(ctx, msg))

		found, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: session.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "unidentified", found.ActiveHandler)

		// Rolled back by the deferred call; nothing persists.
	})

	t.Run("Patient Name Lookup", func(t *testing.T) {
		ctx := context.Background()
		uow := uowFactory.NewUnitOfWork(ctx)

		matches, err := uow.PatientRepository().FindAll(ctx, specification.ByNameExact{Name: "definitely-not-a-real-patient"})
		assert.NoError(t, err)
		assert.Empty(t, matches)
	})
}

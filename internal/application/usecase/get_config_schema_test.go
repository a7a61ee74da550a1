package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabstrip/internal/application/port/mocks"
	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/domain/entity"
)

func TestGetConfigSchemaUseCase_Execute(t *testing.T) {
	t.Run("returns schema keys from provider", func(t *testing.T) {
		// Arrange
		mockProvider := mocks.NewMockConfigSchemaProvider(t)
		expectedKeys := []entity.ConfigKeyInfo{
			{
				Key:         "groups.default_color",
				Type:        "string",
				Default:     "grey",
				Description: "Color given to new tab groups",
				Values:      []string{"grey", "blue", "red"},
				Section:     "Groups",
			},
			{
				Key:         "logging.level",
				Type:        "string",
				Default:     "info",
				Description: "Log verbosity level",
				Values:      []string{"trace", "debug", "info", "warn", "error", "fatal"},
				Section:     "Logging",
			},
		}
		mockProvider.EXPECT().GetSchema().Return(expectedKeys)

		uc := usecase.NewGetConfigSchemaUseCase(mockProvider)

		// Act
		result, err := uc.Execute(context.Background(), usecase.GetConfigSchemaInput{})

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Len(t, result.Keys, 2)
		assert.Equal(t, "groups.default_color", result.Keys[0].Key)
		assert.Equal(t, "logging.level", result.Keys[1].Key)
		mock.AssertExpectationsForObjects(t, mockProvider)
	})

	t.Run("returns empty slice when no keys", func(t *testing.T) {
		// Arrange
		mockProvider := mocks.NewMockConfigSchemaProvider(t)
		mockProvider.EXPECT().GetSchema().Return([]entity.ConfigKeyInfo{})

		uc := usecase.NewGetConfigSchemaUseCase(mockProvider)

		// Act
		result, err := uc.Execute(context.Background(), usecase.GetConfigSchemaInput{})

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result.Keys)
		mock.AssertExpectationsForObjects(t, mockProvider)
	})

	t.Run("keys include all expected fields", func(t *testing.T) {
		// Arrange
		mockProvider := mocks.NewMockConfigSchemaProvider(t)
		expectedKeys := []entity.ConfigKeyInfo{
			{
				Key:         "closure.undo_timeout_ms",
				Type:        "int",
				Default:     "5000",
				Description: "How long closed tabs stay restorable",
				Range:       "0-600000",
				Section:     "Closure",
			},
		}
		mockProvider.EXPECT().GetSchema().Return(expectedKeys)

		uc := usecase.NewGetConfigSchemaUseCase(mockProvider)

		// Act
		result, err := uc.Execute(context.Background(), usecase.GetConfigSchemaInput{})

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Len(t, result.Keys, 1)

		key := result.Keys[0]
		assert.Equal(t, "closure.undo_timeout_ms", key.Key)
		assert.Equal(t, "int", key.Type)
		assert.Equal(t, "5000", key.Default)
		assert.Equal(t, "How long closed tabs stay restorable", key.Description)
		assert.Equal(t, "0-600000", key.Range)
		assert.Equal(t, "Closure", key.Section)
		assert.Empty(t, key.Values) // No enum values for int type
		mock.AssertExpectationsForObjects(t, mockProvider)
	})
}

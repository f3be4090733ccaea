package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tessellate/internal/application/port/mocks"
	"github.com/bnema/tessellate/internal/application/usecase"
	"github.com/bnema/tessellate/internal/domain/entity"
)

func schemaKeys() []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "layout.default_strategy",
			Type:        "string",
			Default:     "master_stack",
			Description: "Strategy used when no cycle is configured",
			Values:      []string{"corner", "dwindle", "fair", "line", "master_stack", "spiral"},
			Section:     "Layout",
		},
		{
			Key:         "consumer.response_timeout_ms",
			Type:        "int",
			Default:     "250",
			Description: "How long to wait for a producer answer",
			Range:       "1-60000",
			Section:     "Consumer",
		},
	}
}

func TestGetConfigSchemaUseCase_Execute(t *testing.T) {
	t.Run("returns every key without a section", func(t *testing.T) {
		provider := mocks.NewMockConfigSchemaProvider(t)
		provider.EXPECT().GetSchema().Return(schemaKeys())

		uc := usecase.NewGetConfigSchemaUseCase(provider)
		result, err := uc.Execute(context.Background(), usecase.GetConfigSchemaInput{})

		require.NoError(t, err)
		require.Len(t, result.Keys, 2)
		assert.Equal(t, "layout.default_strategy", result.Keys[0].Key)
		assert.Equal(t, "consumer.response_timeout_ms", result.Keys[1].Key)
	})

	t.Run("filters by section ignoring case", func(t *testing.T) {
		provider := mocks.NewMockConfigSchemaProvider(t)
		provider.EXPECT().GetSchema().Return(schemaKeys())

		uc := usecase.NewGetConfigSchemaUseCase(provider)
		result, err := uc.Execute(context.Background(), usecase.GetConfigSchemaInput{Section: "consumer"})

		require.NoError(t, err)
		require.Len(t, result.Keys, 1)
		key := result.Keys[0]
		assert.Equal(t, "int", key.Type)
		assert.Equal(t, "1-60000", key.Range)
		assert.Empty(t, key.Values)
	})

	t.Run("returns empty slice when no keys", func(t *testing.T) {
		provider := mocks.NewMockConfigSchemaProvider(t)
		provider.EXPECT().GetSchema().Return([]entity.ConfigKeyInfo{})

		uc := usecase.NewGetConfigSchemaUseCase(provider)
		result, err := uc.Execute(context.Background(), usecase.GetConfigSchemaInput{Section: "Layout"})

		require.NoError(t, err)
		assert.Empty(t, result.Keys)
	})
}

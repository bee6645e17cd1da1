package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/masterchef/backend/internal/model"
)

func TestSetupSQLiteDB(t *testing.T) {
	db := SetupSQLiteDB(t)
	assert.True(t, db.Migrator().HasTable(&model.Recipe{}))

	recipe := model.Recipe{
		ID:           model.NewRecipeID(),
		CollectionID: "c1",
		Name:         "Toast",
		Ingredients:  model.StringArray{"bread"},
		Instructions: model.StringArray{"Toast it."},
	}
	require.NoError(t, db.Create(&recipe).Error)

	var count int64
	require.NoError(t, db.Model(&model.Recipe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetupSQLiteDBIsolated(t *testing.T) {
	db := SetupSQLiteDB(t)
	var count int64
	require.NoError(t, db.Model(&model.Recipe{}).Count(&count).Error)
	assert.Zero(t, count, "every call gets a fresh database")
}

package ingredient

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (IngredientService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Ingredient{}))

	return NewIngredientService(NewIngredientRepository(db)), db
}

func seed(t *testing.T, db *gorm.DB, name, unit string) entities.Ingredient {
	ing := entities.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ing).Error)
	return ing
}

func TestGetIngredientsPrefixSearch(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seed(t, db, "sugar", "g")
	seed(t, db, "sunflower oil", "ml")
	seed(t, db, "flour", "g")

	all, err := svc.GetIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matched, err := svc.GetIngredients(ctx, "su")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "sugar", matched[0].Name)
	assert.Equal(t, "sunflower oil", matched[1].Name)

	none, err := svc.GetIngredients(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetIngredientDetail(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	ing := seed(t, db, "sugar", "g")

	res, err := svc.GetIngredientDetail(ctx, ing.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "sugar", res.Name)
	assert.Equal(t, "g", res.MeasurementUnit)

	_, err = svc.GetIngredientDetail(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestSameNameDifferentUnit(t *testing.T) {
	_, db := newTestService(t)

	seed(t, db, "sugar", "g")
	// same name with another unit is a distinct ingredient
	require.NoError(t, db.Create(&entities.Ingredient{
		ID: uuid.New(), Name: "sugar", MeasurementUnit: "tbsp",
	}).Error)

	// the exact pair is unique
	err := db.Create(&entities.Ingredient{
		ID: uuid.New(), Name: "sugar", MeasurementUnit: "g",
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

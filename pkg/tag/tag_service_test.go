package tag

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

func newTestService(t *testing.T) (TagService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Tag{}))

	return NewTagService(NewTagRepository(db)), db
}

func seed(t *testing.T, db *gorm.DB, name, color, slug string) entities.Tag {
	tg := entities.Tag{ID: uuid.New(), Name: name, Color: color, Slug: slug}
	require.NoError(t, db.Create(&tg).Error)
	return tg
}

func TestGetTagsOrdered(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seed(t, db, "dinner", "#00FF00", "dinner")
	seed(t, db, "breakfast", "#FF0000", "breakfast")

	tags, err := svc.GetTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Name)
	assert.Equal(t, "dinner", tags[1].Name)
}

func TestGetTagDetail(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	tg := seed(t, db, "breakfast", "#FF0000", "breakfast")

	res, err := svc.GetTagDetail(ctx, tg.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "breakfast", res.Slug)
	assert.Equal(t, "#FF0000", res.Color)

	_, err = svc.GetTagDetail(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}

func TestTagUniqueness(t *testing.T) {
	_, db := newTestService(t)

	seed(t, db, "breakfast", "#FF0000", "breakfast")

	err := db.Create(&entities.Tag{
		ID: uuid.New(), Name: "breakfast", Color: "#0000FF", Slug: "other",
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

package user

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/pkg/jwt"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Follow{},
		&entities.Tag{},
		&entities.Ingredient{},
		&entities.Recipe{},
	)
	require.NoError(t, err)

	return db
}

func newTestService(t *testing.T) (UserService, *gorm.DB) {
	db := setupTestDB(t)
	return NewUserService(NewUserRepository(db), jwt.NewJWTService()), db
}

func register(t *testing.T, svc UserService, username string) domain.UserResponse {
	res, err := svc.Register(context.Background(), domain.RegisterUserRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First",
		LastName:  "Last",
		Password:  "password123",
	})
	require.NoError(t, err)
	return res
}

func seedRecipe(t *testing.T, db *gorm.DB, authorID string, name string) entities.Recipe {
	authorUUID, err := uuid.Parse(authorID)
	require.NoError(t, err)

	r := entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        name,
		Text:        "text",
		CookingTime: 10,
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered := register(t, svc, "chef")
	assert.Equal(t, "chef", registered.Username)
	assert.False(t, registered.IsSubscribed)

	res, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "chef@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, registered.ID, res.User.ID)

	_, err = svc.Login(ctx, domain.LoginRequest{
		Email:    "chef@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)

	_, err = svc.Login(ctx, domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestRegisterConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	register(t, svc, "chef")

	_, err := svc.Register(ctx, domain.RegisterUserRequest{
		Email:     "chef@example.com",
		Username:  "another",
		FirstName: "First",
		LastName:  "Last",
		Password:  "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = svc.Register(ctx, domain.RegisterUserRequest{
		Email:     "other@example.com",
		Username:  "chef",
		FirstName: "First",
		LastName:  "Last",
		Password:  "password123",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)

	for _, reserved := range []string{"me", "Me", "ME"} {
		_, err = svc.Register(ctx, domain.RegisterUserRequest{
			Email:     "me@example.com",
			Username:  reserved,
			FirstName: "First",
			LastName:  "Last",
			Password:  "password123",
		})
		assert.ErrorIs(t, err, domain.ErrUsernameReserved)
	}
}

func TestSubscribeLifecycle(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	follower := register(t, svc, "follower")
	author := register(t, svc, "author")
	seedRecipe(t, db, author.ID, "Pancakes")

	_, err := svc.Subscribe(ctx, follower.ID, follower.ID, 0)
	assert.ErrorIs(t, err, domain.ErrSelfSubscription)

	_, err = svc.Subscribe(ctx, uuid.NewString(), follower.ID, 0)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	sub, err := svc.Subscribe(ctx, author.ID, follower.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, author.ID, sub.ID)
	assert.True(t, sub.IsSubscribed)
	assert.EqualValues(t, 1, sub.RecipesCount)
	require.Len(t, sub.Recipes, 1)
	assert.Equal(t, "Pancakes", sub.Recipes[0].Name)

	_, err = svc.Subscribe(ctx, author.ID, follower.ID, 0)
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)

	var rows int64
	require.NoError(t, db.Model(&entities.Follow{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	detail, err := svc.GetUserDetail(ctx, author.ID, follower.ID)
	require.NoError(t, err)
	assert.True(t, detail.IsSubscribed)

	// anonymous callers never see a positive flag
	detail, err = svc.GetUserDetail(ctx, author.ID, "")
	require.NoError(t, err)
	assert.False(t, detail.IsSubscribed)

	require.NoError(t, svc.Unsubscribe(ctx, author.ID, follower.ID))
	err = svc.Unsubscribe(ctx, author.ID, follower.ID)
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
}

func TestGetSubscriptionsRecipesLimit(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	follower := register(t, svc, "follower")
	author := register(t, svc, "author")
	for i := 0; i < 3; i++ {
		seedRecipe(t, db, author.ID, fmt.Sprintf("Recipe %d", i))
	}

	_, err := svc.Subscribe(ctx, author.ID, follower.ID, 0)
	require.NoError(t, err)

	subs, count, err := svc.GetSubscriptions(ctx, follower.ID, 1, 10, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, subs, 1)
	assert.Len(t, subs[0].Recipes, 2)
	assert.EqualValues(t, 3, subs[0].RecipesCount)

	// zero means no cap
	subs, _, err = svc.GetSubscriptions(ctx, follower.ID, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Len(t, subs[0].Recipes, 3)
}

func TestGetUsersPagination(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		register(t, svc, fmt.Sprintf("user%d", i))
	}

	users, count, err := svc.GetUsers(ctx, 1, domain.DefaultPageSize, "")
	require.NoError(t, err)
	assert.EqualValues(t, 8, count)
	assert.Len(t, users, domain.DefaultPageSize)

	users, _, err = svc.GetUsers(ctx, 2, domain.DefaultPageSize, "")
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

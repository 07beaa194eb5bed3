package utils

import (
	"Recipe-Share-Backend/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRegisterRequest() domain.RegisterUserRequest {
	return domain.RegisterUserRequest{
		Email:     "chef@example.com",
		Username:  "chef.2024",
		FirstName: "First",
		LastName:  "Last",
		Password:  "password123",
	}
}

func TestValidateUsername(t *testing.T) {
	InitValidator()

	t.Run("valid usernames pass", func(t *testing.T) {
		for _, name := range []string{"chef", "chef.2024", "chef_one", "chef+tag", "chef@host", "chef-2"} {
			req := validRegisterRequest()
			req.Username = name
			assert.NoError(t, Validate.Struct(req), name)
		}
	})

	t.Run("invalid characters rejected", func(t *testing.T) {
		for _, name := range []string{"chef space", "chef!", "chef#", ""} {
			req := validRegisterRequest()
			req.Username = name
			assert.Error(t, Validate.Struct(req), name)
		}
	})

	t.Run("reserved names rejected in any case", func(t *testing.T) {
		for _, name := range []string{"me", "Me", "ME"} {
			req := validRegisterRequest()
			req.Username = name
			assert.Error(t, Validate.Struct(req), name)
		}
	})
}

func TestValidateRecipeRequest(t *testing.T) {
	InitValidator()

	base := domain.CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		Image:       "data:image/png;base64,aW1n",
		CookingTime: 15,
		Tags:        []string{"1c9f8b9a-3f10-4b52-9a93-54b8cbe7a001"},
		Ingredients: []domain.RecipeIngredientRequest{
			{ID: "1c9f8b9a-3f10-4b52-9a93-54b8cbe7a002", Amount: 100},
		},
	}

	assert.NoError(t, Validate.Struct(base))

	t.Run("tags must repeat nothing", func(t *testing.T) {
		req := base
		req.Tags = []string{base.Tags[0], base.Tags[0]}
		assert.Error(t, Validate.Struct(req))
	})

	t.Run("amount bounded", func(t *testing.T) {
		req := base
		req.Ingredients = []domain.RecipeIngredientRequest{{ID: base.Ingredients[0].ID, Amount: 32001}}
		assert.Error(t, Validate.Struct(req))
	})

	t.Run("cooking time bounded", func(t *testing.T) {
		req := base
		req.CookingTime = 32001
		assert.Error(t, Validate.Struct(req))
	})

	t.Run("empty associations rejected", func(t *testing.T) {
		req := base
		req.Tags = nil
		assert.Error(t, Validate.Struct(req))

		req = base
		req.Ingredients = nil
		assert.Error(t, Validate.Struct(req))
	})
}

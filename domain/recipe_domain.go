package domain

import "errors"

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessAddFavorite     = "recipe added to favorites"
	MessageSuccessRemoveFavorite  = "recipe removed from favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddFavorite     = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite  = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"
	MessageFailedDownloadCart    = "failed to download shopping list"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrRecipeImageRequired      = errors.New("recipe image is required")
	ErrInvalidImagePayload      = errors.New("invalid image payload")
	ErrDuplicateTags            = errors.New("tags must not repeat")
	ErrDuplicateIngredients     = errors.New("ingredients must not repeat")
	ErrCookingTimeOutOfRange    = errors.New("cooking time out of range")
	ErrAmountOutOfRange         = errors.New("ingredient amount out of range")
	ErrAlreadyFavorited         = errors.New("recipe already in favorites")
	ErrFavoriteNotFound         = errors.New("recipe is not in favorites")
	ErrAlreadyInCart            = errors.New("recipe already in shopping cart")
	ErrCartItemNotFound         = errors.New("recipe is not in shopping cart")
	ErrShoppingCartEmpty        = errors.New("shopping cart is empty")
)

type (
	RecipeIngredientRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required,min=1,max=32000"`
	}

	CreateRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		Image       string                    `json:"image" validate:"required"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1,max=32000"`
		Tags        []string                  `json:"tags" validate:"required,min=1,unique,dive,uuid"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
	}

	// UpdateRecipeRequest matches the create shape except that the image
	// is optional; an empty image keeps the stored one.
	UpdateRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		Image       string                    `json:"image"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1,max=32000"`
		Tags        []string                  `json:"tags" validate:"required,min=1,unique,dive,uuid"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
	}

	IngredientInRecipeResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID               string                       `json:"id"`
		Name             string                       `json:"name"`
		Text             string                       `json:"text"`
		Image            string                       `json:"image"`
		Author           UserResponse                 `json:"author"`
		Ingredients      []IngredientInRecipeResponse `json:"ingredients"`
		Tags             []TagResponse                `json:"tags"`
		CookingTime      int                          `json:"cooking_time"`
		IsFavorited      bool                         `json:"is_favorited"`
		IsInShoppingCart bool                         `json:"is_in_shopping_cart"`
	}

	// RecipeSummary is the minimal projection returned by favorite and
	// shopping cart adds and embedded in subscription listings.
	RecipeSummary struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		CookingTime int    `json:"cooking_time"`
		Image       string `json:"image"`
	}

	// RecipeFilter carries the list query parameters. The favorited and
	// in-cart filters only apply for an authenticated requester.
	RecipeFilter struct {
		Author           string
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
	}

	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	ShoppingListDocument struct {
		Filename string
		Content  string
	}
)

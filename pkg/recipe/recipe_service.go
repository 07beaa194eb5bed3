package recipe

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/ingredient"
	"Recipe-Share-Backend/pkg/tag"
	"Recipe-Share-Backend/pkg/user"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID, role string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID, role string) error
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int, userID string) ([]domain.RecipeResponse, int64, error)
		AddFavorite(ctx context.Context, recipeID, userID string) (domain.RecipeSummary, error)
		RemoveFavorite(ctx context.Context, recipeID, userID string) error
		AddToCart(ctx context.Context, recipeID, userID string) (domain.RecipeSummary, error)
		RemoveFromCart(ctx context.Context, recipeID, userID string) error
		DownloadShoppingList(ctx context.Context, userID string) (domain.ShoppingListDocument, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		tagRepository        tag.TagRepository
		ingredientRepository ingredient.IngredientRepository
		userRepository       user.UserRepository
		s3                   storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagRepository tag.TagRepository,
	ingredientRepository ingredient.IngredientRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
		userRepository:       userRepository,
		s3:                   s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	if req.Image == "" {
		return domain.RecipeResponse{}, domain.ErrRecipeImageRequired
	}

	authorUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	tags, items, err := s.resolveAssociations(ctx, req.Tags, req.Ingredients, req.CookingTime)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	imageURL, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        req.Name,
		Text:        req.Text,
		ImageURL:    imageURL,
		CookingTime: req.CookingTime,
	}

	for i := range items {
		items[i].RecipeID = recipe.ID
	}

	if err := s.recipeRepository.SaveRecipe(ctx, recipe, tags, items); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID, role string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if recipe.AuthorID.String() != userID && role != domain.RoleAdmin {
		return domain.RecipeResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	tags, items, err := s.resolveAssociations(ctx, req.Tags, req.Ingredients, req.CookingTime)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	// an omitted image keeps the stored one
	if req.Image != "" {
		imageURL, err := s.uploadImage(ctx, req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = imageURL
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime

	for i := range items {
		items[i].RecipeID = recipe.ID
	}

	if err := s.recipeRepository.SaveRecipe(ctx, recipe, tags, items); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID, role string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.AuthorID.String() != userID && role != domain.RoleAdmin {
		return domain.ErrUnauthorizedRecipeAccess
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	return s.toRecipeResponse(ctx, recipe, userID)
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int, userID string) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		res, err := s.toRecipeResponse(ctx, &recipes[i], userID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, res)
	}
	return result, count, nil
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID, userID string) (domain.RecipeSummary, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeSummary{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeSummary{}, err
	}

	favorited, err := s.recipeRepository.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}
	if favorited {
		return domain.RecipeSummary{}, domain.ErrAlreadyFavorited
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeSummary{}, domain.ErrParseUUID
	}

	favorite := &entities.Favorite{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipe.ID,
	}
	if err := s.recipeRepository.AddFavorite(ctx, favorite); err != nil {
		// racing duplicate add lands on the unique constraint
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeSummary{}, domain.ErrAlreadyFavorited
		}
		return domain.RecipeSummary{}, err
	}

	return toRecipeSummary(recipe), nil
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID, userID string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	deleted, err := s.recipeRepository.RemoveFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (s *recipeService) AddToCart(ctx context.Context, recipeID, userID string) (domain.RecipeSummary, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeSummary{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeSummary{}, err
	}

	inCart, err := s.recipeRepository.IsInCart(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}
	if inCart {
		return domain.RecipeSummary{}, domain.ErrAlreadyInCart
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeSummary{}, domain.ErrParseUUID
	}

	item := &entities.ShoppingCart{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipe.ID,
	}
	if err := s.recipeRepository.AddToCart(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeSummary{}, domain.ErrAlreadyInCart
		}
		return domain.RecipeSummary{}, err
	}

	return toRecipeSummary(recipe), nil
}

func (s *recipeService) RemoveFromCart(ctx context.Context, recipeID, userID string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	deleted, err := s.recipeRepository.RemoveFromCart(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (s *recipeService) DownloadShoppingList(ctx context.Context, userID string) (domain.ShoppingListDocument, error) {
	cartItems, err := s.recipeRepository.CountCartItems(ctx, userID)
	if err != nil {
		return domain.ShoppingListDocument{}, err
	}
	if cartItems == 0 {
		return domain.ShoppingListDocument{}, domain.ErrShoppingCartEmpty
	}

	items, err := s.recipeRepository.ShoppingList(ctx, userID)
	if err != nil {
		return domain.ShoppingListDocument{}, err
	}

	current, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.ShoppingListDocument{}, err
	}

	var b strings.Builder
	b.WriteString("Shopping list:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s): %d\n", item.Name, item.MeasurementUnit, item.Amount)
	}

	return domain.ShoppingListDocument{
		Filename: fmt.Sprintf("%s_shopping_list.txt", current.Username),
		Content:  b.String(),
	}, nil
}

// resolveAssociations checks every referenced tag and ingredient exists
// and re-validates the payload bounds before anything is written.
func (s *recipeService) resolveAssociations(ctx context.Context, tagIDs []string, ingredients []domain.RecipeIngredientRequest, cookingTime int) ([]entities.Tag, []entities.RecipeIngredient, error) {
	if cookingTime < domain.MinCookingTime || cookingTime > domain.MaxCookingTime {
		return nil, nil, domain.ErrCookingTimeOutOfRange
	}
	if len(tagIDs) == 0 {
		return nil, nil, domain.ErrTagNotFound
	}
	if len(ingredients) == 0 {
		return nil, nil, domain.ErrIngredientNotFound
	}

	seenTags := make(map[string]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		if _, ok := seenTags[id]; ok {
			return nil, nil, domain.ErrDuplicateTags
		}
		seenTags[id] = struct{}{}
	}

	tags, err := s.tagRepository.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, domain.ErrTagNotFound
	}

	ingredientIDs := make([]string, 0, len(ingredients))
	seenIngredients := make(map[string]struct{}, len(ingredients))
	for _, ing := range ingredients {
		if _, ok := seenIngredients[ing.ID]; ok {
			return nil, nil, domain.ErrDuplicateIngredients
		}
		seenIngredients[ing.ID] = struct{}{}
		if ing.Amount < domain.MinIngredientAmount || ing.Amount > domain.MaxIngredientAmount {
			return nil, nil, domain.ErrAmountOutOfRange
		}
		ingredientIDs = append(ingredientIDs, ing.ID)
	}

	existing, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(existing) != len(ingredients) {
		return nil, nil, domain.ErrIngredientNotFound
	}

	items := make([]entities.RecipeIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		ingredientUUID, err := uuid.Parse(ing.ID)
		if err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		items = append(items, entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ingredientUUID,
			Amount:       ing.Amount,
		})
	}

	return tags, items, nil
}

// uploadImage decodes a base64 data URI and stores it on S3, returning
// the object URL kept on the recipe row.
func (s *recipeService) uploadImage(ctx context.Context, payload string) (string, error) {
	meta, data, found := strings.Cut(payload, ",")
	if !found || !strings.HasPrefix(meta, "data:image/") {
		return "", domain.ErrInvalidImagePayload
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", domain.ErrInvalidImagePayload
	}

	ext := strings.TrimPrefix(strings.TrimSuffix(meta, ";base64"), "data:image/")
	if ext == "" {
		ext = "jpeg"
	}

	key := fmt.Sprintf("recipes/%s.%s", uuid.New().String(), ext)
	contentType := fmt.Sprintf("image/%s", ext)
	return s.s3.UploadObject(ctx, key, contentType, bytes.NewReader(raw))
}

func (s *recipeService) toRecipeResponse(ctx context.Context, recipe *entities.Recipe, userID string) (domain.RecipeResponse, error) {
	ingredients, err := s.recipeRepository.GetRecipeIngredients(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tags = append(tags, domain.TagResponse{
			ID:    t.ID.String(),
			Name:  t.Name,
			Color: t.Color,
			Slug:  t.Slug,
		})
	}

	author := domain.UserResponse{ID: recipe.AuthorID.String()}
	if recipe.Author != nil {
		author.Email = recipe.Author.Email
		author.Username = recipe.Author.Username
		author.FirstName = recipe.Author.FirstName
		author.LastName = recipe.Author.LastName
	}

	isFavorited := false
	isInCart := false
	if userID != "" {
		author.IsSubscribed, _ = s.userRepository.IsFollowing(ctx, userID, recipe.AuthorID.String())
		isFavorited, _ = s.recipeRepository.IsFavorited(ctx, userID, recipe.ID.String())
		isInCart, _ = s.recipeRepository.IsInCart(ctx, userID, recipe.ID.String())
	}

	return domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Name:             recipe.Name,
		Text:             recipe.Text,
		Image:            recipe.ImageURL,
		Author:           author,
		Ingredients:      ingredients,
		Tags:             tags,
		CookingTime:      recipe.CookingTime,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
	}, nil
}

func toRecipeSummary(recipe *entities.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		CookingTime: recipe.CookingTime,
		Image:       recipe.ImageURL,
	}
}

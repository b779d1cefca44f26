package models

// View types are the JSON shapes the API responds with. Every recipe response
// goes through NewRecipeView so the derived per-viewer fields and the expanded
// composition always come from one place.

// UserView is the public representation of a user.
type UserView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// NewUserView builds a UserView from a User.
func NewUserView(u *User) UserView {
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: u.IsSubscribed,
	}
}

// IngredientInRecipe is an ingredient expanded with the amount taken from the
// recipe's composition row.
type IngredientInRecipe struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is the full representation of a recipe.
type RecipeView struct {
	ID               uint                 `json:"id"`
	Tags             []Tag                `json:"tags"`
	Author           UserView             `json:"author"`
	Ingredients      []IngredientInRecipe `json:"ingredients"`
	IsFavorited      bool                 `json:"is_favorited"`
	IsInShoppingCart bool                 `json:"is_in_shopping_cart"`
	Name             string               `json:"name"`
	Image            string               `json:"image"`
	Text             string               `json:"text"`
	CookingTime      int                  `json:"cooking_time"`
}

// NewRecipeView builds a RecipeView from a loaded Recipe. The recipe must have
// Author, Tags and Ingredients (with their Ingredient rows) preloaded.
func NewRecipeView(r *Recipe) *RecipeView {
	ingredients := make([]IngredientInRecipe, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		ingredients = append(ingredients, IngredientInRecipe{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}
	tags := r.Tags
	if tags == nil {
		tags = []Tag{}
	}
	return &RecipeView{
		ID:               r.ID,
		Tags:             tags,
		Author:           NewUserView(&r.Author),
		Ingredients:      ingredients,
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

// NewRecipeViews builds views for a list of recipes.
func NewRecipeViews(recipes []*Recipe) []*RecipeView {
	views := make([]*RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, NewRecipeView(r))
	}
	return views
}

// RecipeShort is the abbreviated recipe representation returned by the
// favorite/cart endpoints and embedded in subscription previews.
type RecipeShort struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// NewRecipeShort builds a RecipeShort from a Recipe.
func NewRecipeShort(r *Recipe) *RecipeShort {
	return &RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// SubscriptionView is a followed author together with a preview of their recipes.
type SubscriptionView struct {
	UserView
	Recipes      []*RecipeShort `json:"recipes"`
	RecipesCount int64          `json:"recipes_count"`
}

// Page is the envelope for paginated list responses.
type Page struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

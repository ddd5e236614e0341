package model

// Field names used in request bodies.
const (
	FieldName         = "name"
	FieldInstructions = "instructions"
)

// Messages are the user-visible texts a collection surfaces on its failure
// paths.
type Messages struct {
	CreateRequired string
	UpdateRequired string
	DeleteRequired string
	NotFound       string
	FetchFailed    string
	CreateFailed   string
	UpdateFailed   string
	DeleteFailed   string
	// The *Error texts are shown when the request never got a response.
	FetchError  string
	CreateError string
	UpdateError string
	DeleteError string
	Unsupported string
}

// Collection describes one server-side collection and how the client talks to
// it.
type Collection struct {
	// Name is the route segment, e.g. "recipes".
	Name string
	// Singular is the human label, e.g. "recipe".
	Singular string
	// RequiredFields must be non-empty on create and are sent as the body.
	RequiredFields []string
	// MutableFields are sent on update. Empty means update is unsupported.
	MutableFields []string
	// ShowInstructions makes list renderers print the instructions column.
	ShowInstructions bool
	Messages         Messages
}

// Path returns the collection route, e.g. "/recipes".
func (c Collection) Path() string {
	return "/" + c.Name
}

// ItemPath returns the route of a single item, e.g. "/recipes/7".
func (c Collection) ItemPath(id ID) string {
	return c.Path() + "/" + id.String()
}

// Updatable reports whether the collection accepts updates.
func (c Collection) Updatable() bool {
	return len(c.MutableFields) > 0
}

// Recipes is the recipe collection: name plus instructions, instructions
// mutable.
var Recipes = Collection{
	Name:             "recipes",
	Singular:         "recipe",
	RequiredFields:   []string{FieldName, FieldInstructions},
	MutableFields:    []string{FieldInstructions},
	ShowInstructions: true,
	Messages: Messages{
		CreateRequired: "Please enter both name and instructions.",
		UpdateRequired: "Please enter both name and updated instructions.",
		DeleteRequired: "Please enter a recipe name.",
		NotFound:       "Recipe not found.",
		FetchFailed:    "Failed to fetch recipes.",
		CreateFailed:   "Failed to add recipe.",
		UpdateFailed:   "Failed to update recipe.",
		DeleteFailed:   "Failed to delete recipe.",
		FetchError:     "Failed to fetch recipes.",
		CreateError:    "Failed to add recipe.",
		UpdateError:    "Failed to update recipe.",
		DeleteError:    "Failed to delete recipe.",
		Unsupported:    "Recipes cannot be updated.",
	},
}

// Ingredients is the ingredient collection: name only, no updates.
var Ingredients = Collection{
	Name:           "ingredients",
	Singular:       "ingredient",
	RequiredFields: []string{FieldName},
	Messages: Messages{
		CreateRequired: "Please enter an ingredient name.",
		UpdateRequired: "Please enter an ingredient name.",
		DeleteRequired: "Please enter an ingredient name to delete.",
		NotFound:       "Ingredient not found.",
		FetchFailed:    "Failed to fetch ingredients.",
		CreateFailed:   "Failed to add ingredient.",
		UpdateFailed:   "Failed to update ingredient.",
		DeleteFailed:   "Failed to delete ingredient.",
		FetchError:     "An error occurred while fetching ingredients.",
		CreateError:    "An error occurred while adding the ingredient.",
		UpdateError:    "An error occurred while updating the ingredient.",
		DeleteError:    "An error occurred while deleting the ingredient.",
		Unsupported:    "Ingredients cannot be updated.",
	},
}

// Lookup returns the predefined collection with the given route name.
func Lookup(name string) (Collection, bool) {
	switch name {
	case Recipes.Name:
		return Recipes, true
	case Ingredients.Name:
		return Ingredients, true
	default:
		return Collection{}, false
	}
}

package domain

import (
	"fmt"
	"time"
)

// CategoryType is the kind affinity of a category: which transaction
// kinds it may be attached to.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeBoth    CategoryType = "both"
)

// Valid reports whether c is a known category type.
func (c CategoryType) Valid() bool {
	return c == CategoryTypeIncome || c == CategoryTypeExpense || c == CategoryTypeBoth
}

// CategoryOther is the fallback label used when classification fails or
// a model-returned category cannot be resolved against the taxonomy.
const CategoryOther = "Other"

// Category is a transaction label. Default categories are global and
// visible to every user; user-created categories (UserID set) are
// visible only to their owner. Icon and Color are presentation hints.
type Category struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	Icon      string       `json:"icon,omitempty"`
	Color     string       `json:"color,omitempty"`
	IsDefault bool         `json:"isDefault"`
	UserID    string       `json:"userId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the invariants enforced at creation.
func (c *Category) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("category: name is required")
	}
	if !c.Type.Valid() {
		return fmt.Errorf("category: invalid type %q", c.Type)
	}
	if !c.IsDefault && c.UserID == "" {
		return fmt.Errorf("category: non-default category needs an owner")
	}
	return nil
}

// DefaultCategories returns the seed taxonomy shared by all users.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Food & Dining", Type: CategoryTypeExpense, Icon: "utensils", Color: "#ef4444", IsDefault: true},
		{Name: "Shopping", Type: CategoryTypeExpense, Icon: "shopping-bag", Color: "#f59e0b", IsDefault: true},
		{Name: "Transportation", Type: CategoryTypeExpense, Icon: "car", Color: "#3b82f6", IsDefault: true},
		{Name: "Bills & Utilities", Type: CategoryTypeExpense, Icon: "file-text", Color: "#8b5cf6", IsDefault: true},
		{Name: "Entertainment", Type: CategoryTypeExpense, Icon: "film", Color: "#ec4899", IsDefault: true},
		{Name: "Healthcare", Type: CategoryTypeExpense, Icon: "heart", Color: "#10b981", IsDefault: true},
		{Name: "Travel", Type: CategoryTypeExpense, Icon: "plane", Color: "#06b6d4", IsDefault: true},
		{Name: "Education", Type: CategoryTypeExpense, Icon: "book", Color: "#6366f1", IsDefault: true},
		{Name: "Personal Care", Type: CategoryTypeExpense, Icon: "sparkles", Color: "#f97316", IsDefault: true},
		{Name: CategoryOther, Type: CategoryTypeBoth, Icon: "tag", Color: "#6b7280", IsDefault: true},
		{Name: "Salary", Type: CategoryTypeIncome, Icon: "banknote", Color: "#22c55e", IsDefault: true},
		{Name: "Freelance", Type: CategoryTypeIncome, Icon: "briefcase", Color: "#14b8a6", IsDefault: true},
		{Name: "Investment", Type: CategoryTypeIncome, Icon: "trending-up", Color: "#8b5cf6", IsDefault: true},
	}
}

// CategoryNames splits a category list into the name lists offered to
// the parser prompt, each sorted by the caller's store ordering.
type CategoryNames struct {
	Expense []string
	Income  []string
}

// NamesByType buckets category names by their kind affinity; categories
// typed "both" appear in both lists.
func NamesByType(cats []Category) CategoryNames {
	var names CategoryNames
	for _, c := range cats {
		switch c.Type {
		case CategoryTypeExpense:
			names.Expense = append(names.Expense, c.Name)
		case CategoryTypeIncome:
			names.Income = append(names.Income, c.Name)
		case CategoryTypeBoth:
			names.Expense = append(names.Expense, c.Name)
			names.Income = append(names.Income, c.Name)
		}
	}
	return names
}

package domain

import (
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		ID:          "tx-1",
		UserID:      "user-1",
		Description: "Bún bò",
		Amount:      45000,
		Kind:        KindExpense,
		Category:    "Food & Dining",
		OccurredAt:  time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr bool
	}{
		{name: "valid", mutate: func(tx *Transaction) {}, wantErr: false},
		{name: "zero amount", mutate: func(tx *Transaction) { tx.Amount = 0 }, wantErr: true},
		{name: "negative amount", mutate: func(tx *Transaction) { tx.Amount = -500 }, wantErr: true},
		{name: "missing user", mutate: func(tx *Transaction) { tx.UserID = "" }, wantErr: true},
		{name: "missing description", mutate: func(tx *Transaction) { tx.Description = "" }, wantErr: true},
		{name: "invalid kind", mutate: func(tx *Transaction) { tx.Kind = "transfer" }, wantErr: true},
		{name: "empty kind", mutate: func(tx *Transaction) { tx.Kind = "" }, wantErr: true},
		{name: "income kind", mutate: func(tx *Transaction) { tx.Kind = KindIncome }, wantErr: false},
		{name: "confidence above one", mutate: func(tx *Transaction) { tx.AIConfidence = 1.5 }, wantErr: true},
		{name: "confidence in range", mutate: func(tx *Transaction) { tx.AICategorized = true; tx.AIConfidence = 0.9 }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKindValid(t *testing.T) {
	if !KindIncome.Valid() || !KindExpense.Valid() {
		t.Error("expected income and expense to be valid kinds")
	}
	if Kind("INCOME").Valid() {
		t.Error("kind comparison must be exact")
	}
	if Kind("").Valid() {
		t.Error("empty kind must be invalid")
	}
}

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name    string
		cat     Category
		wantErr bool
	}{
		{name: "default category", cat: Category{Name: "Food & Dining", Type: CategoryTypeExpense, IsDefault: true}},
		{name: "user category", cat: Category{Name: "Pets", Type: CategoryTypeExpense, UserID: "user-1"}},
		{name: "missing name", cat: Category{Type: CategoryTypeExpense, IsDefault: true}, wantErr: true},
		{name: "bad type", cat: Category{Name: "X", Type: "weird", IsDefault: true}, wantErr: true},
		{name: "user category without owner", cat: Category{Name: "Pets", Type: CategoryTypeExpense}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cat.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	if len(cats) != 13 {
		t.Fatalf("expected 13 default categories, got %d", len(cats))
	}

	seen := map[string]bool{}
	for _, c := range cats {
		if !c.IsDefault {
			t.Errorf("category %q not marked default", c.Name)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("default category %q invalid: %v", c.Name, err)
		}
		if seen[c.Name] {
			t.Errorf("duplicate default category %q", c.Name)
		}
		seen[c.Name] = true
	}
	if !seen[CategoryOther] {
		t.Error("default taxonomy must contain the Other fallback")
	}
}

func TestNamesByType(t *testing.T) {
	names := NamesByType(DefaultCategories())

	if len(names.Expense) != 10 { // 9 expense + Other (both)
		t.Errorf("expected 10 expense names, got %d: %v", len(names.Expense), names.Expense)
	}
	if len(names.Income) != 4 { // 3 income + Other (both)
		t.Errorf("expected 4 income names, got %d: %v", len(names.Income), names.Income)
	}

	contains := func(list []string, want string) bool {
		for _, s := range list {
			if s == want {
				return true
			}
		}
		return false
	}
	if !contains(names.Expense, CategoryOther) || !contains(names.Income, CategoryOther) {
		t.Error("Other must appear in both name lists")
	}
	if contains(names.Income, "Food & Dining") {
		t.Error("expense-only category leaked into income names")
	}
}

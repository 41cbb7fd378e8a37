package transaction

import "testing"

func TestTypeValid(t *testing.T) {
	tests := []struct {
		input Type
		want  bool
	}{
		{TypeIncome, true},
		{TypeExpense, true},
		{"transfer", false},
		{"Income", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.input.Valid(); got != tt.want {
			t.Errorf("Type(%q).Valid() = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("Category(%q).Valid() = false, want true", c)
		}
	}

	invalid := []Category{"", "food", "Gambling", "FOOD"}
	for _, c := range invalid {
		if c.Valid() {
			t.Errorf("Category(%q).Valid() = true, want false", c)
		}
	}
}

package platforms

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42.50", 42.50},
		{"$59.99", 59.99},
		{"1,299.99", 1299.99},
		{"USD 10.00", 10.00},
		{"4.5 out of 5 stars", 4.5},
		{"$42.50 to $60.00", 42.50},
		{"", 0},
		{"not-a-price", 0},
		{"free", 0},
	}

	for _, tt := range tests {
		if got := ParsePrice(tt.in); got != tt.want {
			t.Errorf("ParsePrice(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestFromMinorUnits(t *testing.T) {
	if got := FromMinorUnits(12999, 100); got != 129.99 {
		t.Errorf("expected 129.99, got %f", got)
	}
	// Unset divisor defaults to cents.
	if got := FromMinorUnits(500, 0); got != 5.00 {
		t.Errorf("expected 5.00, got %f", got)
	}
}

func TestInferBrand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Levi's Vintage Denim Jacket", "Levi's"},
		{"NIKE Air Max 90", "Nike"},
		{"mens adidas track pants", "Adidas"},
		{"Plain white tee", ""},
	}

	for _, tt := range tests {
		if got := InferBrand(tt.in); got != tt.want {
			t.Errorf("InferBrand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOrPlaceholder(t *testing.T) {
	if got := OrPlaceholder(""); got != PlaceholderImage {
		t.Errorf("empty URL should map to placeholder, got %q", got)
	}
	if got := OrPlaceholder("https://example.com/a.jpg"); got != "https://example.com/a.jpg" {
		t.Errorf("real URL must pass through, got %q", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(500, 100); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
	if got := Clamp(0, 100); got != 1 {
		t.Errorf("expected floor of 1, got %d", got)
	}
	if got := Clamp(25, 100); got != 25 {
		t.Errorf("expected passthrough, got %d", got)
	}
}

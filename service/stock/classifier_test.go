package stock

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name         string
		quantity     int64
		reorderPoint int64
		want         Status
	}{
		{"zero is out of stock", 0, 10, StatusOutOfStock},
		{"zero with zero threshold", 0, 0, StatusOutOfStock},
		{"at reorder point is low", 10, 10, StatusLowStock},
		{"below reorder point is low", 3, 10, StatusLowStock},
		{"one above reorder point", 11, 10, StatusInStock},
		{"well stocked", 500, 10, StatusInStock},
		{"positive with zero threshold", 1, 0, StatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.quantity, tc.reorderPoint); got != tc.want {
				t.Errorf("Classify(%d, %d) = %q, want %q", tc.quantity, tc.reorderPoint, got, tc.want)
			}
		})
	}
}

package assets

import "testing"

func TestDuckSheetDecodes(t *testing.T) {
	img, err := DecodeImage(DuckSheet)
	if err != nil {
		t.Fatalf("decode %s: %v", DuckSheet, err)
	}
	b := img.Bounds()
	if b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("expected 128x128 sheet, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestCleanAssetPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"duck.png", "duck.png"},
		{"assets/duck.png", "duck.png"},
		{"/home/me/quackpet/assets/duck.png", "duck.png"},
		{"/tmp/duck.png", "duck.png"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cleanAssetPath(tt.in); got != tt.want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

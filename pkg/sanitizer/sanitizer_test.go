package sanitizer

import (
	"testing"

	"wedmarket/pkg/model"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Golden Hour Photography  ",
			want:  "Golden Hour Photography",
		},
		{
			name:  "multiple spaces between words",
			input: "Golden    Hour",
			want:  "Golden Hour",
		},
		{
			name:  "tabs and newlines",
			input: "Golden\t\nHour",
			want:  "Golden Hour",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Fleurs™ ",
			want:  "Café & Fleurs™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeName(got); again != got {
				t.Errorf("NormalizeName is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "keeps paragraphs",
			input: "  Full day coverage.  \n\n\n\n  Includes   album. ",
			want:  "Full day coverage.\n\nIncludes album.",
		},
		{
			name:  "windows line endings",
			input: "Line one\r\nLine two",
			want:  "Line one\nLine two",
		},
		{
			name:  "leading blank lines",
			input: "\n\n  text",
			want:  "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDescription(tt.input); got != tt.want {
				t.Errorf("NormalizeDescription(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Photography", "photography"},
		{"Hair & Makeup", "hair_makeup"},
		{"  DJ / Live Music ", "dj_live_music"},
		{"___", ""},
		{"hair_makeup", "hair_makeup"},
	}
	for _, tt := range tests {
		if got := NormalizeCategory(tt.input); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"adds https", "cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"upgrades http", "http://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"lowercases host only", "HTTPS://CDN.Example.com/Photos/A.jpg", "https://cdn.example.com/Photos/A.jpg"},
		{"drops tracking params", "https://cdn.example.com/a.jpg?utm_source=ig&w=800", "https://cdn.example.com/a.jpg?w=800"},
		{"trailing slash", "https://example.com/gallery/", "https://example.com/gallery"},
		{"empty", "  ", ""},
		{"not a url", "hello world", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeURL(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if got != "" && NormalizeURL(got) != got {
				t.Errorf("NormalizeURL is not idempotent for %q", got)
			}
		})
	}
}

func TestNormalizeStringSlice(t *testing.T) {
	got := NormalizeImages([]string{
		"cdn.example.com/a.jpg",
		"https://cdn.example.com/a.jpg",
		"",
		"http://cdn.example.com/b.jpg",
	})
	want := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeImages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeImages()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if out := NormalizeStringSlice(nil, NormalizeName); out == nil || len(out) != 0 {
		t.Errorf("nil input should give an empty slice, got %#v", out)
	}
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1500, 1500},
		{99.999, 100},
		{12.346, 12.35},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := NormalizePrice(tt.in); got != tt.want {
			t.Errorf("NormalizePrice(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestServiceInput(t *testing.T) {
	price := 1200.456
	in := &model.ServiceInput{
		Name:     "  Sunset   Portraits ",
		Category: "Photography & Video",
		Price:    &price,
		Images:   []string{"cdn.example.com/x.jpg", "cdn.example.com/x.jpg"},
	}
	ServiceInput(in)

	if in.Name != "Sunset Portraits" {
		t.Errorf("Name = %q", in.Name)
	}
	if in.Category != "photography_video" {
		t.Errorf("Category = %q", in.Category)
	}
	if *in.Price != 1200.46 {
		t.Errorf("Price = %v", *in.Price)
	}
	if len(in.Images) != 1 {
		t.Errorf("Images = %v, want deduplicated", in.Images)
	}
}

func TestServiceUpdate_OnlyTouchesPresentFields(t *testing.T) {
	name := "  New   Name "
	up := &model.ServiceUpdate{Name: &name}
	ServiceUpdate(up)

	if *up.Name != "New Name" {
		t.Errorf("Name = %q", *up.Name)
	}
	if up.Category != nil || up.Images != nil || up.Price != nil {
		t.Errorf("absent fields must stay nil: %+v", up)
	}
}

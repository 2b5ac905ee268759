package sanitizer

import (
	"math"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"wedmarket/pkg/model"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reKeepLettersDigits = regexp.MustCompile(`[^0-9\p{L}]+`)
	reTrimUnderscores   = regexp.MustCompile(`_+`)
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeDescription trims each line and collapses runs of blank lines, keeping the
// paragraph structure.
func NormalizeDescription(desc string) string {
	lines := strings.Split(strings.ReplaceAll(desc, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = TrimAndNormalize(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func NormalizeCategory(category string) string {
	p := Pipeline{
		strings.TrimSpace,
		strings.ToLower,
		func(s string) string { return reKeepLettersDigits.ReplaceAllString(s, "_") },
		collapseUnderscores,
	}
	return p.Apply(category)
}

func collapseUnderscores(s string) string {
	s = reTrimUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// NormalizeURL returns an https URL with a lowercase host and without tracking
// parameters, or "" when input is not a URL. The path keeps its case.
func NormalizeURL(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "https://"):
		s = s[len("https://"):]
	case strings.HasPrefix(lower, "http://"):
		s = s[len("http://"):]
	}
	s = "https://" + s

	u, err := url.Parse(s)
	if err != nil || u.Host == "" || strings.ContainsAny(u.Host, " \t") {
		return ""
	}
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")

	q := u.Query()
	for key := range q {
		if strings.HasPrefix(strings.ToLower(key), "utm_") {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()

	return u.String()
}

func NormalizeStringSlice(items []string, normalizer func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)

		if normalized == "" {
			continue
		}

		if seen[normalized] {
			continue
		}

		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

func NormalizeImages(images []string) []string {
	return NormalizeStringSlice(images, NormalizeURL)
}

// NormalizePrice rounds to cents and clamps negatives to zero.
func NormalizePrice(price float64) float64 {
	if price < 0 || math.IsNaN(price) {
		return 0
	}
	return math.Round(price*100) / 100
}

// ServiceInput normalizes every free-text field of a new service in place.
func ServiceInput(in *model.ServiceInput) {
	in.Name = NormalizeName(in.Name)
	in.Description = NormalizeDescription(in.Description)
	in.Category = NormalizeCategory(in.Category)
	if len(in.Images) > 0 {
		in.Images = NormalizeImages(in.Images)
	}
	if in.Price != nil {
		p := NormalizePrice(*in.Price)
		in.Price = &p
	}
	if in.PriceRange != nil {
		in.PriceRange.Min = NormalizePrice(in.PriceRange.Min)
		in.PriceRange.Max = NormalizePrice(in.PriceRange.Max)
	}
}

// ServiceUpdate normalizes the fields present in a partial update in place.
func ServiceUpdate(up *model.ServiceUpdate) {
	if up.Name != nil {
		v := NormalizeName(*up.Name)
		up.Name = &v
	}
	if up.Description != nil {
		v := NormalizeDescription(*up.Description)
		up.Description = &v
	}
	if up.Category != nil {
		v := NormalizeCategory(*up.Category)
		up.Category = &v
	}
	if up.Images != nil {
		v := NormalizeImages(*up.Images)
		up.Images = &v
	}
	if up.Price != nil {
		p := NormalizePrice(*up.Price)
		up.Price = &p
	}
	if up.PriceRange != nil {
		up.PriceRange.Min = NormalizePrice(up.PriceRange.Min)
		up.PriceRange.Max = NormalizePrice(up.PriceRange.Max)
	}
}

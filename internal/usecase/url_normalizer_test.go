package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/shoplens/backend/internal/domain"
)

func TestParseURLComponents(t *testing.T) {
	testCases := []struct {
		name         string
		url          string
		wantHref     string
		wantHostname string
		wantPathname string
		wantSearch   string
		wantDomain   string
	}{
		{
			name:         "lowercases host and path",
			url:          "https://www.Nike.com/t/Air-Max-90-Mens-Shoes-6n8tKB/CN8490-100",
			wantHref:     "https://www.nike.com/t/air-max-90-mens-shoes-6n8tkb/cn8490-100",
			wantHostname: "www.nike.com",
			wantPathname: "/t/air-max-90-mens-shoes-6n8tkb/cn8490-100",
			wantSearch:   "",
			wantDomain:   "nike.com",
		},
		{
			name:         "forces https scheme",
			url:          "http://walmart.com/ip/great-value-milk/10450114",
			wantHref:     "https://walmart.com/ip/great-value-milk/10450114",
			wantHostname: "walmart.com",
			wantPathname: "/ip/great-value-milk/10450114",
			wantSearch:   "",
			wantDomain:   "walmart.com",
		},
		{
			name:         "supplies missing scheme",
			url:          "etsy.com/listing/1234567",
			wantHref:     "https://etsy.com/listing/1234567",
			wantHostname: "etsy.com",
			wantPathname: "/listing/1234567",
			wantSearch:   "",
			wantDomain:   "etsy.com",
		},
		{
			name:         "strips tracking parameters",
			url:          "https://macys.com/shop/product?id=123456&utm_source=mail&utm_campaign=spring&fbclid=abc",
			wantHref:     "https://macys.com/shop/product?id=123456",
			wantHostname: "macys.com",
			wantPathname: "/shop/product",
			wantSearch:   "id=123456",
			wantDomain:   "macys.com",
		},
		{
			name:         "drops fragment and sorts query keys",
			url:          "https://gap.com/browse/product.do?vid=1&pid=802251#reviews",
			wantHref:     "https://gap.com/browse/product.do?pid=802251&vid=1",
			wantHostname: "gap.com",
			wantPathname: "/browse/product.do",
			wantSearch:   "pid=802251&vid=1",
			wantDomain:   "gap.com",
		},
		{
			name:         "bare domain has empty pathname",
			url:          "https://example.com",
			wantHref:     "https://example.com",
			wantHostname: "example.com",
			wantPathname: "",
			wantSearch:   "",
			wantDomain:   "example.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseURLComponents(tc.url)
			if err != nil {
				t.Fatalf("ParseURLComponents(%q) error = %v, want nil", tc.url, err)
			}

			if got.Href != tc.wantHref {
				t.Errorf("Href = %q, want %q", got.Href, tc.wantHref)
			}
			if got.Hostname != tc.wantHostname {
				t.Errorf("Hostname = %q, want %q", got.Hostname, tc.wantHostname)
			}
			if got.Pathname != tc.wantPathname {
				t.Errorf("Pathname = %q, want %q", got.Pathname, tc.wantPathname)
			}
			if got.Search != tc.wantSearch {
				t.Errorf("Search = %q, want %q", got.Search, tc.wantSearch)
			}
			if got.Domain != tc.wantDomain {
				t.Errorf("Domain = %q, want %q", got.Domain, tc.wantDomain)
			}
			if got.Original != tc.url {
				t.Errorf("Original = %q, want %q", got.Original, tc.url)
			}
			if len(got.Key) != 16 {
				t.Errorf("Key length = %d, want 16", len(got.Key))
			}
		})
	}
}

func TestParseURLComponents_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		url     string
		wantErr error
	}{
		{"empty string", "", domain.ErrEmptyURL},
		{"whitespace only", "   ", domain.ErrEmptyURL},
		{"ftp scheme", "ftp://example.com/file", domain.ErrUnsupportedScheme},
		{"javascript scheme", "javascript://alert(1)", domain.ErrUnsupportedScheme},
		{"missing host", "https:///just/a/path", domain.ErrURLParse},
		{"space in host", "https://ex ample.com/p/1", domain.ErrURLParse},
		{"single-label host", "https://intranet/p/1", domain.ErrInvalidHostname},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseURLComponents(tc.url)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ParseURLComponents(%q) error = %v, want %v", tc.url, err, tc.wantErr)
			}
		})
	}
}

func TestParseURLComponents_Deterministic(t *testing.T) {
	url := "https://www.amazon.com/gp/product/B07FZ8S74R?th=1&utm_source=x"

	first, err := ParseURLComponents(url)
	if err != nil {
		t.Fatalf("first call error = %v", err)
	}
	second, err := ParseURLComponents(url)
	if err != nil {
		t.Fatalf("second call error = %v", err)
	}

	if *first != *second {
		t.Errorf("identical input produced different components:\n%+v\n%+v", first, second)
	}
}

func TestCreateURLKey(t *testing.T) {
	t.Run("deterministic and fixed length", func(t *testing.T) {
		a := CreateURLKey("nike.com/t/air-max-90")
		b := CreateURLKey("nike.com/t/air-max-90")
		if a != b {
			t.Errorf("same input gave different keys: %q vs %q", a, b)
		}
		if len(a) != 16 {
			t.Errorf("key length = %d, want 16", len(a))
		}
	})

	t.Run("url-safe characters only", func(t *testing.T) {
		// Sweep a set of inputs; none may contain +, /, or =
		inputs := []string{"", "a", "nike.com", strings.Repeat("x", 1000), "?&=+/"}
		for _, input := range inputs {
			key := CreateURLKey(input)
			if strings.ContainsAny(key, "+/=") {
				t.Errorf("CreateURLKey(%q) = %q contains unsafe characters", input, key)
			}
		}
	})

	t.Run("distinct inputs give distinct keys", func(t *testing.T) {
		a := CreateURLKey("nike.com/t/one")
		b := CreateURLKey("nike.com/t/two")
		if a == b {
			t.Errorf("different inputs collided: %q", a)
		}
	})
}

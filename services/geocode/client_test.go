package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestDescribeJoinsPlaceNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("latitude") != "-1.2921" {
			t.Errorf("unexpected latitude %q", r.URL.Query().Get("latitude"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"locality":"Westlands","city":"Nairobi","countryName":"Kenya"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 10, nil, zap.NewNop())
	got, err := c.Describe(context.Background(), -1.2921, 36.8219)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Westlands, Nairobi, Kenya" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestDescribeDropsRepeatedParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"locality":"Nairobi","city":"Nairobi","countryName":"Kenya"}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, 10, nil, zap.NewNop()).Describe(context.Background(), 1, 1)
	if err != nil || got != "Nairobi, Kenya" {
		t.Fatalf("expected %q, got %q, %v", "Nairobi, Kenya", got, err)
	}
}

func TestDescribeFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		},
		"empty place": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			if _, err := NewClient(srv.URL, 10, nil, zap.NewNop()).Describe(context.Background(), 1, 1); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

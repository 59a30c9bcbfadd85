package activity

import (
	"net/http/httptest"
	"testing"

	"github.com/ditservices/asset-tracker/internal/repo"
)

func TestRecordClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"direct connection", "", "192.0.2.10:54321", "192.0.2.10:54321"},
		{"single proxy hop", "203.0.113.9", "10.0.0.1:80", "203.0.113.9"},
		{"multiple proxy hops", "203.0.113.9, 70.1.1.1, 10.0.0.1", "10.0.0.1:80", "203.0.113.9"},
		{"padded hop", "  203.0.113.9 , 70.1.1.1", "10.0.0.1:80", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := repo.NewInMemoryActivityLogRepository()
			l := NewLogger(logs)

			r := httptest.NewRequest("POST", "/products", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			l.Record(r, 1, ActionCreate, "Product", 42, nil, nil)

			entries, err := logs.Filter(repo.ActivityLogFilter{})
			if err != nil {
				t.Fatalf("error reading entries: %v", err)
			}
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			if entries[0].IPAddress != tt.want {
				t.Errorf("expected ip %q, got %q", tt.want, entries[0].IPAddress)
			}
		})
	}
}

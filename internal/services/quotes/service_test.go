package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_FetchQuotes(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		status    int
		body      string
		wantErr   bool
		wantCount int
	}{
		{
			name:      "returns quotes up to limit",
			limit:     2,
			status:    http.StatusOK,
			body:      `[{"q":"Be here now.","a":"Ram Dass"},{"q":"Less is more.","a":"Mies van der Rohe"},{"q":"Simplify.","a":"Thoreau"}]`,
			wantCount: 2,
		},
		{
			name:      "skips empty quote entries",
			limit:     5,
			status:    http.StatusOK,
			body:      `[{"q":"","a":"Nobody"},{"q":"Act without expectation.","a":"Lao Tzu"}]`,
			wantCount: 1,
		},
		{
			name:    "error on empty response",
			limit:   3,
			status:  http.StatusOK,
			body:    `[]`,
			wantErr: true,
		},
		{
			name:    "error on API failure",
			limit:   3,
			status:  http.StatusTooManyRequests,
			body:    `{"error":"rate limited"}`,
			wantErr: true,
		},
		{
			name:    "error on invalid limit",
			limit:   0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/quotes", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			svc := NewServiceWithBaseURL(ts.URL)
			quotes, err := svc.FetchQuotes(context.Background(), tt.limit)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, quotes, tt.wantCount)
			for _, q := range quotes {
				assert.NotEmpty(t, q.Text)
			}
		})
	}
}

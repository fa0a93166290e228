package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/resellerdesk/creditledger/internal/domain"
)

func TestActorMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		headerID   string
		headerName string
		wantID     string
		wantName   string
	}{
		{
			name:       "actor from headers",
			headerID:   "op-1",
			headerName: "Alex",
			wantID:     "op-1",
			wantName:   "Alex",
		},
		{
			name:   "missing headers fall back to system",
			wantID: domain.SystemActor.ID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Actor
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ActorFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", nil)
			if tt.headerID != "" {
				req.Header.Set("X-Actor-Id", tt.headerID)
			}
			if tt.headerName != "" {
				req.Header.Set("X-Actor-Name", tt.headerName)
			}

			Actor(next).ServeHTTP(httptest.NewRecorder(), req)

			if got.ID != tt.wantID {
				t.Fatalf("expected actor ID %q, got %q", tt.wantID, got.ID)
			}

			if tt.wantName != "" && got.Name != tt.wantName {
				t.Fatalf("expected actor name %q, got %q", tt.wantName, got.Name)
			}
		})
	}
}

func TestActorFromContext_Missing(t *testing.T) {
	actor := ActorFromContext(context.Background())
	if actor.ID != domain.SystemActor.ID {
		t.Fatalf("expected system actor, got %+v", actor)
	}
}

package backend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mediareport/internal/logger"
	"mediareport/internal/models"
)

var errBackendDown = errors.New("backend down")

// MockClient implements the Client interface for testing.
type MockClient struct {
	LoginFunc        func(ctx context.Context, email, password string) error
	FetchReportFunc  func(ctx context.Context, id string) ([]byte, error)
	FetchModulesFunc func(ctx context.Context, id string) ([]byte, error)
}

func (m *MockClient) Login(ctx context.Context, email, password string) error {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}

	return nil
}

func (m *MockClient) FetchReport(ctx context.Context, id string) ([]byte, error) {
	if m.FetchReportFunc != nil {
		return m.FetchReportFunc(ctx, id)
	}

	return nil, nil
}

func (m *MockClient) FetchModules(ctx context.Context, id string) ([]byte, error) {
	if m.FetchModulesFunc != nil {
		return m.FetchModulesFunc(ctx, id)
	}

	return nil, nil
}

const embeddedReport = `{
	"id": "r-1",
	"mediaSummary": {"volume": 5},
	"modules": {"articles": {"executiveSummary": {}, "sentiment": {}}}
}`

func TestLoader_Load_SeparateModules(t *testing.T) {
	mock := &MockClient{
		FetchReportFunc: func(_ context.Context, id string) ([]byte, error) {
			return []byte(fmt.Sprintf(`{"id": %q}`, id)), nil
		},
		FetchModulesFunc: func(context.Context, string) ([]byte, error) {
			return []byte(`{"posts": {"topHashtags": {}}, "articles": {"themes": {}}}`), nil
		},
	}

	src, err := NewLoaderWithClient(mock, logger.Discard()).Load(context.Background(), "r-9")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := src.Report.String("id"); got != "r-9" {
		t.Errorf("id = %q, want r-9", got)
	}

	want := models.ModulesData{
		{MediaType: "posts", Modules: []string{"topHashtags"}},
		{MediaType: "articles", Modules: []string{"themes"}},
	}
	if diff := cmp.Diff(want, src.Modules); diff != "" {
		t.Errorf("Modules mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Load_FallsBackToEmbeddedModules(t *testing.T) {
	mock := &MockClient{
		FetchReportFunc: func(context.Context, string) ([]byte, error) {
			return []byte(embeddedReport), nil
		},
		FetchModulesFunc: func(context.Context, string) ([]byte, error) {
			return nil, fmt.Errorf("%w: /reports/r-1/modules", ErrNotFound)
		},
	}

	src, err := NewLoaderWithClient(mock, nil).Load(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := models.ModulesData{{MediaType: "articles", Modules: []string{"executiveSummary", "sentiment"}}}
	if diff := cmp.Diff(want, src.Modules); diff != "" {
		t.Errorf("Modules mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		mock    *MockClient
		wantErr error
	}{
		{
			name:    "missing id",
			id:      "",
			mock:    &MockClient{},
			wantErr: ErrReportIDRequired,
		},
		{
			name: "report fetch fails",
			id:   "r-1",
			mock: &MockClient{
				FetchReportFunc: func(context.Context, string) ([]byte, error) { return nil, errBackendDown },
			},
			wantErr: errBackendDown,
		},
		{
			name: "modules fetch fails",
			id:   "r-1",
			mock: &MockClient{
				FetchReportFunc:  func(context.Context, string) ([]byte, error) { return []byte(`{}`), nil },
				FetchModulesFunc: func(context.Context, string) ([]byte, error) { return nil, errBackendDown },
			},
			wantErr: errBackendDown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoaderWithClient(tt.mock, logger.Discard()).Load(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoader_Authenticate(t *testing.T) {
	var gotEmail string

	mock := &MockClient{
		LoginFunc: func(_ context.Context, email, _ string) error {
			gotEmail = email
			return nil
		},
	}

	if err := NewLoaderWithClient(mock, nil).Authenticate(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Authenticate() error: %v", err)
	}

	if gotEmail != "a@b.c" {
		t.Errorf("email = %q, want a@b.c", gotEmail)
	}
}

func TestLoader_LoadMany(t *testing.T) {
	mock := &MockClient{
		FetchReportFunc: func(_ context.Context, id string) ([]byte, error) {
			if id == "broken" {
				return nil, errBackendDown
			}

			return []byte(fmt.Sprintf(`{"id": %q}`, id)), nil
		},
		FetchModulesFunc: func(context.Context, string) ([]byte, error) {
			return []byte(`{"posts": {"sentiment": {}}}`), nil
		},
	}

	ids := []string{"a", "broken", "c", "d", "e", "f", "g"}

	results := NewLoaderWithClient(mock, logger.Discard()).LoadMany(context.Background(), ids)
	if len(results) != len(ids) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(ids))
	}

	for i, res := range results {
		if res.ID != ids[i] {
			t.Errorf("results[%d].ID = %q, want %q", i, res.ID, ids[i])
		}

		if res.ID == "broken" {
			if !errors.Is(res.Err, errBackendDown) {
				t.Errorf("broken error = %v, want %v", res.Err, errBackendDown)
			}

			continue
		}

		if res.Err != nil || res.Source.Report.String("id") != res.ID {
			t.Errorf("results[%d] = %+v", i, res)
		}
	}
}

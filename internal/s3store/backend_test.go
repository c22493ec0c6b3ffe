package s3store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// mockS3 is an in-memory path-style S3 transport handling GetObject and
// PutObject.
type mockS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMockS3() *mockS3 {
	return &mockS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *mockS3) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.TrimPrefix(req.URL.Path, "/")
	resp := &http.Response{Header: http.Header{}, Request: req}
	switch req.Method {
	case http.MethodGet:
		body, ok := m.objects[key]
		if !ok {
			resp.StatusCode = http.StatusNotFound
			resp.Header.Set("Content-Type", "application/xml")
			resp.Body = io.NopCloser(strings.NewReader(
				`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
			return resp, nil
		}
		resp.StatusCode = http.StatusOK
		resp.Header.Set("Content-Type", m.types[key])
		resp.ContentLength = int64(len(body))
		resp.Body = io.NopCloser(bytes.NewReader(body))
	case http.MethodPut:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		m.objects[key] = body
		m.types[key] = req.Header.Get("Content-Type")
		resp.StatusCode = http.StatusOK
		resp.Header.Set("ETag", `"etag"`)
		resp.Body = io.NopCloser(bytes.NewReader(nil))
	default:
		resp.StatusCode = http.StatusMethodNotAllowed
		resp.Body = io.NopCloser(bytes.NewReader(nil))
	}
	return resp, nil
}

func attachMock(t *testing.T, mock *mockS3) *Backend {
	t.Helper()
	b := NewBackend(func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: mock}
		o.Credentials = credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")
	})
	cfg := types.Config{Backend: types.BackendS3, S3: types.S3Config{
		Bucket:    "pantry-bucket",
		Endpoint:  "https://mock.s3.local",
		PathStyle: true,
	}}
	require.NoError(t, b.Attach(context.Background(), cfg))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestAttachRequiresBucket(t *testing.T) {
	err := NewBackend().Attach(context.Background(), types.Config{Backend: types.BackendS3})
	var ce *types.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"s3.bucket"}, ce.Missing)
}

func TestLoadMissingObjectIsEmpty(t *testing.T) {
	b := attachMock(t, newMockS3())
	got, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	mock := newMockS3()
	b := attachMock(t, mock)
	ctx := context.Background()

	table := types.PantryTable{
		{Item: "Milk", ExpirationDate: "2024-01-01"},
		{Item: "Peanut butter, crunchy", ExpirationDate: "2025-05-05"},
	}
	require.NoError(t, b.Save(ctx, table))

	raw := string(mock.objects["pantry-bucket/pantry.csv"])
	assert.Equal(t, "Item,Expiration_Date\nMilk,2024-01-01\n\"Peanut butter, crunchy\",2025-05-05\n", raw)
	assert.Equal(t, "text/csv", mock.types["pantry-bucket/pantry.csv"])

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestLoadToleratesRaggedRows(t *testing.T) {
	mock := newMockS3()
	mock.objects["pantry-bucket/pantry.csv"] = []byte("Item,Expiration_Date,Note\nMilk,2024-01-01\nEggs,2099-01-01,dozen\n")
	b := attachMock(t, mock)

	got, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk", "Eggs"}, got.Items())
}

func TestLoadMissingHeader(t *testing.T) {
	mock := newMockS3()
	mock.objects["pantry-bucket/pantry.csv"] = []byte("Name,When\nMilk,2024-01-01\n")
	b := attachMock(t, mock)

	_, err := b.Load(context.Background())
	assert.ErrorIs(t, err, types.ErrMissingColumn)
}

func TestLifecycle(t *testing.T) {
	b := attachMock(t, newMockS3())
	ctx := context.Background()
	assert.ErrorIs(t, b.Attach(ctx, types.Config{S3: types.S3Config{Bucket: "x"}}), types.ErrAlreadyAttached)
	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach())
	assert.ErrorIs(t, b.Save(ctx, nil), types.ErrStoreDetached)
}

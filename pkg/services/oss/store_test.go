package oss

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	faker := gofakes3.New(s3mem.New())
	ts := httptest.NewTLSServer(faker.Server())
	t.Cleanup(ts.Close)

	sto, err := New(Config{
		Endpoint:  strings.TrimPrefix(ts.URL, "https://"),
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "finai",
		Secure:    true,
	}, WithTransport(ts.Client().Transport))
	require.NoError(t, err)
	require.NoError(t, sto.EnsureBucket(context.Background()))
	return sto
}

func TestNewWithoutBucket(t *testing.T) {
	_, err := New(Config{Endpoint: "localhost:9000"})
	assert.ErrorIs(t, err, ErrEmptyBucket)
}

func TestPutGet(t *testing.T) {
	sto := newTestStore(t)
	ctx := context.Background()

	content := []byte("季度财报摘要\nrevenue: 42\n")
	src := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(src, content, 0o644))

	require.NoError(t, sto.Put(ctx, "reports/q1.txt", src))

	got, err := sto.Get(ctx, "reports/q1.txt")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	// bucket already there
	assert.NoError(t, sto.EnsureBucket(ctx))
}

func TestPutReader(t *testing.T) {
	sto := newTestStore(t)
	ctx := context.Background()

	data := bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 256)
	require.NoError(t, sto.PutReader(ctx, "img/a.png", bytes.NewReader(data), int64(len(data)), "image/png"))

	got, err := sto.Get(ctx, "img/a.png")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestGetMissing(t *testing.T) {
	sto := newTestStore(t)

	_, err := sto.Get(context.Background(), "no/such/key")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = sto.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyObjName)
}

func TestPutMissingFile(t *testing.T) {
	sto := newTestStore(t)
	err := sto.Put(context.Background(), "x", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

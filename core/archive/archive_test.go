package archive

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"gearsync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestArchiver(client *mocks.Client, retentionDays int) *Archiver {
	cfg := Config{Prefix: "sync", RetentionDays: retentionDays}
	return New(client, "test-bucket", cfg, "buoy", zap.NewNop())
}

func TestEnsureBucket(t *testing.T) {
	t.Run("AlreadyExists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)

		a := newTestArchiver(client, 30)
		assert.NoError(t, a.EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CreatesMissing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "test-bucket", mock.Anything).Return(nil)

		a := newTestArchiver(client, 30)
		assert.NoError(t, a.EnsureBucket(context.Background()))
		client.AssertCalled(t, "MakeBucket", mock.Anything, "test-bucket", mock.Anything)
	})
}

func TestSaveSnapshot(t *testing.T) {
	client := new(mocks.Client)

	var gotName string
	var gotSize int64
	client.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotName = args.String(2)
			gotSize = args.Get(4).(int64)
		}).
		Return(minio.UploadInfo{}, nil)

	a := newTestArchiver(client, 30)
	name, err := a.SaveSnapshot(context.Background(), KindDownload, map[string]string{"set_id": "set_001"})

	require.NoError(t, err)
	assert.Equal(t, gotName, name)
	assert.True(t, strings.HasPrefix(name, "sync/buoy/download/"))
	assert.True(t, strings.HasSuffix(name, ".json"))
	assert.Greater(t, gotSize, int64(0))
}

func TestLatest(t *testing.T) {
	t.Run("PicksNewest", func(t *testing.T) {
		client := new(mocks.Client)

		older := minio.ObjectInfo{Key: "sync/buoy/upload/a.json", LastModified: time.Now().Add(-2 * time.Hour)}
		newer := minio.ObjectInfo{Key: "sync/buoy/upload/b.json", LastModified: time.Now().Add(-1 * time.Hour)}

		ch := make(chan minio.ObjectInfo, 2)
		ch <- older
		ch <- newer
		close(ch)
		client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))
		client.On("GetObject", mock.Anything, "test-bucket", "sync/buoy/upload/b.json", mock.Anything).
			Return(io.NopCloser(strings.NewReader(`{"sets":[]}`)), nil)

		a := newTestArchiver(client, 30)
		rc, name, err := a.Latest(context.Background(), KindUpload)

		require.NoError(t, err)
		defer rc.Close()
		assert.Equal(t, "sync/buoy/upload/b.json", name)

		body, _ := io.ReadAll(rc)
		assert.JSONEq(t, `{"sets":[]}`, string(body))
	})

	t.Run("Empty", func(t *testing.T) {
		client := new(mocks.Client)
		ch := make(chan minio.ObjectInfo)
		close(ch)
		client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		a := newTestArchiver(client, 30)
		_, _, err := a.Latest(context.Background(), KindUpload)
		assert.ErrorIs(t, err, ErrNoSnapshots)
	})
}

func TestPruneExpired(t *testing.T) {
	t.Run("RemovesOldKeepsFresh", func(t *testing.T) {
		client := new(mocks.Client)

		old1 := minio.ObjectInfo{Key: "sync/buoy/download/old1.json", LastModified: time.Now().Add(-40 * 24 * time.Hour)}
		old2 := minio.ObjectInfo{Key: "sync/buoy/upload/old2.json", LastModified: time.Now().Add(-31 * 24 * time.Hour)}
		fresh := minio.ObjectInfo{Key: "sync/buoy/upload/fresh.json", LastModified: time.Now().Add(-1 * time.Hour)}

		ch := make(chan minio.ObjectInfo, 3)
		ch <- old1
		ch <- old2
		ch <- fresh
		close(ch)
		client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		var removed []string
		client.On("RemoveObjects", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				objectsCh := args.Get(2).(<-chan minio.ObjectInfo)
				for obj := range objectsCh {
					removed = append(removed, obj.Key)
				}
			}).
			Return((<-chan minio.RemoveObjectError)(closedErrCh()))

		a := newTestArchiver(client, 30)
		count, err := a.PruneExpired(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.ElementsMatch(t, []string{old1.Key, old2.Key}, removed)
	})

	t.Run("RetentionDisabled", func(t *testing.T) {
		client := new(mocks.Client)
		a := newTestArchiver(client, 0)

		count, err := a.PruneExpired(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})
}

func closedErrCh() chan minio.RemoveObjectError {
	ch := make(chan minio.RemoveObjectError)
	close(ch)
	return ch
}

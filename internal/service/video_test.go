package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"iDrone/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoService_AddAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := newUserService(f, &fakeExchanger{})
	uploader, err := users.Register(ctx, "o-1", "")
	require.NoError(t, err)
	require.NoError(t, users.ChangeNickname(ctx, uploader.ID, "飞手"))
	svc := NewVideoService(f.videos)

	video, err := svc.Add(ctx, "日落航拍", "sunset.mp4", "sunset.jpg", uploader.ID)
	require.NoError(t, err)
	assert.False(t, video.UploadAt.IsZero())

	got, err := svc.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, "日落航拍", got.Title)
	require.NotNil(t, got.User)
	assert.Equal(t, "飞手", got.User.Nickname)

	// 第二次从缓存读
	exists, err := f.rdb.Exists(ctx, "video:info:"+video.ID).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, exists)
	cached, err := svc.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, got.ID, cached.ID)
	assert.Equal(t, "飞手", cached.User.Nickname)

	_, err = svc.Get(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestVideoService_AddUnknownUploader(t *testing.T) {
	svc := NewVideoService(newFixture(t).videos)

	_, err := svc.Add(context.Background(), "t", "s.mp4", "c.jpg", "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	assert.Equal(t, 500, apperr.From(err).Code)
}

func TestVideoService_ListAndSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := newUserService(f, &fakeExchanger{})
	alice, err := users.Register(ctx, "alice", "")
	require.NoError(t, err)
	bob, err := users.Register(ctx, "bob", "")
	require.NoError(t, err)
	svc := NewVideoService(f.videos)

	for i := 0; i < 3; i++ {
		_, err := svc.Add(ctx, fmt.Sprintf("alice 山谷 %d", i), "v.mp4", "c.jpg", alice.ID)
		require.NoError(t, err)
	}
	_, err = svc.Add(ctx, "bob 海岸", "v.mp4", "c.jpg", bob.ID)
	require.NoError(t, err)

	all, err := svc.List(ctx, 1, 24)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "bob 海岸", all[0].Title)
	assert.False(t, all[0].UploadAt.Before(all[1].UploadAt))
	require.NotNil(t, all[0].User)
	assert.Equal(t, bob.ID, all[0].User.ID)

	mine, err := svc.ListByUser(ctx, alice.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	hits, err := svc.Search(ctx, "山谷", 1, 24)
	require.NoError(t, err)
	assert.Len(t, hits, 3)

	beyond, err := svc.Search(ctx, "山谷", 2, 24)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

// 缓存失效时大量并发读同一个视频，SingleFlight合并数据库查询，结果都一致
func TestVideoService_ConcurrentGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uploader, err := newUserService(f, &fakeExchanger{}).Register(ctx, "o-1", "")
	require.NoError(t, err)
	svc := NewVideoService(f.videos)
	video, err := svc.Add(ctx, "并发", "v.mp4", "c.jpg", uploader.ID)
	require.NoError(t, err)

	const concurrency = 50
	var wg sync.WaitGroup
	errs := make(chan error, concurrency)
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Get(ctx, video.ID)
			if err == nil && got.ID != video.ID {
				err = fmt.Errorf("got video %s", got.ID)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func BenchmarkVideoService_Get(b *testing.B) {
	f := newFixture(b)
	ctx := context.Background()
	uploader, err := newUserService(f, &fakeExchanger{}).Register(ctx, "o-1", "")
	require.NoError(b, err)
	svc := NewVideoService(f.videos)
	video, err := svc.Add(ctx, "benchmark", "v.mp4", "c.jpg", uploader.ID)
	require.NoError(b, err)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := svc.Get(ctx, video.ID); err != nil {
				b.Error(err)
			}
		}
	})
}

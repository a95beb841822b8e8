package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(uri string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", uri, nil)
	return c
}

func TestMethodLimiter_KeyStripsQuery(t *testing.T) {
	l := NewMethodLimiter()

	assert.Equal(t, "/api/note", l.Key(newTestContext("/api/note?id=3")))
	assert.Equal(t, "/api/notes", l.Key(newTestContext("/api/notes")))
}

func TestMethodLimiter_BucketPrefixMatch(t *testing.T) {
	l := NewMethodLimiter().AddBuckets(BucketRule{
		Key:          "/api/note",
		FillInterval: time.Second,
		Capacity:     5,
		Quantum:      5,
	})

	bucket, ok := l.GetBucket("/api/note/undo")
	require.True(t, ok)
	assert.Equal(t, int64(5), bucket.Available())

	_, ok = l.GetBucket("/api/health")
	assert.False(t, ok)
}

func TestMethodLimiter_TakeExhaustsCapacity(t *testing.T) {
	l := NewMethodLimiter().AddBuckets(BucketRule{
		Key:          "/api/note",
		FillInterval: time.Minute,
		Capacity:     2,
		Quantum:      2,
	})

	bucket, ok := l.GetBucket("/api/note")
	require.True(t, ok)

	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(0), bucket.TakeAvailable(1))
}

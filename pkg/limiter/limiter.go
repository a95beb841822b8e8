package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face is the limiter interface consumed by the rate-limit middleware
// Face 是限流中间件使用的限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// BucketRule token bucket rule for one key
// BucketRule 单个 key 的令牌桶规则
type BucketRule struct {
	// Key the bucket identifier, a URI prefix // 桶标识，URI 前缀
	Key string
	// FillInterval token fill interval // 放令牌的间隔
	FillInterval time.Duration
	// Capacity bucket capacity // 桶容量
	Capacity int64
	// Quantum tokens added per interval // 每次放的令牌数
	Quantum int64
}

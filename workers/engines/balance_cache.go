package engines

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zsmartex/coreledger/models"
	"github.com/zsmartex/coreledger/mq_client"
)

type Cache interface {
	SetKeyIf(key string, value interface{}, expiration time.Duration, keep func(current []byte) bool) error
}

const BalanceCacheTTL = 24 * time.Hour

func BalanceCacheKey(owner_id int64, kind models.AccountKind) string {
	return fmt.Sprintf("coreledger:balance:%d:%s", owner_id, kind)
}

// BalanceCacheWorker mirrors the latest balance of every account into the cache for readers
// that can tolerate a slightly stale value.
type BalanceCacheWorker struct {
	cache Cache
}

func NewBalanceCacheWorker(cache Cache) *BalanceCacheWorker {
	return &BalanceCacheWorker{cache: cache}
}

func (w *BalanceCacheWorker) Process(payload []byte) error {
	var message mq_client.BalanceChangedMessage
	if err := json.Unmarshal(payload, &message); err != nil {
		return err
	}

	// messages can arrive out of order across the queue group, an older version never replaces a newer one
	return w.cache.SetKeyIf(BalanceCacheKey(message.OwnerID, message.Kind), message, BalanceCacheTTL, func(current []byte) bool {
		var cached mq_client.BalanceChangedMessage
		if err := json.Unmarshal(current, &cached); err != nil {
			return false
		}

		return cached.Version >= message.Version
	})
}

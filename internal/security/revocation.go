package security

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// RevocationRegistryはログアウト済みアクセストークンの集合。
// エントリはトークンの残存期間だけ生き、自動で消える。
// リクエスト毎に引くのでO(1)ルックアップが前提。
type RevocationRegistry struct {
	cache *ristretto.Cache[string, time.Time]
}

func NewRevocationRegistry() (*RevocationRegistry, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, time.Time]{
		NumCounters: 100_000,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &RevocationRegistry{cache: cache}, nil
}

// ttlはトークンの自然満了までの残り時間を渡すこと。
// それより長いと無駄に保持し、短いと失効したはずのトークンが復活する。
func (r *RevocationRegistry) Revoke(token string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	r.cache.SetWithTTL(token, time.Now(), 1, ttl)
	// Setは非同期バッファ経由なので、直後のIsRevokedでも見えるよう反映を待つ
	r.cache.Wait()
}

func (r *RevocationRegistry) IsRevoked(token string) bool {
	_, found := r.cache.Get(token)
	return found
}

func (r *RevocationRegistry) Close() {
	r.cache.Close()
}

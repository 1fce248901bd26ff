package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// PasswordResetFlowは単回使用・時間制限付きの再設定トークンを管理する。
// 状態機械: Issued → Active → {Consumed | Expired | Superseded}（すべて終端）
type PasswordResetFlow struct {
	tx        repo.TransactionManager
	resetRepo repo.PasswordResetTokenRepository
	clock     Clock
	ttl       time.Duration
}

func NewPasswordResetFlow(
	tx repo.TransactionManager,
	resetRepo repo.PasswordResetTokenRepository,
	clock Clock,
	ttl time.Duration,
) *PasswordResetFlow {
	return &PasswordResetFlow{
		tx:        tx,
		resetRepo: resetRepo,
		clock:     clock,
		ttl:       ttl,
	}
}

// 新しいトークンを発行して返す。
// 同じユーザーの発行済みトークンは上書きされ、その時点で使えなくなる。
func (f *PasswordResetFlow) Request(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()

	t := &model.PasswordResetToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: f.clock.Now().Add(f.ttl),
	}

	if err := f.resetRepo.Upsert(ctx, t); err != nil {
		return "", err
	}

	return token, nil
}

// トークンを消費してactionを実行する。
// 削除とactionは1トランザクション：同じトークンで同時に呼ばれても
// 行を削除できた1件だけがactionまで進む。
// 削除はtoken値で行うため、消費中に再発行が割り込んでも
// 旧トークンが勝つことはない。
func (f *PasswordResetFlow) Consume(ctx context.Context, token string, action func(r repo.TxRepos, userID int64) error) error {
	t, err := f.resetRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrResetTokenNotFound) {
			return ErrResetTokenNotFound
		}
		return err
	}

	//期限切れの行は掃除してから失敗を返す
	if t.IsExpired(f.clock.Now()) {
		if err := f.resetRepo.DeleteByToken(ctx, t.Token); err != nil && !errors.Is(err, repo.ErrResetTokenNotFound) {
			return err
		}
		return ErrResetTokenExpired
	}

	return f.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//ルックアップ後に同じユーザーへ再発行されていた場合、
		//値が変わっているのでこのDELETEは0行になり消費は失敗する
		if err := r.ResetTokens().DeleteByToken(ctx, t.Token); err != nil {
			if errors.Is(err, repo.ErrResetTokenNotFound) {
				return ErrResetTokenNotFound
			}
			return err
		}
		return action(r, t.UserID)
	})
}

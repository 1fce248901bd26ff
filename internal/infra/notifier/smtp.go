// Package notifier delivers password reset links by mail.
package notifier

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"

	"app/internal/logging"
)

type SMTPNotifier struct {
	addr   string // host:port
	from   string
	feURL  string // 再設定リンクのベース（フロントエンド）
	logger *logging.Logger
}

func NewSMTPNotifier(host string, port int, from string, feURL string, logger *logging.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		addr:   fmt.Sprintf("%s:%d", host, port),
		from:   from,
		feURL:  feURL,
		logger: logger,
	}
}

// 再設定リンク付きのメールを送る。
// 送信失敗はerrorで返すだけ：トークンの状態はここでは触らない。
func (n *SMTPNotifier) SendPasswordReset(ctx context.Context, email string, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", n.feURL, token)

	msg := buildResetMessage(n.from, email, resetURL)

	if err := n.send(ctx, email, msg); err != nil {
		return fmt.Errorf("send password reset mail: %w", err)
	}

	n.logger.Info().Str("to", email).Msg("password reset mail sent")
	return nil
}

func buildResetMessage(from string, to string, resetURL string) []byte {
	//日本語の件名はRFC 2047のencoded-wordにしてヘッダに載せる
	subject := mime.QEncoding.Encode("utf-8", "パスワード再設定のご案内")
	body := fmt.Sprintf(
		"パスワードを再設定するには次のリンクを開いてください: %s\r\n\r\nこのリンクは1時間有効です。",
		resetURL,
	)

	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from, to, subject, body,
	))
}

// net/smtp.SendMailはcontextを受けないので、goroutineで包んで
// キャンセルだけ先に返せるようにする
func (n *SMTPNotifier) send(ctx context.Context, to string, msg []byte) error {
	done := make(chan error, 1)

	go func() {
		done <- smtp.SendMail(n.addr, nil, n.from, []string{to}, msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

package usecase

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	"app/internal/logging"
	repo "app/internal/repository"
	"app/internal/security"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, username string, email string, nickname string, password string) error
	ValidateLogin(ctx context.Context, username string, password string) error
	ValidateResetPassword(ctx context.Context, token string, newPassword string) error
}

// 再設定リンクの配送先（メール）。失敗してもトークン自体は有効のまま。
type Notifier interface {
	SendPasswordReset(ctx context.Context, email string, token string) error
}

type UserDTO struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Nickname string   `json:"nickname"`
	Roles    []string `json:"roles"`
}

type JwtAccessTokenDTO struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthRegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type AuthLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	User  UserDTO           `json:"user"`
	Token JwtAccessTokenDTO `json:"token"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// handlerがCookieに詰めるrefresh tokenを分けて返す
type LoginResult struct {
	Body         AuthLoginResponse
	RefreshToken string
}

type RefreshResult struct {
	Body         JwtAccessTokenDTO
	RefreshToken string
}

// AuthUsecaseはregister / login / refresh / logout / パスワード再設定を司る。
// ストレージへはrepository経由でしか触らない。
type AuthUsecase struct {
	users       repo.UserRepository
	roles       repo.RoleRepository
	rtRepo      repo.RefreshTokenRepository
	tokens      *security.TokenService
	revocations *security.RevocationRegistry
	hasher      PasswordHasher
	verifier    PasswordVerifier
	resetFlow   *PasswordResetFlow
	notifier    Notifier
	validator   AuthValidator
	clock       Clock
	logger      *logging.Logger
}

func NewAuthUsecase(
	users repo.UserRepository,
	roles repo.RoleRepository,
	rtRepo repo.RefreshTokenRepository,
	tokens *security.TokenService,
	revocations *security.RevocationRegistry,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	resetFlow *PasswordResetFlow,
	notifier Notifier,
	validator AuthValidator,
	clock Clock,
	logger *logging.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:       users,
		roles:       roles,
		rtRepo:      rtRepo,
		tokens:      tokens,
		revocations: revocations,
		hasher:      hasher,
		verifier:    verifier,
		resetFlow:   resetFlow,
		notifier:    notifier,
		validator:   validator,
		clock:       clock,
		logger:      logger,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*UserDTO, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, req.Username, req.Email, req.Nickname, req.Password); err != nil {
		return nil, err
	}

	taken, err := u.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrUnavailable
	}
	if taken {
		return nil, ErrDuplicateUsername
	}

	taken, err = u.users.ExistsByNickname(ctx, req.Nickname)
	if err != nil {
		return nil, ErrUnavailable
	}
	if taken {
		return nil, ErrDuplicateNickname
	}

	//初期ロールはROLE_USER
	userRole, err := u.roles.FindByName(ctx, model.RoleUser)
	if err != nil {
		return nil, ErrInternal
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, ErrInternal
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: pwHash,
		Email:        req.Email,
		Nickname:     req.Nickname,
		Roles:        []model.Role{*userRole},
	}

	if err := u.users.Create(ctx, user); err != nil {
		// unique制約違反は並行登録の負け側
		return nil, ErrDuplicateUsername
	}

	dto := toUserDTO(user)
	return &dto, nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*LoginResult, error) {
	if err := u.validator.ValidateLogin(ctx, req.Username, req.Password); err != nil {
		return nil, err
	}

	//「ユーザーがいない」と「パスワード違い」を呼び出し側から区別させない
	user, err := u.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, ErrUnavailable
	}

	if !u.verifier.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	now := u.clock.Now()

	accessToken, accessExp, err := u.tokens.IssueAccess(user.Username, user.RoleNames(), now)
	if err != nil {
		return nil, ErrInternal
	}

	refreshToken, _, err := u.tokens.IssueRefresh(user.Username, now)
	if err != nil {
		return nil, ErrInternal
	}

	//ユーザーごとに1行：再ログインは古いrefresh tokenを上書きで無効化
	if err := u.rtRepo.Upsert(ctx, user.ID, refreshToken); err != nil {
		return nil, ErrUnavailable
	}

	return &LoginResult{
		Body: AuthLoginResponse{
			User: toUserDTO(user),
			Token: JwtAccessTokenDTO{
				AccessToken: accessToken,
				ExpiresIn:   int(accessExp.Sub(now).Seconds()),
			},
		},
		RefreshToken: refreshToken,
	}, nil
}

// RTR: refreshのたびにaccess+refresh両方を再発行し、行を上書きする。
// 上書き後は古いrefresh tokenがFindByTokenにヒットしなくなる＝再利用不可。
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrInvalidRefreshToken
	}

	rt, err := u.rtRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repo.ErrRefreshTokenNotFound) {
			u.logger.Debug().Msg("refresh token not found (unknown or already rotated)")
			return nil, ErrInvalidRefreshToken
		}
		return nil, ErrUnavailable
	}

	claims, err := u.tokens.Verify(rt.Token)
	if err != nil {
		//期限切れ・改ざんの行は掃除してから失敗
		_ = u.rtRepo.DeleteByUserID(ctx, rt.UserID)
		u.logger.Debug().Err(err).Msg("stored refresh token rejected")
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.users.FindByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, ErrUnavailable
	}

	now := u.clock.Now()

	accessToken, accessExp, err := u.tokens.IssueAccess(user.Username, user.RoleNames(), now)
	if err != nil {
		return nil, ErrInternal
	}

	newRefresh, _, err := u.tokens.IssueRefresh(claims.Username, now)
	if err != nil {
		return nil, ErrInternal
	}

	if err := u.rtRepo.Upsert(ctx, user.ID, newRefresh); err != nil {
		return nil, ErrUnavailable
	}

	return &RefreshResult{
		Body: JwtAccessTokenDTO{
			AccessToken: accessToken,
			ExpiresIn:   int(accessExp.Sub(now).Seconds()),
		},
		RefreshToken: newRefresh,
	}, nil
}

// Logoutはaccess tokenを残存期間だけ失効リストに載せ、refresh行も消す。
// 2回呼んでもエラーにしない。
func (u *AuthUsecase) Logout(ctx context.Context, accessToken string, refreshToken string) error {
	if accessToken != "" {
		claims, err := u.tokens.Verify(accessToken)
		if err == nil {
			u.revocations.Revoke(accessToken, claims.ExpiresAt.Sub(u.clock.Now()))

			if user, err := u.users.FindByUsername(ctx, claims.Username); err == nil {
				_ = u.rtRepo.DeleteByUserID(ctx, user.ID)
			}
		}
	}

	if refreshToken != "" {
		if rt, err := u.rtRepo.FindByToken(ctx, refreshToken); err == nil {
			_ = u.rtRepo.DeleteByUserID(ctx, rt.UserID)
		}
	}

	return nil
}

// 再設定リンクの発行。usernameとemailの組みが一致した時だけ発行する。
func (u *AuthUsecase) ForgotPassword(ctx context.Context, username string, email string) error {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrUnavailable
	}

	if user.Email != email {
		return ErrAccountMismatch
	}

	token, err := u.resetFlow.Request(ctx, user.ID)
	if err != nil {
		return ErrUnavailable
	}

	//配送失敗してもトークンは残る：呼び出し側は再リクエストできる
	if err := u.notifier.SendPasswordReset(ctx, user.Email, token); err != nil {
		u.logger.Warn().Err(err).Str("username", username).Msg("password reset mail delivery failed")
		return ErrUnavailable
	}

	return nil
}

func (u *AuthUsecase) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if err := u.validator.ValidateResetPassword(ctx, token, newPassword); err != nil {
		return err
	}

	pwHash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return ErrInternal
	}

	return u.resetFlow.Consume(ctx, token, func(r repo.TxRepos, userID int64) error {
		return r.Users().UpdatePassword(ctx, userID, pwHash)
	})
}

// 再設定フローの前段確認。マスク済みメールを返す。
func (u *AuthUsecase) VerifyUsernameForReset(ctx context.Context, username string) (string, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", ErrUnavailable
	}

	return maskEmail(user.Email), nil
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Nickname: u.Nickname,
		Roles:    u.RoleNames(),
	}
}

// ローカル部の先頭3文字だけ見せる
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}

	local := email[:at]
	domain := email[at:]

	if len(local) <= 3 {
		return strings.Repeat("*", len(local)) + domain
	}
	return local[:3] + "***" + domain
}

package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"

	"sevensmile-backend/internal/repositories"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "SevenSmile"

// TOTPSetup is handed to the client once, during enrollment.
type TOTPSetup struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// TOTPService enrolls and verifies time-based one-time passwords for
// admin accounts.
type TOTPService struct {
	UserRepo *repositories.UserRepository
	Repo     *repositories.TOTPRepository
}

func NewTOTPService(userRepo *repositories.UserRepository, repo *repositories.TOTPRepository) *TOTPService {
	return &TOTPService{UserRepo: userRepo, Repo: repo}
}

// GenerateSetup creates a new secret for the user and returns it with
// a QR code data URL. The secret is stored disabled until verified.
func (s *TOTPService) GenerateSetup(ctx context.Context, userID int) (*TOTPSetup, error) {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveSecret(ctx, userID, key.Secret()); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &TOTPSetup{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// VerifyAndEnable checks the code against the stored secret and turns
// 2FA on for the user.
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	secret, _, err := s.Repo.GetSecret(ctx, userID)
	if err != nil {
		return err
	}
	if !totp.Validate(code, secret) {
		return fmt.Errorf("%w: invalid verification code", ErrInvalidArgument)
	}
	return s.Repo.Enable(ctx, userID)
}

// Verify checks a login-time code. Returns ErrInvalidArgument when the
// code is wrong; not-found when the user never enrolled.
func (s *TOTPService) Verify(ctx context.Context, userID int, code string) error {
	secret, enabled, err := s.Repo.GetSecret(ctx, userID)
	if err != nil {
		return err
	}
	if !enabled {
		return fmt.Errorf("%w: two-factor auth is not enabled", ErrInvalidArgument)
	}
	if !totp.Validate(code, secret) {
		return fmt.Errorf("%w: invalid verification code", ErrInvalidArgument)
	}
	return nil
}

// Enabled reports whether the user has completed enrollment.
func (s *TOTPService) Enabled(ctx context.Context, userID int) (bool, error) {
	_, enabled, err := s.Repo.GetSecret(ctx, userID)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return enabled, nil
}

func (s *TOTPService) Disable(ctx context.Context, userID int) error {
	return s.Repo.Disable(ctx, userID)
}

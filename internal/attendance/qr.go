package attendance

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	attendanceerrors "go-gym/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// QRPurpose tags every check-in token; any other purpose is rejected.
const QRPurpose = "gym_checkin"

// QRTokenTTL is the validity window of an issued token. Tokens
// self-expire by timestamp comparison; there is no revocation.
const QRTokenTTL = 60 * time.Second

// QRToken is the ephemeral check-in credential. It is never stored:
// validation works purely off the structure and timestamps the
// scanning client presents.
type QRToken struct {
	Purpose    string    `json:"purpose"`
	MemberID   string    `json:"memberId"`
	MemberName string    `json:"memberName"`
	IssuedAt   time.Time `json:"issuedAt"`
	Nonce      string    `json:"nonce"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// NewQRToken issues a token for a member, valid for QRTokenTTL.
func NewQRToken(memberID, memberName string, now time.Time) QRToken {
	return QRToken{
		Purpose:    QRPurpose,
		MemberID:   memberID,
		MemberName: memberName,
		IssuedAt:   now,
		Nonce:      uuid.New().String(),
		ExpiresAt:  now.Add(QRTokenTTL),
	}
}

// ParseQRToken decodes and validates a scanned payload. Scanning
// clients send either the token object or a JSON string wrapping it.
func ParseQRToken(raw []byte, now time.Time) (QRToken, error) {
	if len(raw) == 0 {
		return QRToken{}, attendanceerrors.ErrInvalidQRCode
	}

	// Unwrap a double-encoded payload first.
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(string(raw))
		if err != nil {
			return QRToken{}, attendanceerrors.ErrInvalidQRCode
		}
		raw = []byte(unquoted)
	}

	var token QRToken
	if err := json.Unmarshal(raw, &token); err != nil {
		return QRToken{}, attendanceerrors.ErrInvalidQRCode
	}

	if token.Purpose != QRPurpose {
		return QRToken{}, attendanceerrors.ErrInvalidQRCode
	}
	if token.MemberID == "" {
		return QRToken{}, attendanceerrors.ErrInvalidQRCode
	}
	if token.ExpiresAt.IsZero() || now.After(token.ExpiresAt) {
		return QRToken{}, attendanceerrors.ErrQRCodeExpired
	}

	return token, nil
}

// NonceGuard enforces single use of a token nonce across concurrent
// scanners.
//
//go:generate mockgen -source=qr.go -destination=mock/nonce_guard_mock.go -package=mock
type NonceGuard interface {
	Claim(ctx context.Context, nonce string, ttl time.Duration) (bool, error)
}

type redisNonceGuard struct {
	rdb *redis.Client
}

func NewRedisNonceGuard(rdb *redis.Client) NonceGuard {
	return &redisNonceGuard{rdb: rdb}
}

// Claim marks the nonce used. SetNX is atomic, so exactly one of two
// racing scans wins; the key outlives the token's validity window so a
// replay after expiry fails on expiry first anyway.
func (g *redisNonceGuard) Claim(ctx context.Context, nonce string, ttl time.Duration) (bool, error) {
	if nonce == "" {
		return false, nil
	}
	return g.rdb.SetNX(ctx, "attendance:qr:nonce:"+nonce, "used", ttl).Result()
}

package auth

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// JWTPrincipalResolver verifies HS256 bearer tokens carrying "id" and "role"
// claims and turns them into a Principal.
type JWTPrincipalResolver struct {
	Log    *zap.Logger
	secret string
	ttl    time.Duration
}

var _ contracts.PrincipalResolver = (*JWTPrincipalResolver)(nil)

func NewJWTPrincipalResolver(secret string, ttl time.Duration, logger *zap.Logger) *JWTPrincipalResolver {
	return &JWTPrincipalResolver{
		Log:    logger,
		secret: secret,
		ttl:    ttl,
	}
}

func (r *JWTPrincipalResolver) Resolve(ctx context.Context, credential string) (models.Principal, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Debug("JWTPrincipalResolver.Resolve called", zap.String(constvars.LoggingRequestIDKey, requestID))

	token := strings.TrimSpace(credential)
	if token == "" {
		return models.Principal{}, exceptions.ErrTokenMissing(errors.New(constvars.ErrDevAuthTokenMissing))
	}

	principal, err := utils.ParseJWT(token, r.secret)
	if err != nil {
		r.Log.Debug("JWTPrincipalResolver.Resolve rejected token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err.Error() == constvars.ErrDevAuthClaimsMissing {
			return models.Principal{}, exceptions.ErrTokenClaimsMissing(err)
		}
		return models.Principal{}, exceptions.ErrTokenInvalidOrExpired(err)
	}
	return principal, nil
}

// CreateToken signs a token for principal. It is used by local tooling and tests.
func (r *JWTPrincipalResolver) CreateToken(principal models.Principal) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":   principal.ID,
		"role": principal.Role,
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"exp":  now.Add(r.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(r.secret))
}

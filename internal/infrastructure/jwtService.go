package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DavLiendoProgramming/blog-api/internal/application/interfaces"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTokenTTL = 60 * time.Minute

// JWTService issues HS256 bearer tokens and revokes them through a denylist
// keyed by the token id (jti).
type JWTService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	denylist  repositories.TokenDenylist
	now       func() time.Time
}

type JWTOption func(*JWTService)

func WithIssuer(issuer string) JWTOption {
	return func(s *JWTService) { s.issuer = issuer }
}

func WithTTL(ttl time.Duration) JWTOption {
	return func(s *JWTService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now for issuing and checking expiry.
func WithClock(now func() time.Time) JWTOption {
	return func(s *JWTService) { s.now = now }
}

func NewJWTService(secretKey []byte, denylist repositories.TokenDenylist, opts ...JWTOption) *JWTService {
	s := &JWTService{
		secretKey: secretKey,
		ttl:       DefaultTokenTTL,
		denylist:  denylist,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (j *JWTService) Issue(user *entities.User) (*interfaces.IssuedToken, error) {
	now := j.now()
	expiresAt := now.Add(j.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   user.Id.String(),
		Issuer:    j.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &interfaces.IssuedToken{Token: signed, ExpiresAt: expiresAt.Truncate(time.Second)}, nil
}

func (j *JWTService) Verify(ctx context.Context, rawToken string) (entities.Identity, error) {
	claims, err := j.parse(rawToken, true)
	if err != nil {
		return entities.Identity{}, err
	}

	revoked, err := j.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return entities.Identity{}, fmt.Errorf("check denylist: %w", err)
	}
	if revoked {
		return entities.Identity{}, fmt.Errorf("%w: revoked", entities.ErrInvalidToken)
	}

	userID, _ := uuid.Parse(claims.Subject)
	return entities.Identity{UserID: userID}, nil
}

// Invalidate revokes a token for the rest of its lifetime. Expired tokens
// are already unusable, so invalidating one succeeds without a write.
func (j *JWTService) Invalidate(ctx context.Context, rawToken string) error {
	claims, err := j.parse(rawToken, false)
	if err != nil {
		return err
	}

	expiresAt := claims.ExpiresAt.Time
	if !j.now().Before(expiresAt) {
		return nil
	}
	if _, err := j.denylist.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Refresh trades a valid token for a new one. The old token id is claimed
// on the denylist before the successor is signed; whoever loses that race
// gets ErrInvalidToken, so a token yields at most one successor.
func (j *JWTService) Refresh(ctx context.Context, rawToken string) (*interfaces.IssuedToken, error) {
	claims, err := j.parse(rawToken, true)
	if err != nil {
		return nil, err
	}

	claimed, err := j.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		return nil, fmt.Errorf("revoke token: %w", err)
	}
	if !claimed {
		return nil, fmt.Errorf("%w: revoked", entities.ErrInvalidToken)
	}

	userID, _ := uuid.Parse(claims.Subject)
	return j.Issue(&entities.User{Id: userID})
}

// parse checks the signature and the claims this service relies on. When
// checkExpiry is false an expired but otherwise genuine token is accepted.
func (j *JWTService) parse(rawToken string, checkExpiry bool) (*jwt.RegisteredClaims, error) {
	if rawToken == "" {
		return nil, fmt.Errorf("%w: empty", entities.ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}
	if !checkExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, entities.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, entities.ErrInvalidToken
	}

	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp", entities.ErrInvalidToken)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing jti", entities.ErrInvalidToken)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: bad subject", entities.ErrInvalidToken)
	}
	if !checkExpiry && j.issuer != "" && claims.Issuer != j.issuer {
		return nil, fmt.Errorf("%w: bad issuer", entities.ErrInvalidToken)
	}
	return claims, nil
}

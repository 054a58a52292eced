package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies the HS256 tokens issued by the ponto API and keeps a local
// revocation list for tokens the upstream has stopped accepting.
type Service interface {
	// JWTAuth verifies company and employee tokens.
	JWTAuth() *jwtauth.JWTAuth
	// AdminJWTAuth verifies super-admin tokens, signed with a separate key.
	AdminJWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string, expiresAt time.Time)
	IsTokenRevoked(token string) bool
	// PurgeRevoked drops revocations for tokens that have expired anyway.
	PurgeRevoked(now time.Time) int
}

type JWTService struct {
	tokenAuth     *jwtauth.JWTAuth
	adminAuth     *jwtauth.JWTAuth
	revokedTokens map[string]int64
	mu            sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) AdminJWTAuth() *jwtauth.JWTAuth {
	return j.adminAuth
}

func NewJWTService(secretKey string, adminSecretKey string) Service {
	return &JWTService{
		tokenAuth:     jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		adminAuth:     jwtauth.New("HS256", []byte(adminSecretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens: make(map[string]int64),
	}
}

func (j *JWTService) RevokeToken(token string, expiresAt time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	exp := expiresAt.Unix()
	if expiresAt.IsZero() {
		// no exp claim: keep for a day
		exp = time.Now().Add(24 * time.Hour).Unix()
	}
	j.revokedTokens[token] = exp
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

func (j *JWTService) PurgeRevoked(now time.Time) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	purged := 0
	for token, exp := range j.revokedTokens {
		if exp <= now.Unix() {
			delete(j.revokedTokens, token)
			purged++
		}
	}
	return purged
}

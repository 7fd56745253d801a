package utils

import (
	"crypto/rand"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// TokenExpiration is the default expiration time of a token.
const TokenExpiration = time.Hour * 24 * 7

// TokenSecret signs the tokens. It is random until SetTokenSecret is called.
var TokenSecret []byte

// GraderClaims is the custom claims type for JWT.
type GraderClaims struct {
	Grader string `json:"grader"`
	jwt.RegisteredClaims
}

// SetTokenSecret replaces the random secret, an empty secret is ignored.
func SetTokenSecret(secret string) {
	if secret != "" {
		TokenSecret = []byte(secret)
	}
}

// GenerateToken generates a JWT token for the grader.
// The token expires after expiration, or TokenExpiration if it is not positive.
func GenerateToken(grader string, expiration time.Duration) (string, error) {
	if expiration <= 0 {
		expiration = TokenExpiration
	}
	now := time.Now()
	claims := GraderClaims{
		Grader: grader,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    "hwgrade",
			Subject:   grader,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(TokenSecret)
}

// ParseToken parses and validates a JWT token.
func ParseToken(token string) (*GraderClaims, error) {
	claims := &GraderClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return TokenSecret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func init() {
	rndUUID, err := uuid.NewRandomFromReader(rand.Reader)
	if err != nil {
		log.WithError(err).Fatal("Error creating UUID")
	}
	TokenSecret, err = rndUUID.MarshalBinary()
	if err != nil {
		log.WithError(err).Fatal("Error creating UUID")
	}
}

package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// UnsubscribeClaims identify one subscription inside a signed one-click
// unsubscribe link.
type UnsubscribeClaims struct {
	SubjectKind string `json:"subject_kind"`
	SubjectID   int64  `json:"subject_id"`
	AreaID      int64  `json:"area_id"`
	jwt.RegisteredClaims
}

// UnsubscribeTokenManager signs and validates the tokens embedded in digest
// email unsubscribe links.
type UnsubscribeTokenManager interface {
	Generate(subjectKind string, subjectID, areaID int64) (string, error)
	Validate(tokenString string) (*UnsubscribeClaims, error)
}

type unsubscribeTokenManager struct {
	secret   []byte
	validity time.Duration
}

func NewUnsubscribeTokenManager(secret string) UnsubscribeTokenManager {
	return &unsubscribeTokenManager{
		secret:   []byte(secret),
		validity: 30 * 24 * time.Hour,
	}
}

func (m *unsubscribeTokenManager) Generate(subjectKind string, subjectID, areaID int64) (string, error) {
	claims := UnsubscribeClaims{
		SubjectKind: subjectKind,
		SubjectID:   subjectID,
		AreaID:      areaID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "digest-service",
			Audience:  jwt.ClaimStrings{"unsubscribe"},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *unsubscribeTokenManager) Validate(tokenString string) (*UnsubscribeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UnsubscribeClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*UnsubscribeClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

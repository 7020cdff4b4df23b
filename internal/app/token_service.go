package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// RejoinTokenService issues and verifies signed tokens a disconnected player
// presents to reclaim a seat at a live table.
type RejoinTokenService struct {
	secret string
	issuer string
	ttl    time.Duration
}

func NewRejoinTokenService(secret, issuer string, ttl time.Duration) *RejoinTokenService {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &RejoinTokenService{secret: secret, issuer: issuer, ttl: ttl}
}

// GenerateToken signs a rejoin token binding a user to a table and seat.
func (s *RejoinTokenService) GenerateToken(userID, tableID string, seat int) (string, error) {
	if s == nil {
		return "", fmt.Errorf("rejoin token service is nil")
	}
	if userID == "" {
		return "", fmt.Errorf("user is required")
	}
	if tableID == "" {
		return "", fmt.Errorf("table is required")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("rejoin token config is incomplete")
	}

	claims := jwt.MapClaims{
		"iss":  s.issuer,
		"sub":  userID,
		"tid":  tableID,
		"seat": seat,
		"exp":  time.Now().Add(s.ttl).Unix(),
		"jti":  fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// RejoinClaims is the verified content of a rejoin token.
type RejoinClaims struct {
	UserID  string
	TableID string
	Seat    int
}

// VerifyToken checks signature, issuer and expiry, and extracts the claims.
func (s *RejoinTokenService) VerifyToken(tokenString string) (RejoinClaims, error) {
	if s == nil || s.secret == "" {
		return RejoinClaims{}, fmt.Errorf("rejoin token config is incomplete")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return RejoinClaims{}, fmt.Errorf("invalid rejoin token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return RejoinClaims{}, fmt.Errorf("invalid rejoin token claims")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return RejoinClaims{}, fmt.Errorf("rejoin token issuer mismatch")
	}

	userID, _ := claims["sub"].(string)
	tableID, _ := claims["tid"].(string)
	seatF, _ := claims["seat"].(float64)
	if userID == "" || tableID == "" {
		return RejoinClaims{}, fmt.Errorf("rejoin token missing subject or table")
	}

	return RejoinClaims{UserID: userID, TableID: tableID, Seat: int(seatF)}, nil
}

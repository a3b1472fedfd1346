package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	RolePresident = "president"
	RoleMember    = "member"
)

var ErrInvalidToken = errors.New("invalid token")

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Claims scope a session to one group. Presidents carry no member id;
// members carry theirs and are read-only.
type Claims struct {
	GroupID  string `json:"group_id"`
	Role     string `json:"role"`
	MemberID string `json:"member_id,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(secret, groupID, role, memberID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		GroupID:  groupID,
		Role:     role,
		MemberID: memberID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.GroupID == "" || (claims.Role != RolePresident && claims.Role != RoleMember) {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

package jwt

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/converse-dev/converse/internal/domain"
	internal_errors "github.com/converse-dev/converse/internal/errors"
)

type JwtService interface {
	NewToken(user *domain.User) (string, error)
	DecodeToken(jwtStr string) (domain.UserId, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{}
	claims["uid"] = user.Id
	claims["exp"] = time.Now().Add(j.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Print(err.Error())
		return "", &internal_errors.ErrorWithStatusCode{Message: "Can't create token", StatusCode: http.StatusInternalServerError}
	}

	return tokenString, nil
}

// DecodeToken verifies the signature and expiry and extracts the user id.
func (j *Jwt) DecodeToken(jwtStr string) (domain.UserId, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		log.Println(err)
		return 0, internal_errors.IdentityUnresolvable
	}
	if !token.Valid {
		return 0, internal_errors.IdentityUnresolvable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, internal_errors.IdentityUnresolvable
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, internal_errors.IdentityUnresolvable
	}
	return domain.UserId(uid), nil
}

package utils

import (
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

func ParseJWT(tokenString, secret string) (models.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(constvars.ErrDevAuthSigningMethod)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.Principal{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Principal{}, errors.New(constvars.ErrDevAuthTokenInvalid)
	}

	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	if id == "" || role == "" {
		return models.Principal{}, errors.New(constvars.ErrDevAuthClaimsMissing)
	}
	return models.Principal{ID: id, Role: role}, nil
}

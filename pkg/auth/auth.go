package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/arnavshah/troop-swap-api-go/pkg/database"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var jwtAlgorithm = jwt.SigningMethodHS256

var (
	ErrMissingSecret = errors.New("secret is not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Keys holds the secrets used to sign admin tokens and alliance keys
type Keys struct {
	JWTSecret    []byte
	MasterSecret []byte
	TokenTTL     time.Duration
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateToken creates a new JWT token for an admin
func (k Keys) CreateToken(username string) (string, error) {
	if len(k.JWTSecret) == 0 {
		return "", ErrMissingSecret
	}
	ttl := k.TokenTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(k.JWTSecret)
}

// VerifyToken verifies a JWT token
func (k Keys) VerifyToken(tokenString string) (*Claims, error) {
	if len(k.JWTSecret) == 0 {
		return nil, ErrMissingSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, ErrInvalidToken
		}
		return k.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// EnsureAdminExists creates the admin account when no admin exists yet
func EnsureAdminExists(db *gorm.DB, username, password string) (bool, error) {
	var count int64
	if err := db.Model(&database.MasterUser{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	user := database.MasterUser{
		Username:     username,
		PasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Login checks admin credentials and returns a signed token
func (k Keys) Login(db *gorm.DB, username, password string) (string, error) {
	var user database.MasterUser
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return "", err
	}
	if !CheckPasswordHash(password, user.PasswordHash) {
		return "", errors.New("invalid credentials")
	}
	return k.CreateToken(user.Username)
}

// GenerateHMACKey creates a signed alliance key using HMAC-SHA256
func (k Keys) GenerateHMACKey(alliance string) (string, error) {
	if len(k.MasterSecret) == 0 {
		return "", ErrMissingSecret
	}
	return alliance + "." + k.sign(alliance), nil
}

// VerifyHMACKey validates an HMAC-signed alliance key and returns the alliance
func (k Keys) VerifyHMACKey(key string) (string, error) {
	if len(k.MasterSecret) == 0 {
		return "", ErrMissingSecret
	}
	i := strings.LastIndex(key, ".")
	if i <= 0 || i == len(key)-1 {
		return "", errors.New("invalid key format")
	}
	alliance, provided := key[:i], key[i+1:]

	// Use constant-time comparison to prevent timing attacks
	if !hmac.Equal([]byte(provided), []byte(k.sign(alliance))) {
		return "", errors.New("invalid signature")
	}
	return alliance, nil
}

func (k Keys) sign(alliance string) string {
	h := hmac.New(sha256.New, k.MasterSecret)
	h.Write([]byte(alliance))
	return hex.EncodeToString(h.Sum(nil))
}

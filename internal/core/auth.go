package core

import (
	"context"
	"crypto/hmac"
	"errors"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/argon2"

	"github.com/edvin/tradelink/internal/model"
)

type AuthService struct {
	db        DB
	jwtSecret []byte
	jwtIssuer string
}

func NewAuthService(db DB, jwtSecret, jwtIssuer string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		jwtIssuer: jwtIssuer,
	}
}

// RegisterParams carries the registration form. UserType decides whether the
// new account may later create products.
type RegisterParams struct {
	Email         string
	Phone         string
	Password      string
	UserType      string
	CompanyName   string
	Industry      string
	AnnualRevenue string
	Location      string
	GSTIN         string
}

// Register creates a user and its profile. The new account is not signed in;
// the caller must log in afterwards.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*model.User, error) {
	hash, err := hashArgon2(p.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:        uuid.NewString(),
		Email:     p.Email,
		Phone:     p.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO users (id, email, phone, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Phone, hash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("create user: account %w", ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	var gstin *string
	if p.GSTIN != "" {
		gstin = &p.GSTIN
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO profiles (id, user_id, user_type, company_name, industry, annual_revenue, city, gstin, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.NewString(), user.ID, p.UserType, p.CompanyName, p.Industry, p.AnnualRevenue, p.Location, gstin, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return user, nil
}

// Login authenticates by email or phone and returns the user plus a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, phone, password string) (*model.User, string, error) {
	var user model.User
	var userType string
	err := s.db.QueryRow(ctx,
		`SELECT u.id, u.email, u.phone, u.password_hash, u.created_at, u.updated_at, p.user_type
		 FROM users u JOIN profiles p ON p.user_id = u.id
		 WHERE u.email = $1 OR u.phone = $2`, email, phone,
	).Scan(&user.ID, &user.Email, &user.Phone, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt, &userType)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !verifyArgon2(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(&user, userType)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	user.PasswordHash = ""
	return &user, token, nil
}

// IssueToken creates a signed JWT for the given user.
func (s *AuthService) IssueToken(user *model.User, userType string) (string, error) {
	now := time.Now()
	claims := model.JWTClaims{
		Sub:      user.ID,
		Email:    user.Email,
		UserType: userType,
		Iat:      now.Unix(),
		Exp:      now.Add(24 * time.Hour).Unix(),
		Iss:      s.jwtIssuer,
	}
	return s.signJWT(claims)
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*model.JWTClaims, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid token format")
	}

	signingInput := parts[0] + "." + parts[1]
	expectedSig := s.hmacSign([]byte(signingInput))
	actualSig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid signature encoding")
	}
	if subtle.ConstantTimeCompare(expectedSig, actualSig) != 1 {
		return nil, fmt.Errorf("invalid signature")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid payload encoding")
	}

	var claims model.JWTClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("invalid claims: %w", err)
	}

	if time.Now().Unix() > claims.Exp {
		return nil, fmt.Errorf("token expired")
	}

	return &claims, nil
}

func (s *AuthService) signJWT(claims model.JWTClaims) (string, error) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(claimsJSON)

	signingInput := header + "." + payload
	sig := base64.RawURLEncoding.EncodeToString(s.hmacSign([]byte(signingInput)))

	return signingInput + "." + sig, nil
}

func (s *AuthService) hmacSign(data []byte) []byte {
	mac := hmac.New(sha256.New, s.jwtSecret)
	mac.Write(data)
	return mac.Sum(nil)
}

// hashArgon2 produces a PHC-format argon2id hash:
// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
func hashArgon2(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 3, 65536, 4, 32)
	return fmt.Sprintf("$argon2id$v=19$m=65536,t=3,p=4$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// verifyArgon2 checks a password against a PHC-format argon2id hash.
func verifyArgon2(password, hash string) bool {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	paramParts := strings.Split(parts[3], ",")
	if len(paramParts) != 3 {
		return false
	}

	memory, err := parseParam(paramParts[0], "m=")
	if err != nil {
		return false
	}
	iterations, err := parseParam(paramParts[1], "t=")
	if err != nil {
		return false
	}
	parallelism, err := parseParam(paramParts[2], "p=")
	if err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, uint32(iterations), uint32(memory), uint8(parallelism), uint32(len(expectedHash)))
	return subtle.ConstantTimeCompare(computed, expectedHash) == 1
}

func parseParam(s, prefix string) (int, error) {
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("missing prefix %s", prefix)
	}
	return strconv.Atoi(s[len(prefix):])
}

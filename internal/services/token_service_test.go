package services

import (
	"strings"
	"testing"
	"time"

	"finance-api/internal/config"
	"finance-api/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TokenServiceTestSuite defines the test suite for TokenService
type TokenServiceTestSuite struct {
	suite.Suite
	cfg     config.JWTConfig
	service TokenServiceInterface
	user    *models.User
}

func (s *TokenServiceTestSuite) SetupTest() {
	s.cfg = config.JWTConfig{
		Secret:              []byte(strings.Repeat("s", config.MinJWTSecretLength)),
		Issuer:              "test-issuer",
		AccessTokenDuration: 2 * time.Hour,
	}
	s.service = NewTokenService(&s.cfg)
	s.user = &models.User{ID: uuid.New(), Email: "test@example.com"}
}

func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) sign(claims models.CustomClaims, method jwt.SigningMethod, key interface{}) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	s.Require().NoError(err)
	return token
}

func (s *TokenServiceTestSuite) validClaims() models.CustomClaims {
	now := time.Now()
	return models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: s.user.ID.String(),
	}
}

func (s *TokenServiceTestSuite) TestIssueAndVerify_RoundTrip() {
	token, expiresAt, err := s.service.Issue(s.user)
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.WithinDuration(time.Now().Add(2*time.Hour), expiresAt, 5*time.Second)

	claims, err := s.service.Verify(token)
	s.Require().NoError(err)
	s.Equal(s.user.ID.String(), claims.UserID)
	s.Equal(s.user.Email, claims.Email)
	s.Equal("test-issuer", claims.Issuer)
	s.NotEmpty(claims.ID)
}

func (s *TokenServiceTestSuite) TestIssue_RequiresUser() {
	_, _, err := s.service.Issue(nil)
	s.Error(err)

	_, _, err = s.service.Issue(&models.User{})
	s.Error(err)
}

func (s *TokenServiceTestSuite) TestIssue_RequiresSecret() {
	service := NewTokenService(&config.JWTConfig{Issuer: "x", AccessTokenDuration: time.Hour})

	_, _, err := service.Issue(s.user)
	s.Error(err)
}

func (s *TokenServiceTestSuite) TestVerify_Empty() {
	_, err := s.service.Verify("")
	s.ErrorIs(err, ErrEmptyToken)
}

func (s *TokenServiceTestSuite) TestVerify_Expired() {
	issuedAt := time.Now().Add(-3 * time.Hour)
	past := &TokenService{JWTConfig: s.cfg, now: func() time.Time { return issuedAt }}

	token, _, err := past.Issue(s.user)
	s.Require().NoError(err)

	_, err = s.service.Verify(token)
	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceTestSuite) TestVerify_UsesClock() {
	token, _, err := s.service.Issue(s.user)
	s.Require().NoError(err)

	later := &TokenService{JWTConfig: s.cfg, now: func() time.Time { return time.Now().Add(3 * time.Hour) }}

	_, err = later.Verify(token)
	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceTestSuite) TestVerify_Tampered() {
	token, _, err := s.service.Issue(s.user)
	s.Require().NoError(err)

	parts := strings.Split(token, ".")
	s.Require().Len(parts, 3)
	claims := s.validClaims()
	claims.UserID = uuid.New().String()
	forged := s.sign(claims, jwt.SigningMethodHS256, []byte("a-completely-different-secret-value!!"))
	forgedParts := strings.Split(forged, ".")

	// Original signature over a different payload
	_, err = s.service.Verify(parts[0] + "." + forgedParts[1] + "." + parts[2])
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestVerify_WrongSecret() {
	token := s.sign(s.validClaims(), jwt.SigningMethodHS256, []byte(strings.Repeat("x", 32)))

	_, err := s.service.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestVerify_RejectsNoneAlgorithm() {
	token := s.sign(s.validClaims(), jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)

	_, err := s.service.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestVerify_WrongIssuer() {
	claims := s.validClaims()
	claims.Issuer = "someone-else"
	token := s.sign(claims, jwt.SigningMethodHS256, s.cfg.Secret)

	_, err := s.service.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestVerify_MissingExpiry() {
	claims := s.validClaims()
	claims.ExpiresAt = nil
	token := s.sign(claims, jwt.SigningMethodHS256, s.cfg.Secret)

	_, err := s.service.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestVerify_MalformedUserID() {
	claims := s.validClaims()
	claims.UserID = "42"
	token := s.sign(claims, jwt.SigningMethodHS256, s.cfg.Secret)

	_, err := s.service.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestVerify_Garbage() {
	_, err := s.service.Verify("not.a.jwt")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader() {
	testCases := []struct {
		name     string
		header   string
		expected string
		err      error
	}{
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"lowercase bearer", "bearer abc.def.ghi", "abc.def.ghi", nil},
		{"raw token", "abc.def.ghi", "abc.def.ghi", nil},
		{"surrounding spaces", "  Bearer   abc.def.ghi  ", "abc.def.ghi", nil},
		{"empty", "", "", ErrEmptyToken},
		{"blank", "   ", "", ErrEmptyToken},
		{"bearer without token", "Bearer ", "", ErrInvalidAuthHeader},
		{"other scheme", "Basic dXNlcjpwYXNz", "", ErrInvalidAuthHeader},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			token, err := s.service.ExtractTokenFromHeader(tc.header)
			if tc.err != nil {
				s.ErrorIs(err, tc.err)
				return
			}
			s.NoError(err)
			s.Equal(tc.expected, token)
		})
	}
}

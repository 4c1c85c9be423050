package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/Edutrack/config"
	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/model"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/repository"
	"github.com/rs/zerolog/log"
)

const actorKey = "actor"

var (
	errMissingToken = errors.New("authentication credentials were not provided")
	errInvalidToken = errors.New("invalid or expired token")
	errInactiveUser = errors.New("user is inactive or deleted")
)

// Claims is the access token payload issued by the identity provider.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

type Auth struct {
	secret []byte
	issuer string
	users  repository.UserRepository
}

func NewAuth(cfg *config.Config, users repository.UserRepository) *Auth {
	return &Auth{secret: []byte(cfg.JWT.Secret), issuer: cfg.JWT.Issuer, users: users}
}

// Required rejects the request with 401 unless it carries a valid token for
// an active, non-deleted user.
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := a.authenticate(c)
		if err != nil {
			abort(c, err)
			return
		}
		SetActor(c, actor)
		c.Next()
	}
}

// Optional sets the actor when a token is present and valid. A request
// without a token continues anonymously; a bad token is still rejected.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := a.authenticate(c)
		switch {
		case errors.Is(err, errMissingToken):
		case err != nil:
			abort(c, err)
			return
		default:
			SetActor(c, actor)
		}
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	if errors.Is(err, errMissingToken) || errors.Is(err, errInvalidToken) || errors.Is(err, errInactiveUser) {
		log.Warn().Err(err).Str("path", c.FullPath()).Msg("Authentication failed")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("Authentication lookup failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}

func (a *Auth) authenticate(c *gin.Context) (policy.Actor, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return policy.Actor{}, errMissingToken
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return policy.Actor{}, errInvalidToken
	}

	claims, err := a.parse(strings.TrimSpace(raw))
	if err != nil {
		log.Debug().Err(err).Msg("Token rejected")
		return policy.Actor{}, errInvalidToken
	}

	user, err := a.users.FindByID(c.Request.Context(), policy.ViewActive, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return policy.Actor{}, errInactiveUser
		}
		return policy.Actor{}, fmt.Errorf("load user %d: %w", claims.UserID, err)
	}
	if !user.IsActive {
		return policy.Actor{}, errInactiveUser
	}
	return ActorFromUser(user), nil
}

func (a *Auth) parse(raw string) (*Claims, error) {
	if len(a.secret) == 0 {
		return nil, errors.New("jwt secret is not configured")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, errInvalidToken
	}
	return claims, nil
}

// ActorFromUser builds the policy identity from a user loaded with profiles.
func ActorFromUser(user *model.User) policy.Actor {
	actor := policy.Actor{
		UserID:      user.ID,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}
	if user.Student != nil {
		id := user.Student.ID
		actor.StudentID = &id
	}
	if user.Teacher != nil {
		id := user.Teacher.ID
		actor.TeacherID = &id
	}
	return actor
}

func SetActor(c *gin.Context, actor policy.Actor) {
	c.Set(actorKey, actor)
}

// CurrentActor returns the actor stored by Required or Optional.
func CurrentActor(c *gin.Context) (policy.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return policy.Actor{}, false
	}
	actor, ok := v.(policy.Actor)
	return actor, ok
}

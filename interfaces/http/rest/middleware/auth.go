package middleware

import (
	"net/http"
	"strings"

	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"go.uber.org/zap"

	"memories-backend/infrastructure/config"
	"memories-backend/pkg/auth"
	"memories-backend/pkg/common"
)

// Authenticate creates the authentication middleware. Inside Lambda the API
// Gateway JWT authorizer has already verified the token; the middleware only
// extracts the owner identity from the verified claims in the proxied
// request context. Outside Lambda the bearer token is validated locally with
// the shared secret. Either way, a request with no derivable identity is
// refused before any store access.
func Authenticate(cfg *config.Config, logger *zap.Logger) func(next http.Handler) http.Handler {
	if cfg.IsLambda() {
		return authenticateFromAPIGateway(logger)
	}

	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
	if err != nil {
		logger.Error("Failed to initialize JWT validator", zap.Error(err))
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				common.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
			})
		}
	}

	return authenticateBearer(validator, logger)
}

// authenticateFromAPIGateway trusts the claims the API Gateway JWT
// authorizer attached to the request context. This system does not
// re-validate token signatures there.
func authenticateFromAPIGateway(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqCtx, ok := core.GetAPIGatewayV2ContextFromContext(r.Context())
			if !ok || reqCtx.Authorizer == nil || reqCtx.Authorizer.JWT == nil {
				common.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			userID := auth.IdentityFromClaims(reqCtx.Authorizer.JWT.Claims)
			if userID == "" {
				logger.Warn("No identity claim in authorizer context",
					zap.String("path", r.URL.Path),
				)
				common.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticateBearer validates a bearer token and derives the identity from
// its claims.
func authenticateBearer(validator *auth.JWTValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				common.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("Invalid token",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				common.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			userID := auth.IdentityFromClaims(claims)
			if userID == "" {
				common.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		authHeader = r.Header.Get("authorization")
	}
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

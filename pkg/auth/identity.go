package auth

// Claim names recognized as an owner identity, in precedence order. The
// subject claim wins; the Cognito username is a fallback for pools that do
// not expose sub on access tokens.
const (
	ClaimSubject         = "sub"
	ClaimCognitoUsername = "cognito:username"
)

// IdentityFromClaims derives the owner identity from a set of verified token
// claims. Returns "" when no recognized claim is present; callers must treat
// that as an authorization failure, never as a shared identity.
func IdentityFromClaims(claims map[string]string) string {
	if sub := claims[ClaimSubject]; sub != "" {
		return sub
	}
	return claims[ClaimCognitoUsername]
}

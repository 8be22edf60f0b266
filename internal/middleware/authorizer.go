package middleware

import (
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// Policy effects
const (
	EffectAllow = "Allow"
	EffectDeny  = "Deny"
)

// BuildPolicy returns an authorizer response granting or denying invoke on resource
func BuildPolicy(principalID, effect, resource string, context map[string]interface{}) events.APIGatewayCustomAuthorizerResponse {
	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID: principalID,
		PolicyDocument: events.APIGatewayCustomAuthorizerPolicy{
			Version: "2012-10-17",
			Statement: []events.IAMPolicyStatement{{
				Action:   []string{"execute-api:Invoke"},
				Effect:   effect,
				Resource: []string{resource},
			}},
		},
		Context: context,
	}
}

// AuthorizeRequest evaluates a REQUEST authorizer event. The token is read
// from the cookie header; any failure yields a Deny policy.
func (a *AuthService) AuthorizeRequest(event events.APIGatewayCustomAuthorizerRequestTypeRequest) events.APIGatewayCustomAuthorizerResponse {
	cookie := headerValue(event.Headers, "cookie")

	claims, err := a.Authorize(cookie)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"method_arn": event.MethodArn,
			"error":      err.Error(),
		}).Warn("Request denied")
		return BuildPolicy("anonymous", EffectDeny, event.MethodArn, nil)
	}

	return BuildPolicy(claims.Subject, EffectAllow, event.MethodArn, map[string]interface{}{
		"username": claims.Username,
	})
}

func headerValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

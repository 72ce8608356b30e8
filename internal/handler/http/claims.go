package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workforcehq/workforce-backend-go/internal/domain/employee"
)

// decodeOptional decodes a JSON body into dst when one is present. Endpoints
// whose payload is entirely optional accept a bodyless request.
func decodeOptional(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// actorFromRequest builds the acting identity from verified JWT claims.
// Services receive the Actor instead of reading the token themselves.
func actorFromRequest(r *http.Request) (employee.Actor, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return employee.Actor{}, false
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return employee.Actor{}, false
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return employee.Actor{}, false
	}

	actor := employee.Actor{
		UserID: userID,
		Role:   employee.Role(roleStr),
	}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		actor.EmployeeID = &employeeID
	}

	return actor, true
}

func companyIDFromRequest(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", false
	}

	return companyID, true
}

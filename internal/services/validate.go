package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/registreehq/registree-api/internal/apperr"
	"github.com/registreehq/registree-api/internal/models"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)*$`)

// checkRequiredFields rejects when any named field is empty. The map key is
// the field name reported back to the client.
func checkRequiredFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return apperr.BadRequest(fmt.Sprintf("Missing required field(s): '%s'", strings.Join(missing, ",")))
	}
	return nil
}

func validateEmailField(email string) error {
	if !emailRegexp.MatchString(email) {
		return apperr.BadRequest("Field email has invalid format")
	}
	return nil
}

func validateRoleField(role models.Role) error {
	if !role.Valid() {
		values := make([]string, 0, len(models.Roles()))
		for _, r := range models.Roles() {
			values = append(values, string(r))
		}
		return apperr.BadRequest(fmt.Sprintf("Field 'role' can only contain values: %s", strings.Join(values, ",")))
	}
	return nil
}

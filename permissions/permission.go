package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"hotel/shared/constant"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var staffRoles = []string{constant.RoleAdmin, constant.RoleReceptionist}

// Permission lists the staff roles allowed on one route. An empty list means any
// authenticated staff member; Skip bypasses authentication entirely.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func key(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// FindPermissions looks up a chi route pattern. Mounted index routes resolve with a
// trailing slash, so one is dropped before matching.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return r.index[key(method, path)]
}

func (r *PermissionData) build() error {
	r.index = make(map[string]Permission, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		for _, role := range endpoint.Permissions {
			if !slices.Contains(staffRoles, role) {
				return fmt.Errorf("%s %s: unknown role %q", endpoint.Method, endpoint.Path, role)
			}
		}

		k := key(endpoint.Method, endpoint.Path)
		if _, exists := r.index[k]; exists {
			return fmt.Errorf("duplicate endpoint %s", k)
		}

		r.index[k] = endpoint
	}

	return nil
}

func Get() *PermissionData {
	return parse(permissionsData)
}

func parse(data []byte) *PermissionData {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		log.Err(err).Msg("failed to decode embedded permissions")

		return nil
	}

	if err := permissions.build(); err != nil {
		log.Err(err).Msg("invalid embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("loaded embedded permissions")

	return &permissions
}

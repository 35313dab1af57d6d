package authz

import (
	"strings"

	"github.com/samber/lo"

	"github.com/raids-lab/projecthub/dao/model"
)

// MembersByEmail returns the workspace members whose user email appears in
// emails, in membership order. Addresses that match no member are dropped
// without error. Matching ignores case and surrounding space. Members must
// have their User loaded.
func MembersByEmail(members []model.WorkspaceMember, emails []string) []model.WorkspaceMember {
	if len(emails) == 0 {
		return nil
	}
	wanted := lo.SliceToMap(emails, func(e string) (string, struct{}) {
		return normalizeEmail(e), struct{}{}
	})
	return lo.Filter(members, func(m model.WorkspaceMember, _ int) bool {
		if m.User == nil {
			return false
		}
		_, ok := wanted[normalizeEmail(m.User.Email)]
		return ok
	})
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

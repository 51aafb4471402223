// Package visibility scopes collections of referee-owned rows to what a
// requester is allowed to see: staff see everything, everyone else sees only
// rows owned by their own referee profile.
package visibility

// Requester is the authenticated caller, resolved once per request and passed
// explicitly into every scoped read.
type Requester struct {
	UserID    int
	RefereeID string
	IsStaff   bool
}

// Allowed reports whether req may see or act on a row owned by the given
// referee id. Staff may act on any row; everyone else only on rows owned by
// their own referee profile, and a row with no owner belongs to nobody.
func Allowed(req Requester, owner string) bool {
	if req.IsStaff {
		return true
	}
	return owner != "" && owner == req.RefereeID
}

// Filter returns the subset of rows visible to req. ownerOf reports the
// owning referee id of a row; rows with an empty owner are hidden from
// non-staff requesters.
func Filter[T any](req Requester, rows []T, ownerOf func(T) string) []T {
	if req.IsStaff {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if Allowed(req, ownerOf(row)) {
			out = append(out, row)
		}
	}
	return out
}

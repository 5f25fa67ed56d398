package group

import (
	"document-manager-api/internal/domain/group"
)

func ToResponseGroup(g group.Group) Group {
	return Group{ID: g.ID, Name: g.Name, CreateDate: g.CreateDate}
}

func ToResponseGroups(gs []group.Group) ResponseData {
	out := make([]Group, len(gs))
	for idx, g := range gs {
		out[idx] = ToResponseGroup(g)
	}

	return ResponseData{Data: out}
}

func ToResponseMembers(ms []group.Member) Members {
	out := make([]Member, len(ms))
	for idx, m := range ms {
		out[idx] = Member{ID: m.UserID, Username: m.Username}
	}

	return Members{Data: out}
}

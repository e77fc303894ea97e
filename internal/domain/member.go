package domain

import "encoding/json"

// Member is one entry of a IIIF collection's members or manifests list.
type Member struct {
	ID    string `json:"@id"`
	Type  string `json:"@type"`
	Label any    `json:"label,omitempty"`
}

// UnmarshalJSON accepts both the v2 (@id/@type) and v3 (id/type) spellings.
func (m *Member) UnmarshalJSON(b []byte) error {
	var raw struct {
		AtID   string `json:"@id"`
		AtType string `json:"@type"`
		ID     string `json:"id"`
		Type   string `json:"type"`
		Label  any    `json:"label"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	m.ID = raw.AtID
	if m.ID == "" {
		m.ID = raw.ID
	}
	m.Type = raw.AtType
	if m.Type == "" {
		m.Type = raw.Type
	}
	m.Label = raw.Label
	return nil
}

// Collection is the subset of a remote IIIF collection document the feed reads.
type Collection struct {
	ID        string   `json:"@id"`
	Label     any      `json:"label,omitempty"`
	Members   []Member `json:"members,omitempty"`
	Manifests []Member `json:"manifests,omitempty"`
}

// AllMembers concatenates members and manifests in document order.
func (c Collection) AllMembers() []Member {
	all := make([]Member, 0, len(c.Members)+len(c.Manifests))
	all = append(all, c.Members...)
	all = append(all, c.Manifests...)
	return all
}

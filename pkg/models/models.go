package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Group is the affinity bucket a player registers under
type Group string

const (
	GroupOnline  Group = "Online"
	GroupOffline Group = "Offline"
)

// Sentinel values written for a send that found no target
const (
	NoTarget = "NO TARGET"
	NoGroup  = "N/A"
)

// OrderHeader is the column layout of a published order list
var OrderHeader = []string{"From", "Status", "Send To", "Target Status"}

// RosterHeader is the column layout of a roster sheet
var RosterHeader = []string{"Username", "Status", "Marches_Available", "Inf_Cav"}

// ParseGroup accepts a group name in any case
func ParseGroup(s string) (Group, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "online":
		return GroupOnline, nil
	case "offline":
		return GroupOffline, nil
	}
	return "", fmt.Errorf("unknown group %q", s)
}

// Valid reports whether g is one of the known groups
func (g Group) Valid() bool {
	return g == GroupOnline || g == GroupOffline
}

// Other returns the opposite group
func (g Group) Other() Group {
	if g == GroupOnline {
		return GroupOffline
	}
	return GroupOnline
}

// PlayerEntry is one roster row
type PlayerEntry struct {
	Username  string `json:"username"`
	Group     Group  `json:"group"`
	SendCount int    `json:"send_count"`
	Strength  int    `json:"strength"`
}

// Assignment is one send placed with a target, or the unmatched sentinel.
// Pass is the 1-based index of the pass that matched it, 0 when unmatched.
type Assignment struct {
	From      string `json:"from"`
	FromGroup Group  `json:"from_group"`
	To        string `json:"to"`
	ToGroup   string `json:"to_group"`
	Pass      int    `json:"pass,omitempty"`
}

// Unmatched builds the sentinel record for a send of p
func Unmatched(p PlayerEntry) Assignment {
	return Assignment{
		From:      p.Username,
		FromGroup: p.Group,
		To:        NoTarget,
		ToGroup:   NoGroup,
	}
}

// Matched reports whether a carries a real target
func (a Assignment) Matched() bool {
	return a.To != NoTarget
}

// Row returns a in OrderHeader column order
func (a Assignment) Row() []string {
	return []string{a.From, string(a.FromGroup), a.To, a.ToGroup}
}

// Strength is a submitted strength value. Anything that is not a whole
// number, quoted or not, decodes as 0.
type Strength int

func (s *Strength) UnmarshalJSON(data []byte) error {
	*s = 0
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Strength(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
			*s = Strength(n)
		}
	}
	return nil
}

// RosterRow is a roster record as submitted by a client. Numeric fields are
// pointers so a missing send count can be told apart from zero.
type RosterRow struct {
	Username  string    `json:"username"`
	Group     string    `json:"group"`
	SendCount *int      `json:"send_count"`
	Strength  *Strength `json:"strength"`
}

// Entry converts the row, defaulting a missing or negative strength to 0
func (r RosterRow) Entry(index int) (PlayerEntry, error) {
	username := strings.TrimSpace(r.Username)
	if username == "" {
		return PlayerEntry{}, &InvalidEntryError{Row: index, Reason: "username is required"}
	}
	group, err := ParseGroup(r.Group)
	if err != nil {
		return PlayerEntry{}, &InvalidEntryError{Row: index, Username: username, Reason: err.Error()}
	}
	if r.SendCount == nil {
		return PlayerEntry{}, &InvalidEntryError{Row: index, Username: username, Reason: "send_count is required"}
	}
	strength := 0
	if r.Strength != nil && *r.Strength > 0 {
		strength = int(*r.Strength)
	}
	return PlayerEntry{
		Username:  username,
		Group:     group,
		SendCount: *r.SendCount,
		Strength:  strength,
	}, nil
}

// Entries converts every row, failing on the first bad one
func Entries(rows []RosterRow) ([]PlayerEntry, error) {
	entries := make([]PlayerEntry, 0, len(rows))
	for i, r := range rows {
		e, err := r.Entry(i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// GenerateInput is the body of the preview endpoint
type GenerateInput struct {
	Players []RosterRow `json:"players"`
	Seed    *int64      `json:"seed,omitempty"`
}

// Summary describes the outcome of one generation run
type Summary struct {
	Players       int            `json:"players"`
	Sends         int            `json:"sends"`
	Matched       int            `json:"matched"`
	Unmatched     int            `json:"unmatched"`
	PassCounts    map[string]int `json:"pass_counts"`
	Received      map[string]int `json:"received"`
	FairnessScore float64        `json:"fairness_score"`
}

// GenerateResponse is the result returned by the preview and publish endpoints
type GenerateResponse struct {
	RunID   string       `json:"run_id,omitempty"`
	Orders  []Assignment `json:"orders"`
	Summary Summary      `json:"summary"`
}

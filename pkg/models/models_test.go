package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func strengthPtr(n int) *Strength {
	s := Strength(n)
	return &s
}

func TestParseGroup(t *testing.T) {
	g, err := ParseGroup(" online ")
	require.NoError(t, err)
	assert.Equal(t, GroupOnline, g)

	g, err = ParseGroup("OFFLINE")
	require.NoError(t, err)
	assert.Equal(t, GroupOffline, g)
	assert.Equal(t, GroupOnline, g.Other())

	_, err = ParseGroup("away")
	assert.Error(t, err)
}

func TestRosterRowEntry(t *testing.T) {
	e, err := RosterRow{Username: " Ragnar ", Group: "Online", SendCount: intPtr(5), Strength: strengthPtr(120000)}.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, PlayerEntry{Username: "Ragnar", Group: GroupOnline, SendCount: 5, Strength: 120000}, e)

	t.Run("missing strength defaults to zero", func(t *testing.T) {
		e, err := RosterRow{Username: "Bjorn", Group: "Offline", SendCount: intPtr(4)}.Entry(0)
		require.NoError(t, err)
		assert.Zero(t, e.Strength)

		e, err = RosterRow{Username: "Bjorn", Group: "Offline", SendCount: intPtr(4), Strength: strengthPtr(-3)}.Entry(0)
		require.NoError(t, err)
		assert.Zero(t, e.Strength)
	})

	t.Run("missing send count is rejected", func(t *testing.T) {
		_, err := RosterRow{Username: "Ivar", Group: "Offline"}.Entry(3)
		assert.ErrorIs(t, err, ErrInvalidEntry)

		var entryErr *InvalidEntryError
		require.True(t, errors.As(err, &entryErr))
		assert.Equal(t, 3, entryErr.Row)
		assert.Equal(t, "Ivar", entryErr.Username)
		assert.Equal(t, "invalid roster entry 4 (Ivar): send_count is required", err.Error())
	})

	t.Run("bad group is rejected", func(t *testing.T) {
		_, err := RosterRow{Username: "Ivar", Group: "Sleeping", SendCount: intPtr(1)}.Entry(0)
		assert.ErrorIs(t, err, ErrInvalidEntry)
	})
}

func TestRosterRowJSONStrength(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"integer", `{"strength":1200}`, 1200},
		{"quoted integer", `{"strength":" 75 "}`, 75},
		{"text", `{"strength":"12k"}`, 0},
		{"fraction", `{"strength":1.5}`, 0},
		{"object", `{"strength":{"inf":3}}`, 0},
		{"null", `{"strength":null}`, 0},
		{"missing", `{}`, 0},
		{"negative", `{"strength":-4}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var row RosterRow
			require.NoError(t, json.Unmarshal([]byte(tt.body), &row))
			row.Username, row.Group, row.SendCount = "a", "Online", intPtr(1)

			e, err := row.Entry(0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Strength)
		})
	}

	t.Run("send count stays strict", func(t *testing.T) {
		var row RosterRow
		assert.Error(t, json.Unmarshal([]byte(`{"send_count":"4"}`), &row))
		assert.Error(t, json.Unmarshal([]byte(`{"send_count":1.5}`), &row))
	})
}

func TestEntries(t *testing.T) {
	entries, err := Entries([]RosterRow{
		{Username: "a", Group: "Online", SendCount: intPtr(4)},
		{Username: "b", Group: "Offline", SendCount: intPtr(6), Strength: strengthPtr(10)},
	})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = Entries([]RosterRow{
		{Username: "a", Group: "Online", SendCount: intPtr(4)},
		{Username: "", Group: "Offline", SendCount: intPtr(6)},
	})
	assert.ErrorIs(t, err, ErrInvalidEntry)
	assert.Nil(t, entries)
}

func TestAssignmentRow(t *testing.T) {
	a := Assignment{From: "a", FromGroup: GroupOnline, To: "b", ToGroup: "Offline", Pass: 2}
	assert.True(t, a.Matched())
	assert.Equal(t, []string{"a", "Online", "b", "Offline"}, a.Row())

	u := Unmatched(PlayerEntry{Username: "a", Group: GroupOffline})
	assert.False(t, u.Matched())
	assert.Equal(t, []string{"a", "Offline", NoTarget, NoGroup}, u.Row())
}

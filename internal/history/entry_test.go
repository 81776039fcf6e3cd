package history

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionKind(t *testing.T) {
	tests := []struct {
		action Action
		want   Kind
	}{
		{ActionInstall, KindInstall},
		{ActionRemove, KindRemove},
		{ActionUpdate, KindUpdate},
		{ActionClean, KindOther},
		{ActionFlatpakInstall, KindOther},
		{ActionRepoAdd, KindOther},
		{ActionReinstall, KindOther},
		{ActionInstallOffline, KindOther},
		{ActionKernelInstall, KindOther},
		{ActionKernelRemove, KindOther},
		{"driver_install_nvidia", KindOther},
		{"Install", KindOther},
		{"", KindOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.action.Kind())
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "install", KindInstall.String())
	assert.Equal(t, "remove", KindRemove.String())
	assert.Equal(t, "update", KindUpdate.String())
	assert.Equal(t, "other", KindOther.String())
}

func TestNewEntryTruncatesToSeconds(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.Local)

	e := newEntryAt(ActionInstall, []string{"vim", "git"}, now)

	assert.Equal(t, ActionInstall, e.Action)
	assert.Equal(t, []string{"vim", "git"}, e.Items)
	assert.Equal(t, 0, e.Timestamp.Nanosecond())
	assert.Equal(t, "2026-03-14 09:26:53", e.FormatTime())
}

func TestNewEntryCopiesItems(t *testing.T) {
	items := []string{"vim"}
	e := NewEntry(ActionRemove, items)

	items[0] = "emacs"
	assert.Equal(t, []string{"vim"}, e.Items)
}

func TestNewEntryNilItems(t *testing.T) {
	e := NewEntry(ActionUpdate, nil)

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"items":[]`)
}

func TestEntryJSONFields(t *testing.T) {
	e := newEntryAt(ActionRepoAdd, []string{"copr"}, time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local))

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Len(t, raw, 3)
	assert.Equal(t, "repo-add", raw["action"])
	assert.Equal(t, []any{"copr"}, raw["items"])
	assert.Contains(t, raw["timestamp"], "2026-01-02T03:04:05")
}

func TestSummary(t *testing.T) {
	e := newEntryAt(ActionInstall, []string{"vim", "git"}, time.Date(2026, 5, 6, 7, 8, 9, 0, time.Local))

	assert.Equal(t, "install vim, git (2026-05-06 07:08:09)", e.Summary())
}

// Package history records mutating package operations in a JSON file.
package history

import (
	"strings"
	"time"
)

// TimeFormat is how timestamps are shown to users.
const TimeFormat = "2006-01-02 15:04:05"

// Action is the tag naming the kind of operation that was recorded.
// The set is open: any command may log a new tag without touching this
// package.
type Action string

const (
	ActionInstall        Action = "install"
	ActionRemove         Action = "remove"
	ActionUpdate         Action = "update"
	ActionClean          Action = "clean"
	ActionFlatpakInstall Action = "flatpak-install"
	ActionFlatpakRemove  Action = "flatpak-remove"
	ActionFlatpakUpdate  Action = "flatpak-update"
	ActionGroupInstall   Action = "group-install"
	ActionGroupRemove    Action = "group-remove"
	ActionRepoEnable     Action = "repo-enable"
	ActionRepoDisable    Action = "repo-disable"
	ActionRepoAdd        Action = "repo-add"
	ActionRepoRemove     Action = "repo-remove"

	// ActionReinstall replaces packages that were already installed, so it
	// has no inverse.
	ActionReinstall      Action = "reinstall"
	ActionSecurityUpdate Action = "security-update"
	ActionDownload       Action = "download"
	ActionDownloadDeps   Action = "download-with-deps"
	ActionInstallOffline Action = "install-offline"
	ActionKernelInstall  Action = "kernel_install"
	ActionKernelRemove   Action = "kernel_remove"
	ActionGamingInstall  Action = "gaming_install"
)

// Kind is the closed classification of an Action used for rollback dispatch.
type Kind int

const (
	// KindOther covers every tag without a defined inverse.
	KindOther Kind = iota
	KindInstall
	KindRemove
	KindUpdate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInstall:
		return "install"
	case KindRemove:
		return "remove"
	case KindUpdate:
		return "update"
	default:
		return "other"
	}
}

// Kind classifies the action. Tags match exactly; a misspelled tag is
// KindOther.
func (a Action) Kind() Kind {
	switch a {
	case ActionInstall:
		return KindInstall
	case ActionRemove:
		return KindRemove
	case ActionUpdate:
		return KindUpdate
	default:
		return KindOther
	}
}

// Entry is one recorded operation.
type Entry struct {
	Action    Action    `json:"action"`
	Items     []string  `json:"items"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntry creates an entry stamped with the current local time, truncated
// to the second.
func NewEntry(action Action, items []string) Entry {
	return newEntryAt(action, items, time.Now())
}

func newEntryAt(action Action, items []string, now time.Time) Entry {
	copied := make([]string, len(items))
	copy(copied, items)

	return Entry{
		Action:    action,
		Items:     copied,
		Timestamp: now.Local().Truncate(time.Second),
	}
}

// FormatTime returns a human-readable timestamp.
func (e Entry) FormatTime() string {
	return e.Timestamp.Local().Format(TimeFormat)
}

// JoinItems returns the items separated by ", ".
func (e Entry) JoinItems() string {
	return strings.Join(e.Items, ", ")
}

// Summary returns a one-line description of the entry.
func (e Entry) Summary() string {
	return string(e.Action) + " " + e.JoinItems() + " (" + e.FormatTime() + ")"
}

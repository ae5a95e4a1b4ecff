package schema

import (
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ActionChange is one action whose schema differs between two runs. Detail
// is a human-readable field diff.
type ActionChange struct {
	ID     string `json:"id"`
	Detail string `json:"detail"`
}

// DiffResult compares two extraction runs action by action.
type DiffResult struct {
	Added   []string       `json:"added"`
	Removed []string       `json:"removed"`
	Changed []ActionChange `json:"changed"`
}

// Empty reports whether the two runs had identical action sets and schemas.
func (d DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff compares two extractions by action id. Run metadata such as run id
// and timestamps is ignored; only the schemas themselves are compared.
func Diff(old, new *Extraction) DiffResult {
	oldByID := make(map[string]ActionSchema, len(old.Actions))
	for _, action := range old.Actions {
		oldByID[action.ID] = action
	}
	newByID := make(map[string]ActionSchema, len(new.Actions))
	for _, action := range new.Actions {
		newByID[action.ID] = action
	}

	result := DiffResult{Added: []string{}, Removed: []string{}, Changed: []ActionChange{}}

	opts := cmpopts.EquateEmpty()
	for id, after := range newByID {
		before, ok := oldByID[id]
		if !ok {
			result.Added = append(result.Added, id)
			continue
		}
		if detail := cmp.Diff(before, after, opts); detail != "" {
			result.Changed = append(result.Changed, ActionChange{ID: id, Detail: detail})
		}
	}
	for id := range oldByID {
		if _, ok := newByID[id]; !ok {
			result.Removed = append(result.Removed, id)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Slice(result.Changed, func(i, j int) bool {
		return result.Changed[i].ID < result.Changed[j].ID
	})

	return result
}

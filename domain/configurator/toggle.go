package configurator

import (
	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
)

// Toggle returns the selection that results from clicking id. Rules, in order:
//
//  1. A bundle id selects all of its sub-services, or clears them when all
//     are already selected. Selecting adds the prerequisite if the bundle
//     needs it.
//  2. Deselecting the prerequisite also removes every dependent id.
//  3. Selecting a dependent id while the prerequisite is missing adds both.
//  4. Anything else, unknown ids included, is a plain membership toggle.
//
// Re-selecting the prerequisite does not bring back dependents removed by
// rule 2.
func Toggle(cat *catalog.Catalog, sel Selection, id string) Selection {
	prereq := cat.Prerequisite()

	if bundle, ok := cat.Entry(id); ok && bundle.IsBundle() {
		subIDs := bundle.SubIDs()
		if sel.HasAll(subIDs...) {
			return sel.without(subIDs...)
		}
		if bundle.RequiresWebsite && !sel.Has(prereq) {
			return NewSelection(prereq).with(sel.ids...).with(subIDs...)
		}
		return sel.with(subIDs...)
	}

	if id == prereq && sel.Has(prereq) {
		return sel.without(append([]string{prereq}, cat.WebsiteDependents()...)...)
	}

	if !sel.Has(id) && !sel.Has(prereq) && cat.RequiresWebsite(id) {
		return sel.with(prereq, id)
	}

	if sel.Has(id) {
		return sel.without(id)
	}
	return sel.with(id)
}

// ToggleAll applies Toggle for each id in order starting from sel.
func ToggleAll(cat *catalog.Catalog, sel Selection, ids ...string) Selection {
	for _, id := range ids {
		sel = Toggle(cat, sel, id)
	}
	return sel
}

// BundleState describes how much of a bundle is selected.
type BundleState int

const (
	BundleNone BundleState = iota
	BundlePartial
	BundleFull
)

// StateOf reports the bundle's selection state. Non-bundles are BundleNone.
func StateOf(bundle catalog.Entry, sel Selection) BundleState {
	if !bundle.IsBundle() {
		return BundleNone
	}
	subIDs := bundle.SubIDs()
	switch sel.CountOf(subIDs...) {
	case 0:
		return BundleNone
	case len(subIDs):
		return BundleFull
	default:
		return BundlePartial
	}
}

// NeedsPrerequisite reports whether choosing entry would pull in the
// prerequisite: it depends on it, the prerequisite is not selected and
// nothing of the entry is.
func NeedsPrerequisite(cat *catalog.Catalog, entry catalog.Entry, sel Selection) bool {
	if !entry.RequiresWebsite || sel.Has(cat.Prerequisite()) {
		return false
	}
	if entry.IsBundle() {
		return StateOf(entry, sel) == BundleNone
	}
	return !sel.Has(entry.ID)
}

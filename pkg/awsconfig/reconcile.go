package awsconfig

// ChangeSet reports what a reconciliation did, in document order. Callers use
// it for user-facing summaries and for the no-op check that skips writes and
// backup churn.
type ChangeSet struct {
	Added     []string
	Updated   []string
	Removed   []string
	Unchanged []string
}

// Changed reports whether the reconciled document differs from the input.
func (c *ChangeSet) Changed() bool {
	return len(c.Added) > 0 || len(c.Updated) > 0 || len(c.Removed) > 0
}

// ReconcileOption adjusts reconciliation behavior.
type ReconcileOption func(*reconcileOptions)

type reconcileOptions struct {
	pruneSession string
}

// PruneSessionProfiles removes profile sections bound to the given
// sso-session when the desired set no longer mentions them. This mirrors
// revoked roles: the profile set for a session must exactly match current
// entitlements. Sections bound to other sessions, hand-written profiles, and
// sso-session sections themselves are never pruned.
func PruneSessionProfiles(session string) ReconcileOption {
	return func(o *reconcileOptions) {
		o.pruneSession = session
	}
}

// Reconcile computes a new document from the current one and the desired
// sections. Desired sections replace same-header sections in place; new ones
// append at the end in caller order; everything else keeps its position and
// bytes. The function is pure and deterministic: output order depends only
// on current order and desired order, never on map iteration.
func Reconcile(current *Document, desired []DesiredSection, opts ...ReconcileOption) (*Document, *ChangeSet) {
	var options reconcileOptions
	for _, opt := range opts {
		opt(&options)
	}

	changes := &ChangeSet{}

	desiredIndex := make(map[string]int, len(desired))
	for i, d := range desired {
		desiredIndex[d.Header] = i
	}

	result := &Document{Preamble: append([]Line(nil), current.Preamble...)}
	replaced := make(map[string]bool, len(desired))

	for i := range current.Sections {
		existing := &current.Sections[i]

		if di, ok := desiredIndex[existing.Header]; ok {
			if replaced[existing.Header] {
				// A desired header may match duplicated sections in a
				// permissively parsed document. The first occurrence was
				// replaced; later duplicates are dropped to restore header
				// uniqueness.
				changes.Removed = append(changes.Removed, existing.Header)
				continue
			}
			replaced[existing.Header] = true

			replacement := desired[di].section()
			if renderSection(existing) == renderSection(&replacement) {
				// Byte-identical after canonicalization. Keep the existing
				// section so the document stays untouched.
				result.Sections = append(result.Sections, *existing)
				changes.Unchanged = append(changes.Unchanged, existing.Header)
				continue
			}
			result.Sections = append(result.Sections, replacement)
			changes.Updated = append(changes.Updated, existing.Header)
			continue
		}

		if options.pruneSession != "" && isStaleSessionProfile(existing, options.pruneSession) {
			changes.Removed = append(changes.Removed, existing.Header)
			continue
		}

		result.Sections = append(result.Sections, *existing)
		changes.Unchanged = append(changes.Unchanged, existing.Header)
	}

	for _, d := range desired {
		if replaced[d.Header] {
			continue
		}
		replaced[d.Header] = true
		result.Sections = append(result.Sections, d.section())
		changes.Added = append(changes.Added, d.Header)
	}

	return result, changes
}

// isStaleSessionProfile reports whether the section is a profile owned by
// the given sso-session. Ownership comes from the sso_session key in the
// body, not the header naming pattern: headers like `<account>-<role>` can
// collide across sessions or with hand-written profiles.
func isStaleSessionProfile(s *Section, session string) bool {
	if !s.IsProfile() {
		return false
	}
	bound, ok := s.Get(KeySSOSession)
	return ok && bound == session
}

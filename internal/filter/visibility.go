package filter

// Visibility builds the status and ownership predicate for a viewer.
//
// viewing is the profile being browsed, nil for the general listing. loggedIn is the
// authenticated viewer, nil for anonymous access. Admins see deleted, hidden and
// anonymous torrents; the profile uploader restriction still applies to them.
// RSS feeds never expose a viewer's private torrents.
func Visibility(viewing, loggedIn *int64, admin, rss bool) Expr {
	if viewing != nil {
		return profileVisibility(*viewing, loggedIn, admin, rss)
	}

	if admin {
		return nil
	}

	if loggedIn != nil && !rss {
		return All(
			Is(FieldDeleted, false),
			Or{Is(FieldHidden, false), Eq(FieldUploader, *loggedIn)},
		)
	}
	return All(Is(FieldDeleted, false), Is(FieldHidden, false))
}

func profileVisibility(viewing int64, loggedIn *int64, admin, rss bool) Expr {
	parts := []Expr{Eq(FieldUploader, viewing)}
	if admin {
		return All(parts...)
	}

	parts = append(parts, Is(FieldDeleted, false))

	owner := loggedIn != nil && *loggedIn == viewing
	if !owner || rss {
		parts = append(parts, Is(FieldHidden, false), Is(FieldAnonymous, false))
	}
	return All(parts...)
}

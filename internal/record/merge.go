package record

// Merge combines a freshly extracted list record with its prior counterpart.
// List-page data wins for every field the list page supplies: identity fields
// and the date/time/extras collections always take the fresh value, optional
// scalars take the fresh value when non-empty. Fields only a detail page can
// supply (remarks, downloads) survive from the prior record until enrichment
// replaces them. A nil prior returns the fresh record unchanged.
func Merge(prior, fresh *Record) *Record {
	if prior == nil {
		return fresh
	}

	merged := *prior
	merged.Title = fresh.Title
	merged.DetailURL = fresh.DetailURL
	merged.Dates = fresh.Dates
	merged.TimeInfo = fresh.TimeInfo
	merged.Extras = fresh.Extras
	merged.Category = fresh.Category

	if fresh.Location != "" {
		merged.Location = fresh.Location
	}
	if fresh.Note != "" {
		merged.Note = fresh.Note
	}
	if fresh.NoteURL != "" {
		merged.NoteURL = fresh.NoteURL
	}
	if fresh.Register != "" {
		merged.Register = fresh.Register
	}
	if fresh.RegisterURL != "" {
		merged.RegisterURL = fresh.RegisterURL
	}

	return &merged
}

// NeedsDetail reports whether a record should be queued for a detail-page
// fetch given its prior counterpart. A record with no prior always needs one.
// Otherwise the fetch is skipped only when the prior record already carries
// downloads, remarks, and registration info.
func NeedsDetail(prior *Record) bool {
	if prior == nil {
		return true
	}

	hasDownloads := len(prior.Downloads) > 0
	hasRemarks := prior.Remarks != ""
	hasRegister := prior.Register != "" || prior.RegisterURL != ""
	return !(hasDownloads && hasRemarks && hasRegister)
}

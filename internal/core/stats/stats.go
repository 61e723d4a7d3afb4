// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

// Package stats aggregates the dashboard numbers for admins and writers.
//
// Counts are computed in the database and cached briefly in Redis, so a
// dashboard poll does not rescan the content tables on every request.
package stats

// AdminStats is the platform-wide dashboard aggregate.
//
// PendingApplications counts writer applications whose status is pending,
// the same rows the review queue shows.
type AdminStats struct {
	TotalPosts          int `json:"total_posts"`
	TotalUsers          int `json:"total_users"`
	TotalComments       int `json:"total_comments"`
	PendingApplications int `json:"pending_applications"`
}

// WriterStats aggregates engagement over a single author's posts.
type WriterStats struct {
	Posts    int `json:"posts"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Views    int `json:"views"`
}

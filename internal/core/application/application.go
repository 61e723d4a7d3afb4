// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

/*
Package application implements the writer application lifecycle.

A member asks for writer privileges with a free-text justification; an
administrator approves or rejects it. The state machine is

	pending → approved | rejected

with both outcomes terminal. Applications are never deleted, they remain as
an audit trail of every privilege request.
*/
package application

import "time"

// # Domain Entities

// Status is the lifecycle state of a writer application.
type Status string

const (
	// StatusPending marks an application awaiting an admin decision.
	StatusPending Status = "pending"
	// StatusApproved marks a granted application. Terminal.
	StatusApproved Status = "approved"
	// StatusRejected marks a denied application. Terminal.
	StatusRejected Status = "rejected"
)

// ApplicantRef is the embedded applicant identity on listed applications.
type ApplicantRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// WriterApplication is a member's request for writer privileges.
type WriterApplication struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Applicant *ApplicantRef `json:"applicant,omitempty"`
	Message   string        `json:"message"`
	Status    Status        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldMessage = "message"
)

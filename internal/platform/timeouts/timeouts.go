// Package timeouts defines shared timeout constants.
package timeouts

import "time"

// TelemetryShutdown bounds the span flush when a process exits.
const TelemetryShutdown = 5 * time.Second

// MailLookup caps one mail reachability check for an email domain.
const MailLookup = 3 * time.Second

// Evaluation is the default budget for one offline lifecycle evaluation.
const Evaluation = 30 * time.Second

// Package catalog fetches the remote catalog and exposes it as a stream.
//
// # Wire format
//
// The service answers GET /api/catalog with either
//
//	{"items": [{"id": "org.example.app", "name": "Example", "iconUrl": "...",
//	            "description": "...", "category": "tools"}]}
//
// or a bare JSON array of the same objects.
//
// # Results
//
// Source.Fetch emits Loading first and then exactly one terminal Result.
// Success items are sorted by name, case-insensitively and stably. Error
// results carry a *fault.Error whose Kind distinguishes timeouts, other
// network failures, non-2xx responses and malformed payloads. A cancelled
// fetch emits nothing after Loading.
package catalog

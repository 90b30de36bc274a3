// Package api exposes study-material generation and the local credential
// check over HTTP.
//
// Routes:
//
//	POST /api/v1/study-materials  {"notes": "..."} -> {"questions": [...], "flashcards": [...]}
//	POST /api/v1/login            {"username": "...", "password": "..."} -> {"ok": true}
//	GET  /healthz
//
// The login endpoint issues no token and protects nothing; it mirrors the
// terminal login screen for clients that want the same check.
package api

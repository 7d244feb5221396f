// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the HTTP client for communicating with the
// ArogyaAI backend API.
package gateway

// StatusSuccess is the status literal the backend uses on every successful
// payload.
const StatusSuccess = "success"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// QueryRequest is the request body for the /api/query endpoint.
type QueryRequest struct {
	Query  string `json:"query"`   // Free-text health query
	UserID string `json:"user_id"` // Session identifier (default: "web_user")
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// QueryResponse is the response body from /api/query.
type QueryResponse struct {
	Status           string `json:"status"`                      // "success" on a well-formed answer
	Response         string `json:"response"`                    // The answer text, in the user's language
	Query            string `json:"query,omitempty"`             // Echo of the submitted query
	Source           string `json:"source,omitempty"`            // e.g. "multilingual-rasa"
	Message          string `json:"message,omitempty"`           // Backend message on non-success payloads
	DetectedLanguage string `json:"detected_language,omitempty"` // e.g. "Spanish"
	WasTranslated    bool   `json:"was_translated,omitempty"`    // True if query/answer passed through translation
	EnglishQuery     string `json:"english_query,omitempty"`     // The query after translation to English
}

// ErrorResponse is the error body the backend returns on non-2xx statuses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the response body from /health.
type HealthResponse struct {
	Status              string `json:"status"` // "healthy" when the API is up
	RasaAvailable       bool   `json:"rasa_available"`
	DiseasesLoaded      int    `json:"diseases_loaded"`
	MultilingualSupport bool   `json:"multilingual_support"`
	GroqAPIAvailable    bool   `json:"groq_api_available"`
}

// DiseasesResponse is the response body from /api/diseases. Disease order is
// the backend's catalog order and is preserved for display.
type DiseasesResponse struct {
	Status   string   `json:"status"`
	Diseases []string `json:"diseases"`
	Message  string   `json:"message,omitempty"`
}

// LanguagesResponse is the response body from /api/languages.
type LanguagesResponse struct {
	Status             string   `json:"status"`
	SupportedLanguages []string `json:"supported_languages"`
	Note               string   `json:"note,omitempty"`
}

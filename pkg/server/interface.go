/*
Package server implements msgpack IPC for trie completions.

Clients write msgpack maps to stdin and read one msgpack map per request from
stdout. Requests are processed in arrival order, one at a time, and every
response carries the ID of the request it answers.

# Completion

A completion request names a prefix, an optional limit and an optional session:

	{"id": "req_001", "p": "tr", "l": 24, "s": "7c1f..."}

The server answers with ranked suggestions, the time taken in microseconds and
the session the request ran in:

	{"id": "req_001", "s": [{"w": "trie", "r": 1}, {"w": "try", "r": 2}], "c": 2, "t": 31, "sid": "7c1f..."}

Sessions hold the query memory of one typing session, so a request that
extends the previous prefix of its session resumes the trie walk where the
last one stopped. A request without a session gets a fresh one, and its ID is
returned in "sid". Set "r" to drop the cached walk, e.g. after the user moved
the cursor to another word.

# Control

Control requests carry an action instead of a prefix:

	{"id": "c1", "action": "stats"}
	{"id": "c2", "action": "has", "word": "trie"}
	{"id": "c3", "action": "add", "word": "trampoline"}
	{"id": "c4", "action": "end_session", "s": "7c1f..."}
	{"id": "c5", "action": "save", "path": "data/words.bin"}

Failed requests are answered with a CompletionError holding an HTTP-like code.
*/
package server

// CompletionRequest asks for completions of Prefix.
type CompletionRequest struct {
	ID      string `msgpack:"id"`
	Prefix  string `msgpack:"p"`
	Limit   int    `msgpack:"l,omitempty"`
	Session string `msgpack:"s,omitempty"`
	Reset   bool   `msgpack:"r,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
	Session     string                 `msgpack:"sid"`
}

// Control actions.
const (
	ActionStats      = "stats"
	ActionHas        = "has"
	ActionAdd        = "add"
	ActionEndSession = "end_session"
	ActionSave       = "save"
)

// ControlRequest runs an action against the dictionary or the session table.
type ControlRequest struct {
	ID      string `msgpack:"id"`
	Action  string `msgpack:"action"`
	Word    string `msgpack:"word,omitempty"` // has, add
	Path    string `msgpack:"path,omitempty"` // save
	Session string `msgpack:"s,omitempty"`    // end_session
}

// ControlResponse - control operation response
type ControlResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
	Found  *bool          `msgpack:"found,omitempty"`
	Path   string         `msgpack:"path,omitempty"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// request is what the server decodes: the union of both request kinds.
// A non-empty Action makes it a control request.
type request struct {
	ID      string `msgpack:"id"`
	Prefix  string `msgpack:"p"`
	Limit   int    `msgpack:"l"`
	Session string `msgpack:"s"`
	Reset   bool   `msgpack:"r"`
	Action  string `msgpack:"action"`
	Word    string `msgpack:"word"`
	Path    string `msgpack:"path"`
}

// Error codes.
const (
	codeBadRequest = 400
	codeNotFound   = 404
	codeInternal   = 500
)

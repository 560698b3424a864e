package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshotSaver is implemented by completers that can persist themselves.
type snapshotSaver interface {
	SaveSnapshot(path string) error
}

// Server handles the IPC for word completions
type Server struct {
	completer    suggest.ICompleter
	config       *config.Config
	sessions     *sessionCache
	decoder      *msgpack.Decoder
	writer       *bufio.Writer
	encoder      *msgpack.Encoder
	requestCount int
}

// NewServer creates a completion server using stdin/stdout for IPC.
func NewServer(completer suggest.ICompleter, cfg *config.Config) *Server {
	return NewServerIO(completer, cfg, os.Stdin, os.Stdout)
}

// NewServerIO creates a completion server reading requests from r and
// writing responses to w.
func NewServerIO(completer suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	writer := bufio.NewWriter(w)
	return &Server{
		completer: completer,
		config:    cfg,
		sessions:  newSessionCache(cfg.Server.MaxSessions),
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		writer:    writer,
		encoder:   msgpack.NewEncoder(writer),
	}
}

// Start serves requests until the input is closed. It returns nil on a clean
// end of input and an error if the stream breaks mid-message.
func (s *Server) Start() error {
	log.Debug("Starting server")

	for {
		// one raw value per request, so a message of the wrong shape does
		// not desync the stream
		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return fmt.Errorf("failed to read request: %w", err)
		}
		s.requestCount++
		s.handleRequest(raw)
	}
}

// handleRequest decodes one message and dispatches it by kind.
func (s *Server) handleRequest(raw msgpack.RawMessage) {
	var req request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "invalid request", codeBadRequest)
		return
	}

	if req.Action != "" {
		s.handleControl(req)
		return
	}
	s.handleComplete(req)
}

// handleComplete validates a completion request, runs it in its session and
// sends the ranked suggestions.
func (s *Server) handleComplete(req request) {
	cfg := s.config.Server
	prefix := req.Prefix

	n := utf8.RuneCountInString(prefix)
	if n < cfg.MinPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix must be at least %d characters", cfg.MinPrefix), codeBadRequest)
		return
	}
	if n > cfg.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", cfg.MaxPrefix), codeBadRequest)
		return
	}

	limit, err := s.clampLimit(req.Limit)
	if err != nil {
		s.sendError(req.ID, err.Error(), codeBadRequest)
		return
	}

	sid := req.Session
	if sid == "" {
		sid = uuid.NewString()
	}

	if cfg.EnableFilter && prefix != "" && !utils.IsValidInput(prefix) {
		log.Debugf("Filtered prefix '%s'", prefix)
		s.sendResponse(CompletionResponse{ID: req.ID, Suggestions: []CompletionSuggestion{}, Session: sid})
		return
	}

	start := time.Now()
	mem, ok := s.sessions.Get(sid)
	switch {
	case !ok:
		mem = s.completer.MemoryFrom(prefix)
		s.sessions.Put(sid, mem)
	case req.Reset:
		s.completer.UpdateAndResetWord(mem, prefix)
	default:
		s.completer.UpdateWord(mem, prefix)
	}
	words := s.completer.SuggestedWords(mem, limit)
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(words))
	suggestions := make([]CompletionSuggestion, len(words))
	for i, w := range words {
		suggestions[i] = CompletionSuggestion{Word: w, Rank: ranks[i]}
	}

	log.Debugf("Took [ %v ] for prefix '%s' in session %s", elapsed, prefix, sid)
	s.sendResponse(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
		Session:     sid,
	})
}

// clampLimit applies the CLI default to a missing limit and caps it at max_limit.
func (s *Server) clampLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, fmt.Errorf("limit cannot be negative, got %d", limit)
	case limit == 0:
		limit = s.config.CLI.DefaultLimit
	}
	if limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}
	return max(limit, 1), nil
}

func (s *Server) handleControl(req request) {
	switch req.Action {
	case ActionStats:
		stats := s.completer.Stats()
		for k, v := range s.sessions.Stats() {
			stats[k] = v
		}
		s.sendResponse(ControlResponse{ID: req.ID, Status: "ok", Stats: stats})

	case ActionHas:
		if req.Word == "" {
			s.sendError(req.ID, "missing 'word'", codeBadRequest)
			return
		}
		found := s.completer.Has(req.Word)
		s.sendResponse(ControlResponse{ID: req.ID, Status: "ok", Found: &found})

	case ActionAdd:
		if req.Word == "" {
			s.sendError(req.ID, "missing 'word'", codeBadRequest)
			return
		}
		s.completer.AddWord(req.Word)
		log.Debugf("Added word '%s'", req.Word)
		s.sendResponse(ControlResponse{ID: req.ID, Status: "ok"})

	case ActionEndSession:
		if !s.sessions.Remove(req.Session) {
			s.sendError(req.ID, fmt.Sprintf("unknown session '%s'", req.Session), codeNotFound)
			return
		}
		s.sendResponse(ControlResponse{ID: req.ID, Status: "ok"})

	case ActionSave:
		s.handleSave(req)

	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), codeBadRequest)
	}
}

// handleSave writes a snapshot to the requested path, or to the configured
// snapshot path when none is given.
func (s *Server) handleSave(req request) {
	saver, ok := s.completer.(snapshotSaver)
	if !ok {
		s.sendError(req.ID, "completer cannot be saved", codeInternal)
		return
	}
	path := req.Path
	if path == "" {
		path = s.config.Dict.Snapshot
	}
	if path == "" {
		s.sendError(req.ID, "no snapshot path given or configured", codeBadRequest)
		return
	}
	if err := saver.SaveSnapshot(path); err != nil {
		log.Errorf("Saving snapshot to %s: %v", path, err)
		s.sendError(req.ID, err.Error(), codeInternal)
		return
	}
	log.Debugf("Saved snapshot to %s", path)
	s.sendResponse(ControlResponse{ID: req.ID, Status: "ok", Path: path})
}

// sendResponse encodes one response and flushes it to the client.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Marshaling response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(CompletionError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}

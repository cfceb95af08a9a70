package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kc31/smsrelay/internal/api"
	"github.com/kc31/smsrelay/internal/common"
	"github.com/kc31/smsrelay/internal/inbox"
	"github.com/kc31/smsrelay/internal/logging"
	"github.com/kc31/smsrelay/internal/models"
	"github.com/kc31/smsrelay/internal/prefs"
)

// ClientFactory builds an API client for the given base URL. The session
// constructs a fresh client per operation because the URL is an editable
// setting.
type ClientFactory func(baseURL string) api.Client

// Session is the application state machine. It owns the in-memory message
// list, the sender selection, and the current result state, and it runs the
// six tracked operations: save settings, fetch token, fetch senders, fetch
// messages, send message, hide message.
//
// Methods are safe for concurrent use. The mutex guards state snapshots and
// publications; it is never held across store queries or network calls, so
// independent operations do not block each other. Concurrent list mutations
// resolve as last-write-wins.
type Session struct {
	prefs     *prefs.Preferences
	inbox     inbox.Reader
	newClient ClientFactory
	log       logging.Logger

	// test seam for the time-window resolver
	now func() time.Time

	mu               sync.Mutex
	serverURL        string
	email            string
	password         string
	senderList       string
	searchQuery      string
	timeFilter       models.TimeFilter
	availableSenders []string
	selectedSenders  map[string]struct{}
	messages         []models.Message

	result     Result
	saveOp     OpState
	tokenOp    OpState
	sendersOp  OpState
	messagesOp OpState
	sendOp     OpState
	hideOp     OpState
}

// NewSession constructs a session over the given collaborators. The result
// state starts as Initial and the time filter as "today".
func NewSession(p *prefs.Preferences, r inbox.Reader, factory ClientFactory, log logging.Logger) *Session {
	return &Session{
		prefs:           p,
		inbox:           r,
		newClient:       factory,
		log:             log,
		now:             time.Now,
		timeFilter:      models.FilterToday,
		selectedSenders: make(map[string]struct{}),
		result:          Result{Kind: ResultInitial},
	}
}

// Initialize loads the persisted settings into the session and seeds the
// selected-sender set from the legacy comma-joined list.
func (s *Session) Initialize(ctx context.Context) error {
	url, err := s.prefs.ServerURL(ctx)
	if err != nil {
		return err
	}
	email, err := s.prefs.Email(ctx)
	if err != nil {
		return err
	}
	password, err := s.prefs.Password(ctx)
	if err != nil {
		return err
	}
	senderList, err := s.prefs.SenderList(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverURL = url
	s.email = email
	s.password = password
	s.senderList = senderList
	if senderList != "" {
		s.selectedSenders = parseSenderList(senderList)
	}
	return nil
}

// --- field updates ---

func (s *Session) SetServerURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverURL = url
}

func (s *Session) SetEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = email
}

func (s *Session) SetPassword(password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = password
}

func (s *Session) SetSenderList(senderList string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.senderList = senderList
}

// SetSelectedSenders replaces the selection set and rewrites the legacy
// comma-joined string for backward compatibility.
func (s *Session) SetSelectedSenders(selected map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSenders = copySet(selected)
	s.senderList = strings.Join(sortedKeys(selected), ",")
}

func (s *Session) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

func (s *Session) SetTimeFilter(filter models.TimeFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeFilter = filter
}

// --- state accessors ---

func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *Session) Settings() (serverURL, email, password, senderList string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverURL, s.email, s.password, s.senderList
}

func (s *Session) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) AvailableSenders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.availableSenders))
	copy(out, s.availableSenders)
	return out
}

func (s *Session) SelectedSenders() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySet(s.selectedSenders)
}

func (s *Session) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

func (s *Session) TimeFilter() models.TimeFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeFilter
}

// FilteredSenders applies the current search query and selection to the
// available-sender list.
func (s *Session) FilteredSenders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilteredSenders(s.availableSenders, s.searchQuery, s.selectedSenders)
}

func (s *Session) SaveState() OpState     { return s.opState(&s.saveOp) }
func (s *Session) TokenState() OpState    { return s.opState(&s.tokenOp) }
func (s *Session) SendersState() OpState  { return s.opState(&s.sendersOp) }
func (s *Session) MessagesState() OpState { return s.opState(&s.messagesOp) }
func (s *Session) SendState() OpState     { return s.opState(&s.sendOp) }
func (s *Session) HideState() OpState     { return s.opState(&s.hideOp) }

func (s *Session) opState(op *OpState) OpState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *op
}

// begin marks op as running and, when loading is true, moves the shared
// result to Loading.
func (s *Session) begin(op *OpState, subject string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*op = OpState{Status: OpRunning, Subject: subject}
	if loading {
		s.result = Result{Kind: ResultLoading}
	}
}

// finish publishes res as the shared result and settles op.
func (s *Session) finish(op *OpState, res Result) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = res
	status := OpSucceeded
	if res.Kind == ResultError {
		status = OpFailed
	}
	*op = OpState{Status: status, Message: res.Message}
	return res
}

// --- operations ---

// SaveSettings persists URL, email, password and the sender list
// unconditionally. No validation is applied.
func (s *Session) SaveSettings(ctx context.Context) Result {
	s.begin(&s.saveOp, "", false)

	s.mu.Lock()
	url, email, password, senderList := s.serverURL, s.email, s.password, s.senderList
	s.mu.Unlock()

	persist := func() error {
		if err := s.prefs.SaveServerURL(ctx, url); err != nil {
			return err
		}
		if err := s.prefs.SaveEmail(ctx, email); err != nil {
			return err
		}
		if err := s.prefs.SavePassword(ctx, password); err != nil {
			return err
		}
		return s.prefs.SaveSenderList(ctx, senderList)
	}

	if err := persist(); err != nil {
		s.log.Error(ctx, "settings save failed", "error", err)
		return s.finish(&s.saveOp, failure(fmt.Sprintf("Failed to save user data: %v", err), err))
	}

	s.log.Info(ctx, "settings saved")
	return s.finish(&s.saveOp, success("User data saved successfully"))
}

// FetchToken authenticates against the configured server and persists the
// returned access token. Required fields are checked in order (URL, email,
// password); the first empty one aborts without a network call. Nothing is
// retried.
func (s *Session) FetchToken(ctx context.Context) Result {
	s.begin(&s.tokenOp, "", true)

	s.mu.Lock()
	url, email, password := s.serverURL, s.email, s.password
	s.mu.Unlock()

	if url == "" {
		return s.finish(&s.tokenOp, failure("Server URL cannot be empty", common.ErrValidation))
	}
	if email == "" {
		return s.finish(&s.tokenOp, failure("Email cannot be empty", common.ErrValidation))
	}
	if password == "" {
		return s.finish(&s.tokenOp, failure("Password cannot be empty", common.ErrValidation))
	}

	resp, err := s.newClient(url).Authenticate(ctx, email, password)
	if err != nil {
		s.log.Error(ctx, "authentication failed", "error", err)
		return s.finish(&s.tokenOp, failure(fmt.Sprintf("Authentication failed: %v", err), err))
	}

	if err := s.prefs.SaveAccessToken(ctx, resp.AccessToken); err != nil {
		s.log.Error(ctx, "token save failed", "error", err)
		return s.finish(&s.tokenOp, failure(fmt.Sprintf("Authentication failed: %v", err), err))
	}

	s.log.Info(ctx, "authenticated", "user", resp.User.Email)
	return s.finish(&s.tokenOp, success("Authentication successful"))
}

// FetchSenders enumerates the distinct senders in the inbox and replaces the
// available-sender list. If nothing is selected yet but a legacy comma-joined
// list exists, the selection is seeded from it.
func (s *Session) FetchSenders(ctx context.Context) Result {
	s.begin(&s.sendersOp, "", true)

	senders, err := s.inbox.DistinctSenders(ctx)
	if err != nil {
		s.log.Error(ctx, "sender fetch failed", "error", err)
		return s.finish(&s.sendersOp, failure(fmt.Sprintf("Failed to fetch senders: %v", err), err))
	}

	s.mu.Lock()
	s.availableSenders = senders
	if s.senderList != "" && len(s.selectedSenders) == 0 {
		s.selectedSenders = parseSenderList(s.senderList)
	}
	s.mu.Unlock()

	s.log.Info(ctx, "senders fetched", "count", len(senders))
	return s.finish(&s.sendersOp, success(fmt.Sprintf("Found %d unique senders", len(senders))))
}

// FetchMessages resolves the sender set (selection first, legacy string as
// fallback), the time-window lower bound and the excluded-ID set, queries the
// inbox, and replaces the in-memory message list wholesale. A zero-count
// fetch is a Success, not an error.
func (s *Session) FetchMessages(ctx context.Context) Result {
	s.begin(&s.messagesOp, "", true)

	s.mu.Lock()
	selected := sortedKeys(s.selectedSenders)
	senderList := s.senderList
	filter := s.timeFilter
	s.mu.Unlock()

	senders := selected
	if len(senders) == 0 {
		if senderList == "" {
			return s.finish(&s.messagesOp, failure("Sender list cannot be empty", common.ErrValidation))
		}
		senders = sortedKeys(parseSenderList(senderList))
		if len(senders) == 0 {
			return s.finish(&s.messagesOp, failure("Sender list cannot be empty", common.ErrValidation))
		}
	}

	excluded, err := s.prefs.SentIDs(ctx)
	if err != nil {
		s.log.Error(ctx, "excluded-id read failed", "error", err)
		return s.finish(&s.messagesOp, failure(fmt.Sprintf("Failed to fetch SMS messages: %v", err), err))
	}

	now := s.now()
	startTime := StartTime(filter, now).UnixMilli()

	list, err := s.inbox.Query(ctx, senders, startTime, excluded)
	if err != nil {
		s.log.Error(ctx, "message fetch failed", "error", err)
		return s.finish(&s.messagesOp, failure(fmt.Sprintf("Failed to fetch SMS messages: %v", err), err))
	}

	s.mu.Lock()
	s.messages = list
	s.mu.Unlock()

	if err := s.prefs.SaveLastFetchTimestamp(ctx, now.UnixMilli()); err != nil {
		s.log.Error(ctx, "last-fetch timestamp save failed", "error", err)
		return s.finish(&s.messagesOp, failure(fmt.Sprintf("Failed to fetch SMS messages: %v", err), err))
	}

	s.log.Info(ctx, "messages fetched", "count", len(list), "filter", string(filter))
	if len(list) == 0 {
		return s.finish(&s.messagesOp, success("No SMS messages found for the selected time period"))
	}
	return s.finish(&s.messagesOp, success(fmt.Sprintf("%d SMS messages fetched successfully", len(list))))
}

// SendMessage forwards the body of the identified message, with the
// formatted-timestamp suffix, to the remote service. On success the ID is
// recorded in the excluded set and the message leaves the in-memory list; on
// failure both stay untouched so a retry remains possible.
func (s *Session) SendMessage(ctx context.Context, id string) Result {
	s.begin(&s.sendOp, id, true)

	s.mu.Lock()
	url := s.serverURL
	var msg *models.Message
	for i := range s.messages {
		if s.messages[i].ID == id {
			m := s.messages[i]
			msg = &m
			break
		}
	}
	s.mu.Unlock()

	if msg == nil {
		return s.finish(&s.sendOp, failure("Message not found", nil))
	}
	if url == "" {
		return s.finish(&s.sendOp, failure("Server URL cannot be empty", common.ErrValidation))
	}

	token, err := s.prefs.AccessToken(ctx)
	if err != nil {
		s.log.Error(ctx, "token read failed", "error", err)
		return s.finish(&s.sendOp, failure(fmt.Sprintf("Failed to send SMS content: %v", err), err))
	}
	if token == "" {
		return s.finish(&s.sendOp, failure("Access token is not available. Please fetch token first.", nil))
	}

	body := msg.Body + "\n SMS Received at :" + FormatTimestamp(msg.Timestamp)
	if err := s.newClient(url).SendMessage(ctx, token, body); err != nil {
		s.log.Error(ctx, "message send failed", "id", id, "error", err)
		return s.finish(&s.sendOp, failure(fmt.Sprintf("Failed to send SMS content: %v", err), err))
	}

	if err := s.prefs.AddSentID(ctx, id); err != nil {
		s.log.Error(ctx, "sent-id record failed", "id", id, "error", err)
		return s.finish(&s.sendOp, failure(fmt.Sprintf("Failed to send SMS content: %v", err), err))
	}

	s.removeMessage(id)
	s.log.Info(ctx, "message sent", "id", id)
	return s.finish(&s.sendOp, success("SMS content sent successfully"))
}

// HideMessage removes the message from the in-memory list and records its ID
// in the excluded set without any network call. The in-memory removal happens
// first and is not rolled back if the persistence write fails.
func (s *Session) HideMessage(ctx context.Context, id string) Result {
	s.begin(&s.hideOp, id, false)

	s.removeMessage(id)

	if err := s.prefs.AddSentID(ctx, id); err != nil {
		s.log.Error(ctx, "hidden-id record failed", "id", id, "error", err)
		return s.finish(&s.hideOp, failure(fmt.Sprintf("Failed to hide SMS: %v", err), err))
	}

	s.log.Info(ctx, "message hidden", "id", id)
	return s.finish(&s.hideOp, success("SMS hidden successfully"))
}

func (s *Session) removeMessage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.messages[:0]
	for _, m := range s.messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.messages = kept
}

// --- helpers ---

func parseSenderList(senderList string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Split(senderList, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			set[token] = struct{}{}
		}
	}
	return set
}

func copySet(set map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(set))
	for k := range set {
		out[k] = struct{}{}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

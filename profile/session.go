package profile

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"spill/models"
)

// State is the phase of one edit session's submission.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateRejected   State = "rejected"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

const (
	// DefaultSuccessDelay keeps the success message visible before navigating away.
	DefaultSuccessDelay = 1500 * time.Millisecond
	// NoticeTTL is how long a rejected-attachment notice stays visible.
	NoticeTTL = 5 * time.Second
)

// RecordFetcher loads the authenticated caller's record.
type RecordFetcher interface {
	Login(ctx context.Context) (*models.UserRecord, error)
}

// Submitter sends a validated update, with or without photo attachments, and
// returns the record as the backend stored it.
type Submitter interface {
	UpdateMe(ctx context.Context, update ValidatedUpdate) (*models.UserRecord, error)
	UpdateMeWithPhotos(ctx context.Context, update ValidatedUpdate, photos []models.Attachment) (*models.UserRecord, error)
}

// Backend is the remote API as the edit screen uses it.
type Backend interface {
	RecordFetcher
	Submitter
}

type Option func(*EditSession)

func WithLogger(logger *zap.Logger) Option {
	return func(s *EditSession) { s.logger = logger }
}

// WithSuccessDelay sets the pause before the success callback; zero runs it
// right after the submission returns.
func WithSuccessDelay(d time.Duration) Option {
	return func(s *EditSession) { s.successDelay = d }
}

// WithOnSuccess registers the post-success side effect, usually navigation.
func WithOnSuccess(fn func(models.UserRecord)) Option {
	return func(s *EditSession) { s.onSuccess = fn }
}

func WithMaxAttachmentBytes(n int64) Option {
	return func(s *EditSession) { s.maxAttachmentBytes = n }
}

func WithPreviewStore(store *PreviewStore) Option {
	return func(s *EditSession) { s.previews = store }
}

func WithClock(now func() time.Time) Option {
	return func(s *EditSession) { s.now = now }
}

// EditSession owns the editable state of one profile screen and runs
// submissions through idle, validating, rejected, submitting, succeeded and
// failed. One screen owns one session; methods are safe to call from the
// screen's event handlers and from a submission in flight.
type EditSession struct {
	mu        sync.Mutex
	submitter Submitter
	logger    *zap.Logger
	now       func() time.Time

	original    models.UserRecord
	form        models.ProfileForm
	generation  uint64
	previews    *PreviewStore
	attachments *AttachmentSet

	maxAttachmentBytes int64

	state       State
	validation  *ValidationError
	failure     error
	notice      string
	noticeUntil time.Time

	successDelay time.Duration
	onSuccess    func(models.UserRecord)
	timer        *time.Timer
	closed       bool
}

// NewEditSession seeds a session from a freshly fetched record.
func NewEditSession(record models.UserRecord, submitter Submitter, opts ...Option) *EditSession {
	s := &EditSession{
		submitter:    submitter,
		logger:       zap.NewNop(),
		now:          time.Now,
		original:     record,
		form:         models.NewProfileForm(record),
		state:        StateIdle,
		successDelay: DefaultSuccessDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.previews == nil {
		s.previews = NewPreviewStore(DefaultPreviewSide)
	}
	s.attachments = NewAttachmentSet(s.maxAttachmentBytes, s.previews)
	return s
}

// Open fetches the caller's record and starts a session on it. Records are
// never cached between mounts.
func Open(ctx context.Context, backend Backend, opts ...Option) (*EditSession, error) {
	record, err := backend.Login(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if record == nil {
		return nil, ErrEmptyResponse
	}
	return NewEditSession(*record, backend, opts...), nil
}

func (s *EditSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Original returns the last record confirmed by the backend.
func (s *EditSession) Original() models.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original
}

// Form returns a copy of the current form state.
func (s *EditSession) Form() models.ProfileForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Clone()
}

// Pending returns the update a submit would send right now.
func (s *EditSession) Pending() models.UserUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Diff(s.original, s.form)
}

// ValidationErrors returns the field errors of the last rejected submit.
func (s *EditSession) ValidationErrors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.validation == nil {
		return nil
	}
	out := make(map[string]string, len(s.validation.Fields))
	for k, v := range s.validation.Fields {
		out[k] = v
	}
	return out
}

// Failure returns the message to show for the last failed submit and the
// underlying error.
func (s *EditSession) Failure() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FailureMessage(s.failure), s.failure
}

// Notice returns the transient attachment rejection message, "" once expired.
func (s *EditSession) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == "" || !s.now().Before(s.noticeUntil) {
		s.notice = ""
		return ""
	}
	return s.notice
}

// Edit applies fn to the form.
func (s *EditSession) Edit(fn func(form *models.ProfileForm)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touchLocked(); err != nil {
		return err
	}
	fn(&s.form)
	return nil
}

// AddInterest appends a trimmed interest; blanks and duplicates are refused.
func (s *EditSession) AddInterest(interest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touchLocked(); err != nil {
		return err
	}
	var err error
	s.form.Interests, err = appendUnique(s.form.Interests, interest)
	return err
}

func (s *EditSession) RemoveInterest(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touchLocked(); err != nil {
		return err
	}
	var err error
	s.form.Interests, err = removeAt(s.form.Interests, i)
	return err
}

// AddPhotoURL appends a trimmed photo URL; blanks and duplicates are refused.
func (s *EditSession) AddPhotoURL(raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touchLocked(); err != nil {
		return err
	}
	var err error
	s.form.PhotoURLs, err = appendUnique(s.form.PhotoURLs, raw)
	return err
}

func (s *EditSession) RemovePhotoURL(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touchLocked(); err != nil {
		return err
	}
	var err error
	s.form.PhotoURLs, err = removeAt(s.form.PhotoURLs, i)
	return err
}

// SetSocialLink adds or replaces the link for a platform, matched case
// insensitively. Links without an http(s) scheme get https:// in front.
func (s *EditSession) SetSocialLink(platform models.SocialPlatform, link string) error {
	platform, ok := models.ParseSocialPlatform(string(platform))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedPlatform, platform)
	}
	link = strings.TrimSpace(link)
	if link == "" {
		return ErrBlankValue
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		link = "https://" + link
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touchLocked(); err != nil {
		return err
	}
	if s.form.SocialLinks == nil {
		s.form.SocialLinks = models.SocialLinks{}
	}
	s.form.SocialLinks[platform] = link
	return nil
}

func (s *EditSession) RemoveSocialLink(platform models.SocialPlatform) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touchLocked(); err != nil {
		return err
	}
	delete(s.form.SocialLinks, platform)
	return nil
}

// AvailablePlatforms lists the platforms that have no link yet.
func (s *EditSession) AvailablePlatforms() []models.SocialPlatform {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SocialPlatform
	for _, p := range models.SocialPlatforms {
		if _, taken := s.form.SocialLinks[p]; !taken {
			out = append(out, p)
		}
	}
	return out
}

// AddAttachments checks and keeps picked photos. Rejected files never enter
// the session; their reasons are joined into a transient notice and returned.
func (s *EditSession) AddAttachments(files ...models.Attachment) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touchLocked(); err != nil {
		return 0, err
	}

	added := 0
	var errs []error
	var msgs []string
	for _, f := range files {
		ok, err := s.attachments.Add(f)
		if err != nil {
			errs = append(errs, err)
			msgs = append(msgs, err.Error())
			continue
		}
		if ok {
			added++
		}
	}
	if len(msgs) > 0 {
		s.notice = strings.Join(msgs, ", ")
		s.noticeUntil = s.now().Add(NoticeTTL)
		s.logger.Warn("attachments rejected",
			zap.Int64("user_id", s.original.ID),
			zap.Strings("reasons", msgs))
	}
	return added, errors.Join(errs...)
}

// RemoveAttachment drops a picked photo and releases its preview.
func (s *EditSession) RemoveAttachment(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touchLocked(); err != nil {
		return err
	}
	return s.attachments.Remove(i)
}

func (s *EditSession) Attachments() []models.Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attachments.Attachments()
}

// AttachmentPreview returns the thumbnail of the attachment at index i.
func (s *EditSession) AttachmentPreview(i int) (*Preview, bool) {
	s.mu.Lock()
	id, ok := s.attachments.Preview(i)
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	return s.previews.Get(id)
}

// Submit diffs the form against the last confirmed record at this moment,
// validates the result and sends it: as JSON, or as one multipart request when
// photos are attached. A second Submit while one is in flight fails with
// ErrSubmitInProgress. Retrying is up to the caller.
func (s *EditSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return ErrSubmitInProgress
	}

	s.state = StateValidating
	s.validation = nil
	s.failure = nil

	update := Diff(s.original, s.form)
	photos := s.attachments.Attachments()
	photoIDs := s.attachments.ids()
	if update.IsEmpty() && len(photos) == 0 {
		s.state = StateIdle
		s.mu.Unlock()
		return ErrNoChanges
	}

	validated, err := Validate(update)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.validation = verr
		}
		s.state = StateRejected
		s.logger.Info("profile update rejected",
			zap.Int64("user_id", s.original.ID),
			zap.Error(err))
		s.mu.Unlock()
		return err
	}

	s.state = StateSubmitting
	baseline := s.original
	generation := s.generation
	userID := s.original.ID
	s.mu.Unlock()

	s.logger.Info("submitting profile update",
		zap.Int64("user_id", userID),
		zap.Strings("fields", update.Fields()),
		zap.Int("photos", len(photos)))

	var record *models.UserRecord
	if len(photos) > 0 {
		record, err = s.submitter.UpdateMeWithPhotos(ctx, *validated, photos)
	} else {
		record, err = s.submitter.UpdateMe(ctx, *validated)
	}
	if err == nil && record == nil {
		err = ErrEmptyResponse
	}

	s.mu.Lock()
	if err != nil {
		s.state = StateFailed
		s.failure = err
		s.mu.Unlock()
		s.logger.Error("profile update failed",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return err
	}

	s.state = StateSucceeded
	if s.closed {
		s.mu.Unlock()
		s.logger.Info("profile updated after session closed", zap.Int64("user_id", userID))
		return nil
	}
	s.original = *record
	if s.generation == generation {
		s.form = models.NewProfileForm(*record)
	} else {
		s.form.PhotoURLs = appendUploaded(s.form.PhotoURLs, baseline.PhotoURLs, record.PhotoURLs)
	}
	s.attachments.removeIDs(photoIDs)
	callback := s.scheduleSuccessLocked(*record)
	s.mu.Unlock()

	s.logger.Info("profile updated", zap.Int64("user_id", userID))
	if callback != nil {
		callback()
	}
	return nil
}

// Close releases every attachment preview and cancels a pending success
// callback. The session rejects further use.
func (s *EditSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.attachments.Clear()
}

// touchLocked records a user action: a rejected, failed or finished submit
// goes back to idle.
func (s *EditSession) touchLocked() error {
	if s.closed {
		return ErrSessionClosed
	}
	switch s.state {
	case StateRejected, StateFailed, StateSucceeded:
		s.state = StateIdle
	}
	s.generation++
	return nil
}

// scheduleSuccessLocked arms the success callback. With no delay it returns
// the callback for the caller to run once the lock is released.
func (s *EditSession) scheduleSuccessLocked(record models.UserRecord) func() {
	if s.onSuccess == nil {
		return nil
	}
	fn := s.onSuccess
	if s.successDelay <= 0 {
		return func() { fn(record) }
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.successDelay, func() { fn(record) })
	return nil
}

func appendUnique(items []string, value string) ([]string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return items, ErrBlankValue
	}
	if slices.Contains(items, value) {
		return items, ErrDuplicateValue
	}
	return append(items, value), nil
}

func removeAt(items []string, i int) ([]string, error) {
	if i < 0 || i >= len(items) {
		return items, ErrIndexOutOfRange
	}
	return slices.Delete(slices.Clone(items), i, i+1), nil
}

// appendUploaded adds URLs the backend created for uploaded photos to a form
// that was edited while the upload was in flight.
func appendUploaded(form, before, after []string) []string {
	for _, u := range after {
		if !slices.Contains(before, u) && !slices.Contains(form, u) {
			form = append(form, u)
		}
	}
	return form
}

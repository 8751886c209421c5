package booking

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"poojaseva/database/repository"
	"poojaseva/models"
)

var testNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func price(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

type fakeRepo struct {
	mu        sync.Mutex
	bookings  map[string]models.Booking
	createErr error
	creates   int
	calls     int
}

func newFakeRepo(seed ...models.Booking) *fakeRepo {
	r := &fakeRepo{bookings: map[string]models.Booking{}}
	for _, b := range seed {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	b, ok := r.bookings[id]
	if !ok || b.IsDeleted {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID && !b.IsDeleted {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var out []models.Booking
	for _, b := range r.bookings {
		if deref(b.ProviderID) == providerID && !b.IsDeleted {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListUnassigned(ctx context.Context, onOrBefore string, limit int64) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var out []models.Booking
	for _, b := range r.bookings {
		if b.NeedsAssignment() && !b.IsDeleted && b.Date <= onOrBefore {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) TransitionStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus) (*models.Booking, error) {
	return r.mutate(id, func(b *models.Booking) bool {
		if !slices.Contains(from, b.Status) {
			return false
		}
		b.Status = to
		return true
	})
}

func (r *fakeRepo) AssignProvider(ctx context.Context, id, providerID, providerName string) (*models.Booking, error) {
	return r.mutate(id, func(b *models.Booking) bool {
		if !b.NeedsAssignment() {
			return false
		}
		b.ProviderID = strPtr(providerID)
		b.ProviderName = providerName
		return true
	})
}

func (r *fakeRepo) ReleaseProvider(ctx context.Context, id, providerID string) (*models.Booking, error) {
	return r.mutate(id, func(b *models.Booking) bool {
		if b.Status != models.StatusPending || deref(b.ProviderID) != providerID {
			return false
		}
		b.ProviderID = nil
		b.ProviderName = ""
		if !slices.Contains(b.DeclinedBy, providerID) {
			b.DeclinedBy = append(b.DeclinedBy, providerID)
		}
		return true
	})
}

func (r *fakeRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.mutate(id, func(b *models.Booking) bool {
		b.IsDeleted = true
		return true
	})
	return err
}

func (r *fakeRepo) mutate(id string, fn func(b *models.Booking) bool) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	b, ok := r.bookings[id]
	if !ok || b.IsDeleted {
		return nil, repository.ErrNotFound
	}
	if !fn(&b) {
		return nil, repository.ErrConflict
	}
	b.UpdatedAt = testNow
	r.bookings[id] = b
	return &b, nil
}

// setStatus changes a stored booking behind the service's back.
func (r *fakeRepo) setStatus(id string, status models.BookingStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bookings[id]
	b.Status = status
	r.bookings[id] = b
}

type fakePoojas struct {
	poojas map[string]models.Pooja
	calls  int
}

func (f *fakePoojas) GetPoojaByID(ctx context.Context, id string) (*models.Pooja, error) {
	f.calls++
	p, ok := f.poojas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

type fakeProviders map[string]models.Provider

func (f fakeProviders) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	p, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

type fakeMatching struct {
	ranked        []models.EligibleProvider
	err           error
	excluded      [][]string
	invalidations int
}

func (f *fakeMatching) EligibleProviders(ctx context.Context, poojaID, templeID string) ([]models.EligibleProvider, error) {
	return f.ranked, f.err
}

func (f *fakeMatching) RankFor(ctx context.Context, pooja models.Pooja, templeID string, exclude []string) ([]models.EligibleProvider, error) {
	f.excluded = append(f.excluded, exclude)
	if f.err != nil {
		return nil, f.err
	}
	var out []models.EligibleProvider
	for _, p := range f.ranked {
		if !slices.Contains(exclude, p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeMatching) InvalidateDirectory(ctx context.Context) error {
	f.invalidations++
	return nil
}

type fakeLists struct {
	providers [][]string
	users     [][]string
}

func (f *fakeLists) GetProviderList(ctx context.Context, providerID string) ([]models.Booking, bool, error) {
	return nil, false, nil
}

func (f *fakeLists) SetProviderList(ctx context.Context, providerID string, bookings []models.Booking) error {
	return nil
}

func (f *fakeLists) GetUserList(ctx context.Context, userID string) ([]models.Booking, bool, error) {
	return nil, false, nil
}

func (f *fakeLists) SetUserList(ctx context.Context, userID string, bookings []models.Booking) error {
	return nil
}

func (f *fakeLists) Invalidate(ctx context.Context, providerIDs, userIDs []string) error {
	f.providers = append(f.providers, providerIDs)
	f.users = append(f.users, userIDs)
	return nil
}

type enqueued struct {
	bookingID string
	deadline  time.Time
}

type fakeQueue struct {
	tasks []enqueued
	err   error
}

func (q *fakeQueue) EnqueueAutoAssign(ctx context.Context, bookingID string, deadline time.Time) error {
	if q.err != nil {
		return q.err
	}
	q.tasks = append(q.tasks, enqueued{bookingID, deadline})
	return nil
}

type notice struct {
	kind       string
	providerID string
	bookingID  string
}

type fakeNotifier struct {
	sent []notice
}

func (n *fakeNotifier) SendProviderPushNotification(ctx context.Context, provider models.Provider, title, body string, data map[string]string) error {
	n.sent = append(n.sent, notice{"push", provider.ID, data["bookingId"]})
	return nil
}

func (n *fakeNotifier) NotifyNewBooking(ctx context.Context, provider models.Provider, booking models.Booking) error {
	n.sent = append(n.sent, notice{"new", provider.ID, booking.ID})
	return nil
}

func (n *fakeNotifier) NotifyAssignment(ctx context.Context, provider models.Provider, booking models.Booking) error {
	n.sent = append(n.sent, notice{"assigned", provider.ID, booking.ID})
	return nil
}

type harness struct {
	svc      *DefaultBookingService
	repo     *fakeRepo
	poojas   *fakePoojas
	matching *fakeMatching
	lists    *fakeLists
	queue    *fakeQueue
	notifier *fakeNotifier
}

func newHarness(seed ...models.Booking) *harness {
	h := &harness{
		repo: newFakeRepo(seed...),
		poojas: &fakePoojas{poojas: map[string]models.Pooja{
			"satya": {ID: "satya", Name: "Satyanarayan Pooja", Category: "homam", IsActive: true},
			"ganesh": {
				ID: "ganesh", Name: "Ganesh Pooja", Category: "pooja", IsActive: true,
				BasePriceVirtual: price(751), BasePriceInPerson: price(1501), BasePriceTemple: price(1251),
			},
			"retired": {ID: "retired", Name: "Old Ritual", IsActive: false},
		}},
		matching: &fakeMatching{},
		lists:    &fakeLists{},
		queue:    &fakeQueue{},
		notifier: &fakeNotifier{},
	}
	h.svc = &DefaultBookingService{
		Repo:   h.repo,
		Poojas: h.poojas,
		Providers: fakeProviders{
			"priest-1": {ID: "priest-1", DisplayName: "Pandit Sharma", IsVerified: true, IsAvailable: true, FCMToken: "tok"},
			"priest-away": {ID: "priest-away", DisplayName: "Pandit Rao", IsVerified: true, IsAvailable: false},
		},
		Matching:      h.matching,
		Lists:         h.lists,
		Queue:         h.queue,
		Notifications: h.notifier,
		Now:           fixedClock,
	}
	return h
}

var errStoreDown = errors.New("store unavailable")

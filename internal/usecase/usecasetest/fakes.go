// Package usecasetest содержит in-memory реализации репозиториев для тестов сценариев.
package usecasetest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

// TxManager просто вызывает fn: откат в памяти не моделируется.
type TxManager struct {
	Calls int
}

func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func cloneRequest(r *entity.Request) *entity.Request {
	c := *r
	c.DeliveredFiles = append([]string(nil), r.DeliveredFiles...)
	return &c
}

type RequestRepo struct {
	mu           sync.Mutex
	Requests     map[uuid.UUID]*entity.Request
	IncrementErr error
}

func NewRequestRepo(requests ...*entity.Request) *RequestRepo {
	repo := &RequestRepo{Requests: make(map[uuid.UUID]*entity.Request)}
	for _, r := range requests {
		repo.Requests[r.ID] = cloneRequest(r)
	}
	return repo
}

// Get возвращает текущее сохранённое состояние заявки.
func (m *RequestRepo) Get(id uuid.UUID) *entity.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.Requests[id]; ok {
		return cloneRequest(r)
	}
	return nil
}

func (m *RequestRepo) Create(ctx context.Context, r *entity.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Requests[r.ID]; !ok {
		m.Requests[r.ID] = cloneRequest(r)
	}
	return nil
}

func (m *RequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	if r := m.Get(id); r != nil {
		return r, nil
	}
	return nil, apperror.ErrRequestNotFound
}

func (m *RequestRepo) UpdateIfStatus(ctx context.Context, r *entity.Request, expected valueobject.RequestStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.Requests[r.ID]
	if !ok || stored.Status != expected {
		return apperror.ErrStateChanged
	}
	next := cloneRequest(r)
	next.UnreadBidCount = stored.UnreadBidCount
	next.DeliveredFiles = stored.DeliveredFiles
	m.Requests[r.ID] = next
	return nil
}

func (m *RequestRepo) AppendDeliveredFiles(ctx context.Context, id uuid.UUID, files []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.Requests[id]
	if !ok {
		return apperror.ErrRequestNotFound
	}
	stored.DeliveredFiles = append(stored.DeliveredFiles, files...)
	return nil
}

func (m *RequestRepo) MarkReviewed(ctx context.Context, id uuid.UUID, ownerSide bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.Requests[id]
	if !ok {
		return apperror.ErrRequestNotFound
	}
	flag := &stored.PhotographerHasReviewed
	if ownerSide {
		flag = &stored.OwnerHasReviewed
	}
	if *flag {
		return apperror.ErrAlreadyReviewed
	}
	*flag = true
	return nil
}

func (m *RequestRepo) IncrementUnreadBids(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IncrementErr != nil {
		return m.IncrementErr
	}
	if stored, ok := m.Requests[id]; ok {
		stored.UnreadBidCount++
	}
	return nil
}

func (m *RequestRepo) ResetUnreadBids(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stored, ok := m.Requests[id]; ok {
		stored.UnreadBidCount = 0
	}
	return nil
}

func (m *RequestRepo) ListOpen(ctx context.Context, limit, offset int) ([]*entity.Request, int, error) {
	all, _ := m.ListByStatus(ctx, valueobject.RequestStatusOpen, 0, 0)
	total := len(all)
	if offset >= total {
		return []*entity.Request{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *RequestRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Request
	for _, r := range m.Requests {
		requested := r.RequestedPhotographerID != nil && *r.RequestedPhotographerID == userID
		if r.IsParticipant(userID) || requested {
			out = append(out, cloneRequest(r))
		}
	}
	sortRequests(out)
	return out, nil
}

func (m *RequestRepo) ListByStatus(ctx context.Context, status valueobject.RequestStatus, limit, offset int) ([]*entity.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Request
	for _, r := range m.Requests {
		if r.Status == status {
			out = append(out, cloneRequest(r))
		}
	}
	sortRequests(out)
	return out, nil
}

func sortRequests(rs []*entity.Request) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].CreatedAt.After(rs[j].CreatedAt) })
}

type BidRepo struct {
	mu   sync.Mutex
	Bids map[uuid.UUID]*entity.Bid
}

func NewBidRepo(bids ...*entity.Bid) *BidRepo {
	repo := &BidRepo{Bids: make(map[uuid.UUID]*entity.Bid)}
	for _, b := range bids {
		c := *b
		repo.Bids[b.ID] = &c
	}
	return repo
}

func (m *BidRepo) Get(id uuid.UUID) *entity.Bid {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.Bids[id]; ok {
		c := *b
		return &c
	}
	return nil
}

func (m *BidRepo) Create(ctx context.Context, b *entity.Bid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Bids {
		if existing.RequestID == b.RequestID && existing.BidderID == b.BidderID && existing.IsActive() {
			return apperror.ErrActiveBidExists
		}
	}
	c := *b
	m.Bids[b.ID] = &c
	return nil
}

func (m *BidRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	if b := m.Get(id); b != nil {
		return b, nil
	}
	return nil, apperror.ErrBidNotFound
}

func (m *BidRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	return m.FindByID(ctx, id)
}

func (m *BidRepo) FindActive(ctx context.Context, requestID, bidderID uuid.UUID) (*entity.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.Bids {
		if b.RequestID == requestID && b.BidderID == bidderID && b.IsActive() {
			c := *b
			return &c, nil
		}
	}
	return nil, nil
}

func (m *BidRepo) CancelIfActive(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Bids[id]
	if !ok || !b.IsActive() {
		return apperror.ErrBidNotActive
	}
	b.Status = valueobject.BidStatusCancelled
	return nil
}

func (m *BidRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.Bid, error) {
	return m.filter(func(b *entity.Bid) bool { return b.RequestID == requestID }), nil
}

func (m *BidRepo) ListByBidder(ctx context.Context, bidderID uuid.UUID) ([]*entity.Bid, error) {
	return m.filter(func(b *entity.Bid) bool { return b.BidderID == bidderID }), nil
}

func (m *BidRepo) filter(keep func(*entity.Bid) bool) []*entity.Bid {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Bid
	for _, b := range m.Bids {
		if keep(b) {
			c := *b
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

type ChatRepo struct {
	mu        sync.Mutex
	Rooms     map[uuid.UUID]*entity.ChatRoom
	Messages  []*entity.Message
	CreateErr error
}

func NewChatRepo(rooms ...*entity.ChatRoom) *ChatRepo {
	repo := &ChatRepo{Rooms: make(map[uuid.UUID]*entity.ChatRoom)}
	for _, r := range rooms {
		c := *r
		repo.Rooms[r.ID] = &c
	}
	return repo
}

func (m *ChatRepo) CreateRoom(ctx context.Context, room *entity.ChatRoom) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if _, ok := m.Rooms[room.ID]; !ok {
		c := *room
		m.Rooms[room.ID] = &c
	}
	return nil
}

func (m *ChatRepo) FindRoomByID(ctx context.Context, id uuid.UUID) (*entity.ChatRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.Rooms[id]; ok {
		c := *r
		return &c, nil
	}
	return nil, apperror.ErrChatRoomNotFound
}

func (m *ChatRepo) ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]*entity.ChatRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.ChatRoom
	for _, r := range m.Rooms {
		if r.IsParticipant(userID) {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *ChatRepo) SaveMessage(ctx context.Context, room *entity.ChatRoom, msg *entity.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.Rooms[room.ID]
	if !ok {
		return apperror.ErrChatRoomNotFound
	}
	m.Messages = append(m.Messages, msg)
	stored.LastMessage = &entity.LastMessage{Text: msg.Text, SenderID: msg.SenderID, SentAt: msg.CreatedAt}
	if stored.ParticipantA == msg.SenderID {
		stored.UnreadB = true
	} else {
		stored.UnreadA = true
	}
	return nil
}

func (m *ChatRepo) ListMessages(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Message
	for _, msg := range m.Messages {
		if msg.RoomID == roomID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *ChatRepo) MarkRead(ctx context.Context, roomID, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.Rooms[roomID]
	if !ok {
		return apperror.ErrChatRoomNotFound
	}
	if stored.ParticipantA == userID {
		stored.UnreadA = false
	}
	if stored.ParticipantB == userID {
		stored.UnreadB = false
	}
	return nil
}

type ProfileRepo struct {
	mu        sync.Mutex
	Profiles  map[uuid.UUID]*entity.Profile
	AdjustErr error
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{Profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (m *ProfileRepo) profile(userID uuid.UUID) *entity.Profile {
	p, ok := m.Profiles[userID]
	if !ok {
		p = entity.NewProfileFromIdentity(entity.Identity{UserID: userID})
		m.Profiles[userID] = p
	}
	return p
}

// Balance возвращает текущий баланс, 0 для неизвестного пользователя.
func (m *ProfileRepo) Balance(userID uuid.UUID) valueobject.Money {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Profiles[userID]; ok {
		return p.Balance
	}
	return 0
}

func (m *ProfileRepo) Counter(userID uuid.UUID, counter entity.ProfileCounter) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Profiles[userID]
	if !ok {
		return 0
	}
	if counter == entity.CounterNewGigs {
		return p.NewGigCount
	}
	return p.PendingReviewCount
}

func (m *ProfileRepo) Ensure(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.Profiles[profile.UserID]; ok {
		existing.Email = profile.Email
		if profile.DisplayName != "" {
			existing.DisplayName = profile.DisplayName
		}
		c := *existing
		return &c, nil
	}
	c := *profile
	m.Profiles[profile.UserID] = &c
	out := c
	return &out, nil
}

func (m *ProfileRepo) FindByID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Profiles[userID]; ok {
		c := *p
		return &c, nil
	}
	return nil, apperror.ErrProfileNotFound
}

func (m *ProfileRepo) UpdateDetails(ctx context.Context, userID uuid.UUID, displayName string, isAvailable bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Profiles[userID]
	if !ok {
		return apperror.ErrProfileNotFound
	}
	p.DisplayName = displayName
	p.IsAvailable = isAvailable
	return nil
}

func (m *ProfileRepo) AdjustBalance(ctx context.Context, userID uuid.UUID, delta valueobject.Money) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AdjustErr != nil {
		return m.AdjustErr
	}
	p := m.profile(userID)
	if p.Balance+delta < 0 {
		return apperror.ErrInsufficientFunds
	}
	p.Balance += delta
	return nil
}

func (m *ProfileRepo) IncrementCounter(ctx context.Context, userID uuid.UUID, counter entity.ProfileCounter, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profile(userID)
	field := &p.PendingReviewCount
	if counter == entity.CounterNewGigs {
		field = &p.NewGigCount
	}
	*field += delta
	if *field < 0 {
		*field = 0
	}
	return nil
}

func (m *ProfileRepo) ResetCounter(ctx context.Context, userID uuid.UUID, counter entity.ProfileCounter) error {
	return m.IncrementCounter(ctx, userID, counter, -1<<30)
}

func (m *ProfileRepo) SetPayoutAccount(ctx context.Context, userID uuid.UUID, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profile(userID)
	p.PayoutAccountID = &accountID
	return nil
}

type PayoutRepo struct {
	mu      sync.Mutex
	Payouts map[uuid.UUID]*entity.PayoutRequest
}

func NewPayoutRepo() *PayoutRepo {
	return &PayoutRepo{Payouts: make(map[uuid.UUID]*entity.PayoutRequest)}
}

func (m *PayoutRepo) Create(ctx context.Context, p *entity.PayoutRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Payouts {
		if existing.UserID == p.UserID && existing.IsPending() {
			return apperror.ErrPendingPayoutExists
		}
	}
	c := *p
	m.Payouts[p.ID] = &c
	return nil
}

func (m *PayoutRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.PayoutRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Payouts[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, apperror.ErrPayoutNotFound
}

func (m *PayoutRepo) FindPendingByUser(ctx context.Context, userID uuid.UUID) (*entity.PayoutRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Payouts {
		if p.UserID == userID && p.IsPending() {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (m *PayoutRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PayoutRequest, error) {
	return m.filter(func(p *entity.PayoutRequest) bool { return p.UserID == userID }), nil
}

func (m *PayoutRepo) ListByStatus(ctx context.Context, status valueobject.PayoutStatus, limit, offset int) ([]*entity.PayoutRequest, error) {
	return m.filter(func(p *entity.PayoutRequest) bool { return p.Status == status }), nil
}

func (m *PayoutRepo) filter(keep func(*entity.PayoutRequest) bool) []*entity.PayoutRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.PayoutRequest
	for _, p := range m.Payouts {
		if keep(p) {
			c := *p
			out = append(out, &c)
		}
	}
	return out
}

func (m *PayoutRepo) CompleteIfPending(ctx context.Context, p *entity.PayoutRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.Payouts[p.ID]
	if !ok || !stored.IsPending() {
		return apperror.NoLongerAvailable("выплата уже обработана")
	}
	c := *p
	m.Payouts[p.ID] = &c
	return nil
}

func (m *PayoutRepo) SetTransferID(ctx context.Context, id uuid.UUID, transferID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Payouts[id]
	if !ok {
		return apperror.ErrPayoutNotFound
	}
	p.TransferID = &transferID
	return nil
}

type EscrowRepo struct {
	mu       sync.Mutex
	Payments map[uuid.UUID]*entity.EscrowPayment
}

func NewEscrowRepo() *EscrowRepo {
	return &EscrowRepo{Payments: make(map[uuid.UUID]*entity.EscrowPayment)}
}

func (m *EscrowRepo) Record(ctx context.Context, p *entity.EscrowPayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Payments[p.ID]; !ok {
		c := *p
		m.Payments[p.ID] = &c
	}
	return nil
}

func (m *EscrowRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.EscrowPayment, error) {
	return m.filter(func(p *entity.EscrowPayment) bool { return p.RequestID == requestID }), nil
}

func (m *EscrowRepo) ListByPayee(ctx context.Context, payeeID uuid.UUID) ([]*entity.EscrowPayment, error) {
	return m.filter(func(p *entity.EscrowPayment) bool { return p.PayeeID == payeeID }), nil
}

// Statuses возвращает множество статусов записей по заявке.
func (m *EscrowRepo) Statuses(requestID uuid.UUID) []valueobject.EscrowStatus {
	var out []valueobject.EscrowStatus
	for _, p := range m.filter(func(p *entity.EscrowPayment) bool { return p.RequestID == requestID }) {
		out = append(out, p.Status)
	}
	return out
}

func (m *EscrowRepo) filter(keep func(*entity.EscrowPayment) bool) []*entity.EscrowPayment {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.EscrowPayment
	for _, p := range m.Payments {
		if keep(p) {
			c := *p
			out = append(out, &c)
		}
	}
	return out
}

type ReviewRepo struct {
	mu      sync.Mutex
	Reviews []*entity.Review
}

func (m *ReviewRepo) Create(ctx context.Context, r *entity.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Reviews {
		if existing.RequestID == r.RequestID && existing.ReviewerID == r.ReviewerID {
			return apperror.ErrAlreadyReviewed
		}
	}
	m.Reviews = append(m.Reviews, r)
	return nil
}

func (m *ReviewRepo) ListByReviewee(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Review
	for _, r := range m.Reviews {
		if r.RevieweeID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *ReviewRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Review
	for _, r := range m.Reviews {
		if r.RequestID == requestID {
			out = append(out, r)
		}
	}
	return out, nil
}

type ReportRepo struct {
	mu      sync.Mutex
	Reports []*entity.Report
}

func (m *ReportRepo) Create(ctx context.Context, r *entity.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reports = append(m.Reports, r)
	return nil
}

func (m *ReportRepo) List(ctx context.Context, limit, offset int) ([]*entity.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.Report(nil), m.Reports...), nil
}

type AcceptanceRepo struct {
	mu      sync.Mutex
	Intents map[uuid.UUID]*entity.AcceptanceIntent
}

func NewAcceptanceRepo() *AcceptanceRepo {
	return &AcceptanceRepo{Intents: make(map[uuid.UUID]*entity.AcceptanceIntent)}
}

func (m *AcceptanceRepo) Get(id uuid.UUID) *entity.AcceptanceIntent {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.Intents[id]; ok {
		c := *i
		return &c
	}
	return nil
}

func (m *AcceptanceRepo) Create(ctx context.Context, i *entity.AcceptanceIntent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Intents {
		if existing.RequestID == i.RequestID && existing.Status == valueobject.IntentStatusPending {
			return apperror.ErrAcceptanceInProgress
		}
	}
	c := *i
	m.Intents[i.ID] = &c
	return nil
}

func (m *AcceptanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.AcceptanceIntent, error) {
	if i := m.Get(id); i != nil {
		return i, nil
	}
	return nil, apperror.ErrIntentNotFound
}

func (m *AcceptanceRepo) FindPendingByRequest(ctx context.Context, requestID uuid.UUID) (*entity.AcceptanceIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.Intents {
		if i.RequestID == requestID && i.Status == valueobject.IntentStatusPending {
			c := *i
			return &c, nil
		}
	}
	return nil, nil
}

func (m *AcceptanceRepo) SetClientSecret(ctx context.Context, id uuid.UUID, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.Intents[id]
	if !ok {
		return apperror.ErrIntentNotFound
	}
	i.ClientSecret = secret
	return nil
}

func (m *AcceptanceRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to valueobject.IntentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.Intents[id]
	if !ok || i.Status != from {
		return apperror.ErrStateChanged
	}
	i.Status = to
	return nil
}

// SentNotification: запись о вызове Notifier.
type SentNotification struct {
	UserID       uuid.UUID
	Notification entity.Notification
}

type Notifier struct {
	mu   sync.Mutex
	Sent []SentNotification
}

func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, notification entity.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, SentNotification{UserID: userID, Notification: notification})
}

// For возвращает типы уведомлений, отправленных пользователю.
func (n *Notifier) For(userID uuid.UUID) []entity.NotificationType {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []entity.NotificationType
	for _, s := range n.Sent {
		if s.UserID == userID {
			out = append(out, s.Notification.Type)
		}
	}
	return out
}

type NotificationRepo struct {
	mu    sync.Mutex
	Items []*entity.Notification
	Err   error
}

func (m *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Items = append(m.Items, n)
	return nil
}

func (m *NotificationRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]*entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Notification
	for _, n := range m.Items {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *NotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	items, _ := m.List(ctx, userID, 0, 0, true)
	return len(items), nil
}

func (m *NotificationRepo) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.Items {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return apperror.ErrNotificationNotFound
}

func (m *NotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.Items {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

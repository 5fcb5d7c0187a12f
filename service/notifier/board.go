// Package notifier delivers short lived notifications to players.
package notifier

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
)

const defaultPresenceWindow = time.Minute

// Message is a notification on display
type Message struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Lines     []string  `json:"lines"`
	CreatedAt time.Time `json:"createdAt"`
}

type BoardCfg struct {
	// PresenceWindow is how long a user counts as online after a request
	PresenceWindow time.Duration
	Now            domain.Clock
}

// Board keeps notifications in process until they are dismissed, users
// poll them. Only users seen within the presence window are reachable.
type Board struct {
	mu       sync.Mutex
	window   time.Duration
	now      domain.Clock
	lastSeen map[domain.UserId]time.Time
	messages map[domain.UserId]map[string]*Message
}

func NewBoard(cfg *BoardCfg) *Board {
	b := &Board{
		window:   cfg.PresenceWindow,
		now:      cfg.Now,
		lastSeen: map[domain.UserId]time.Time{},
		messages: map[domain.UserId]map[string]*Message{},
	}
	if b.window <= 0 {
		b.window = defaultPresenceWindow
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

// Touch marks user as online
func (b *Board) Touch(user domain.UserId) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastSeen[user] = b.now()
}

func (b *Board) online(user domain.UserId) bool {
	seen, ok := b.lastSeen[user]
	return ok && b.now().Sub(seen) < b.window
}

func (b *Board) Notify(c ctx.Ctx, user domain.UserId, title string, lines []string) (account.Notice, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.online(user) {
		return nil, account.ErrUnreachable
	}
	m := &Message{
		Id:        uuid.New().String(),
		Title:     title,
		Lines:     append([]string{}, lines...),
		CreatedAt: b.now(),
	}
	if b.messages[user] == nil {
		b.messages[user] = map[string]*Message{}
	}
	b.messages[user][m.Id] = m
	return &boardNotice{board: b, user: user, id: m.Id}, nil
}

// Messages returns the notifications on display for user, oldest first
func (b *Board) Messages(user domain.UserId) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	res := make([]Message, 0, len(b.messages[user]))
	for _, m := range b.messages[user] {
		cp := *m
		cp.Lines = append([]string{}, m.Lines...)
		res = append(res, cp)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].Id < res[j].Id
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res
}

func (b *Board) dismiss(user domain.UserId, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.messages[user], id)
	if len(b.messages[user]) == 0 {
		delete(b.messages, user)
	}
}

type boardNotice struct {
	board *Board
	user  domain.UserId
	id    string
}

func (n *boardNotice) Dismiss(c ctx.Ctx) error {
	n.board.dismiss(n.user, n.id)
	return nil
}

package market

import (
	"sync"
	"time"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/item"
)

const (
	GridWidth  = 9
	GridHeight = 6
	// PageSize is the listing area, every row but the navigation row
	PageSize = GridWidth * (GridHeight - 1)
	// NavRow holds the page navigation buttons
	NavRow = GridHeight - 1

	PrevX = 0
	NextX = GridWidth - 1
)

// Icons of the non listing slots
var (
	FillerIcon   = item.Item{Type: "minecraft:black_stained_glass_pane", Count: 1}
	NavFillIcon  = item.Item{Type: "minecraft:green_stained_glass_pane", Count: 1}
	PrevPageIcon = item.Item{Type: "minecraft:blue_stained_glass_pane", Count: 1, Meta: &item.Meta{Display: &item.Display{Name: "Previous page"}}}
	NextPageIcon = item.Item{Type: "minecraft:blue_stained_glass_pane", Count: 1, Meta: &item.Meta{Display: &item.Display{Name: "Next page"}}}
)

// Messages shown to a buyer after a click
const (
	MsgPurchased         = "Successfully purchased item!"
	MsgInsufficientFunds = "Not enough money!"
	MsgNoLongerAvailable = "Item no longer available"
	MsgPurchaseFailed    = "Purchase failed, please try again later"
)

// Action is bound to a slot and runs when the viewer clicks it
type Action func(c ctx.Ctx)

// Slot is one cell of a grid as the viewer sees it
type Slot struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Icon      item.Item `json:"icon"`
	Clickable bool      `json:"clickable"`
}

// Grid is a windowed container of GridWidth x GridHeight slots
type Grid interface {
	// Button places icon at (x, y), action may be nil for inert slots
	Button(x, y int, icon item.Item, action Action)
	// Refresh calls fn every interval until Close, never two at a time
	Refresh(interval time.Duration, fn func(c ctx.Ctx))
	// Click runs the action bound at (x, y), it reports false if there is none
	Click(c ctx.Ctx, x, y int) bool
	Slots() []Slot
	Close()
}

// GridFactory opens a new grid for a viewer
type GridFactory func(viewer domain.UserId) Grid

type SessionId string

type SessionState string

const (
	SessionOpen      SessionState = "open"
	SessionRendering SessionState = "rendering"
	SessionClosed    SessionState = "closed"
)

// Session is the view state of one viewer's market window, it is never
// shared between viewers.
type Session struct {
	sync.Mutex
	Id      SessionId
	Viewer  domain.UserId
	Grid    Grid
	Page    int
	MaxPage int
	Message string
	State   SessionState
}

// SessionView is a copy of a session for the outside
type SessionView struct {
	Id      SessionId    `json:"id"`
	Page    int          `json:"page"`
	MaxPage int          `json:"maxPage"`
	Message string       `json:"message,omitempty"`
	State   SessionState `json:"state"`
	Slots   []Slot       `json:"slots"`
}

// View snapshots the session, it takes the session lock
func (s *Session) View() SessionView {
	s.Lock()
	defer s.Unlock()
	return SessionView{
		Id:      s.Id,
		Page:    s.Page,
		MaxPage: s.MaxPage,
		Message: s.Message,
		State:   s.State,
		Slots:   s.Grid.Slots(),
	}
}

// BrowseUseCase drives the paginated market window
type BrowseUseCase interface {
	Open(c ctx.Ctx, viewer domain.UserId) (*Session, error)
	// Get returns the viewer's session, domain.ErrNotFound if it does not
	// exist or belongs to somebody else
	Get(c ctx.Ctx, viewer domain.UserId, id SessionId) (*Session, error)
	Render(c ctx.Ctx, s *Session) error
	Click(c ctx.Ctx, s *Session, x, y int) error
	Close(c ctx.Ctx, s *Session) error
}

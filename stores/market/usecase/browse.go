package usecase

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/market"
	"github.com/x-xyz/gomarket/service/annotation"
)

const defaultRefreshInterval = time.Second

type BrowseUseCaseCfg struct {
	Market  market.UseCase
	NewGrid market.GridFactory
	// RefreshInterval is the period of the remaining time updates
	RefreshInterval time.Duration
	Now             domain.Clock
}

type browseImpl struct {
	market          market.UseCase
	newGrid         market.GridFactory
	refreshInterval time.Duration
	now             domain.Clock

	mu       sync.Mutex
	sessions map[market.SessionId]*market.Session
	// a viewer has at most one window open
	byViewer map[domain.UserId]market.SessionId
}

func NewBrowse(cfg *BrowseUseCaseCfg) market.BrowseUseCase {
	im := &browseImpl{
		market:          cfg.Market,
		newGrid:         cfg.NewGrid,
		refreshInterval: cfg.RefreshInterval,
		now:             cfg.Now,
		sessions:        map[market.SessionId]*market.Session{},
		byViewer:        map[domain.UserId]market.SessionId{},
	}
	if im.refreshInterval <= 0 {
		im.refreshInterval = defaultRefreshInterval
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

func (im *browseImpl) Open(c ctx.Ctx, viewer domain.UserId) (*market.Session, error) {
	s := &market.Session{
		Id:     market.SessionId(uuid.New().String()),
		Viewer: viewer,
		Grid:   im.newGrid(viewer),
		State:  market.SessionOpen,
	}

	// the last Open of a viewer wins, every earlier window gets closed
	im.mu.Lock()
	prev, hasPrev := im.sessions[im.byViewer[viewer]]
	im.sessions[s.Id] = s
	im.byViewer[viewer] = s.Id
	im.mu.Unlock()
	if hasPrev {
		if err := im.Close(c, prev); err != nil {
			return nil, err
		}
	}

	if err := im.Render(c, s); err != nil {
		c.WithFields(log.Fields{"err": err, "viewer": viewer}).Error("Render failed")
		if err := im.Close(c, s); err != nil {
			c.WithFields(log.Fields{"err": err, "viewer": viewer}).Warn("Close failed")
		}
		return nil, err
	}

	s.Grid.Refresh(im.refreshInterval, func(tc ctx.Ctx) {
		if err := im.Render(tc, s); err != nil {
			tc.WithFields(log.Fields{"err": err, "session": s.Id}).Warn("refresh Render failed")
		}
	})
	return s, nil
}

func (im *browseImpl) Get(c ctx.Ctx, viewer domain.UserId, id market.SessionId) (*market.Session, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	s, ok := im.sessions[id]
	if !ok || s.Viewer != viewer {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (im *browseImpl) Render(c ctx.Ctx, s *market.Session) error {
	defer met.BumpTime("render.time").End()

	s.Lock()
	defer s.Unlock()
	if s.State == market.SessionClosed {
		return nil
	}
	s.State = market.SessionRendering
	defer func() { s.State = market.SessionOpen }()

	listings, err := im.market.Active(c)
	if err != nil {
		return err
	}
	now := im.now()

	s.MaxPage = len(listings) / market.PageSize
	if s.Page > s.MaxPage {
		s.Page = s.MaxPage
	} else if s.Page < 0 {
		s.Page = 0
	}

	start := s.Page * market.PageSize
	for i := 0; i < market.PageSize; i++ {
		x, y := i%market.GridWidth, i/market.GridWidth
		if start+i >= len(listings) {
			s.Grid.Button(x, y, market.FillerIcon, nil)
			continue
		}
		l := listings[start+i]
		icon := annotation.Annotate(l.Item, annotation.ListingLines(l.Price, l.SellerName, l.Remaining(now)))
		s.Grid.Button(x, y, icon, im.purchaseAction(s, l))
	}

	for x := 0; x < market.GridWidth; x++ {
		s.Grid.Button(x, market.NavRow, market.NavFillIcon, nil)
	}
	if s.MaxPage != 0 {
		s.Grid.Button(market.PrevX, market.NavRow, market.PrevPageIcon, im.turnAction(s, -1))
		s.Grid.Button(market.NextX, market.NavRow, market.NextPageIcon, im.turnAction(s, 1))
	}
	return nil
}

func (im *browseImpl) purchaseAction(s *market.Session, l *market.Listing) market.Action {
	return func(c ctx.Ctx) {
		msg := market.MsgPurchased
		if _, err := im.market.Purchase(c, s.Viewer, l); errors.Is(err, domain.ErrInsufficientFunds) {
			msg = market.MsgInsufficientFunds
		} else if errors.Is(err, domain.ErrListingGone) {
			msg = market.MsgNoLongerAvailable
		} else if err != nil {
			c.WithFields(log.Fields{"err": err, "listing": l.Id}).Error("market.Purchase failed")
			msg = market.MsgPurchaseFailed
		}

		s.Lock()
		s.Message = msg
		s.Unlock()
		if err := im.Render(c, s); err != nil {
			c.WithFields(log.Fields{"err": err, "session": s.Id}).Error("Render failed")
		}
	}
}

// turnAction moves the page by step, wrapping around at both ends
func (im *browseImpl) turnAction(s *market.Session, step int) market.Action {
	return func(c ctx.Ctx) {
		s.Lock()
		s.Page += step
		if s.Page < 0 {
			s.Page = s.MaxPage
		} else if s.Page > s.MaxPage {
			s.Page = 0
		}
		s.Unlock()
		if err := im.Render(c, s); err != nil {
			c.WithFields(log.Fields{"err": err, "session": s.Id}).Error("Render failed")
		}
	}
}

func (im *browseImpl) Click(c ctx.Ctx, s *market.Session, x, y int) error {
	if x < 0 || x >= market.GridWidth || y < 0 || y >= market.GridHeight {
		return domain.NewUserError(domain.ErrBadParamInput, "slot out of the grid")
	}

	s.Lock()
	closed := s.State == market.SessionClosed
	s.Unlock()
	if closed {
		return domain.ErrNotFound
	}

	// actions take the session lock themselves
	s.Grid.Click(c, x, y)
	return nil
}

func (im *browseImpl) Close(c ctx.Ctx, s *market.Session) error {
	s.Lock()
	if s.State == market.SessionClosed {
		s.Unlock()
		return nil
	}
	s.State = market.SessionClosed
	s.Unlock()
	s.Grid.Close()

	im.mu.Lock()
	delete(im.sessions, s.Id)
	if im.byViewer[s.Viewer] == s.Id {
		delete(im.byViewer, s.Viewer)
	}
	im.mu.Unlock()
	return nil
}

package app

import (
	"sync"

	"github.com/dkeye/nexvox/internal/domain"
)

const DefaultBreakpoint = 1024

// SidebarController tracks the selected tab and whether the sidebar is open.
// Every viewport update re-applies the breakpoint rule, so a manual toggle
// only lasts until the next resize.
type SidebarController struct {
	breakpoint int

	mu   sync.Mutex
	tab  domain.Tab
	open bool
}

func NewSidebarController(breakpoint int) *SidebarController {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	return &SidebarController{breakpoint: breakpoint, tab: domain.TabChat, open: true}
}

func (s *SidebarController) SetActiveTab(tab domain.Tab) error {
	if !tab.Valid() {
		return domain.ErrInvalidTab
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = tab
	return nil
}

func (s *SidebarController) ActiveTab() domain.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// SetViewport applies the breakpoint rule for width and returns the open state.
func (s *SidebarController) SetViewport(width int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = width >= s.breakpoint
	return s.open
}

func (s *SidebarController) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

func (s *SidebarController) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

func (s *SidebarController) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Package messages holds the tea.Msg types exchanged between the
// application, its modes and their asynchronous commands. Messages that
// answer a request carry the epoch of the mode activation that issued it.
package messages

import (
	"kassa/internal/api"
	"kassa/internal/config"
)

type ErrorMsg struct {
	Err error
}

type ConfigUpdateMsg struct {
	Config *config.Config
}

// SearchResultMsg answers an item search. Background is set for the silent
// refresh that follows a successful edit.
type SearchResultMsg struct {
	Epoch      uint64
	Criteria   api.SearchCriteria
	Items      []api.Item
	Err        error
	Background bool
}

func (m SearchResultMsg) ModeEpoch() uint64 { return m.Epoch }

// EditResultMsg answers an item edit. Code is the code of the submitted
// item, so a late answer can be matched against the open dialog.
type EditResultMsg struct {
	Epoch uint64
	Code  string
	Item  api.Item
	Err   error
}

func (m EditResultMsg) ModeEpoch() uint64 { return m.Epoch }

// ReportLoadedMsg carries the vendor record and item list of a report.
type ReportLoadedMsg struct {
	Epoch  uint64
	Vendor api.Vendor
	Items  []api.Item
	Err    error
}

func (m ReportLoadedMsg) ModeEpoch() uint64 { return m.Epoch }

type ClipboardMsg struct {
	Epoch uint64
	Text  string
	Err   error
}

func (m ClipboardMsg) ModeEpoch() uint64 { return m.Epoch }

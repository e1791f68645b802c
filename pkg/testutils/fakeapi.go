package testutils

import (
	"context"
	"sync"

	"kassa/internal/api"
	"kassa/internal/errors"
)

// FakeService is a scripted api.Service. Unset funcs return empty results.
type FakeService struct {
	SearchFunc func(api.SearchCriteria) ([]api.Item, error)
	EditFunc   func(api.Item) (api.Item, error)
	ListFunc   func(vendor int) ([]api.Item, error)
	VendorFunc func(vendor int) (api.Vendor, error)

	mu       sync.Mutex
	searches []api.SearchCriteria
	edits    []api.Item
	lists    []int
}

var _ api.Service = (*FakeService)(nil)

func (f *FakeService) ItemSearch(_ context.Context, c api.SearchCriteria) ([]api.Item, error) {
	f.mu.Lock()
	f.searches = append(f.searches, c)
	f.mu.Unlock()
	if f.SearchFunc == nil {
		return nil, nil
	}
	return f.SearchFunc(c)
}

func (f *FakeService) ItemEdit(_ context.Context, item api.Item) (api.Item, error) {
	f.mu.Lock()
	f.edits = append(f.edits, item)
	f.mu.Unlock()
	if f.EditFunc == nil {
		return item, nil
	}
	return f.EditFunc(item)
}

func (f *FakeService) ItemList(_ context.Context, vendor int) ([]api.Item, error) {
	f.mu.Lock()
	f.lists = append(f.lists, vendor)
	f.mu.Unlock()
	if f.ListFunc == nil {
		return nil, nil
	}
	return f.ListFunc(vendor)
}

func (f *FakeService) VendorGet(_ context.Context, vendor int) (api.Vendor, error) {
	if f.VendorFunc == nil {
		return api.Vendor{ID: vendor}, nil
	}
	return f.VendorFunc(vendor)
}

// Searches returns the criteria of every search issued so far.
func (f *FakeService) Searches() []api.SearchCriteria {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.SearchCriteria(nil), f.searches...)
}

// Edits returns every item sent to ItemEdit.
func (f *FakeService) Edits() []api.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Item(nil), f.edits...)
}

// Lists returns the vendor ids passed to ItemList.
func (f *FakeService) Lists() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.lists...)
}

// Fail builds the error a failing server call returns.
func Fail(op string, status int, body string) error {
	return errors.NewRequestError(op, status, body, nil)
}

// Package api is the client side of the checkout HTTP API: item search,
// item edit, vendor item lists and vendor lookup.
package api

import (
	"bytes"
	"net/url"
	"strconv"
	"strings"

	"kassa/internal/format"

	json "github.com/goccy/go-json"
)

// Vendor is the vendor record embedded in items and returned by vendor/get.
type Vendor struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Box describes a box of identical items represented by one item.
type Box struct {
	BoxNumber  int `json:"box_number"`
	BundleSize int `json:"bundle_size"`
	ItemCount  int `json:"item_count"`
}

// Item is an item record as transferred by the server. The client renders
// it and round-trips it through the edit dialog; field semantics belong to
// the server.
type Item struct {
	Code     string       `json:"code"`
	Name     string       `json:"name"`
	Price    format.Price `json:"price"`
	State    string       `json:"state"`
	ItemType string       `json:"itemtype"`
	Hidden   bool         `json:"hidden"`
	Vendor   VendorRef    `json:"vendor"`
	Box      *Box         `json:"box,omitempty"`
}

// VendorRef is the vendor field of an item. Depending on the endpoint the
// server sends either the bare vendor id or the embedded vendor object.
type VendorRef struct {
	Vendor
}

// UnmarshalJSON accepts a vendor id or a vendor object.
func (r *VendorRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		r.Vendor = Vendor{}
		return nil
	}
	if data[0] != '{' {
		id, err := strconv.Atoi(string(data))
		if err != nil {
			return err
		}
		r.Vendor = Vendor{ID: id}
		return nil
	}
	return json.Unmarshal(data, &r.Vendor)
}

// MarshalJSON writes the embedded vendor object.
func (r VendorRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Vendor)
}

// SearchInput is the raw content of the search form.
type SearchInput struct {
	Query      string
	Code       string
	Vendor     string
	MinPrice   string
	MaxPrice   string
	ItemTypes  []string
	ItemStates []string
	ShowHidden bool
}

// SearchCriteria is an immutable snapshot of a submitted search. Build it
// with NewSearchCriteria; a repeated search reuses the same value.
type SearchCriteria struct {
	query      string
	code       string
	vendor     string
	minPrice   string
	maxPrice   string
	itemType   string
	itemState  string
	showHidden bool
}

// NewSearchCriteria normalizes form input: the code is upper-cased and the
// type and state selections are joined with single spaces.
func NewSearchCriteria(in SearchInput) SearchCriteria {
	return SearchCriteria{
		query:      strings.TrimSpace(in.Query),
		code:       strings.ToUpper(strings.TrimSpace(in.Code)),
		vendor:     strings.TrimSpace(in.Vendor),
		minPrice:   strings.TrimSpace(in.MinPrice),
		maxPrice:   strings.TrimSpace(in.MaxPrice),
		itemType:   joinTokens(in.ItemTypes),
		itemState:  joinTokens(in.ItemStates),
		showHidden: in.ShowHidden,
	}
}

func joinTokens(tokens []string) string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, " ")
}

func (c SearchCriteria) Query() string     { return c.query }
func (c SearchCriteria) Code() string      { return c.code }
func (c SearchCriteria) Vendor() string    { return c.vendor }
func (c SearchCriteria) MinPrice() string  { return c.minPrice }
func (c SearchCriteria) MaxPrice() string  { return c.maxPrice }
func (c SearchCriteria) ItemType() string  { return c.itemType }
func (c SearchCriteria) ItemState() string { return c.itemState }
func (c SearchCriteria) ShowHidden() bool  { return c.showHidden }

// Values encodes the criteria as item/search query parameters. Every
// parameter is always present because the server requires all of them.
func (c SearchCriteria) Values() url.Values {
	v := url.Values{}
	v.Set("query", c.query)
	v.Set("code", c.code)
	v.Set("vendor", c.vendor)
	v.Set("min_price", c.minPrice)
	v.Set("max_price", c.maxPrice)
	v.Set("item_type", c.itemType)
	v.Set("item_state", c.itemState)
	v.Set("show_hidden", strconv.FormatBool(c.showHidden))
	return v
}

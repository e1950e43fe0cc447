package listing

import (
	"fmt"
	"strings"
)

// Slot counts fixed by the upload schema. Extra images or tags in a packet
// are truncated; missing ones become empty cells.
const (
	ImageSlots = 10
	TagSlots   = 13
)

// RowOptions carries the per-shop constants merged into every row.
type RowOptions struct {
	SKUPrefix    string
	Quantity     int
	Category     string
	DefaultPrice string
}

// Headers returns the fixed spreadsheet header row.
func Headers() []string {
	headers := []string{
		"listing_id",
		"sku",
		"title",
		"description",
		"price",
		"quantity",
		"category",
	}
	for i := 1; i <= ImageSlots; i++ {
		headers = append(headers, fmt.Sprintf("image_%d", i))
	}
	for i := 1; i <= TagSlots; i++ {
		headers = append(headers, fmt.Sprintf("tag_%d", i))
	}
	return append(headers, "action", "listing_state", "who_made", "when_made", "is_supply")
}

// BuildRow assembles the spreadsheet row for one packet. The result always
// has exactly len(Headers()) cells.
func BuildRow(p *Packet, opts RowOptions) []string {
	price := strings.TrimSpace(p.Price)
	if price == "" {
		price = opts.DefaultPrice
	}

	row := []string{
		p.ID,
		sku(opts.SKUPrefix, p.ID),
		p.Title,
		p.Description,
		price,
		fmt.Sprintf("%d", opts.Quantity),
		opts.Category,
	}
	for i := 0; i < ImageSlots; i++ {
		if i < len(p.Images) {
			row = append(row, p.Images[i])
		} else {
			row = append(row, "")
		}
	}
	for i := 0; i < TagSlots; i++ {
		if i < len(p.Tags) {
			row = append(row, p.Tags[i])
		} else {
			row = append(row, "")
		}
	}
	return append(row, "add", "draft", "i_did", "2020_2026", "false")
}

func sku(prefix, id string) string {
	id = strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(id) > 12 {
		id = id[:12]
	}
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}

package projection

import (
	"context"
	"fmt"

	"tripmark/internal/models"
)

// DetailPage is the popup content for one record inside a marker.
// Position is the "2/5"-style label shown for grouped markers.
type DetailPage struct {
	RecordID     string `json:"record_id"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	Memo         string `json:"memo,omitempty"`
	LocationName string `json:"location,omitempty"`
	Country      string `json:"country,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	Position     string `json:"position"`
}

// DetailPager pages through a marker's member records. Pages are
// 1-based; Prev is unavailable on the first page and Next on the last.
type DetailPager struct {
	pages []DetailPage
	idx   int
}

func newDetailPager(records []models.TravelRecord) *DetailPager {
	pages := make([]DetailPage, len(records))
	for i, r := range records {
		page := DetailPage{
			RecordID:     r.ID,
			Title:        r.Title,
			Date:         r.Date,
			Memo:         r.Memo,
			LocationName: r.LocationName,
			Country:      r.Country,
			Position:     fmt.Sprintf("%d/%d", i+1, len(records)),
		}
		if len(r.Photos) > 0 {
			page.ImageURL = r.Photos[0].Src
		}
		pages[i] = page
	}
	return &DetailPager{pages: pages}
}

func (p *DetailPager) Len() int { return len(p.pages) }

func (p *DetailPager) Page() int { return p.idx + 1 }

func (p *DetailPager) Current() DetailPage { return p.pages[p.idx] }

func (p *DetailPager) HasNext() bool { return p.idx < len(p.pages)-1 }

func (p *DetailPager) HasPrev() bool { return p.idx > 0 }

// Pages returns a copy; callers cannot disturb navigation state.
func (p *DetailPager) Pages() []DetailPage { return append([]DetailPage(nil), p.pages...) }

// Next advances one page; it reports false at the last page.
func (p *DetailPager) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.idx++
	return true
}

// Prev goes back one page; it reports false at the first page.
func (p *DetailPager) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.idx--
	return true
}

// Marker is one renderable map point standing in for a record, or for
// every record captured at the same exact coordinate. Its ID is
// ephemeral: regenerated on every projection pass, never persisted.
type Marker struct {
	ID         string
	Coordinate models.Coordinate
	Label      string
	Count      int
	Pager      *DetailPager

	deleteFn func(ctx context.Context, recordID string) error
}

func (m *Marker) IsGroup() bool { return m.Count > 1 }

// Delete removes the record shown on the current detail page through
// the repository. The visual marker is only taken down by the refresh
// that follows a confirmed mutation, so a failed delete leaves the map
// and the store in agreement.
func (m *Marker) Delete(ctx context.Context) error {
	if m.deleteFn == nil {
		return fmt.Errorf("marker %s has no delete handler", m.ID)
	}
	return m.deleteFn(ctx, m.Pager.Current().RecordID)
}

// ShareText is the clipboard fallback content for the share action.
func (m *Marker) ShareText() string {
	page := m.Pager.Current()
	if page.Memo == "" {
		return page.Title
	}
	return page.Title + " - " + page.Memo
}

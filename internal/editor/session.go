package editor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"invoicepad/internal/domain"
	"invoicepad/internal/storage"
)

// Sections addressable by Commit. Each names a group of scalar fields on the
// invoice; line items are addressed separately by id via CommitLineItem.
const (
	SectionTitle    = "title"
	SectionBusiness = "business"
	SectionInvoice  = "invoice"
	SectionClient   = "client"
	SectionPayment  = "payment"
	SectionTax      = "tax"
	SectionDiscount = "discount"
	SectionThankYou = "thankYou"
)

// ErrUnknownField is returned when a commit addresses a section/field
// combination that does not exist on the document.
var ErrUnknownField = errors.New("editor: unknown section or field")

// ErrNotConfirmed is returned by Reset when the caller has not confirmed the
// destructive action; the document is left unchanged.
var ErrNotConfirmed = errors.New("editor: reset not confirmed")

// Snapshot is a point-in-time copy of the session state handed to renderers:
// the document, its freshly derived totals, and the id of the one open
// social-link inline editor ("" when none is open).
type Snapshot struct {
	Invoice          domain.Invoice
	Totals           domain.Totals
	ActiveSocialLink string
}

// Session is the single-writer container owning the invoice being edited.
// All mutations go through its methods; each one produces a new document
// value (earlier snapshots stay consistent), recomputes nothing eagerly, and
// best-effort saves through the repository. Storage failures are logged and
// dropped — editing never depends on storage availability.
type Session struct {
	mu     sync.Mutex
	doc    domain.Invoice
	active string // id of the open social-link editor, "" for none
	repo   storage.Repository
	log    logrus.FieldLogger
}

// NewSession loads the last-saved document from the repository, falling back
// to the built-in default when the slot is empty or unreadable. The inline
// editor state always starts closed.
func NewSession(ctx context.Context, repo storage.Repository, logger logrus.FieldLogger) *Session {
	log := logger.WithField("component", "editor")

	doc, err := repo.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNoDocument):
		log.Info("No saved invoice found, starting from the default document")
		doc = domain.Default()
	case err != nil:
		log.WithError(err).Warn("Failed to load saved invoice, starting from the default document")
		doc = domain.Default()
	}

	return &Session{
		doc:  doc,
		repo: repo,
		log:  log,
	}
}

// Snapshot returns a deep copy of the current state with derived totals.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.doc.Clone()
	return Snapshot{
		Invoice:          doc,
		Totals:           doc.Totals(),
		ActiveSocialLink: s.active,
	}
}

// Commit applies one finalized in-place edit of a scalar field. Text fields
// take the raw value verbatim, including the empty string; the tax and
// discount sections coerce the value to a number, collapsing parse failures
// to 0 rather than rejecting the edit.
func (s *Session) Commit(ctx context.Context, section, field, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc.Clone()

	switch section {
	case SectionTitle:
		doc.Title = raw
	case SectionBusiness:
		switch field {
		case "name":
			doc.BusinessInfo.Name = raw
		case "address":
			doc.BusinessInfo.Address = raw
		case "city":
			doc.BusinessInfo.City = raw
		case "website":
			doc.BusinessInfo.Website = raw
		case "email":
			doc.BusinessInfo.Email = raw
		case "phone":
			doc.BusinessInfo.Phone = raw
		default:
			return fmt.Errorf("%w: business.%s", ErrUnknownField, field)
		}
	case SectionInvoice:
		switch field {
		case "number":
			doc.InvoiceInfo.Number = raw
		case "issued":
			doc.InvoiceInfo.Issued = raw
		case "due":
			doc.InvoiceInfo.Due = raw
		default:
			return fmt.Errorf("%w: invoice.%s", ErrUnknownField, field)
		}
	case SectionClient:
		switch field {
		case "name":
			doc.ClientInfo.Name = raw
		case "address":
			doc.ClientInfo.Address = raw
		case "city":
			doc.ClientInfo.City = raw
		case "phone":
			doc.ClientInfo.Phone = raw
		default:
			return fmt.Errorf("%w: client.%s", ErrUnknownField, field)
		}
	case SectionPayment:
		switch field {
		case "bankName":
			doc.PaymentInfo.BankName = raw
		case "accountNumber":
			doc.PaymentInfo.AccountNumber = raw
		case "paypal":
			doc.PaymentInfo.PayPal = raw
		default:
			return fmt.Errorf("%w: payment.%s", ErrUnknownField, field)
		}
	case SectionTax:
		doc.TaxRate = coerceNumber(raw)
	case SectionDiscount:
		doc.DiscountRate = coerceNumber(raw)
	case SectionThankYou:
		doc.ThankYouMessage = raw
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, section)
	}

	s.apply(ctx, doc)
	return nil
}

// CommitLineItem applies one finalized edit of a line item field, addressed
// by the item's id. Quantity and price coerce to numbers (a leading currency
// symbol on price is stripped first); an unknown id is a no-op.
func (s *Session) CommitLineItem(ctx context.Context, id, field, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc.Clone()
	for i, item := range doc.LineItems {
		if item.ID != id {
			continue
		}
		switch field {
		case "description":
			doc.LineItems[i].Description = raw
		case "quantity":
			doc.LineItems[i].Quantity = coerceNumber(raw)
		case "price":
			doc.LineItems[i].Price = coerceNumber(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
		default:
			return fmt.Errorf("%w: lineItem.%s", ErrUnknownField, field)
		}
		s.apply(ctx, doc)
		return nil
	}
	return nil
}

// AddLineItem appends a placeholder row with a freshly allocated id.
func (s *Session) AddLineItem(ctx context.Context) domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc.Clone()
	item := domain.LineItem{
		ID:          doc.NextLineItemID(),
		Description: "Your item name here",
		Quantity:    1,
		Price:       50,
	}
	doc.LineItems = append(doc.LineItems, item)
	s.apply(ctx, doc)
	return item
}

// RemoveLineItem deletes the row with the given id. Removing an absent id is
// a no-op.
func (s *Session) RemoveLineItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc.Clone()
	kept := doc.LineItems[:0]
	for _, item := range doc.LineItems {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(doc.LineItems) {
		return
	}
	doc.LineItems = kept
	s.apply(ctx, doc)
}

// AddSocialLink appends a placeholder link with a freshly allocated id.
func (s *Session) AddSocialLink(ctx context.Context) domain.SocialLink {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc.Clone()
	link := domain.SocialLink{
		ID:   doc.NextSocialLinkID(),
		Type: domain.IconGlobe,
		URL:  "https://example.com",
	}
	doc.SocialLinks = append(doc.SocialLinks, link)
	s.apply(ctx, doc)
	return link
}

// RemoveSocialLink deletes the link with the given id, closing its inline
// editor if it was the open one. Removing an absent id is a no-op.
func (s *Session) RemoveSocialLink(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc.Clone()
	kept := doc.SocialLinks[:0]
	for _, link := range doc.SocialLinks {
		if link.ID != id {
			kept = append(kept, link)
		}
	}
	if len(kept) == len(doc.SocialLinks) {
		return
	}
	doc.SocialLinks = kept
	if s.active == id {
		s.active = ""
	}
	s.apply(ctx, doc)
}

// UpdateSocialLinkType replaces the icon type of the link with the given id.
// The value is stored verbatim even when it is outside the icon vocabulary.
func (s *Session) UpdateSocialLinkType(ctx context.Context, id, linkType string) {
	s.updateSocialLink(ctx, id, func(link *domain.SocialLink) {
		link.Type = linkType
	})
}

// UpdateSocialLinkURL replaces the URL of the link with the given id.
func (s *Session) UpdateSocialLinkURL(ctx context.Context, id, url string) {
	s.updateSocialLink(ctx, id, func(link *domain.SocialLink) {
		link.URL = url
	})
}

func (s *Session) updateSocialLink(ctx context.Context, id string, mutate func(*domain.SocialLink)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc.Clone()
	for i := range doc.SocialLinks {
		if doc.SocialLinks[i].ID == id {
			mutate(&doc.SocialLinks[i])
			s.apply(ctx, doc)
			return
		}
	}
}

// OpenSocialLinkEditor marks the inline editor of the given link as open. At
// most one is open at a time; opening another closes the previous. Opening
// an absent id is a no-op. This is ephemeral UI state and is not persisted.
func (s *Session) OpenSocialLinkEditor(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, link := range s.doc.SocialLinks {
		if link.ID == id {
			s.active = id
			return
		}
	}
}

// CloseSocialLinkEditor closes the open inline editor, if any.
func (s *Session) CloseSocialLinkEditor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = ""
}

// SetLogo converts an uploaded image payload into a self-contained data URI
// and stores it on the document. An empty payload is a no-op; a payload that
// cannot be decoded as an image is an error and leaves the document
// unchanged.
func (s *Session) SetLogo(ctx context.Context, payload []byte) error {
	if len(payload) == 0 {
		return nil
	}

	dataURI, err := EncodeLogo(payload)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.doc.Clone()
	doc.Logo = dataURI
	s.apply(ctx, doc)
	return nil
}

// RemoveLogo clears the logo.
func (s *Session) RemoveLogo(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.doc.Clone()
	doc.Logo = ""
	s.apply(ctx, doc)
}

// Reset replaces the whole document with the built-in default. It is the one
// destructive action and requires explicit confirmation; without it the
// document is left untouched and ErrNotConfirmed is returned.
func (s *Session) Reset(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = ""
	s.apply(ctx, domain.Default())
	return nil
}

// Replace swaps in a wholesale new document (used by import).
func (s *Session) Replace(ctx context.Context, inv domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.Normalize()
	s.apply(ctx, inv.Clone())
}

// apply installs the new document value and best-effort saves it. Callers
// hold s.mu. A failed save is logged and dropped; the next successful save
// catches up.
func (s *Session) apply(ctx context.Context, doc domain.Invoice) {
	s.doc = doc
	if err := s.repo.Save(ctx, doc); err != nil {
		s.log.WithError(err).Warn("Failed to persist invoice, continuing with in-memory state")
	}
}

// coerceNumber parses a numeric field edit. Any text that does not parse as
// a finite number collapses to 0; the edit itself is never rejected.
func coerceNumber(raw string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

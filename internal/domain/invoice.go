package domain

import "strconv"

// Invoice is the full structured record of one billing document being edited.
// It is the root aggregate: every edit produces a new Invoice value, and all
// monetary figures (subtotal, discount, tax, total) are derived from it on
// demand rather than stored.
//
// The JSON tags define the interchange format and must stay stable; exported
// files and the durable storage slot both use this serialization.
type Invoice struct {
	Title string `json:"title"`

	// Logo is an embeddable image reference (a data URI), or empty when no
	// logo is set. The image bytes are stored inline; there is no external
	// file reference to break.
	Logo string `json:"logo"`

	BusinessInfo BusinessInfo `json:"businessInfo"`
	InvoiceInfo  InvoiceInfo  `json:"invoiceInfo"`
	LineItems    []LineItem   `json:"lineItems"`
	ClientInfo   ClientInfo   `json:"clientInfo"`
	PaymentInfo  PaymentInfo  `json:"paymentInfo"`

	// TaxRate and DiscountRate are decimal percentages (8 means 8%).
	// Tax applies to the post-discount base; see Totals.
	TaxRate      float64 `json:"taxRate"`
	DiscountRate float64 `json:"discountRate"`

	ThankYouMessage string       `json:"thankYouMessage"`
	SocialLinks     []SocialLink `json:"socialLinks"`
}

// BusinessInfo identifies the issuing business. All fields are free text.
type BusinessInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Website string `json:"website"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// InvoiceInfo holds the invoice number and date strings. Dates are kept as
// entered and are not validated as real dates.
type InvoiceInfo struct {
	Number string `json:"number"`
	Issued string `json:"issued"`
	Due    string `json:"due"`
}

// ClientInfo identifies the billed party.
type ClientInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

// PaymentInfo lists the accepted payment routes.
type PaymentInfo struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	PayPal        string `json:"paypal"`
}

// LineItem is one billable row. ID is unique among the invoice's line items
// and stable across edits.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// SocialLink is one outbound link rendered as an icon in the footer. Type is
// a tag from the icon vocabulary; unknown tags render as "globe" but are
// preserved verbatim in storage.
type SocialLink struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Social link types with a dedicated icon. Anything else falls back to
// IconGlobe at render time.
const (
	IconFacebook  = "facebook"
	IconInstagram = "instagram"
	IconTwitter   = "twitter"
	IconPinterest = "pinterest"
	IconGitHub    = "github"
	IconLinkedIn  = "linkedin"
	IconYouTube   = "youtube"
	IconMail      = "mail"
	IconGlobe     = "globe"
)

// IconTypes lists the known social link types in display order.
var IconTypes = []string{
	IconFacebook,
	IconInstagram,
	IconTwitter,
	IconPinterest,
	IconGitHub,
	IconLinkedIn,
	IconYouTube,
	IconMail,
	IconGlobe,
}

// IconFor maps a social link type to the icon that renders it. Unknown types
// map to IconGlobe; the stored type value itself is never rewritten.
func IconFor(linkType string) string {
	for _, t := range IconTypes {
		if t == linkType {
			return t
		}
	}
	return IconGlobe
}

// Default returns the built-in placeholder invoice used on first run and
// after a confirmed reset.
func Default() Invoice {
	return Invoice{
		Title: "Invoice",
		Logo:  "",
		BusinessInfo: BusinessInfo{
			Name:    "BUSINESS NAME",
			Address: "1234 YOUR ADDRESS",
			City:    "CITY, 00000",
			Website: "www.yourbusiness.com",
			Email:   "yourbusiness@email.com",
			Phone:   "(000)111-2222",
		},
		InvoiceInfo: InvoiceInfo{
			Number: "0000",
			Issued: "01/01/2022",
			Due:    "01/01/2023",
		},
		LineItems: []LineItem{
			{ID: "1", Description: "Your item name here", Quantity: 3, Price: 50},
			{ID: "2", Description: "Your item name here", Quantity: 2, Price: 50},
			{ID: "3", Description: "Your item name here", Quantity: 5, Price: 5},
		},
		ClientInfo: ClientInfo{
			Name:    "CLIENT NAME",
			Address: "1234 CLIENT'S ADDRESS",
			City:    "CITY, 00000",
			Phone:   "(000)111-2222",
		},
		PaymentInfo: PaymentInfo{
			BankName:      "YOUR BANK NAME",
			AccountNumber: "YOUR NUMBER",
			PayPal:        "yourbusiness@email.com",
		},
		TaxRate:         0,
		DiscountRate:    0,
		ThankYouMessage: "Thank you!",
		SocialLinks: []SocialLink{
			{ID: "1", Type: IconFacebook, URL: "https://facebook.com"},
			{ID: "2", Type: IconInstagram, URL: "https://instagram.com"},
			{ID: "3", Type: IconTwitter, URL: "https://twitter.com"},
			{ID: "4", Type: IconPinterest, URL: "https://pinterest.com"},
		},
	}
}

// Clone returns a deep copy of the invoice. The slices are copied so that a
// snapshot handed out before a mutation never observes the mutation. Nil
// slices come back empty, matching Normalize.
func (inv Invoice) Clone() Invoice {
	out := inv
	out.LineItems = make([]LineItem, len(inv.LineItems))
	copy(out.LineItems, inv.LineItems)
	out.SocialLinks = make([]SocialLink, len(inv.SocialLinks))
	copy(out.SocialLinks, inv.SocialLinks)
	return out
}

// Normalize backfills nil slices left behind by unmarshalling a partial
// document. It performs no semantic validation: an imported file missing
// whole sections is accepted as-is.
func (inv *Invoice) Normalize() {
	if inv.LineItems == nil {
		inv.LineItems = []LineItem{}
	}
	if inv.SocialLinks == nil {
		inv.SocialLinks = []SocialLink{}
	}
}

// NextLineItemID allocates the id for a new line item.
func (inv Invoice) NextLineItemID() string {
	ids := make([]string, len(inv.LineItems))
	for i, item := range inv.LineItems {
		ids[i] = item.ID
	}
	return NextID(ids)
}

// NextSocialLinkID allocates the id for a new social link.
func (inv Invoice) NextSocialLinkID() string {
	ids := make([]string, len(inv.SocialLinks))
	for i, link := range inv.SocialLinks {
		ids[i] = link.ID
	}
	return NextID(ids)
}

// NextID returns (max numeric id)+1 as a string, or "1" when the sequence
// holds no numeric ids. Non-numeric ids are skipped; they stay valid members
// of the sequence but never influence allocation.
func NextID(ids []string) string {
	max := 0
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

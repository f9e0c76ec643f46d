package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicepad/internal/domain"
	"invoicepad/internal/editor"
	"invoicepad/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	sess := editor.NewSession(context.Background(), storage.NewMemoryRepository(), log)
	return New(sess, log)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decodeInvoice(t *testing.T, w *httptest.ResponseRecorder) invoiceResponse {
	t.Helper()
	var resp invoiceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetInvoice(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/invoice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeInvoice(t, w)
	assert.Equal(t, "Invoice", resp.Invoice.Title)
	assert.Equal(t, "275.00", resp.Totals.Subtotal)
	assert.Equal(t, "275.00", resp.Totals.Total)
}

func TestCommitFieldUpdatesTotals(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPut, "/api/invoice/fields", fieldCommitRequest{
		Section: editor.SectionDiscount, Value: "10",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPut, "/api/invoice/fields", fieldCommitRequest{
		Section: editor.SectionTax, Value: "8",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeInvoice(t, w)
	assert.Equal(t, "275.00", resp.Totals.Subtotal)
	assert.Equal(t, "27.50", resp.Totals.Discount)
	assert.Equal(t, "19.80", resp.Totals.Tax)
	assert.Equal(t, "267.30", resp.Totals.Total)
}

func TestCommitFieldUnknownSection(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPut, "/api/invoice/fields", fieldCommitRequest{
		Section: "shipping", Value: "10",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLineItemLifecycle(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/invoice/items", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Item domain.LineItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "4", created.Item.ID)

	w = doJSON(t, srv, http.MethodPut, "/api/invoice/items/4", lineItemCommitRequest{
		Field: "price", Value: "$12.50",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeInvoice(t, w)
	assert.Equal(t, 12.5, resp.Invoice.LineItems[3].Price)

	w = doJSON(t, srv, http.MethodDelete, "/api/invoice/items/4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeInvoice(t, w)
	assert.Len(t, resp.Invoice.LineItems, 3)
}

func TestSocialLinkEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/invoice/social-links", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	github := "github"
	url := "https://github.com/acme"
	w = doJSON(t, srv, http.MethodPut, "/api/invoice/social-links/5", socialLinkUpdateRequest{
		Type: &github, URL: &url,
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeInvoice(t, w)
	require.Len(t, resp.Invoice.SocialLinks, 5)
	assert.Equal(t, "github", resp.Invoice.SocialLinks[4].Type)
	assert.Equal(t, url, resp.Invoice.SocialLinks[4].URL)

	w = doJSON(t, srv, http.MethodPut, "/api/invoice/social-link-editor", openEditorRequest{ID: "5"})
	resp = decodeInvoice(t, w)
	assert.Equal(t, "5", resp.ActiveSocialLink)

	// Removing the open link closes its editor.
	w = doJSON(t, srv, http.MethodDelete, "/api/invoice/social-links/5", nil)
	resp = decodeInvoice(t, w)
	assert.Len(t, resp.Invoice.SocialLinks, 4)
	assert.Empty(t, resp.ActiveSocialLink)

	// Closing explicitly (the click-outside path).
	doJSON(t, srv, http.MethodPut, "/api/invoice/social-link-editor", openEditorRequest{ID: "1"})
	w = doJSON(t, srv, http.MethodDelete, "/api/invoice/social-link-editor", nil)
	resp = decodeInvoice(t, w)
	assert.Empty(t, resp.ActiveSocialLink)
}

func TestExportDownload(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/invoice/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "invoice-0000.json")

	var exported domain.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exported))
	exported.Normalize()
	assert.Equal(t, domain.Default(), exported)
}

func multipartBody(t *testing.T, field, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImportReplacesDocument(t *testing.T) {
	srv := newTestServer(t)

	imported := domain.Default()
	imported.Title = "Imported Invoice"
	imported.TaxRate = 19
	payload, err := json.Marshal(imported)
	require.NoError(t, err)

	body, contentType := multipartBody(t, "file", "invoice.json", payload)
	req := httptest.NewRequest(http.MethodPost, "/api/invoice/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeInvoice(t, w)
	assert.Equal(t, "Imported Invoice", resp.Invoice.Title)
	assert.Equal(t, float64(19), resp.Invoice.TaxRate)
}

func TestImportMalformedLeavesDocumentUntouched(t *testing.T) {
	srv := newTestServer(t)

	body, contentType := multipartBody(t, "file", "invoice.json", []byte("not json at all"))
	req := httptest.NewRequest(http.MethodPost, "/api/invoice/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Document and derived totals are unchanged.
	resp := decodeInvoice(t, doJSON(t, srv, http.MethodGet, "/api/invoice", nil))
	assert.Equal(t, domain.Default(), resp.Invoice)
	assert.Equal(t, "275.00", resp.Totals.Subtotal)
}

func TestLogoUploadAndRemove(t *testing.T) {
	srv := newTestServer(t)

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	body, contentType := multipartBody(t, "logo", "logo.png", pngBuf.Bytes())
	req := httptest.NewRequest(http.MethodPost, "/api/invoice/logo", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeInvoice(t, w)
	assert.True(t, strings.HasPrefix(resp.Invoice.Logo, "data:image/png;base64,"))

	w = doJSON(t, srv, http.MethodDelete, "/api/invoice/logo", nil)
	resp = decodeInvoice(t, w)
	assert.Empty(t, resp.Invoice.Logo)
}

func TestLogoUploadRejectsNonImage(t *testing.T) {
	srv := newTestServer(t)

	body, contentType := multipartBody(t, "logo", "logo.png", []byte("not an image"))
	req := httptest.NewRequest(http.MethodPost, "/api/invoice/logo", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetRequiresConfirmation(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPut, "/api/invoice/fields", fieldCommitRequest{
		Section: editor.SectionTitle, Value: "Changed",
	})

	w := doJSON(t, srv, http.MethodPost, "/api/invoice/reset", resetRequest{Confirm: false})
	assert.Equal(t, http.StatusConflict, w.Code)

	resp := decodeInvoice(t, doJSON(t, srv, http.MethodGet, "/api/invoice", nil))
	assert.Equal(t, "Changed", resp.Invoice.Title)

	w = doJSON(t, srv, http.MethodPost, "/api/invoice/reset", resetRequest{Confirm: true})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeInvoice(t, w)
	assert.Equal(t, domain.Default(), resp.Invoice)
}

func TestPrintPDF(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/invoice/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestViewHTML(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "BUSINESS NAME")
	assert.Contains(t, w.Body.String(), "$275.00")
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/invoice", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicepad/internal/domain"
	"invoicepad/internal/editor"
	"invoicepad/internal/interchange"
	"invoicepad/internal/render"
)

// maxUploadSizeBytes caps logo and import uploads.
const maxUploadSizeBytes int64 = 5 * 1024 * 1024

type fieldCommitRequest struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

type lineItemCommitRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type socialLinkUpdateRequest struct {
	Type *string `json:"type"`
	URL  *string `json:"url"`
}

type resetRequest struct {
	Confirm bool `json:"confirm"`
}

// invoiceResponse is the render payload: the document plus its freshly
// derived totals, formatted for display.
type invoiceResponse struct {
	Invoice          domain.Invoice `json:"invoice"`
	Totals           totalsResponse `json:"totals"`
	ActiveSocialLink string         `json:"activeSocialLink,omitempty"`
}

type totalsResponse struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func (s *Server) snapshotResponse() invoiceResponse {
	snap := s.sess.Snapshot()
	return invoiceResponse{
		Invoice: snap.Invoice,
		Totals: totalsResponse{
			Subtotal: domain.Display(snap.Totals.Subtotal),
			Discount: domain.Display(snap.Totals.Discount),
			Tax:      domain.Display(snap.Totals.Tax),
			Total:    domain.Display(snap.Totals.Total),
		},
		ActiveSocialLink: snap.ActiveSocialLink,
	}
}

func (s *Server) getInvoice(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshotResponse())
}

func (s *Server) commitField(c *gin.Context) {
	var req fieldCommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := s.sess.Commit(c.Request.Context(), req.Section, req.Field, req.Value); err != nil {
		if errors.Is(err, editor.ErrUnknownField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.snapshotResponse())
}

func (s *Server) addLineItem(c *gin.Context) {
	item := s.sess.AddLineItem(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (s *Server) commitLineItem(c *gin.Context) {
	var req lineItemCommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := s.sess.CommitLineItem(c.Request.Context(), c.Param("id"), req.Field, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.snapshotResponse())
}

func (s *Server) removeLineItem(c *gin.Context) {
	s.sess.RemoveLineItem(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, s.snapshotResponse())
}

func (s *Server) addSocialLink(c *gin.Context) {
	link := s.sess.AddSocialLink(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"socialLink": link})
}

func (s *Server) updateSocialLink(c *gin.Context) {
	var req socialLinkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	id := c.Param("id")
	if req.Type != nil {
		s.sess.UpdateSocialLinkType(c.Request.Context(), id, *req.Type)
	}
	if req.URL != nil {
		s.sess.UpdateSocialLinkURL(c.Request.Context(), id, *req.URL)
	}
	c.JSON(http.StatusOK, s.snapshotResponse())
}

func (s *Server) removeSocialLink(c *gin.Context) {
	s.sess.RemoveSocialLink(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, s.snapshotResponse())
}

type openEditorRequest struct {
	ID string `json:"id"`
}

func (s *Server) openSocialLinkEditor(c *gin.Context) {
	var req openEditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	s.sess.OpenSocialLinkEditor(req.ID)
	c.JSON(http.StatusOK, s.snapshotResponse())
}

func (s *Server) closeSocialLinkEditor(c *gin.Context) {
	s.sess.CloseSocialLinkEditor()
	c.JSON(http.StatusOK, s.snapshotResponse())
}

func (s *Server) uploadLogo(c *gin.Context) {
	payload, ok := s.readUpload(c, "logo")
	if !ok {
		return
	}
	if err := s.sess.SetLogo(c.Request.Context(), payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image file"})
		return
	}
	c.JSON(http.StatusOK, s.snapshotResponse())
}

func (s *Server) removeLogo(c *gin.Context) {
	s.sess.RemoveLogo(c.Request.Context())
	c.JSON(http.StatusOK, s.snapshotResponse())
}

func (s *Server) exportInvoice(c *gin.Context) {
	snap := s.sess.Snapshot()
	data, err := interchange.Export(snap.Invoice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	name := interchange.FileName(snap.Invoice)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) importInvoice(c *gin.Context) {
	payload, ok := s.readUpload(c, "file")
	if !ok {
		return
	}
	inv, err := interchange.Import(payload)
	if err != nil {
		// The current document stays untouched.
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON file"})
		return
	}
	s.sess.Replace(c.Request.Context(), inv)
	c.JSON(http.StatusOK, s.snapshotResponse())
}

func (s *Server) resetInvoice(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := s.sess.Reset(c.Request.Context(), req.Confirm); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "reset requires confirmation"})
		return
	}
	c.JSON(http.StatusOK, s.snapshotResponse())
}

func (s *Server) printPDF(c *gin.Context) {
	snap := s.sess.Snapshot()

	var buf bytes.Buffer
	if err := render.PDF(snap.Invoice, &buf); err != nil {
		s.log.WithError(err).Error("Failed to render PDF")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render PDF"})
		return
	}
	name := fmt.Sprintf("invoice-%s.pdf", snap.Invoice.InvoiceInfo.Number)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// readUpload pulls one multipart file field, enforcing the size cap. It
// writes the error response itself and reports success through ok.
func (s *Server) readUpload(c *gin.Context, field string) (payload []byte, ok bool) {
	header, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s file is required", field)})
		return nil, false
	}
	if header.Size > maxUploadSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return nil, false
	}
	defer f.Close()

	payload, err = io.ReadAll(io.LimitReader(f, maxUploadSizeBytes+1))
	if err != nil || int64(len(payload)) > maxUploadSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return nil, false
	}
	return payload, true
}

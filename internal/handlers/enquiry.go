package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/service"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
)

type EnquiryHandler struct {
	Svc *service.EnquiryService
}

type enquiryCreated struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	EnquiryID string `json:"enquiry_id"`
}

// SubmitEnquiry stores the enquiry, answers the client and only then hands the
// owner notification to the background runner.
func (h *EnquiryHandler) SubmitEnquiry(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "enquiry_submit")

	var req transport.EnquiryRequest
	if err := bind(c, l, "enquiry_submit_error", &req); err != nil {
		return err
	}

	e, err := h.Svc.Submit(ctx, req)
	if err != nil {
		if StatusFor(err) >= http.StatusInternalServerError {
			l.Error("enquiry_submit_error", "status", http.StatusInternalServerError, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Error sending enquiry. Please try again.").SetInternal(err)
		}
		return fail(l, "enquiry_submit_error", err)
	}

	l.Info("enquiry_created", "enquiry_id", e.ID, "items", len(e.Items))
	if err := c.JSON(http.StatusOK, enquiryCreated{
		Success:   true,
		Message:   "Enquiry sent successfully",
		EnquiryID: e.ID,
	}); err != nil {
		return err
	}
	c.Response().Flush()

	h.Svc.Notify(ctx, e)
	return nil
}

func (h *EnquiryHandler) GetEnquiries(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "enquiries_list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "enquiries_list_error", err)
	}
	return respond(c, http.StatusOK, "", nonNil(items))
}

func (h *EnquiryHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "enquiry_status", "id", c.Param("id"))

	var req transport.EnquiryStatusRequest
	if err := bind(c, l, "enquiry_status_error", &req); err != nil {
		return err
	}
	e, err := h.Svc.UpdateStatus(ctx, c.Param("id"), req)
	if err != nil {
		return fail(l, "enquiry_status_error", err)
	}

	l.Info("enquiry_status_updated", "status", e.Status)
	return respond(c, http.StatusOK, "", e)
}

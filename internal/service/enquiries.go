package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/models"
	"github.com/Skotchmaster/furnishing_catalog/internal/repo"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
	"github.com/Skotchmaster/furnishing_catalog/internal/util"
)

const (
	defaultEmailTimeout = 60 * time.Second
	enquiryNotFound     = "Enquiry not found"
)

type EnquiryService struct {
	Repo   *repo.GormRepo
	Mailer Mailer
	Runner Runner
	Events EventPublisher

	// StrictPhone rejects numbers that are not ten digit Indian mobiles.
	StrictPhone bool
	// StrictEmail rejects a present email that does not look like an address.
	StrictEmail bool
	// MaxQuantity caps item quantities when positive.
	MaxQuantity  int
	EmailTimeout time.Duration
}

// Submit validates and stores a new enquiry. It never waits on mail delivery;
// callers hand the result to Notify once the response is on its way.
func (s *EnquiryService) Submit(ctx context.Context, req transport.EnquiryRequest) (*models.Enquiry, error) {
	name := strings.TrimSpace(req.UserName)
	phone := strings.TrimSpace(req.UserPhone)
	if name == "" || phone == "" {
		return nil, validationf("Name and phone are required")
	}
	if s.StrictPhone {
		cleaned, err := util.ValidatePhone(phone)
		if err != nil {
			return nil, validationf("Please enter a valid 10-digit phone number")
		}
		phone = cleaned
	}
	email := strings.ToLower(strings.TrimSpace(req.UserEmail))
	if s.StrictEmail {
		if _, err := util.ValidateEmail(email); err != nil {
			return nil, validationf("Please enter a valid email address")
		}
	}
	if len(req.Items) == 0 {
		return nil, validationf("At least one product item is required")
	}

	items := make([]models.EnquiryItem, 0, len(req.Items))
	for i, it := range req.Items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			return nil, validationf("Product title is required for each item")
		}
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 1 {
			return nil, validationf("Item %d: Quantity must be at least 1", i+1)
		}
		if s.MaxQuantity > 0 && qty > s.MaxQuantity {
			return nil, validationf("Item %d: Quantity must be between 1 and %d", i+1, s.MaxQuantity)
		}

		item := models.EnquiryItem{
			Title:                title,
			SelectedColorTexture: strings.TrimSpace(it.SelectedColorTexture),
			Quantity:             qty,
			PriceAtTime:          it.PriceAtTime,
		}
		if hex, ok := util.NormalizeObjectID(it.ProductID); ok {
			item.ProductID = &hex
		}
		items = append(items, item)
	}

	e := models.Enquiry{
		UserName:    name,
		UserPhone:   phone,
		UserEmail:   email,
		UserAddress: strings.TrimSpace(req.UserAddress),
		Items:       items,
		Status:      models.EnquiryPending,
		EmailSent:   false,
	}
	return s.Repo.CreateEnquiry(ctx, &e)
}

// Notify schedules the enquiry.created event and the owner email for e on the
// background runner. The task owns its own context; delivery failures are
// logged and the email_sent flag stays false.
func (s *EnquiryService) Notify(ctx context.Context, e *models.Enquiry) {
	l := logging.FromContext(ctx).With("enquiry_id", e.ID)
	if s.Mailer == nil {
		l.Info("enquiry_email_skipped", "reason", "mailer not configured")
		if s.Events == nil {
			return
		}
	}
	event := *e

	data := EnquiryEmail{
		EnquiryID:   e.ID,
		UserName:    e.UserName,
		UserPhone:   e.UserPhone,
		UserEmail:   e.UserEmail,
		UserAddress: e.UserAddress,
		Items:       slices.Clone(e.Items),
	}
	event.Items = data.Items
	timeout := s.EmailTimeout
	if timeout <= 0 {
		timeout = defaultEmailTimeout
	}

	task := func() {
		bg, cancel := context.WithTimeout(logging.IntoContext(context.Background(), l), timeout)
		defer cancel()

		publish(bg, s.Events, TopicEnquiries, "enquiry.created", event.ID, &event)
		if s.Mailer == nil {
			return
		}
		if err := s.Mailer.SendEnquiry(bg, data); err != nil {
			l.Error("enquiry_email_failed", "error", err)
			return
		}
		if err := s.Repo.MarkEnquiryEmailSent(bg, data.EnquiryID); err != nil {
			l.Error("enquiry_email_flag_failed", "error", err)
			return
		}
		l.Info("enquiry_email_sent")
	}

	if s.Runner == nil {
		go task()
		return
	}
	if err := s.Runner.Submit(task); err != nil {
		l.Error("enquiry_email_not_scheduled", "error", err)
	}
}

// List returns every enquiry newest first with item product references resolved.
func (s *EnquiryService) List(ctx context.Context) ([]models.Enquiry, error) {
	items, err := s.Repo.ListEnquiries(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, e := range items {
		for _, it := range e.Items {
			if it.ProductID != nil && !slices.Contains(ids, *it.ProductID) {
				ids = append(ids, *it.ProductID)
			}
		}
	}
	refs, err := s.Repo.ProductRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range items {
		for j := range items[i].Items {
			it := &items[i].Items[j]
			if it.ProductID == nil {
				continue
			}
			if ref, ok := refs[*it.ProductID]; ok {
				it.Product = &ref
			}
		}
	}
	return items, nil
}

func (s *EnquiryService) UpdateStatus(ctx context.Context, id string, req transport.EnquiryStatusRequest) (*models.Enquiry, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !slices.Contains(models.EnquiryStatuses, status) {
		return nil, validationf("Invalid status. Must be one of: %s", strings.Join(models.EnquiryStatuses, ", "))
	}

	e, err := s.Repo.UpdateEnquiryStatus(ctx, id, status, strings.TrimSpace(req.AdminNotes))
	if err != nil {
		return nil, storeErr(err, enquiryNotFound, "")
	}

	publish(ctx, s.Events, TopicEnquiries, "enquiry.status_changed", e.ID, map[string]any{"status": e.Status})
	return e, nil
}

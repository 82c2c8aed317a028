package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furnishing_catalog/internal/models"
	"github.com/Skotchmaster/furnishing_catalog/internal/transport"
)

func validEnquiry() transport.EnquiryRequest {
	return transport.EnquiryRequest{
		UserName:  "Asha Rao",
		UserPhone: "98765 43210",
		UserEmail: "Asha@Example.com",
		Items: []transport.EnquiryItemRequest{
			{Title: "A"},
			{Title: "B", Quantity: 3},
		},
	}
}

func TestEnquiryService_Submit_PersistsPending(t *testing.T) {
	t.Parallel()

	svc := &EnquiryService{Repo: newTestRepo(t)}
	ctx := context.Background()

	created, err := svc.Submit(ctx, validEnquiry())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	stored, err := svc.Repo.GetEnquiry(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnquiryPending, stored.Status)
	assert.False(t, stored.EmailSent)
	assert.Equal(t, "asha@example.com", stored.UserEmail)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, 1, stored.Items[0].Quantity)
	assert.Equal(t, 3, stored.Items[1].Quantity)
}

func TestEnquiryService_Submit_ProductReferences(t *testing.T) {
	t.Parallel()

	svc := &EnquiryService{Repo: newTestRepo(t)}
	req := validEnquiry()
	req.Items = []transport.EnquiryItemRequest{
		{Title: "valid", ProductID: "65A1B2C3D4E5F60718293A4B"},
		{Title: "invalid", ProductID: "not-an-id"},
		{Title: "absent"},
	}

	created, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, created.Items, 3)
	require.NotNil(t, created.Items[0].ProductID)
	assert.Equal(t, "65a1b2c3d4e5f60718293a4b", *created.Items[0].ProductID)
	assert.Nil(t, created.Items[1].ProductID)
	assert.Nil(t, created.Items[2].ProductID)
}

func TestEnquiryService_Submit_ValidationPersistsNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(r *transport.EnquiryRequest)
	}{
		{name: "missing name", mutate: func(r *transport.EnquiryRequest) { r.UserName = " " }},
		{name: "missing phone", mutate: func(r *transport.EnquiryRequest) { r.UserPhone = "" }},
		{name: "no items", mutate: func(r *transport.EnquiryRequest) { r.Items = nil }},
		{name: "item without title", mutate: func(r *transport.EnquiryRequest) { r.Items[1].Title = "" }},
		{name: "negative quantity", mutate: func(r *transport.EnquiryRequest) { r.Items[0].Quantity = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &EnquiryService{Repo: newTestRepo(t)}
			ctx := context.Background()
			req := validEnquiry()
			tt.mutate(&req)

			_, err := svc.Submit(ctx, req)
			require.ErrorIs(t, err, ErrValidation)

			all, err := svc.Repo.ListEnquiries(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestEnquiryService_Submit_LooseEmailAndLargeQuantity(t *testing.T) {
	t.Parallel()

	svc := &EnquiryService{Repo: newTestRepo(t)}
	req := validEnquiry()
	req.UserEmail = "  Asha@LocalHost "
	req.Items[0].Quantity = 250

	created, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "asha@localhost", created.UserEmail)
	assert.Equal(t, 250, created.Items[0].Quantity)
}

func TestEnquiryService_Submit_OptInChecks(t *testing.T) {
	t.Parallel()

	svc := &EnquiryService{Repo: newTestRepo(t), StrictEmail: true, MaxQuantity: 100}
	ctx := context.Background()

	req := validEnquiry()
	req.UserEmail = "nope"
	_, err := svc.Submit(ctx, req)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Please enter a valid email address", err.Error())

	req = validEnquiry()
	req.Items[0].Quantity = 101
	_, err = svc.Submit(ctx, req)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Item 1: Quantity must be between 1 and 100", err.Error())

	req = validEnquiry()
	req.UserEmail = ""
	req.Items[0].Quantity = 100
	_, err = svc.Submit(ctx, req)
	assert.NoError(t, err)
}

func TestEnquiryService_Submit_StrictPhone(t *testing.T) {
	t.Parallel()

	svc := &EnquiryService{Repo: newTestRepo(t), StrictPhone: true}
	req := validEnquiry()

	created, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", created.UserPhone)

	req.UserPhone = "12345"
	_, err = svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEnquiryService_Notify_FlipsFlagAfterDelivery(t *testing.T) {
	t.Parallel()

	runner := &queueRunner{}
	mailer := &fakeMailer{}
	svc := &EnquiryService{Repo: newTestRepo(t), Mailer: mailer, Runner: runner}
	ctx := context.Background()

	created, err := svc.Submit(ctx, validEnquiry())
	require.NoError(t, err)
	svc.Notify(ctx, created)

	stored, err := svc.Repo.GetEnquiry(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.EmailSent, "flag must not flip before the task runs")

	runner.RunAll()

	stored, err = svc.Repo.GetEnquiry(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.EmailSent)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, created.ID, mailer.sent[0].EnquiryID)
	assert.Len(t, mailer.sent[0].Items, 2)
}

func TestEnquiryService_Notify_FailureLeavesFlag(t *testing.T) {
	t.Parallel()

	runner := &queueRunner{}
	svc := &EnquiryService{Repo: newTestRepo(t), Mailer: &fakeMailer{err: errBoom}, Runner: runner}
	ctx := context.Background()

	created, err := svc.Submit(ctx, validEnquiry())
	require.NoError(t, err)
	svc.Notify(ctx, created)
	runner.RunAll()

	stored, err := svc.Repo.GetEnquiry(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.EmailSent)
}

func TestEnquiryService_Notify_RejectedTaskIsDropped(t *testing.T) {
	t.Parallel()

	mailer := &fakeMailer{}
	svc := &EnquiryService{Repo: newTestRepo(t), Mailer: mailer, Runner: &queueRunner{err: errors.New("pool overload")}}

	created, err := svc.Submit(context.Background(), validEnquiry())
	require.NoError(t, err)
	svc.Notify(context.Background(), created)
	assert.Empty(t, mailer.sent)
}

func TestEnquiryService_CreatedEventPublishedInBackground(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	runner := &queueRunner{}
	svc := &EnquiryService{Repo: newTestRepo(t), Events: pub, Runner: runner}
	ctx := context.Background()

	created, err := svc.Submit(ctx, validEnquiry())
	require.NoError(t, err)
	assert.Empty(t, pub.Types(), "nothing is published on the request path")

	svc.Notify(ctx, created)
	assert.Empty(t, pub.Types())

	runner.RunAll()
	assert.Equal(t, []string{"enquiry.created"}, pub.Types())
	assert.Equal(t, TopicEnquiries, pub.events[0].Topic)
	assert.Equal(t, created.ID, pub.events[0].Key)
}

func TestEnquiryService_List_ResolvesProducts(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &EnquiryService{Repo: r}
	ctx := context.Background()

	prod, err := r.CreateProduct(ctx, &models.Product{Title: "Velvet Cushion", Category: "Cushions", IsActive: true})
	require.NoError(t, err)

	first, err := svc.Submit(ctx, validEnquiry())
	require.NoError(t, err)
	req := validEnquiry()
	req.Items = []transport.EnquiryItemRequest{{Title: "Velvet Cushion", ProductID: prod.ID}}
	second, err := svc.Submit(ctx, req)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	ids := []string{list[0].ID, list[1].ID}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)
	for _, e := range list {
		if e.ID != second.ID {
			continue
		}
		require.NotNil(t, e.Items[0].Product)
		assert.Equal(t, "Velvet Cushion", e.Items[0].Product.Title)
		assert.Equal(t, "Cushions", e.Items[0].Product.Category)
	}
}

func TestEnquiryService_UpdateStatus(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	svc := &EnquiryService{Repo: newTestRepo(t), Events: pub}
	ctx := context.Background()

	created, err := svc.Submit(ctx, validEnquiry())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, transport.EnquiryStatusRequest{Status: "contactd"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, "0123456789abcdef01234567", transport.EnquiryStatusRequest{Status: "contacted"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateStatus(ctx, "bogus", transport.EnquiryStatusRequest{Status: "contacted"})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateStatus(ctx, created.ID, transport.EnquiryStatusRequest{Status: "Converted", AdminNotes: "paid"})
	require.NoError(t, err)
	assert.Equal(t, models.EnquiryConverted, updated.Status)
	assert.Equal(t, "paid", updated.AdminNotes)

	assert.Equal(t, []string{"enquiry.status_changed"}, pub.Types())
}

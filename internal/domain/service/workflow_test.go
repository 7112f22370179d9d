package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nedconnect/backend/internal/domain/common/errorz"
	"github.com/nedconnect/backend/internal/domain/entity"
)

// Walks the whole lifecycle: a society account signs up, cannot post until an
// admin links it, proposes an event, the admin approves it, a student
// registers, hits the duplicate guard, and cancels.
func TestEventLifecycleWorkflow(t *testing.T) {
	ctx := context.Background()

	accounts := newMemAccountStorage()
	societies := newMemSocietyStorage()
	events := newMemEventStorage()
	registrations := newMemRegistrationStorage()
	sessions := newMemSessionStorage()
	mailer := &memMailer{}

	accountService := NewAccountService(accounts, societies)
	authService := NewAuthService(accounts, sessions, time.Hour)
	societyService := NewSocietyService(societies)
	eventService := NewEventService(events, &memPosterStore{})
	registrationService := NewRegistrationService(testLogger(), registrations, events, accounts, mailer)

	societyAccount, err := accountService.SignUp(ctx, SignUpInput{
		FullName: "Computer Science Society",
		Email:    "css@cloud.neduet.edu.pk",
		Username: "css",
		Password: "s3cret-pass",
		Role:     entity.RoleSociety,
	})
	require.NoError(t, err)

	token, _, err := authService.Login(ctx, "css", "s3cret-pass", entity.RoleSociety)
	require.NoError(t, err)

	// Unlinked society accounts are authenticated but cannot post.
	access, err := authService.Resolve(ctx, token)
	require.NoError(t, err)
	_, err = access.RequireSociety()
	assert.ErrorIs(t, err, errorz.NotProvisioned)

	society, err := societyService.Create(ctx, "CS Society")
	require.NoError(t, err)
	require.NoError(t, accountService.LinkToSociety(ctx, societyAccount.ID, society.ID))

	// The link takes effect on the next resolve without a fresh login.
	access, err = authService.Resolve(ctx, token)
	require.NoError(t, err)
	societyID, err := access.RequireSociety()
	require.NoError(t, err)
	assert.Equal(t, society.ID, societyID)

	event, err := eventService.Propose(ctx, societyID, ProposeInput{
		Title:     "Tech Fair",
		EventDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		Venue:     "Main Auditorium",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EventPending, event.Status)

	// Registration is closed until the admin approves.
	student, err := accountService.SignUp(ctx, SignUpInput{
		FullName: "Bilal Ahmed",
		Email:    "bilal@cloud.neduet.edu.pk",
		Username: "bilal",
		Password: "s3cret-pass",
		Role:     entity.RoleStudent,
	})
	require.NoError(t, err)
	_, err = registrationService.Register(ctx, student.ID, event.ID, attendee("Bilal Ahmed", "CS"))
	assert.ErrorIs(t, err, errorz.EventNotApproved)

	_, err = eventService.Decide(ctx, event.ID, entity.EventApproved)
	require.NoError(t, err)

	feed, err := eventService.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, event.ID, feed[0].ID)

	_, err = registrationService.Register(ctx, student.ID, event.ID, attendee("Bilal Ahmed", "CS"))
	require.NoError(t, err)
	_, err = registrationService.Register(ctx, student.ID, event.ID, attendee("Bilal Ahmed", "CS"))
	assert.ErrorIs(t, err, errorz.AlreadyRegistered)

	require.NoError(t, registrationService.Cancel(ctx, student.ID, event.ID))
	registered, err := registrationService.IsRegistered(ctx, student.ID, event.ID)
	require.NoError(t, err)
	assert.False(t, registered)
}

package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/uzeuro/association-api/internal/content"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:registration_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&content.Webinar{}, &content.Event{}, &WebinarRegistration{}, &EventRegistration{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	service, err := NewService(ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return service, db
}

func seedWebinar(t *testing.T, db *gorm.DB, capacity, registered int64) int64 {
	t.Helper()
	webinar := content.Webinar{Title: "Visa-free travel Q&A", MaxCapacity: capacity, RegisteredCount: registered, Status: "active"}
	if err := db.Create(&webinar).Error; err != nil {
		t.Fatalf("failed to seed webinar: %v", err)
	}
	return webinar.ID
}

func seedEvent(t *testing.T, db *gorm.DB, capacity, registered int64) int64 {
	t.Helper()
	event := content.Event{Title: "Annual Conference", MaxCapacity: capacity, RegisteredCount: registered, Status: "active"}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
	return event.ID
}

func webinarRequest(webinarID *int64, email string) WebinarRequest {
	return WebinarRequest{
		Request:      Request{Name: "Aziza Karimova", Email: email},
		WebinarID:    webinarID,
		WebinarTitle: "Visa-free travel Q&A",
	}
}

func TestRegisterWebinarRejectsWhenFull(t *testing.T) {
	service, db := newTestService(t)
	webinarID := seedWebinar(t, db, 2, 2)

	admission, err := service.RegisterWebinar(context.Background(), webinarRequest(&webinarID, "a@example.com"))
	if !errors.Is(err, ErrCapacityFull) {
		t.Fatalf("expected ErrCapacityFull, got %v", err)
	}
	if admission.Remaining != 0 {
		t.Fatalf("expected 0 remaining, got %d", admission.Remaining)
	}

	var rows int64
	if err := db.Model(&WebinarRegistration{}).Count(&rows).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected no registration rows, got %d", rows)
	}

	var webinar content.Webinar
	if err := db.Take(&webinar, webinarID).Error; err != nil {
		t.Fatalf("webinar read failed: %v", err)
	}
	if webinar.RegisteredCount != 2 {
		t.Fatalf("registered_count must not change on rejection, got %d", webinar.RegisteredCount)
	}
}

func TestRegisterWebinarRejectsDuplicateEmail(t *testing.T) {
	service, db := newTestService(t)
	webinarID := seedWebinar(t, db, 2, 0)

	if _, err := service.RegisterWebinar(context.Background(), webinarRequest(&webinarID, "a@example.com")); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	var stored WebinarRegistration
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("registration read failed: %v", err)
	}
	if !stored.WebinarResolved {
		t.Fatal("gated registration must be marked resolved")
	}

	admission, err := service.RegisterWebinar(context.Background(), webinarRequest(&webinarID, "a@example.com"))
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	if admission.Remaining != 1 {
		t.Fatalf("expected 1 remaining, got %d", admission.Remaining)
	}

	var webinar content.Webinar
	if err := db.Take(&webinar, webinarID).Error; err != nil {
		t.Fatalf("webinar read failed: %v", err)
	}
	if webinar.RegisteredCount != 1 {
		t.Fatalf("expected registered_count to increment exactly once, got %d", webinar.RegisteredCount)
	}
}

func TestRegisterWebinarSkipsGatesWhenWebinarMissing(t *testing.T) {
	service, db := newTestService(t)
	missing := int64(999)

	if _, err := service.RegisterWebinar(context.Background(), webinarRequest(&missing, "a@example.com")); err != nil {
		t.Fatalf("lenient registration failed: %v", err)
	}

	var stored WebinarRegistration
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("registration read failed: %v", err)
	}
	if stored.WebinarID == nil || *stored.WebinarID != missing {
		t.Fatalf("unexpected webinar id: %v", stored.WebinarID)
	}
	if stored.WebinarTitle != "Visa-free travel Q&A" {
		t.Fatalf("expected denormalized title snapshot, got %q", stored.WebinarTitle)
	}
	if stored.Status != StatusRegistered {
		t.Fatalf("expected status %q, got %q", StatusRegistered, stored.Status)
	}
	if stored.WebinarResolved {
		t.Fatal("ungated registration must not be marked resolved")
	}
}

func TestRegisterWebinarAllowsRepeatSignupWhenWebinarMissing(t *testing.T) {
	service, db := newTestService(t)
	missing := int64(777)

	if _, err := service.RegisterWebinar(context.Background(), webinarRequest(&missing, "a@example.com")); err != nil {
		t.Fatalf("first lenient registration failed: %v", err)
	}
	if _, err := service.RegisterWebinar(context.Background(), webinarRequest(&missing, "a@example.com")); err != nil {
		t.Fatalf("repeat lenient registration failed: %v", err)
	}

	var rows int64
	if err := db.Model(&WebinarRegistration{}).
		Where("webinar_id = ? AND email = ?", missing, "a@example.com").
		Count(&rows).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if rows != 2 {
		t.Fatalf("expected both lenient registrations stored, got %d", rows)
	}
}

func TestRegisterWebinarDefaultsCapacityWhenUnset(t *testing.T) {
	service, db := newTestService(t)
	webinarID := seedWebinar(t, db, 1, defaultWebinarCapacity)
	// Legacy rows carry a zero capacity; the default applies at admission time.
	if err := db.Model(&content.Webinar{}).Where("id = ?", webinarID).UpdateColumn("max_capacity", 0).Error; err != nil {
		t.Fatalf("failed to zero capacity: %v", err)
	}

	_, err := service.RegisterWebinar(context.Background(), webinarRequest(&webinarID, "a@example.com"))
	if !errors.Is(err, ErrCapacityFull) {
		t.Fatalf("expected default capacity of %d to reject, got %v", defaultWebinarCapacity, err)
	}
}

func TestRegisterEventRequiresExistingEvent(t *testing.T) {
	service, db := newTestService(t)

	_, err := service.RegisterEvent(context.Background(), EventRequest{
		Request: Request{Name: "Aziza Karimova", Email: "a@example.com"},
		EventID: 42,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var rows int64
	if err := db.Model(&EventRegistration{}).Count(&rows).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected no registration rows, got %d", rows)
	}
}

func TestRegisterEventReportsRemainingSpots(t *testing.T) {
	service, db := newTestService(t)
	eventID := seedEvent(t, db, 10, 3)

	admission, err := service.RegisterEvent(context.Background(), EventRequest{
		Request: Request{Name: "Aziza Karimova", Email: "a@example.com"},
		EventID: eventID,
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if admission.Remaining != 6 {
		t.Fatalf("expected 6 remaining, got %d", admission.Remaining)
	}
	if admission.ResourceTitle != "Annual Conference" {
		t.Fatalf("unexpected resource title %q", admission.ResourceTitle)
	}

	var event content.Event
	if err := db.Take(&event, eventID).Error; err != nil {
		t.Fatalf("event read failed: %v", err)
	}
	if event.RegisteredCount != 4 {
		t.Fatalf("expected registered_count 4, got %d", event.RegisteredCount)
	}
}

func TestRegisterEventAdmitsAtMostRemainingCapacityUnderConcurrency(t *testing.T) {
	service, db := newTestService(t)
	eventID := seedEvent(t, db, 5, 4)

	const attempts = 8
	var wg sync.WaitGroup
	admitted := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := service.RegisterEvent(context.Background(), EventRequest{
				Request: Request{Name: "Guest", Email: fmt.Sprintf("guest%d@example.com", i)},
				EventID: eventID,
			})
			if err == nil {
				admitted <- struct{}{}
				return
			}
			if !errors.Is(err, ErrCapacityFull) {
				t.Errorf("unexpected rejection: %v", err)
			}
		}(i)
	}
	wg.Wait()
	close(admitted)

	if got := len(admitted); got != 1 {
		t.Fatalf("expected exactly 1 admission, got %d", got)
	}

	var event content.Event
	if err := db.Take(&event, eventID).Error; err != nil {
		t.Fatalf("event read failed: %v", err)
	}
	if event.RegisteredCount != 5 {
		t.Fatalf("registered_count must stop at capacity, got %d", event.RegisteredCount)
	}
}

func TestDeleteWebinarRegistrationLeavesCounterUntouched(t *testing.T) {
	service, db := newTestService(t)
	webinarID := seedWebinar(t, db, 5, 0)

	if _, err := service.RegisterWebinar(context.Background(), webinarRequest(&webinarID, "a@example.com")); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	var stored WebinarRegistration
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("registration read failed: %v", err)
	}
	if err := service.DeleteWebinarRegistration(context.Background(), stored.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var webinar content.Webinar
	if err := db.Take(&webinar, webinarID).Error; err != nil {
		t.Fatalf("webinar read failed: %v", err)
	}
	if webinar.RegisteredCount != 1 {
		t.Fatalf("counter must not decrement on delete, got %d", webinar.RegisteredCount)
	}
}

func TestListWebinarRegistrationsScopesByWebinar(t *testing.T) {
	service, db := newTestService(t)
	first := seedWebinar(t, db, 5, 0)
	second := seedWebinar(t, db, 5, 0)

	if _, err := service.RegisterWebinar(context.Background(), webinarRequest(&first, "a@example.com")); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if _, err := service.RegisterWebinar(context.Background(), webinarRequest(&second, "b@example.com")); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	all, err := service.ListWebinarRegistrations(context.Background(), nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(all))
	}

	scoped, err := service.ListWebinarRegistrations(context.Background(), &second)
	if err != nil {
		t.Fatalf("scoped list failed: %v", err)
	}
	if len(scoped) != 1 || scoped[0].Email != "b@example.com" {
		t.Fatalf("unexpected scoped result: %+v", scoped)
	}
}

func TestUpdateWebinarStatus(t *testing.T) {
	service, db := newTestService(t)
	webinarID := seedWebinar(t, db, 5, 0)

	if _, err := service.RegisterWebinar(context.Background(), webinarRequest(&webinarID, "a@example.com")); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	var stored WebinarRegistration
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("registration read failed: %v", err)
	}

	if err := service.UpdateWebinarStatus(context.Background(), stored.ID, StatusAttended); err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if err := db.Take(&stored, stored.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Status != StatusAttended {
		t.Fatalf("expected status %q, got %q", StatusAttended, stored.Status)
	}

	if err := service.UpdateWebinarStatus(context.Background(), 9999, StatusMissed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

package backend

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestStub() *StubClient {
	return NewStubClient(StubOptions{Now: func() time.Time { return fixedNow }})
}

// assertKind fails the test if err is not an AuthError of the given kind.
func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	got, ok := KindOf(err)
	if !ok {
		t.Fatalf("expected *AuthError, got %T: %v", err, err)
	}
	if got != want {
		t.Errorf("expected kind %s, got %s (%v)", want, got, err)
	}
}

// --- SignInWithPassword ---

func TestStubSignIn_DemoCredentials(t *testing.T) {
	s := newTestStub()

	res, err := s.SignInWithPassword(context.Background(), DemoEmail, DemoPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.User.ID != DemoUserID || res.User.Name != "Demo User" {
		t.Errorf("unexpected user %+v", res.User)
	}
	if !res.User.Confirmed() {
		t.Error("demo user should be confirmed")
	}
	if res.Session.AccessToken != DemoToken || res.Session.RefreshToken != DemoRefreshToken {
		t.Errorf("unexpected session %+v", res.Session)
	}
	if !res.Session.ExpiresAt.Equal(fixedNow.Add(time.Hour)) {
		t.Errorf("expected expiry one hour out, got %s", res.Session.ExpiresAt)
	}
}

func TestStubSignIn_WrongPassword(t *testing.T) {
	_, err := newTestStub().SignInWithPassword(context.Background(), DemoEmail, "nope")
	assertKind(t, err, KindInvalidCredentials)
	if err.Error() != "Invalid email or password" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestStubSignIn_UnconfirmedEmail(t *testing.T) {
	_, err := newTestStub().SignInWithPassword(context.Background(), SlowDeliveryEmail, "whatever1")
	if !errors.Is(err, ErrEmailUnconfirmed) {
		t.Fatalf("expected ErrEmailUnconfirmed, got %v", err)
	}
	if !regexp.MustCompile(`Email not confirmed`).MatchString(err.Error()) {
		t.Errorf("message should mention unconfirmed email: %q", err.Error())
	}
}

// --- SignUp ---

func TestStubSignUp_Duplicate(t *testing.T) {
	_, err := newTestStub().SignUp(context.Background(), DuplicateEmail, "password1", SignUpOptions{})
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestStubSignUp_DelayedDeliveryIsPartialSuccess(t *testing.T) {
	res, err := newTestStub().SignUp(context.Background(), SlowDeliveryEmail, "password1", SignUpOptions{})
	if err != nil {
		t.Fatalf("delivery delay must not be a failure: %v", err)
	}
	if res.User == nil || res.User.Confirmed() {
		t.Fatalf("expected unconfirmed user, got %+v", res.User)
	}
	if !errors.Is(res.Warning, ErrDeliveryDelayed) {
		t.Errorf("expected delivery warning, got %v", res.Warning)
	}
}

func TestStubSignUp_NewAccount(t *testing.T) {
	res, err := newTestStub().SignUp(context.Background(), "new@example.com", "password1",
		SignUpOptions{Data: map[string]string{"name": "Ada"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Warning != nil {
		t.Errorf("unexpected warning %v", res.Warning)
	}
	if !regexp.MustCompile(`^user_[a-z0-9]{9}$`).MatchString(res.User.ID) {
		t.Errorf("unexpected id format %q", res.User.ID)
	}
	if res.User.Name != "Ada" || res.User.Email != "new@example.com" {
		t.Errorf("unexpected user %+v", res.User)
	}
	if res.User.Confirmed() {
		t.Error("new accounts start unconfirmed")
	}
}

// --- GetUser / SignOut / Resend ---

func TestStubGetUser(t *testing.T) {
	s := newTestStub()
	ctx := context.Background()

	u, err := s.GetUser(ctx, DemoToken)
	if err != nil || u == nil || u.ID != DemoUserID {
		t.Fatalf("expected demo user, got %+v, %v", u, err)
	}

	for _, tok := range []string{"", "other", "mock_jwt_token "} {
		u, err := s.GetUser(ctx, tok)
		if err != nil || u != nil {
			t.Errorf("token %q: expected (nil, nil), got %+v, %v", tok, u, err)
		}
	}
}

func TestStubSignOut_AlwaysSucceeds(t *testing.T) {
	if err := newTestStub().SignOut(context.Background(), "anything"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStubResend(t *testing.T) {
	s := newTestStub()
	if err := s.Resend(context.Background(), ResendInput{Email: SlowDeliveryEmail}); err != nil {
		t.Errorf("expected resend to succeed, got %v", err)
	}
	err := s.Resend(context.Background(), ResendInput{Email: "someone@example.com"})
	assertKind(t, err, KindResendFailed)
}

// --- Tables ---

func TestStubTables(t *testing.T) {
	s := newTestStub()
	ctx := context.Background()

	res, err := s.From("projects").Select(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Data) != 2 || res.Data[0]["id"] != "proj_1" || res.Data[1]["name"] != "Brand B" {
		t.Errorf("unexpected projects %v", res.Data)
	}

	res, err = s.From("reports").Select(ctx)
	if err != nil || len(res.Data) != 0 {
		t.Errorf("expected empty data, got %v, %v", res, err)
	}

	if _, err := s.From("projects").Insert(ctx, Record{"name": "x"}); err != nil {
		t.Errorf("insert: %v", err)
	}
	if _, err := s.From("projects").Update(ctx, Record{"name": "y"}, Match{"id": "proj_1"}); err != nil {
		t.Errorf("update: %v", err)
	}
	if _, err := s.From("projects").Delete(ctx, Match{"id": "proj_1"}); err != nil {
		t.Errorf("delete: %v", err)
	}
}

// --- Latency ---

func TestStubLatency_HonorsCancellation(t *testing.T) {
	s := NewStubClient(StubOptions{Latency: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SignInWithPassword(ctx, DemoEmail, DemoPassword)
	assertKind(t, err, KindUnavailable)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hydrosys/storefront/internal/backend"
)

func authBackend(t *testing.T, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	api, err := backend.New(srv.URL, 2*time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewClient(api)
}

func TestStoreLogin_PersistsPair(t *testing.T) {
	auth := authBackend(t, `{"token":"tok-1","userId":5,"correo":"ana@hydrosys.cl","nombre":"Ana","apellido":"Reyes","rol":"ADMINISTRADOR"}`)
	storage := NewMemStorage()
	store := NewStore(storage, auth)

	user, err := store.Login(context.Background(), "ana@hydrosys.cl", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != 5 || user.Email != "ana@hydrosys.cl" || !user.IsAdmin() {
		t.Fatalf("normalized user = %+v", user)
	}
	if store.Token() != "tok-1" {
		t.Fatalf("token = %q", store.Token())
	}

	creds, _ := storage.Load()
	if creds.Token != "tok-1" || creds.User == nil || creds.User.ID != 5 {
		t.Fatalf("persisted credentials = %+v", creds)
	}
}

func TestStoreLogin_NormalizesAlternateShape(t *testing.T) {
	auth := authBackend(t, `{"token":"tok-2","id":9,"email":"beto@hydrosys.cl"}`)
	store := NewStore(NewMemStorage(), auth)

	user, err := store.Login(context.Background(), "beto@hydrosys.cl", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != 9 {
		t.Fatalf("bare id should fill the user id, got %d", user.ID)
	}
	if user.Email != "beto@hydrosys.cl" {
		t.Fatalf("email fallback failed: %q", user.Email)
	}
	if user.FirstName != "Usuario" {
		t.Fatalf("missing name should default to Usuario, got %q", user.FirstName)
	}
	if user.IsAdmin() {
		t.Fatal("missing role should default to customer")
	}
}

func TestStoreRegister_FallsBackToSentFields(t *testing.T) {
	auth := authBackend(t, `{"token":"tok-3","userId":11}`)
	store := NewStore(NewMemStorage(), auth)

	user, err := store.Register(context.Background(), Registration{
		FirstName: "Carla", LastName: "Soto", Email: "carla@hydrosys.cl", Password: "x", Role: "cliente",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.FirstName != "Carla" || user.LastName != "Soto" || user.Email != "carla@hydrosys.cl" {
		t.Fatalf("sent fields should fill the gaps: %+v", user)
	}
}

func TestStoreLogout_ClearsBothSides(t *testing.T) {
	auth := authBackend(t, `{"token":"tok-4","userId":5,"correo":"ana@hydrosys.cl"}`)
	storage := NewMemStorage()
	store := NewStore(storage, auth)

	if _, err := store.Login(context.Background(), "ana@hydrosys.cl", "secret"); err != nil {
		t.Fatal(err)
	}
	if err := store.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := store.Current(); ok {
		t.Fatal("store should be unauthenticated after logout")
	}
	if store.Token() != "" {
		t.Fatal("token should be gone after logout")
	}
	creds, _ := storage.Load()
	if creds.Token != "" || creds.User != nil {
		t.Fatalf("storage should be cleared, got %+v", creds)
	}

	restored := NewStore(storage, auth)
	if _, ok := restored.Current(); ok {
		t.Fatal("a fresh store over cleared storage should start unauthenticated")
	}
}

func TestNewStore_RestoresSession(t *testing.T) {
	storage := NewMemStorage()
	user := &User{ID: 5, Email: "ana@hydrosys.cl", Role: RoleAdministrator}
	if err := storage.Save(Credentials{Token: "tok-5", User: user}); err != nil {
		t.Fatal(err)
	}

	store := NewStore(storage, nil)
	got, ok := store.Current()
	if !ok || got.ID != 5 {
		t.Fatalf("restore failed: %+v ok=%v", got, ok)
	}
	if store.Token() != "tok-5" {
		t.Fatalf("token = %q", store.Token())
	}
}

func TestNewStore_IgnoresHalfPair(t *testing.T) {
	storage := NewMemStorage()
	storage.Save(Credentials{Token: "orphan"})

	store := NewStore(storage, nil)
	if _, ok := store.Current(); ok {
		t.Fatal("a token without its identity must not authenticate the store")
	}
}

func TestStoreWatch_ObservesExternalLogout(t *testing.T) {
	storage := NewMemStorage()
	storage.Save(Credentials{Token: "tok-6", User: &User{ID: 5, Email: "ana@hydrosys.cl"}})
	store := NewStore(storage, nil)

	updates := store.Subscribe()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go store.Watch(ctx, 5*time.Millisecond)

	// Another process logs out against the same storage.
	storage.Clear()

	select {
	case u := <-updates:
		if u != nil {
			t.Fatalf("expected nil identity for logout, got %+v", u)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch never observed the external logout")
	}
	if _, ok := store.Current(); ok {
		t.Fatal("store should have folded the logout into memory")
	}
}

func TestStoreWatch_ObservesExternalLogin(t *testing.T) {
	storage := NewMemStorage()
	store := NewStore(storage, nil)

	updates := store.Subscribe()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go store.Watch(ctx, 5*time.Millisecond)

	storage.Save(Credentials{Token: "tok-7", User: &User{ID: 8, Email: "beto@hydrosys.cl"}})

	select {
	case u := <-updates:
		if u == nil || u.ID != 8 {
			t.Fatalf("expected the new identity, got %+v", u)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch never observed the external login")
	}
	if store.Token() != "tok-7" {
		t.Fatalf("token = %q", store.Token())
	}
}

func TestFileStorage_RoundTrip(t *testing.T) {
	path := t.TempDir() + "/nested/session.json"
	fs := NewFileStorage(path)

	creds, err := fs.Load()
	if err != nil {
		t.Fatalf("load on missing file: %v", err)
	}
	if !creds.empty() {
		t.Fatal("missing file should load as empty credentials")
	}

	want := Credentials{Token: "tok-8", User: &User{ID: 3, Email: "x@hydrosys.cl"}}
	if err := fs.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := fs.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Token != want.Token || got.User == nil || got.User.ID != 3 {
		t.Fatalf("loaded %+v", got)
	}

	if err := fs.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := fs.Clear(); err != nil {
		t.Fatalf("clear should be idempotent: %v", err)
	}
}

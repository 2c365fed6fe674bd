package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func TestCreateUserReturns201(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/users/", gin.H{
		"name":     "Alice Example",
		"username": "alice",
		"email":    "alice@example.com",
		"balance":  100.50,
		"password": "hunter2hunter2",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	var u userPayload
	decodeData(t, w, &u)
	if u.ID == 0 {
		t.Error("id not assigned")
	}
	if !u.Balance.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("balance = %s, want 100.50", u.Balance)
	}

	stored := store.users[u.ID]
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "hunter2hunter2" {
		t.Error("password not hashed")
	}
}

func TestCreateUserValidation(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"username": "a", "email": "a@example.com", "password": "longenough"}},
		{"bad email", gin.H{"name": "A", "username": "a", "email": "nope", "password": "longenough"}},
		{"short password", gin.H{"name": "A", "username": "a", "email": "a@example.com", "password": "short"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/users/", c.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
			}
		})
	}
	if len(store.users) != 0 {
		t.Errorf("%d users persisted by invalid requests", len(store.users))
	}
}

func TestGetUserRequiresPassword(t *testing.T) {
	store := newMemStore()
	u := store.seedUser(t, "Alice", "alice", "100", "correct horse")
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodGet, "/api/user/1/", gin.H{"password": "correct horse"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var got userPayload
	decodeData(t, w, &got)
	if got.ID != u.ID || got.Username != "alice" {
		t.Errorf("payload = %+v", got)
	}
	if got.Transactions == nil {
		t.Error("transactions should be present, even when empty")
	}

	w = doJSON(t, r, http.MethodGet, "/api/user/1/", gin.H{"password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/user/999/", gin.H{"password": "whatever"})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown user: status = %d, want 404", w.Code)
	}
}

func TestListUsersOmitsPrivateFields(t *testing.T) {
	store := newMemStore()
	store.seedUser(t, "Alice", "alice", "100", "passwordpassword")
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodGet, "/api/users/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var users []map[string]any
	decodeData(t, w, &users)
	if len(users) != 1 {
		t.Fatalf("got %d users, want 1", len(users))
	}
	for _, field := range []string{"balance", "email", "password", "password_hash"} {
		if _, ok := users[0][field]; ok {
			t.Errorf("public listing exposes %q", field)
		}
	}
}

func TestDeleteUser(t *testing.T) {
	store := newMemStore()
	store.seedUser(t, "Alice", "alice", "100", "passwordpassword")
	store.seedUser(t, "Bob", "bob", "50", "passwordpassword")
	r := newTestRouter(store)

	// Give Alice ledger history so her deletion is rejected.
	w := doJSON(t, r, http.MethodPost, "/api/transactions/", gin.H{
		"sender_id": 1, "receiver_id": 2, "amount": 10, "accepted": true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("setup transaction: status = %d (body %s)", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/api/user/1/", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("referenced user: status = %d, want 400", w.Code)
	}

	// A third user with no history deletes cleanly.
	store.seedUser(t, "Carol", "carol", "25", "passwordpassword")
	w = doJSON(t, r, http.MethodDelete, "/api/user/3/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var deleted userPayload
	decodeData(t, w, &deleted)
	if deleted.Username != "carol" {
		t.Errorf("deleted payload = %+v", deleted)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/user/999/", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown user: status = %d, want 404", w.Code)
	}
}

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"yatube/internal/models"
)

func TestSignupCreatesUserAndSetsCookie(t *testing.T) {
	_, app, db := newTestServer(t)

	body := []byte(`{"username":"newbie","email":"newbie@example.com","password":"Hunter2222"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/signup/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := doRequest(t, app, req)
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var user models.User
	if err := db.Where("username = ?", "newbie").First(&user).Error; err != nil {
		t.Fatalf("user missing: %v", err)
	}
	if user.Password == "Hunter2222" {
		t.Fatal("password must be stored hashed")
	}

	gotCookie := false
	for _, c := range resp.Cookies() {
		if c.Name == authCookie && c.Value != "" {
			gotCookie = true
		}
	}
	if !gotCookie {
		t.Fatal("signup should set the session cookie")
	}
}

func TestSignupDuplicateUsernameConflicts(t *testing.T) {
	_, app, db := newTestServer(t)
	createUser(t, db, "taken")

	body := []byte(`{"username":"taken","email":"other@example.com","password":"Password123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/signup/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := doRequest(t, app, req)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	_, app, db := newTestServer(t)

	body := []byte(`{"username":"weakling","email":"weak@example.com","password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/signup/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := doRequest(t, app, req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 0 {
		t.Fatalf("weak signup must not create users, got %d", count)
	}
}

func TestLoginWithValidCredentials(t *testing.T) {
	_, app, db := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Username: "resident", Email: "resident@example.com", Password: string(hash)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	values := url.Values{}
	values.Set("username", "resident")
	values.Set("password", "secret123")
	resp := postForm(t, app, "/auth/login/", values, nil)
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if payload.Token == "" || payload.User.Username != "resident" {
		t.Fatalf("unexpected login payload: %+v", payload)
	}
}

func TestLoginWithNextRedirects(t *testing.T) {
	_, app, db := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Username: "resident", Email: "resident@example.com", Password: string(hash)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	values := url.Values{}
	values.Set("username", "resident")
	values.Set("password", "secret123")
	resp := postForm(t, app, "/auth/login/?next=%2Fcreate%2F", values, nil)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/create/" {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
}

func TestLoginWithWrongPassword(t *testing.T) {
	_, app, db := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Username: "resident", Email: "resident@example.com", Password: string(hash)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	values := url.Values{}
	values.Set("username", "resident")
	values.Set("password", "wrong")
	resp := postForm(t, app, "/auth/login/", values, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	s, app, db := newTestServer(t)
	user := createUser(t, db, "leaver")

	req := httptest.NewRequest(http.MethodPost, "/auth/logout/", nil)
	req.AddCookie(authCookieFor(t, s, user))
	resp := doRequest(t, app, req)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}

	cleared := false
	for _, c := range resp.Cookies() {
		if c.Name == authCookie && c.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("logout should clear the session cookie")
	}
}

package handlers

import (
	"context"
	"net/http"

	"postboard/internal/models"
	"postboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerToken string
	registerErr   error
	loginToken    string
	loginErr      error
	whoamiUser    *models.User
	whoamiErr     error
	parseID       string
	parseErr      error

	lastRegister   service.RegisterInput
	lastLoginEmail string
	lastLoginPass  string
	lastWhoamiID   string
	lastParseToken string
	registerCalls  int
}

func (m *mockAuth) Register(ctx context.Context, in service.RegisterInput) (string, error) {
	m.registerCalls++
	m.lastRegister = in
	return m.registerToken, m.registerErr
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (string, error) {
	m.lastLoginEmail = email
	m.lastLoginPass = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) Whoami(ctx context.Context, userID string) (*models.User, error) {
	m.lastWhoamiID = userID
	return m.whoamiUser, m.whoamiErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockPosts struct {
	post    *models.Post
	list    []models.Post
	err     error
	listErr error
	authErr error

	lastOwner   string
	lastCaller  string
	lastID      string
	lastInput   service.PostInput
	createCalls int
	updateCalls int
	deleteCalls int
}

func (m *mockPosts) Create(ctx context.Context, ownerID string, in service.PostInput) (*models.Post, error) {
	m.createCalls++
	m.lastOwner = ownerID
	m.lastInput = in
	return m.post, m.err
}

func (m *mockPosts) List(ctx context.Context) ([]models.Post, error) {
	return m.list, m.listErr
}

func (m *mockPosts) Get(ctx context.Context, id string) (*models.Post, error) {
	m.lastID = id
	return m.post, m.err
}

func (m *mockPosts) Authorize(ctx context.Context, callerID, id string) error {
	m.lastCaller = callerID
	m.lastID = id
	return m.authErr
}

func (m *mockPosts) Update(ctx context.Context, callerID, id string, in service.PostInput) (*models.Post, error) {
	m.updateCalls++
	m.lastCaller = callerID
	m.lastID = id
	m.lastInput = in
	return m.post, m.err
}

func (m *mockPosts) Delete(ctx context.Context, callerID, id string) error {
	m.deleteCalls++
	m.lastCaller = callerID
	m.lastID = id
	return m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts...)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set(defaultAuthHeader, token)
	}
	return h
}

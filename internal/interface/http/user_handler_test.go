package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hawkcentral/campus-events/internal/application"
	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
)

type mockUserService struct{ mock.Mock }

func (m *mockUserService) Signup(ctx context.Context, in application.SignupInput) (*entity.User, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*entity.User)
	return out, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*entity.User, application.TokenPair, error) {
	args := m.Called(ctx, email, password)
	out, _ := args.Get(0).(*entity.User)
	return out, args.Get(1).(application.TokenPair), args.Error(2)
}

func (m *mockUserService) Refresh(ctx context.Context, token string) (*entity.User, application.TokenPair, error) {
	args := m.Called(ctx, token)
	out, _ := args.Get(0).(*entity.User)
	return out, args.Get(1).(application.TokenPair), args.Error(2)
}

func (m *mockUserService) Logout(ctx context.Context, id entity.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserService) GetProfile(ctx context.Context, id entity.ID) (*entity.User, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*entity.User)
	return out, args.Error(1)
}

func (m *mockUserService) ForgotPassword(ctx context.Context, email string, meta application.RequestMeta) error {
	return m.Called(ctx, email, meta).Error(0)
}

func (m *mockUserService) ResetPassword(ctx context.Context, token, pw string, meta application.RequestMeta) error {
	return m.Called(ctx, token, pw, meta).Error(0)
}

func userRouter(svc UserService, caller *policy.Caller) *gin.Engine {
	uh := NewUserHandler(svc, quietLogger(), "localhost", false)
	ah := NewAuthHandler(svc, quietLogger())
	r := gin.New()
	api := r.Group("/api")
	api.POST("/signup", uh.Signup)
	api.POST("/login", uh.Login)
	api.POST("/forgot-password", ah.ForgotPassword)
	api.POST("/reset-password", ah.ResetPassword)
	auth := api.Group("/")
	if caller != nil {
		auth.Use(as(*caller))
	}
	auth.GET("/profile", uh.GetProfile)
	auth.POST("/logout", uh.Logout)
	return r
}

const signupBody = `{"email":"ada@school.edu","password":"s3cretpass","first_name":"Ada","last_name":"Lovelace"}`

func TestSignup(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("Signup", mock.Anything, mock.AnythingOfType("application.SignupInput")).
			Return(&entity.User{ID: 3, Email: "ada@school.edu", FirstName: "Ada", Role: entity.RoleNormalUser}, nil).Once()

		w, env := do(t, userRouter(svc, nil), http.MethodPost, "/api/signup", signupBody)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, string(env.Data), `"role":"normal_user"`)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("email taken", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("Signup", mock.Anything, mock.Anything).Return(nil, application.ErrEmailTaken).Once()

		w, _ := do(t, userRouter(svc, nil), http.MethodPost, "/api/signup", signupBody)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := new(mockUserService)

		w, env := do(t, userRouter(svc, nil), http.MethodPost, "/api/signup", `{"email":"ada@school.edu"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, string(env.Error), "first_name")
		svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	exp := time.Now().Add(time.Hour)

	t.Run("sets cookies", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("Login", mock.Anything, "ada@school.edu", "s3cretpass").Return(
			&entity.User{ID: 3, Email: "ada@school.edu"},
			application.TokenPair{AccessToken: "a", AccessTokenExpiry: exp, RefreshToken: "r", RefreshTokenExpiry: exp},
			nil,
		).Once()

		w, env := do(t, userRouter(svc, nil), http.MethodPost, "/api/login", `{"email":"Ada@School.edu","password":"s3cretpass"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), `"access_token":"a"`)
		assert.Len(t, w.Result().Cookies(), 2)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("Login", mock.Anything, "ada@school.edu", "nope").
			Return(nil, application.TokenPair{}, application.ErrInvalidCredentials).Once()

		w, _ := do(t, userRouter(svc, nil), http.MethodPost, "/api/login", `{"email":"ada@school.edu","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestForgotPasswordIsUniform(t *testing.T) {
	svc := new(mockUserService)
	svc.On("ForgotPassword", mock.Anything, "known@school.edu", mock.Anything).Return(nil).Once()
	svc.On("ForgotPassword", mock.Anything, "broken@school.edu", mock.Anything).Return(assert.AnError).Once()
	r := userRouter(svc, nil)

	w1, env1 := do(t, r, http.MethodPost, "/api/forgot-password", `{"email":"known@school.edu"}`)
	w2, env2 := do(t, r, http.MethodPost, "/api/forgot-password", `{"email":"broken@school.edu"}`)

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, w1.Code, w2.Code)
	assert.Equal(t, env1.Message, env2.Message)
}

func TestResetPasswordBadToken(t *testing.T) {
	svc := new(mockUserService)
	svc.On("ResetPassword", mock.Anything, "tok", "newpassword", mock.Anything).Return(application.ErrInvalidResetToken).Once()

	w, _ := do(t, userRouter(svc, nil), http.MethodPost, "/api/reset-password", `{"token":"tok","new_password":"newpassword"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileUsesVerifiedCaller(t *testing.T) {
	svc := new(mockUserService)
	caller := policy.Caller{ID: 3, Role: entity.RoleNormalUser}
	svc.On("GetProfile", mock.Anything, entity.ID(3)).Return(&entity.User{ID: 3, Email: "ada@school.edu"}, nil).Once()

	w, _ := do(t, userRouter(svc, &caller), http.MethodGet, "/api/profile", "")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

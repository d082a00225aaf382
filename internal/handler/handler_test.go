package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive-dev/studyhive/internal/api"
	"github.com/studyhive-dev/studyhive/internal/auth"
	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
	mw "github.com/studyhive-dev/studyhive/internal/middleware"
)

// --- Mocks ---

type MockProvider struct {
	signUpFunc  func(email, password, name string) (domain.UserId, error)
	signInFunc  func(email, password string) (auth.Session, error)
	resolveFunc func(token string) (*domain.Caller, error)
}

func (m *MockProvider) SignUp(ctx context.Context, email, password, name string) (domain.UserId, error) {
	if m.signUpFunc != nil {
		return m.signUpFunc(email, password, name)
	}
	return "u1", nil
}

func (m *MockProvider) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	if m.signInFunc != nil {
		return m.signInFunc(email, password)
	}
	return auth.Session{AccessToken: "token", UserId: "u1"}, nil
}

func (m *MockProvider) Resolve(ctx context.Context, token string) (*domain.Caller, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(token)
	}
	if token == "valid" {
		return &domain.Caller{Id: "u1", Email: "alice@example.com", Name: "Alice"}, nil
	}
	return nil, &internal_errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized}
}

type MockProfileService struct {
	createFunc func(id domain.UserId, email domain.Email, name string) (domain.Profile, error)
	getFunc    func(id domain.UserId) (domain.Profile, error)
}

func (m *MockProfileService) Create(ctx context.Context, id domain.UserId, email domain.Email, name string) (domain.Profile, error) {
	if m.createFunc != nil {
		return m.createFunc(id, email, name)
	}
	return domain.Profile{Id: id, Email: email, Name: name}, nil
}

func (m *MockProfileService) Get(ctx context.Context, id domain.UserId) (domain.Profile, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return domain.Profile{Id: id, Name: "Alice", Points: 20}, nil
}

type MockQuestionService struct {
	createFunc       func(creation domain.QuestionCreationData) (domain.Question, error)
	listFunc         func(filter domain.QuestionFilter) ([]domain.Question, error)
	submitAnswerFunc func(questionId domain.QuestionId, author domain.UserId, content string) (domain.Answer, error)
	removeAnswerFunc func(questionId domain.QuestionId, answerId domain.AnswerId, requester domain.UserId) error
	toggleSaveFunc   func(questionId domain.QuestionId, userId domain.UserId) (bool, error)
	findSimilarFunc  func(questionId domain.QuestionId) ([]domain.Question, error)
}

func (m *MockQuestionService) Create(ctx context.Context, creation domain.QuestionCreationData) (domain.Question, error) {
	if m.createFunc != nil {
		return m.createFunc(creation)
	}
	return domain.Question{Id: "q1", Author: creation.Author, Title: creation.Title}, nil
}

func (m *MockQuestionService) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	if m.listFunc != nil {
		return m.listFunc(filter)
	}
	return []domain.Question{}, nil
}

func (m *MockQuestionService) SubmitAnswer(ctx context.Context, questionId domain.QuestionId, author domain.UserId, content string) (domain.Answer, error) {
	if m.submitAnswerFunc != nil {
		return m.submitAnswerFunc(questionId, author, content)
	}
	return domain.Answer{Id: "a1", Author: author, Content: content}, nil
}

func (m *MockQuestionService) RemoveAnswer(ctx context.Context, questionId domain.QuestionId, answerId domain.AnswerId, requester domain.UserId) error {
	if m.removeAnswerFunc != nil {
		return m.removeAnswerFunc(questionId, answerId, requester)
	}
	return nil
}

func (m *MockQuestionService) ToggleSave(ctx context.Context, questionId domain.QuestionId, userId domain.UserId) (bool, error) {
	if m.toggleSaveFunc != nil {
		return m.toggleSaveFunc(questionId, userId)
	}
	return true, nil
}

func (m *MockQuestionService) FindSimilar(ctx context.Context, questionId domain.QuestionId) ([]domain.Question, error) {
	if m.findSimilarFunc != nil {
		return m.findSimilarFunc(questionId)
	}
	return []domain.Question{}, nil
}

type MockGroupService struct {
	createFunc func(creation domain.GroupCreationData) (domain.Group, error)
	listFunc   func(userId domain.UserId) ([]domain.Group, error)
}

func (m *MockGroupService) Create(ctx context.Context, creation domain.GroupCreationData) (domain.Group, error) {
	if m.createFunc != nil {
		return m.createFunc(creation)
	}
	return domain.Group{Id: "g1", Owner: creation.Owner, Members: []domain.UserId{creation.Owner}}, nil
}

func (m *MockGroupService) ListForUser(ctx context.Context, userId domain.UserId) ([]domain.Group, error) {
	if m.listFunc != nil {
		return m.listFunc(userId)
	}
	return []domain.Group{}, nil
}

type MockCommunityService struct {
	messagesFunc func(country domain.Country) ([]domain.CommunityMessage, error)
	postFunc     func(country domain.Country, author domain.UserId, content string) (domain.CommunityMessage, error)
}

func (m *MockCommunityService) Messages(ctx context.Context, country domain.Country) ([]domain.CommunityMessage, error) {
	if m.messagesFunc != nil {
		return m.messagesFunc(country)
	}
	return []domain.CommunityMessage{}, nil
}

func (m *MockCommunityService) Post(ctx context.Context, country domain.Country, author domain.UserId, content string) (domain.CommunityMessage, error) {
	if m.postFunc != nil {
		return m.postFunc(country, author, content)
	}
	return domain.CommunityMessage{Id: "m1", Author: author, Content: content}, nil
}

// --- Test setup ---

type testEnv struct {
	provider  *MockProvider
	profile   *MockProfileService
	question  *MockQuestionService
	group     *MockGroupService
	community *MockCommunityService
	router    *chi.Mux
}

func newTestEnv() *testEnv {
	env := &testEnv{
		provider:  &MockProvider{},
		profile:   &MockProfileService{},
		question:  &MockQuestionService{},
		group:     &MockGroupService{},
		community: &MockCommunityService{},
	}
	h := New(env.provider, env.profile, env.question, env.group, env.community)
	authMw := mw.NewAuth(env.provider)

	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/signup", h.Signup)
		r.Post("/auth/signin", h.Signin)
		r.Get("/users/{id}", h.GetProfile)
		r.Get("/questions", h.ListQuestions)
		r.Get("/questions/{question}/similar", h.SimilarQuestions)
		r.Get("/community/{country}", h.ListCommunityMessages)
		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Get("/me", h.Me)
			r.Post("/questions", h.CreateQuestion)
			r.Post("/questions/{question}/answers", h.SubmitAnswer)
			r.Delete("/questions/{question}/answers/{answer}", h.RemoveAnswer)
			r.Post("/questions/{question}/save", h.ToggleSaveQuestion)
			r.Post("/groups", h.CreateGroup)
			r.Get("/groups", h.ListGroups)
			r.Post("/community/{country}", h.PostCommunityMessage)
		})
	})
	env.router = r
	return env
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// --- Tests ---

func TestSignup(t *testing.T) {
	t.Run("success creates profile", func(t *testing.T) {
		env := newTestEnv()
		var profileCreated bool
		env.profile.createFunc = func(id domain.UserId, email domain.Email, name string) (domain.Profile, error) {
			profileCreated = true
			assert.Equal(t, domain.UserId("u1"), id)
			return domain.Profile{Id: id}, nil
		}

		rec := env.do(t, "POST", "/v1/auth/signup", "", api.SignupRequest{
			Email: "alice@example.com", Password: "hunter2secret", Name: "Alice",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[api.SignupResponse](t, rec)
		assert.Equal(t, domain.UserId("u1"), resp.UserId)
		assert.True(t, profileCreated)
	})

	t.Run("invalid payload", func(t *testing.T) {
		env := newTestEnv()
		rec := env.do(t, "POST", "/v1/auth/signup", "", api.SignupRequest{
			Email: "not-an-email", Password: "short", Name: "",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		env := newTestEnv()
		env.provider.signUpFunc = func(email, password, name string) (domain.UserId, error) {
			return "", &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusBadRequest}
		}

		rec := env.do(t, "POST", "/v1/auth/signup", "", api.SignupRequest{
			Email: "alice@example.com", Password: "hunter2secret", Name: "Alice",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSignin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env := newTestEnv()
		rec := env.do(t, "POST", "/v1/auth/signin", "", api.SigninRequest{
			Email: "alice@example.com", Password: "hunter2secret",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[api.SigninResponse](t, rec)
		assert.Equal(t, "token", resp.AccessToken)
	})

	t.Run("bad credentials", func(t *testing.T) {
		env := newTestEnv()
		env.provider.signInFunc = func(email, password string) (auth.Session, error) {
			return auth.Session{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
		}

		rec := env.do(t, "POST", "/v1/auth/signin", "", api.SigninRequest{
			Email: "alice@example.com", Password: "wrongwrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv()

	for _, tc := range []struct {
		method string
		path   string
	}{
		{"GET", "/v1/me"},
		{"POST", "/v1/questions"},
		{"POST", "/v1/questions/q1/answers"},
		{"DELETE", "/v1/questions/q1/answers/a1"},
		{"POST", "/v1/questions/q1/save"},
		{"POST", "/v1/groups"},
		{"GET", "/v1/groups"},
		{"POST", "/v1/community/germany"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := env.do(t, tc.method, tc.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, "GET", "/v1/me", "valid", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[api.ProfileResponse](t, rec)
	assert.Equal(t, domain.UserId("u1"), resp.User.Id)
	assert.Equal(t, 20, resp.User.Points)
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv()
	env.profile.getFunc = func(id domain.UserId) (domain.Profile, error) {
		if id == "u2" {
			return domain.Profile{Id: "u2", Name: "Bea"}, nil
		}
		return domain.Profile{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	}

	rec := env.do(t, "GET", "/v1/users/u2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[api.ProfileResponse](t, rec)
	assert.Equal(t, "Bea", resp.User.Name)

	rec = env.do(t, "GET", "/v1/users/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateQuestion(t *testing.T) {
	t.Run("author taken from caller", func(t *testing.T) {
		env := newTestEnv()
		env.question.createFunc = func(creation domain.QuestionCreationData) (domain.Question, error) {
			assert.Equal(t, domain.UserId("u1"), creation.Author)
			assert.Equal(t, 5, creation.AnswerLimit)
			return domain.Question{Id: "q1", Author: creation.Author}, nil
		}

		limit := 5
		rec := env.do(t, "POST", "/v1/questions", "valid", api.CreateQuestionRequest{
			Title: "t", Content: "c", Subject: "Mathematics", Tags: []string{"algebra"}, AnswerLimit: &limit,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[api.QuestionResponse](t, rec)
		assert.Equal(t, "q1", resp.Question.Id)
	})

	t.Run("missing fields", func(t *testing.T) {
		env := newTestEnv()
		rec := env.do(t, "POST", "/v1/questions", "valid", api.CreateQuestionRequest{Title: "t"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListQuestions(t *testing.T) {
	env := newTestEnv()
	env.question.listFunc = func(filter domain.QuestionFilter) ([]domain.Question, error) {
		assert.Equal(t, "Mathematics", filter.Subject)
		assert.Equal(t, []string{"algebra", "proofs"}, filter.Tags)
		assert.Equal(t, "factor", filter.Search)
		return []domain.Question{{Id: "q1"}}, nil
	}

	rec := env.do(t, "GET", "/v1/questions?subject=Mathematics&tags=algebra,proofs&search=factor", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[api.QuestionListResponse](t, rec)
	assert.Len(t, resp.Questions, 1)
}

func TestSubmitAnswer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env := newTestEnv()
		env.question.submitAnswerFunc = func(questionId domain.QuestionId, author domain.UserId, content string) (domain.Answer, error) {
			assert.Equal(t, "q1", questionId)
			assert.Equal(t, domain.UserId("u1"), author)
			return domain.Answer{Id: "a1", Author: author, Content: content}, nil
		}

		rec := env.do(t, "POST", "/v1/questions/q1/answers", "valid", api.CreateAnswerRequest{Content: "use substitution"})
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[api.AnswerResponse](t, rec)
		assert.Equal(t, "a1", resp.Answer.Id)
	})

	t.Run("quota reached", func(t *testing.T) {
		env := newTestEnv()
		env.question.submitAnswerFunc = func(questionId domain.QuestionId, author domain.UserId, content string) (domain.Answer, error) {
			return domain.Answer{}, &internal_errors.ErrorWithStatusCode{Message: "Answer limit reached", StatusCode: http.StatusBadRequest}
		}

		rec := env.do(t, "POST", "/v1/questions/q1/answers", "valid", api.CreateAnswerRequest{Content: "late"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Answer limit reached")
	})
}

func TestRemoveAnswer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env := newTestEnv()
		env.question.removeAnswerFunc = func(questionId domain.QuestionId, answerId domain.AnswerId, requester domain.UserId) error {
			assert.Equal(t, "q1", questionId)
			assert.Equal(t, "a1", answerId)
			assert.Equal(t, domain.UserId("u1"), requester)
			return nil
		}

		rec := env.do(t, "DELETE", "/v1/questions/q1/answers/a1", "valid", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[api.RemoveAnswerResponse](t, rec)
		assert.True(t, resp.Success)
	})

	t.Run("forbidden for non-owner", func(t *testing.T) {
		env := newTestEnv()
		env.question.removeAnswerFunc = func(questionId domain.QuestionId, answerId domain.AnswerId, requester domain.UserId) error {
			return &internal_errors.ErrorWithStatusCode{Message: "Only question owner can remove answers", StatusCode: http.StatusForbidden}
		}

		rec := env.do(t, "DELETE", "/v1/questions/q1/answers/a1", "valid", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestToggleSaveQuestion(t *testing.T) {
	env := newTestEnv()
	saved := true
	env.question.toggleSaveFunc = func(questionId domain.QuestionId, userId domain.UserId) (bool, error) {
		saved = !saved
		return saved, nil
	}

	rec := env.do(t, "POST", "/v1/questions/q1/save", "valid", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[api.SaveResponse](t, rec).Saved)

	rec = env.do(t, "POST", "/v1/questions/q1/save", "valid", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[api.SaveResponse](t, rec).Saved)
}

func TestSimilarQuestions(t *testing.T) {
	env := newTestEnv()
	env.question.findSimilarFunc = func(questionId domain.QuestionId) ([]domain.Question, error) {
		assert.Equal(t, "q1", questionId)
		return []domain.Question{{Id: "q2"}, {Id: "q3"}}, nil
	}

	rec := env.do(t, "GET", "/v1/questions/q1/similar", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[api.QuestionListResponse](t, rec)
	assert.Len(t, resp.Questions, 2)
}

func TestGroups(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		env := newTestEnv()
		rec := env.do(t, "POST", "/v1/groups", "valid", api.CreateGroupRequest{
			Name: "Calculus crew", Description: "d", Subject: "Mathematics",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[api.GroupResponse](t, rec)
		assert.Equal(t, []domain.UserId{"u1"}, resp.Group.Members)
	})

	t.Run("list scoped to caller", func(t *testing.T) {
		env := newTestEnv()
		env.group.listFunc = func(userId domain.UserId) ([]domain.Group, error) {
			assert.Equal(t, domain.UserId("u1"), userId)
			return []domain.Group{{Id: "g1"}}, nil
		}

		rec := env.do(t, "GET", "/v1/groups", "valid", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[api.GroupListResponse](t, rec)
		assert.Len(t, resp.Groups, 1)
	})
}

func TestCommunity(t *testing.T) {
	t.Run("list is public", func(t *testing.T) {
		env := newTestEnv()
		env.community.messagesFunc = func(country domain.Country) ([]domain.CommunityMessage, error) {
			assert.Equal(t, domain.Country("germany"), country)
			return []domain.CommunityMessage{{Id: "m1"}}, nil
		}

		rec := env.do(t, "GET", "/v1/community/germany", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[api.CommunityMessageListResponse](t, rec)
		assert.Len(t, resp.Messages, 1)
	})

	t.Run("post throttled", func(t *testing.T) {
		env := newTestEnv()
		env.community.postFunc = func(country domain.Country, author domain.UserId, content string) (domain.CommunityMessage, error) {
			return domain.CommunityMessage{}, &internal_errors.ErrorWithStatusCode{Message: "You can only post once per week", StatusCode: http.StatusTooManyRequests}
		}

		rec := env.do(t, "POST", "/v1/community/germany", "valid", api.PostCommunityRequest{Content: "hello"})
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "You can only post once per week")
	})

	t.Run("post success", func(t *testing.T) {
		env := newTestEnv()
		rec := env.do(t, "POST", "/v1/community/germany", "valid", api.PostCommunityRequest{Content: "hello"})
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[api.CommunityMessageResponse](t, rec)
		assert.Equal(t, "m1", resp.Message.Id)
	})
}

func TestHealth(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

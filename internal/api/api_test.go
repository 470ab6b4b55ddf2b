package api

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/logger"
	"alcyxob/fitness-bot/internal/menu"
	"alcyxob/fitness-bot/internal/repository/memory"
	"alcyxob/fitness-bot/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	gatewaySecret       = "gateway-secret"
	jwtSecret           = "test-jwt-secret"
	userID        int64 = 1001
	adminID       int64 = 42
)

type testServer struct {
	router   *gin.Engine
	store    *memory.Store
	ordering service.OrderingService
	programs service.ProgramService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(gatewaySecret), bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.New()
	ordering := service.NewOrderingService(store.Transactor(), store.Exercises(), store.ExerciseSets())
	exercises := service.NewExerciseService(store.Transactor(), store.Days(), store.Exercises(), store.ExerciseSets(), store.Sets(), store.Templates(), ordering)
	programs := service.NewProgramService(store.Transactor(), store.Users(), store.Programs(), store.Days(), store.Exercises(), store.ExerciseSets(), store.Sets())
	dispatcher := menu.NewDispatcher(menu.Dependencies{
		Pages:          service.NewPageService(store.Banners(), nil, time.Minute),
		Users:          store.Users(),
		Programs:       store.Programs(),
		Days:           store.Days(),
		Exercises:      store.Exercises(),
		Templates:      store.Templates(),
		Categories:     store.Categories(),
		ProgramActions: programs,
		Plans:          exercises,
		Ordering:       ordering,
	}, menu.Options{ErrorMedia: "https://img.example/error.jpg", Logger: logger.Discard()})

	router := gin.New()
	SetupRoutes(router, jwtSecret, Services{
		Auth:      service.NewAuthService(store.Users(), string(hash), []int64{adminID}, jwtSecret, time.Hour),
		Programs:  programs,
		Exercises: exercises,
		Workouts:  service.NewWorkoutService(store.Exercises(), store.Sets()),
		Ordering:  ordering,
		Menu:      dispatcher,
	})
	return &testServer{router: router, store: store, ordering: ordering, programs: programs}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(GatewaySecretHeader, gatewaySecret)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(t *testing.T, id int64) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/token", "", gin.H{"user_id": id})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestIssueToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/token", "", gin.H{"user_id": userID})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[TokenResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, domain.RoleUser, resp.Role)

	_, err := s.store.Users().GetByUserID(context.Background(), userID)
	assert.NoError(t, err, "first contact registers the user")

	w = s.do(t, http.MethodPost, "/api/v1/auth/token", "", gin.H{"user_id": adminID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.RoleAdmin, decode[TokenResponse](t, w).Role)

	w = s.do(t, http.MethodPost, "/api/v1/auth/token", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueTokenRejectsWrongSecret(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewBufferString(`{"user_id":1001}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(GatewaySecretHeader, "nope")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrInvalidGatewaySecret.Error())
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/me", s.token(t, userID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[map[string]any](t, w)
	assert.EqualValues(t, userID, me["user_id"])
	assert.Equal(t, "user", me["role"])
}

func TestMenuResolveUsesTokenUser(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, s.store.PutBanner(ctx, domain.Banner{Name: "profile", Image: "https://img.example/p.jpg", Description: "Profile"}))
	token := s.token(t, userID)
	_, err := s.programs.UpdateProfile(ctx, userID, "Tester", 80)
	require.NoError(t, err)

	w := s.do(t, http.MethodPost, "/api/v1/menu/resolve", token, gin.H{"level": 1, "action": "profile", "user_id": 999})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	screen := decode[menu.Screen](t, w)
	assert.Contains(t, screen.Caption, "Name: Tester")
	assert.Equal(t, "https://img.example/p.jpg", screen.Media)
	require.NotEmpty(t, screen.Keyboard.Buttons)
	assert.Equal(t, menu.LevelMain, screen.Keyboard.Buttons[0].Target.Level)
}

func TestMenuResolveErrorScreen(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, userID)

	w := s.do(t, http.MethodPost, "/api/v1/menu/resolve", token, gin.H{"level": 99, "action": "x"})
	require.Equal(t, http.StatusOK, w.Code)
	screen := decode[menu.Screen](t, w)
	assert.Equal(t, "https://img.example/error.jpg", screen.Media)

	w = s.do(t, http.MethodPost, "/api/v1/menu/resolve", token, gin.H{"level": 4, "training_day_id": "7"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileAndPrograms(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, userID)

	w := s.do(t, http.MethodPut, "/api/v1/profile", token, gin.H{"name": "Tester", "weight": 81.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decode[UserResponse](t, w)
	assert.Equal(t, "Tester", user.Name)
	assert.Equal(t, 81.5, user.Weight)

	w = s.do(t, http.MethodPost, "/api/v1/programs", token, gin.H{"name": "Split", "days": []string{"Понедельник", "Четверг"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	program := decode[ProgramResponse](t, w)
	id, err := primitive.ObjectIDFromHex(program.ID)
	require.NoError(t, err)
	days, err := s.store.Days().GetByProgramID(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, days, 2)

	w = s.do(t, http.MethodPost, "/api/v1/programs", token, gin.H{"name": "Empty", "days": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (s *testServer) seedExercise(t *testing.T) *domain.Exercise {
	t.Helper()
	ctx := context.Background()
	program, err := s.programs.CreateProgram(ctx, userID, "Split", []string{"Понедельник"})
	require.NoError(t, err)
	days, err := s.store.Days().GetByProgramID(ctx, program.ID)
	require.NoError(t, err)
	e := &domain.Exercise{TrainingDayID: days[0].ID, Name: "Squat", Origin: domain.AdminOrigin(primitive.NewObjectID())}
	_, err = s.ordering.Append(ctx, e, []int{12, 10})
	require.NoError(t, err)
	return e
}

func TestRecordAndListSets(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, userID)
	squat := s.seedExercise(t)

	w := s.do(t, http.MethodGet, "/api/v1/exercises/"+squat.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{12, 10}, decode[ExerciseResponse](t, w).PlannedReps)

	w = s.do(t, http.MethodPost, "/api/v1/sets", token, gin.H{"exercise_id": squat.ID.Hex(), "weight": 100, "repetitions": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[SetResponse](t, w)
	require.NotEmpty(t, first.TrainingSessionID)

	w = s.do(t, http.MethodPost, "/api/v1/sets", token, gin.H{
		"exercise_id": squat.ID.Hex(), "weight": 105, "repetitions": 3, "training_session_id": first.TrainingSessionID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/exercises/"+squat.ID.Hex()+"/sets?session="+first.TrainingSessionID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sets := decode[[]SetResponse](t, w)
	require.Len(t, sets, 2)
	assert.Equal(t, 105.0, sets[1].Weight)

	w = s.do(t, http.MethodPost, "/api/v1/sets", token, gin.H{"exercise_id": primitive.NewObjectID().Hex(), "repetitions": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/exercises/"+squat.ID.Hex()+"/sets", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenumberRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	squat := s.seedExercise(t)
	path := "/api/v1/admin/days/" + squat.TrainingDayID.Hex() + "/renumber"

	w := s.do(t, http.MethodPost, path, s.token(t, userID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := s.token(t, adminID)
	w = s.do(t, http.MethodPost, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[RenumberResponse](t, w).Renumbered)

	w = s.do(t, http.MethodPost, "/api/v1/admin/positions/renumber", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[RenumberResponse](t, w).Renumbered)

	w = s.do(t, http.MethodPost, "/api/v1/admin/days/zzz/renumber", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

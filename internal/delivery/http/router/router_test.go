package router

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarating/internal/delivery/http/middleware"
	"mediarating/internal/delivery/http/router/handler"
	"mediarating/internal/delivery/http/validator"
	"mediarating/internal/infra/auth"
	"mediarating/internal/infra/persistence/memory"
	"mediarating/internal/usecase/impl"
)

// newTestServer assembles the echo app the same way the server does, on top
// of a fresh in-process store.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	mediaRepo := memory.NewMediaRepository(store)
	ratingRepo := memory.NewRatingRepository(store)
	txManager := memory.NewTransactionManager(store)
	tokens := auth.NewTokenService(userRepo)
	hasher := auth.NewBcryptHasherWithCost(4)

	users := impl.NewUserService(impl.UserServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokens,
		Logger:       logger,
	})
	media := impl.NewMediaService(impl.MediaServiceParams{
		TxManager:  txManager,
		MediaRepo:  mediaRepo,
		RatingRepo: ratingRepo,
		Logger:     logger,
	})
	ratings := impl.NewRatingService(impl.RatingServiceParams{
		TxManager:  txManager,
		RatingRepo: ratingRepo,
		Logger:     logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Pre(middleware.NewPathMiddleware().Handle)
	e.Pre(middleware.NewCORSMiddleware().Handle)
	e.Use(echomiddleware.Recover())

	appRouter := NewRouter(RouterParams{
		UserHandler:    handler.NewUserHandler(users, logger),
		MediaHandler:   handler.NewMediaHandler(media, logger),
		RatingHandler:  handler.NewRatingHandler(ratings, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokens),
	})
	appRouter.RegisterRoutes(e)

	return e
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func registerAndLogin(t *testing.T, e *echo.Echo, username string) (guid, token string) {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/api/users/register",
		`{"username":"`+username+`","password":"secret"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	guid = decodeBody(t, rec)["guid"].(string)

	rec = doJSON(e, http.MethodPost, "/api/users/login",
		`{"username":"`+username+`","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token = decodeBody(t, rec)["token"].(string)

	return guid, token
}

func createMovie(t *testing.T, e *echo.Echo, token, title string) (mediaGuid string) {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/api/media",
		`{"kind":"Movie","title":"`+title+`"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decodeBody(t, rec)["guid"].(string)
}

func TestCORSHeadersOnEveryResponse(t *testing.T) {
	e := newTestServer(t)

	for _, path := range []string{"/api/users", "/no/such/path"} {
		rec := doJSON(e, http.MethodGet, path, "", "")
		assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin), path)
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), path)
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), path)
	}
}

func TestOptionsShortCircuitsBeforeRouting(t *testing.T) {
	e := newTestServer(t)

	for _, path := range []string{"/api/media", "/completely/unknown"} {
		rec := doJSON(e, http.MethodOptions, path, "", "")
		assert.Equal(t, http.StatusNoContent, rec.Code, path)
		assert.Empty(t, rec.Body.String(), path)
		assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin), path)
	}
}

func TestPathMatchingIsCaseAndSlashTolerant(t *testing.T) {
	e := newTestServer(t)

	_, token := registerAndLogin(t, e, "alice")
	mediaGuid := createMovie(t, e, token, "Dune")

	for _, path := range []string{"/api/users/", "/API/Users", "/Api/Users//"} {
		rec := doJSON(e, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "alice", path)
	}

	// Guid parameters stay parseable after the lowercase rewrite.
	rec := doJSON(e, http.MethodGet, "/API/Media/"+strings.ToUpper(mediaGuid)+"/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dune")

	// Normalization never turns an unknown path into a match.
	rec = doJSON(e, http.MethodGet, "/API/Unknown/", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Invalid Path", decodeBody(t, rec)["error"])
}

func TestUnmatchedRoutesReturnInvalidPath(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/no/such/path", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Invalid Path", decodeBody(t, rec)["error"])

	// Known path, unsupported method.
	rec = doJSON(e, http.MethodPatch, "/api/media", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Invalid Path", decodeBody(t, rec)["error"])
}

func TestRegisterFlow(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/users/register",
		`{"username":"alice","password":"secret"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "alice", body["username"])
	assert.NotEmpty(t, body["guid"])
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "Hash")

	// Same username in another case is a conflict.
	rec = doJSON(e, http.MethodPost, "/api/users/register",
		`{"username":"ALICE","password":"secret"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User already exists", decodeBody(t, rec)["error"])

	rec = doJSON(e, http.MethodPost, "/api/users/register",
		`{"username":"","password":"secret"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username and password are required", decodeBody(t, rec)["error"])
}

func TestLoginFailureCodes(t *testing.T) {
	e := newTestServer(t)
	registerAndLogin(t, e, "alice")

	rec := doJSON(e, http.MethodPost, "/api/users/login", `{"username":"ghost","password":"x"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeBody(t, rec)["error"])

	rec = doJSON(e, http.MethodPost, "/api/users/login", `{"username":"alice","password":"wrong"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, rec)["error"])

	rec = doJSON(e, http.MethodPost, "/api/users/login", `{"username":"","password":""}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	e := newTestServer(t)

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/api/media", `{"kind":"Movie","title":"Dune"}`},
		{http.MethodPut, "/api/media/5b0c3b0a-0000-0000-0000-000000000000", `{"title":"x"}`},
		{http.MethodDelete, "/api/media/5b0c3b0a-0000-0000-0000-000000000000", ""},
		{http.MethodPut, "/api/users/5b0c3b0a-0000-0000-0000-000000000000", `{"username":"x"}`},
		{http.MethodPut, "/api/ratings/5b0c3b0a-0000-0000-0000-000000000000", `{"stars":3}`},
		{http.MethodDelete, "/api/ratings/5b0c3b0a-0000-0000-0000-000000000000", ""},
	}

	for _, tc := range cases {
		rec := doJSON(e, tc.method, tc.path, tc.body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method+" "+tc.path)
		assert.Equal(t, "Unauthorized - Valid token required", decodeBody(t, rec)["error"])
	}

	// A syntactically valid but unknown token is also rejected.
	rec := doJSON(e, http.MethodPost, "/api/media", `{"kind":"Movie","title":"Dune"}`,
		"mrpx.00000000000000000000000000000000.1700000000.deadbeef")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMediaLifecycleOverHTTP(t *testing.T) {
	e := newTestServer(t)

	_, ownerToken := registerAndLogin(t, e, "owner")
	_, strangerToken := registerAndLogin(t, e, "stranger")

	rec := doJSON(e, http.MethodPost, "/api/media",
		`{"kind":"Game","title":"Outer Wilds","releaseYear":2019,"genres":["exploration"]}`, ownerToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)
	mediaGuid := created["guid"].(string)
	assert.Equal(t, "Game", created["kind"])
	creator := created["creator"].(map[string]any)
	assert.Equal(t, "owner", creator["username"])

	rec = doJSON(e, http.MethodGet, "/api/media/"+mediaGuid, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody(t, rec)
	assert.Equal(t, "Outer Wilds", fetched["title"])
	assert.Equal(t, float64(2019), fetched["releaseYear"])

	// Blank title is rejected.
	rec = doJSON(e, http.MethodPost, "/api/media", `{"kind":"Movie","title":"  "}`, ownerToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Title required", decodeBody(t, rec)["error"])

	// Non-owner mutation is Forbidden, never NotFound.
	rec = doJSON(e, http.MethodPut, "/api/media/"+mediaGuid, `{"title":"Hijacked"}`, strangerToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(e, http.MethodDelete, "/api/media/"+mediaGuid, "", strangerToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/media/"+mediaGuid, `{"title":"Outer Wilds: Archaeology"}`, ownerToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Outer Wilds: Archaeology", decodeBody(t, rec)["title"])

	rec = doJSON(e, http.MethodDelete, "/api/media/"+mediaGuid, "", ownerToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/media/"+mediaGuid, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Media not found", decodeBody(t, rec)["error"])
}

func TestRatingFlowOverHTTP(t *testing.T) {
	e := newTestServer(t)

	ownerGuid, ownerToken := registerAndLogin(t, e, "owner")
	raterGuid, raterToken := registerAndLogin(t, e, "rater")
	mediaGuid := createMovie(t, e, ownerToken, "Dune")

	// Invalid star boundaries.
	for _, stars := range []string{"0", "6"} {
		rec := doJSON(e, http.MethodPost, "/api/ratings",
			`{"userGuid":"`+raterGuid+`","mediaGuid":"`+mediaGuid+`","stars":`+stars+`}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, stars)
		assert.Equal(t, "Stars must be between 1 and 5", decodeBody(t, rec)["error"])
	}

	rec := doJSON(e, http.MethodPost, "/api/ratings",
		`{"userGuid":"`+raterGuid+`","mediaGuid":"`+mediaGuid+`","stars":5,"comment":"great"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ratingGuid := decodeBody(t, rec)["guid"].(string)

	// Second rating for the same pair conflicts.
	rec = doJSON(e, http.MethodPost, "/api/ratings",
		`{"userGuid":"`+raterGuid+`","mediaGuid":"`+mediaGuid+`","stars":1}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "You already gave a rating to this MediaEntry", decodeBody(t, rec)["error"])

	// Owner rates too, then the aggregate is derived.
	rec = doJSON(e, http.MethodPost, "/api/ratings",
		`{"userGuid":"`+ownerGuid+`","mediaGuid":"`+mediaGuid+`","stars":3}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/media/avg/"+mediaGuid, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	aggregate := decodeBody(t, rec)
	assert.Equal(t, 4.0, aggregate["avg"])
	assert.Equal(t, float64(2), aggregate["count"])

	rec = doJSON(e, http.MethodGet, "/api/ratings/media/"+mediaGuid, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	// Ownership on mutation.
	rec = doJSON(e, http.MethodPut, "/api/ratings/"+ratingGuid, `{"stars":2}`, ownerToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/ratings/"+ratingGuid, `{"stars":2}`, raterToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeBody(t, rec)["stars"])

	// Pair-addressed deletion.
	rec = doJSON(e, http.MethodDelete,
		"/api/ratings?userGuid="+raterGuid+"&mediaGuid="+mediaGuid, "", raterToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/ratings/"+ratingGuid, "", raterToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Rating not found", decodeBody(t, rec)["error"])
}

func TestUserUpdateOverHTTP(t *testing.T) {
	e := newTestServer(t)

	aliceGuid, aliceToken := registerAndLogin(t, e, "alice")
	_, bobToken := registerAndLogin(t, e, "bob")

	rec := doJSON(e, http.MethodPut, "/api/users/"+aliceGuid, `{"username":"alice2"}`, bobToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/users/"+aliceGuid, `{"username":"alice2"}`, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice2", decodeBody(t, rec)["username"])

	// The old token still resolves: identity is the guid, not the name.
	rec = doJSON(e, http.MethodPut, "/api/users/"+aliceGuid, `{"password":"rotated"}`, aliceToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/users/login", `{"username":"alice2","password":"rotated"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayudin/go-course-keeper/internal/config"
	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/models"
)

func newTestSource(t *testing.T, handler http.Handler) RemoteSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewHTTPRemoteSource(config.Adapter{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
		RetryAttempts:  2,
	}, logger.Nop())
}

func signedTestToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestLogin_ParsesTokenAndUser(t *testing.T) {
	jws := signedTestToken(t, "42")

	source := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "student", body["login"])

		w.Header().Set("Authorization", "Bearer "+jws)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"login": "student", "name": "Student One"},
		})
	}))

	token, user, err := source.Login(context.Background(), "student", "secret")
	require.NoError(t, err)

	assert.Equal(t, jws, token.SignedString)
	assert.EqualValues(t, 42, token.UserID)
	assert.EqualValues(t, 42, user.UserID)
	assert.Equal(t, "Student One", user.Name)

	// The session token is installed for subsequent calls.
	assert.Equal(t, jws, source.Token())
}

func TestLogin_BadCredentials(t *testing.T) {
	source := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, _, err := source.Login(context.Background(), "student", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_MissingBearerHeader(t *testing.T) {
	source := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{}})
	}))

	_, _, err := source.Login(context.Background(), "student", "secret")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestListCourses_RequiresToken(t *testing.T) {
	source := newTestSource(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	_, err := source.ListCourses(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestListCourses_SendsBearerAndDecodes(t *testing.T) {
	source := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/courses/", r.URL.Path)
		require.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]models.Course{
			{ID: "c1", Code: "CS101", Name: "Intro"},
		})
	}))
	source.SetToken("session-token")

	courses, err := source.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS101", courses[0].Code)
}

func TestListCourses_MalformedBody(t *testing.T) {
	source := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	source.SetToken("session-token")

	_, err := source.ListCourses(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestListMaterials(t *testing.T) {
	source := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/courses/c1/materials", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]models.Material{
			{ID: "m1", CourseID: "c1", Title: "Lecture 1"},
		})
	}))
	source.SetToken("session-token")

	materials, err := source.ListMaterials(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, "Lecture 1", materials[0].Title)
}

func TestRefreshMaterials_DecodesOutcome(t *testing.T) {
	source := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/courses/c1/materials/refresh", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.RefreshOutcome{
			Materials:      []models.Material{{ID: "m1"}},
			NewCount:       1,
			ProcessingTime: 250,
		})
	}))
	source.SetToken("session-token")

	outcome, err := source.RefreshMaterials(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.NewCount)
	assert.EqualValues(t, 250, outcome.ProcessingTime)
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUnauthorized)
		}},
		{"forbidden", http.StatusForbidden, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUnauthorized)
		}},
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrNotFound)
		}},
		{"server error", http.StatusBadGateway, func(t *testing.T, err error) {
			var serverErr *ServerError
			require.ErrorAs(t, err, &serverErr)
			assert.Equal(t, http.StatusBadGateway, serverErr.Code)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			source.SetToken("session-token")

			_, err := source.ListCourses(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestExecute_DoesNotRetryHTTPRejections(t *testing.T) {
	var hits atomic.Int32
	source := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	source.SetToken("session-token")

	_, err := source.ListCourses(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 1, hits.Load())
}

func TestExecute_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // nothing listens anymore

	source := NewHTTPRemoteSource(config.Adapter{
		BaseURL:        server.URL,
		RequestTimeout: time.Second,
		RetryAttempts:  0,
	}, logger.Nop())
	source.SetToken("session-token")

	_, err := source.ListCourses(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestSetToken_TrimsWhitespace(t *testing.T) {
	source := NewHTTPRemoteSource(config.Adapter{}, logger.Nop())
	source.SetToken("  jwt  \n")
	assert.Equal(t, "jwt", source.Token())
}

func Test_parseBearerToken(t *testing.T) {
	got, err := parseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	_, err = parseBearerToken("")
	assert.Error(t, err)
	_, err = parseBearerToken("Bearer ")
	assert.Error(t, err)
	_, err = parseBearerToken("abc.def.ghi")
	assert.Error(t, err)
}

package test

import (
	"context"
	"net/http"
	"strings"

	"github.com/2beens/vibefit/internal/auth"
)

func (s *IntegrationTestSuite) TestLogin() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.resetData(ctx)

	s.Run("good creds, then logout", func() {
		token := s.login(ctx)

		status, _ := s.doRequest(ctx, "GET", "/stats/streak", token, nil)
		s.Equal(http.StatusOK, status)

		status, body := s.doRequest(ctx, "GET", "/a/logout", token, nil)
		s.Equal(http.StatusOK, status)
		s.Equal("logged-out", strings.TrimSpace(string(body)))

		status, _ = s.doRequest(ctx, "GET", "/stats/streak", token, nil)
		s.Equal(http.StatusUnauthorized, status)
	})

	s.Run("bad password", func() {
		status, _ := s.doRequest(ctx, "POST", "/a/login", "", auth.Credentials{
			Username: testUsername,
			Password: "bad-password",
		})
		s.Equal(http.StatusBadRequest, status)
	})

	s.Run("no token", func() {
		status, _ := s.doRequest(ctx, "GET", "/workouts/list/page/1/size/10", "", nil)
		s.Equal(http.StatusUnauthorized, status)
	})

	s.Run("rate limiting", func() {
		s.resetData(ctx)

		// config allows 10 login attempts per minute
		for i := 1; i <= 12; i++ {
			status, _ := s.doRequest(ctx, "POST", "/a/login", "", auth.Credentials{
				Username: "brute",
				Password: "force",
			})
			if i <= 10 {
				s.Equal(http.StatusBadRequest, status, "iteration: %d", i)
			} else {
				s.Equal(http.StatusTooEarly, status, "iteration: %d", i)
			}
		}

		s.resetData(ctx)
	})
}

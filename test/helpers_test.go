package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/vibefit/internal/auth"
	"github.com/2beens/vibefit/internal/misc"
)

// doRequest sends a test-agent request, with the session token when set,
// and returns the status and the raw body.
func (s *IntegrationTestSuite) doRequest(
	ctx context.Context,
	method, path, token string,
	body any,
) (int, []byte) {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, respBytes
}

// doJSON is doRequest for calls that must answer with wantStatus and a JSON body.
func (s *IntegrationTestSuite) doJSON(
	ctx context.Context,
	method, path, token string,
	body any,
	wantStatus int,
	out any,
) {
	status, respBytes := s.doRequest(ctx, method, path, token, body)
	s.Require().Equal(wantStatus, status, "%s %s: %s", method, path, string(respBytes))
	if out != nil {
		s.Require().NoError(json.Unmarshal(respBytes, out), "%s %s", method, path)
	}
}

func (s *IntegrationTestSuite) login(ctx context.Context) string {
	var loginResp misc.LoginResponse
	s.doJSON(ctx, "POST", "/a/login", "", auth.Credentials{
		Username: testUsername,
		Password: testPassword,
	}, http.StatusOK, &loginResp)
	s.Require().NotEmpty(loginResp.Token)
	return loginResp.Token
}

func workoutPath(id string) string {
	return fmt.Sprintf("/workouts/%s", id)
}
